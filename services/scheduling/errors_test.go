package scheduling

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMatchesByKind(t *testing.T) {
	err := fmt.Errorf("handler: %w", newError(KindSlotUnavailable, "09:00-10:00 is taken"))

	if !errors.Is(err, ErrSlotUnavailable) {
		t.Fatal("expected errors.Is to match by kind")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatal("different kinds must not match")
	}

	var schedErr *Error
	if !errors.As(err, &schedErr) || schedErr.Kind != KindSlotUnavailable {
		t.Fatalf("expected errors.As to yield the scheduling error, got %v", schedErr)
	}
}

func TestOnlyStorageErrorUnwraps(t *testing.T) {
	if !errors.Is(storageError("save", errBoom), errBoom) {
		t.Fatal("storage error should expose its cause")
	}
	wrapped := &Error{Kind: KindAccessDenied, Message: "no", Err: errBoom}
	if errors.Is(wrapped, errBoom) {
		t.Fatal("non-storage errors must not expose a cause")
	}
}

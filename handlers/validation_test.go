package handlers

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestMustRegisterValidationPanicsOnBadTag(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected registration of an empty tag to panic")
		}
	}()
	mustRegisterValidation(validator.New(), "", validateClock)
}

func TestMustRegisterValidationAddsTag(t *testing.T) {
	v := validator.New()
	mustRegisterValidation(v, "hhmm", validateClock)

	if err := v.Var("9:30", "hhmm"); err != nil {
		t.Fatalf("expected 9:30 to pass, got %v", err)
	}
	if err := v.Var("24:00", "hhmm"); err == nil {
		t.Fatal("expected 24:00 to fail")
	}
}

package scheduling

import "fmt"

// ErrorKind classifies a scheduling failure. Transports map kinds to status codes.
type ErrorKind string

const (
	KindProviderNotFound        ErrorKind = "ProviderNotFound"
	KindInvalidInterval         ErrorKind = "InvalidInterval"
	KindSlotUnavailable         ErrorKind = "SlotUnavailable"
	KindAccessDenied            ErrorKind = "AccessDenied"
	KindAlreadyTerminal         ErrorKind = "AlreadyTerminal"
	KindProviderProfileNotFound ErrorKind = "ProviderProfileNotFound"
	KindNotFound                ErrorKind = "NotFound"
	KindStorageError            ErrorKind = "StorageError"
)

// Error is the single error type returned by the scheduling service.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error // cause, StorageError only
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrSlotUnavailable)
// works regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func (e *Error) Unwrap() error {
	if e.Kind == KindStorageError {
		return e.Err
	}
	return nil
}

var (
	ErrProviderNotFound        = &Error{Kind: KindProviderNotFound, Message: "provider not found"}
	ErrInvalidInterval         = &Error{Kind: KindInvalidInterval, Message: "invalid time interval"}
	ErrSlotUnavailable         = &Error{Kind: KindSlotUnavailable, Message: "time slot is already booked"}
	ErrAccessDenied            = &Error{Kind: KindAccessDenied, Message: "access denied"}
	ErrAlreadyTerminal         = &Error{Kind: KindAlreadyTerminal, Message: "session is already in a terminal state"}
	ErrProviderProfileNotFound = &Error{Kind: KindProviderProfileNotFound, Message: "provider profile not found"}
	ErrNotFound                = &Error{Kind: KindNotFound, Message: "session not found"}
	ErrStorage                 = &Error{Kind: KindStorageError, Message: "storage failure"}
)

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func storageError(op string, err error) *Error {
	return &Error{Kind: KindStorageError, Message: op, Err: err}
}

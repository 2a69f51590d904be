// Package errors defines the structured error taxonomy shared by the
// dispatch core and the engine adapter.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Error is a structured error with a machine-readable code and an
// optional underlying cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// New creates an error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with the given code and a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error with the given code and message, keeping cause
// available via Unwrap.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Detail returns the engine-native cause message, if any.
func (e *Error) Detail() string {
	if e.Cause == nil {
		return ""
	}
	return e.Cause.Error()
}

// CodeOf extracts the code from err. Errors outside the taxonomy are
// reported as CodeEngineFailure.
func CodeOf(err error) Code {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return CodeEngineFailure
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// Package apperr defines the error type used across the application.
package apperr

import "fmt"

// Error is an application error whose message may contain printf verbs that
// are filled in at the point of use with Fmt.
type Error struct {
	Cause   error
	Message string
	args    []any
}

func (e *Error) Error() string {
	msg := fmt.Sprintf(e.Message, e.args...)

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}

	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Fmt returns a copy of the error with its message arguments filled in.
func (e *Error) Fmt(args ...any) *Error {
	return &Error{
		Message: e.Message,
		Cause:   e.Cause,
		args:    args,
	}
}

// Wrap returns a copy of the error with an underlying cause attached.
func (e *Error) Wrap(cause error) *Error {
	return &Error{
		Message: e.Message,
		Cause:   cause,
		args:    e.args,
	}
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Message == e.Message
}

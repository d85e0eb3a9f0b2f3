// Package apperr defines the domain error taxonomy shared by the service and
// transport layers. Every error surfaced to a caller carries a stable,
// machine-readable Kind.
package apperr

import "fmt"

type Kind string

const (
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
	KindAuth       Kind = "auth"
	KindForbidden  Kind = "forbidden"
	KindState      Kind = "state"
	KindNotFound   Kind = "not_found"
	KindInternal   Kind = "internal"
)

// Error is the domain error type. Two errors match under errors.Is when their
// kinds are equal, so callers can branch on taxonomy without string matching.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Sentinels for errors.Is matching by kind.
var (
	ErrValidation = &Error{Kind: KindValidation, Message: "validation error"}
	ErrConflict   = &Error{Kind: KindConflict, Message: "conflict"}
	ErrAuth       = &Error{Kind: KindAuth, Message: "authentication failed"}
	ErrForbidden  = &Error{Kind: KindForbidden, Message: "forbidden"}
	ErrState      = &Error{Kind: KindState, Message: "step out of order"}
	ErrNotFound   = &Error{Kind: KindNotFound, Message: "not found"}
	ErrInternal   = &Error{Kind: KindInternal, Message: "internal error"}
)

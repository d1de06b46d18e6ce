// Package apperrors classifies failures so transports can report them
// without inspecting storage errors.
package apperrors

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindFatal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindForbidden
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindForbidden:
		return "forbidden"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "fatal"
	}
}

// Error is a classified failure with a message safe to show to callers.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, msg string, args ...any) *Error {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &Error{Kind: kind, Message: msg}
}

func Validation(msg string, args ...any) *Error   { return newError(KindValidation, msg, args...) }
func NotFound(msg string, args ...any) *Error     { return newError(KindNotFound, msg, args...) }
func Conflict(msg string, args ...any) *Error     { return newError(KindConflict, msg, args...) }
func Forbidden(msg string, args ...any) *Error    { return newError(KindForbidden, msg, args...) }
func Unauthorized(msg string, args ...any) *Error { return newError(KindUnauthorized, msg, args...) }

// Fatal marks err as an infrastructure failure.
func Fatal(err error) *Error {
	return &Error{Kind: KindFatal, Message: "internal error", Err: err}
}

// Wrap attaches cause to a classified error while keeping its message.
func (e *Error) Wrap(cause error) *Error {
	return &Error{Kind: e.Kind, Message: e.Message, Err: cause}
}

// KindOf returns the kind of the first *Error in err's chain. Anything
// unclassified is fatal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindFatal
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message returns the caller facing text for err.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != KindFatal {
		return appErr.Message
	}
	return "internal error"
}

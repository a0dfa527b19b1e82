// Package apperr classifies application errors so transports can map them
// to status codes without knowing about individual business rules.
package apperr

import (
	"errors"
	"fmt"
)

type Kind uint8

const (
	KindUnexpected Kind = iota
	KindNotFound
	KindBusinessRule
	KindInvalid
	KindForbidden
	KindUnauthenticated
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindBusinessRule:
		return "business_rule"
	case KindInvalid:
		return "invalid"
	case KindForbidden:
		return "forbidden"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindConflict:
		return "conflict"
	default:
		return "unexpected"
	}
}

// Error is a classified error. Two errors match under errors.Is when they
// share a kind and the target's code is empty or equal.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

var (
	ErrNotFound        = &Error{Kind: KindNotFound, Message: "not found"}
	ErrBusinessRule    = &Error{Kind: KindBusinessRule, Message: "business rule violated"}
	ErrInvalid         = &Error{Kind: KindInvalid, Message: "invalid input"}
	ErrForbidden       = &Error{Kind: KindForbidden, Message: "access denied"}
	ErrUnauthenticated = &Error{Kind: KindUnauthenticated, Message: "unauthenticated"}
	ErrConflict        = &Error{Kind: KindConflict, Message: "conflict"}
)

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Code: "NOT_FOUND", Message: fmt.Sprintf(format, args...)}
}

func Invalidf(format string, args ...any) *Error {
	return &Error{Kind: KindInvalid, Code: "INVALID_INPUT", Message: fmt.Sprintf(format, args...)}
}

func Forbiddenf(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Code: "FORBIDDEN", Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Code == "" || t.Code == e.Code
}

// Withf returns a copy of e carrying a more specific message.
func (e *Error) Withf(format string, args ...any) *Error {
	return &Error{Kind: e.Kind, Code: e.Code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns a copy of e with err attached as its cause.
func (e *Error) Wrap(err error) *Error {
	return &Error{Kind: e.Kind, Code: e.Code, Message: e.Message, Err: err}
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// CodeOf reports the code of the first *Error in err's chain.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

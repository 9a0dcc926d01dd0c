package apperror

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindNotFound   Kind = "NOT_FOUND"
	KindConflict   Kind = "CONFLICT"
	KindBadRequest Kind = "BAD_REQUEST"
)

// Error is a deterministic business-rule failure. Callers should not retry it.
type Error struct {
	Kind     Kind
	Resource string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Resource != "":
		return fmt.Sprintf("%s: %s", e.Resource, e.Message)
	case e.Message != "":
		return e.Message
	case e.Resource != "" && e.Kind == KindNotFound:
		return fmt.Sprintf("%s not found", e.Resource)
	case e.Resource != "":
		return fmt.Sprintf("%s %s", e.Resource, kindText(e.Kind))
	default:
		return kindText(e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func kindText(k Kind) string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	case KindBadRequest:
		return "bad request"
	}
	return "error"
}

func NotFound(resource string, id any) *Error {
	return &Error{Kind: KindNotFound, Resource: resource, Message: fmt.Sprintf("%s not found: %v", resource, id)}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Conflictf(format string, args ...any) *Error {
	return Conflict(fmt.Sprintf(format, args...))
}

func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

func BadRequestf(format string, args ...any) *Error {
	return BadRequest(fmt.Sprintf(format, args...))
}

// Wrap attaches a cause while keeping the kind and message of e.
func (e *Error) Wrap(err error) *Error {
	cp := *e
	cp.Err = err
	return &cp
}

func KindOf(err error) (Kind, bool) {
	var target *Error
	if errors.As(err, &target) {
		return target.Kind, true
	}
	return "", false
}

func IsNotFound(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindNotFound
}

func IsConflict(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindConflict
}

func IsBadRequest(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindBadRequest
}

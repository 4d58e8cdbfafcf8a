package board

import (
	"errors"
	"fmt"
)

// Kind discriminates mutation results across the component boundary.
// Storage faults are caught at the service boundary and mapped to
// KindOperationFailed; nothing below it panics or throws across packages.
type Kind uint8

const (
	KindUnauthorized Kind = iota + 1
	KindForbidden
	KindNotFound
	KindValidationFailed
	KindOperationFailed
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "Unauthorized"
	case KindForbidden:
		return "Forbidden"
	case KindNotFound:
		return "NotFound"
	case KindValidationFailed:
		return "ValidationFailed"
	case KindOperationFailed:
		return "OperationFailed"
	default:
		return "Unknown"
	}
}

type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Kind() Kind { return e.kind }

func errUnauthorized() error {
	return &Error{kind: KindUnauthorized, msg: "no authenticated actor"}
}

func errForbidden(projectID uint) error {
	return &Error{kind: KindForbidden, msg: fmt.Sprintf("no edit permission on project %d", projectID)}
}

func errNotFound(resource string, id uint) error {
	return &Error{kind: KindNotFound, msg: fmt.Sprintf("%s %d not found", resource, id)}
}

func errValidation(msg string) error {
	return &Error{kind: KindValidationFailed, msg: msg}
}

func errOperation(msg string, err error) error {
	return &Error{kind: KindOperationFailed, msg: msg, err: err}
}

// KindOf extracts the result tag from err, or KindOperationFailed for
// untagged errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindOperationFailed
}

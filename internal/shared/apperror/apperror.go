package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an application error. Every error surfaced by a
// service belongs to exactly one kind; handlers map kinds to HTTP
// status codes in one place.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindPermission    Kind = "permission"
	KindDuplicate     Kind = "duplicate_relation"
	KindNotFound      Kind = "not_found"
	KindSelfReference Kind = "self_reference"
	KindInternal      Kind = "internal"
)

// Error is the application error type. Fields carries per-field
// validation messages so a caller sees every violated field at once,
// not just the first.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation builds a validation error with per-field details.
func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// Permission builds a permission error for a non-owner mutation.
func Permission(message string) *Error {
	return &Error{Kind: KindPermission, Message: message}
}

// Duplicate builds a uniqueness-violation error.
func Duplicate(message string) *Error {
	return &Error{Kind: KindDuplicate, Message: message}
}

// NotFound builds a missing-entity or missing-relation error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// SelfReference builds a self-subscription error.
func SelfReference(message string) *Error {
	return &Error{Kind: KindSelfReference, Message: message}
}

// Internal wraps an unexpected failure.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err is an application error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

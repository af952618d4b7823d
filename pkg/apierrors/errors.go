// Package apierrors defines the failures the API can report to a caller.
// Every handler returns one of these; the response writer turns it into a
// {message, code} body.
package apierrors

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindValidation   Kind = "validation"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "notFound"
	KindConflict     Kind = "conflict"
	KindInternal     Kind = "internal"
)

const unknownMessage = "An unknown error occurred"

// Error is a failure with a caller-safe message. Err holds the underlying
// cause, which is logged but never written to a response.
type Error struct {
	Kind    Kind
	Code    int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Code: http.StatusUnprocessableEntity, Message: msg}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Code: http.StatusUnauthorized, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Code: http.StatusForbidden, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Code: http.StatusNotFound, Message: msg}
}

// Conflict reports a duplicate unique field. It shares 422 with validation
// failures.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Code: http.StatusUnprocessableEntity, Message: msg}
}

func Internal(msg string, cause error) *Error {
	return &Error{Kind: KindInternal, Code: http.StatusInternalServerError, Message: msg, Err: cause}
}

// From returns err as an *Error, wrapping anything else as an internal failure.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == 0 {
			apiErr.Code = http.StatusInternalServerError
		}
		if apiErr.Message == "" {
			apiErr.Message = unknownMessage
		}
		return apiErr
	}
	return Internal(unknownMessage, err)
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

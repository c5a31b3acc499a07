// Package apperr carries the error taxonomy shared by the services and the
// HTTP layer. Services return *Error values; handlers translate the Code into
// a status and the Message into the response body.
package apperr

import (
	"errors"
	"net/http"
)

// Code is a machine-readable error kind.
type Code string

const (
	CodeInternal          Code = "INTERNAL"
	CodeUnauthenticated   Code = "UNAUTHENTICATED"
	CodeForbidden         Code = "FORBIDDEN"
	CodeNotFound          Code = "NOT_FOUND"
	CodeDuplicateIdentity Code = "DUPLICATE_IDENTITY"
	CodeValidation        Code = "VALIDATION"
	CodeRateLimited       Code = "RATE_LIMITED"
)

// InternalMessage is the body sent for any error without a Code.
const InternalMessage = "Internal server error"

// HTTPStatus maps a code to the status the API responds with.
// Ownership violations share 401 with authentication failures.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeUnauthenticated, CodeForbidden:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeDuplicateIdentity, CodeValidation:
		return http.StatusBadRequest
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a user-facing message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New returns an error of the given code.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Wrap returns an error of the given code that keeps err as its cause.
func Wrap(code Code, msg string, err error) *Error {
	return &Error{Code: code, Message: msg, Err: err}
}

// Validation is shorthand for New(CodeValidation, msg).
func Validation(msg string) *Error {
	return New(CodeValidation, msg)
}

// CodeOf extracts the code from any error. Errors that are not *Error are
// internal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// MessageOf returns the user-facing message for err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Code != CodeInternal {
		return e.Message
	}
	return InternalMessage
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}

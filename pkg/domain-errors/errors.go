// Package domainerrors defines coded errors that cross layer boundaries.
//
// Services return these so transport layers can branch deterministically on
// the code instead of string-matching messages. Stores return sentinel errors
// (pkg/platform/sentinel) and services translate them here.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code is a stable, machine-readable error identifier.
type Code string

const (
	CodeBadRequest   Code = "bad_request"
	CodeValidation   Code = "validation_error"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	// CodeNotReady marks a publish attempt rejected by the readiness gate.
	// Expected and recoverable; the Details field carries the full readiness
	// result for the caller to surface.
	CodeNotReady Code = "not_ready"
	CodeInternal Code = "internal_error"
)

// Error is a domain error with a stable code and optional structured details.
type Error struct {
	Code    Code
	Message string
	// Details is an optional payload embedded in HTTP error responses.
	// Used by not_ready errors to carry the readiness result.
	Details any
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New constructs a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// WithDetails returns a copy of the error carrying a structured payload.
func (e *Error) WithDetails(details any) *Error {
	clone := *e
	clone.Details = details
	return &clone
}

// HasCode reports whether err is a domain error with the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for
// non-domain errors.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// DetailsOf extracts the structured details from err, if any.
func DetailsOf(err error) any {
	var de *Error
	if errors.As(err, &de) {
		return de.Details
	}
	return nil
}

// Package errors provides standardized domain errors with codes for the LinkStash API.
//
// Usage:
//
//	// In services - return typed errors
//	if tagExists {
//	    return errors.Conflictf("Tag with name %s exists for account %s", name, accountID)
//	}
//
//	// In handlers - check with errors.Is
//	if errors.Is(err, errors.ErrNotFound) {
//	    // map to 404
//	}
//
//	// Or use the Code directly for switch statements
//	var domainErr *errors.Error
//	if errors.As(err, &domainErr) {
//	    status := domainErr.HTTPStatus()
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application.
const (
	CodeAuthenticationFailed Code = "AUTHENTICATION_FAILED"
	CodeTokenExpired         Code = "TOKEN_EXPIRED"
	CodeTokenMalformed       Code = "TOKEN_MALFORMED"
	CodeInvalidScope         Code = "INVALID_SCOPE_REQUEST"
	CodeInsufficientScope    Code = "INSUFFICIENT_SCOPE"
	CodeAccountIDRequired    Code = "ACCOUNT_ID_REQUIRED"
	CodeAccountIDForbidden   Code = "ACCOUNT_ID_FORBIDDEN"
	CodeNotFound             Code = "NOT_FOUND"
	CodeConflict             Code = "CONFLICT"
	CodeUnprocessable        Code = "UNPROCESSABLE"
	CodeValidation           Code = "VALIDATION"
	CodeUnavailable          Code = "UNAVAILABLE"
	CodeInternal             Code = "INTERNAL"
)

// HTTPStatus returns the appropriate HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeAuthenticationFailed, CodeTokenExpired, CodeTokenMalformed,
		CodeInvalidScope, CodeInsufficientScope:
		return http.StatusUnauthorized
	case CodeAccountIDRequired, CodeAccountIDForbidden, CodeUnprocessable:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeValidation:
		return http.StatusBadRequest
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error  // unexported, for wrapping
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithDetails returns a new error with additional details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		cause:   e.cause,
	}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		cause:   err,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrAuthenticationFailed = &Error{Code: CodeAuthenticationFailed, Message: "authentication failed"}
	ErrTokenExpired         = &Error{Code: CodeTokenExpired, Message: "token expired"}
	ErrTokenMalformed       = &Error{Code: CodeTokenMalformed, Message: "token malformed"}
	ErrInvalidScope         = &Error{Code: CodeInvalidScope, Message: "exactly one scope must be requested"}
	ErrInsufficientScope    = &Error{Code: CodeInsufficientScope, Message: "not enough permissions"}
	ErrAccountIDRequired    = &Error{Code: CodeAccountIDRequired, Message: "account_id is required"}
	ErrAccountIDForbidden   = &Error{Code: CodeAccountIDForbidden, Message: "account_id should not be provided"}
	ErrNotFound             = &Error{Code: CodeNotFound, Message: "not found"}
	ErrConflict             = &Error{Code: CodeConflict, Message: "conflict"}
	ErrUnprocessable        = &Error{Code: CodeUnprocessable, Message: "unprocessable"}
	ErrValidation           = &Error{Code: CodeValidation, Message: "validation error"}
	ErrUnavailable          = &Error{Code: CodeUnavailable, Message: "storage unavailable"}
	ErrInternal             = &Error{Code: CodeInternal, Message: "internal error"}
)

// Constructor functions for creating errors with custom messages.

// AuthenticationFailed creates a generic credential failure error.
// The message is deliberately uniform so callers cannot tell which check failed.
func AuthenticationFailed(msg string) *Error {
	return &Error{Code: CodeAuthenticationFailed, Message: msg}
}

// TokenExpired creates a token expired error.
func TokenExpired(msg string) *Error {
	return &Error{Code: CodeTokenExpired, Message: msg}
}

// TokenMalformed creates a token malformed error.
func TokenMalformed(msg string) *Error {
	return &Error{Code: CodeTokenMalformed, Message: msg}
}

// InvalidScope creates an invalid scope request error.
func InvalidScope(msg string) *Error {
	return &Error{Code: CodeInvalidScope, Message: msg}
}

// InsufficientScope creates an insufficient scope error.
func InsufficientScope(msg string) *Error {
	return &Error{Code: CodeInsufficientScope, Message: msg}
}

// AccountIDRequired creates an account_id required error.
func AccountIDRequired(msg string) *Error {
	return &Error{Code: CodeAccountIDRequired, Message: msg}
}

// AccountIDForbidden creates an account_id forbidden error.
func AccountIDForbidden(msg string) *Error {
	return &Error{Code: CodeAccountIDForbidden, Message: msg}
}

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict creates a conflict error.
func Conflict(msg string) *Error {
	return &Error{Code: CodeConflict, Message: msg}
}

// Conflictf creates a conflict error with formatted message.
func Conflictf(format string, args ...any) *Error {
	return &Error{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

// Unprocessable creates a cross-reference validation error.
func Unprocessable(msg string) *Error {
	return &Error{Code: CodeUnprocessable, Message: msg}
}

// Unprocessablef creates a cross-reference validation error with formatted message.
func Unprocessablef(format string, args ...any) *Error {
	return &Error{Code: CodeUnprocessable, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Validationf creates a validation error with formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// Unavailable creates a storage/transport unavailable error.
func Unavailable(msg string) *Error {
	return &Error{Code: CodeUnavailable, Message: msg}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// Internalf creates an internal error with formatted message.
func Internalf(format string, args ...any) *Error {
	return &Error{Code: CodeInternal, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}

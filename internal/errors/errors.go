// Package errors provides the unified application error type for the API.
// Every error crossing a handler boundary is an *AppError carrying a
// machine-readable code and the HTTP status the transport layer should use.
// Messages are fixed and non-leaking; internal detail travels in Cause and
// is only ever logged, never serialized.
package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message safe to return to clients.
	Message string `json:"message"`
	// HTTPStatus is the HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error. Never serialized.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

// --- Authentication / Authorization ---

// Unauthorized covers missing or malformed credentials. The message is
// deliberately generic so callers cannot probe which check failed.
func Unauthorized() *AppError {
	return &AppError{
		Code: ErrCodeUnauthorized, Message: "Missing or invalid credentials.",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// InvalidToken covers every token rejection: malformed, bad signature,
// wrong issuer, expired, or wrong token type. Collapsed on purpose.
func InvalidToken() *AppError {
	return &AppError{
		Code: ErrCodeInvalidToken, Message: "Invalid or expired token.",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// AuthenticationFailed is returned for bad login credentials. The message is
// identical whether the email is unknown or the password is wrong.
func AuthenticationFailed() *AppError {
	return &AppError{
		Code: ErrCodeAuthenticationFailed, Message: "Invalid email or password.",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NoAuthContext indicates a role guard ran without the authentication
// middleware attaching claims first. Seeing this in production means the
// route pipeline is miswired.
func NoAuthContext() *AppError {
	return &AppError{
		Code: ErrCodeNoAuthContext, Message: "Authentication required.",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden is returned when the caller's role is not in the allowed set.
func Forbidden(required, actual string) *AppError {
	return &AppError{
		Code: ErrCodeForbidden, Message: "Insufficient permissions.",
		HTTPStatus: http.StatusForbidden,
		Details:    map[string]any{"required": required, "actual": actual},
	}
}

// --- Resources ---

// NotFound creates a new AppError for a resource that was not found.
func NotFound(resource string) *AppError {
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"resource": resource},
	}
}

// Conflict creates a new AppError for a conflict with existing state.
func Conflict(reason string) *AppError {
	return &AppError{
		Code: ErrCodeConflict, Message: reason,
		HTTPStatus: http.StatusConflict,
	}
}

// --- Validation ---

// Validation creates a new AppError for invalid input.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// --- Internal ---

// Internal creates a new AppError for an internal server error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}

// DatabaseError creates a new AppError for a database failure.
func DatabaseError(cause error) *AppError {
	return &AppError{
		Code: ErrCodeDatabaseError, Message: "A database error occurred. Please try again.",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}

// ExternalServiceError creates a new AppError for an upstream provider failure.
func ExternalServiceError(service string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeExternalService, Message: fmt.Sprintf("The %s service encountered an error.", service),
		HTTPStatus: http.StatusBadGateway, Cause: cause,
		Details: map[string]any{"service": service},
	}
}

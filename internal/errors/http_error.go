package errors

import (
	"errors"
	"net/http"
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// Validation marks malformed client input. Never retried.
func Validation(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message)
}

// Policy marks a request rejected by booking policy (non-work-day and
// the like). Same status class as validation, distinct constructor so
// call sites read clearly.
func Policy(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message)
}

// Conflict marks a slot at capacity or a lost write race.
func Conflict(message string) *HTTPError {
	return NewHTTPError(http.StatusConflict, message)
}

// Internal marks an unexpected persistence failure. The message is the
// generic user-facing text; the underlying detail belongs in logs only.
func Internal(message string) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message)
}

// AsHTTPError coerces err to an *HTTPError, wrapping unknown errors as
// a generic 500 so internals never leak into responses.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return Internal("Internal server error")
}

// Helper for common errors
var (
	ErrUnauthorized = func(msg string) *HTTPError { return NewHTTPError(http.StatusUnauthorized, msg) }
)

// Package errors provides error classification for the client SDK.
// This enables different retry policies based on error recoverability.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory determines how errors should be handled by retry logic.
type ErrorCategory int

const (
	// Recoverable errors may be retried with exponential backoff.
	// Examples: 500 Internal Server Error, network timeouts, connection failures.
	Recoverable ErrorCategory = iota

	// Irrecoverable errors should fail immediately without retry.
	// Examples: 401 Unauthorized, 403 Forbidden, 400 Bad Request.
	Irrecoverable
)

// String returns a human-readable representation of the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// APIError is a non-2xx response from the backend.
//
// Error() returns Message verbatim so callers can show it to the user.
type APIError struct {
	Category   ErrorCategory
	StatusCode int
	Message    string // human readable, extracted from the body
	Body       any    // parsed JSON body, raw text, or nil
}

// Error implements the error interface.
func (e *APIError) Error() string { return e.Message }

// NetworkError wraps a transport failure (no HTTP status was received).
type NetworkError struct {
	Op         string
	Underlying error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s network error: %v", e.Op, e.Underlying)
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *NetworkError) Unwrap() error { return e.Underlying }

// IsIrrecoverable returns true if the error should not be retried.
func IsIrrecoverable(err error) bool {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.Category == Irrecoverable
	}
	return false
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// Package errors defines the structured error taxonomy exposed by the API.
package errors

import (
	"fmt"
)

// ErrorCode classifies a failure for callers.
type ErrorCode string

const (
	// ErrCodeNotFound indicates the referenced vocabulary item has no
	// review state. States are created only at item creation, never
	// implicitly.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInvalidArgument indicates out-of-range or malformed input
	// parameters, rejected at the boundary.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeStorageFailure indicates a storage I/O error, propagated
	// unchanged; retry policy is the caller's.
	ErrCodeStorageFailure ErrorCode = "STORAGE_FAILURE"
)

// APIError is a structured error carrying a code for transport mapping.
type APIError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *APIError) Unwrap() error {
	return e.Cause
}

// NotFound creates a not-found error.
func NotFound(msg string) *APIError {
	return &APIError{Code: ErrCodeNotFound, Message: msg}
}

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *APIError {
	return &APIError{Code: ErrCodeInvalidArgument, Message: msg}
}

// StorageFailure wraps a storage error.
func StorageFailure(msg string, cause error) *APIError {
	return &APIError{Code: ErrCodeStorageFailure, Message: msg, Cause: cause}
}

// IsCode checks if an error is of a specific code.
func IsCode(err error, code ErrorCode) bool {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Code == code
	}
	return false
}

// GetCodeFromError extracts the error code from any error.
// Returns the provided default code if the error is not an APIError.
func GetCodeFromError(err error, defaultCode ErrorCode) ErrorCode {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Code
	}
	return defaultCode
}

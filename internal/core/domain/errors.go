package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a SyncBridge error with a structured error code.
type DomainError struct {
	Code    string // Error code (e.g., "SB-TOKN-5000")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// Token (operation ID / marker) errors.
var (
	// ErrMarkerCreate indicates the marker for a freshly issued operation
	// ID could not be materialized. This is the one hard failure path of
	// the whole system: the caller must never proceed with an unissued ID.
	ErrMarkerCreate = NewDomainError("SB-TOKN-5000", "cannot create operation marker")

	// ErrOpIDExhausted indicates ID generation kept colliding with live
	// operations beyond the retry bound.
	ErrOpIDExhausted = NewDomainError("SB-TOKN-5001", "operation id space exhausted")

	// ErrOpIDMalformed indicates the operation ID format is invalid.
	ErrOpIDMalformed = NewDomainError("SB-TOKN-4000", "malformed operation id")
)

// Executor errors.
var (
	// ErrExecutorStart indicates the network executor rejected the
	// operation before it could start.
	ErrExecutorStart = NewDomainError("SB-EXEC-5000", "executor failed to start operation")
)

// System errors.
var (
	// ErrInternal indicates an internal error.
	ErrInternal = NewDomainError("SB-SYS-5000", "internal error")
)

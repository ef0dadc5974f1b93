// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")
)

// ValidationError carries the field and reason for a failed input validation.
// It wraps one of the domain sentinel errors so callers can classify it with
// errors.Is while still surfacing a field-level message.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError for the given field.
// The sentinel argument is typically ErrValidation or ErrInvalidID.
func NewValidationError(field, message string, sentinel error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     sentinel,
	}
}

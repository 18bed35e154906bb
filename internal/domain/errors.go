// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// Specific validation errors wrap it so callers can match either.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when a referenced ID is not positive.
	ErrInvalidID = errors.New("invalid ID")

	// ErrLoanClosed is returned when a loan that was already returned is returned again.
	ErrLoanClosed = errors.New("loan already returned")
)

// validationError wraps ErrValidation with a field-specific message.
type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Unwrap() error { return ErrValidation }

func newValidationError(msg string) error {
	return &validationError{msg: msg}
}

package service

import (
	"errors"
	"fmt"
)

// Sentinel errors returned for expected outcomes.
// The API layer maps each of them to an HTTP status and the console to a message.
var (
	// ErrUnavailable indicates a borrow against a book with no copies left,
	// or a book that does not exist. Nothing is written.
	// API layer should map this to HTTP 409 Conflict.
	ErrUnavailable = errors.New("book not available")

	// ErrLoanNotFound indicates a return against an unknown transaction id.
	// API layer should map this to HTTP 404 Not Found.
	ErrLoanNotFound = errors.New("transaction not found")

	// ErrAlreadyReturned indicates a return against a loan that is already closed.
	// API layer should map this to HTTP 409 Conflict.
	ErrAlreadyReturned = errors.New("book already returned")

	// ErrInvalidInput indicates input that failed domain validation.
	// API layer should map this to HTTP 400 Bad Request.
	ErrInvalidInput = errors.New("invalid input")

	// ErrBookNotFound indicates that the requested book does not exist.
	ErrBookNotFound = errors.New("book not found")

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// DataAccessError reports that the store rejected or could not execute a
// statement. The operation was abandoned and nothing was committed.
type DataAccessError struct {
	// Operation is the operation that failed (e.g., "borrow", "add_book")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying store error
	Err error
}

// Error implements the error interface for DataAccessError.
func (e *DataAccessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *DataAccessError) Unwrap() error {
	return e.Err
}

// NewDataAccessError wraps a store error for the given operation.
// It returns service sentinel errors directly without wrapping, so an error
// that already carries a business outcome keeps it.
func NewDataAccessError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	for _, sentinel := range []error{
		ErrUnavailable,
		ErrLoanNotFound,
		ErrAlreadyReturned,
		ErrInvalidInput,
		ErrBookNotFound,
		ErrUserNotFound,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}

	var dae *DataAccessError
	if errors.As(err, &dae) {
		return err
	}

	return &DataAccessError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// IsDataAccessFailure reports whether err is, or wraps, a *DataAccessError.
func IsDataAccessFailure(err error) bool {
	var dae *DataAccessError
	return errors.As(err, &dae)
}

// invalidInput marks a domain validation failure.
func invalidInput(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}


package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an insert violates a unique constraint.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when the store rejects an entity, either
	// before writing it or because a database constraint refused it.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrUpdateFailed is returned when an update did not apply, for example
	// because the row no longer matches the update's condition.
	ErrUpdateFailed = errors.New("update failed")

	// ErrTransactionFailed is returned when a transaction cannot begin or commit.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrOutOfStock is returned when a quantity adjustment would take a
	// book's quantity below zero. Nothing is written.
	ErrOutOfStock = errors.New("no copies left")

	// ErrBookNotFound indicates that the requested book does not exist in the store.
	ErrBookNotFound = fmt.Errorf("%w: book", ErrNotFound)

	// ErrUserNotFound indicates that the requested user does not exist in the store.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrLoanNotFound indicates that the requested loan does not exist in the store.
	ErrLoanNotFound = fmt.Errorf("%w: loan", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "book", "loan")
	Operation string // The operation that failed (e.g., "create", "adjust_quantity")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

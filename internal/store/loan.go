package store

import (
	"context"

	"github.com/phrazzld/shelf/internal/domain"
)

// LoanStore defines the interface for loan ("transaction") persistence.
type LoanStore interface {
	// Create saves a new open loan and sets its generated ID.
	// Returns ErrInvalidEntity if the loan is invalid or references a
	// user or book that does not exist.
	Create(ctx context.Context, loan *domain.Loan) error

	// GetByID retrieves a loan by ID.
	// Returns ErrLoanNotFound if the loan does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Loan, error)

	// MarkReturned persists the loan's return date and late fee together.
	// Only an open loan is updated; returns ErrLoanNotFound if the loan does
	// not exist and ErrUpdateFailed if it was already returned.
	MarkReturned(ctx context.Context, loan *domain.Loan) error

	// ListOpenByUser returns the user's open loans joined with the book
	// title, ordered by loan ID.
	ListOpenByUser(ctx context.Context, userID int64) ([]domain.OpenLoan, error)
}

package mocks

import (
	"context"

	"github.com/phrazzld/shelf/internal/domain"
	"github.com/phrazzld/shelf/internal/store"
)

// MockLoanStore implements store.LoanStore for testing
type MockLoanStore struct {
	CreateFn         func(ctx context.Context, loan *domain.Loan) error
	GetByIDFn        func(ctx context.Context, id int64) (*domain.Loan, error)
	MarkReturnedFn   func(ctx context.Context, loan *domain.Loan) error
	ListOpenByUserFn func(ctx context.Context, userID int64) ([]domain.OpenLoan, error)

	// Default response values
	Loan      *domain.Loan
	OpenLoans []domain.OpenLoan
	Err       error

	Calls CallLog
}

var _ store.LoanStore = (*MockLoanStore)(nil)

// Create implements store.LoanStore
func (m *MockLoanStore) Create(ctx context.Context, loan *domain.Loan) error {
	m.Calls.record("Create", loan)
	if m.CreateFn != nil {
		return m.CreateFn(ctx, loan)
	}
	return m.Err
}

// GetByID implements store.LoanStore
func (m *MockLoanStore) GetByID(ctx context.Context, id int64) (*domain.Loan, error) {
	m.Calls.record("GetByID", id)
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.Loan, m.Err
}

// MarkReturned implements store.LoanStore
func (m *MockLoanStore) MarkReturned(ctx context.Context, loan *domain.Loan) error {
	m.Calls.record("MarkReturned", loan)
	if m.MarkReturnedFn != nil {
		return m.MarkReturnedFn(ctx, loan)
	}
	return m.Err
}

// ListOpenByUser implements store.LoanStore
func (m *MockLoanStore) ListOpenByUser(ctx context.Context, userID int64) ([]domain.OpenLoan, error) {
	m.Calls.record("ListOpenByUser", userID)
	if m.ListOpenByUserFn != nil {
		return m.ListOpenByUserFn(ctx, userID)
	}
	return m.OpenLoans, m.Err
}

package memstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/phrazzld/shelf/internal/domain"
	"github.com/phrazzld/shelf/internal/store"
)

// LoanStore implements store.LoanStore in memory.
type LoanStore struct {
	h *handle
}

// Ensure LoanStore implements store.LoanStore interface
var _ store.LoanStore = (*LoanStore)(nil)

// Create implements store.LoanStore.Create
// Missing users or books are rejected like a foreign key violation.
func (s *LoanStore) Create(ctx context.Context, loan *domain.Loan) error {
	if err := loan.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	return s.h.do(ctx, func(st *state) error {
		if _, ok := st.users[loan.UserID]; !ok {
			return fmt.Errorf("%w: user %d does not exist", store.ErrInvalidEntity, loan.UserID)
		}
		if _, ok := st.books[loan.BookID]; !ok {
			return fmt.Errorf("%w: book %d does not exist", store.ErrInvalidEntity, loan.BookID)
		}
		st.nextLoanID++
		loan.ID = st.nextLoanID
		st.loans[loan.ID] = copyLoan(*loan)
		return nil
	})
}

// GetByID implements store.LoanStore.GetByID
func (s *LoanStore) GetByID(ctx context.Context, id int64) (*domain.Loan, error) {
	var loan domain.Loan
	err := s.h.do(ctx, func(st *state) error {
		l, ok := st.loans[id]
		if !ok {
			return store.ErrLoanNotFound
		}
		loan = copyLoan(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// MarkReturned implements store.LoanStore.MarkReturned
func (s *LoanStore) MarkReturned(ctx context.Context, loan *domain.Loan) error {
	if loan.ReturnDate == nil || loan.LateFee == nil {
		return fmt.Errorf("%w: loan %d has no return date or late fee", store.ErrInvalidEntity, loan.ID)
	}
	return s.h.do(ctx, func(st *state) error {
		stored, ok := st.loans[loan.ID]
		if !ok {
			return store.ErrLoanNotFound
		}
		if !stored.IsOpen() {
			return fmt.Errorf("%w: loan %d was already returned", store.ErrUpdateFailed, loan.ID)
		}
		stored.ReturnDate = loan.ReturnDate
		stored.LateFee = loan.LateFee
		st.loans[loan.ID] = copyLoan(stored)
		return nil
	})
}

// ListOpenByUser implements store.LoanStore.ListOpenByUser
func (s *LoanStore) ListOpenByUser(ctx context.Context, userID int64) ([]domain.OpenLoan, error) {
	open := make([]domain.OpenLoan, 0)
	err := s.h.do(ctx, func(st *state) error {
		for _, l := range st.loans {
			if l.UserID != userID || !l.IsOpen() {
				continue
			}
			open = append(open, domain.OpenLoan{
				LoanID:     l.ID,
				BookTitle:  st.books[l.BookID].Title,
				BorrowDate: l.BorrowDate,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(open, func(i, j int) bool { return open[i].LoanID < open[j].LoanID })
	return open, nil
}

package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/shelf/internal/domain"
	"github.com/phrazzld/shelf/internal/events"
	"github.com/phrazzld/shelf/internal/platform/logger"
	"github.com/phrazzld/shelf/internal/store"
)

// LoanService lends books to members and takes them back.
type LoanService interface {
	// Borrow lends one copy of bookID to userID, dated today. The loan is
	// recorded and the book's quantity decremented in one transaction.
	// Returns ErrUnavailable, writing nothing, if the book has no copies left
	// or does not exist, and ErrInvalidInput for a non-positive user id.
	Borrow(ctx context.Context, userID, bookID int64) (*domain.Loan, error)

	// Return closes the loan today, charging the late fee due under the
	// service's FeePolicy, and puts the copy back on the shelf, in one
	// transaction. Returns ErrLoanNotFound for an unknown id and
	// ErrAlreadyReturned for a closed loan; neither writes anything.
	Return(ctx context.Context, loanID int64) (*domain.Loan, error)

	// ListOpenLoans returns userID's loans that have not been returned,
	// ordered by loan id.
	ListOpenLoans(ctx context.Context, userID int64) ([]domain.OpenLoan, error)
}

type loanServiceImpl struct {
	tx      store.Transactor
	loans   store.LoanStore
	policy  domain.FeePolicy
	clock   Clock
	emitter events.EventEmitter
	logger  *slog.Logger
}

// NewLoanService creates a new LoanService.
// It returns an error if tx, loans or emitter is nil. A nil clock uses SystemClock.
func NewLoanService(
	tx store.Transactor,
	loans store.LoanStore,
	policy domain.FeePolicy,
	clock Clock,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (LoanService, error) {
	if tx == nil {
		return nil, &DataAccessError{Operation: "create_service", Message: "transactor cannot be nil"}
	}
	if loans == nil {
		return nil, &DataAccessError{Operation: "create_service", Message: "loans cannot be nil"}
	}
	if emitter == nil {
		return nil, &DataAccessError{Operation: "create_service", Message: "emitter cannot be nil"}
	}
	if clock == nil {
		clock = SystemClock
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &loanServiceImpl{
		tx:      tx,
		loans:   loans,
		policy:  policy,
		clock:   clock,
		emitter: emitter,
		logger:  logger.With("component", "loan_service"),
	}, nil
}

// Borrow implements LoanService.
func (s *loanServiceImpl) Borrow(ctx context.Context, userID, bookID int64) (*domain.Loan, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With("user_id", userID, "book_id", bookID)

	// No book can have a non-positive id, so there is no copy to lend.
	if bookID <= 0 {
		log.Info("book not available")
		return nil, ErrUnavailable
	}

	loan, err := domain.NewLoan(userID, bookID, s.clock.Now())
	if err != nil {
		return nil, invalidInput(err)
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context, st store.Stores) error {
		book, err := st.Books.GetByID(ctx, bookID)
		if err != nil {
			if errors.Is(err, store.ErrBookNotFound) {
				return ErrUnavailable
			}
			return NewDataAccessError("borrow", "failed to read book", err)
		}
		if !book.IsAvailable() {
			return ErrUnavailable
		}

		if err := st.Loans.Create(ctx, loan); err != nil {
			return NewDataAccessError("borrow", "failed to record loan", err)
		}

		// The copy may have gone since the read; the conditional decrement
		// refuses and the loan insert is rolled back with it.
		if err := st.Books.AdjustQuantity(ctx, bookID, -1); err != nil {
			if errors.Is(err, store.ErrOutOfStock) || errors.Is(err, store.ErrBookNotFound) {
				return ErrUnavailable
			}
			return NewDataAccessError("borrow", "failed to decrement quantity", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			log.Info("book not available")
			return nil, ErrUnavailable
		}
		if errors.Is(err, ErrInvalidInput) {
			return nil, err
		}
		log.Error("borrow failed", "error", err)
		return nil, NewDataAccessError("borrow", "transaction failed", err)
	}

	log.Info("book borrowed", "transaction_id", loan.ID)
	s.emit(ctx, events.TypeLoanBorrowed, loan)
	return loan, nil
}

// Return implements LoanService.
func (s *loanServiceImpl) Return(ctx context.Context, loanID int64) (*domain.Loan, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With("transaction_id", loanID)

	var returned *domain.Loan
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, st store.Stores) error {
		loan, err := st.Loans.GetByID(ctx, loanID)
		if err != nil {
			if store.IsNotFoundError(err) {
				return ErrLoanNotFound
			}
			return NewDataAccessError("return", "failed to read loan", err)
		}

		today := s.clock.Now()
		fee := s.policy.LateFee(loan.BorrowDate, today)
		if err := loan.MarkReturned(today, fee); err != nil {
			if errors.Is(err, domain.ErrLoanClosed) {
				return ErrAlreadyReturned
			}
			return invalidInput(err)
		}

		if err := st.Loans.MarkReturned(ctx, loan); err != nil {
			switch {
			case errors.Is(err, store.ErrUpdateFailed):
				return ErrAlreadyReturned
			case errors.Is(err, store.ErrLoanNotFound):
				return ErrLoanNotFound
			}
			return NewDataAccessError("return", "failed to close loan", err)
		}

		if err := st.Books.AdjustQuantity(ctx, loan.BookID, 1); err != nil {
			return NewDataAccessError("return", "failed to increment quantity", err)
		}

		returned = loan
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrLoanNotFound), errors.Is(err, ErrAlreadyReturned):
			log.Info("return refused", "reason", err.Error())
			return nil, err
		case errors.Is(err, ErrInvalidInput):
			return nil, err
		}
		log.Error("return failed", "error", err)
		return nil, NewDataAccessError("return", "transaction failed", err)
	}

	log.Info("book returned", "book_id", returned.BookID, "late_fee", *returned.LateFee)
	s.emit(ctx, events.TypeLoanReturned, returned)
	return returned, nil
}

// ListOpenLoans implements LoanService.
func (s *loanServiceImpl) ListOpenLoans(ctx context.Context, userID int64) ([]domain.OpenLoan, error) {
	loans, err := s.loans.ListOpenByUser(ctx, userID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).
			Error("failed to list open loans", "error", err, "user_id", userID)
		return nil, NewDataAccessError("list_open_loans", "failed to list open loans", err)
	}
	return loans, nil
}

// emit publishes a loan event after the transaction committed. Failures are
// logged only; the loan change is already durable.
func (s *loanServiceImpl) emit(ctx context.Context, eventType string, loan *domain.Loan) {
	event, err := events.NewEvent(eventType, events.LoanPayload{
		LoanID:  loan.ID,
		UserID:  loan.UserID,
		BookID:  loan.BookID,
		LateFee: loan.LateFee,
	})
	if err == nil {
		err = s.emitter.EmitEvent(ctx, event)
	}
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to emit loan event",
			"error", err,
			"event_type", eventType,
			"transaction_id", loan.ID)
	}
}

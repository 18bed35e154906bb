package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/shelf/internal/domain"
	"github.com/phrazzld/shelf/internal/platform/logger"
	"github.com/phrazzld/shelf/internal/store"
)

// PostgresLoanStore implements the store.LoanStore interface on the
// transactions table.
type PostgresLoanStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresLoanStore creates a new PostgreSQL implementation of the LoanStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresLoanStore(db store.DBTX, logger *slog.Logger) *PostgresLoanStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresLoanStore{
		db:     db,
		logger: logger.With(slog.String("component", "loan_store")),
	}
}

// Ensure PostgresLoanStore implements store.LoanStore interface
var _ store.LoanStore = (*PostgresLoanStore)(nil)

// WithTx returns a new PostgresLoanStore that runs its statements on tx.
func (s *PostgresLoanStore) WithTx(tx *sql.Tx) *PostgresLoanStore {
	return &PostgresLoanStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.LoanStore.Create
// Returns store.ErrInvalidEntity if the user or book does not exist (foreign key violation).
func (s *PostgresLoanStore) Create(ctx context.Context, loan *domain.Loan) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := loan.Validate(); err != nil {
		log.Warn("loan validation failed during create",
			slog.String("error", err.Error()),
			slog.Int64("user_id", loan.UserID),
			slog.Int64("book_id", loan.BookID))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO transactions (user_id, book_id, borrow_date)
		VALUES ($1, $2, $3)
		RETURNING transaction_id
	`
	err := s.db.QueryRowContext(ctx, query, loan.UserID, loan.BookID, loan.BorrowDate).Scan(&loan.ID)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during loan creation",
				slog.String("error", err.Error()),
				slog.Int64("user_id", loan.UserID),
				slog.Int64("book_id", loan.BookID))
		} else {
			log.Error("failed to create loan",
				slog.String("error", err.Error()),
				slog.Int64("user_id", loan.UserID),
				slog.Int64("book_id", loan.BookID))
		}
		return wrapStoreError("loan", "create", "failed to insert loan", err)
	}

	log.Info("loan created successfully",
		slog.Int64("loan_id", loan.ID),
		slog.Int64("user_id", loan.UserID),
		slog.Int64("book_id", loan.BookID))
	return nil
}

// GetByID implements store.LoanStore.GetByID
func (s *PostgresLoanStore) GetByID(ctx context.Context, id int64) (*domain.Loan, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT transaction_id, user_id, book_id, borrow_date, return_date, late_fee::float8
		FROM transactions
		WHERE transaction_id = $1
	`

	var (
		loan       domain.Loan
		returnDate sql.NullTime
		lateFee    sql.NullFloat64
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&loan.ID,
		&loan.UserID,
		&loan.BookID,
		&loan.BorrowDate,
		&returnDate,
		&lateFee,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("loan not found", slog.Int64("loan_id", id))
			return nil, store.ErrLoanNotFound
		}
		log.Error("failed to get loan by ID",
			slog.String("error", err.Error()),
			slog.Int64("loan_id", id))
		return nil, wrapStoreError("loan", "get", "failed to read loan", err)
	}

	loan.BorrowDate = domain.DateOf(loan.BorrowDate)
	if returnDate.Valid {
		d := domain.DateOf(returnDate.Time)
		loan.ReturnDate = &d
	}
	if lateFee.Valid {
		fee := lateFee.Float64
		loan.LateFee = &fee
	}

	return &loan, nil
}

// MarkReturned implements store.LoanStore.MarkReturned
// Both columns are written by one statement, and only while the loan is open.
func (s *PostgresLoanStore) MarkReturned(ctx context.Context, loan *domain.Loan) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if loan.ReturnDate == nil || loan.LateFee == nil {
		return fmt.Errorf("%w: loan %d has no return date or late fee", store.ErrInvalidEntity, loan.ID)
	}

	query := `
		UPDATE transactions
		SET return_date = $2, late_fee = $3
		WHERE transaction_id = $1 AND return_date IS NULL
	`
	result, err := s.db.ExecContext(ctx, query, loan.ID, *loan.ReturnDate, *loan.LateFee)
	if err != nil {
		if IsCheckConstraintViolation(err) {
			log.Warn("check constraint violation while marking loan returned",
				slog.String("error", err.Error()),
				slog.Int64("loan_id", loan.ID))
		} else {
			log.Error("failed to mark loan returned",
				slog.String("error", err.Error()),
				slog.Int64("loan_id", loan.ID))
		}
		return wrapStoreError("loan", "mark_returned", "failed to update loan", err)
	}

	n, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if n == 1 {
		log.Info("loan returned",
			slog.Int64("loan_id", loan.ID),
			slog.Float64("late_fee", *loan.LateFee))
		return nil
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM transactions WHERE transaction_id = $1)`, loan.ID).
		Scan(&exists); err != nil {
		return wrapStoreError("loan", "mark_returned", "failed to check loan", err)
	}
	if !exists {
		return store.ErrLoanNotFound
	}
	return fmt.Errorf("%w: loan %d was already returned", store.ErrUpdateFailed, loan.ID)
}

// ListOpenByUser implements store.LoanStore.ListOpenByUser
func (s *PostgresLoanStore) ListOpenByUser(ctx context.Context, userID int64) ([]domain.OpenLoan, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sqlQuery, args, err := buildOpenLoansQuery(userID)
	if err != nil {
		log.Error("failed to build open loans query", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to build open loans query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		log.Error("failed to list open loans",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return nil, wrapStoreError("loan", "list_open", "failed to list open loans", err)
	}
	defer func() { _ = rows.Close() }()

	loans := make([]domain.OpenLoan, 0)
	for rows.Next() {
		var (
			open    domain.OpenLoan
			lateFee sql.NullFloat64
		)
		if err := rows.Scan(&open.LoanID, &open.BookTitle, &open.BorrowDate, &lateFee); err != nil {
			return nil, fmt.Errorf("failed to scan open loan row: %w", err)
		}
		open.BorrowDate = domain.DateOf(open.BorrowDate)
		if lateFee.Valid {
			fee := lateFee.Float64
			open.LateFee = &fee
		}
		loans = append(loans, open)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreError("loan", "list_open", "failed to read open loan rows", err)
	}

	log.Debug("open loans listed",
		slog.Int64("user_id", userID),
		slog.Int("count", len(loans)))
	return loans, nil
}

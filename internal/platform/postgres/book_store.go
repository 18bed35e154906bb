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

// PostgresBookStore implements the store.BookStore interface
// using a PostgreSQL database as the storage backend.
type PostgresBookStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBookStore creates a new PostgreSQL implementation of the BookStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresBookStore(db store.DBTX, logger *slog.Logger) *PostgresBookStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresBookStore{
		db:     db,
		logger: logger.With(slog.String("component", "book_store")),
	}
}

// Ensure PostgresBookStore implements store.BookStore interface
var _ store.BookStore = (*PostgresBookStore)(nil)

// WithTx returns a new PostgresBookStore that runs its statements on tx.
func (s *PostgresBookStore) WithTx(tx *sql.Tx) *PostgresBookStore {
	return &PostgresBookStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.BookStore.Create
func (s *PostgresBookStore) Create(ctx context.Context, book *domain.Book) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := book.Validate(); err != nil {
		log.Warn("book validation failed during create",
			slog.String("error", err.Error()),
			slog.String("title", book.Title))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO books (title, author, genre, quantity)
		VALUES ($1, $2, $3, $4)
		RETURNING book_id
	`
	err := s.db.QueryRowContext(ctx, query, book.Title, book.Author, book.Genre, book.Quantity).
		Scan(&book.ID)
	if err != nil {
		if IsCheckConstraintViolation(err) {
			log.Warn("check constraint violation during book creation",
				slog.String("error", err.Error()),
				slog.String("title", book.Title),
				slog.Int("quantity", book.Quantity))
		} else {
			log.Error("failed to create book",
				slog.String("error", err.Error()),
				slog.String("title", book.Title))
		}
		return wrapStoreError("book", "create", "failed to insert book", err)
	}

	log.Info("book created successfully",
		slog.Int64("book_id", book.ID),
		slog.Int("quantity", book.Quantity))
	return nil
}

// GetByID implements store.BookStore.GetByID
func (s *PostgresBookStore) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT book_id, title, author, genre, quantity
		FROM books
		WHERE book_id = $1
	`

	var book domain.Book
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Genre,
		&book.Quantity,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("book not found", slog.Int64("book_id", id))
			return nil, store.ErrBookNotFound
		}
		log.Error("failed to get book by ID",
			slog.String("error", err.Error()),
			slog.Int64("book_id", id))
		return nil, wrapStoreError("book", "get", "failed to read book", err)
	}

	return &book, nil
}

// Search implements store.BookStore.Search
func (s *PostgresBookStore) Search(ctx context.Context, query string) ([]domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sqlQuery, args, err := buildSearchBooksQuery(query)
	if err != nil {
		log.Error("failed to build search query", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to build search query: %w", err)
	}

	books, err := s.queryBooks(ctx, sqlQuery, args)
	if err != nil {
		log.Error("failed to search books",
			slog.String("error", err.Error()),
			slog.String("query", query))
		return nil, err
	}

	log.Debug("book search completed",
		slog.String("query", query),
		slog.Int("count", len(books)))
	return books, nil
}

// ListAvailable implements store.BookStore.ListAvailable
func (s *PostgresBookStore) ListAvailable(ctx context.Context) ([]domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sqlQuery, args, err := buildAvailableBooksQuery()
	if err != nil {
		log.Error("failed to build available books query", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to build available books query: %w", err)
	}

	books, err := s.queryBooks(ctx, sqlQuery, args)
	if err != nil {
		log.Error("failed to list available books", slog.String("error", err.Error()))
		return nil, err
	}

	return books, nil
}

func (s *PostgresBookStore) queryBooks(ctx context.Context, query string, args []interface{}) ([]domain.Book, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapStoreError("book", "list", "failed to query books", err)
	}
	defer func() { _ = rows.Close() }()

	books := make([]domain.Book, 0)
	for rows.Next() {
		var book domain.Book
		if err := rows.Scan(&book.ID, &book.Title, &book.Author, &book.Genre, &book.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreError("book", "list", "failed to read book rows", err)
	}

	return books, nil
}

// AdjustQuantity implements store.BookStore.AdjustQuantity
// The WHERE guard keeps quantity non-negative under concurrent borrows.
func (s *PostgresBookStore) AdjustQuantity(ctx context.Context, id int64, delta int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE books
		SET quantity = quantity + $2
		WHERE book_id = $1 AND quantity + $2 >= 0
	`
	result, err := s.db.ExecContext(ctx, query, id, delta)
	if err != nil {
		log.Error("failed to adjust book quantity",
			slog.String("error", err.Error()),
			slog.Int64("book_id", id),
			slog.Int("delta", delta))
		return wrapStoreError("book", "adjust_quantity", "failed to adjust quantity", err)
	}

	n, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if n == 1 {
		log.Debug("book quantity adjusted",
			slog.Int64("book_id", id),
			slog.Int("delta", delta))
		return nil
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM books WHERE book_id = $1)`, id).
		Scan(&exists); err != nil {
		return wrapStoreError("book", "adjust_quantity", "failed to check book", err)
	}
	if !exists {
		return store.ErrBookNotFound
	}

	log.Debug("book quantity adjustment refused, not enough copies",
		slog.Int64("book_id", id),
		slog.Int("delta", delta))
	return store.ErrOutOfStock
}

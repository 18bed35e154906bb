package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/shelf/internal/domain"
	"github.com/phrazzld/shelf/internal/platform/logger"
	"github.com/phrazzld/shelf/internal/store"
)

// CatalogService manages the book catalog.
type CatalogService interface {
	// AddBook adds a title with the given number of copies.
	// Returns ErrInvalidInput if the title is empty or quantity is negative.
	AddBook(ctx context.Context, title, author, genre string, quantity int) (*domain.Book, error)

	// Search returns books whose title, author or genre contains query,
	// ignoring case. Results are ordered by book id.
	Search(ctx context.Context, query string) ([]domain.Book, error)

	// ListAvailable returns books with at least one copy on the shelf.
	ListAvailable(ctx context.Context) ([]domain.Book, error)

	// GetBook retrieves a book by id. Returns ErrBookNotFound if it does not exist.
	GetBook(ctx context.Context, id int64) (*domain.Book, error)
}

type catalogServiceImpl struct {
	books  store.BookStore
	logger *slog.Logger
}

// NewCatalogService creates a new CatalogService.
// It returns an error if books is nil.
func NewCatalogService(books store.BookStore, logger *slog.Logger) (CatalogService, error) {
	if books == nil {
		return nil, &DataAccessError{
			Operation: "create_service",
			Message:   "books cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &catalogServiceImpl{
		books:  books,
		logger: logger.With("component", "catalog_service"),
	}, nil
}

// AddBook implements CatalogService.
func (s *catalogServiceImpl) AddBook(
	ctx context.Context,
	title, author, genre string,
	quantity int,
) (*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	book, err := domain.NewBook(title, author, genre, quantity)
	if err != nil {
		log.Debug("rejected book", "error", err, "title", title, "quantity", quantity)
		return nil, invalidInput(err)
	}

	if err := s.books.Create(ctx, book); err != nil {
		log.Error("failed to add book", "error", err, "title", book.Title)
		return nil, NewDataAccessError("add_book", "failed to save book", err)
	}

	log.Info("book added", "book_id", book.ID, "quantity", book.Quantity)
	return book, nil
}

// Search implements CatalogService.
func (s *catalogServiceImpl) Search(ctx context.Context, query string) ([]domain.Book, error) {
	books, err := s.books.Search(ctx, query)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).
			Error("failed to search books", "error", err, "query", query)
		return nil, NewDataAccessError("search", "failed to search books", err)
	}
	return books, nil
}

// ListAvailable implements CatalogService.
func (s *catalogServiceImpl) ListAvailable(ctx context.Context) ([]domain.Book, error) {
	books, err := s.books.ListAvailable(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).
			Error("failed to list available books", "error", err)
		return nil, NewDataAccessError("list_available", "failed to list available books", err)
	}
	return books, nil
}

// GetBook implements CatalogService.
func (s *catalogServiceImpl) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrBookNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).
			Error("failed to retrieve book", "error", err, "book_id", id)
		return nil, NewDataAccessError("get_book", "failed to retrieve book", err)
	}
	return book, nil
}

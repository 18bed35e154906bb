package store

import (
	"context"

	"github.com/phrazzld/shelf/internal/domain"
)

// BookStore defines the interface for catalog persistence.
type BookStore interface {
	// Create saves a new book and sets its generated ID.
	// Returns ErrInvalidEntity if the book fails validation.
	Create(ctx context.Context, book *domain.Book) error

	// GetByID retrieves a book by its ID.
	// Returns ErrBookNotFound if the book does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Book, error)

	// Search returns books whose title, author or genre contains query,
	// ignoring case and treating wildcard characters literally.
	// An empty query matches every book. Results are ordered by ID.
	Search(ctx context.Context, query string) ([]domain.Book, error)

	// ListAvailable returns books with at least one copy on the shelf, ordered by ID.
	ListAvailable(ctx context.Context) ([]domain.Book, error)

	// AdjustQuantity adds delta to the book's quantity in a single statement.
	// Returns ErrOutOfStock, leaving the row untouched, if the result would be negative.
	// Returns ErrBookNotFound if the book does not exist.
	AdjustQuantity(ctx context.Context, id int64, delta int) error
}

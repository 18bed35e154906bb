package mocks

import (
	"context"

	"github.com/phrazzld/shelf/internal/domain"
	"github.com/phrazzld/shelf/internal/store"
)

// MockBookStore implements store.BookStore for testing
type MockBookStore struct {
	CreateFn         func(ctx context.Context, book *domain.Book) error
	GetByIDFn        func(ctx context.Context, id int64) (*domain.Book, error)
	SearchFn         func(ctx context.Context, query string) ([]domain.Book, error)
	ListAvailableFn  func(ctx context.Context) ([]domain.Book, error)
	AdjustQuantityFn func(ctx context.Context, id int64, delta int) error

	// Default response values
	Book  *domain.Book
	Books []domain.Book
	Err   error

	Calls CallLog
}

var _ store.BookStore = (*MockBookStore)(nil)

// Create implements store.BookStore
func (m *MockBookStore) Create(ctx context.Context, book *domain.Book) error {
	m.Calls.record("Create", book)
	if m.CreateFn != nil {
		return m.CreateFn(ctx, book)
	}
	return m.Err
}

// GetByID implements store.BookStore
func (m *MockBookStore) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	m.Calls.record("GetByID", id)
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.Book, m.Err
}

// Search implements store.BookStore
func (m *MockBookStore) Search(ctx context.Context, query string) ([]domain.Book, error) {
	m.Calls.record("Search", query)
	if m.SearchFn != nil {
		return m.SearchFn(ctx, query)
	}
	return m.Books, m.Err
}

// ListAvailable implements store.BookStore
func (m *MockBookStore) ListAvailable(ctx context.Context) ([]domain.Book, error) {
	m.Calls.record("ListAvailable")
	if m.ListAvailableFn != nil {
		return m.ListAvailableFn(ctx)
	}
	return m.Books, m.Err
}

// AdjustQuantity implements store.BookStore
func (m *MockBookStore) AdjustQuantity(ctx context.Context, id int64, delta int) error {
	m.Calls.record("AdjustQuantity", id, delta)
	if m.AdjustQuantityFn != nil {
		return m.AdjustQuantityFn(ctx, id, delta)
	}
	return m.Err
}

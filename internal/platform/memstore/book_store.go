package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/phrazzld/shelf/internal/domain"
	"github.com/phrazzld/shelf/internal/store"
)

// BookStore implements store.BookStore in memory.
type BookStore struct {
	h *handle
}

// Ensure BookStore implements store.BookStore interface
var _ store.BookStore = (*BookStore)(nil)

// Create implements store.BookStore.Create
func (s *BookStore) Create(ctx context.Context, book *domain.Book) error {
	if err := book.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	return s.h.do(ctx, func(st *state) error {
		st.nextBookID++
		book.ID = st.nextBookID
		st.books[book.ID] = *book
		return nil
	})
}

// GetByID implements store.BookStore.GetByID
func (s *BookStore) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	var book domain.Book
	err := s.h.do(ctx, func(st *state) error {
		b, ok := st.books[id]
		if !ok {
			return store.ErrBookNotFound
		}
		book = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Search implements store.BookStore.Search
func (s *BookStore) Search(ctx context.Context, query string) ([]domain.Book, error) {
	needle := strings.ToLower(query)
	return s.list(ctx, func(b domain.Book) bool {
		return strings.Contains(strings.ToLower(b.Title), needle) ||
			strings.Contains(strings.ToLower(b.Author), needle) ||
			strings.Contains(strings.ToLower(b.Genre), needle)
	})
}

// ListAvailable implements store.BookStore.ListAvailable
func (s *BookStore) ListAvailable(ctx context.Context) ([]domain.Book, error) {
	return s.list(ctx, func(b domain.Book) bool {
		return b.IsAvailable()
	})
}

func (s *BookStore) list(ctx context.Context, keep func(domain.Book) bool) ([]domain.Book, error) {
	books := make([]domain.Book, 0)
	err := s.h.do(ctx, func(st *state) error {
		for _, b := range st.books {
			if keep(b) {
				books = append(books, b)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
	return books, nil
}

// AdjustQuantity implements store.BookStore.AdjustQuantity
func (s *BookStore) AdjustQuantity(ctx context.Context, id int64, delta int) error {
	return s.h.do(ctx, func(st *state) error {
		b, ok := st.books[id]
		if !ok {
			return store.ErrBookNotFound
		}
		if b.Quantity+delta < 0 {
			return store.ErrOutOfStock
		}
		b.Quantity += delta
		st.books[id] = b
		return nil
	})
}

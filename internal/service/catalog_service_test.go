package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/shelf/internal/domain"
	"github.com/phrazzld/shelf/internal/mocks"
	"github.com/phrazzld/shelf/internal/service"
	"github.com/phrazzld/shelf/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(books []domain.Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.Title)
	}
	return out
}

func TestCatalog_SearchTolkien(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	f.addBook(t, "The Hobbit", "J.R.R. Tolkien", 2)
	f.addBook(t, "Dune", "Frank Herbert", 1)
	f.addBook(t, "The Lord of the Rings", "J.R.R. Tolkien", 0)
	f.addBook(t, "Tolkien: A Biography", "Humphrey Carpenter", 1)

	found, err := f.catalog.Search(ctx, "Tolkien")
	require.NoError(t, err)
	assert.Equal(t, []string{"The Hobbit", "The Lord of the Rings", "Tolkien: A Biography"}, titles(found))

	lower, err := f.catalog.Search(ctx, "tolkien")
	require.NoError(t, err)
	assert.Equal(t, titles(found), titles(lower), "search ignores case")

	byGenre, err := f.catalog.Search(ctx, "fiction")
	require.NoError(t, err)
	assert.Len(t, byGenre, 4)

	all, err := f.catalog.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	none, err := f.catalog.Search(ctx, "%")
	require.NoError(t, err)
	assert.Empty(t, none, "wildcards match literally")
}

func TestCatalog_ListAvailable(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	f.addBook(t, "The Hobbit", "J.R.R. Tolkien", 1)
	f.addBook(t, "Out of Print", "Nobody", 0)
	f.addBook(t, "Dune", "Frank Herbert", 3)

	available, err := f.catalog.ListAvailable(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"The Hobbit", "Dune"}, titles(available))
}

func TestCatalog_AddBook(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	book, err := f.catalog.AddBook(ctx, "  Dune ", "Frank Herbert", "SF", 4)
	require.NoError(t, err)
	assert.Positive(t, book.ID)
	assert.Equal(t, "Dune", book.Title)

	got, err := f.catalog.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, book, got)
}

func TestCatalog_AddBookRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		title    string
		quantity int
		want     error
	}{
		{name: "negative quantity", title: "Dune", quantity: -1, want: domain.ErrInvalidQuantity},
		{name: "blank title", title: "   ", quantity: 1, want: domain.ErrEmptyTitle},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			books := &mocks.MockBookStore{}
			svc, err := service.NewCatalogService(books, discardLogger)
			require.NoError(t, err)

			_, err = svc.AddBook(context.Background(), tc.title, "Author", "Genre", tc.quantity)

			assert.ErrorIs(t, err, service.ErrInvalidInput)
			assert.ErrorIs(t, err, tc.want)
			assert.False(t, service.IsDataAccessFailure(err))
			assert.Zero(t, books.Calls.Count("Create"), "invalid books never reach the store")
		})
	}
}

func TestCatalog_StoreFailures(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dbErr := errors.New("connection refused")
	svc, err := service.NewCatalogService(&mocks.MockBookStore{Err: dbErr}, discardLogger)
	require.NoError(t, err)

	_, err = svc.AddBook(ctx, "Dune", "Frank Herbert", "SF", 1)
	assert.True(t, service.IsDataAccessFailure(err))
	assert.ErrorIs(t, err, dbErr)

	_, err = svc.Search(ctx, "x")
	assert.True(t, service.IsDataAccessFailure(err))

	_, err = svc.ListAvailable(ctx)
	assert.True(t, service.IsDataAccessFailure(err))

	_, err = svc.GetBook(ctx, 1)
	assert.True(t, service.IsDataAccessFailure(err))
}

func TestCatalog_GetBookNotFound(t *testing.T) {
	t.Parallel()
	svc, err := service.NewCatalogService(&mocks.MockBookStore{Err: store.ErrBookNotFound}, discardLogger)
	require.NoError(t, err)

	_, err = svc.GetBook(context.Background(), 42)

	assert.ErrorIs(t, err, service.ErrBookNotFound)
	assert.False(t, service.IsDataAccessFailure(err))
}

func TestNewCatalogService_NilStore(t *testing.T) {
	t.Parallel()
	svc, err := service.NewCatalogService(nil, nil)
	assert.Error(t, err)
	assert.Nil(t, svc)
}

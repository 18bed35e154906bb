// Package mocks provides centralized mock implementations of the store
// interfaces for testing.
//
// Each mock has a function field per interface method. When the field is nil
// the method returns the mock's default values (or, for MockTransactor, runs
// the unit of work against the configured Stores). Every call is recorded so
// tests can verify what the code under test asked for.
//
// Usage:
//
//	books := &mocks.MockBookStore{
//	    GetByIDFn: func(ctx context.Context, id int64) (*domain.Book, error) {
//	        return nil, store.ErrBookNotFound
//	    },
//	}
//	svc, _ := service.NewCatalogService(books, logger)
//	// ...
//	assert.Equal(t, 1, books.Calls.Count("GetByID"))
package mocks

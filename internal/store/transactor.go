package store

import "context"

// Stores groups the per-entity stores that share one database handle
// or one transaction.
type Stores struct {
	Books BookStore
	Users UserStore
	Loans LoanStore
}

// StoresFn is a unit of work run against transaction-bound stores.
type StoresFn func(ctx context.Context, s Stores) error

// Transactor runs units of work atomically: every write made through the
// Stores passed to fn is committed together, or none is when fn returns an
// error or panics.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn StoresFn) error
}

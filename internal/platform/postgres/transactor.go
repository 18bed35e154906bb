package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/shelf/internal/store"
)

// Stores is the set of PostgreSQL stores bound to one handle.
type Stores struct {
	Books *PostgresBookStore
	Users *PostgresUserStore
	Loans *PostgresLoanStore
}

// NewStores builds the book, user and loan stores on db.
func NewStores(db *sql.DB, logger *slog.Logger) *Stores {
	return &Stores{
		Books: NewPostgresBookStore(db, logger),
		Users: NewPostgresUserStore(db, logger),
		Loans: NewPostgresLoanStore(db, logger),
	}
}

// WithTx returns the stores rebound to tx.
func (s *Stores) WithTx(tx *sql.Tx) *Stores {
	return &Stores{
		Books: s.Books.WithTx(tx),
		Users: s.Users.WithTx(tx),
		Loans: s.Loans.WithTx(tx),
	}
}

// Store returns the stores as the backend-neutral store.Stores.
func (s *Stores) Store() store.Stores {
	return store.Stores{Books: s.Books, Users: s.Users, Loans: s.Loans}
}

// Transactor implements store.Transactor on a *sql.DB.
type Transactor struct {
	db     *sql.DB
	stores *Stores
}

// NewTransactor creates a Transactor whose units of work run on db.
func NewTransactor(db *sql.DB, stores *Stores) *Transactor {
	return &Transactor{db: db, stores: stores}
}

// Ensure Transactor implements store.Transactor interface
var _ store.Transactor = (*Transactor)(nil)

// RunInTransaction implements store.Transactor.RunInTransaction
func (t *Transactor) RunInTransaction(ctx context.Context, fn store.StoresFn) error {
	return store.RunInTransaction(ctx, t.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, t.stores.WithTx(tx).Store())
	})
}

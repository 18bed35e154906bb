package memstore

import (
	"context"
	"log/slog"
	"sync"

	"github.com/phrazzld/shelf/internal/domain"
	"github.com/phrazzld/shelf/internal/store"
)

// state is one consistent copy of every table.
type state struct {
	books map[int64]domain.Book
	users map[int64]domain.User
	loans map[int64]domain.Loan

	nextBookID int64
	nextUserID int64
	nextLoanID int64
}

func newState() *state {
	return &state{
		books: make(map[int64]domain.Book),
		users: make(map[int64]domain.User),
		loans: make(map[int64]domain.Loan),
	}
}

func (s *state) clone() *state {
	c := &state{
		books:      make(map[int64]domain.Book, len(s.books)),
		users:      make(map[int64]domain.User, len(s.users)),
		loans:      make(map[int64]domain.Loan, len(s.loans)),
		nextBookID: s.nextBookID,
		nextUserID: s.nextUserID,
		nextLoanID: s.nextLoanID,
	}
	for id, b := range s.books {
		c.books[id] = b
	}
	for id, u := range s.users {
		c.users[id] = u
	}
	for id, l := range s.loans {
		c.loans[id] = copyLoan(l)
	}
	return c
}

// copyLoan detaches the loan's pointer fields from the stored value.
func copyLoan(l domain.Loan) domain.Loan {
	if l.ReturnDate != nil {
		d := *l.ReturnDate
		l.ReturnDate = &d
	}
	if l.LateFee != nil {
		f := *l.LateFee
		l.LateFee = &f
	}
	return l
}

// DB is an in-memory database holding books, users and loans.
type DB struct {
	mu     sync.Mutex
	data   *state
	logger *slog.Logger
}

// New creates an empty DB. If logger is nil, a default logger will be used.
func New(logger *slog.Logger) *DB {
	if logger == nil {
		logger = slog.Default()
	}
	return &DB{
		data:   newState(),
		logger: logger.With(slog.String("component", "memstore")),
	}
}

// Ensure DB implements store.Transactor interface
var _ store.Transactor = (*DB)(nil)

// Stores returns stores that operate directly on the live data; every call is
// atomic on its own.
func (db *DB) Stores() store.Stores {
	h := &handle{db: db}
	return store.Stores{
		Books: &BookStore{h: h},
		Users: &UserStore{h: h},
		Loans: &LoanStore{h: h},
	}
}

// RunInTransaction implements store.Transactor.RunInTransaction
func (db *DB) RunInTransaction(ctx context.Context, fn store.StoresFn) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	h := &handle{db: db, tx: db.data.clone()}
	stores := store.Stores{
		Books: &BookStore{h: h},
		Users: &UserStore{h: h},
		Loans: &LoanStore{h: h},
	}

	defer func() {
		if p := recover(); p != nil {
			db.logger.Error("rolled back transaction after panic", slog.Any("panic", p))
			// ALLOW-PANIC: propagating caught panic from transaction
			panic(p)
		}
	}()

	if err := fn(ctx, stores); err != nil {
		db.logger.Debug("rolled back transaction due to error", slog.String("error", err.Error()))
		return err
	}

	db.data = h.tx
	h.tx = nil
	db.logger.Debug("transaction committed successfully")
	return nil
}

// handle routes store calls either to a transaction's private copy or to the
// live data under the DB mutex.
type handle struct {
	db *DB
	tx *state
}

// do runs fn on the data the handle is bound to. Mutations validate before
// they assign, so a failed call leaves the data untouched.
func (h *handle) do(ctx context.Context, fn func(s *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if h.tx != nil {
		return fn(h.tx)
	}
	h.db.mu.Lock()
	defer h.db.mu.Unlock()
	return fn(h.db.data)
}

package service_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/shelf/internal/domain"
	"github.com/phrazzld/shelf/internal/events"
	"github.com/phrazzld/shelf/internal/platform/memstore"
	"github.com/phrazzld/shelf/internal/service"
	"github.com/phrazzld/shelf/internal/store"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// day0 is the borrow date used by the fee scenarios.
var day0 = time.Date(2024, time.March, 1, 10, 30, 0, 0, time.UTC)

// fakeClock is a Clock whose time only moves when a test says so.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AdvanceDays(days int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.AddDate(0, 0, days)
}

// recordingHandler keeps every event it receives.
type recordingHandler struct {
	mu     sync.Mutex
	events []*events.Event
}

func (h *recordingHandler) HandleEvent(_ context.Context, e *events.Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
	return nil
}

func (h *recordingHandler) types() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, 0, len(h.events))
	for _, e := range h.events {
		out = append(out, e.Type)
	}
	return out
}

// fixture wires the three services to one in-memory database.
type fixture struct {
	db      *memstore.DB
	stores  store.Stores
	catalog service.CatalogService
	members service.MembershipService
	loans   service.LoanService
	clock   *fakeClock
	emitter *events.InMemoryEventEmitter
	events  *recordingHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := memstore.New(discardLogger)
	f := &fixture{
		db:      db,
		stores:  db.Stores(),
		clock:   newFakeClock(day0),
		emitter: events.NewInMemoryEventEmitter(discardLogger),
		events:  &recordingHandler{},
	}
	f.emitter.RegisterHandler(f.events)

	var err error
	f.catalog, err = service.NewCatalogService(f.stores.Books, discardLogger)
	require.NoError(t, err)
	f.members, err = service.NewMembershipService(f.stores.Users, discardLogger)
	require.NoError(t, err)
	f.loans = f.loanService(t, db)

	return f
}

// loanService builds a loan service on the fixture's data with a different transactor.
func (f *fixture) loanService(t *testing.T, tx store.Transactor) service.LoanService {
	t.Helper()
	svc, err := service.NewLoanService(
		tx,
		f.stores.Loans,
		domain.DefaultFeePolicy,
		f.clock,
		f.emitter,
		discardLogger,
	)
	require.NoError(t, err)
	return svc
}

func (f *fixture) addBook(t *testing.T, title, author string, quantity int) *domain.Book {
	t.Helper()
	book, err := f.catalog.AddBook(context.Background(), title, author, "Fiction", quantity)
	require.NoError(t, err)
	return book
}

func (f *fixture) register(t *testing.T, name string) *domain.User {
	t.Helper()
	user, err := f.members.Register(context.Background(), name, "reader@example.com", "555-0100")
	require.NoError(t, err)
	return user
}

func (f *fixture) quantity(t *testing.T, bookID int64) int {
	t.Helper()
	book, err := f.catalog.GetBook(context.Background(), bookID)
	require.NoError(t, err)
	return book.Quantity
}

// failingTransactor runs units of work on an inner Transactor but makes the
// book store's AdjustQuantity fail, which is the second write of both borrow
// and return.
type failingTransactor struct {
	inner store.Transactor
	err   error
}

func (f *failingTransactor) RunInTransaction(ctx context.Context, fn store.StoresFn) error {
	return f.inner.RunInTransaction(ctx, func(ctx context.Context, s store.Stores) error {
		s.Books = &failingBookStore{BookStore: s.Books, err: f.err}
		return fn(ctx, s)
	})
}

type failingBookStore struct {
	store.BookStore
	err error
}

func (s *failingBookStore) AdjustQuantity(context.Context, int64, int) error {
	return s.err
}

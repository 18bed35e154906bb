package mocks

import (
	"context"

	"github.com/phrazzld/shelf/internal/store"
)

// MockTransactor implements store.Transactor for testing. By default it runs
// the unit of work directly against Stores and returns its error; nothing is
// rolled back.
type MockTransactor struct {
	RunInTransactionFn func(ctx context.Context, fn store.StoresFn) error

	Stores store.Stores

	Calls CallLog
}

var _ store.Transactor = (*MockTransactor)(nil)

// RunInTransaction implements store.Transactor
func (m *MockTransactor) RunInTransaction(ctx context.Context, fn store.StoresFn) error {
	m.Calls.record("RunInTransaction")
	if m.RunInTransactionFn != nil {
		return m.RunInTransactionFn(ctx, fn)
	}
	return fn(ctx, m.Stores)
}

package mocks

import (
	"context"

	"github.com/phrazzld/shelf/internal/domain"
	"github.com/phrazzld/shelf/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	CreateFn  func(ctx context.Context, user *domain.User) error
	GetByIDFn func(ctx context.Context, id int64) (*domain.User, error)

	// Default response values
	User *domain.User
	Err  error

	Calls CallLog
}

var _ store.UserStore = (*MockUserStore)(nil)

// Create implements store.UserStore
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	m.Calls.record("Create", user)
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	return m.Err
}

// GetByID implements store.UserStore
func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	m.Calls.record("GetByID", id)
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.User, m.Err
}

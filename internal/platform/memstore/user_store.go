package memstore

import (
	"context"
	"fmt"

	"github.com/phrazzld/shelf/internal/domain"
	"github.com/phrazzld/shelf/internal/store"
)

// UserStore implements store.UserStore in memory.
type UserStore struct {
	h *handle
}

// Ensure UserStore implements store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

// Create implements store.UserStore.Create
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	return s.h.do(ctx, func(st *state) error {
		st.nextUserID++
		user.ID = st.nextUserID
		st.users[user.ID] = *user
		return nil
	})
}

// GetByID implements store.UserStore.GetByID
func (s *UserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := s.h.do(ctx, func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return store.ErrUserNotFound
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

package store

import (
	"context"

	"github.com/phrazzld/shelf/internal/domain"
)

// UserStore defines the interface for member persistence.
// Email addresses are not unique.
type UserStore interface {
	// Create saves a new user and sets its generated ID.
	// Returns ErrInvalidEntity if the user fails validation.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

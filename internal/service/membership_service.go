package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/shelf/internal/domain"
	"github.com/phrazzld/shelf/internal/platform/logger"
	"github.com/phrazzld/shelf/internal/store"
)

// MembershipService registers library members.
type MembershipService interface {
	// Register creates a member. Several members may share an email address.
	Register(ctx context.Context, name, email, phone string) (*domain.User, error)

	// GetUser retrieves a member by id. Returns ErrUserNotFound if it does not exist.
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

type membershipServiceImpl struct {
	users  store.UserStore
	logger *slog.Logger
}

// NewMembershipService creates a new MembershipService.
// It returns an error if users is nil.
func NewMembershipService(users store.UserStore, logger *slog.Logger) (MembershipService, error) {
	if users == nil {
		return nil, &DataAccessError{
			Operation: "create_service",
			Message:   "users cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &membershipServiceImpl{
		users:  users,
		logger: logger.With("component", "membership_service"),
	}, nil
}

// Register implements MembershipService.
func (s *membershipServiceImpl) Register(
	ctx context.Context,
	name, email, phone string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(name, email, phone)
	if err != nil {
		log.Debug("rejected registration", "error", err)
		return nil, invalidInput(err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		log.Error("failed to register user", "error", err)
		return nil, NewDataAccessError("register", "failed to save user", err)
	}

	log.Info("user registered", "user_id", user.ID)
	return user, nil
}

// GetUser implements MembershipService.
func (s *membershipServiceImpl) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).
			Error("failed to retrieve user", "error", err, "user_id", id)
		return nil, NewDataAccessError("get_user", "failed to retrieve user", err)
	}
	return user, nil
}

package ports

import (
	"context"

	"github.com/helpingbuddy/forum-api/internal/core/domain"
)

// UserRepository defines the persistence interface for forum members.
type UserRepository interface {
	// Create persists a new user. Returns domain.ErrUserExists when the
	// username is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// FindByUsername looks up a user by exact (lowercase) username.
	// Returns domain.ErrUserNotFound when absent.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindByID looks up a user by id. Returns domain.ErrUserNotFound when absent.
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// FindByIDs returns the users for the given ids, skipping ids that no
	// longer resolve. Used to materialize room participants.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)

	// Update overwrites the mutable profile fields (username, email).
	// Returns domain.ErrUserExists when the new username collides with
	// another user, domain.ErrUserNotFound when the user is gone.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
}

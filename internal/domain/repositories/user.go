package repositories

import (
	"context"

	"saves/internal/domain/models"
)

// UserRepository defines data access operations for user profiles
type UserRepository interface {
	// Create inserts a profile row for an authenticated subject.
	// Returns a ConflictError when the username is already taken.
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a profile by user ID
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByUsername retrieves a profile by lowercase username
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// Update applies a partial profile update. Nil fields are left unchanged.
	// Returns a ConflictError when a username change loses the uniqueness race.
	Update(ctx context.Context, id string, update *UserUpdate) error

	// UsernameExists reports whether a lowercase username is taken
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// UserUpdate carries the mutable profile fields. A nil pointer means the
// field was absent from the request and must not change.
type UserUpdate struct {
	Name     *string
	Username *string
	IsPublic *bool
}

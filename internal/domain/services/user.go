package services

import (
	"context"

	"saves/internal/domain/models"
	"saves/internal/domain/repositories"
)

// UserService handles profile business logic
type UserService interface {
	// CreateProfile creates the profile row during onboarding. Username
	// collisions surface as ConflictError caught from the unique constraint.
	CreateProfile(ctx context.Context, req *CreateProfileRequest) (*models.User, error)

	// GetByID retrieves a profile by user ID
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByUsername retrieves a profile by username (case-insensitive)
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// UpdateProfile applies a partial profile update
	UpdateProfile(ctx context.Context, userID string, update *repositories.UserUpdate) error

	// UsernameAvailable reports whether a username can still be claimed
	UsernameAvailable(ctx context.Context, username string) (bool, error)
}

// CreateProfileRequest represents the onboarding request
type CreateProfileRequest struct {
	UserID   string  `json:"-"`
	Username string  `json:"username"`
	Name     *string `json:"name,omitempty"`
}

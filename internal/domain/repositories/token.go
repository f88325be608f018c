package repositories

import (
	"context"

	"saves/internal/domain/models"
)

// ExtensionTokenRepository defines data access operations for extension tokens
type ExtensionTokenRepository interface {
	// Create persists a freshly issued token
	Create(ctx context.Context, token *models.ExtensionToken) error

	// GetByToken retrieves a token record by its opaque value, revoked or not
	GetByToken(ctx context.Context, token string) (*models.ExtensionToken, error)

	// RevokeAllForUser marks every token of a user revoked.
	// Returns the number of tokens revoked.
	RevokeAllForUser(ctx context.Context, userID string) (int, error)

	// SetLastUsedCollection updates the last-used folder cache on a token
	SetLastUsedCollection(ctx context.Context, id string, collectionID *string) error
}

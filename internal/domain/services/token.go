package services

import (
	"context"

	"saves/internal/domain/models"
)

// ExtensionTokenService manages the bearer tokens that bind a browser
// extension install to a user account.
type ExtensionTokenService interface {
	// Issue generates and persists a new opaque token for a user. The caller
	// must have authenticated the user's web session already.
	Issue(ctx context.Context, userID string) (string, error)

	// Resolve looks up a bearer token and returns its record. Missing or
	// revoked tokens yield ErrUnauthorized; callers must not touch any data
	// before this succeeds.
	Resolve(ctx context.Context, token string) (*models.ExtensionToken, error)

	// RevokeAll revokes every token of a user. Returns the count revoked.
	RevokeAll(ctx context.Context, userID string) (int, error)

	// TouchLastFolder records collectionID as the token's last save target,
	// skipping the write when the value is unchanged.
	TouchLastFolder(ctx context.Context, token *models.ExtensionToken, collectionID *string) error
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"saves/internal/domain"
	"saves/internal/domain/models"
	"saves/internal/domain/repositories"
	"saves/internal/domain/services"
)

type extensionTokenService struct {
	tokenRepo repositories.ExtensionTokenRepository
	logger    *slog.Logger
}

// NewExtensionTokenService creates a new extension token service
func NewExtensionTokenService(
	tokenRepo repositories.ExtensionTokenRepository,
	logger *slog.Logger,
) services.ExtensionTokenService {
	return &extensionTokenService{
		tokenRepo: tokenRepo,
		logger:    logger,
	}
}

// Issue generates and persists a new opaque token. The handshake endpoint
// performs no credential check of its own beyond the existing session, so
// this must only run for an authenticated user.
func (s *extensionTokenService) Issue(ctx context.Context, userID string) (string, error) {
	token := &models.ExtensionToken{
		Token:  uuid.NewString(),
		UserID: userID,
	}

	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return "", err
	}

	s.logger.Info("extension token issued", "token_id", token.ID, "user_id", userID)

	return token.Token, nil
}

// Resolve looks up a bearer token; missing or revoked tokens are both
// reported as unauthorized so the extension cannot tell them apart
func (s *extensionTokenService) Resolve(ctx context.Context, token string) (*models.ExtensionToken, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: missing extension token", domain.ErrUnauthorized)
	}

	record, err := s.tokenRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid or revoked extension token", domain.ErrUnauthorized)
		}
		return nil, err
	}

	if record.Revoked {
		return nil, fmt.Errorf("%w: invalid or revoked extension token", domain.ErrUnauthorized)
	}

	return record, nil
}

// RevokeAll revokes every token of a user
func (s *extensionTokenService) RevokeAll(ctx context.Context, userID string) (int, error) {
	revoked, err := s.tokenRepo.RevokeAllForUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	s.logger.Info("extension tokens revoked", "user_id", userID, "count", revoked)

	return revoked, nil
}

// TouchLastFolder records the last save target, skipping redundant writes.
// Two rapid saves may leave either value; the field is a UX default only.
func (s *extensionTokenService) TouchLastFolder(ctx context.Context, token *models.ExtensionToken, collectionID *string) error {
	if sameCollection(token.LastUsedCollectionID, collectionID) {
		return nil
	}

	if err := s.tokenRepo.SetLastUsedCollection(ctx, token.ID, collectionID); err != nil {
		return err
	}

	token.LastUsedCollectionID = collectionID
	return nil
}

func sameCollection(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

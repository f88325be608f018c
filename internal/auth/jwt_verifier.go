package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"saves/internal/domain"
	"saves/internal/domain/models"
)

// JWKSSessionVerifier implements SessionVerifier using the auth provider's
// JWKS endpoint.
type JWKSSessionVerifier struct {
	jwks   keyfunc.Keyfunc
	logger *slog.Logger
}

// NewSessionVerifier creates a verifier that fetches public keys from the
// auth provider's JWKS endpoint. Keys are cached and refreshed automatically
// based on HTTP cache headers.
func NewSessionVerifier(jwksURL string, logger *slog.Logger) (SessionVerifier, error) {
	if jwksURL == "" {
		return nil, errors.New("JWKS URL cannot be empty")
	}

	ctx := context.Background()
	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to create JWKS client: %w", err)
	}

	logger.Info("session verifier initialized", "jwks_url", jwksURL)

	return &JWKSSessionVerifier{
		jwks:   jwks,
		logger: logger,
	}, nil
}

// VerifyToken validates a session JWT and extracts its claims.
func (v *JWKSSessionVerifier) VerifyToken(tokenString string) (*models.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, v.jwks.Keyfunc)
	if err != nil {
		v.logger.Debug("session token parse failed", "error", err.Error())
		return nil, domain.ErrUnauthorized
	}

	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	// Prevent algorithm confusion attacks - allow only RS256 or ES256
	switch token.Method.Alg() {
	case "RS256", "ES256":
		// allowed
	default:
		v.logger.Warn("session token uses unexpected algorithm", "algorithm", token.Method.Alg())
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if claims.Subject == "" {
		return nil, domain.ErrUnauthorized
	}

	// Reject anonymous tokens
	if claims.Role != "authenticated" {
		v.logger.Debug("session token has invalid role", "role", claims.Role)
		return nil, domain.ErrUnauthorized
	}

	return claims, nil
}

// Close releases resources held by the verifier. keyfunc manages its own
// refresh lifecycle, so this is a no-op kept for shutdown symmetry.
func (v *JWKSSessionVerifier) Close() error {
	return nil
}

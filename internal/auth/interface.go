package auth

import "saves/internal/domain/models"

// SessionVerifier defines the interface for web-session token verification.
// The auth provider issues and manages sessions; this side only verifies.
type SessionVerifier interface {
	// VerifyToken validates a session JWT and returns the parsed claims.
	// Returns an error if the token is invalid, expired, or has an invalid signature.
	VerifyToken(tokenString string) (*models.SessionClaims, error)

	// Close releases any resources held by the verifier.
	Close() error
}

package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims represents the JWT claims issued by the external auth
// provider for web sessions. The subject claim is the user ID.
type SessionClaims struct {
	jwt.RegisteredClaims
	Email       string `json:"email"`
	Role        string `json:"role"` // "authenticated" or "anon"
	SessionID   string `json:"session_id"`
	IsAnonymous bool   `json:"is_anonymous"`
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *SessionClaims) GetUserID() string {
	return c.Subject
}

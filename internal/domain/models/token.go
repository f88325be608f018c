package models

import "time"

// ExtensionToken binds a browser-extension install to a user account. The
// opaque token value is the sole credential on extension requests; revocation
// is terminal. LastUsedCollectionID is a UX default only - a race between two
// rapid saves may leave either value and that is acceptable.
type ExtensionToken struct {
	ID                   string    `json:"id" db:"id"`
	Token                string    `json:"token" db:"token"` // globally unique
	UserID               string    `json:"user_id" db:"user_id"`
	Revoked              bool      `json:"revoked" db:"revoked"`
	LastUsedCollectionID *string   `json:"last_used_collection_id" db:"last_used_collection_id"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
}

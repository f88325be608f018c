package models

import "time"

// User is the profile row owned by an auth-provider subject. The provider
// handles credentials and sessions; this table only stores profile data.
type User struct {
	ID        string    `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"` // unique, stored lowercase
	Name      *string   `json:"name" db:"name"`
	Image     *string   `json:"image" db:"image"`
	IsPublic  bool      `json:"is_public" db:"is_public"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

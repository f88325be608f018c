package models

import "time"

// Bookmark is a saved URL, optionally filed into one collection owned by the
// same user. Archiving is the soft-delete path used by the web app; the
// extension deletes hard.
type Bookmark struct {
	ID           string    `json:"id" db:"id"`
	URL          string    `json:"url" db:"url"` // canonical form, see urlnorm
	Domain       string    `json:"domain" db:"domain"`
	Title        *string   `json:"title" db:"title"`
	FaviconURL   *string   `json:"favicon_url" db:"favicon_url"`
	UserID       string    `json:"user_id" db:"user_id"`
	CollectionID *string   `json:"collection_id" db:"collection_id"` // NULL = unfiled
	IsArchived   bool      `json:"is_archived" db:"is_archived"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

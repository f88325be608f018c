package models

import (
	"strings"
	"time"
)

// Visibility controls who may read a collection and its bookmarks.
type Visibility string

const (
	VisibilityPublic  Visibility = "PUBLIC"
	VisibilityPrivate Visibility = "PRIVATE"
)

// Valid reports whether v is a known visibility value.
func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// CollectionType distinguishes user-created folders from system ones.
type CollectionType string

const (
	CollectionTypeUser   CollectionType = "USER"
	CollectionTypeSystem CollectionType = "SYSTEM"
)

// Collection is a folder in a per-user forest. ParentID, when set, must
// reference a collection owned by the same user; the tree is acyclic by
// construction because parents must exist before children and parent
// reassignment is not supported.
type Collection struct {
	ID         string         `json:"id" db:"id"`
	Name       string         `json:"name" db:"name"`
	Visibility Visibility     `json:"visibility" db:"visibility"`
	Type       CollectionType `json:"type" db:"type"`
	ParentID   *string        `json:"parent_id" db:"parent_id"` // NULL = root level
	UserID     string         `json:"user_id" db:"user_id"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at" db:"updated_at"`
}

// ReservedCollectionName is the synthetic root folder name shown in every
// listing surface. Real folders may not take it.
const ReservedCollectionName = "all"

// IsReservedCollectionName reports whether name collides with the synthetic
// "All" folder after trimming, case-insensitively.
func IsReservedCollectionName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), ReservedCollectionName)
}

package services

import (
	"context"

	"saves/internal/domain/models"
)

// ProfileService composes the public profile view: profile gate, folder
// listing, breadcrumbs and bookmarks for one folder of one user.
type ProfileService interface {
	// ViewProfile renders the profile of username as seen by viewerID
	// (empty = anonymous), scoped to folderID (nil = root). Private profiles
	// and private or foreign folders yield ErrNotFound, never ErrForbidden.
	ViewProfile(ctx context.Context, username, viewerID string, folderID *string) (*ProfileView, error)
}

// ProfileView is the response of ViewProfile
type ProfileView struct {
	User        *models.User        `json:"user"`
	IsOwner     bool                `json:"is_owner"`
	Breadcrumbs []models.Breadcrumb `json:"breadcrumbs"`
	Collections []models.Collection `json:"collections"`
	Bookmarks   []models.Bookmark   `json:"bookmarks"`
}

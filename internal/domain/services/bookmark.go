package services

import (
	"context"

	"saves/internal/domain/models"
)

// BookmarkService handles bookmark business logic. Every ingestion path
// normalizes URLs before storing or comparing.
type BookmarkService interface {
	// CreateBatch saves a batch of URLs from the web app, skipping rows that
	// already exist for the user. Returns the number of bookmarks created.
	CreateBatch(ctx context.Context, req *CreateBookmarksRequest) (int, error)

	// SaveFromExtension saves a single URL. When a non-archived bookmark with
	// the same canonical URL already exists for the user, it is returned with
	// duplicate=true instead of creating a second row.
	SaveFromExtension(ctx context.Context, req *SaveBookmarkRequest) (bookmark *models.Bookmark, duplicate bool, err error)

	// FindByURL checks for an existing non-archived bookmark by canonical URL
	FindByURL(ctx context.Context, userID, rawURL string) (*models.Bookmark, error)

	// ListByCollection lists a user's non-archived bookmarks in a folder
	// (nil = unfiled), newest first
	ListByCollection(ctx context.Context, userID string, collectionID *string) ([]models.Bookmark, error)

	// Move re-files a bookmark into another owned folder
	Move(ctx context.Context, id, userID, collectionID string) error

	// Archive soft-deletes a bookmark
	Archive(ctx context.Context, id, userID string) error

	// Delete hard-deletes a bookmark
	Delete(ctx context.Context, id, userID string) error
}

// CreateBookmarksRequest represents the web app's bulk save request
type CreateBookmarksRequest struct {
	UserID       string   `json:"-"`
	URLs         []string `json:"urls"`
	CollectionID *string  `json:"collection_id,omitempty"`
}

// SaveBookmarkRequest represents the extension's single save request
type SaveBookmarkRequest struct {
	UserID       string  `json:"-"`
	URL          string  `json:"url"`
	Title        *string `json:"title,omitempty"`
	CollectionID *string `json:"collection_id,omitempty"`
}

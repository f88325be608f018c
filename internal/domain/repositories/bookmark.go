package repositories

import (
	"context"

	"saves/internal/domain/models"
)

// BookmarkRepository defines data access operations for bookmarks
type BookmarkRepository interface {
	// Create inserts a single bookmark
	Create(ctx context.Context, bookmark *models.Bookmark) error

	// CreateMany bulk-inserts bookmarks, silently skipping rows that collide
	// with an existing (user, url) pair. Returns the number of rows inserted.
	CreateMany(ctx context.Context, bookmarks []models.Bookmark) (int, error)

	// ListByCollection lists non-archived bookmarks of a user in a collection
	// (nil = unfiled), newest first
	ListByCollection(ctx context.Context, userID string, collectionID *string) ([]models.Bookmark, error)

	// FindByURL finds a non-archived bookmark by canonical URL for a user,
	// or nil when absent
	FindByURL(ctx context.Context, userID, url string) (*models.Bookmark, error)

	// Move re-files a non-archived bookmark into another collection.
	// Returns ErrNotFound when the bookmark is missing or not owned.
	Move(ctx context.Context, id, userID string, collectionID *string) error

	// Archive soft-deletes a bookmark
	Archive(ctx context.Context, id, userID string) error

	// Delete hard-deletes a bookmark.
	// Returns ErrNotFound when the bookmark is missing or not owned.
	Delete(ctx context.Context, id, userID string) error
}

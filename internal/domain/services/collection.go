package services

import (
	"context"

	"saves/internal/domain/models"
)

// CollectionService handles folder business logic
type CollectionService interface {
	// CreateCollection creates a new user folder
	CreateCollection(ctx context.Context, req *CreateCollectionRequest) (*models.Collection, error)

	// GetOwned retrieves a folder owned by userID
	GetOwned(ctx context.Context, id, userID string) (*models.Collection, error)

	// GetBreadcrumbs walks the ancestor chain of a folder and returns the
	// root-first path ending at the folder itself. A broken chain yields the
	// partial path already built.
	GetBreadcrumbs(ctx context.Context, collectionID string) ([]models.Breadcrumb, error)

	// CanView decides whether a viewer may read a folder and its bookmarks
	CanView(viewerID string, collection *models.Collection) bool

	// ListChildren lists immediate child folders of parentID (nil = root)
	// for an owner, hiding private folders from non-owners
	ListChildren(ctx context.Context, ownerID string, parentID *string, viewerIsOwner bool) ([]models.Collection, error)

	// GetTree returns the user's USER collections as a nested forest
	GetTree(ctx context.Context, userID string) ([]*models.CollectionNode, error)
}

// CreateCollectionRequest represents a folder creation request
type CreateCollectionRequest struct {
	UserID     string            `json:"-"`
	Name       string            `json:"name"`
	Visibility models.Visibility `json:"visibility,omitempty"` // defaults to PRIVATE
	ParentID   *string           `json:"parent_id,omitempty"`
}

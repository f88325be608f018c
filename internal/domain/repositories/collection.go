package repositories

import (
	"context"

	"saves/internal/domain/models"
)

// CollectionRepository defines data access operations for collections
type CollectionRepository interface {
	// Create creates a new collection
	Create(ctx context.Context, collection *models.Collection) error

	// GetByID retrieves a collection by ID regardless of owner.
	// Used by the breadcrumb walk; callers gate access themselves.
	GetByID(ctx context.Context, id string) (*models.Collection, error)

	// GetOwned retrieves a collection owned by userID, or ErrNotFound
	GetOwned(ctx context.Context, id, userID string) (*models.Collection, error)

	// ListChildren lists immediate children of parentID (nil = root level)
	// for an owner, filtered to type USER. When publicOnly is set, private
	// folders are excluded.
	ListChildren(ctx context.Context, userID string, parentID *string, publicOnly bool) ([]models.Collection, error)

	// GetAllByUser retrieves all USER collections of a user as a flat list,
	// oldest first
	GetAllByUser(ctx context.Context, userID string) ([]models.Collection, error)
}

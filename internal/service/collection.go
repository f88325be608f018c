package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"saves/internal/config"
	"saves/internal/domain"
	"saves/internal/domain/models"
	"saves/internal/domain/repositories"
	"saves/internal/domain/services"
)

// maxBreadcrumbDepth bounds the ancestor walk. The tree is acyclic by
// construction, so hitting this means corrupted data, not a deep folder.
const maxBreadcrumbDepth = 64

type collectionService struct {
	collectionRepo repositories.CollectionRepository
	logger         *slog.Logger
}

// NewCollectionService creates a new collection service
func NewCollectionService(
	collectionRepo repositories.CollectionRepository,
	logger *slog.Logger,
) services.CollectionService {
	return &collectionService{
		collectionRepo: collectionRepo,
		logger:         logger,
	}
}

// CreateCollection creates a new user folder
func (s *collectionService) CreateCollection(ctx context.Context, req *services.CreateCollectionRequest) (*models.Collection, error) {
	// Normalize empty string to nil for root-level folders
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}
	if req.Visibility == "" {
		req.Visibility = models.VisibilityPrivate
	}

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Parent must already exist and belong to the same user; this ordering is
	// what keeps the forest acyclic, since parents are never reassigned.
	if req.ParentID != nil {
		if _, err := s.collectionRepo.GetOwned(ctx, *req.ParentID, req.UserID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: invalid parent folder", domain.ErrValidation)
			}
			return nil, err
		}
	}

	collection := &models.Collection{
		Name:       trimName(req.Name),
		Visibility: req.Visibility,
		Type:       models.CollectionTypeUser,
		ParentID:   req.ParentID,
		UserID:     req.UserID,
	}

	if err := s.collectionRepo.Create(ctx, collection); err != nil {
		return nil, err
	}

	s.logger.Info("collection created",
		"id", collection.ID,
		"name", collection.Name,
		"user_id", collection.UserID,
		"parent_id", collection.ParentID,
		"visibility", collection.Visibility,
	)

	return collection, nil
}

// GetOwned retrieves a folder owned by userID
func (s *collectionService) GetOwned(ctx context.Context, id, userID string) (*models.Collection, error) {
	return s.collectionRepo.GetOwned(ctx, id, userID)
}

// GetBreadcrumbs walks the parent chain root-first, ending at the folder
// itself. A broken link stops the walk and returns the partial path so the
// caller's request still succeeds; the gap is logged for integrity tracking.
func (s *collectionService) GetBreadcrumbs(ctx context.Context, collectionID string) ([]models.Breadcrumb, error) {
	breadcrumbs := []models.Breadcrumb{}

	currentID := &collectionID
	for depth := 0; currentID != nil; depth++ {
		if depth >= maxBreadcrumbDepth {
			return nil, fmt.Errorf("breadcrumb chain for collection %s exceeds depth %d", collectionID, maxBreadcrumbDepth)
		}

		collection, err := s.collectionRepo.GetByID(ctx, *currentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				s.logger.Warn("breadcrumb chain broken",
					"collection_id", collectionID,
					"missing_id", *currentID,
				)
				break
			}
			return nil, err
		}

		breadcrumbs = append([]models.Breadcrumb{{ID: collection.ID, Name: collection.Name}}, breadcrumbs...)
		currentID = collection.ParentID
	}

	return breadcrumbs, nil
}

// CanView decides whether a viewer may read a folder and its bookmarks.
// Each folder's visibility flag is the sole gate; ancestors are not
// consulted, so a public subfolder under a private parent stays viewable.
func (s *collectionService) CanView(viewerID string, collection *models.Collection) bool {
	if viewerID != "" && viewerID == collection.UserID {
		return true
	}
	return collection.Visibility == models.VisibilityPublic
}

// ListChildren lists immediate child folders, hiding private ones from
// non-owners
func (s *collectionService) ListChildren(ctx context.Context, ownerID string, parentID *string, viewerIsOwner bool) ([]models.Collection, error) {
	return s.collectionRepo.ListChildren(ctx, ownerID, parentID, !viewerIsOwner)
}

// GetTree returns the user's USER collections as a nested forest
func (s *collectionService) GetTree(ctx context.Context, userID string) ([]*models.CollectionNode, error) {
	rows, err := s.collectionRepo.GetAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	forest, dropped := BuildTree(rows)
	if dropped > 0 {
		s.logger.Warn("collection tree dropped orphaned rows",
			"user_id", userID,
			"dropped", dropped,
		)
	}

	return forest, nil
}

func (s *collectionService) validateCreateRequest(req *services.CreateCollectionRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxCollectionNameLength),
			validation.By(validateCollectionName),
		),
		validation.Field(&req.Visibility,
			validation.By(validateVisibility),
		),
	)
}

// validateCollectionName rejects the reserved "all" name after trimming
func validateCollectionName(value interface{}) error {
	name, ok := value.(string)
	if !ok {
		return fmt.Errorf("name must be a string")
	}
	if trimName(name) == "" {
		return fmt.Errorf("name cannot be blank")
	}
	if models.IsReservedCollectionName(name) {
		return fmt.Errorf("%q is a reserved folder name", models.ReservedCollectionName)
	}
	return nil
}

func trimName(name string) string {
	return strings.TrimSpace(name)
}

func validateVisibility(value interface{}) error {
	visibility, ok := value.(models.Visibility)
	if !ok {
		return fmt.Errorf("visibility must be a string")
	}
	if !visibility.Valid() {
		return fmt.Errorf("visibility must be PUBLIC or PRIVATE")
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"saves/internal/domain"
	"saves/internal/domain/models"
	"saves/internal/domain/services"
)

type profileService struct {
	userService       services.UserService
	collectionService services.CollectionService
	bookmarkService   services.BookmarkService
	logger            *slog.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(
	userService services.UserService,
	collectionService services.CollectionService,
	bookmarkService services.BookmarkService,
	logger *slog.Logger,
) services.ProfileService {
	return &profileService{
		userService:       userService,
		collectionService: collectionService,
		bookmarkService:   bookmarkService,
		logger:            logger,
	}
}

// ViewProfile composes the public profile view of one user, scoped to one
// folder. A private profile shows only the profile header to strangers. A
// missing, foreign or private folder yields not-found rather than forbidden
// so folder existence never leaks.
func (s *profileService) ViewProfile(ctx context.Context, username, viewerID string, folderID *string) (*services.ProfileView, error) {
	user, err := s.userService.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	isOwner := viewerID != "" && viewerID == user.ID

	view := &services.ProfileView{
		User:        user,
		IsOwner:     isOwner,
		Breadcrumbs: []models.Breadcrumb{},
		Collections: []models.Collection{},
		Bookmarks:   []models.Bookmark{},
	}

	if !user.IsPublic && !isOwner {
		// Header-only view for private profiles
		return view, nil
	}

	if folderID != nil && *folderID == "" {
		folderID = nil
	}

	if folderID != nil {
		folder, err := s.collectionService.GetOwned(ctx, *folderID, user.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("folder %s: %w", *folderID, domain.ErrNotFound)
			}
			return nil, err
		}
		if !s.collectionService.CanView(viewerID, folder) {
			return nil, fmt.Errorf("folder %s: %w", *folderID, domain.ErrNotFound)
		}

		view.Breadcrumbs, err = s.collectionService.GetBreadcrumbs(ctx, *folderID)
		if err != nil {
			return nil, err
		}
	}

	view.Collections, err = s.collectionService.ListChildren(ctx, user.ID, folderID, isOwner)
	if err != nil {
		return nil, err
	}

	// Unfiled bookmarks are not part of any profile surface; only folder
	// contents are listed.
	if folderID != nil {
		view.Bookmarks, err = s.bookmarkService.ListByCollection(ctx, user.ID, folderID)
		if err != nil {
			return nil, err
		}
	}

	return view, nil
}

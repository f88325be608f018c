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
	"saves/internal/urlnorm"
)

type bookmarkService struct {
	bookmarkRepo   repositories.BookmarkRepository
	collectionRepo repositories.CollectionRepository
	norm           *urlnorm.Registry
	txManager      repositories.TransactionManager
	logger         *slog.Logger
}

// NewBookmarkService creates a new bookmark service
func NewBookmarkService(
	bookmarkRepo repositories.BookmarkRepository,
	collectionRepo repositories.CollectionRepository,
	norm *urlnorm.Registry,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.BookmarkService {
	return &bookmarkService{
		bookmarkRepo:   bookmarkRepo,
		collectionRepo: collectionRepo,
		norm:           norm,
		txManager:      txManager,
		logger:         logger,
	}
}

// CreateBatch saves a batch of URLs from the web app. URLs are trimmed,
// syntactically validated and canonicalized before storage; rows that
// collide with an existing (user, url) pair are skipped silently.
func (s *bookmarkService) CreateBatch(ctx context.Context, req *services.CreateBookmarksRequest) (int, error) {
	if req.CollectionID != nil && *req.CollectionID == "" {
		req.CollectionID = nil
	}

	if err := validation.ValidateStruct(req,
		validation.Field(&req.URLs, validation.Required, validation.Length(1, config.MaxBatchURLs)),
	); err != nil {
		return 0, fmt.Errorf("%w: no URLs provided", domain.ErrValidation)
	}

	if err := s.checkFolderOwnership(ctx, req.UserID, req.CollectionID); err != nil {
		return 0, err
	}

	seen := make(map[string]struct{}, len(req.URLs))
	bookmarks := make([]models.Bookmark, 0, len(req.URLs))
	for _, raw := range req.URLs {
		raw = strings.TrimSpace(raw)
		if !urlnorm.IsValid(raw) {
			continue
		}

		canonical := s.norm.Normalize(raw)
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}

		bookmarks = append(bookmarks, models.Bookmark{
			URL:          canonical,
			Domain:       urlnorm.Domain(canonical),
			UserID:       req.UserID,
			CollectionID: req.CollectionID,
		})
	}

	if len(bookmarks) == 0 {
		return 0, fmt.Errorf("%w: no valid URLs", domain.ErrValidation)
	}

	var created int
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var txErr error
		created, txErr = s.bookmarkRepo.CreateMany(txCtx, bookmarks)
		return txErr
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("bookmarks created",
		"user_id", req.UserID,
		"requested", len(req.URLs),
		"created", created,
	)

	return created, nil
}

// SaveFromExtension saves one URL, returning the existing bookmark with
// duplicate=true when the canonical URL is already saved and not archived
func (s *bookmarkService) SaveFromExtension(ctx context.Context, req *services.SaveBookmarkRequest) (*models.Bookmark, bool, error) {
	if req.CollectionID != nil && *req.CollectionID == "" {
		req.CollectionID = nil
	}

	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" || !urlnorm.IsValid(req.URL) {
		return nil, false, fmt.Errorf("%w: invalid URL", domain.ErrValidation)
	}

	if err := s.checkFolderOwnership(ctx, req.UserID, req.CollectionID); err != nil {
		return nil, false, err
	}

	canonical := s.norm.Normalize(req.URL)

	existing, err := s.bookmarkRepo.FindByURL(ctx, req.UserID, canonical)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, true, nil
	}

	var title *string
	if req.Title != nil {
		if trimmed := strings.TrimSpace(*req.Title); trimmed != "" {
			title = &trimmed
		}
	}

	bookmark := &models.Bookmark{
		URL:          canonical,
		Domain:       urlnorm.Domain(canonical),
		Title:        title,
		UserID:       req.UserID,
		CollectionID: req.CollectionID,
	}

	if err := s.bookmarkRepo.Create(ctx, bookmark); err != nil {
		// Two rapid saves can race past the FindByURL check; the unique
		// constraint resolves it and we report the survivor as a duplicate.
		if errors.Is(err, domain.ErrConflict) {
			existing, findErr := s.bookmarkRepo.FindByURL(ctx, req.UserID, canonical)
			if findErr == nil && existing != nil {
				return existing, true, nil
			}
		}
		return nil, false, err
	}

	s.logger.Info("bookmark saved",
		"id", bookmark.ID,
		"user_id", req.UserID,
		"domain", bookmark.Domain,
		"collection_id", bookmark.CollectionID,
	)

	return bookmark, false, nil
}

// FindByURL checks for an existing non-archived bookmark by canonical URL
func (s *bookmarkService) FindByURL(ctx context.Context, userID, rawURL string) (*models.Bookmark, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" || !urlnorm.IsValid(rawURL) {
		return nil, fmt.Errorf("%w: invalid URL", domain.ErrValidation)
	}
	return s.bookmarkRepo.FindByURL(ctx, userID, s.norm.Normalize(rawURL))
}

// ListByCollection lists a user's non-archived bookmarks in a folder
func (s *bookmarkService) ListByCollection(ctx context.Context, userID string, collectionID *string) ([]models.Bookmark, error) {
	return s.bookmarkRepo.ListByCollection(ctx, userID, collectionID)
}

// Move re-files a bookmark into another owned folder
func (s *bookmarkService) Move(ctx context.Context, id, userID, collectionID string) error {
	if collectionID == "" {
		return fmt.Errorf("%w: collection_id required", domain.ErrValidation)
	}
	if err := s.checkFolderOwnership(ctx, userID, &collectionID); err != nil {
		return err
	}
	return s.bookmarkRepo.Move(ctx, id, userID, &collectionID)
}

// Archive soft-deletes a bookmark
func (s *bookmarkService) Archive(ctx context.Context, id, userID string) error {
	return s.bookmarkRepo.Archive(ctx, id, userID)
}

// Delete hard-deletes a bookmark
func (s *bookmarkService) Delete(ctx context.Context, id, userID string) error {
	return s.bookmarkRepo.Delete(ctx, id, userID)
}

// checkFolderOwnership rejects a save into a folder the user does not own.
// Surfaced as a validation error, matching the web and extension contracts.
func (s *bookmarkService) checkFolderOwnership(ctx context.Context, userID string, collectionID *string) error {
	if collectionID == nil {
		return nil
	}
	if _, err := s.collectionRepo.GetOwned(ctx, *collectionID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: invalid folder", domain.ErrValidation)
		}
		return err
	}
	return nil
}

package service

import (
	"context"
	"fmt"
	"log/slog"

	"saves/internal/domain"
	"saves/internal/domain/models"
	"saves/internal/domain/repositories"
)

// In-memory repository fakes shared by the service tests. They mirror the
// contracts of the postgres implementations closely enough for business-logic
// tests: sentinel errors, ownership filtering, constraint conflicts.

var testLogger = slog.New(slog.DiscardHandler)

type fakeCollectionRepo struct {
	rows   []*models.Collection
	nextID int
}

func (f *fakeCollectionRepo) Create(_ context.Context, collection *models.Collection) error {
	f.nextID++
	collection.ID = fmt.Sprintf("col-%d", f.nextID)
	stored := *collection
	f.rows = append(f.rows, &stored)
	return nil
}

func (f *fakeCollectionRepo) GetByID(_ context.Context, id string) (*models.Collection, error) {
	for _, row := range f.rows {
		if row.ID == id {
			out := *row
			return &out, nil
		}
	}
	return nil, fmt.Errorf("collection %s: %w", id, domain.ErrNotFound)
}

func (f *fakeCollectionRepo) GetOwned(_ context.Context, id, userID string) (*models.Collection, error) {
	for _, row := range f.rows {
		if row.ID == id && row.UserID == userID {
			out := *row
			return &out, nil
		}
	}
	return nil, fmt.Errorf("collection %s: %w", id, domain.ErrNotFound)
}

func (f *fakeCollectionRepo) ListChildren(_ context.Context, userID string, parentID *string, publicOnly bool) ([]models.Collection, error) {
	out := []models.Collection{}
	for _, row := range f.rows {
		if row.UserID != userID || row.Type != models.CollectionTypeUser {
			continue
		}
		if !sameParent(row.ParentID, parentID) {
			continue
		}
		if publicOnly && row.Visibility != models.VisibilityPublic {
			continue
		}
		out = append(out, *row)
	}
	return out, nil
}

func (f *fakeCollectionRepo) GetAllByUser(_ context.Context, userID string) ([]models.Collection, error) {
	out := []models.Collection{}
	for _, row := range f.rows {
		if row.UserID == userID && row.Type == models.CollectionTypeUser {
			out = append(out, *row)
		}
	}
	return out, nil
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

type fakeUserRepo struct {
	rows []*models.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, row := range f.rows {
		if row.Username == user.Username {
			return &domain.ConflictError{Message: "username already taken", ResourceType: "user", ResourceID: row.ID}
		}
	}
	stored := *user
	f.rows = append(f.rows, &stored)
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	for _, row := range f.rows {
		if row.ID == id {
			out := *row
			return &out, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, row := range f.rows {
		if row.Username == username {
			out := *row
			return &out, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", username, domain.ErrNotFound)
}

func (f *fakeUserRepo) Update(_ context.Context, id string, update *repositories.UserUpdate) error {
	for _, row := range f.rows {
		if row.ID != id {
			continue
		}
		if update.Username != nil {
			for _, other := range f.rows {
				if other.ID != id && other.Username == *update.Username {
					return &domain.ConflictError{Message: "username already taken", ResourceType: "user", ResourceID: other.ID}
				}
			}
			row.Username = *update.Username
		}
		if update.Name != nil {
			row.Name = update.Name
		}
		if update.IsPublic != nil {
			row.IsPublic = *update.IsPublic
		}
		return nil
	}
	return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
}

func (f *fakeUserRepo) UsernameExists(_ context.Context, username string) (bool, error) {
	for _, row := range f.rows {
		if row.Username == username {
			return true, nil
		}
	}
	return false, nil
}

type fakeTokenRepo struct {
	rows         []*models.ExtensionToken
	nextID       int
	setLastCalls int
}

func (f *fakeTokenRepo) Create(_ context.Context, token *models.ExtensionToken) error {
	f.nextID++
	token.ID = fmt.Sprintf("tok-%d", f.nextID)
	stored := *token
	f.rows = append(f.rows, &stored)
	return nil
}

func (f *fakeTokenRepo) GetByToken(_ context.Context, token string) (*models.ExtensionToken, error) {
	for _, row := range f.rows {
		if row.Token == token {
			out := *row
			return &out, nil
		}
	}
	return nil, fmt.Errorf("extension token: %w", domain.ErrNotFound)
}

func (f *fakeTokenRepo) RevokeAllForUser(_ context.Context, userID string) (int, error) {
	revoked := 0
	for _, row := range f.rows {
		if row.UserID == userID && !row.Revoked {
			row.Revoked = true
			revoked++
		}
	}
	return revoked, nil
}

func (f *fakeTokenRepo) SetLastUsedCollection(_ context.Context, id string, collectionID *string) error {
	f.setLastCalls++
	for _, row := range f.rows {
		if row.ID == id {
			row.LastUsedCollectionID = collectionID
			return nil
		}
	}
	return fmt.Errorf("extension token %s: %w", id, domain.ErrNotFound)
}

type fakeBookmarkRepo struct {
	rows   []*models.Bookmark
	nextID int
}

func (f *fakeBookmarkRepo) Create(_ context.Context, bookmark *models.Bookmark) error {
	for _, row := range f.rows {
		if row.UserID == bookmark.UserID && row.URL == bookmark.URL {
			return &domain.ConflictError{Message: "bookmark already exists", ResourceType: "bookmark", ResourceID: row.ID}
		}
	}
	f.nextID++
	bookmark.ID = fmt.Sprintf("bm-%d", f.nextID)
	stored := *bookmark
	f.rows = append(f.rows, &stored)
	return nil
}

func (f *fakeBookmarkRepo) CreateMany(ctx context.Context, bookmarks []models.Bookmark) (int, error) {
	created := 0
	for i := range bookmarks {
		bm := bookmarks[i]
		if err := f.Create(ctx, &bm); err == nil {
			created++
		}
	}
	return created, nil
}

func (f *fakeBookmarkRepo) ListByCollection(_ context.Context, userID string, collectionID *string) ([]models.Bookmark, error) {
	out := []models.Bookmark{}
	// Newest first: fakes append in creation order, so walk backwards
	for i := len(f.rows) - 1; i >= 0; i-- {
		row := f.rows[i]
		if row.UserID == userID && !row.IsArchived && sameParent(row.CollectionID, collectionID) {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (f *fakeBookmarkRepo) FindByURL(_ context.Context, userID, url string) (*models.Bookmark, error) {
	for _, row := range f.rows {
		if row.UserID == userID && row.URL == url && !row.IsArchived {
			out := *row
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeBookmarkRepo) Move(_ context.Context, id, userID string, collectionID *string) error {
	for _, row := range f.rows {
		if row.ID == id && row.UserID == userID && !row.IsArchived {
			row.CollectionID = collectionID
			return nil
		}
	}
	return fmt.Errorf("bookmark %s: %w", id, domain.ErrNotFound)
}

func (f *fakeBookmarkRepo) Archive(_ context.Context, id, userID string) error {
	for _, row := range f.rows {
		if row.ID == id && row.UserID == userID && !row.IsArchived {
			row.IsArchived = true
			return nil
		}
	}
	return fmt.Errorf("bookmark %s: %w", id, domain.ErrNotFound)
}

func (f *fakeBookmarkRepo) Delete(_ context.Context, id, userID string) error {
	for i, row := range f.rows {
		if row.ID == id && row.UserID == userID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("bookmark %s: %w", id, domain.ErrNotFound)
}

type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

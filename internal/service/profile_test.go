package service

import (
	"context"
	"errors"
	"testing"

	"saves/internal/domain"
	"saves/internal/domain/models"
	"saves/internal/domain/services"
	"saves/internal/urlnorm"
)

// profileFixture wires the profile service over in-memory state:
// alice (public profile) with a private "Work" folder containing a public
// "Links" subfolder, and bob with a private profile.
func profileFixture(t *testing.T) services.ProfileService {
	t.Helper()

	userRepo := &fakeUserRepo{rows: []*models.User{
		{ID: "alice-id", Username: "alice", IsPublic: true},
		{ID: "bob-id", Username: "bob", IsPublic: false},
	}}

	work := "work-id"
	collectionRepo := &fakeCollectionRepo{rows: []*models.Collection{
		{ID: "work-id", Name: "Work", UserID: "alice-id", Type: models.CollectionTypeUser, Visibility: models.VisibilityPrivate},
		{ID: "links-id", Name: "Links", UserID: "alice-id", Type: models.CollectionTypeUser, Visibility: models.VisibilityPublic, ParentID: &work},
		{ID: "bob-col", Name: "Stuff", UserID: "bob-id", Type: models.CollectionTypeUser, Visibility: models.VisibilityPublic},
	}}

	links := "links-id"
	bookmarkRepo := &fakeBookmarkRepo{rows: []*models.Bookmark{
		{ID: "bm-1", URL: "https://example.com/a", UserID: "alice-id", CollectionID: &links},
	}}

	userService := NewUserService(userRepo, testLogger)
	collectionService := NewCollectionService(collectionRepo, testLogger)
	bookmarkService := NewBookmarkService(bookmarkRepo, collectionRepo, urlnorm.MustNewRegistry(), fakeTxManager{}, testLogger)

	return NewProfileService(userService, collectionService, bookmarkService, testLogger)
}

func TestViewProfileUnknownUser(t *testing.T) {
	svc := profileFixture(t)

	_, err := svc.ViewProfile(context.Background(), "nobody", "", nil)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown user: got %v, want not found", err)
	}
}

func TestViewProfilePrivateProfile(t *testing.T) {
	svc := profileFixture(t)
	ctx := context.Background()

	// Strangers get the header only
	view, err := svc.ViewProfile(ctx, "bob", "alice-id", nil)
	if err != nil {
		t.Fatalf("stranger view: %v", err)
	}
	if view.IsOwner {
		t.Error("stranger flagged as owner")
	}
	if len(view.Collections) != 0 || len(view.Bookmarks) != 0 {
		t.Errorf("private profile leaked content: %d collections, %d bookmarks",
			len(view.Collections), len(view.Bookmarks))
	}

	// The owner still sees everything
	view, err = svc.ViewProfile(ctx, "bob", "bob-id", nil)
	if err != nil {
		t.Fatalf("owner view: %v", err)
	}
	if !view.IsOwner {
		t.Error("owner not flagged")
	}
	if len(view.Collections) != 1 {
		t.Errorf("owner collections = %d, want 1", len(view.Collections))
	}
}

func TestViewProfileRootHidesPrivateFolders(t *testing.T) {
	svc := profileFixture(t)

	// Anonymous viewer of alice's root: the private Work folder is hidden
	view, err := svc.ViewProfile(context.Background(), "alice", "", nil)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if len(view.Collections) != 0 {
		t.Errorf("root collections = %d, want 0 (Work is private)", len(view.Collections))
	}

	// The owner sees it
	view, err = svc.ViewProfile(context.Background(), "alice", "alice-id", nil)
	if err != nil {
		t.Fatalf("owner view: %v", err)
	}
	if len(view.Collections) != 1 || view.Collections[0].Name != "Work" {
		t.Errorf("owner root = %+v, want [Work]", view.Collections)
	}
}

func TestViewProfilePrivateFolderIsNotFound(t *testing.T) {
	svc := profileFixture(t)

	folder := "work-id"
	_, err := svc.ViewProfile(context.Background(), "alice", "stranger", &folder)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("private folder: got %v, want not found (never forbidden)", err)
	}
}

func TestViewProfilePublicFolderUnderPrivateParent(t *testing.T) {
	// Visibility is per folder; a public subfolder stays reachable even when
	// its parent is private.
	svc := profileFixture(t)

	folder := "links-id"
	view, err := svc.ViewProfile(context.Background(), "alice", "", &folder)
	if err != nil {
		t.Fatalf("view: %v", err)
	}

	if len(view.Breadcrumbs) != 2 {
		t.Fatalf("breadcrumbs = %+v, want Work > Links", view.Breadcrumbs)
	}
	if view.Breadcrumbs[0].Name != "Work" || view.Breadcrumbs[1].Name != "Links" {
		t.Errorf("breadcrumb order = %+v, want root first", view.Breadcrumbs)
	}

	if len(view.Bookmarks) != 1 || view.Bookmarks[0].ID != "bm-1" {
		t.Errorf("bookmarks = %+v, want [bm-1]", view.Bookmarks)
	}
}

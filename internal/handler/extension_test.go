package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"saves/internal/domain"
	"saves/internal/domain/models"
	"saves/internal/domain/services"
)

var testLogger = slog.New(slog.DiscardHandler)

// stubTokenService backs the handler tests with a single known token.
type stubTokenService struct {
	valid       string
	record      *models.ExtensionToken
	touched     []*string
	revokeCount int
}

func (s *stubTokenService) Issue(_ context.Context, userID string) (string, error) {
	return s.valid, nil
}

func (s *stubTokenService) Resolve(_ context.Context, token string) (*models.ExtensionToken, error) {
	if token == "" || token != s.valid {
		return nil, fmt.Errorf("%w: invalid or revoked extension token", domain.ErrUnauthorized)
	}
	return s.record, nil
}

func (s *stubTokenService) RevokeAll(_ context.Context, userID string) (int, error) {
	return s.revokeCount, nil
}

func (s *stubTokenService) TouchLastFolder(_ context.Context, token *models.ExtensionToken, collectionID *string) error {
	s.touched = append(s.touched, collectionID)
	return nil
}

// stubBookmarkService serves canned responses; only the methods the
// endpoints under test reach are filled in.
type stubBookmarkService struct {
	found *models.Bookmark
}

func (s *stubBookmarkService) CreateBatch(context.Context, *services.CreateBookmarksRequest) (int, error) {
	return 0, nil
}

func (s *stubBookmarkService) SaveFromExtension(_ context.Context, req *services.SaveBookmarkRequest) (*models.Bookmark, bool, error) {
	if s.found != nil {
		return s.found, true, nil
	}
	return &models.Bookmark{ID: "bm-new", URL: req.URL, UserID: req.UserID, CollectionID: req.CollectionID}, false, nil
}

func (s *stubBookmarkService) FindByURL(context.Context, string, string) (*models.Bookmark, error) {
	return s.found, nil
}

func (s *stubBookmarkService) ListByCollection(context.Context, string, *string) ([]models.Bookmark, error) {
	return []models.Bookmark{}, nil
}

func (s *stubBookmarkService) Move(context.Context, string, string, string) error { return nil }

func (s *stubBookmarkService) Archive(context.Context, string, string) error { return nil }

func (s *stubBookmarkService) Delete(context.Context, string, string) error { return nil }

type stubCollectionService struct {
	owned map[string]*models.Collection
}

func (s *stubCollectionService) CreateCollection(context.Context, *services.CreateCollectionRequest) (*models.Collection, error) {
	return nil, nil
}

func (s *stubCollectionService) GetOwned(_ context.Context, id, userID string) (*models.Collection, error) {
	if c, ok := s.owned[id]; ok && c.UserID == userID {
		return c, nil
	}
	return nil, fmt.Errorf("collection %s: %w", id, domain.ErrNotFound)
}

func (s *stubCollectionService) GetBreadcrumbs(_ context.Context, id string) ([]models.Breadcrumb, error) {
	if c, ok := s.owned[id]; ok {
		return []models.Breadcrumb{{ID: c.ID, Name: c.Name}}, nil
	}
	return []models.Breadcrumb{}, nil
}

func (s *stubCollectionService) CanView(string, *models.Collection) bool { return true }

func (s *stubCollectionService) ListChildren(context.Context, string, *string, bool) ([]models.Collection, error) {
	return []models.Collection{}, nil
}

func (s *stubCollectionService) GetTree(context.Context, string) ([]*models.CollectionNode, error) {
	return []*models.CollectionNode{}, nil
}

func newExtensionFixture() (*stubTokenService, *ExtensionHandler) {
	tokens := &stubTokenService{
		valid:  "good-token",
		record: &models.ExtensionToken{ID: "tok-1", Token: "good-token", UserID: "u1"},
	}
	h := NewExtensionHandler(
		tokens,
		&stubBookmarkService{},
		&stubCollectionService{owned: map[string]*models.Collection{
			"col-1": {ID: "col-1", Name: "Work", UserID: "u1"},
		}},
		testLogger,
	)
	return tokens, h
}

func TestExtensionEndpointsRejectBadTokens(t *testing.T) {
	_, h := newExtensionFixture()

	endpoints := []struct {
		name    string
		handler http.HandlerFunc
		method  string
		target  string
		body    string
	}{
		{"check", h.CheckBookmark, http.MethodGet, "/api/extension/bookmarks?url=https://example.com", ""},
		{"save", h.SaveBookmark, http.MethodPost, "/api/extension/bookmarks", `{"url":"https://example.com"}`},
		{"collections", h.GetCollections, http.MethodGet, "/api/extension/collections", ""},
		{"view", h.BrowseView, http.MethodGet, "/api/extension/view", ""},
	}

	headers := []struct {
		name  string
		value string
	}{
		{"missing", ""},
		{"revoked or unknown", "Bearer stale-token"},
	}

	for _, ep := range endpoints {
		for _, hdr := range headers {
			t.Run(ep.name+"/"+hdr.name, func(t *testing.T) {
				var body *strings.Reader
				if ep.body != "" {
					body = strings.NewReader(ep.body)
				} else {
					body = strings.NewReader("")
				}
				req := httptest.NewRequest(ep.method, ep.target, body)
				if hdr.value != "" {
					req.Header.Set("Authorization", hdr.value)
				}
				rec := httptest.NewRecorder()

				ep.handler(rec, req)

				if rec.Code != http.StatusUnauthorized {
					t.Fatalf("status = %d, want 401", rec.Code)
				}
				var envelope map[string]string
				if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
					t.Fatalf("response not JSON: %v", err)
				}
				if envelope["error"] == "" {
					t.Errorf("missing error message in %s", rec.Body.String())
				}
			})
		}
	}
}

func TestCheckBookmark(t *testing.T) {
	_, h := newExtensionFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/extension/bookmarks?url=https://example.com/a", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	h.CheckBookmark(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Exists bool `json:"exists"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Exists {
		t.Error("exists = true for unsaved URL")
	}
}

func TestCheckBookmarkRequiresURL(t *testing.T) {
	_, h := newExtensionFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/extension/bookmarks", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	h.CheckBookmark(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSaveBookmarkTouchesLastFolder(t *testing.T) {
	tokens, h := newExtensionFixture()

	body := strings.NewReader(`{"url":"https://example.com/a","collection_id":"col-1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/extension/bookmarks", body)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	h.SaveBookmark(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Success   bool             `json:"success"`
		Duplicate bool             `json:"duplicate"`
		Bookmark  *models.Bookmark `json:"bookmark"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Duplicate {
		t.Errorf("success=%v duplicate=%v, want success and not duplicate", resp.Success, resp.Duplicate)
	}
	if resp.Bookmark == nil || resp.Bookmark.ID != "bm-new" {
		t.Errorf("bookmark = %+v, want bm-new", resp.Bookmark)
	}

	if len(tokens.touched) != 1 || tokens.touched[0] == nil || *tokens.touched[0] != "col-1" {
		t.Errorf("last folder touches = %+v, want [col-1]", tokens.touched)
	}
}

func TestSaveBookmarkUnfiledKeepsLastFolder(t *testing.T) {
	tokens, h := newExtensionFixture()
	remembered := "col-1"
	tokens.record.LastUsedCollectionID = &remembered

	body := strings.NewReader(`{"url":"https://example.com/a"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/extension/bookmarks", body)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	h.SaveBookmark(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	// A save without a target folder must not clear the remembered default
	if len(tokens.touched) != 0 {
		t.Errorf("unfiled save touched last folder: %+v, want no touches", tokens.touched)
	}
}

func TestBrowseViewDefaultsToRoot(t *testing.T) {
	tokens, h := newExtensionFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/extension/view", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	h.BrowseView(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		CurrentFolder struct {
			ID   *string `json:"id"`
			Name string  `json:"name"`
		} `json:"current_folder"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.CurrentFolder.ID != nil || resp.CurrentFolder.Name != "All" {
		t.Errorf("current folder = %+v, want root named All", resp.CurrentFolder)
	}

	// No explicit navigation, no remembered-folder write
	if len(tokens.touched) != 0 {
		t.Errorf("touches = %+v, want none", tokens.touched)
	}
}

func TestBrowseViewForeignFolderIsBadRequest(t *testing.T) {
	_, h := newExtensionFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/extension/view?folder=someone-elses", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	h.BrowseView(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	var envelope map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope["error"] != "Folder does not exist or access denied" {
		t.Errorf("error = %q", envelope["error"])
	}
}

func TestBrowseViewExplicitFolder(t *testing.T) {
	tokens, h := newExtensionFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/extension/view?folder=col-1", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	h.BrowseView(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		CurrentFolder struct {
			ID   *string `json:"id"`
			Name string  `json:"name"`
		} `json:"current_folder"`
		Breadcrumbs []models.Breadcrumb `json:"breadcrumbs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.CurrentFolder.ID == nil || *resp.CurrentFolder.ID != "col-1" || resp.CurrentFolder.Name != "Work" {
		t.Errorf("current folder = %+v, want col-1/Work", resp.CurrentFolder)
	}
	if len(resp.Breadcrumbs) != 1 {
		t.Errorf("breadcrumbs = %+v, want one entry", resp.Breadcrumbs)
	}

	// Explicit navigation persists the folder
	if len(tokens.touched) != 1 || tokens.touched[0] == nil || *tokens.touched[0] != "col-1" {
		t.Errorf("touches = %+v, want [col-1]", tokens.touched)
	}
}

package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"saves/internal/domain/models"
	"saves/internal/domain/services"
	"saves/internal/httputil"
)

// ExtensionHandler serves the browser extension. The handshake and revocation
// endpoints ride the web session; everything else authenticates with the
// opaque bearer token issued at handshake, resolved before any data access.
type ExtensionHandler struct {
	tokenService      services.ExtensionTokenService
	bookmarkService   services.BookmarkService
	collectionService services.CollectionService
	logger            *slog.Logger
}

// NewExtensionHandler creates a new extension handler
func NewExtensionHandler(
	tokenService services.ExtensionTokenService,
	bookmarkService services.BookmarkService,
	collectionService services.CollectionService,
	logger *slog.Logger,
) *ExtensionHandler {
	return &ExtensionHandler{
		tokenService:      tokenService,
		bookmarkService:   bookmarkService,
		collectionService: collectionService,
		logger:            logger,
	}
}

// Handshake issues a new extension token for the authenticated session
// POST /api/extension/handshake
func (h *ExtensionHandler) Handshake(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	token, err := h.tokenService.Issue(r.Context(), userID)
	if err != nil {
		h.logger.Error("extension handshake failed", "user_id", userID, "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// RevokeTokens revokes every extension token of the authenticated user
// DELETE /api/extension/tokens
func (h *ExtensionHandler) RevokeTokens(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	revoked, err := h.tokenService.RevokeAll(r.Context(), userID)
	if err != nil {
		h.logger.Error("extension token revocation failed", "user_id", userID, "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"revoked": revoked,
	})
}

// resolveToken authenticates a bearer-token request. Returns nil after
// writing the 401 response when the token is missing or revoked.
func (h *ExtensionHandler) resolveToken(w http.ResponseWriter, r *http.Request) *models.ExtensionToken {
	raw := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))

	token, err := h.tokenService.Resolve(r.Context(), raw)
	if err != nil {
		handleError(w, err)
		return nil
	}

	return token
}

// CheckBookmark reports whether a URL is already saved, by canonical form
// GET /api/extension/bookmarks?url=
func (h *ExtensionHandler) CheckBookmark(w http.ResponseWriter, r *http.Request) {
	token := h.resolveToken(w, r)
	if token == nil {
		return
	}

	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		httputil.RespondError(w, http.StatusBadRequest, "url is required")
		return
	}

	bookmark, err := h.bookmarkService.FindByURL(r.Context(), token.UserID, rawURL)
	if err != nil {
		h.logger.Error("extension bookmark check failed", "user_id", token.UserID, "error", err)
		handleError(w, err)
		return
	}

	response := map[string]interface{}{"exists": bookmark != nil}
	if bookmark != nil {
		response["bookmark"] = bookmark
	}

	httputil.RespondJSON(w, http.StatusOK, response)
}

// SaveBookmark saves one URL from the extension popup, deduplicating against
// non-archived bookmarks, and remembers the target folder for next time
// POST /api/extension/bookmarks
func (h *ExtensionHandler) SaveBookmark(w http.ResponseWriter, r *http.Request) {
	token := h.resolveToken(w, r)
	if token == nil {
		return
	}

	var req services.SaveBookmarkRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.UserID = token.UserID

	bookmark, duplicate, err := h.bookmarkService.SaveFromExtension(r.Context(), &req)
	if err != nil {
		h.logger.Error("extension save failed", "user_id", token.UserID, "error", err)
		handleError(w, err)
		return
	}

	// Only a save into a folder updates the remembered default; an unfiled
	// save keeps it. The save already succeeded, so a failed touch is not
	// worth a user-visible error.
	if req.CollectionID != nil {
		if err := h.tokenService.TouchLastFolder(r.Context(), token, req.CollectionID); err != nil {
			h.logger.Warn("last-used folder update failed", "token_id", token.ID, "error", err)
		}
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"duplicate": duplicate,
		"bookmark":  bookmark,
	})
}

// MoveBookmark re-files a bookmark into another owned folder
// PATCH /api/extension/bookmarks/{id}
func (h *ExtensionHandler) MoveBookmark(w http.ResponseWriter, r *http.Request) {
	token := h.resolveToken(w, r)
	if token == nil {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "bookmark ID is required")
		return
	}

	var req struct {
		CollectionID string `json:"collection_id"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.bookmarkService.Move(r.Context(), id, token.UserID, req.CollectionID); err != nil {
		h.logger.Error("extension move failed", "user_id", token.UserID, "bookmark_id", id, "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// DeleteBookmark hard-deletes a bookmark
// DELETE /api/extension/bookmarks/{id}
func (h *ExtensionHandler) DeleteBookmark(w http.ResponseWriter, r *http.Request) {
	token := h.resolveToken(w, r)
	if token == nil {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "bookmark ID is required")
		return
	}

	if err := h.bookmarkService.Delete(r.Context(), id, token.UserID); err != nil {
		h.logger.Error("extension delete failed", "user_id", token.UserID, "bookmark_id", id, "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// GetCollections returns the user's nested folder tree for the save popup
// GET /api/extension/collections
func (h *ExtensionHandler) GetCollections(w http.ResponseWriter, r *http.Request) {
	token := h.resolveToken(w, r)
	if token == nil {
		return
	}

	tree, err := h.collectionService.GetTree(r.Context(), token.UserID)
	if err != nil {
		h.logger.Error("extension tree failed", "user_id", token.UserID, "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"collections": tree})
}

// currentFolder is the folder header of the extension browse view. A nil ID
// means the virtual root, always named "All".
type currentFolder struct {
	ID   *string `json:"id"`
	Name string  `json:"name"`
}

// BrowseView renders the extension's folder browser: an explicit folder
// param wins, then the token's last save target, then the root.
// GET /api/extension/view?folder=
func (h *ExtensionHandler) BrowseView(w http.ResponseWriter, r *http.Request) {
	token := h.resolveToken(w, r)
	if token == nil {
		return
	}
	ctx := r.Context()

	var folderID *string
	folderParam := r.URL.Query().Get("folder")
	switch {
	case folderParam != "":
		// An explicit folder the user cannot see is a client error here, not
		// a hidden resource.
		if _, err := h.collectionService.GetOwned(ctx, folderParam, token.UserID); err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "Folder does not exist or access denied")
			return
		}
		folderID = &folderParam
	case token.LastUsedCollectionID != nil:
		// A stale last-used folder (deleted since the last save) falls back
		// to the root rather than erroring.
		if _, err := h.collectionService.GetOwned(ctx, *token.LastUsedCollectionID, token.UserID); err == nil {
			folderID = token.LastUsedCollectionID
		}
	}

	current := currentFolder{Name: "All"}
	breadcrumbs := []models.Breadcrumb{}
	if folderID != nil {
		crumbs, err := h.collectionService.GetBreadcrumbs(ctx, *folderID)
		if err != nil {
			h.logger.Error("extension breadcrumbs failed", "user_id", token.UserID, "error", err)
			handleError(w, err)
			return
		}
		breadcrumbs = crumbs
		if len(crumbs) > 0 {
			current = currentFolder{ID: folderID, Name: crumbs[len(crumbs)-1].Name}
		}
	}

	collections, err := h.collectionService.ListChildren(ctx, token.UserID, folderID, true)
	if err != nil {
		h.logger.Error("extension child list failed", "user_id", token.UserID, "error", err)
		handleError(w, err)
		return
	}

	bookmarks, err := h.bookmarkService.ListByCollection(ctx, token.UserID, folderID)
	if err != nil {
		h.logger.Error("extension bookmark list failed", "user_id", token.UserID, "error", err)
		handleError(w, err)
		return
	}

	// Only an explicit navigation updates the remembered folder.
	if folderParam != "" {
		if err := h.tokenService.TouchLastFolder(ctx, token, folderID); err != nil {
			h.logger.Warn("last-used folder update failed", "token_id", token.ID, "error", err)
		}
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"current_folder": current,
		"breadcrumbs":    breadcrumbs,
		"collections":    collections,
		"bookmarks":      bookmarks,
	})
}

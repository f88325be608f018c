package handler

import (
	"log/slog"
	"net/http"

	"saves/internal/domain/services"
	"saves/internal/httputil"
)

// BookmarkHandler handles bookmark HTTP requests for the web app
type BookmarkHandler struct {
	bookmarkService   services.BookmarkService
	collectionService services.CollectionService
	logger            *slog.Logger
}

// NewBookmarkHandler creates a new bookmark handler
func NewBookmarkHandler(
	bookmarkService services.BookmarkService,
	collectionService services.CollectionService,
	logger *slog.Logger,
) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarkService:   bookmarkService,
		collectionService: collectionService,
		logger:            logger,
	}
}

// CreateBatch saves a batch of URLs into an optional folder
// POST /api/bookmarks
func (h *BookmarkHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var req services.CreateBookmarksRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.UserID = userID

	created, err := h.bookmarkService.CreateBatch(r.Context(), &req)
	if err != nil {
		h.logger.Error("bookmark batch create failed", "user_id", userID, "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"created": created,
	})
}

// List lists the user's non-archived bookmarks in a folder (none = unfiled)
// GET /api/bookmarks?folder=
func (h *BookmarkHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var folderID *string
	if folder := r.URL.Query().Get("folder"); folder != "" {
		if _, err := h.collectionService.GetOwned(r.Context(), folder, userID); err != nil {
			handleError(w, err)
			return
		}
		folderID = &folder
	}

	bookmarks, err := h.bookmarkService.ListByCollection(r.Context(), userID, folderID)
	if err != nil {
		h.logger.Error("bookmark list failed", "user_id", userID, "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, bookmarks)
}

// Archive soft-deletes a bookmark
// DELETE /api/bookmarks/{id}
func (h *BookmarkHandler) Archive(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "bookmark ID is required")
		return
	}

	if err := h.bookmarkService.Archive(r.Context(), id, userID); err != nil {
		h.logger.Error("bookmark archive failed", "user_id", userID, "bookmark_id", id, "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

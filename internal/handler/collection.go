package handler

import (
	"log/slog"
	"net/http"

	"saves/internal/domain/services"
	"saves/internal/httputil"
)

// CollectionHandler handles folder HTTP requests for the web app
type CollectionHandler struct {
	collectionService services.CollectionService
	bookmarkService   services.BookmarkService
	logger            *slog.Logger
}

// NewCollectionHandler creates a new collection handler
func NewCollectionHandler(
	collectionService services.CollectionService,
	bookmarkService services.BookmarkService,
	logger *slog.Logger,
) *CollectionHandler {
	return &CollectionHandler{
		collectionService: collectionService,
		bookmarkService:   bookmarkService,
		logger:            logger,
	}
}

// CreateCollection creates a new folder
// POST /api/collections
func (h *CollectionHandler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var req services.CreateCollectionRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.UserID = userID

	collection, err := h.collectionService.CreateCollection(r.Context(), &req)
	if err != nil {
		h.logger.Error("collection create failed", "user_id", userID, "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, collection)
}

// ListChildren lists the authenticated user's own folders under a parent,
// with breadcrumbs for the parent
// GET /api/collections?parent=
func (h *CollectionHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var parentID *string
	if parent := r.URL.Query().Get("parent"); parent != "" {
		// A foreign or missing parent reads as not-found
		if _, err := h.collectionService.GetOwned(r.Context(), parent, userID); err != nil {
			handleError(w, err)
			return
		}
		parentID = &parent
	}

	collections, err := h.collectionService.ListChildren(r.Context(), userID, parentID, true)
	if err != nil {
		h.logger.Error("collection list failed", "user_id", userID, "error", err)
		handleError(w, err)
		return
	}

	response := map[string]interface{}{"collections": collections}
	if parentID != nil {
		crumbs, err := h.collectionService.GetBreadcrumbs(r.Context(), *parentID)
		if err != nil {
			handleError(w, err)
			return
		}
		response["breadcrumbs"] = crumbs
	}

	httputil.RespondJSON(w, http.StatusOK, response)
}

// GetTree returns the user's nested folder tree
// GET /api/collections/tree
func (h *CollectionHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	tree, err := h.collectionService.GetTree(r.Context(), userID)
	if err != nil {
		h.logger.Error("collection tree failed", "user_id", userID, "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"collections": tree})
}

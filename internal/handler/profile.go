package handler

import (
	"log/slog"
	"net/http"

	"saves/internal/domain/services"
	"saves/internal/httputil"
)

// ProfileHandler serves public profile views
type ProfileHandler struct {
	profileService services.ProfileService
	logger         *slog.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService services.ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		logger:         logger,
	}
}

// ViewProfile renders a user's profile scoped to one folder. The viewer may
// be anonymous; owners see private folders, everyone else only public ones.
// GET /api/users/{username}?folder=
func (h *ProfileHandler) ViewProfile(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if username == "" {
		httputil.RespondError(w, http.StatusBadRequest, "username is required")
		return
	}

	viewerID := httputil.GetUserID(r)

	var folderID *string
	if folder := r.URL.Query().Get("folder"); folder != "" {
		folderID = &folder
	}

	view, err := h.profileService.ViewProfile(r.Context(), username, viewerID, folderID)
	if err != nil {
		h.logger.Error("profile view failed", "username", username, "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}

package handler

import (
	"log/slog"
	"net/http"

	"saves/internal/domain/repositories"
	"saves/internal/domain/services"
	"saves/internal/httputil"
)

// UserHandler handles profile HTTP requests
type UserHandler struct {
	userService services.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService services.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// Onboard creates the profile row for the authenticated subject
// POST /api/users
func (h *UserHandler) Onboard(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var req services.CreateProfileRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.UserID = userID

	user, err := h.userService.CreateProfile(r.Context(), &req)
	if err != nil {
		h.logger.Error("onboarding failed", "user_id", userID, "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, user)
}

// GetMe returns the authenticated user's own profile
// GET /api/users/me
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, user)
}

// updateProfileRequest uses tri-state optionals so an absent field is left
// untouched. Explicit nulls are rejected: clearing a profile field is not
// supported, and the partial update would otherwise ignore them silently.
type updateProfileRequest struct {
	Name     httputil.OptionalString `json:"name"`
	Username httputil.OptionalString `json:"username"`
	IsPublic httputil.OptionalBool   `json:"is_public"`
}

// UpdateMe applies a partial profile update
// PATCH /api/users/me
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var req updateProfileRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	update := &repositories.UserUpdate{}
	if req.Name.Present {
		if req.Name.Value == nil {
			httputil.RespondError(w, http.StatusBadRequest, "name cannot be null")
			return
		}
		update.Name = req.Name.Value
	}
	if req.Username.Present {
		if req.Username.Value == nil {
			httputil.RespondError(w, http.StatusBadRequest, "username cannot be null")
			return
		}
		update.Username = req.Username.Value
	}
	if req.IsPublic.Present {
		if req.IsPublic.Value == nil {
			httputil.RespondError(w, http.StatusBadRequest, "is_public cannot be null")
			return
		}
		update.IsPublic = req.IsPublic.Value
	}

	if err := h.userService.UpdateProfile(r.Context(), userID, update); err != nil {
		h.logger.Error("profile update failed", "user_id", userID, "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// CheckUsername reports username availability
// GET /api/users/check-username?username=
func (h *UserHandler) CheckUsername(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		httputil.RespondError(w, http.StatusBadRequest, "username is required")
		return
	}

	available, err := h.userService.UsernameAvailable(r.Context(), username)
	if err != nil {
		h.logger.Error("username check failed", "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"available": available})
}

// HealthCheck reports liveness
// GET /health
func (h *UserHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

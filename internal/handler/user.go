package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/delvoid/authgate/internal/apierror"
	"github.com/delvoid/authgate/internal/middleware"
	"github.com/delvoid/authgate/internal/model"
	"github.com/delvoid/authgate/internal/service"
)

// UserHandler handles HTTP requests for user administration.
type UserHandler struct {
	service   *service.UserService
	accessTTL time.Duration
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService, accessTTL time.Duration) *UserHandler {
	return &UserHandler{service: svc, accessTTL: accessTTL}
}

// HandleList handles GET /api/v1/users requests. Admin only.
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.AuthUserFromContext(r.Context())
	if !ok {
		respondError(w, r, apierror.Unauthenticated("Authentication invalid"))
		return
	}

	users, err := h.service.List(r.Context(), caller)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

// HandleShowMe handles GET /api/v1/users/showMe requests.
func (h *UserHandler) HandleShowMe(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.AuthUserFromContext(r.Context())
	if !ok {
		respondError(w, r, apierror.Unauthenticated("Authentication invalid"))
		return
	}

	user, err := h.service.ShowCurrent(r.Context(), caller.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// HandleGetByID handles GET /api/v1/users/{id} requests.
func (h *UserHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.AuthUserFromContext(r.Context())
	if !ok {
		respondError(w, r, apierror.Unauthenticated("Authentication invalid"))
		return
	}

	user, err := h.service.GetByID(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// HandleUpdateUser handles PATCH /api/v1/users/updateUser requests. The
// access cookie is re-issued so the session identity follows the new name.
func (h *UserHandler) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.AuthUserFromContext(r.Context())
	if !ok {
		respondError(w, r, apierror.Unauthenticated("Authentication invalid"))
		return
	}

	var req model.UpdateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	user, accessToken, err := h.service.UpdateProfile(r.Context(), caller.UserID, req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	attachAccessCookie(w, accessToken, h.accessTTL)
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// HandleUpdatePassword handles PATCH /api/v1/users/updateUserPassword requests.
func (h *UserHandler) HandleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.AuthUserFromContext(r.Context())
	if !ok {
		respondError(w, r, apierror.Unauthenticated("Authentication invalid"))
		return
	}

	var req model.UpdatePasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.service.UpdatePassword(r.Context(), caller.UserID, req); err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"msg": "Success! Password Updated."})
}

// HandleTokens handles GET /api/v1/users/tokens and /tokens/{id} requests.
func (h *UserHandler) HandleTokens(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.AuthUserFromContext(r.Context())
	if !ok {
		respondError(w, r, apierror.Unauthenticated("Authentication invalid"))
		return
	}

	tokens, err := h.service.Tokens(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"tokens": tokens})
}

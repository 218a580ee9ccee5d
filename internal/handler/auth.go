package handler

import (
	"net"
	"net/http"
	"time"

	"github.com/delvoid/authgate/internal/apierror"
	"github.com/delvoid/authgate/internal/middleware"
	"github.com/delvoid/authgate/internal/model"
	"github.com/delvoid/authgate/internal/service"
)

// AuthHandler handles HTTP requests for the authentication flows.
type AuthHandler struct {
	service    *service.AuthService
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, accessTTL, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{service: svc, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// HandleRegister handles POST /api/v1/auth/register requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	msg, err := h.service.Register(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"msg": msg})
}

// HandleVerifyEmail handles POST /api/v1/auth/verify-email requests.
func (h *AuthHandler) HandleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req model.VerifyEmailRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	user, err := h.service.VerifyEmail(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"msg": "Email Verified", "user": user})
}

// HandleLogin handles POST /api/v1/auth/login requests. The session
// credentials travel as cookies; the body carries only the public user
// projection.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	result, err := h.service.Login(r.Context(), req, clientIP(r), r.UserAgent())
	if err != nil {
		respondError(w, r, err)
		return
	}

	attachSessionCookies(w, result.AccessToken, result.RefreshToken, h.accessTTL, h.refreshTTL)
	writeJSON(w, http.StatusOK, map[string]any{"user": result.User})
}

// HandleRefresh handles POST /api/v1/auth/refresh requests, minting fresh
// cookies from a valid refresh credential.
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(RefreshCookieName)
	if err != nil || cookie.Value == "" {
		respondError(w, r, apierror.Unauthenticated("Authentication invalid"))
		return
	}

	result, err := h.service.Refresh(r.Context(), cookie.Value)
	if err != nil {
		respondError(w, r, err)
		return
	}

	attachSessionCookies(w, result.AccessToken, result.RefreshToken, h.accessTTL, h.refreshTTL)
	writeJSON(w, http.StatusOK, map[string]any{"user": result.User})
}

// HandleLogout handles DELETE /api/v1/auth/logout requests.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.AuthUserFromContext(r.Context())
	if !ok {
		respondError(w, r, apierror.Unauthenticated("Authentication invalid"))
		return
	}

	if err := h.service.Logout(r.Context(), caller.UserID); err != nil {
		respondError(w, r, err)
		return
	}

	clearSessionCookies(w)
	writeJSON(w, http.StatusOK, map[string]string{"msg": "user logged out!"})
}

// HandleForgotPassword handles POST /api/v1/auth/forgot-password requests.
// Known and unknown addresses get the same generic answer.
func (h *AuthHandler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req model.ForgotPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.service.ForgotPassword(r.Context(), req.Email); err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"msg": "If that email address is in our database, we will send you an email to reset your password.",
	})
}

// HandleResetPassword handles POST /api/v1/auth/reset-password requests.
func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req model.ResetPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.service.ResetPassword(r.Context(), req); err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"msg": "Password reset"})
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

package handler

import (
	"net/http"
	"time"

	"github.com/delvoid/authgate/internal/middleware"
)

// RefreshCookieName is the cookie carrying the long-lived refresh
// credential, scoped to the auth endpoints only.
const RefreshCookieName = "refreshToken"

const refreshCookiePath = "/api/v1/auth"

func attachSessionCookies(w http.ResponseWriter, accessToken, refreshToken string, accessTTL, refreshTTL time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessCookieName,
		Value:    accessToken,
		Path:     "/",
		Expires:  time.Now().Add(accessTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    refreshToken,
		Path:     refreshCookiePath,
		Expires:  time.Now().Add(refreshTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func attachAccessCookie(w http.ResponseWriter, accessToken string, accessTTL time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessCookieName,
		Value:    accessToken,
		Path:     "/",
		Expires:  time.Now().Add(accessTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookies replaces both credentials with already-expired values.
func clearSessionCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessCookieName,
		Value:    "logout",
		Path:     "/",
		Expires:  time.Now(),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    "logout",
		Path:     refreshCookiePath,
		Expires:  time.Now(),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

package middleware

import (
	"context"
	"net/http"

	"github.com/delvoid/authgate/internal/apierror"
	"github.com/delvoid/authgate/internal/crypto"
	"github.com/delvoid/authgate/internal/model"
)

type contextKey string

const authUserKey contextKey = "authUser"

// AccessCookieName is the cookie carrying the short-lived access credential.
const AccessCookieName = "accessToken"

// Authenticate returns middleware that validates the access-credential
// cookie and attaches the caller's public identity to the request context.
func Authenticate(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(AccessCookieName)
			if err != nil || cookie.Value == "" {
				writeAuthError(w, r)
				return
			}

			claims, err := crypto.ValidateToken(cookie.Value, secret)
			if err != nil {
				writeAuthError(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), authUserKey, claims.User)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthUserFromContext extracts the authenticated caller's identity.
func AuthUserFromContext(ctx context.Context) (model.TokenUser, bool) {
	user, ok := ctx.Value(authUserKey).(model.TokenUser)
	return user, ok
}

func writeAuthError(w http.ResponseWriter, r *http.Request) {
	apierror.Unauthenticated("Authentication invalid").Write(w, r.URL.Path)
}

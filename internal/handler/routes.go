package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/delvoid/authgate/internal/middleware"
)

// NewRouter assembles the API routes. credentialLimit guards the endpoints
// that accept or recover credentials; pass nil to disable limiting.
func NewRouter(auth *AuthHandler, users *UserHandler, jwtSecret string, credentialLimit func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if credentialLimit != nil {
				r.Use(credentialLimit)
			}
			r.Post("/register", auth.HandleRegister)
			r.Post("/login", auth.HandleLogin)
			r.Post("/forgot-password", auth.HandleForgotPassword)
			r.Post("/reset-password", auth.HandleResetPassword)
		})
		r.Post("/verify-email", auth.HandleVerifyEmail)
		r.Post("/refresh", auth.HandleRefresh)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Delete("/logout", auth.HandleLogout)
		})
	})

	r.Route("/api/v1/users", func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))
		r.Get("/", users.HandleList)
		r.Get("/showMe", users.HandleShowMe)
		r.Patch("/updateUser", users.HandleUpdateUser)
		r.Patch("/updateUserPassword", users.HandleUpdatePassword)
		r.Get("/tokens", users.HandleTokens)
		r.Get("/tokens/{id}", users.HandleTokens)
		r.Get("/{id}", users.HandleGetByID)
	})

	return r
}

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/delvoid/authgate/internal/config"
	"github.com/delvoid/authgate/internal/handler"
	"github.com/delvoid/authgate/internal/mailer"
	"github.com/delvoid/authgate/internal/middleware"
	"github.com/delvoid/authgate/internal/repository"
	"github.com/delvoid/authgate/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := repository.Migrate(ctx, db); err != nil {
		cancel()
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}
	cancel()

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewSessionTokenRepository(db)

	mail := mailer.New(mailer.Config{
		APIURL:    cfg.MailAPIURL,
		APIKey:    cfg.MailAPIKey,
		FromName:  cfg.MailFromName,
		FromEmail: cfg.MailFromEmail,
		Origin:    cfg.Origin,
	})

	authService := service.NewAuthService(userRepo, tokenRepo, mail, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userService := service.NewUserService(userRepo, tokenRepo, cfg.JWTSecret, cfg.AccessTokenTTL)

	authHandler := handler.NewAuthHandler(authService, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userHandler := handler.NewUserHandler(userService, cfg.AccessTokenTTL)

	r := handler.NewRouter(authHandler, userHandler, cfg.JWTSecret, middleware.RateLimit(5, 10))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

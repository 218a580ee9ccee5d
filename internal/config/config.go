package config

import (
	"log/slog"
	"os"
	"time"
)

type Config struct {
	Port            string
	Env             string
	DatabaseDSN     string
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	Origin          string
	MailAPIURL      string
	MailAPIKey      string
	MailFromName    string
	MailFromEmail   string
}

func Load() Config {
	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		DatabaseDSN:     getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/authgate?parseTime=true"),
		JWTSecret:       getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 30 * 24 * time.Hour,
		Origin:          getEnv("ORIGIN", "http://localhost:3000"),
		MailAPIURL:      getEnv("MAIL_API_URL", "https://send.api.mailtrap.io/api/send"),
		MailAPIKey:      getEnv("MAIL_API_KEY", ""),
		MailFromName:    getEnv("MAIL_FROM_NAME", "Authgate"),
		MailFromEmail:   getEnv("MAIL_FROM_EMAIL", "noreply@authgate.dev"),
	}

	if cfg.Env == "production" && cfg.JWTSecret == "dev-secret-change-in-production" {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

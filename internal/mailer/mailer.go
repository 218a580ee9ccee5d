// Package mailer delivers verification and password-reset emails through an
// HTTP mail API. The auth engine only sees the narrow Mailer interface;
// delivery failures roll back the flow that triggered them.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Mailer is the notification gateway consumed by the auth engine.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, name, email, verificationToken string) error
	SendResetPasswordEmail(ctx context.Context, name, email, resetToken string) error
}

// Config holds the mail API settings.
type Config struct {
	APIURL    string
	APIKey    string
	FromName  string
	FromEmail string
	Origin    string
}

// Service sends transactional mail over the configured HTTP API. The
// client timeout bounds every send so a stuck gateway fails the calling
// flow instead of leaving it pending.
type Service struct {
	cfg    Config
	client *http.Client
}

// New creates a mail service with a bounded request timeout.
func New(cfg Config) *Service {
	return &Service{
		cfg: cfg,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SendVerificationEmail sends the account verification email containing the
// plaintext verification token.
func (s *Service) SendVerificationEmail(ctx context.Context, name, email, verificationToken string) error {
	verifyURL := fmt.Sprintf("%s/user/verify-email?token=%s&email=%s", s.cfg.Origin, verificationToken, email)
	body := fmt.Sprintf(
		`<h4>Hello, %s</h4><p>Please confirm your email by clicking on the following link: <a href="%s">Verify Email</a></p>`,
		name, verifyURL,
	)
	return s.send(ctx, email, "Email Confirmation", body)
}

// SendResetPasswordEmail sends the password recovery email containing the
// plaintext reset token.
func (s *Service) SendResetPasswordEmail(ctx context.Context, name, email, resetToken string) error {
	resetURL := fmt.Sprintf("%s/user/reset-password?token=%s&email=%s", s.cfg.Origin, resetToken, email)
	body := fmt.Sprintf(
		`<h4>Hello, %s</h4><p>Please reset password by clicking on the following link: <a href="%s">Reset Password</a></p>`,
		name, resetURL,
	)
	return s.send(ctx, email, "Reset Password", body)
}

func (s *Service) send(ctx context.Context, to, subject, html string) error {
	payload := map[string]any{
		"from": map[string]string{
			"email": s.cfg.FromEmail,
			"name":  s.cfg.FromName,
		},
		"to":      []map[string]string{{"email": to}},
		"subject": subject,
		"html":    html,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling mail request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending mail request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mail API returned status %d", resp.StatusCode)
	}
	return nil
}

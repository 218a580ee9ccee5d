package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/delvoid/authgate/internal/apierror"
	"github.com/delvoid/authgate/internal/crypto"
	"github.com/delvoid/authgate/internal/mailer"
	"github.com/delvoid/authgate/internal/model"
	"github.com/delvoid/authgate/internal/repository"
	"github.com/delvoid/authgate/internal/validate"
)

const resetTokenValidity = 10 * time.Minute

// LoginResult bundles the public user projection with the two signed
// session credentials the boundary delivers as cookies.
type LoginResult struct {
	User         model.TokenUser
	AccessToken  string
	RefreshToken string
}

// AuthService orchestrates the account and session lifecycle: registration
// with verification mail, email verification, login with session-token
// reuse, credential refresh, logout and password recovery.
type AuthService struct {
	users      UserStore
	sessions   SessionTokenStore
	mail       mailer.Mailer
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, sessions SessionTokenStore, mail mailer.Mailer, jwtSecret string, accessTTL, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		mail:       mail,
		jwtSecret:  jwtSecret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Register creates an unverified account and mails the verification token.
// If the mail cannot be delivered the account is deleted again: no user
// record survives without a delivered verification email.
//
// The first account ever created gets the admin role. The count-then-insert
// check is not atomic; two racing first registrations could both become
// admin, same as the behavior this service replaces.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (string, error) {
	if fieldErrs := validate.Registration(req.Name, req.Email, req.Password); fieldErrs != nil {
		return "", apierror.Validation("Validation failed", fieldErrs)
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return "", apierror.BadRequest("Email already exists")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return "", err
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return "", err
	}
	role := model.RoleUser
	if count == 0 {
		role = model.RoleAdmin
	}

	verificationToken, err := crypto.RandomToken(crypto.VerificationTokenBytes)
	if err != nil {
		return "", err
	}

	passwordHash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return "", err
	}

	user := &model.User{
		ID:                uuid.NewString(),
		Name:              req.Name,
		Email:             req.Email,
		PasswordHash:      passwordHash,
		Role:              role,
		VerificationToken: verificationToken,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", apierror.BadRequest("Email already exists")
		}
		return "", err
	}

	if err := s.mail.SendVerificationEmail(ctx, user.Name, user.Email, verificationToken); err != nil {
		slog.Warn("verification email failed, rolling back registration", "email", user.Email, "error", err)
		if delErr := s.users.Delete(ctx, user.ID); delErr != nil {
			slog.Error("rollback of unverifiable user failed", "userId", user.ID, "error", delErr)
		}
		return "", apierror.BadGateway("Invalid mailbox")
	}

	return "Success! Please check your email to verify account", nil
}

// VerifyEmail consumes a verification token. Verification is single-use:
// the stored token is cleared on success, so a replay fails.
func (s *AuthService) VerifyEmail(ctx context.Context, req model.VerifyEmailRequest) (model.UserResponse, error) {
	if req.VerificationToken == "" || req.Email == "" {
		return model.UserResponse{}, apierror.BadRequest("")
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, apierror.Unauthenticated("Verification Failed")
		}
		return model.UserResponse{}, err
	}

	if user.VerificationToken != req.VerificationToken {
		return model.UserResponse{}, apierror.Unauthenticated("Verification Failed")
	}

	now := time.Now()
	if err := s.users.MarkVerified(ctx, user.ID, now); err != nil {
		return model.UserResponse{}, err
	}

	user.IsVerified = true
	user.Verified = &now
	user.VerificationToken = ""
	return model.NewUserResponse(user), nil
}

// Login checks credentials and issues the session credential pair. Unknown
// email and wrong password return the identical error so the endpoint
// cannot be used to enumerate accounts. A user keeps a single session-token
// record: a second login reuses the stored refresh secret.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest, ip, userAgent string) (LoginResult, error) {
	if req.Email == "" || req.Password == "" {
		return LoginResult{}, apierror.BadRequest("Please provide email and password")
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return LoginResult{}, apierror.Unauthenticated("Invalid credentials")
		}
		return LoginResult{}, err
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return LoginResult{}, err
	}
	if !match {
		return LoginResult{}, apierror.Unauthenticated("Invalid credentials")
	}

	if !user.IsVerified {
		return LoginResult{}, apierror.Unauthenticated("Please verify your email")
	}

	refreshSecret, err := s.sessionSecret(ctx, user.ID, ip, userAgent)
	if err != nil {
		return LoginResult{}, err
	}

	return s.credentialPair(model.NewTokenUser(user), refreshSecret)
}

// sessionSecret returns the user's refresh secret, reusing an existing
// valid session-token record or creating one. A revoked record blocks the
// login. Losing the insert race to a concurrent login falls back to the
// winner's record; the schema guarantees one record per user.
func (s *AuthService) sessionSecret(ctx context.Context, userID, ip, userAgent string) (string, error) {
	existing, err := s.sessions.GetByUserID(ctx, userID)
	if err == nil {
		if !existing.IsValid {
			return "", apierror.Unauthenticated("Invalid Credentials")
		}
		return existing.RefreshToken, nil
	}
	if !errors.Is(err, repository.ErrSessionTokenNotFound) {
		return "", err
	}

	secret, err := crypto.RandomToken(crypto.RefreshTokenBytes)
	if err != nil {
		return "", err
	}

	token := &model.SessionToken{
		UserID:       userID,
		RefreshToken: secret,
		IP:           ip,
		UserAgent:    userAgent,
		IsValid:      true,
	}
	if err := s.sessions.Create(ctx, token); err != nil {
		if errors.Is(err, repository.ErrDuplicateSession) {
			winner, readErr := s.sessions.GetByUserID(ctx, userID)
			if readErr != nil {
				return "", readErr
			}
			if !winner.IsValid {
				return "", apierror.Unauthenticated("Invalid Credentials")
			}
			return winner.RefreshToken, nil
		}
		return "", err
	}
	return secret, nil
}

// Refresh mints a fresh credential pair from a valid refresh credential
// whose wrapped session secret still matches a valid session-token record.
func (s *AuthService) Refresh(ctx context.Context, refreshCredential string) (LoginResult, error) {
	claims, err := crypto.ValidateToken(refreshCredential, s.jwtSecret)
	if err != nil || claims.RefreshToken == "" {
		return LoginResult{}, apierror.Unauthenticated("Authentication invalid")
	}

	record, err := s.sessions.GetByRefreshToken(ctx, claims.RefreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrSessionTokenNotFound) {
			return LoginResult{}, apierror.Unauthenticated("Authentication invalid")
		}
		return LoginResult{}, err
	}
	if !record.IsValid {
		return LoginResult{}, apierror.Unauthenticated("Authentication invalid")
	}

	user, err := s.users.GetByID(ctx, record.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return LoginResult{}, apierror.Unauthenticated("Authentication invalid")
		}
		return LoginResult{}, err
	}

	return s.credentialPair(model.NewTokenUser(user), record.RefreshToken)
}

func (s *AuthService) credentialPair(user model.TokenUser, refreshSecret string) (LoginResult, error) {
	accessToken, err := crypto.GenerateAccessToken(user, s.jwtSecret, s.accessTTL)
	if err != nil {
		return LoginResult{}, err
	}
	refreshToken, err := crypto.GenerateRefreshToken(user, refreshSecret, s.jwtSecret, s.refreshTTL)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{User: user, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Logout removes the caller's session-token record. Logging out without a
// record is not an error.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.sessions.DeleteByUserID(ctx, userID)
}

// ForgotPassword issues a time-limited reset token and mails the plaintext
// secret; only its digest is stored. An unknown email is a silent no-op so
// the endpoint does not reveal which addresses exist. The mail goes out
// before any state is written: if delivery fails, no token is persisted.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return apierror.BadRequest("Please provide valid email")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}
		return err
	}

	resetToken, err := crypto.RandomToken(crypto.ResetTokenBytes)
	if err != nil {
		return err
	}

	if err := s.mail.SendResetPasswordEmail(ctx, user.Name, user.Email, resetToken); err != nil {
		slog.Warn("reset password email failed", "email", user.Email, "error", err)
		return apierror.BadGateway("Unable to send reset password email")
	}

	expires := time.Now().Add(resetTokenValidity)
	return s.users.SetResetToken(ctx, user.ID, crypto.HashToken(resetToken), expires)
}

// ResetPassword consumes a reset token and replaces the password. Expiry is
// checked before the token match. A successful reset also verifies a
// still-unverified account, since it proves mailbox ownership. A
// non-matching token is deliberately a silent no-op with a success-shaped
// response, so the endpoint leaks nothing about stored token state.
func (s *AuthService) ResetPassword(ctx context.Context, req model.ResetPasswordRequest) error {
	if req.Email == "" || req.PasswordToken == "" || req.Password == "" {
		return apierror.BadRequest("Please provide all values")
	}

	if msg := validate.Password(req.Password); msg != "" {
		return apierror.Validation("Validation failed", map[string]string{"password": msg})
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}
		return err
	}

	now := time.Now()
	if user.ResetTokenExpires != nil && user.ResetTokenExpires.Before(now) {
		return apierror.Expired("Password link has expired, please try again")
	}

	if user.ResetTokenHash == nil || *user.ResetTokenHash != crypto.HashToken(req.PasswordToken) {
		return nil
	}

	passwordHash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return err
	}
	if err := s.users.ClearResetToken(ctx, user.ID); err != nil {
		return err
	}
	if !user.IsVerified {
		if err := s.users.MarkVerified(ctx, user.ID, now); err != nil {
			return err
		}
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/delvoid/authgate/internal/apierror"
	"github.com/delvoid/authgate/internal/crypto"
	"github.com/delvoid/authgate/internal/model"
	"github.com/delvoid/authgate/internal/repository"
	"github.com/delvoid/authgate/internal/validate"
)

// UserService handles the role-gated user administration operations.
type UserService struct {
	users     UserStore
	sessions  SessionTokenStore
	jwtSecret string
	accessTTL time.Duration
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore, sessions SessionTokenStore, jwtSecret string, accessTTL time.Duration) *UserService {
	return &UserService{
		users:     users,
		sessions:  sessions,
		jwtSecret: jwtSecret,
		accessTTL: accessTTL,
	}
}

// List returns all users. Admin only.
func (s *UserService) List(ctx context.Context, caller model.TokenUser) ([]model.UserResponse, error) {
	if caller.Role != model.RoleAdmin {
		return nil, apierror.Forbidden("Not authorized to access this route")
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]model.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, model.NewUserResponse(&users[i]))
	}
	return resp, nil
}

// GetByID returns a single user. Callers may fetch themselves; admins may
// fetch anyone.
func (s *UserService) GetByID(ctx context.Context, caller model.TokenUser, id string) (model.UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return model.UserResponse{}, apierror.BadRequest(fmt.Sprintf("Invalid user id: %s", id))
	}
	if err := CheckPermissions(caller, id); err != nil {
		return model.UserResponse{}, err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, apierror.NotFound(fmt.Sprintf("No user with id: %s", id))
		}
		return model.UserResponse{}, err
	}
	return model.NewUserResponse(user), nil
}

// ShowCurrent returns the caller's own user record.
func (s *UserService) ShowCurrent(ctx context.Context, userID string) (model.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, apierror.Unauthenticated("Authentication invalid")
		}
		return model.UserResponse{}, err
	}
	return model.NewUserResponse(user), nil
}

// UpdateProfile changes the caller's name and email and returns the updated
// record plus a fresh access credential carrying the new identity.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req model.UpdateUserRequest) (model.UserResponse, string, error) {
	if req.Name == "" || req.Email == "" {
		return model.UserResponse{}, "", apierror.BadRequest("Please provide all values")
	}
	if fieldErrs := validate.Profile(req.Name, req.Email); fieldErrs != nil {
		return model.UserResponse{}, "", apierror.Validation("Validation failed", fieldErrs)
	}

	if err := s.users.UpdateProfile(ctx, userID, req.Name, req.Email); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.UserResponse{}, "", apierror.BadRequest("Email already exists")
		}
		return model.UserResponse{}, "", err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return model.UserResponse{}, "", err
	}

	accessToken, err := crypto.GenerateAccessToken(model.NewTokenUser(user), s.jwtSecret, s.accessTTL)
	if err != nil {
		return model.UserResponse{}, "", err
	}
	return model.NewUserResponse(user), accessToken, nil
}

// UpdatePassword changes the caller's password after checking the old one.
func (s *UserService) UpdatePassword(ctx context.Context, userID string, req model.UpdatePasswordRequest) error {
	if req.OldPassword == "" || req.NewPassword == "" {
		return apierror.BadRequest("Please provide both values")
	}
	if msg := validate.Password(req.NewPassword); msg != "" {
		return apierror.Validation("Validation failed", map[string]string{"password": msg})
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return apierror.Unauthenticated("Authentication invalid")
		}
		return err
	}

	match, err := crypto.VerifyPassword(req.OldPassword, user.PasswordHash)
	if err != nil {
		return err
	}
	if !match {
		return apierror.Unauthenticated("Invalid Credentials")
	}

	passwordHash, err := crypto.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, passwordHash)
}

// Tokens lists the session-token records owned by a user. Without an id it
// returns the caller's own tokens; with one, the owner-or-admin rule
// applies against the token owner.
func (s *UserService) Tokens(ctx context.Context, caller model.TokenUser, ownerID string) ([]model.SessionTokenResponse, error) {
	if ownerID == "" {
		ownerID = caller.UserID
	}
	if _, err := uuid.Parse(ownerID); err != nil {
		return nil, apierror.BadRequest(fmt.Sprintf("Invalid user id: %s", ownerID))
	}
	if err := CheckPermissions(caller, ownerID); err != nil {
		return nil, err
	}

	tokens, err := s.sessions.ListByUserID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	resp := make([]model.SessionTokenResponse, 0, len(tokens))
	for i := range tokens {
		resp = append(resp, model.NewSessionTokenResponse(&tokens[i]))
	}
	return resp, nil
}

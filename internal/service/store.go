package service

import (
	"context"
	"time"

	"github.com/delvoid/authgate/internal/model"
)

// UserStore is the user persistence contract consumed by the services.
// Implemented by repository.UserRepository.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Count(ctx context.Context) (int64, error)
	UpdateProfile(ctx context.Context, id, name, email string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	MarkVerified(ctx context.Context, id string, at time.Time) error
	SetResetToken(ctx context.Context, id, tokenHash string, expires time.Time) error
	ClearResetToken(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// SessionTokenStore is the refresh-token persistence contract.
// Implemented by repository.SessionTokenRepository.
type SessionTokenStore interface {
	Create(ctx context.Context, token *model.SessionToken) error
	GetByUserID(ctx context.Context, userID string) (*model.SessionToken, error)
	GetByRefreshToken(ctx context.Context, refreshToken string) (*model.SessionToken, error)
	ListByUserID(ctx context.Context, userID string) ([]model.SessionToken, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

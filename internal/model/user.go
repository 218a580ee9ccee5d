package model

import "time"

// User roles. The first account ever registered becomes an admin, every
// later one a regular user.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a user account in the database. PasswordHash is the
// argon2id digest of the password; the plaintext is never stored.
// ResetTokenHash holds the SHA-256 digest of an outstanding password-reset
// secret and is set together with ResetTokenExpires or not at all.
type User struct {
	ID                string
	Name              string
	Email             string
	PasswordHash      string
	Role              string
	IsVerified        bool
	Verified          *time.Time
	VerificationToken string
	ResetTokenHash    *string
	ResetTokenExpires *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyEmailRequest represents an email verification request.
type VerifyEmailRequest struct {
	VerificationToken string `json:"verificationToken"`
	Email             string `json:"email"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest represents a password recovery request.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest carries the plaintext reset secret from the email
// together with the replacement password.
type ResetPasswordRequest struct {
	Email         string `json:"email"`
	PasswordToken string `json:"passwordToken"`
	Password      string `json:"password"`
}

// UpdateUserRequest represents a profile update request.
type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdatePasswordRequest represents a password change request.
type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// TokenUser is the public identity projection embedded in session
// credentials and returned by login.
type TokenUser struct {
	Name   string `json:"name"`
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// NewTokenUser builds the public projection of a user.
func NewTokenUser(u *User) TokenUser {
	return TokenUser{Name: u.Name, UserID: u.ID, Role: u.Role}
}

// UserResponse represents user data safe for API responses: no password
// hash, no verification or reset secrets.
type UserResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	IsVerified bool       `json:"isVerified"`
	Verified   *time.Time `json:"verified,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// NewUserResponse strips a user record down to its safe projection.
func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		IsVerified: u.IsVerified,
		Verified:   u.Verified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

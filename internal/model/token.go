package model

import "time"

// SessionToken represents a per-user refresh-token record. At most one row
// exists per user; a second login reuses the stored secret.
type SessionToken struct {
	ID           int64
	UserID       string
	RefreshToken string
	IP           string
	UserAgent    string
	IsValid      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SessionTokenResponse represents a session-token record safe for API
// responses; the refresh secret itself is never returned.
type SessionTokenResponse struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"userAgent"`
	IsValid   bool      `json:"isValid"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewSessionTokenResponse strips a session-token record down to its safe
// projection.
func NewSessionTokenResponse(t *SessionToken) SessionTokenResponse {
	return SessionTokenResponse{
		ID:        t.ID,
		UserID:    t.UserID,
		IP:        t.IP,
		UserAgent: t.UserAgent,
		IsValid:   t.IsValid,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

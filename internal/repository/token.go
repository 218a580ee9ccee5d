package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/delvoid/authgate/internal/model"
)

var (
	ErrSessionTokenNotFound = errors.New("session token not found")
	ErrDuplicateSession     = errors.New("session token already exists for user")
)

const sessionTokenColumns = `id, user_id, refresh_token, ip, user_agent, is_valid, created_at, updated_at`

// SessionTokenRepository handles refresh-token record persistence. The
// schema enforces at most one record per user, so a concurrent login that
// loses the insert race gets ErrDuplicateSession and can re-read the
// winner's record.
type SessionTokenRepository struct {
	db *sql.DB
}

// NewSessionTokenRepository creates a new SessionTokenRepository.
func NewSessionTokenRepository(db *sql.DB) *SessionTokenRepository {
	return &SessionTokenRepository{db: db}
}

// Create inserts a new session-token record and sets the generated ID.
func (r *SessionTokenRepository) Create(ctx context.Context, token *model.SessionToken) error {
	query := `INSERT INTO session_tokens (user_id, refresh_token, ip, user_agent, is_valid)
		VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		token.UserID, token.RefreshToken, token.IP, token.UserAgent, token.IsValid,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateSession
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	token.ID = id
	return nil
}

// GetByUserID retrieves the session-token record for a user.
func (r *SessionTokenRepository) GetByUserID(ctx context.Context, userID string) (*model.SessionToken, error) {
	query := `SELECT ` + sessionTokenColumns + ` FROM session_tokens WHERE user_id = ?`
	return scanSessionToken(r.db.QueryRowContext(ctx, query, userID))
}

// GetByRefreshToken retrieves a session-token record by its opaque secret.
func (r *SessionTokenRepository) GetByRefreshToken(ctx context.Context, refreshToken string) (*model.SessionToken, error) {
	query := `SELECT ` + sessionTokenColumns + ` FROM session_tokens WHERE refresh_token = ?`
	return scanSessionToken(r.db.QueryRowContext(ctx, query, refreshToken))
}

// ListByUserID returns all session-token records owned by a user.
func (r *SessionTokenRepository) ListByUserID(ctx context.Context, userID string) ([]model.SessionToken, error) {
	query := `SELECT ` + sessionTokenColumns + ` FROM session_tokens WHERE user_id = ? ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []model.SessionToken
	for rows.Next() {
		token := model.SessionToken{}
		if err := rows.Scan(
			&token.ID, &token.UserID, &token.RefreshToken, &token.IP,
			&token.UserAgent, &token.IsValid, &token.CreatedAt, &token.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}

// DeleteByUserID removes a user's session-token record. Deleting a
// non-existent record is not an error.
func (r *SessionTokenRepository) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session_tokens WHERE user_id = ?`, userID)
	return err
}

func scanSessionToken(row *sql.Row) (*model.SessionToken, error) {
	token := &model.SessionToken{}
	err := row.Scan(
		&token.ID, &token.UserID, &token.RefreshToken, &token.IP,
		&token.UserAgent, &token.IsValid, &token.CreatedAt, &token.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionTokenNotFound
		}
		return nil, err
	}
	return token, nil
}

package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delvoid/authgate/internal/model"
)

var userCols = []string{
	"id", "name", "email", "password_hash", "role", "is_verified", "verified",
	"verification_token", "reset_token_hash", "reset_token_expires", "created_at", "updated_at",
}

func newUserRepoWithMock(t *testing.T) (*UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserRepository(db), mock
}

func sampleUserRow(id string) []driver.Value {
	now := time.Now()
	return []driver.Value{
		id, "Delvoid", "delvoid.dev@gmail.com", "$argon2id$hash", model.RoleUser,
		false, nil, "verify-token", nil, nil, now, now,
	}
}

func TestUserCreate(t *testing.T) {
	repo, mock := newUserRepoWithMock(t)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("u1", "Delvoid", "delvoid.dev@gmail.com", "hash", model.RoleAdmin, "tok").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &model.User{
		ID:                "u1",
		Name:              "Delvoid",
		Email:             "delvoid.dev@gmail.com",
		PasswordHash:      "hash",
		Role:              model.RoleAdmin,
		VerificationToken: "tok",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	repo, mock := newUserRepoWithMock(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'delvoid.dev@gmail.com' for key 'uq_users_email'"))

	err := repo.Create(context.Background(), &model.User{ID: "u1", Email: "delvoid.dev@gmail.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserGetByEmail(t *testing.T) {
	repo, mock := newUserRepoWithMock(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("delvoid.dev@gmail.com").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(sampleUserRow("u1")...))

	user, err := repo.GetByEmail(context.Background(), "delvoid.dev@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "Delvoid", user.Name)
	assert.False(t, user.IsVerified)
	assert.Nil(t, user.Verified)
	assert.Nil(t, user.ResetTokenHash)
}

func TestUserGetByEmailNotFound(t *testing.T) {
	repo, mock := newUserRepoWithMock(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("missing@gmail.com").
		WillReturnRows(sqlmock.NewRows(userCols))

	_, err := repo.GetByEmail(context.Background(), "missing@gmail.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserGetByIDNullableFields(t *testing.T) {
	repo, mock := newUserRepoWithMock(t)

	verified := time.Now().Add(-time.Hour)
	expires := time.Now().Add(10 * time.Minute)
	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(
			"u1", "Delvoid", "delvoid.dev@gmail.com", "hash", model.RoleUser,
			true, verified, "", "digest", expires, now, now,
		))

	user, err := repo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, user.IsVerified)
	require.NotNil(t, user.Verified)
	require.NotNil(t, user.ResetTokenHash)
	assert.Equal(t, "digest", *user.ResetTokenHash)
	require.NotNil(t, user.ResetTokenExpires)
}

func TestUserCount(t *testing.T) {
	repo, mock := newUserRepoWithMock(t)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestUserList(t *testing.T) {
	repo, mock := newUserRepoWithMock(t)

	mock.ExpectQuery("SELECT (.+) FROM users ORDER BY created_at").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(sampleUserRow("u1")...).
			AddRow(sampleUserRow("u2")...))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "u1", users[0].ID)
	assert.Equal(t, "u2", users[1].ID)
}

func TestUserMarkVerified(t *testing.T) {
	repo, mock := newUserRepoWithMock(t)

	at := time.Now()
	mock.ExpectExec("UPDATE users SET is_verified = 1").
		WithArgs(at, "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkVerified(context.Background(), "u1", at))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserSetAndClearResetToken(t *testing.T) {
	repo, mock := newUserRepoWithMock(t)

	expires := time.Now().Add(10 * time.Minute)
	mock.ExpectExec("UPDATE users SET reset_token_hash").
		WithArgs("digest", expires, "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE users SET reset_token_hash = NULL").
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetResetToken(context.Background(), "u1", "digest", expires))
	require.NoError(t, repo.ClearResetToken(context.Background(), "u1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserDelete(t *testing.T) {
	repo, mock := newUserRepoWithMock(t)

	mock.ExpectExec("DELETE FROM users WHERE id").
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "u1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsDuplicateEntryError(t *testing.T) {
	assert.False(t, isDuplicateEntryError(nil))
	assert.False(t, isDuplicateEntryError(ErrUserNotFound))
	assert.True(t, isDuplicateEntryError(errors.New("Error 1062: Duplicate entry")))
}

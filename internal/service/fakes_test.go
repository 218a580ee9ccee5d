package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/delvoid/authgate/internal/model"
	"github.com/delvoid/authgate/internal/repository"
)

// fakeUserStore is an in-memory UserStore for service tests.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.User)}
}

func (s *fakeUserStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	cp := *user
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	s.users[user.ID] = &cp
	return nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *fakeUserStore) GetByID(_ context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) List(_ context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (s *fakeUserStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}

func (s *fakeUserStore) UpdateProfile(_ context.Context, id, name, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email && u.ID != id {
			return repository.ErrDuplicateEmail
		}
	}
	if u, ok := s.users[id]; ok {
		u.Name = name
		u.Email = email
		u.UpdatedAt = time.Now()
	}
	return nil
}

func (s *fakeUserStore) UpdatePassword(_ context.Context, id, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

func (s *fakeUserStore) MarkVerified(_ context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		u.IsVerified = true
		u.Verified = &at
		u.VerificationToken = ""
	}
	return nil
}

func (s *fakeUserStore) SetResetToken(_ context.Context, id, tokenHash string, expires time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		u.ResetTokenHash = &tokenHash
		u.ResetTokenExpires = &expires
	}
	return nil
}

func (s *fakeUserStore) ClearResetToken(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		u.ResetTokenHash = nil
		u.ResetTokenExpires = nil
	}
	return nil
}

func (s *fakeUserStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}

// fakeSessionStore is an in-memory SessionTokenStore keyed by user id,
// enforcing the one-record-per-user constraint like the real schema.
type fakeSessionStore struct {
	mu     sync.Mutex
	nextID int64
	tokens map[string]*model.SessionToken
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{tokens: make(map[string]*model.SessionToken)}
}

func (s *fakeSessionStore) Create(_ context.Context, token *model.SessionToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tokens[token.UserID]; exists {
		return repository.ErrDuplicateSession
	}
	s.nextID++
	token.ID = s.nextID
	cp := *token
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	s.tokens[token.UserID] = &cp
	return nil
}

func (s *fakeSessionStore) GetByUserID(_ context.Context, userID string) (*model.SessionToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[userID]
	if !ok {
		return nil, repository.ErrSessionTokenNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *fakeSessionStore) GetByRefreshToken(_ context.Context, refreshToken string) (*model.SessionToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tokens {
		if t.RefreshToken == refreshToken {
			cp := *t
			return &cp, nil
		}
	}
	return nil, repository.ErrSessionTokenNotFound
}

func (s *fakeSessionStore) ListByUserID(_ context.Context, userID string) ([]model.SessionToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tokens[userID]; ok {
		return []model.SessionToken{*t}, nil
	}
	return nil, nil
}

func (s *fakeSessionStore) DeleteByUserID(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, userID)
	return nil
}

func (s *fakeSessionStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}

func (s *fakeSessionStore) invalidate(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tokens[userID]; ok {
		t.IsValid = false
	}
}

// fakeMailer records sent mail and can simulate a gateway failure.
type fakeMailer struct {
	mu   sync.Mutex
	fail bool
	sent []sentMail
}

type sentMail struct {
	kind  string
	name  string
	email string
	token string
}

func (m *fakeMailer) SendVerificationEmail(_ context.Context, name, email, token string) error {
	return m.record("verification", name, email, token)
}

func (m *fakeMailer) SendResetPasswordEmail(_ context.Context, name, email, token string) error {
	return m.record("reset", name, email, token)
}

func (m *fakeMailer) record(kind, name, email, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("smtp: 553 invalid mailbox")
	}
	m.sent = append(m.sent, sentMail{kind: kind, name: name, email: email, token: token})
	return nil
}

func (m *fakeMailer) lastSent() (sentMail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return sentMail{}, false
	}
	return m.sent[len(m.sent)-1], true
}

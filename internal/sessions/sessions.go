package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auth_backend/internal/models"
)

var ErrSessionExpired = errors.New("session expired")

type Storage interface {
	SaveSession(ctx context.Context, userID, refreshToken string, expiresAt time.Time) error
	Session(ctx context.Context, refreshToken string) (models.Session, error)
	DeleteSessions(ctx context.Context, refreshToken string) error
}

// Manager owns the server-side session rows backing refresh tokens.
// Expired rows are only rejected on Validate, never purged here.
type Manager struct {
	storage Storage
	ttl     time.Duration
	now     func() time.Time
}

func New(storage Storage, ttl time.Duration) *Manager {
	return &Manager{
		storage: storage,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Create inserts a session row for the refresh token. Each login gets its own
// row; concurrent sessions for one user are allowed.
func (m *Manager) Create(ctx context.Context, userID, refreshToken string) error {
	const op = "sessions.Create"

	expiresAt := m.now().Add(m.ttl)

	if err := m.storage.SaveSession(ctx, userID, refreshToken, expiresAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Destroy deletes any sessions matching the token. Idempotent.
func (m *Manager) Destroy(ctx context.Context, refreshToken string) error {
	const op = "sessions.Destroy"

	if err := m.storage.DeleteSessions(ctx, refreshToken); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Validate returns the session for the token, storage.ErrSessionNotFound if
// no row matches, or ErrSessionExpired if the row is past its expiry.
func (m *Manager) Validate(ctx context.Context, refreshToken string) (models.Session, error) {
	session, err := m.storage.Session(ctx, refreshToken)
	if err != nil {
		return models.Session{}, err
	}

	if session.IsExpired(m.now()) {
		return models.Session{}, ErrSessionExpired
	}

	return session, nil
}

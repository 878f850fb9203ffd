// Package memory implements the storage contracts over process-local maps.
// It backs the test suite; production wiring uses the postgres repository.
package memory

import (
	"context"
	"sync"
	"time"

	"auth_backend/internal/models"
	"auth_backend/internal/storage"

	"github.com/google/uuid"
)

type MemoryRepo struct {
	mu       sync.Mutex
	users    map[string]models.User    // keyed by id
	emails   map[string]string         // email -> id
	sessions map[string]models.Session // keyed by refresh token
}

func New() *MemoryRepo {
	return &MemoryRepo{
		users:    make(map[string]models.User),
		emails:   make(map[string]string),
		sessions: make(map[string]models.Session),
	}
}

func (r *MemoryRepo) SaveUser(_ context.Context, email string, passHash []byte) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.emails[email]; ok {
		return "", storage.ErrUserExists
	}

	id := uuid.NewString()
	r.users[id] = models.User{ID: id, Email: email, PassHash: passHash}
	r.emails[email] = id

	return id, nil
}

func (r *MemoryRepo) User(_ context.Context, email string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.emails[email]
	if !ok {
		return models.User{}, storage.ErrUserNotFound
	}

	return r.users[id], nil
}

func (r *MemoryRepo) UserByID(_ context.Context, id string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return models.User{}, storage.ErrUserNotFound
	}

	return u, nil
}

func (r *MemoryRepo) SaveSession(_ context.Context, userID, refreshToken string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[refreshToken] = models.Session{
		ID:           uuid.NewString(),
		UserID:       userID,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}

	return nil
}

func (r *MemoryRepo) Session(_ context.Context, refreshToken string) (models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[refreshToken]
	if !ok {
		return models.Session{}, storage.ErrSessionNotFound
	}

	return s, nil
}

func (r *MemoryRepo) DeleteSessions(_ context.Context, refreshToken string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, refreshToken)

	return nil
}

func (r *MemoryRepo) DeleteExpiredSessions(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	now := time.Now()

	for token, s := range r.sessions {
		if s.IsExpired(now) {
			delete(r.sessions, token)
			deleted++
		}
	}

	return deleted, nil
}

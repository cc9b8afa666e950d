package repository

import (
	"context"
	"sync"
	"time"

	"go-todo-api/internal/model"
)

type tokenSlot struct {
	token     string
	expiresAt time.Time
}

// MemoryTokenRepository is the in-process refresh token registry. It
// keeps a forward map (token to user) for resolution and a per-user
// slot so a new issuance invalidates the previous token in the same
// critical section.
type MemoryTokenRepository struct {
	mu      sync.RWMutex
	byToken map[string]string
	byUser  map[string]tokenSlot
}

func NewMemoryTokenRepository() *MemoryTokenRepository {
	return &MemoryTokenRepository{
		byToken: map[string]string{},
		byUser:  map[string]tokenSlot{},
	}
}

func (r *MemoryTokenRepository) Replace(_ context.Context, userID string, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.byUser[userID]; ok {
		delete(r.byToken, prev.token)
	}
	r.byUser[userID] = tokenSlot{token: token, expiresAt: expiresAt}
	r.byToken[token] = userID
	return nil
}

func (r *MemoryTokenRepository) Resolve(_ context.Context, token string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userID, ok := r.byToken[token]
	if !ok {
		return "", model.ErrRefreshTokenNotFound
	}
	if time.Now().After(r.byUser[userID].expiresAt) {
		return "", model.ErrRefreshTokenExpired
	}
	return userID, nil
}

func (r *MemoryTokenRepository) Revoke(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID, ok := r.byToken[token]
	if !ok {
		return nil
	}
	delete(r.byToken, token)
	delete(r.byUser, userID)
	return nil
}

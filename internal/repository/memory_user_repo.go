package repository

import (
	"context"
	"strings"
	"sync"

	"go-todo-api/internal/model"
)

// MemoryUserRepository keeps users in process memory. It exists for
// tests and for running the API without PostgreSQL; the single mutex
// makes the uniqueness check and the insert one atomic step.
type MemoryUserRepository struct {
	mu         sync.RWMutex
	byID       map[string]model.User
	byUsername map[string]string
	byEmail    map[string]string
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:       map[string]model.User{},
		byUsername: map[string]string{},
		byEmail:    map[string]string{},
	}
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (r *MemoryUserRepository) FindByUsername(_ context.Context, username string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[normalize(username)]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return r.byID[id], nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[normalize(email)]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return r.byID[id], nil
}

func (r *MemoryUserRepository) Create(_ context.Context, u model.User) error {
	usernameKey := normalize(u.Username)
	emailKey := normalize(u.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUsername[usernameKey]; exists {
		return model.ErrUserAlreadyExists
	}
	if _, exists := r.byEmail[emailKey]; exists {
		return model.ErrUserAlreadyExists
	}

	r.byID[u.ID] = u
	r.byUsername[usernameKey] = u.ID
	r.byEmail[emailKey] = u.ID
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

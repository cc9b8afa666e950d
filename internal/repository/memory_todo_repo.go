package repository

import (
	"context"
	"sort"
	"sync"

	"go-todo-api/internal/model"
)

type MemoryTodoRepository struct {
	mu     sync.RWMutex
	nextID int64
	todos  map[int64]model.Todo
}

func NewMemoryTodoRepository() *MemoryTodoRepository {
	return &MemoryTodoRepository{todos: map[int64]model.Todo{}}
}

func (r *MemoryTodoRepository) ListByOwner(_ context.Context, userID string) ([]model.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	todos := make([]model.Todo, 0)
	for _, t := range r.todos {
		if t.UserID == userID {
			todos = append(todos, t)
		}
	}
	sort.Slice(todos, func(i, j int) bool { return todos[i].ID < todos[j].ID })
	return todos, nil
}

func (r *MemoryTodoRepository) Create(_ context.Context, t model.Todo) (model.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	t.ID = r.nextID
	r.todos[t.ID] = t
	return t, nil
}

func (r *MemoryTodoRepository) FindByIDAndOwner(_ context.Context, id int64, userID string) (model.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.todos[id]
	if !ok || t.UserID != userID {
		return model.Todo{}, model.ErrTodoNotFound
	}
	return t, nil
}

func (r *MemoryTodoRepository) Update(_ context.Context, t model.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.todos[t.ID]
	if !ok || existing.UserID != t.UserID {
		return model.ErrTodoNotFound
	}
	r.todos[t.ID] = t
	return nil
}

func (r *MemoryTodoRepository) Delete(_ context.Context, id int64, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.todos[id]
	if !ok || t.UserID != userID {
		return model.ErrTodoNotFound
	}
	delete(r.todos, id)
	return nil
}

package service

import (
	"context"
	"strings"
	"time"

	"go-todo-api/internal/model"
	"go-todo-api/pkg/apierror"
)

// TodoStore is the persistent keyed collection of task records. Every
// operation is filtered by owner; lookups for records owned by someone
// else report model.ErrTodoNotFound.
type TodoStore interface {
	ListByOwner(ctx context.Context, userID string) ([]model.Todo, error)
	Create(ctx context.Context, t model.Todo) (model.Todo, error)
	FindByIDAndOwner(ctx context.Context, id int64, userID string) (model.Todo, error)
	Update(ctx context.Context, t model.Todo) error
	Delete(ctx context.Context, id int64, userID string) error
}

type TodoService struct {
	todos TodoStore
}

func NewTodoService(todos TodoStore) *TodoService {
	return &TodoService{todos: todos}
}

func (s *TodoService) List(ctx context.Context, userID string) ([]model.Todo, error) {
	return s.todos.ListByOwner(ctx, userID)
}

func (s *TodoService) Create(ctx context.Context, userID string, req model.CreateTodoRequest) (model.Todo, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return model.Todo{}, apierror.Validation("title is required", "title")
	}

	now := time.Now().UTC()
	todo := model.Todo{
		UserID:      userID,
		Title:       title,
		Description: req.Description,
		Completed:   false,
		DueDate:     req.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return s.todos.Create(ctx, todo)
}

func (s *TodoService) Update(ctx context.Context, userID string, id int64, req model.UpdateTodoRequest) (model.Todo, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return model.Todo{}, apierror.Validation("title is required", "title")
	}

	todo, err := s.todos.FindByIDAndOwner(ctx, id, userID)
	if err != nil {
		return model.Todo{}, err
	}

	todo.Title = title
	todo.Description = req.Description
	todo.Completed = req.Completed
	todo.DueDate = req.DueDate
	todo.UpdatedAt = time.Now().UTC()

	if err := s.todos.Update(ctx, todo); err != nil {
		return model.Todo{}, err
	}
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, userID string, id int64) error {
	return s.todos.Delete(ctx, id, userID)
}

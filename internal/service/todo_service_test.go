package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-todo-api/internal/model"
	"go-todo-api/internal/repository"
	"go-todo-api/pkg/apierror"
)

func newTestTodoService() *TodoService {
	return NewTodoService(repository.NewMemoryTodoRepository())
}

func TestTodoCreateAndList(t *testing.T) {
	svc := newTestTodoService()
	ctx := context.Background()

	due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	created, err := svc.Create(ctx, "user-a", model.CreateTodoRequest{
		Title:       "buy milk",
		Description: "2%",
		DueDate:     &due,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)
	require.Equal(t, "user-a", created.UserID)
	require.False(t, created.Completed)

	todos, err := svc.List(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, todos, 1)
	require.Equal(t, "buy milk", todos[0].Title)
}

func TestTodoCreateRequiresTitle(t *testing.T) {
	svc := newTestTodoService()

	_, err := svc.Create(context.Background(), "user-a", model.CreateTodoRequest{Title: "  "})
	require.Error(t, err)

	var apiErr *apierror.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "VALIDATION_FAILED", apiErr.Code)
}

func TestTodoUpdate(t *testing.T) {
	svc := newTestTodoService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-a", model.CreateTodoRequest{Title: "buy milk"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "user-a", created.ID, model.UpdateTodoRequest{
		Title:     "buy milk",
		Completed: true,
	})
	require.NoError(t, err)
	require.True(t, updated.Completed)
}

func TestTodoOwnershipIsolation(t *testing.T) {
	svc := newTestTodoService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-a", model.CreateTodoRequest{Title: "secret plan"})
	require.NoError(t, err)

	// Another user's list does not include it.
	todos, err := svc.List(ctx, "user-b")
	require.NoError(t, err)
	require.Empty(t, todos)

	// Cross-user update and delete both look like the record is absent.
	_, err = svc.Update(ctx, "user-b", created.ID, model.UpdateTodoRequest{Title: "hijack"})
	require.ErrorIs(t, err, model.ErrTodoNotFound)

	err = svc.Delete(ctx, "user-b", created.ID)
	require.ErrorIs(t, err, model.ErrTodoNotFound)

	// The owner still sees the untouched record.
	todos, err = svc.List(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, todos, 1)
	require.Equal(t, "secret plan", todos[0].Title)
}

func TestTodoDelete(t *testing.T) {
	svc := newTestTodoService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-a", model.CreateTodoRequest{Title: "buy milk"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "user-a", created.ID))

	err = svc.Delete(ctx, "user-a", created.ID)
	require.ErrorIs(t, err, model.ErrTodoNotFound)
}

//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"go-todo-api/internal/model"
)

func TestTodoLifecycle(t *testing.T) {
	server := newServer(t)

	registerUser(t, server.URL, "alice", "alice@x.com", "Secr3t!pass")
	pair := loginUser(t, server.URL, "alice", "Secr3t!pass")

	listResp := doJSON(t, http.MethodGet, server.URL+"/api/v1/todos", nil, pair.AccessToken)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var todos []model.Todo
	decodeData(t, listResp, &todos)
	require.Empty(t, todos)

	createResp := doJSON(t, http.MethodPost, server.URL+"/api/v1/todos", map[string]any{
		"title":       "buy milk",
		"description": "2%",
		"due_date":    "2025-01-01T00:00:00Z",
	}, pair.AccessToken)
	require.Equal(t, http.StatusOK, createResp.StatusCode)

	var created model.Todo
	decodeData(t, createResp, &created)
	require.Equal(t, int64(1), created.ID)
	require.Equal(t, pair.User.ID, created.UserID)
	require.False(t, created.Completed)

	updateResp := doJSON(t, http.MethodPut, server.URL+"/api/v1/todos/1", map[string]any{
		"title":       "buy milk",
		"description": "2%",
		"completed":   true,
		"due_date":    "2025-01-01T00:00:00Z",
	}, pair.AccessToken)
	require.Equal(t, http.StatusOK, updateResp.StatusCode)

	var updated model.Todo
	decodeData(t, updateResp, &updated)
	require.True(t, updated.Completed)

	deleteResp := doJSON(t, http.MethodDelete, server.URL+"/api/v1/todos/1", nil, pair.AccessToken)
	require.Equal(t, http.StatusNoContent, deleteResp.StatusCode)

	finalResp := doJSON(t, http.MethodGet, server.URL+"/api/v1/todos", nil, pair.AccessToken)
	require.Equal(t, http.StatusOK, finalResp.StatusCode)
	decodeData(t, finalResp, &todos)
	require.Empty(t, todos)
}

func TestTodoOwnershipIsolation(t *testing.T) {
	server := newServer(t)

	registerUser(t, server.URL, "alice", "alice@x.com", "Secr3t!pass")
	registerUser(t, server.URL, "bob", "bob@x.com", "Secr3t!pass")
	alice := loginUser(t, server.URL, "alice", "Secr3t!pass")
	bob := loginUser(t, server.URL, "bob", "Secr3t!pass")

	createResp := doJSON(t, http.MethodPost, server.URL+"/api/v1/todos", map[string]any{
		"title": "alice's secret",
	}, alice.AccessToken)
	require.Equal(t, http.StatusOK, createResp.StatusCode)

	// Bob's list is empty, and touching Alice's record reads as absent.
	listResp := doJSON(t, http.MethodGet, server.URL+"/api/v1/todos", nil, bob.AccessToken)
	var todos []model.Todo
	decodeData(t, listResp, &todos)
	require.Empty(t, todos)

	updateResp := doJSON(t, http.MethodPut, server.URL+"/api/v1/todos/1", map[string]any{
		"title":     "hijacked",
		"completed": true,
	}, bob.AccessToken)
	require.Equal(t, http.StatusNotFound, updateResp.StatusCode)

	deleteResp := doJSON(t, http.MethodDelete, server.URL+"/api/v1/todos/1", nil, bob.AccessToken)
	require.Equal(t, http.StatusNotFound, deleteResp.StatusCode)

	// Alice still owns the untouched record.
	aliceList := doJSON(t, http.MethodGet, server.URL+"/api/v1/todos", nil, alice.AccessToken)
	decodeData(t, aliceList, &todos)
	require.Len(t, todos, 1)
	require.Equal(t, "alice's secret", todos[0].Title)
	require.False(t, todos[0].Completed)
}

func TestTodoValidation(t *testing.T) {
	server := newServer(t)

	registerUser(t, server.URL, "alice", "alice@x.com", "Secr3t!pass")
	pair := loginUser(t, server.URL, "alice", "Secr3t!pass")

	missingTitle := doJSON(t, http.MethodPost, server.URL+"/api/v1/todos", map[string]any{
		"description": "no title",
	}, pair.AccessToken)
	require.Equal(t, http.StatusBadRequest, missingTitle.StatusCode)

	badID := doJSON(t, http.MethodPut, server.URL+"/api/v1/todos/abc", map[string]any{
		"title": "x",
	}, pair.AccessToken)
	require.Equal(t, http.StatusBadRequest, badID.StatusCode)

	missingTodo := doJSON(t, http.MethodDelete, server.URL+"/api/v1/todos/999", nil, pair.AccessToken)
	require.Equal(t, http.StatusNotFound, missingTodo.StatusCode)
}

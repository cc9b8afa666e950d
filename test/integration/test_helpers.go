//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-todo-api/internal/config"
	"go-todo-api/internal/handler"
	"go-todo-api/internal/middleware"
	"go-todo-api/internal/repository"
	"go-todo-api/internal/router"
	"go-todo-api/internal/service"
	"go-todo-api/internal/token"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type tokenPairData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
}

// newServer wires the full router over the in-memory stores so the
// end-to-end flow runs without PostgreSQL.
func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		ServerPort:       "8080",
		RequestTimeout:   30 * time.Second,
		JWTSecret:        testSecret,
		JWTIssuer:        "todo-api",
		JWTAudience:      "todo-clients",
		JWTAccessTTL:     15 * time.Minute,
		JWTRefreshTTL:    24 * time.Hour,
		CORSOrigins:      []string{"*"},
		RateLimitRPM:     1000,
		AuthRateLimitRPM: 1000,
	}

	signer, err := token.NewSigner(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTAccessTTL)
	require.NoError(t, err)

	authService := service.NewAuthService(signer, repository.NewMemoryUserRepository(), repository.NewMemoryTokenRepository(), cfg.JWTRefreshTTL)
	authMiddleware := middleware.NewAuthMiddleware(authService)
	todoService := service.NewTodoService(repository.NewMemoryTodoRepository())

	server := httptest.NewServer(router.New(cfg, authMiddleware, router.Handlers{
		Auth: handler.NewAuthHandler(authService),
		Todo: handler.NewTodoHandler(todoService),
	}))
	t.Cleanup(server.Close)

	return server
}

func doJSON(t *testing.T, method string, url string, body any, accessToken string) *http.Response {
	t.Helper()

	var reader io.Reader = bytes.NewReader(nil)
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) apiEnvelope {
	t.Helper()

	var envelope apiEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope
}

func decodeData(t *testing.T, resp *http.Response, out any) {
	t.Helper()

	envelope := decodeEnvelope(t, resp)
	require.True(t, envelope.Success)
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func registerUser(t *testing.T, serverURL string, username string, email string, password string) {
	t.Helper()

	resp := doJSON(t, http.MethodPost, serverURL+"/api/v1/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func loginUser(t *testing.T, serverURL string, usernameOrEmail string, password string) tokenPairData {
	t.Helper()

	resp := doJSON(t, http.MethodPost, serverURL+"/api/v1/auth/login", map[string]string{
		"username_or_email": usernameOrEmail,
		"password":          password,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var pair tokenPairData
	decodeData(t, resp, &pair)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	return pair
}

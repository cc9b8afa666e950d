//go:build integration

package integration

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-todo-api/internal/token"
)

func TestRegisterLoginAndUserInfo(t *testing.T) {
	server := newServer(t)

	registerUser(t, server.URL, "alice", "alice@x.com", "Secr3t!pass")
	pair := loginUser(t, server.URL, "alice", "Secr3t!pass")
	require.Equal(t, "alice", pair.User.Username)

	infoResp := doJSON(t, http.MethodGet, server.URL+"/api/v1/auth/user-info", nil, pair.AccessToken)
	require.Equal(t, http.StatusOK, infoResp.StatusCode)

	var info struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	decodeData(t, infoResp, &info)
	require.Equal(t, pair.User.ID, info.ID)
	require.Equal(t, "alice", info.Username)
}

func TestLoginByEmail(t *testing.T) {
	server := newServer(t)

	registerUser(t, server.URL, "alice", "alice@x.com", "Secr3t!pass")
	pair := loginUser(t, server.URL, "alice@x.com", "Secr3t!pass")
	require.Equal(t, "alice", pair.User.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	server := newServer(t)

	registerUser(t, server.URL, "alice", "alice@x.com", "Secr3t!pass")

	resp := doJSON(t, http.MethodPost, server.URL+"/api/v1/auth/login", map[string]string{
		"username_or_email": "alice",
		"password":          "WrongPass1!",
	}, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	require.False(t, envelope.Success)
	require.Equal(t, "UNAUTHORIZED", envelope.Error.Code)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	server := newServer(t)

	registerUser(t, server.URL, "alice", "alice@x.com", "Secr3t!pass")

	resp := doJSON(t, http.MethodPost, server.URL+"/api/v1/auth/register", map[string]string{
		"username": "alice",
		"email":    "other@x.com",
		"password": "Secr3t!pass",
	}, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	require.False(t, envelope.Success)
	require.Equal(t, "VALIDATION_FAILED", envelope.Error.Code)
}

func TestRegisterWeakPassword(t *testing.T) {
	server := newServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/v1/auth/register", map[string]string{
		"username": "alice",
		"email":    "alice@x.com",
		"password": "password",
	}, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	require.Equal(t, "VALIDATION_FAILED", envelope.Error.Code)
}

func TestRefreshTokenRotation(t *testing.T) {
	server := newServer(t)

	registerUser(t, server.URL, "alice", "alice@x.com", "Secr3t!pass")
	pair := loginUser(t, server.URL, "alice", "Secr3t!pass")

	refreshResp := doJSON(t, http.MethodPost, server.URL+"/api/v1/auth/refresh-token", map[string]string{
		"refresh_token": pair.RefreshToken,
	}, "")
	require.Equal(t, http.StatusOK, refreshResp.StatusCode)

	var rotated tokenPairData
	decodeData(t, refreshResp, &rotated)
	require.NotEmpty(t, rotated.AccessToken)
	require.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// The old refresh token was invalidated by the exchange.
	replayResp := doJSON(t, http.MethodPost, server.URL+"/api/v1/auth/refresh-token", map[string]string{
		"refresh_token": pair.RefreshToken,
	}, "")
	require.Equal(t, http.StatusUnauthorized, replayResp.StatusCode)
}

func TestLogoutInvalidatesRefreshToken(t *testing.T) {
	server := newServer(t)

	registerUser(t, server.URL, "alice", "alice@x.com", "Secr3t!pass")
	pair := loginUser(t, server.URL, "alice", "Secr3t!pass")

	logoutResp := doJSON(t, http.MethodPost, server.URL+"/api/v1/auth/logout", map[string]string{
		"refresh_token": pair.RefreshToken,
	}, pair.AccessToken)
	require.Equal(t, http.StatusOK, logoutResp.StatusCode)

	refreshResp := doJSON(t, http.MethodPost, server.URL+"/api/v1/auth/refresh-token", map[string]string{
		"refresh_token": pair.RefreshToken,
	}, "")
	require.Equal(t, http.StatusUnauthorized, refreshResp.StatusCode)
}

func TestUserInfoUnknownSubjectIsUnauthorized(t *testing.T) {
	server := newServer(t)

	// Well-formed and correctly signed, but the subject was never
	// registered on this server. The stateless gate admits it; the
	// lookup behind it must still report an auth failure, not 404.
	signer, err := token.NewSigner(testSecret, "todo-api", "todo-clients", 15*time.Minute)
	require.NoError(t, err)
	orphaned, err := signer.Issue("11111111-2222-3333-4444-555555555555", "ghost")
	require.NoError(t, err)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/v1/auth/user-info", nil, orphaned)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	require.False(t, envelope.Success)
	require.Equal(t, "UNAUTHORIZED", envelope.Error.Code)
}

func TestProtectedRoutesFailClosed(t *testing.T) {
	server := newServer(t)

	noToken := doJSON(t, http.MethodGet, server.URL+"/api/v1/todos", nil, "")
	require.Equal(t, http.StatusUnauthorized, noToken.StatusCode)

	badToken := doJSON(t, http.MethodGet, server.URL+"/api/v1/todos", nil, "not-a-real-token")
	require.Equal(t, http.StatusUnauthorized, badToken.StatusCode)

	noInfo := doJSON(t, http.MethodGet, server.URL+"/api/v1/auth/user-info", nil, "")
	require.Equal(t, http.StatusUnauthorized, noInfo.StatusCode)
}

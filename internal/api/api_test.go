package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okradley/veilarena/internal/api"
	"github.com/okradley/veilarena/internal/api/response"
	"github.com/okradley/veilarena/internal/factory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app := factory.NewTestApp()
	go app.Hub.Run()
	t.Cleanup(app.Hub.Stop)

	router := api.NewRouter(api.RouterConfig{
		Logger:      logger,
		AuthService: app.AuthService,
		Engine:      app.Engine,
		Hub:         app.Hub,
		Storage:     app.Storage,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestCreateGuestPlayer(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"display_name": "Alice"}
	rr := ts.request(http.MethodPost, "/api/v1/players/guest", body, "")

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)

	assert.Equal(t, "Alice", resp.Player.DisplayName)
	assert.True(t, resp.Player.IsGuest)
	assert.NotEmpty(t, resp.SessionToken)
}

func TestCreateGuestWithoutNameGetsChallengerTag(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/players/guest", nil, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)

	assert.Regexp(t, `^Challenger-[0-9a-f]{4}$`, resp.Player.DisplayName)
	assert.True(t, resp.Player.IsGuest)
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	// Register
	registerBody := map[string]string{
		"username":     "alice",
		"password":     "secret123",
		"display_name": "Alice",
	}
	rr := ts.request(http.MethodPost, "/api/v1/players/register", registerBody, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var registerResp response.AuthResponse
	err := json.Unmarshal(rr.Body.Bytes(), &registerResp)
	require.NoError(t, err)
	assert.False(t, registerResp.Player.IsGuest)

	// Login
	loginBody := map[string]string{
		"username": "alice",
		"password": "secret123",
	}
	rr = ts.request(http.MethodPost, "/api/v1/players/login", loginBody, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var loginResp response.AuthResponse
	err = json.Unmarshal(rr.Body.Bytes(), &loginResp)
	require.NoError(t, err)
	assert.Equal(t, registerResp.Player.ID, loginResp.Player.ID)
}

func TestRegisterRejectsBadCredentials(t *testing.T) {
	ts := newTestServer(t)

	// Password under 8 characters
	body := map[string]string{
		"username": "alice",
		"password": "short",
	}
	rr := ts.request(http.MethodPost, "/api/v1/players/register", body, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_REQUEST")

	// Username with forbidden characters
	body = map[string]string{
		"username": "has spaces",
		"password": "secret123",
	}
	rr = ts.request(http.MethodPost, "/api/v1/players/register", body, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_REQUEST")
}

func TestLogoutRevokesSession(t *testing.T) {
	ts := newTestServer(t)

	token := createGuestPlayer(t, ts, "Bob")

	rr := ts.request(http.MethodPost, "/api/v1/players/logout", nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	// The revoked token no longer authenticates
	rr = ts.request(http.MethodGet, "/api/v1/players/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestGetMe(t *testing.T) {
	ts := newTestServer(t)

	token := createGuestPlayer(t, ts, "Bob")

	rr := ts.request(http.MethodGet, "/api/v1/players/me", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var meResp response.Player
	err := json.Unmarshal(rr.Body.Bytes(), &meResp)
	require.NoError(t, err)
	assert.Equal(t, "Bob", meResp.DisplayName)
}

func TestUnauthorizedWithoutToken(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/players/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/arena/join", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestJoinArena(t *testing.T) {
	ts := newTestServer(t)

	token := createGuestPlayer(t, ts, "Alice")

	rr := ts.request(http.MethodPost, "/api/v1/arena/join", nil, token)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var joinResp response.JoinResponse
	err := json.Unmarshal(rr.Body.Bytes(), &joinResp)
	require.NoError(t, err)
	assert.NotEmpty(t, joinResp.PlayerID)
	assert.NotEmpty(t, joinResp.Balance)
	assert.NotEmpty(t, joinResp.Health)

	// Second join is rejected
	rr = ts.request(http.MethodPost, "/api/v1/arena/join", nil, token)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "ALREADY_JOINED")
}

func TestArenaRequiresJoin(t *testing.T) {
	ts := newTestServer(t)

	token := createGuestPlayer(t, ts, "Alice")

	rr := ts.request(http.MethodPost, "/api/v1/arena/fight", nil, token)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_JOINED")

	rr = ts.request(http.MethodPost, "/api/v1/arena/heal", nil, token)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_JOINED")

	// Joined flag reads false rather than erroring
	rr = ts.request(http.MethodGet, "/api/v1/arena/joined", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var joinedResp response.JoinedResponse
	err := json.Unmarshal(rr.Body.Bytes(), &joinedResp)
	require.NoError(t, err)
	assert.False(t, joinedResp.Joined)
}

func TestFight(t *testing.T) {
	ts := newTestServer(t)

	token := joinArena(t, ts, "Alice")

	rr := ts.request(http.MethodPost, "/api/v1/arena/fight", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var fightResp response.FightResponse
	err := json.Unmarshal(rr.Body.Bytes(), &fightResp)
	require.NoError(t, err)

	assert.Equal(t, uint64(1), fightResp.Stats.Battles)
	if fightResp.Victory {
		assert.GreaterOrEqual(t, fightResp.Reward, uint64(10))
		assert.LessOrEqual(t, fightResp.Reward, uint64(100))
		assert.Equal(t, uint64(1), fightResp.Stats.Victories)
	} else {
		assert.Equal(t, uint64(0), fightResp.Reward)
		assert.Equal(t, uint64(0), fightResp.Stats.Victories)
	}
}

func TestHeal(t *testing.T) {
	ts := newTestServer(t)

	token := joinArena(t, ts, "Alice")

	rr := ts.request(http.MethodPost, "/api/v1/arena/heal", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var healResp response.HealResponse
	err := json.Unmarshal(rr.Body.Bytes(), &healResp)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), healResp.TotalHeals)
}

func TestStats(t *testing.T) {
	ts := newTestServer(t)

	token := joinArena(t, ts, "Alice")

	rr := ts.request(http.MethodPost, "/api/v1/arena/fight", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = ts.request(http.MethodPost, "/api/v1/arena/heal", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/arena/stats", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var statsResp response.Stats
	err := json.Unmarshal(rr.Body.Bytes(), &statsResp)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), statsResp.Battles)
	assert.Equal(t, uint64(1), statsResp.Heals)
}

func TestDecryptOwnBalance(t *testing.T) {
	ts := newTestServer(t)

	token := joinArena(t, ts, "Alice")

	rr := ts.request(http.MethodGet, "/api/v1/arena/balance", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var handleResp response.CiphertextResponse
	err := json.Unmarshal(rr.Body.Bytes(), &handleResp)
	require.NoError(t, err)
	require.NotEmpty(t, handleResp.Handle)

	body := map[string]string{"handle": handleResp.Handle}
	rr = ts.request(http.MethodPost, "/api/v1/arena/decrypt", body, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var decryptResp response.DecryptResponse
	err = json.Unmarshal(rr.Body.Bytes(), &decryptResp)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), decryptResp.Value)
}

func TestDecryptDeniedForOtherPlayer(t *testing.T) {
	ts := newTestServer(t)

	aliceToken := joinArena(t, ts, "Alice")
	bobToken := joinArena(t, ts, "Bob")

	rr := ts.request(http.MethodGet, "/api/v1/arena/balance", nil, aliceToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var handleResp response.CiphertextResponse
	err := json.Unmarshal(rr.Body.Bytes(), &handleResp)
	require.NoError(t, err)

	// Bob has no grant on Alice's balance
	body := map[string]string{"handle": handleResp.Handle}
	rr = ts.request(http.MethodPost, "/api/v1/arena/decrypt", body, bobToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "DECRYPT_DENIED")
}

func TestDecryptUnknownHandle(t *testing.T) {
	ts := newTestServer(t)

	token := joinArena(t, ts, "Alice")

	body := map[string]string{"handle": "ct_does-not-exist"}
	rr := ts.request(http.MethodPost, "/api/v1/arena/decrypt", body, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "HANDLE_NOT_FOUND")
}

func TestEventLog(t *testing.T) {
	ts := newTestServer(t)

	token := joinArena(t, ts, "Alice")

	rr := ts.request(http.MethodPost, "/api/v1/arena/fight", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/arena/events", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var eventsResp response.EventsResponse
	err := json.Unmarshal(rr.Body.Bytes(), &eventsResp)
	require.NoError(t, err)
	require.Len(t, eventsResp.Events, 2)

	// Newest first
	assert.Equal(t, "monster_fought", string(eventsResp.Events[0].Type))
	assert.Equal(t, "player_joined", string(eventsResp.Events[1].Type))

	// Limit applies
	rr = ts.request(http.MethodGet, "/api/v1/arena/events?limit=1", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)
	err = json.Unmarshal(rr.Body.Bytes(), &eventsResp)
	require.NoError(t, err)
	assert.Len(t, eventsResp.Events, 1)
}

// Helper functions

func createGuestPlayer(t *testing.T, ts *testServer, displayName string) string {
	t.Helper()

	body := map[string]string{"display_name": displayName}
	rr := ts.request(http.MethodPost, "/api/v1/players/guest", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)

	return resp.SessionToken
}

func joinArena(t *testing.T, ts *testServer, displayName string) string {
	t.Helper()

	token := createGuestPlayer(t, ts, displayName)
	rr := ts.request(http.MethodPost, "/api/v1/arena/join", nil, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	return token
}

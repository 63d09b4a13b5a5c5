package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jurdabos/countries-visited/internal/api"
	"github.com/jurdabos/countries-visited/internal/api/response"
	"github.com/jurdabos/countries-visited/internal/factory"
	"github.com/jurdabos/countries-visited/internal/services/auth"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
	auth    *auth.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app := factory.NewTestApp()
	require.NoError(t, app.LoadTestCountries())

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		PlayerService:  app.PlayerService,
		MapviewService: app.MapviewService,
		GeoService:     app.GeoService,
	})

	return &testServer{
		handler: router,
		app:     app,
		auth:    app.AuthService,
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

// guestToken starts a guest session and returns its token
func (ts *testServer) guestToken(t *testing.T) string {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/v1/auth/guest", nil, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.SessionToken
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	// Register
	registerBody := map[string]string{"username": "alice", "password": "secret123"}
	rr := ts.request(http.MethodPost, "/api/v1/auth/register", registerBody, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var registerResp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &registerResp))
	assert.Equal(t, "alice", registerResp.Username)
	assert.False(t, registerResp.Guest)
	assert.NotEmpty(t, registerResp.SessionToken)

	// Login
	loginBody := map[string]string{"username": "alice", "password": "secret123"}
	rr = ts.request(http.MethodPost, "/api/v1/auth/login", loginBody, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var loginResp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &loginResp))
	assert.NotEmpty(t, loginResp.SessionToken)
	assert.NotEqual(t, registerResp.SessionToken, loginResp.SessionToken)
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)

	registerBody := map[string]string{"username": "alice", "password": "secret123"}
	ts.request(http.MethodPost, "/api/v1/auth/register", registerBody, "")

	loginBody := map[string]string{"username": "alice", "password": "wrong"}
	rr := ts.request(http.MethodPost, "/api/v1/auth/login", loginBody, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_CREDENTIALS")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"username": "alice", "password": "secret123"}
	ts.request(http.MethodPost, "/api/v1/auth/register", body, "")

	rr := ts.request(http.MethodPost, "/api/v1/auth/register", body, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "USERNAME_EXISTS")
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/players", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "UNAUTHORIZED")
}

func TestCreateAndGetPlayer(t *testing.T) {
	ts := newTestServer(t)
	token := ts.guestToken(t)

	body := map[string]string{"player_id": "alice", "colour": "#7ebce6"}
	rr := ts.request(http.MethodPost, "/api/v1/players", body, token)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var created response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, "alice", created.ID)
	assert.Equal(t, "#7ebce6", created.Colour)
	assert.Empty(t, created.Visited)

	rr = ts.request(http.MethodGet, "/api/v1/players/alice", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCreatePlayerInvalidColour(t *testing.T) {
	ts := newTestServer(t)
	token := ts.guestToken(t)

	body := map[string]string{"player_id": "alice", "colour": "blue"}
	rr := ts.request(http.MethodPost, "/api/v1/players", body, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_COLOUR")
}

func TestCreatePlayerSuggestsColour(t *testing.T) {
	ts := newTestServer(t)
	token := ts.guestToken(t)

	// Seed the stored palette so there is something to draw from
	require.NoError(t, ts.app.PlayerService.Init(context.Background(), []string{"#16697a", "#7ebce6"}))
	ts.app.MockRandom.QueueIntn(0)

	body := map[string]string{"player_id": "alice"}
	rr := ts.request(http.MethodPost, "/api/v1/players", body, token)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var created response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, "#16697a", created.Colour)
}

func TestUpdateAndClearVisits(t *testing.T) {
	ts := newTestServer(t)
	token := ts.guestToken(t)

	ts.request(http.MethodPost, "/api/v1/players", map[string]string{"player_id": "alice", "colour": "#7ebce6"}, token)

	body := map[string][]string{"codes": {"es", "US", "ES"}}
	rr := ts.request(http.MethodPut, "/api/v1/players/alice/visits", body, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var updated response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.ElementsMatch(t, []string{"ES", "US"}, updated.Visited)

	rr = ts.request(http.MethodDelete, "/api/v1/players/alice/visits", nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/players/alice", nil, token)
	var after response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &after))
	assert.Empty(t, after.Visited)
}

func TestUpdateVisitsUnknownPlayer(t *testing.T) {
	ts := newTestServer(t)
	token := ts.guestToken(t)

	body := map[string][]string{"codes": {"ES"}}
	rr := ts.request(http.MethodPut, "/api/v1/players/nobody/visits", body, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "PLAYER_NOT_FOUND")
}

func TestDeletePlayer(t *testing.T) {
	ts := newTestServer(t)
	token := ts.guestToken(t)

	ts.request(http.MethodPost, "/api/v1/players", map[string]string{"player_id": "alice", "colour": "#7ebce6"}, token)

	rr := ts.request(http.MethodDelete, "/api/v1/players/alice", nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/players/alice", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMapBlendsOverlap(t *testing.T) {
	ts := newTestServer(t)
	token := ts.guestToken(t)

	ts.request(http.MethodPost, "/api/v1/players", map[string]string{"player_id": "alice", "colour": "#ff0000"}, token)
	ts.request(http.MethodPost, "/api/v1/players", map[string]string{"player_id": "bob", "colour": "#0000ff"}, token)
	ts.request(http.MethodPut, "/api/v1/players/alice/visits", map[string][]string{"codes": {"ES", "FR"}}, token)
	ts.request(http.MethodPut, "/api/v1/players/bob/visits", map[string][]string{"codes": {"ES"}}, token)

	rr := ts.request(http.MethodGet, "/api/v1/map", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var state response.MapState
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &state))
	assert.Equal(t, "#800080", state.Colors["ES"])
	assert.Equal(t, "#ff0000", state.Colors["FR"])
}

func TestOverlapsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	token := ts.guestToken(t)

	ts.request(http.MethodPost, "/api/v1/players", map[string]string{"player_id": "alice", "colour": "#ff0000"}, token)
	ts.request(http.MethodPost, "/api/v1/players", map[string]string{"player_id": "bob", "colour": "#0000ff"}, token)
	ts.request(http.MethodPut, "/api/v1/players/alice/visits", map[string][]string{"codes": {"ES"}}, token)
	ts.request(http.MethodPut, "/api/v1/players/bob/visits", map[string][]string{"codes": {"ES"}}, token)

	rr := ts.request(http.MethodGet, "/api/v1/map/overlaps", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var overlaps response.OverlapList
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &overlaps))
	require.Len(t, overlaps.Overlaps, 1)
	assert.Equal(t, "ES", overlaps.Overlaps[0].Code)
	assert.Equal(t, "Spain", overlaps.Overlaps[0].Name)
	assert.Equal(t, []string{"alice", "bob"}, overlaps.Overlaps[0].Visitors)
}

func TestStatsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	token := ts.guestToken(t)

	ts.request(http.MethodPost, "/api/v1/players", map[string]string{"player_id": "alice", "colour": "#7ebce6"}, token)
	ts.request(http.MethodPut, "/api/v1/players/alice/visits", map[string][]string{"codes": {"ES", "JP"}}, token)

	rr := ts.request(http.MethodGet, "/api/v1/players/alice/stats", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var stats response.Stats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.Visited)
	assert.Equal(t, 4, stats.Total)
	assert.InDelta(t, 50.0, stats.Percentage, 0.001)
}

func TestCountriesEndpoint(t *testing.T) {
	ts := newTestServer(t)
	token := ts.guestToken(t)

	rr := ts.request(http.MethodGet, "/api/v1/countries", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var countries response.CountryList
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &countries))
	require.Len(t, countries.Countries, 4)
	assert.Equal(t, "France", countries.Countries[0].Name)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	ts := newTestServer(t)
	token := ts.guestToken(t)

	rr := ts.request(http.MethodPost, "/api/v1/auth/logout", nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/players", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

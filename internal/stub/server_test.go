package stub

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udusdev/biovote/internal/config"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := OpenDB(filepath.Join(t.TempDir(), "stub.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.Load()
	cfg.Stub.GinMode = "release"
	cfg.Stub.AdminUsername = "admin"
	cfg.Stub.AdminPassword = "admin123"
	cfg.Stub.JWTSecret = "test-secret"
	cfg.Stub.TokenTTL = time.Hour

	server, err := New(cfg, db)
	require.NoError(t, err)

	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func adminToken(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	status, body := doJSON(t, http.MethodPost, ts.URL+"/admin/login", "",
		map[string]string{"username": "admin", "password": "admin123"})
	require.Equal(t, http.StatusOK, status)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestAdminLogin(t *testing.T) {
	ts := newTestServer(t)

	status, body := doJSON(t, http.MethodPost, ts.URL+"/admin/login", "",
		map[string]string{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, body["success"])

	adminToken(t, ts)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	status, body := doJSON(t, http.MethodPost, ts.URL+"/position/add", "",
		map[string]string{"name": "President"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, body["success"])

	status, _ = doJSON(t, http.MethodPost, ts.URL+"/position/add", "not-a-token",
		map[string]string{"name": "President"})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestPositionAddAndList(t *testing.T) {
	ts := newTestServer(t)
	token := adminToken(t, ts)

	status, _ := doJSON(t, http.MethodPost, ts.URL+"/position/add", token,
		map[string]string{"name": "President"})
	require.Equal(t, http.StatusCreated, status)

	// Duplicate name is refused.
	status, body := doJSON(t, http.MethodPost, ts.URL+"/position/add", token,
		map[string]string{"name": "President"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "position already exists", body["message"])

	status, body = doJSON(t, http.MethodGet, ts.URL+"/position/list", "", nil)
	require.Equal(t, http.StatusOK, status)
	positions, _ := body["positions"].([]any)
	require.Len(t, positions, 1)
	first, _ := positions[0].(map[string]any)
	assert.Equal(t, "President", first["name"])
	assert.NotEmpty(t, first["_id"])
}

func TestCandidateAddListAndClear(t *testing.T) {
	ts := newTestServer(t)
	token := adminToken(t, ts)

	status, body := doJSON(t, http.MethodPost, ts.URL+"/position/add", token,
		map[string]string{"name": "President"})
	require.Equal(t, http.StatusCreated, status)
	position, _ := body["position"].(map[string]any)
	positionID, _ := position["_id"].(string)
	require.NotEmpty(t, positionID)

	status, _ = doJSON(t, http.MethodPost, ts.URL+"/candidate/add", token, map[string]string{
		"name":       "Abiola Adeyemi",
		"department": "Computer Science",
		"positionId": positionID,
	})
	require.Equal(t, http.StatusCreated, status)

	// Unknown position is refused.
	status, body = doJSON(t, http.MethodPost, ts.URL+"/candidate/add", token, map[string]string{
		"name":       "Nobody",
		"department": "Physics",
		"positionId": "missing",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "position not found", body["message"])

	status, body = doJSON(t, http.MethodGet, ts.URL+"/candidate/list", "", nil)
	require.Equal(t, http.StatusOK, status)
	candidates, _ := body["candidates"].([]any)
	require.Len(t, candidates, 1)
	first, _ := candidates[0].(map[string]any)
	assert.Equal(t, "Abiola Adeyemi", first["name"])
	embedded, _ := first["position"].(map[string]any)
	assert.Equal(t, "President", embedded["name"])

	status, _ = doJSON(t, http.MethodDelete, ts.URL+"/candidate/clear", token, nil)
	require.Equal(t, http.StatusOK, status)

	status, body = doJSON(t, http.MethodGet, ts.URL+"/candidate/list", "", nil)
	require.Equal(t, http.StatusOK, status)
	candidates, _ = body["candidates"].([]any)
	assert.Empty(t, candidates)
}

func TestSessionLifecycle(t *testing.T) {
	ts := newTestServer(t)
	token := adminToken(t, ts)

	status, body := doJSON(t, http.MethodGet, ts.URL+"/session/active", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["active"])

	status, _ = doJSON(t, http.MethodPost, ts.URL+"/session/start", token,
		map[string]string{"name": "SUG Election 2026"})
	require.Equal(t, http.StatusCreated, status)

	status, body = doJSON(t, http.MethodPost, ts.URL+"/session/start", token,
		map[string]string{"name": "Another"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "a voting session is already active", body["message"])

	status, body = doJSON(t, http.MethodGet, ts.URL+"/session/active", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["active"])
	assert.Equal(t, "SUG Election 2026", body["name"])

	status, _ = doJSON(t, http.MethodPost, ts.URL+"/session/end", token, nil)
	require.Equal(t, http.StatusOK, status)

	status, body = doJSON(t, http.MethodPost, ts.URL+"/session/end", token, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "no active voting session", body["message"])
}

func TestCastMultiple(t *testing.T) {
	ts := newTestServer(t)
	token := adminToken(t, ts)

	_, body := doJSON(t, http.MethodPost, ts.URL+"/position/add", token,
		map[string]string{"name": "President"})
	position, _ := body["position"].(map[string]any)
	positionID, _ := position["_id"].(string)

	_, body = doJSON(t, http.MethodPost, ts.URL+"/candidate/add", token, map[string]string{
		"name": "Abiola Adeyemi", "department": "CS", "positionId": positionID,
	})
	candidate, _ := body["candidate"].(map[string]any)
	candidateID, _ := candidate["_id"].(string)

	cast := map[string]any{
		"userId": "2020310022",
		"votes":  []map[string]string{{"position": positionID, "candidateId": candidateID}},
	}

	// Voting is closed until a session starts.
	status, body := doJSON(t, http.MethodPost, ts.URL+"/vote/cast-multiple", "", cast)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "no active voting session", body["message"])

	status, _ = doJSON(t, http.MethodPost, ts.URL+"/session/start", token,
		map[string]string{"name": "SUG Election 2026"})
	require.Equal(t, http.StatusCreated, status)

	status, body = doJSON(t, http.MethodPost, ts.URL+"/vote/cast-multiple", "", cast)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	// Tally incremented.
	status, body = doJSON(t, http.MethodGet, ts.URL+"/candidate/list", "", nil)
	require.Equal(t, http.StatusOK, status)
	candidates, _ := body["candidates"].([]any)
	first, _ := candidates[0].(map[string]any)
	assert.Equal(t, float64(1), first["votes"])

	// Repeat voter refused by the authority.
	status, body = doJSON(t, http.MethodPost, ts.URL+"/vote/cast-multiple", "", cast)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "You have already cast your vote!", body["message"])

	// Empty vote list refused.
	status, _ = doJSON(t, http.MethodPost, ts.URL+"/vote/cast-multiple", "",
		map[string]any{"userId": "u2", "votes": []map[string]string{}})
	assert.Equal(t, http.StatusBadRequest, status)

	// Unknown candidate refused.
	status, _ = doJSON(t, http.MethodPost, ts.URL+"/vote/cast-multiple", "", map[string]any{
		"userId": "u3",
		"votes":  []map[string]string{{"position": positionID, "candidateId": "missing"}},
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

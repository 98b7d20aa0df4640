package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udusdev/biovote/internal/domain/election"
)

func TestListCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/candidate/list", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"candidates": []map[string]any{
				{
					"_id":        "c1",
					"name":       "Abiola Adeyemi",
					"department": "Computer Science",
					"votes":      3,
					"position":   map[string]string{"_id": "p1", "name": "President"},
				},
				{"_id": "c2", "name": "B", "department": "Physics", "position": nil},
			},
		})
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)
	candidates, err := client.ListCandidates(context.Background())
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.Equal(t, "Abiola Adeyemi", candidates[0].Name)
	assert.Equal(t, "President", candidates[0].Position.Name)
	assert.Equal(t, 3, candidates[0].Votes)
	assert.Nil(t, candidates[1].Position)
	assert.Equal(t, election.UnknownPosition, candidates[1].PositionName())
}

func TestCastVotesSuccess(t *testing.T) {
	var received election.VoteRecord
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/vote/cast-multiple", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "votes recorded"})
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)

	sel := election.NewSelectionMap()
	sel.Select(election.Candidate{ID: "c1", Name: "A", Position: &election.Position{ID: "p1", Name: "President"}})

	err := client.CastVotes(context.Background(), election.NewVoteRecord("2020310022", sel))
	require.NoError(t, err)

	assert.Equal(t, "2020310022", received.UserID)
	assert.Equal(t, []election.VotePair{{Position: "p1", CandidateID: "c1"}}, received.Votes)
}

func TestCastVotesServerRefusalSurfacesMessageVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "You have already cast your vote!"})
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)
	err := client.CastVotes(context.Background(), election.VoteRecord{UserID: "u1"})

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "You have already cast your vote!", apiErr.Message)
	assert.Equal(t, "You have already cast your vote!", apiErr.Error())
}

func TestSuccessFalseWithOKStatusIsStillAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "session closed"})
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)
	err := client.StartSession(context.Background(), "SUG 2026")

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "session closed", apiErr.Message)
}

func TestNetworkFailureIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := New(srv.URL, time.Second)
	_, err := client.ListPositions(context.Background())
	assert.Error(t, err)
}

func TestAdminLoginInstallsBearerToken(t *testing.T) {
	var authHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/login":
			json.NewEncoder(w).Encode(map[string]any{"success": true, "token": "tok-123"})
		case "/position/add":
			authHeader = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode(map[string]any{"success": true})
		}
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)

	token, err := client.AdminLogin(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)

	require.NoError(t, client.AddPosition(context.Background(), "President"))
	assert.Equal(t, "Bearer tok-123", authHeader)
}

func TestContextCancellationDropsCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := New(srv.URL, 30*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListCandidates(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin",
		"exp": exp.Unix(),
	}).SignedString([]byte("dev-only-secret"))
	require.NoError(t, err)

	client := New("http://127.0.0.1:0", time.Second)
	client.SetToken(signed)

	got, err := client.TokenExpiry()
	require.NoError(t, err)
	assert.True(t, got.Equal(exp))

	assert.False(t, client.TokenExpired(exp.Add(-time.Minute)))
	assert.True(t, client.TokenExpired(exp.Add(time.Minute)))
}

func TestTokenExpiredWithoutToken(t *testing.T) {
	client := New("http://127.0.0.1:0", time.Second)
	assert.True(t, client.TokenExpired(time.Now()))
}

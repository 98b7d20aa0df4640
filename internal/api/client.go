// Package api is the JSON-over-HTTP client for the e-voting server. The
// server is the single authority for catalog data, session lifecycle and
// vote acceptance; this client only transports requests and surfaces the
// server's answers verbatim.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/udusdev/biovote/internal/domain/election"
	"github.com/udusdev/biovote/internal/logger"
)

// Error is a failed server response. Message carries the server-provided
// reason verbatim so it can be shown to the user unchanged.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server error (status %d)", e.Status)
}

// Client talks to the e-voting server. Each call issues exactly one request
// and honors the caller's context; every request also carries the client's
// bounded timeout so a stalled server cannot hang a screen indefinitely.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
	log     *log.Logger
}

// New creates a client for the server at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     logger.API(),
	}
}

// SetToken installs the admin bearer credential for subsequent calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the currently installed admin credential.
func (c *Client) Token() string {
	return c.token
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e envelope) reason() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// do issues one request and decodes the response into out. Any HTTP error,
// transport failure, or success=false response comes back as an error; the
// caller treats them all uniformly as "the operation did not happen".
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.log.Debug("Request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	var env envelope
	// Bodies are not guaranteed well-formed on error paths; a decode
	// failure just leaves the envelope zero-valued.
	_ = json.Unmarshal(data, &env)

	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		c.log.Warn("Request failed", "method", method, "path", path,
			"status", resp.StatusCode, "reason", env.reason())
		return &Error{Status: resp.StatusCode, Message: env.reason()}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%s %s: decode response: %w", method, path, err)
		}
	}
	return nil
}

// ListPositions fetches the position catalog.
func (c *Client) ListPositions(ctx context.Context) ([]election.Position, error) {
	var resp struct {
		Positions []election.Position `json:"positions"`
	}
	if err := c.do(ctx, http.MethodGet, "/position/list", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Positions, nil
}

// ListCandidates fetches the candidate catalog, each candidate embedding
// its position reference. The snapshot may be stale; callers refresh after
// any catalog mutation.
func (c *Client) ListCandidates(ctx context.Context) ([]election.Candidate, error) {
	var resp struct {
		Candidates []election.Candidate `json:"candidates"`
	}
	if err := c.do(ctx, http.MethodGet, "/candidate/list", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Candidates, nil
}

// AddPosition creates a position. Admin credential required.
func (c *Client) AddPosition(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodPost, "/position/add", map[string]string{"name": name}, nil)
}

// AddCandidate creates a candidate under positionID. Admin credential required.
func (c *Client) AddCandidate(ctx context.Context, name, department, positionID string) error {
	body := map[string]string{
		"name":       name,
		"department": department,
		"positionId": positionID,
	}
	return c.do(ctx, http.MethodPost, "/candidate/add", body, nil)
}

// ClearCandidates removes every candidate. Admin credential required.
func (c *Client) ClearCandidates(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/candidate/clear", nil, nil)
}

// Session describes the global voting-session state owned by the server.
type Session struct {
	Active bool   `json:"active"`
	Name   string `json:"name"`
}

// StartSession opens a named voting session. Admin credential required.
func (c *Client) StartSession(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodPost, "/session/start", map[string]string{"name": name}, nil)
}

// EndSession closes the active voting session. Admin credential required.
func (c *Client) EndSession(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/session/end", nil, nil)
}

// ActiveSession reports whether a voting session is currently open.
func (c *Client) ActiveSession(ctx context.Context) (Session, error) {
	var resp struct {
		Session
	}
	if err := c.do(ctx, http.MethodGet, "/session/active", nil, &resp); err != nil {
		return Session{}, err
	}
	return resp.Session, nil
}

// CastVotes submits a finalized vote record. A nil return means the server
// affirmatively accepted the votes; every other outcome means the
// submission did not happen and may be retried by the user.
func (c *Client) CastVotes(ctx context.Context, record election.VoteRecord) error {
	return c.do(ctx, http.MethodPost, "/vote/cast-multiple", record, nil)
}

// AdminLogin exchanges credentials for the admin session token and installs
// it on the client.
func (c *Client) AdminLogin(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/admin/login", body, &resp); err != nil {
		return "", err
	}
	c.token = resp.Token
	c.log.Info("Admin login succeeded", "username", username)
	return resp.Token, nil
}

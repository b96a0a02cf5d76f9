// Package api is the HTTP client for the remote task store.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/twiced-technology-gmbh/weightboard/internal/task"
)

// DefaultBasePath is the path prefix of every endpoint.
const DefaultBasePath = "/api"

// Endpoint paths relative to the base path.
const (
	PathTasks    = "/tasks"
	PathAdd      = "/add"
	PathEdit     = "/edit"
	PathComplete = "/complete"
	PathDelete   = "/delete"
	PathAuto     = "/auto-50"
)

// ErrMalformedSnapshot is returned when /tasks answers with JSON that is not
// a dashboard snapshot.
var ErrMalformedSnapshot = errors.New("malformed dashboard snapshot")

// AddRequest is the body of a create request.
type AddRequest struct {
	Title   string `json:"title"`
	DueDate string `json:"due_date"`
	Weight  string `json:"weight"`
}

// EditRequest is the body of an edit request.
type EditRequest struct {
	ID      task.ID `json:"id"`
	Title   string  `json:"title"`
	DueDate string  `json:"due_date"`
	Weight  string  `json:"weight"`
}

type idRequest struct {
	ID task.ID `json:"id"`
}

// Client talks to the task store. Mutation responses are drained and
// ignored; only Tasks reads a body.
type Client struct {
	base string
	http *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a client for the store at baseURL with endpoints under
// basePath (DefaultBasePath when empty).
func New(baseURL, basePath string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing store URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parsing store URL: unsupported scheme %q", u.Scheme)
	}
	if basePath == "" {
		basePath = DefaultBasePath
	}
	base := strings.TrimRight(u.String(), "/")
	if p := strings.Trim(basePath, "/"); p != "" {
		base += "/" + p
	}
	c := &Client{base: base, http: http.DefaultClient}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the absolute URL of path.
func (c *Client) Endpoint(path string) string {
	return c.base + path
}

// Tasks fetches the current dashboard snapshot. Status codes are not
// checked; a body that does not decode into a snapshot is an error.
func (c *Client) Tasks(ctx context.Context) (task.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint(PathTasks), nil)
	if err != nil {
		return task.Snapshot{}, fmt.Errorf("building request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return task.Snapshot{}, fmt.Errorf("fetching tasks: %w", err)
	}
	defer resp.Body.Close()

	var probe struct {
		Tasks    json.RawMessage `json:"tasks"`
		Progress json.RawMessage `json:"progress"`
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return task.Snapshot{}, fmt.Errorf("reading tasks: %w", err)
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return task.Snapshot{}, fmt.Errorf("decoding tasks: %w", err)
	}
	if isMissing(probe.Tasks) || isMissing(probe.Progress) {
		return task.Snapshot{}, fmt.Errorf("decoding tasks (HTTP %d): %w", resp.StatusCode, ErrMalformedSnapshot)
	}

	var s task.Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return task.Snapshot{}, fmt.Errorf("decoding tasks: %w", err)
	}
	return s, nil
}

func isMissing(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// Add asks the store to create a task.
func (c *Client) Add(ctx context.Context, r AddRequest) error {
	return c.post(ctx, PathAdd, r)
}

// Edit asks the store to replace a task's fields.
func (c *Client) Edit(ctx context.Context, r EditRequest) error {
	return c.post(ctx, PathEdit, r)
}

// Complete asks the store to flip a task's completion flag.
func (c *Client) Complete(ctx context.Context, id task.ID) error {
	return c.post(ctx, PathComplete, idRequest{ID: id})
}

// Delete asks the store to remove a task.
func (c *Client) Delete(ctx context.Context, id task.ID) error {
	return c.post(ctx, PathDelete, idRequest{ID: id})
}

// AutoTarget triggers the store's auto-target operation. Which tasks it
// toggles is up to the store.
func (c *Client) AutoTarget(ctx context.Context) error {
	return c.post(ctx, PathAuto, struct{}{})
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding %s body: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(path), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("posting %s: %w", path, err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

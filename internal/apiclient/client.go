// Package apiclient talks to a LiftLog server over its REST API. A Client
// is the remote persistence collaborator for the workout builder.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/claude/liftlog/internal/builder"
	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// ErrNotLoggedIn is returned by every workout call made without a session.
var ErrNotLoggedIn = errors.New("not logged in")

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Unwrap lets a 404 match builder.ErrWorkoutNotFound.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return builder.ErrWorkoutNotFound
	}
	return nil
}

// User is the identity the server reports for a session.
type User struct {
	UserID      int    `json:"userId"`
	Login       string `json:"login"`
	DisplayName string `json:"displayName"`
}

// Session is an authenticated connection to the server.
type Session struct {
	User   User
	apiKey string
}

const maxAttempts = 3

// Client sends workout requests to the server. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	backoff    time.Duration

	mu      sync.RWMutex
	session *Session
}

// New creates a Client targeting the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		backoff:    time.Second,
	}
}

// Login verifies apiKey against /api/v1/me and starts a session.
func (c *Client) Login(ctx context.Context, apiKey string) (*Session, error) {
	s := &Session{apiKey: apiKey}
	if err := c.do(ctx, s, http.MethodGet, "/api/v1/me", nil, &s.User); err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
	return s, nil
}

// Logout ends the session. Later calls fail with ErrNotLoggedIn.
func (c *Client) Logout() {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()
}

// Session returns the current session, or nil when logged out.
func (c *Client) Session() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

func (c *Client) current() (*Session, error) {
	s := c.Session()
	if s == nil {
		return nil, ErrNotLoggedIn
	}
	return s, nil
}

func (c *Client) CreateWorkout(ctx context.Context, p models.WorkoutPayload) (*models.Workout, error) {
	var w models.Workout
	if err := c.call(ctx, http.MethodPost, "/api/v1/workouts", p, &w); err != nil {
		return nil, fmt.Errorf("creating workout: %w", err)
	}
	return &w, nil
}

func (c *Client) UpdateWorkout(ctx context.Context, id uuid.UUID, p models.WorkoutPayload) (*models.Workout, error) {
	var w models.Workout
	if err := c.call(ctx, http.MethodPut, "/api/v1/workouts/"+id.String(), p, &w); err != nil {
		return nil, fmt.Errorf("updating workout: %w", err)
	}
	return &w, nil
}

func (c *Client) DeleteWorkout(ctx context.Context, id uuid.UUID) error {
	if err := c.call(ctx, http.MethodDelete, "/api/v1/workouts/"+id.String(), nil, nil); err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	return nil
}

func (c *Client) GetWorkout(ctx context.Context, id uuid.UUID) (*models.Workout, error) {
	var w models.Workout
	if err := c.call(ctx, http.MethodGet, "/api/v1/workouts/"+id.String(), nil, &w); err != nil {
		return nil, fmt.Errorf("getting workout: %w", err)
	}
	return &w, nil
}

func (c *Client) ListWorkouts(ctx context.Context) ([]models.Workout, error) {
	var workouts []models.Workout
	if err := c.call(ctx, http.MethodGet, "/api/v1/workouts", nil, &workouts); err != nil {
		return nil, fmt.Errorf("listing workouts: %w", err)
	}
	return workouts, nil
}

// ExerciseNames returns the names the user has logged before.
func (c *Client) ExerciseNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.call(ctx, http.MethodGet, "/api/v1/exercises", nil, &names); err != nil {
		return nil, fmt.Errorf("listing exercise names: %w", err)
	}
	return names, nil
}

func (c *Client) call(ctx context.Context, method, path string, in, out any) error {
	s, err := c.current()
	if err != nil {
		return err
	}
	return c.do(ctx, s, method, path, in, out)
}

// do sends one request. GETs are retried up to 3 times with exponential
// backoff on transport errors and 5xx responses; other methods are sent once.
func (c *Client) do(ctx context.Context, s *Session, method, path string, in, out any) error {
	var body []byte
	if in != nil {
		var err error
		if body, err = json.Marshal(in); err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
	}

	attempts := 1
	if method == http.MethodGet {
		attempts = maxAttempts
	}

	var lastErr error
	for attempt := range attempts {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.backoff * time.Duration(1<<uint(attempt-1))):
			}
		}

		retry, err := c.send(ctx, s, method, path, body, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retry {
			return err
		}
	}
	if attempts > 1 {
		return fmt.Errorf("after %d attempts: %w", attempts, lastErr)
	}
	return lastErr
}

func (c *Client) send(ctx context.Context, s *Session, method, path string, body []byte, out any) (retry bool, err error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ctx.Err() == nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return true, fmt.Errorf("reading body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode >= 500, &APIError{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, data)}
	}
	if out == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("decoding %s response: %w", path, err)
	}
	return false, nil
}

// errorMessage pulls "error" (or "message") out of a JSON error body.
func errorMessage(status int, body []byte) string {
	var e struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &e) == nil {
		if e.Error != "" {
			return e.Error
		}
		if e.Message != "" {
			return e.Message
		}
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}
	return http.StatusText(status)
}

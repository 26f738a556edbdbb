package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/api/metrics"
	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/core/domain"
)

// HeaderRequestID carries the per-request correlation id.
const HeaderRequestID = "X-Request-ID"

// maxErrorBody bounds how much of a failed response is kept for the log.
const maxErrorBody = 4 << 10

// Config captures the settings for talking to the backend.
type Config struct {
	BaseURL string
	// Timeout bounds each request. Zero means no timeout; callers then rely
	// on context cancellation alone.
	Timeout time.Duration
	// HTTPClient overrides the default client. Its Jar must keep the session
	// cookie for authenticated endpoints to work.
	HTTPClient *http.Client
}

// Client implements ports.Backend over HTTP/JSON.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// New validates the base URL and returns a Client with a cookie jar so the
// backend-managed session survives between requests.
func New(cfg Config, log zerolog.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("backend url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("backend url %q: must be absolute", cfg.BaseURL)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("cookie jar: %w", err)
		}
		hc = &http.Client{Jar: jar, Timeout: cfg.Timeout}
	}

	return &Client{baseURL: u.String(), http: hc, log: log}, nil
}

type userEnvelope struct {
	User *domain.User `json:"user"`
}

// CheckAuth handles GET /api/check-auth.
func (c *Client) CheckAuth(ctx context.Context) (*domain.User, error) {
	return c.userExchange(ctx, "check_auth", http.MethodGet, "/api/check-auth", nil)
}

// Login handles POST /api/login.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	return c.userExchange(ctx, "login", http.MethodPost, "/api/login", creds)
}

// Register handles POST /api/register.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	return c.userExchange(ctx, "register", http.MethodPost, "/api/register", reg)
}

// Logout handles POST /api/logout. Any 2xx counts as success.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, "logout", http.MethodPost, "/api/logout", nil, nil)
}

// ListDestinations handles GET /api/users/{userId}/destinations.
func (c *Client) ListDestinations(ctx context.Context, userID int64) ([]domain.Destination, error) {
	var out []domain.Destination
	path := fmt.Sprintf("/api/users/%d/destinations", userID)
	if err := c.do(ctx, "list_destinations", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Destination{}
	}
	return out, nil
}

// AddDestination handles POST /api/users/{userId}/add_destination.
func (c *Client) AddDestination(ctx context.Context, userID int64, d domain.NewDestination) error {
	path := fmt.Sprintf("/api/users/%d/add_destination", userID)
	return c.do(ctx, "add_destination", http.MethodPost, path, d, nil)
}

// DeleteDestination handles POST /api/users/{userId}/delete_destination/{destinationId}.
func (c *Client) DeleteDestination(ctx context.Context, userID, destinationID int64) error {
	path := fmt.Sprintf("/api/users/%d/delete_destination/%d", userID, destinationID)
	return c.do(ctx, "delete_destination", http.MethodPost, path, nil, nil)
}

// UpdateDestination handles POST /api/users/{userId}/update_destination/{destinationId}.
func (c *Client) UpdateDestination(ctx context.Context, userID, destinationID int64, u domain.DestinationUpdate) error {
	path := fmt.Sprintf("/api/users/%d/update_destination/%d", userID, destinationID)
	return c.do(ctx, "update_destination", http.MethodPost, path, u, nil)
}

func (c *Client) userExchange(ctx context.Context, op, method, path string, body any) (*domain.User, error) {
	var env userEnvelope
	if err := c.do(ctx, op, method, path, body, &env); err != nil {
		return nil, err
	}
	if env.User == nil {
		return nil, fmt.Errorf("%s: %w: response has no user", op, domain.ErrDecode)
	}
	return env.User, nil
}

// do sends one request and decodes a 2xx body into out when out is non-nil.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) (err error) {
	requestID := uuid.NewString()
	start := time.Now()
	defer func() {
		metrics.RemoteCallsTotal.WithLabelValues(op, metrics.Outcome(err)).Inc()
		metrics.RemoteCallDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}()

	var reader io.Reader
	if body != nil {
		payload, merr := json.Marshal(body)
		if merr != nil {
			return fmt.Errorf("%s: encode request: %w", op, merr)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("operation", op).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("request_id", requestID).
		Dur("elapsed", time.Since(start)).
		Msg("backend call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Op: op, Code: resp.StatusCode, Body: strings.TrimSpace(string(b)), ReqID: requestID}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrDecode, err)
	}
	return nil
}

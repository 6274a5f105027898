// Package api implements the HTTP client for the expense tracker service.
// Authentication is explicit: WithToken derives a client that attaches the
// bearer credential, so no process-wide default header is ever installed.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmwangi/pesatrack/internal/domain"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout bounds a single request round trip
	DefaultTimeout = 30 * time.Second
	// DefaultRateLimit is the default outgoing request rate per minute
	DefaultRateLimit = 120
	// DefaultBurstSize is the default burst size for the request limiter
	DefaultBurstSize = 10
)

// ClientConfig holds the tunables for a Client
type ClientConfig struct {
	BaseURL            string
	Timeout            time.Duration
	RateLimitPerMinute int
	BurstSize          int
	Logger             zerolog.Logger
}

// Client talks to the remote expense tracker API. The zero token means
// unauthenticated; derive an authenticated client with WithToken. Derived
// clients share the underlying HTTP client and rate limiter.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        zerolog.Logger
	token      string
}

// NewClient creates a Client with default settings
func NewClient(baseURL string, log zerolog.Logger) *Client {
	return NewClientWithConfig(ClientConfig{
		BaseURL: baseURL,
		Logger:  log,
	})
}

// NewClientWithConfig creates a Client with custom configuration
func NewClientWithConfig(cfg ClientConfig) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RateLimitPerMinute <= 0 {
		cfg.RateLimitPerMinute = DefaultRateLimit
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = DefaultBurstSize
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(float64(cfg.RateLimitPerMinute)/60.0), cfg.BurstSize),
		log:        cfg.Logger.With().Str("component", "api-client").Logger(),
	}
}

// WithToken returns a client that attaches the given bearer credential to
// every request. An empty token returns an unauthenticated client.
func (c *Client) WithToken(token string) *Client {
	derived := *c
	derived.token = token
	return &derived
}

// BaseURL returns the configured remote base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// errorBody is the shape of the service's error responses
type errorBody struct {
	Detail string `json:"detail"`
}

// do performs one request and decodes a 2xx JSON body into out when out is
// non-nil. Non-2xx responses become *domain.APIError with the server's
// detail message; transport failures become *domain.NetworkError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader, out interface{}) error {
	raw, err := c.doRaw(ctx, method, path, query, contentType, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// doRaw is do without response decoding; it returns the raw 2xx body.
func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader) ([]byte, error) {
	op := method + " " + path

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &domain.NetworkError{Op: op, Err: err}
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", op, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("request_id", requestID).Str("op", op).Msg("request failed")
		return nil, &domain.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.NetworkError{Op: op, Err: err}
	}

	c.log.Debug().
		Str("request_id", requestID).
		Str("op", op).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &domain.APIError{StatusCode: resp.StatusCode}
		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil {
			apiErr.Detail = eb.Detail
		}
		return nil, apiErr
	}

	return raw, nil
}

// getJSON issues a GET and decodes the response
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, "", nil, out)
}

// postJSON issues a POST with a JSON body and decodes the response when out
// is non-nil
func (c *Client) postJSON(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode POST %s payload: %w", path, err)
	}
	return c.do(ctx, http.MethodPost, path, nil, "application/json", bytes.NewReader(body), out)
}

// putJSON issues a PUT with a JSON body and decodes the response when out
// is non-nil
func (c *Client) putJSON(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode PUT %s payload: %w", path, err)
	}
	return c.do(ctx, http.MethodPut, path, nil, "application/json", bytes.NewReader(body), out)
}

// delete issues a DELETE and discards any response body
func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, "", nil, nil)
}

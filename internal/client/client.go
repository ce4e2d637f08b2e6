// Package client talks to the menutree REST API.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	appErrors "menutree/internal/errors"
	"menutree/internal/wire"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const (
	DefaultTimeout = 10 * time.Second

	// DefaultBreakerFailures is the number of consecutive transport or 5xx
	// failures that opens the breaker.
	DefaultBreakerFailures = 3
	// DefaultBreakerCooldown is how long the breaker stays open before a
	// trial request is let through.
	DefaultBreakerCooldown = 15 * time.Second
)

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	Status   int
	Envelope wire.ErrorEnvelope
}

func (e *APIError) Error() string {
	if e.Envelope.Message != "" {
		return e.Envelope.Message
	}
	return http.StatusText(e.Status)
}

// Client is a REST client for the menu API. It is safe for concurrent use.
type Client struct {
	base     *url.URL
	http     *http.Client
	timeout  time.Duration
	failures uint32
	cooldown time.Duration
	logger   *zap.Logger
	breaker  *gobreaker.CircuitBreaker
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every call, including reading the response body.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithBreaker sets how many consecutive failures open the breaker and how
// long it stays open.
func WithBreaker(failures uint32, cooldown time.Duration) Option {
	return func(c *Client) {
		c.failures = failures
		c.cooldown = cooldown
	}
}

// WithLogger sets the logger for breaker state changes and failed calls.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, appErrors.New(appErrors.CodeConfigurationError,
			fmt.Sprintf("invalid API URL %q", baseURL), err)
	}
	c := &Client{
		base:     base,
		http:     &http.Client{},
		timeout:  DefaultTimeout,
		failures: DefaultBreakerFailures,
		cooldown: DefaultBreakerCooldown,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "menutree-api",
		MaxRequests: 1,
		Timeout:     c.cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= c.failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		IsSuccessful: countsAsSuccess,
	})
	return c, nil
}

// BaseURL returns the API root the client was created with.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// countsAsSuccess keeps caller mistakes (4xx) from tripping the breaker.
func countsAsSuccess(err error) bool {
	if err == nil {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status < http.StatusInternalServerError
	}
	return false
}

// do sends one request through the breaker and decodes a 2xx body into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_, err := c.breaker.Execute(func() (any, error) {
		return nil, c.roundTrip(ctx, method, path, query, body, out)
	})
	if err == nil {
		return nil
	}
	c.logger.Debug("api call failed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Error(err),
	)
	return classify(err)
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = query.Encode()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &apiErr.Envelope)
		}
		return apiErr
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// classify maps a failed call onto the application error codes so callers
// can branch on not_found or validation the same way the server does.
func classify(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		code := appErrors.CodeRemoteFailed
		switch apiErr.Status {
		case http.StatusNotFound:
			code = appErrors.CodeNotFound
		case http.StatusBadRequest:
			code = appErrors.CodeValidation
		case http.StatusConflict:
			code = appErrors.CodeConflict
		}
		return appErrors.New(code, apiErr.Error(), apiErr)
	}
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return appErrors.New(appErrors.CodeRemoteFailed, "server unreachable, retrying shortly", err)
	case errors.Is(err, context.DeadlineExceeded):
		return appErrors.New(appErrors.CodeRemoteFailed, "request timed out", err)
	}
	return appErrors.New(appErrors.CodeRemoteFailed, fmt.Sprintf("request failed: %v", err), err)
}

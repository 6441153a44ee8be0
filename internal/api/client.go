// Package api fetches cooperatives from the remote cooperatives service.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/rshade/coopview/internal/coop"
	"github.com/rshade/coopview/internal/logging"
)

// CoopsPath is the endpoint, relative to the base URL, that lists cooperatives.
const CoopsPath = "/api/v1/coops"

// Client defaults.
const (
	DefaultTimeout    = 15 * time.Second
	DefaultAttempts   = 1
	defaultRetryDelay = 500 * time.Millisecond
	maxErrorBodyBytes = 512
)

// ErrDecode is returned when the response body is not a JSON list of cooperatives.
var ErrDecode = errors.New("decoding cooperatives response")

// APIError is returned for non-2xx responses.
//
//nolint:revive // APIError is the canonical name for this exported type.
type APIError struct {
	StatusCode int
	Status     string
}

// Error renders "API error: <code> - <status text>".
func (e *APIError) Error() string {
	return fmt.Sprintf("API error: %d - %s", e.StatusCode, e.Status)
}

// Retryable reports whether the server may succeed on a later attempt.
func (e *APIError) Retryable() bool {
	return e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusTooManyRequests
}

// Fetcher loads the full cooperatives list.
type Fetcher interface {
	FetchCooperativas(ctx context.Context) ([]coop.Cooperativa, error)
}

// Client is an HTTP client for the cooperatives API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	attempts   uint
	retryDelay time.Duration
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithAttempts sets how many times a failed fetch is tried in total.
// Values below 1 are treated as 1.
func WithAttempts(n int) Option {
	return func(c *Client) {
		if n < 1 {
			n = 1
		}
		c.attempts = uint(n) //nolint:gosec // n is bounded by config validation.
	}
}

// WithRetryDelay sets the base delay between attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) { c.retryDelay = d }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL must be absolute: %q", baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		attempts:   DefaultAttempts,
		retryDelay: defaultRetryDelay,
		userAgent:  "coopview",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the full URL of the cooperatives list.
func (c *Client) Endpoint() string {
	return c.baseURL + CoopsPath
}

// FetchCooperativas fetches every cooperative in a single GET.
// Transport failures, 5xx and 429 responses are retried up to the configured
// number of attempts; other API errors are returned immediately.
func (c *Client) FetchCooperativas(ctx context.Context) ([]coop.Cooperativa, error) {
	log := logging.FromContext(ctx).With().Str("component", "api").Logger()

	var result []coop.Cooperativa
	err := retry.Do(
		func() error {
			items, fetchErr := c.fetchOnce(ctx)
			if fetchErr != nil {
				return fetchErr
			}
			result = items
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return ctx.Err() == nil && isRetryable(err)
		}),
		retry.OnRetry(func(n uint, retryErr error) {
			log.Warn().Ctx(ctx).Err(retryErr).Uint("attempt", n+1).Msg("retrying cooperatives fetch")
		}),
	)
	if err != nil {
		log.Error().Ctx(ctx).Err(err).Str("url", c.Endpoint()).Msg("failed to fetch cooperatives")
		return nil, err
	}

	log.Debug().Ctx(ctx).Int("count", len(result)).Msg("fetched cooperatives")
	return result, nil
}

func (c *Client) fetchOnce(ctx context.Context) ([]coop.Cooperativa, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint(), nil)
	if err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, &APIError{StatusCode: resp.StatusCode, Status: statusText(resp)}
	}

	var items []coop.Cooperativa
	if err = json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("%w: %w", ErrDecode, err))
	}
	if items == nil {
		items = []coop.Cooperativa{}
	}
	return items, nil
}

// statusText returns the reason phrase without the leading status code.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

// isRetryable reports whether a failed attempt may be repeated. RetryIf replaces
// retry-go's own recoverability check, so unrecoverable errors are filtered here.
func isRetryable(err error) bool {
	if !retry.IsRecoverable(err) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}
	return true
}

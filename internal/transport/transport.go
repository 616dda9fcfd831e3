// Package transport executes HTTP requests against the task service and
// normalizes responses into typed results or typed errors.
//
// Retries apply only to failures to complete the exchange; an error response
// from the service is never retried.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultRetries is the number of retries after the initial attempt.
	DefaultRetries = 2

	// DefaultRetryDelay is the fixed delay between attempts. It smooths
	// over cold-start latency of the backing service.
	DefaultRetryDelay = time.Second

	// DefaultTimeout bounds a single request attempt.
	DefaultTimeout = 10 * time.Second
)

// Client issues requests against the task service base URL.
// It retains no state between calls.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retries    int
	retryDelay time.Duration
	log        *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithRetries sets the retry bound (retries after the first attempt).
func WithRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retries = n
		}
	}
}

// WithRetryDelay sets the fixed inter-attempt delay.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.retryDelay = d
		}
	}
}

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// HTTPClient returns an HTTP client enforcing the per-attempt timeout.
func HTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// WithLogger sets the debug logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a Client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		retries:    DefaultRetries,
		retryDelay: DefaultRetryDelay,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do executes one logical request. path is relative to the base URL. body,
// when non-nil, is JSON-encoded and a Content-Type header is attached; no
// header is sent for body-less requests. On success the response body is
// decoded into out unless out is nil or the response is 204 No Content.
//
// Failures to complete the exchange are retried up to the configured bound
// with a fixed delay; the last failure is returned as *RequestError. A
// success response with an undecodable body counts as an incomplete
// exchange. A non-success status is returned as *APIError and never retried.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
	}

	url := c.baseURL + path
	attempts := c.retries + 1

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			c.log.Debug("retrying request",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("attempt", attempt),
			)
			select {
			case <-time.After(c.retryDelay):
			case <-ctx.Done():
				return &RequestError{Method: method, Path: path, Attempts: attempt - 1, Err: ctx.Err()}
			}
		}

		resp, err := c.send(ctx, method, url, payload)
		if err != nil {
			lastErr = err
			continue
		}

		err = c.handleResponse(resp, out)
		var dec *decodeError
		if errors.As(err, &dec) {
			lastErr = dec
			continue
		}
		return err
	}

	return &RequestError{Method: method, Path: path, Attempts: attempts, Err: lastErr}
}

// send performs a single attempt.
func (c *Client) send(ctx context.Context, method, url string, payload []byte) (*http.Response, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("issuing request", zap.String("method", method), zap.String("url", url))
	return c.httpClient.Do(req)
}

// handleResponse normalizes a completed exchange. A success response whose
// body cannot be read or decoded comes back as *decodeError, which the
// retry loop treats like a failure to complete the exchange.
func (c *Client) handleResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &decodeError{err: fmt.Errorf("read response body: %w", err)}
	}

	c.log.Debug("received response", zap.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp.StatusCode, data)
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &decodeError{err: fmt.Errorf("decode response body: %w", err)}
	}
	return nil
}

// Package api is the typed client for the storefront backend's HTTP JSON
// API. Every call takes a context, attaches the bearer token when one is
// available, and converts non-2xx responses into *StatusError. A 401 tears
// the session down through the OnUnauthorized hook before the error is
// returned.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"stylekart/internal/config"
	"stylekart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TokenSource supplies the current bearer token, or "" when signed out.
type TokenSource interface {
	Token() string
}

// StatusError is a non-2xx backend response.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Code, e.Message)
}

// Client talks to the backend API.
type Client struct {
	baseURL        string
	http           *http.Client
	tokens         TokenSource
	payment        config.PaymentConfig
	onUnauthorized func()
	logger         zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithOnUnauthorized installs the global 401 handler: session teardown plus
// redirect-to-login intent.
func WithOnUnauthorized(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithHTTPClient replaces the underlying HTTP client (tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient creates a backend API client.
func NewClient(cfg config.APIConfig, payment config.PaymentConfig, tokens TokenSource, logger zerolog.Logger, opts ...Option) *Client {
	logger = logger.With().Str("component", "api-client").Logger()

	c := &Client{
		baseURL: cfg.BaseURL,
		tokens:  tokens,
		payment: payment,
		logger:  logger,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: &loggingTransport{next: http.DefaultTransport, logger: logger},
		},
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get issues a GET and decodes the JSON response into out when non-nil.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// post issues a POST with a JSON body and decodes the response into out.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// put issues a PUT with a JSON body and decodes the response into out.
func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// delete issues a DELETE.
func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// do builds and executes a JSON request.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	data, err := c.send(req)
	if err != nil {
		return err
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", path, err)
		}
	}
	return nil
}

// send attaches auth/correlation headers, executes the request, and maps the
// response: 2xx returns the body, 401 triggers the global teardown, anything
// else becomes a *StatusError carrying the backend's message.
func (c *Client) send(req *http.Request) ([]byte, error) {
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Correlation-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", req.URL.Path, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.logger.Warn().Str("path", req.URL.Path).Msg("unauthorised, tearing down session")
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return nil, model.ErrUnauthorised
	}

	return nil, &StatusError{Code: resp.StatusCode, Message: errorMessage(data)}
}

// errorMessage extracts the backend's error text from an {error|message}
// body, falling back to a generic message.
func errorMessage(data []byte) string {
	var body model.ErrorResponse
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return "request failed"
}

// loggingTransport logs every request with timing, mirroring server-side
// request logging.
type loggingTransport struct {
	next   http.RoundTripper
	logger zerolog.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.next.RoundTrip(req)

	evt := t.logger.Info()
	if err != nil {
		evt = t.logger.Error().Err(err)
	}
	evt = evt.
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Dur("duration", time.Since(start))
	if resp != nil {
		evt = evt.Int("status", resp.StatusCode)
	}
	evt.Msg("http request")

	return resp, err
}

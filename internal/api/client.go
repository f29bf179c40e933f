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
	"github.com/sirupsen/logrus"
)

// TokenSource supplies the bearer token for outgoing requests; "" means anonymous
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to TokenSource
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// Client talks to the establishment directory service
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logrus.FieldLogger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. Its transport is wrapped with the bearer interceptor.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient creates a client for baseURL. tokens may be nil for an anonymous client.
func NewClient(baseURL string, tokens TokenSource, logger logrus.FieldLogger, opts ...Option) *Client {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}

	base := c.httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	hc := *c.httpClient
	hc.Transport = &bearerTransport{base: base, tokens: tokens}
	c.httpClient = &hc

	return c
}

// BaseURL returns the API origin
func (c *Client) BaseURL() string {
	return c.baseURL
}

// PhotoURL resolves a photo path returned by the server against the API origin
func (c *Client) PhotoURL(path string) string {
	if path == "" {
		return ""
	}
	if u, err := url.Parse(path); err == nil && u.IsAbs() {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// bearerTransport attaches the current token and a request id to every request
type bearerTransport struct {
	base   http.RoundTripper
	tokens TokenSource
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	if t.tokens != nil {
		if token := t.tokens.Token(); token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
	}
	if r.Header.Get("X-Request-ID") == "" {
		r.Header.Set("X-Request-ID", uuid.New().String())
	}
	return t.base.RoundTrip(r)
}

// doJSON sends payload as JSON (when non-nil) and decodes the response into result (when non-nil)
func (c *Client) doJSON(ctx context.Context, method, endpoint string, query *Params, payload interface{}, result interface{}) error {
	var body io.Reader
	contentType := ""
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewReader(jsonData)
		contentType = "application/json"
	}
	return c.do(ctx, method, endpoint, query, body, contentType, result)
}

func (c *Client) do(ctx context.Context, method, endpoint string, query *Params, body io.Reader, contentType string, result interface{}) error {
	target := c.baseURL + endpoint
	if query != nil && query.Len() > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)

	log := c.logger.WithFields(logrus.Fields{
		"method":     method,
		"url":        target,
		"request_id": requestID,
	})
	log.Debug("Making API request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	log.WithFields(logrus.Fields{
		"status_code":   resp.StatusCode,
		"response_size": len(responseBody),
		"duration_ms":   time.Since(start).Milliseconds(),
	}).Debug("API response received")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, responseBody)
	}

	if result != nil && len(responseBody) > 0 {
		if err := json.Unmarshal(responseBody, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}

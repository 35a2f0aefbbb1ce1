// Package client provides a typed HTTP client for the job board API. It is
// the only way the board and CLI layers talk to the server, so the error
// taxonomy lives here: transport failures become *NetworkError and
// server-reported failures become *APIError carrying the server's message.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mbenali/jobboard/internal/config"
)

// DefaultTimeout bounds every API round trip.
const DefaultTimeout = 30 * time.Second

// NetworkError means the request never produced an HTTP response: DNS
// failure, refused connection, timeout. The operation may have partially
// succeeded server-side only for idempotent retries to resolve.
type NetworkError struct {
	Op    string
	Cause error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Cause)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// APIError carries a failure the server reported in its error envelope. The
// message is safe to show to users verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether the server said the resource does not exist.
func (e *APIError) IsNotFound() bool { return e.StatusCode == http.StatusNotFound }

// IsConflict reports whether the server rejected a duplicate, such as a
// second application to the same job.
func (e *APIError) IsConflict() bool { return e.StatusCode == http.StatusConflict }

// IsUnauthorized reports whether the session is missing or expired.
func (e *APIError) IsUnauthorized() bool { return e.StatusCode == http.StatusUnauthorized }

// Client is a typed client for the job board API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a client from configuration.
func New(cfg *config.ClientConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// SetToken replaces the bearer token, typically after login.
func (c *Client) SetToken(token string) { c.token = token }

// envelope is the common part of every API response.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// do executes one API call: it marshals body (when non-nil), sends the
// request, and decodes the response into out. Non-2xx responses and
// {"success":false} bodies both surface as *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request for %s: %w", op, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request for %s: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: op, Cause: err}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &APIError{StatusCode: resp.StatusCode,
			Message: fmt.Sprintf("unexpected response from %s", op)}
	}
	if resp.StatusCode >= 400 || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode response for %s: %w", op, err)
		}
	}
	return nil
}

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Credentials holds the process-wide bearer credential shared by every
// outbound client. Only the session subsystem writes it; every client reads
// it at request-build time, so the next request after a write always carries
// the latest value.
type Credentials struct {
	mu     sync.RWMutex
	bearer string
}

// NewCredentials creates an empty credential holder
func NewCredentials() *Credentials {
	return &Credentials{}
}

// SetBearerToken configures the bearer credential attached to every
// subsequent request built against these credentials
func (c *Credentials) SetBearerToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bearer = token
}

// ClearBearerToken removes the bearer credential
func (c *Credentials) ClearBearerToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bearer = ""
}

// BearerToken returns the currently configured credential, empty when absent
func (c *Credentials) BearerToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bearer
}

// Client is an outbound HTTP client for one backend service. All clients
// built over the same Credentials form the shared request pipeline: every
// request carries the currently configured bearer token, so gateways never
// handle tokens themselves.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	creds      *Credentials
}

// NewClient creates a new HTTP client. creds may be shared across clients
// and may be nil for unauthenticated endpoints.
func NewClient(serviceURL string, timeout time.Duration, creds *Credentials) *Client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		BaseURL: serviceURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		creds: creds,
	}
}

// StatusError is returned for non-2xx responses. Message carries the server's
// error message when the body had one.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// newRequest builds a request against the base URL with the standard headers
func (c *Client) newRequest(ctx context.Context, method, endpoint string, body interface{}, headers map[string]string) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())

	if c.creds != nil {
		if bearer := c.creds.BearerToken(); bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

// do executes the request and decodes a JSON response into result when
// result is non-nil. Non-2xx responses become a StatusError carrying the
// server's message field when present.
func (c *Client) do(req *http.Request, result interface{}) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		var errBody struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &errBody); err == nil {
			statusErr.Message = errBody.Message
		}
		return statusErr
	}

	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}

// GetJSON performs a GET request and decodes the JSON response
func (c *Client) GetJSON(ctx context.Context, endpoint string, result interface{}) error {
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return err
	}
	return c.do(req, result)
}

// PostJSON performs a POST request with a JSON body
func (c *Client) PostJSON(ctx context.Context, endpoint string, body, result interface{}) error {
	return c.PostJSONWithHeaders(ctx, endpoint, body, result, nil)
}

// PostJSONWithHeaders performs a POST request with extra headers
func (c *Client) PostJSONWithHeaders(ctx context.Context, endpoint string, body, result interface{}, headers map[string]string) error {
	req, err := c.newRequest(ctx, http.MethodPost, endpoint, body, headers)
	if err != nil {
		return err
	}
	return c.do(req, result)
}

// PutJSON performs a PUT request with a JSON body
func (c *Client) PutJSON(ctx context.Context, endpoint string, body, result interface{}) error {
	return c.PutJSONWithHeaders(ctx, endpoint, body, result, nil)
}

// PutJSONWithHeaders performs a PUT request with extra headers
func (c *Client) PutJSONWithHeaders(ctx context.Context, endpoint string, body, result interface{}, headers map[string]string) error {
	req, err := c.newRequest(ctx, http.MethodPut, endpoint, body, headers)
	if err != nil {
		return err
	}
	return c.do(req, result)
}

// Delete performs a DELETE request
func (c *Client) Delete(ctx context.Context, endpoint string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, endpoint, nil, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

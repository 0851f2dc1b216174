// ABOUTME: Shared HTTP client plumbing for the upstream quiz REST API
// ABOUTME: Handles bearer-token injection, JSON round trips, and error taxonomy

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// ErrUnauthorized is returned whenever the upstream rejects the bearer token
// with a 401. Callers treat it as a signal to tear the session down.
var ErrUnauthorized = errors.New("upstream rejected the token")

// ErrUnavailable wraps transport-level failures reaching the upstream.
var ErrUnavailable = errors.New("quiz service unavailable")

// APIError is a non-2xx upstream response with the user-facing message
// extracted from its body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

// StatusOf returns the upstream status code carried by err, or 0 when err is
// not an APIError.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

type apiClient struct {
	baseURL    string
	httpClient *http.Client
}

func newAPIClient(baseURL string, timeout time.Duration) *apiClient {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &apiClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// do performs one request and returns the raw response body. A non-empty
// token is attached as a Bearer Authorization header. 401 responses map to
// ErrUnauthorized, other non-2xx responses to *APIError, and transport
// failures to ErrUnavailable.
func (c *apiClient) do(ctx context.Context, method, path, token string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    extractMessage(data),
		}
	}

	return data, nil
}

// doJSON performs a request and decodes the response into out when non-nil.
func (c *apiClient) doJSON(ctx context.Context, method, path, token string, body, out interface{}) error {
	data, err := c.do(ctx, method, path, token, body)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse upstream response: %w", err)
	}
	return nil
}

// extractMessage pulls a human-readable message out of an upstream error
// body. The upstream emits several shapes (message, error, detail, and
// API-Platform violation lists); gjson reads them all without a struct per
// variant.
func extractMessage(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	if violations := gjson.GetBytes(data, "violations.#.message"); violations.Exists() {
		var parts []string
		for _, v := range violations.Array() {
			if msg := strings.TrimSpace(v.String()); msg != "" {
				parts = append(parts, msg)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, ", ")
		}
	}

	for _, key := range []string{"message", "error", "detail"} {
		if v := gjson.GetBytes(data, key); v.Exists() {
			if msg := strings.TrimSpace(v.String()); msg != "" {
				return msg
			}
		}
	}

	return ""
}

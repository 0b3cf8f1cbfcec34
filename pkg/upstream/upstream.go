// Package upstream holds the plumbing shared by every external provider adapter:
// one outbound call, the body read (optionally capped), non-2xx turned into *Error.
package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrEmptyResponse is returned when a provider answered 2xx but carried no usable result.
var ErrEmptyResponse = errors.New("empty response from provider")

// ErrInvalidJSON is returned when a provider answered 2xx with a body that is not JSON.
var ErrInvalidJSON = errors.New("provider returned a non-JSON response")

// ErrMissingAPIKey marks a provider that cannot be called because no key is configured.
var ErrMissingAPIKey = errors.New("API key missing")

// ErrTooLarge is returned by DoLimited when a body is longer than the allowed size.
var ErrTooLarge = errors.New("response body exceeds size limit")

// Error is a non-2xx provider answer. The status and raw body are relayed to the caller.
type Error struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s api error (status %d): %s", e.Provider, e.StatusCode, Truncate(e.Body, 500))
}

// NewHTTPClient returns a client with the given overall timeout (0 keeps the default of none).
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// Do executes req and returns the full body for 2xx answers.
func Do(client *http.Client, provider string, req *http.Request) ([]byte, error) {
	return DoLimited(client, provider, req, 0)
}

// DoLimited is Do with at most maxBytes of body read. Zero means no limit.
func DoLimited(client *http.Client, provider string, req *http.Request, maxBytes int64) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", provider, err)
	}
	defer resp.Body.Close()

	ok := resp.StatusCode >= 200 && resp.StatusCode <= 299
	if ok && maxBytes > 0 && resp.ContentLength > maxBytes {
		return nil, fmt.Errorf("%s: %w (%d > %d bytes)", provider, ErrTooLarge, resp.ContentLength, maxBytes)
	}

	var reader io.Reader = resp.Body
	if maxBytes > 0 {
		reader = io.LimitReader(resp.Body, maxBytes+1)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read response: %w", provider, err)
	}

	if !ok {
		return nil, &Error{Provider: provider, StatusCode: resp.StatusCode, Body: string(body)}
	}
	if maxBytes > 0 && int64(len(body)) > maxBytes {
		return nil, fmt.Errorf("%s: %w (%d bytes)", provider, ErrTooLarge, maxBytes)
	}
	return body, nil
}

// DoJSON is Do for endpoints that must answer with a JSON document.
func DoJSON(client *http.Client, provider string, req *http.Request) ([]byte, error) {
	body, err := Do(client, provider, req)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, ErrEmptyResponse
	}
	if !json.Valid(body) {
		return nil, ErrInvalidJSON
	}
	return body, nil
}

// Truncate shortens s to maxLen bytes, appending "..." when cut.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

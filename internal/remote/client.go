package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Client holds the shared HTTP plumbing for the backend API clients.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates the shared API client for the given backend base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    newAPIHTTPClient(),
	}
}

// NewClientWithHTTP creates a client with a caller-supplied http.Client,
// used by tests against httptest servers.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

// doJSON performs one HTTP exchange and decodes the response body into out.
// Every failure comes back as a *Error with a classified kind.
func (c *Client) doJSON(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return NewError(KindValidation, op, fmt.Errorf("marshal request: %w", err))
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return NewError(KindValidation, op, fmt.Errorf("build request: %w", err))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransport(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Bounded read keeps error messages from ballooning on HTML
		// error pages served by intermediaries.
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return classifyStatus(op, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewError(KindServer, op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 15 * time.Second

// Client fetches JSON payloads from aggregator endpoints. Every request is
// timeout-bounded; the timeout cancels the in-flight request, it does not
// merely ignore the result.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
}

// NewClient constructs a client with the given per-request timeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{},
		timeout:    timeout,
	}
}

// getJSON performs a timeout-bounded GET and returns the raw body. The body
// is read as text before any status handling so that non-2xx responses can
// surface a truncated diagnostic snippet.
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if len(params) > 0 {
		q := u.Query()
		for k, vs := range params {
			for _, v := range vs {
				q.Set(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", u.Host, err)
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Status: resp.StatusCode,
			Body:   truncateBody(strings.TrimSpace(string(body))),
		}
	}
	if readErr != nil {
		return nil, fmt.Errorf("reading response from %s: %w", u.Host, readErr)
	}
	return body, nil
}

// FetchItems retrieves and normalizes an aggregator payload.
func (c *Client) FetchItems(ctx context.Context, endpoint string, params url.Values) (*Payload, error) {
	body, err := c.getJSON(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	var p Payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, &ParseError{Err: err}
	}
	return &p, nil
}

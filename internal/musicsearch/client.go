package musicsearch

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
)

const userAgent = "tunedex/0.1.0"

// ErrRemote marks transport or remote-service failures. Callers recover from
// it without touching application state; it is never fatal to the session.
var ErrRemote = errors.New("remote search error")

// Client is the opaque remote search collaborator.
type Client interface {
	Search(ctx context.Context, query string, limit int) ([]RawItem, error)
}

// HTTPClient queries a search endpoint that answers GET requests carrying
// query and limit parameters with a JSON array of raw items.
type HTTPClient struct {
	endpoint string
	client   *http.Client
}

// NewHTTPClient builds a client for the given endpoint. A non-positive timeout
// falls back to 30 seconds.
func NewHTTPClient(endpoint string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		endpoint: strings.TrimSpace(endpoint),
		client:   &http.Client{Timeout: timeout},
	}
}

// Search implements Client.
func (c *HTTPClient) Search(ctx context.Context, query string, limit int) ([]RawItem, error) {
	target, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: parse endpoint: %v", ErrRemote, err)
	}
	values := target.Query()
	values.Set("query", query)
	values.Set("limit", strconv.Itoa(limit))
	target.RawQuery = values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrRemote, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemote, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		detail := strings.TrimSpace(string(body))
		if detail == "" {
			detail = resp.Status
		}
		return nil, fmt.Errorf("%w: search returned %d: %s", ErrRemote, resp.StatusCode, detail)
	}

	var items []RawItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrRemote, err)
	}
	return items, nil
}

var _ Client = (*HTTPClient)(nil)

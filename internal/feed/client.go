// Package feed fetches raw article payloads from the upstream JSON feed.
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

	"article-mapper/internal/config"

	"golang.org/x/time/rate"
)

// TransportError reports a failed fetch: the request could not be made,
// the upstream answered with a non-2xx status, or the body could not be read.
type TransportError struct {
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("feed: GET %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("feed: GET %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Client is a minimal client for the article list, detail and media endpoints.
type Client struct {
	listURL   string
	detailURL string
	mediaURL  string
	client    *http.Client
	limiter   *rate.Limiter
}

// NewClient creates a client from configuration. An unparsable timeout falls
// back to 10s; a zero request rate disables pacing.
func NewClient(cfg config.SourceConfig) *Client {
	timeout, err := cfg.TimeoutDuration()
	if err != nil || timeout <= 0 {
		timeout = 10 * time.Second
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &Client{
		listURL:   strings.TrimSpace(cfg.ListURL),
		detailURL: strings.TrimSpace(cfg.DetailURL),
		mediaURL:  strings.TrimSpace(cfg.MediaURL),
		client:    &http.Client{Timeout: timeout},
		limiter:   rate.NewLimiter(limit, burst),
	}
}

// DetailURL is the detail endpoint of the article id; it doubles as the article's canonical URL.
func (c *Client) DetailURL(id string) string {
	return expand(c.detailURL, id)
}

// MediaURL is the media endpoint of the article id.
func (c *Client) MediaURL(id string) string {
	return expand(c.mediaURL, id)
}

// List fetches the article list payload.
func (c *Client) List(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, c.listURL)
}

// Detail fetches one article's detail payload.
func (c *Client) Detail(ctx context.Context, id string) (json.RawMessage, error) {
	return c.get(ctx, c.DetailURL(id))
}

// Media fetches one article's media payload.
func (c *Client) Media(ctx context.Context, id string) (json.RawMessage, error) {
	return c.get(ctx, c.MediaURL(id))
}

func (c *Client) get(ctx context.Context, endpoint string) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &TransportError{URL: endpoint, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &TransportError{URL: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: endpoint, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &TransportError{URL: endpoint, StatusCode: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: endpoint, Err: err}
	}
	return body, nil
}

func expand(tmpl, id string) string {
	return strings.ReplaceAll(tmpl, "{id}", url.PathEscape(id))
}

// Package firecrawl is an HTTP client for the hosted crawl/map/search service.
package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/llmscore/llmscore/internal/model"
)

const (
	defaultTimeout = 30 * time.Second

	// MapLimit caps the number of URLs returned per map call.
	MapLimit = 100

	// SearchLimit caps the number of results returned per search call.
	SearchLimit = 20
)

// ErrNoLinks indicates the map response carried no link array.
var ErrNoLinks = errors.New("map response has no links")

// Mapper enumerates a site's URLs.
type Mapper interface {
	Map(ctx context.Context, url string) ([]model.Link, error)
}

// Searcher runs one web search query.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
}

// Scraper fetches a page's main content as markdown.
type Scraper interface {
	Scrape(ctx context.Context, url string) (string, error)
}

// SearchResult is one entry of a search response.
type SearchResult struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// Client talks to the crawl/search API over HTTP.
type Client struct {
	baseURL string
	apiKey  string
	hc      *http.Client
}

// NewClient creates a client for the given API base URL.
// A zero timeout falls back to 30s; every call is a single bounded round-trip.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		hc: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Map enumerates URLs under the target, sitemap included, capped at MapLimit.
// A response without a link array is a hard failure, not an empty result.
func (c *Client) Map(ctx context.Context, url string) ([]model.Link, error) {
	req := map[string]any{
		"url":     url,
		"limit":   MapLimit,
		"sitemap": "include",
	}

	var resp struct {
		Links []model.Link `json:"links"`
	}
	raw, err := c.post(ctx, "/v2/map", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", url, err)
	}

	// Distinguish "no links key" from "empty links array"
	var probe struct {
		Links json.RawMessage `json:"links"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil || probe.Links == nil {
		return nil, ErrNoLinks
	}

	return resp.Links, nil
}

// Search runs one query and returns up to limit web results. A response
// without a web results array yields a nil slice so callers can tell it
// apart from an empty result set.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = SearchLimit
	}
	req := map[string]any{
		"query": query,
		"limit": limit,
	}

	var resp struct {
		Web []SearchResult `json:"web"`
	}
	if _, err := c.post(ctx, "/v2/search", req, &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	return resp.Web, nil
}

// Scrape fetches the target's main content as markdown.
func (c *Client) Scrape(ctx context.Context, url string) (string, error) {
	req := map[string]any{
		"url":             url,
		"formats":         []string{"markdown"},
		"onlyMainContent": true,
	}

	var resp struct {
		Markdown string `json:"markdown"`
		Data     struct {
			Markdown string `json:"markdown"`
		} `json:"data"`
	}
	if _, err := c.post(ctx, "/v2/scrape", req, &resp); err != nil {
		return "", fmt.Errorf("scrape %s: %w", url, err)
	}

	if resp.Data.Markdown != "" {
		return resp.Data.Markdown, nil
	}
	return resp.Markdown, nil
}

// post issues one JSON round-trip and returns the raw body for callers that
// need to inspect the response shape.
func (c *Client) post(ctx context.Context, path string, body any, out any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
	}

	return raw, nil
}

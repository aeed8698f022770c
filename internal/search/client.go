// Package search is the retrieval collaborator: it turns a user query into
// a list of source documents for the analyzer. The core never performs
// retrieval itself; everything here runs before the analysis call and can
// be swapped out entirely.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dstarikov/shipshape/internal/model"
)

// Client queries a SearxNG-compatible JSON search endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	userAgent  string
	maxResults int
	cache      Cache
	cacheTTL   time.Duration
}

// NewClient creates a search client. cache may be nil to disable caching.
func NewClient(cfg model.SearchConfig, cache Cache, cacheTTL time.Duration) *Client {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 5
	}
	return &Client{
		endpoint: cfg.Endpoint,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		userAgent:  cfg.UserAgent,
		maxResults: maxResults,
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

// searxResult is one hit in the search engine's JSON response.
type searxResult struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type searxResponse struct {
	Results []searxResult `json:"results"`
}

// Search retrieves sources for the query, newest cache entry first.
func (c *Client) Search(ctx context.Context, query string) ([]model.Source, error) {
	cacheKey := CacheKey("search:" + query)
	if c.cache != nil {
		if data, found := c.cache.Get(cacheKey); found {
			var sources []model.Source
			if err := json.Unmarshal(data, &sources); err == nil {
				return sources, nil
			}
		}
	}

	reqURL := fmt.Sprintf("%s?q=%s&format=json", c.endpoint, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4_000_000))
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}

	var parsed searxResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}

	sources := make([]model.Source, 0, c.maxResults)
	for _, r := range parsed.Results {
		if r.URL == "" {
			continue
		}
		sources = append(sources, model.Source{
			URL:     r.URL,
			Title:   r.Title,
			Snippet: r.Content,
		})
		if len(sources) == c.maxResults {
			break
		}
	}

	if c.cache != nil {
		if data, err := json.Marshal(sources); err == nil {
			c.cache.Set(cacheKey, data, c.cacheTTL)
		}
	}

	return sources, nil
}

package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html"

	"github.com/dstarikov/shipshape/internal/model"
)

// PageFetcher upgrades search-result snippets to full visible page text.
// Fetches are robots-checked, per-domain paced, bounded in size, cached,
// and fanned out under a fixed concurrency cap.
type PageFetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	workers    int
	robots     *RobotsChecker
	limiter    *Limiter
	cache      Cache
	cacheTTL   time.Duration
}

// NewPageFetcher creates a page fetcher. cache may be nil.
func NewPageFetcher(cfg model.SearchConfig, cache Cache, cacheTTL time.Duration) *PageFetcher {
	workers := cfg.FetchWorkers
	if workers <= 0 {
		workers = 4
	}
	return &PageFetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		workers:   workers,
		robots:    NewRobotsChecker(cfg.UserAgent, cfg.Timeout),
		limiter:   NewLimiter(1, 2),
		cache:     cache,
		cacheTTL:  cacheTTL,
	}
}

// Enrich fetches each source's page and fills in Content with its visible
// text. Failures are silent per source: the snippet is kept and analysis
// proceeds on whatever text is available.
func (f *PageFetcher) Enrich(ctx context.Context, sources []model.Source) []model.Source {
	enriched := make([]model.Source, len(sources))
	copy(enriched, sources)

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, f.workers)

	for i := range enriched {
		if enriched[i].URL == "" {
			continue
		}

		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			if text, err := f.fetchText(ctx, enriched[idx].URL); err == nil && text != "" {
				enriched[idx].Content = text
			}
		}(i)
	}

	wg.Wait()
	return enriched
}

// fetchText fetches one page and extracts its visible text.
func (f *PageFetcher) fetchText(ctx context.Context, rawURL string) (string, error) {
	cacheKey := CacheKey("page:" + rawURL)
	if f.cache != nil {
		if data, found := f.cache.Get(cacheKey); found {
			return string(data), nil
		}
	}

	if !f.robots.CanFetch(ctx, rawURL) {
		return "", fmt.Errorf("disallowed by robots.txt: %s", rawURL)
	}
	if err := f.limiter.Wait(ctx, rawURL); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read page body: %w", err)
	}

	text := ExtractVisibleText(string(body))
	if f.cache != nil && text != "" {
		f.cache.Set(cacheKey, []byte(text), f.cacheTTL)
	}
	return text, nil
}

// ExtractVisibleText extracts text nodes from HTML, skipping scripts,
// styles, and other invisible elements.
func ExtractVisibleText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return strings.TrimSpace(buf.String())
}

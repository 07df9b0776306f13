// Package solvedac is a client for the solved.ac v3 API, the upstream
// judge-rating service all analytics are derived from.
package solvedac

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Client is the upstream contract the analytics engine consumes.
// Profile, tag stats, and level stats are mutually independent reads
// and may be fetched concurrently.
type Client interface {
	// User fetches the profile snapshot for a handle.
	User(ctx context.Context, handle string) (*User, error)

	// TagStats fetches per-tag solve statistics for a handle.
	TagStats(ctx context.Context, handle string) ([]TagStat, error)

	// LevelStats fetches per-difficulty solve statistics for a handle.
	LevelStats(ctx context.Context, handle string) ([]LevelStat, error)
}

const defaultBaseURL = "https://solved.ac/api/v3"

// Config holds HTTP client configuration.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// DefaultConfig returns a Config with sensible defaults, honoring the
// SOLVEDAC_API_URL environment variable the way the hosted deployment does.
func DefaultConfig() Config {
	cfg := Config{
		BaseURL:   defaultBaseURL,
		Timeout:   10 * time.Second,
		UserAgent: "bojcoach/1.0",
	}
	if u := os.Getenv("SOLVEDAC_API_URL"); u != "" {
		cfg.BaseURL = u
	}
	return cfg
}

// HTTPClient is the real Client backed by net/http.
type HTTPClient struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// NewHTTPClient creates an HTTPClient from config.
func NewHTTPClient(cfg Config) *HTTPClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "bojcoach/1.0"
	}
	return &HTTPClient{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *HTTPClient) User(ctx context.Context, handle string) (*User, error) {
	var u User
	if err := c.getJSON(ctx, "/user/show", handle, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) TagStats(ctx context.Context, handle string) ([]TagStat, error) {
	var page tagStatPage
	if err := c.getJSON(ctx, "/user/problem_tag_stats", handle, &page); err != nil {
		return nil, err
	}
	stats := make([]TagStat, 0, len(page.Items))
	for _, it := range page.Items {
		stats = append(stats, TagStat{
			Tag:    it.Tag.Key,
			Solved: it.Solved,
			Tried:  it.Tried,
		})
	}
	return stats, nil
}

func (c *HTTPClient) LevelStats(ctx context.Context, handle string) ([]LevelStat, error) {
	var items []levelStatItem
	if err := c.getJSON(ctx, "/user/problem_stats", handle, &items); err != nil {
		return nil, err
	}
	stats := make([]LevelStat, 0, len(items))
	for _, it := range items {
		stats = append(stats, LevelStat{
			Level:  it.Level,
			Solved: it.Solved,
			Tried:  it.Tried,
		})
	}
	return stats, nil
}

// getJSON issues a GET for path?handle=... and decodes the body into out,
// mapping HTTP failures onto the client error taxonomy.
func (c *HTTPClient) getJSON(ctx context.Context, path, handle string, out any) error {
	endpoint := c.baseURL + path + "?handle=" + url.QueryEscape(handle)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return &ErrUnavailable{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &ErrNotFound{Handle: handle}
	case resp.StatusCode == http.StatusTooManyRequests:
		return &ErrRateLimited{
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        fmt.Errorf("GET %s: status 429", path),
		}
	case resp.StatusCode >= 500:
		return &ErrUnavailable{Err: fmt.Errorf("GET %s: status %d", path, resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ErrUnavailable{Err: fmt.Errorf("read body: %w", err)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// parseRetryAfter interprets a Retry-After header in seconds.
// Missing or malformed values fall back to 60s, matching the
// upstream's documented default window.
func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 60 * time.Second
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 60 * time.Second
	}
	return time.Duration(secs) * time.Second
}

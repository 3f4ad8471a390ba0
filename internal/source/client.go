package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const maxBodyBytes = 10 << 20 // 10 MB cap on fetched documents

// Client is a polite HTTP client shared by all adapters. It sets a stable
// User-Agent and rate-limits requests per host so a batch touching many
// sources on one portal does not hammer it.
type Client struct {
	httpClient *http.Client
	userAgent  string
	rps        rate.Limit

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewClient creates a client with the given timeout, User-Agent and
// per-host requests-per-second limit.
func NewClient(timeout time.Duration, userAgent string, rps int) *Client {
	if rps <= 0 {
		rps = 1
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		rps:        rate.Limit(rps),
		limiters:   make(map[string]*rate.Limiter),
	}
}

// Get fetches the URL and returns the response body. Non-2xx statuses are
// errors.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	if err := c.wait(ctx, rawURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", rawURL, err)
	}
	return body, nil
}

// wait blocks until the host's rate limiter allows the next request.
func (c *Client) wait(ctx context.Context, rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse url %s: %w", rawURL, err)
	}

	c.mu.Lock()
	limiter, ok := c.limiters[parsed.Host]
	if !ok {
		limiter = rate.NewLimiter(c.rps, 1)
		c.limiters[parsed.Host] = limiter
	}
	c.mu.Unlock()

	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait for %s: %w", parsed.Host, err)
	}
	return nil
}

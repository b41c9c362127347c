// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch issues HTTP GETs with bounded retries and polite pacing.
package fetch

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/pdiddy/pubharvest/pkg/types"
)

const defaultMaxRetries = 3

// Client wraps an http.Client with the retry policy used for every crawl
// request: up to MaxRetries attempts, randomized backoff on 429/503 and on
// transport errors, immediate return on success and on definitive client
// errors (401/403/404).
type Client struct {
	HTTP       *http.Client
	UserAgent  string
	MaxRetries int

	// Sleep is called for every backoff and polite delay. Tests replace it
	// to avoid real sleeps.
	Sleep func(time.Duration)
}

// New builds a Client from shared HTTP settings.
func New(cfg types.HTTPConfig) *Client {
	return &Client{
		HTTP:       &http.Client{Timeout: cfg.Timeout},
		UserAgent:  cfg.UserAgent,
		MaxRetries: defaultMaxRetries,
		Sleep:      time.Sleep,
	}
}

// Get fetches url. It returns the response on 2xx and also on 401/403/404,
// which are definitive rather than transient, so the caller inspects the status.
// On 429/503 it sleeps a randomized 1.5–3 s and retries; on transport errors
// it sleeps with jitter that grows per attempt. Exhausting retries returns an
// error, which callers must treat as "skip this URL", never as a run failure.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	retries := c.MaxRetries
	if retries <= 0 {
		retries = defaultMaxRetries
	}

	var lastErr error
	for attempt := 0; attempt < retries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request for %s: %w", url, err)
		}
		req.Header.Set("User-Agent", c.UserAgent)

		resp, err := c.HTTP.Do(req)
		if err != nil {
			lastErr = err
			c.sleepBetween(800*time.Millisecond, 1800*time.Millisecond+time.Duration(attempt)*time.Second)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable:
			drain(resp)
			lastErr = fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
			c.sleepBetween(1500*time.Millisecond, 3*time.Second)
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return resp, nil
		case resp.StatusCode == http.StatusUnauthorized,
			resp.StatusCode == http.StatusForbidden,
			resp.StatusCode == http.StatusNotFound:
			// Definitive client errors: retrying cannot help.
			return resp, nil
		default:
			drain(resp)
			lastErr = fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
		}
	}
	return nil, fmt.Errorf("fetching %s: retries exhausted: %w", url, lastErr)
}

// PoliteDelay sleeps a randomized 350–900 ms. The orchestrator calls it
// between successive page fetches to avoid hammering the origin.
func (c *Client) PoliteDelay() {
	c.sleepBetween(350*time.Millisecond, 900*time.Millisecond)
}

func (c *Client) sleepBetween(min, max time.Duration) {
	d := min + time.Duration(rand.Int63n(int64(max-min)+1))
	sleep := c.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	sleep(d)
}

// drain empties and closes a response body so the connection can be reused
// before a retry.
func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

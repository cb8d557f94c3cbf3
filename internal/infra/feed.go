package infra

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxFeedBytes = 64 << 20 // refuse to slurp a runaway feed response

// FeedClient fetches the supplier's CSV feed over HTTP, guarded by the
// circuit breaker.
type FeedClient struct {
	baseURL string
	http    *http.Client
	cb      *CircuitBreaker
}

func NewFeedClient(baseURL string, cb *CircuitBreaker) *FeedClient {
	return &FeedClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 2 * time.Minute},
		cb:      cb,
	}
}

// Fetch downloads the feed at url (the configured default when url is empty)
// and returns the raw body.
func (c *FeedClient) Fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		url = c.baseURL
	}
	if url == "" {
		return nil, fmt.Errorf("feed: no feed URL configured")
	}

	var body []byte
	err := c.cb.Execute(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("feed: unexpected status %d", resp.StatusCode)
		}
		body, err = io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
		return err
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// BreakerState exposes the breaker state for the health endpoint.
func (c *FeedClient) BreakerState() CBState { return c.cb.State() }

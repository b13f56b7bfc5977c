// Package fetcher retrieves raw markup for single page URLs. It has no
// pagination awareness: the crawl loop decides which URL comes next.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxResponseBodyBytes limits the size of fetched page responses.
const maxResponseBodyBytes = 10 * 1024 * 1024 // 10 MB

// ErrTimeout indicates the request exceeded the configured timeout.
var ErrTimeout = errors.New("fetch timed out")

// HTTPError is returned for non-success response statuses.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

// Fetcher performs single-page HTTP fetches with an identifying
// User-Agent and an enforced timeout. There are no retries: failure
// propagates to the caller.
type Fetcher struct {
	client    *http.Client
	userAgent string
	timeout   time.Duration
}

// New creates a Fetcher with the given timeout and User-Agent.
func New(timeout time.Duration, userAgent string) *Fetcher {
	return &Fetcher{
		client:    &http.Client{},
		userAgent: userAgent,
		timeout:   timeout,
	}
}

// Fetch performs one GET for the given URL and returns the response
// body as text. A timeout yields an error wrapping ErrTimeout; a
// non-2xx status yields an *HTTPError.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("fetch %s: new request: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("fetch %s: %w", pageURL, ErrTimeout)
		}
		return "", fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", &HTTPError{StatusCode: resp.StatusCode, URL: pageURL}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if err != nil {
		return "", fmt.Errorf("fetch %s: read body: %w", pageURL, err)
	}

	return string(body), nil
}

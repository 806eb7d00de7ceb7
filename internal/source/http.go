package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"
)

const (
	maxRetries     = 3
	defaultTimeout = 30 * time.Second
	defaultTTL     = time.Hour
	maxErrBody     = 512
)

// HTTP fetches the taxonomy listing from a URL. It retries transient
// failures with exponential backoff and keeps the last good body for a
// TTL, so a refresh against a flapping origin serves stale text instead
// of failing.
type HTTP struct {
	url        string
	httpClient *http.Client
	ttl        time.Duration

	mu        sync.Mutex
	body      string
	fetchedAt time.Time
}

// HTTPOption configures an HTTP source.
type HTTPOption func(*HTTP)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) HTTPOption {
	return func(h *HTTP) {
		h.httpClient.Timeout = d
	}
}

// WithCacheTTL sets how long a fetched body stays fresh. Within the TTL,
// Fetch returns the cached body without touching the network.
func WithCacheTTL(d time.Duration) HTTPOption {
	return func(h *HTTP) {
		h.ttl = d
	}
}

// NewHTTP creates an HTTP source for the given URL.
func NewHTTP(url string, opts ...HTTPOption) *HTTP {
	h := &HTTP{
		url: url,
		ttl: defaultTTL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Fetch returns the taxonomy text, preferring the fresh cache. On fetch
// failure a stale cached body is returned rather than an error.
func (h *HTTP) Fetch(ctx context.Context) (string, error) {
	h.mu.Lock()
	if h.body != "" && time.Since(h.fetchedAt) < h.ttl {
		body := h.body
		h.mu.Unlock()
		return body, nil
	}
	h.mu.Unlock()

	body, err := h.get(ctx)
	if err != nil {
		h.mu.Lock()
		stale := h.body
		h.mu.Unlock()
		if stale != "" {
			slog.Warn("taxonomy fetch failed, serving stale copy", "url", h.url, "error", err)
			return stale, nil
		}
		return "", fmt.Errorf("source: %w", err)
	}

	h.mu.Lock()
	h.body = body
	h.fetchedAt = time.Now()
	h.mu.Unlock()
	return body, nil
}

// get performs the GET with retries on 429 (honoring Retry-After) and 5xx
// (exponential backoff: 1s, 2s, 4s).
func (h *HTTP) get(ctx context.Context) (string, error) {
	var lastErr error
	var retryAfter string

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			wait := backoffDelay(attempt, retryAfter)
			t := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				t.Stop()
				return "", ctx.Err()
			case <-t.C:
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
		if err != nil {
			return "", err
		}

		resp, err := h.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return string(body), nil
		}

		bodyStr := string(body)
		if len(bodyStr) > maxErrBody {
			bodyStr = bodyStr[:maxErrBody]
		}
		lastErr = fmt.Errorf("HTTP %d: %s", resp.StatusCode, bodyStr)

		retryAfter = ""
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter = resp.Header.Get("Retry-After")
			continue
		}
		if resp.StatusCode >= 500 {
			continue
		}
		return "", lastErr
	}

	return "", lastErr
}

// backoffDelay returns the wait duration before a retry attempt.
func backoffDelay(attempt int, retryAfter string) time.Duration {
	if retryAfter != "" {
		if secs, err := strconv.Atoi(retryAfter); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return time.Duration(1<<(attempt-1)) * time.Second
}

package tcgdex

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultRate is the proactive throttle rate in requests per second.
	// TCGdex publishes no quota; this keeps bulk hydrations polite.
	DefaultRate = 5.0

	// DefaultRetryAfter is the pause applied to a 429 without a Retry-After header.
	DefaultRetryAfter = time.Second

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"
)

// RateLimiter throttles requests with a token bucket and pauses
// after the API reports a rate limit.
type RateLimiter struct {
	mu          sync.Mutex
	bucket      *rate.Limiter
	pausedUntil time.Time
}

// NewRateLimiter creates a rate limiter allowing rps requests per second.
// A non-positive rps disables proactive throttling.
func NewRateLimiter(rps float64) *RateLimiter {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &RateLimiter{
		bucket: rate.NewLimiter(limit, 1),
	}
}

// Wait blocks until it's safe to make a request.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	until := r.pausedUntil
	r.mu.Unlock()

	if d := time.Until(until); d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}

// CheckRateLimit returns a RateLimitError for a 429 response and pauses
// subsequent requests until the advertised retry time.
func (r *RateLimiter) CheckRateLimit(resp *http.Response) error {
	if resp == nil || resp.StatusCode != http.StatusTooManyRequests {
		return nil
	}

	wait := DefaultRetryAfter
	if retryAfter := resp.Header.Get(HeaderRetryAfter); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds >= 0 {
			wait = time.Duration(seconds) * time.Second
		}
	}

	retryAt := time.Now().Add(wait)
	r.mu.Lock()
	if retryAt.After(r.pausedUntil) {
		r.pausedUntil = retryAt
	}
	r.mu.Unlock()

	return &RateLimitError{RetryAt: retryAt}
}

// PausedUntil returns when the current rate limit pause ends.
func (r *RateLimiter) PausedUntil() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pausedUntil
}

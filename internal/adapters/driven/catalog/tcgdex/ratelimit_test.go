package tcgdex

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergioXp/holostack/internal/core/domain"
)

func TestRateLimiter_CheckRateLimit_NotLimited(t *testing.T) {
	r := NewRateLimiter(0)

	assert.NoError(t, r.CheckRateLimit(nil))
	assert.NoError(t, r.CheckRateLimit(&http.Response{StatusCode: http.StatusOK}))
	assert.True(t, r.PausedUntil().IsZero())
}

func TestRateLimiter_CheckRateLimit_RetryAfter(t *testing.T) {
	r := NewRateLimiter(0)
	resp := &http.Response{StatusCode: http.StatusTooManyRequests, Header: http.Header{}}
	resp.Header.Set(HeaderRetryAfter, "30")

	err := r.CheckRateLimit(resp)
	require.Error(t, err)
	assert.True(t, IsRateLimited(err))
	assert.ErrorIs(t, err, domain.ErrRateLimited)

	assert.WithinDuration(t, time.Now().Add(30*time.Second), r.PausedUntil(), 2*time.Second)
}

func TestRateLimiter_CheckRateLimit_DefaultPause(t *testing.T) {
	r := NewRateLimiter(0)

	err := r.CheckRateLimit(&http.Response{StatusCode: http.StatusTooManyRequests, Header: http.Header{}})
	require.Error(t, err)
	assert.WithinDuration(t, time.Now().Add(DefaultRetryAfter), r.PausedUntil(), time.Second)
}

func TestRateLimiter_Wait_RespectsPause(t *testing.T) {
	r := NewRateLimiter(0)
	resp := &http.Response{StatusCode: http.StatusTooManyRequests, Header: http.Header{}}
	resp.Header.Set(HeaderRetryAfter, "60")
	_ = r.CheckRateLimit(resp)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := r.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRateLimiter_Wait_Unlimited(t *testing.T) {
	r := NewRateLimiter(0)
	for i := 0; i < 100; i++ {
		require.NoError(t, r.Wait(context.Background()))
	}
}

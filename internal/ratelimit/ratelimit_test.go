package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitEnforcesDelay(t *testing.T) {
	limiter := NewFixedRateLimiter(50 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, limiter.Wait(ctx))

	start := time.Now()
	require.NoError(t, limiter.Wait(ctx))
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestWaitHonorsCancellation(t *testing.T) {
	limiter := NewFixedRateLimiter(time.Hour)
	require.NoError(t, limiter.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

package ratelimit

import (
	"context"
	"sync"
	"time"
)

type RateLimiter interface {
	Wait(ctx context.Context) error
	SetDelay(delay time.Duration)
}

// FixedRateLimiter enforces a fixed delay between consecutive actions. Wait
// honors context cancellation so shutdown is not held up by a pending delay.
type FixedRateLimiter struct {
	delay      time.Duration
	lastAction time.Time
	mu         sync.Mutex
}

func NewFixedRateLimiter(delay time.Duration) *FixedRateLimiter {
	return &FixedRateLimiter{delay: delay}
}

func (r *FixedRateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	elapsed := time.Since(r.lastAction)
	if elapsed < r.delay {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.delay - elapsed):
		}
	}

	r.lastAction = time.Now()
	return nil
}

func (r *FixedRateLimiter) SetDelay(delay time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.delay = delay
}

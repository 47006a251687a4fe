// Package ratelimit spaces outbound requests to the arXiv API.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultInterval is the minimum spacing between requests per the arXiv
// API usage policy (no more than one request every three seconds).
const DefaultInterval = 3 * time.Second

// Limiter enforces a minimum wall-clock interval between calls. A fresh
// limiter admits the first call immediately; every later call waits until
// at least the interval has elapsed since the previous one. Safe for
// concurrent use: callers against the same limiter serialize through it.
type Limiter struct {
	interval time.Duration
	limiter  *rate.Limiter
}

// New creates a limiter with the given minimum interval. Non-positive
// intervals fall back to DefaultInterval.
func New(interval time.Duration) *Limiter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Limiter{
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Interval returns the configured minimum spacing.
func (l *Limiter) Interval() time.Duration {
	return l.interval
}

// Wait blocks until the next request is allowed or the context is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

package source

import (
	"context"
	"sync"
	"time"

	"github.com/anonymous-127001/travel-agent/internal/flightsearch/entity"
)

type rateLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) Wait(ctx context.Context) error {
	if r.interval <= 0 {
		return nil
	}
	for {
		now := time.Now()
		r.mu.Lock()
		if r.last.IsZero() || now.Sub(r.last) >= r.interval {
			r.last = now
			r.mu.Unlock()
			return nil
		}
		wait := r.interval - now.Sub(r.last)
		r.mu.Unlock()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

type rateLimitedSource struct {
	source  Source
	limiter *rateLimiter
}

// WithRateLimit spaces out fetches against one upstream by at least interval.
func WithRateLimit(s Source, interval time.Duration) Source {
	return &rateLimitedSource{
		source:  s,
		limiter: newRateLimiter(interval),
	}
}

func (r *rateLimitedSource) Kind() entity.SourceKind {
	return r.source.Kind()
}

func (r *rateLimitedSource) Name() string {
	return r.source.Name()
}

func (r *rateLimitedSource) Fetch(ctx context.Context, query entity.Query) (Result, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return Result{}, err
	}
	return r.source.Fetch(ctx, query)
}

package source

import (
	"context"
	"errors"
	"time"

	"github.com/anonymous-127001/travel-agent/internal/flightsearch/entity"
)

type retrySource struct {
	source     Source
	maxRetries int
	backoff    time.Duration
}

// WithRetry retries fetches that fail with ErrTemporary, doubling the backoff
// between attempts. Retry is an adapter-side policy: the aggregator above
// only ever sees the final outcome.
func WithRetry(s Source, maxRetries int) Source {
	return &retrySource{
		source:     s,
		maxRetries: maxRetries,
		backoff:    80 * time.Millisecond,
	}
}

func (r *retrySource) Kind() entity.SourceKind {
	return r.source.Kind()
}

func (r *retrySource) Name() string {
	return r.source.Name()
}

func (r *retrySource) Fetch(ctx context.Context, query entity.Query) (Result, error) {
	backoff := r.backoff
	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		result, err := r.source.Fetch(ctx, query)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, ErrTemporary) {
			return Result{}, err
		}
		lastErr = err
		if attempt == r.maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-time.After(backoff):
			backoff *= 2
		}
	}
	return Result{}, lastErr
}

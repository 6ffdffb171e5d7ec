package remote

import (
	"context"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/felixgeelhaar/fortify/retry"

	"github.com/wordwings/wordwings/internal/domain"
)

// ResilientContentClient wraps a content client with retry from fortify.
// Only 5xx responses are retried: connectivity failures are the cache's
// problem (it degrades to stale data), and 4xx responses won't change.
type ResilientContentClient struct {
	inner   *ContentClient
	retrier retry.Retry[[]domain.Content]
	logger  *slog.Logger
}

// NewResilientContentClient wraps a content client with exponential backoff.
func NewResilientContentClient(inner *ContentClient, logger *slog.Logger) *ResilientContentClient {
	return &ResilientContentClient{
		inner:  inner,
		logger: logger,
		retrier: retry.New[[]domain.Content](retry.Config{
			MaxAttempts:   3,
			InitialDelay:  500 * time.Millisecond,
			MaxDelay:      5 * time.Second,
			Multiplier:    2.0,
			BackoffPolicy: retry.BackoffExponential,
			Jitter:        true,
			IsRetryable: func(err error) bool {
				k, ok := KindOf(err)
				return ok && k == KindServer
			},
		}),
	}
}

// ListContent fetches the catalog, retrying transient server errors.
func (r *ResilientContentClient) ListContent(ctx context.Context, filters domain.ContentFilters) ([]domain.Content, error) {
	return r.retrier.Do(ctx, func(ctx context.Context) ([]domain.Content, error) {
		return r.inner.ListContent(ctx, filters)
	})
}

// BreakerProgressClient wraps a progress client with a circuit breaker so
// that a drain against a dead backend fails fast instead of burning a full
// timeout per queued entry. An open breaker is reported as a connectivity
// failure, which stops the drain and keeps the queue intact.
type BreakerProgressClient struct {
	inner   *ProgressClient
	breaker circuitbreaker.CircuitBreaker[*domain.ProgressRecord]
	logger  *slog.Logger
}

// NewBreakerProgressClient wraps a progress client with a circuit breaker.
func NewBreakerProgressClient(inner *ProgressClient, logger *slog.Logger) *BreakerProgressClient {
	b := &BreakerProgressClient{inner: inner, logger: logger}
	b.breaker = circuitbreaker.New[*domain.ProgressRecord](circuitbreaker.Config{
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     20 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(from, to circuitbreaker.State) {
			if b.logger != nil {
				b.logger.Warn("progress circuit breaker state change",
					"from", from.String(),
					"to", to.String())
			}
		},
	})
	return b
}

func (b *BreakerProgressClient) execute(ctx context.Context, op string, fn func(context.Context) (*domain.ProgressRecord, error)) (*domain.ProgressRecord, error) {
	rec, err := b.breaker.Execute(ctx, fn)
	if err == nil {
		return rec, nil
	}
	if _, classified := KindOf(err); !classified {
		// Breaker-open errors never reached the network. Treat them like
		// an unreachable backend so queued entries survive.
		return nil, NewError(KindConnectivity, op, err)
	}
	return nil, err
}

func (b *BreakerProgressClient) StartContent(ctx context.Context, learnerID, contentID string) (*domain.ProgressRecord, error) {
	return b.execute(ctx, "progress.start", func(ctx context.Context) (*domain.ProgressRecord, error) {
		return b.inner.StartContent(ctx, learnerID, contentID)
	})
}

func (b *BreakerProgressClient) RecordStep(ctx context.Context, learnerID, contentID string, params domain.StepParams) (*domain.ProgressRecord, error) {
	return b.execute(ctx, "progress.step", func(ctx context.Context) (*domain.ProgressRecord, error) {
		return b.inner.RecordStep(ctx, learnerID, contentID, params)
	})
}

func (b *BreakerProgressClient) CompleteContent(ctx context.Context, learnerID, contentID string, params domain.CompleteParams) (*domain.ProgressRecord, error) {
	return b.execute(ctx, "progress.complete", func(ctx context.Context) (*domain.ProgressRecord, error) {
		return b.inner.CompleteContent(ctx, learnerID, contentID, params)
	})
}

// GetProgress bypasses the breaker: a 404 here means "no progress yet" and
// must not count as a backend failure.
func (b *BreakerProgressClient) GetProgress(ctx context.Context, learnerID, contentID string) (*domain.ProgressRecord, error) {
	return b.inner.GetProgress(ctx, learnerID, contentID)
}

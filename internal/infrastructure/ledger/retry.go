package ledger

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/Brad-Behrens/FlightSurety-DApp/internal/application"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/config"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/domain"
)

// RetryClient retries the bootstrap calls. RequestEvents and SubmitResponse
// pass straight through: the listener reconnects on its own and a rejected
// response is never retried within the same record.
type RetryClient struct {
	application.Ledger
	baseDelay  time.Duration
	maxRetries int
}

func NewRetryClient(inner application.Ledger, cfg config.RetryConfig) *RetryClient {
	maxRetries := cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &RetryClient{
		Ledger:     inner,
		baseDelay:  cfg.BaseDelay,
		maxRetries: maxRetries,
	}
}

func (r *RetryClient) Ping(ctx context.Context) error {
	_, err := retry(r, ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, r.Ledger.Ping(ctx)
	})
	return err
}

func (r *RetryClient) Accounts(ctx context.Context) ([]domain.Address, error) {
	return retry(r, ctx, r.Ledger.Accounts)
}

// Register with retry logic. A retry after a lost reply surfaces as
// already_registered, which the registry adopts.
func (r *RetryClient) Register(ctx context.Context, addr domain.Address, stake string) error {
	_, err := retry(r, ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, r.Ledger.Register(ctx, addr, stake)
	})
	return err
}

func (r *RetryClient) AssignedIndexes(ctx context.Context, addr domain.Address) (domain.IndexSet, error) {
	return retry(r, ctx, func(ctx context.Context) (domain.IndexSet, error) {
		return r.Ledger.AssignedIndexes(ctx, addr)
	})
}

// Generic retry helper
func retry[T any](r *RetryClient, ctx context.Context, operation func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		resp, err := operation(ctx)
		if err == nil {
			return resp, nil
		}

		lastErr = err

		if !application.IsRetryable(err) {
			return zero, err
		}

		if attempt < r.maxRetries-1 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(r.backoff(attempt)):
			}
		}
	}

	return zero, fmt.Errorf("maximum retries exceeded: %w", lastErr)
}

// Backoff calculation with exponential delay and jitter
func (r *RetryClient) backoff(attempt int) time.Duration {
	base := r.baseDelay * time.Duration(1<<attempt)
	if base <= 0 {
		return 0
	}

	jitter := time.Duration(rand.Int63n(int64(base)/2 + 1))

	return base + jitter
}

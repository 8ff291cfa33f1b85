package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Brad-Behrens/FlightSurety-DApp/internal/application"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/domain"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/metrics"
)

// IdentityMatcher resolves which identities answer a request index.
type IdentityMatcher interface {
	Matching(index uint8) []domain.Identity
}

type ResponseDispatcher struct {
	matcher       IdentityMatcher
	source        StatusCodeSource
	ledger        application.Ledger
	journal       application.AttemptJournal
	metrics       *metrics.Metrics
	logger        *slog.Logger
	submitTimeout time.Duration
}

type DispatcherOption func(*ResponseDispatcher)

// WithJournal records every attempt after it completes.
func WithJournal(j application.AttemptJournal) DispatcherOption {
	return func(d *ResponseDispatcher) { d.journal = j }
}

func WithMetrics(m *metrics.Metrics) DispatcherOption {
	return func(d *ResponseDispatcher) { d.metrics = m }
}

// WithSubmitTimeout bounds each ledger submission.
func WithSubmitTimeout(timeout time.Duration) DispatcherOption {
	return func(d *ResponseDispatcher) { d.submitTimeout = timeout }
}

func NewResponseDispatcher(
	matcher IdentityMatcher,
	source StatusCodeSource,
	ledger application.Ledger,
	logger *slog.Logger,
	opts ...DispatcherOption,
) *ResponseDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	d := &ResponseDispatcher{
		matcher: matcher,
		source:  source,
		ledger:  ledger,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Handle submits one response per identity matching record.Index and returns
// the attempts in registration order. A failed submission is logged and kept
// in its attempt; it never affects the other submissions.
func (d *ResponseDispatcher) Handle(ctx context.Context, record domain.RequestRecord) []domain.ResponseAttempt {
	matched := d.matcher.Matching(record.Index)
	if len(matched) == 0 {
		d.metrics.IncrementRecordsDropped()
		d.logger.Info("request dropped",
			"offset", record.Offset,
			"index", record.Index,
			"airline", record.Airline,
			"flight", record.Flight,
			"reason", "no matching oracle",
		)
		return nil
	}

	// Draw before fanning out so a deterministic source maps onto identities
	// in registration order.
	attempts := make([]domain.ResponseAttempt, len(matched))
	for i, id := range matched {
		attempts[i] = domain.NewResponseAttempt(id.Address, record, d.source.Next())
	}

	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func(attempt *domain.ResponseAttempt) {
			defer wg.Done()
			d.submit(ctx, attempt)
		}(&attempts[i])
	}
	wg.Wait()

	d.metrics.IncrementRecordsDispatched()
	return attempts
}

func (d *ResponseDispatcher) submit(ctx context.Context, attempt *domain.ResponseAttempt) {
	submitCtx := ctx
	if d.submitTimeout > 0 {
		var cancel context.CancelFunc
		submitCtx, cancel = context.WithTimeout(ctx, d.submitTimeout)
		defer cancel()
	}

	attempt.SubmittedAt = time.Now()
	err := d.ledger.SubmitResponse(submitCtx, attempt.Identity, attempt.Response())
	attempt.Duration = time.Since(attempt.SubmittedAt)

	switch {
	case err != nil && application.IsRequestClosed(err):
		attempt.Err = domain.NewSubmissionFailedError(attempt.Identity, attempt.Record.Index, err)
		d.logger.Info("response arrived after request closed",
			"oracle", attempt.Identity,
			"offset", attempt.Record.Offset,
			"index", attempt.Record.Index,
			"flight", attempt.Record.Flight,
		)
	case err != nil:
		attempt.Err = domain.NewSubmissionFailedError(attempt.Identity, attempt.Record.Index, err)
		d.logger.Warn("response submission failed",
			"oracle", attempt.Identity,
			"offset", attempt.Record.Offset,
			"index", attempt.Record.Index,
			"flight", attempt.Record.Flight,
			"status_code", attempt.StatusCode,
			"category", application.CategorizeError(err),
			"error", err,
		)
	default:
		d.logger.Debug("response submitted",
			"oracle", attempt.Identity,
			"offset", attempt.Record.Offset,
			"index", attempt.Record.Index,
			"status_code", attempt.StatusCode,
			"duration", attempt.Duration,
		)
	}
	d.metrics.RecordSubmission(err == nil, attempt.Duration)

	if d.journal == nil {
		return
	}
	if jerr := d.journal.Record(context.WithoutCancel(ctx), *attempt); jerr != nil {
		d.logger.Warn("failed to journal response attempt",
			"attempt_id", attempt.ID,
			"error", jerr,
		)
	}
}

package worker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/Brad-Behrens/FlightSurety-DApp/internal/application"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/config"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/domain"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/metrics"
)

// RequestStream names the OracleRequest stream in the checkpoint store.
const RequestStream = "oracle-requests"

var ErrAlreadySubscribed = errors.New("request listener already subscribed")

// RequestListener turns the ledger's OracleRequest events into RequestRecords.
type RequestListener struct {
	ledger      application.Ledger
	checkpoints application.CheckpointStore
	metrics     *metrics.Metrics
	logger      *slog.Logger

	pollLimit     int
	pollInterval  time.Duration
	reconnectBase time.Duration
	reconnectMax  time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewRequestListener(
	ledger application.Ledger,
	checkpoints application.CheckpointStore,
	cfg config.LedgerConfig,
	m *metrics.Metrics,
	logger *slog.Logger,
) *RequestListener {
	if cfg.PollLimit < 1 {
		cfg.PollLimit = 100
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	if cfg.ReconnectBase <= 0 {
		cfg.ReconnectBase = 500 * time.Millisecond
	}
	if cfg.ReconnectMax < cfg.ReconnectBase {
		cfg.ReconnectMax = cfg.ReconnectBase
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RequestListener{
		ledger:        ledger,
		checkpoints:   checkpoints,
		metrics:       m,
		logger:        logger,
		pollLimit:     cfg.PollLimit,
		pollInterval:  cfg.PollInterval,
		reconnectBase: cfg.ReconnectBase,
		reconnectMax:  cfg.ReconnectMax,
	}
}

// Subscribe starts streaming records at or after from. The returned channel
// closes only when ctx is cancelled or Close is called. Failing to reach the
// ledger for the first read is a CONNECTION_FAILED error; later failures are
// retried with backoff, resuming after the last delivered event.
func (l *RequestListener) Subscribe(ctx context.Context, from uint64) (<-chan domain.RequestRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.done != nil {
		return nil, ErrAlreadySubscribed
	}

	page, err := l.ledger.RequestEvents(ctx, from, l.pollLimit)
	if err != nil {
		return nil, domain.NewConnectionFailedError(err)
	}

	listenCtx, cancel := context.WithCancel(ctx)
	out := make(chan domain.RequestRecord)
	l.cancel = cancel
	l.done = make(chan struct{})

	l.logger.Info("subscribed to oracle requests", "from", from)
	go l.run(listenCtx, from, page, out)

	return out, nil
}

// Close stops the stream and waits for the delivery goroutine to exit.
func (l *RequestListener) Close() {
	l.mu.Lock()
	cancel, done := l.cancel, l.done
	l.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (l *RequestListener) run(ctx context.Context, from uint64, page *application.EventPage, out chan<- domain.RequestRecord) {
	defer close(l.done)
	defer close(out)

	next := from
	saved := from
	failures := 0

	defer func() {
		if next != saved {
			l.saveCheckpoint(context.WithoutCancel(ctx), next)
		}
	}()

	for {
		if page != nil {
			if !l.deliver(ctx, page, &next, out) {
				return
			}
			if next != saved {
				l.saveCheckpoint(ctx, next)
				saved = next
			}
			if len(page.Events) == 0 && !sleep(ctx, l.pollInterval) {
				return
			}
		}

		var err error
		page, err = l.ledger.RequestEvents(ctx, next, l.pollLimit)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			failures++
			l.metrics.IncrementReconnects()
			delay := l.backoff(failures)
			l.logger.Warn("oracle request stream interrupted, reconnecting",
				"resume_from", next,
				"attempt", failures,
				"retry_in", delay,
				"category", application.CategorizeError(err),
				"error", err,
			)
			page = nil
			if !sleep(ctx, delay) {
				return
			}
			continue
		}

		if failures > 0 {
			l.logger.Info("oracle request stream resumed", "from", next, "attempts", failures)
			failures = 0
		}
	}
}

// deliver sends the page's decodable events in order and advances next past
// every event it consumed. It reports false once ctx is done.
func (l *RequestListener) deliver(ctx context.Context, page *application.EventPage, next *uint64, out chan<- domain.RequestRecord) bool {
	for _, ev := range page.Events {
		// The gateway may repeat events before the resume point after a reconnect.
		if ev.Offset < *next {
			continue
		}

		record, err := decodeEvent(ev)
		if err != nil {
			l.metrics.IncrementDecodeFailures()
			l.logger.Warn("skipping malformed oracle request",
				"offset", ev.Offset,
				"error", err,
			)
			*next = ev.Offset + 1
			continue
		}

		l.metrics.IncrementRecordsReceived()
		select {
		case out <- record:
			*next = ev.Offset + 1
		case <-ctx.Done():
			return false
		}
	}

	if page.Next > *next {
		*next = page.Next
	}
	return true
}

func (l *RequestListener) saveCheckpoint(ctx context.Context, offset uint64) {
	if l.checkpoints == nil {
		return
	}
	if err := l.checkpoints.Save(ctx, RequestStream, offset); err != nil {
		l.logger.Warn("failed to save stream checkpoint", "offset", offset, "error", err)
	}
}

// backoff is exponential from reconnectBase, capped at reconnectMax, with up
// to 20% jitter.
func (l *RequestListener) backoff(attempt int) time.Duration {
	delay := l.reconnectBase
	for i := 1; i < attempt && delay < l.reconnectMax; i++ {
		delay *= 2
	}
	if delay > l.reconnectMax {
		delay = l.reconnectMax
	}
	return delay + time.Duration(rand.Int63n(int64(delay)/5+1))
}

func decodeEvent(ev application.RawEvent) (domain.RequestRecord, error) {
	var payload domain.RequestEvent
	if err := json.Unmarshal(ev.Payload, &payload); err != nil {
		return domain.RequestRecord{}, domain.NewDecodeFailedError(ev.Offset, err)
	}

	record, err := payload.ToRecord(ev.Offset)
	if err != nil {
		return domain.RequestRecord{}, domain.NewDecodeFailedError(ev.Offset, err)
	}
	return record, nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

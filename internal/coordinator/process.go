// Package coordinator runs the oracle coordinator lifecycle: register the
// identity pool, then answer every OracleRequest the ledger emits until told
// to stop.
package coordinator

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Brad-Behrens/FlightSurety-DApp/internal/application"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/application/services"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/domain"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/worker"
	"golang.org/x/sync/errgroup"
)

// Registry registers the pool once and reports how many oracles it holds.
type Registry interface {
	RegisterAll(ctx context.Context, pool []domain.Address, stake string) services.RegistrationReport
	Count() int
}

// RecordHandler answers one request record.
type RecordHandler interface {
	Handle(ctx context.Context, record domain.RequestRecord) []domain.ResponseAttempt
}

// Subscriber is the request event stream.
type Subscriber interface {
	Subscribe(ctx context.Context, from uint64) (<-chan domain.RequestRecord, error)
	Close()
}

type Options struct {
	Stake string
	// FromOffset is used when the checkpoint store has nothing for the stream.
	FromOffset  uint64
	MaxInFlight int
}

// Status is the liveness view of the process.
type Status struct {
	State                string     `json:"state"`
	Bootstrapped         bool       `json:"bootstrapped"`
	RegisteredCount      int        `json:"registered_count"`
	LastRequestHandledAt *time.Time `json:"last_request_handled_at"`
	InFlight             int64      `json:"in_flight"`
}

type Process struct {
	ledger      application.Ledger
	pool        PoolSource
	registry    Registry
	handler     RecordHandler
	listener    Subscriber
	checkpoints application.CheckpointStore
	opts        Options
	logger      *slog.Logger

	state        atomic.Int32
	bootstrapped atomic.Bool
	inFlight     atomic.Int64
	lastHandled  atomic.Int64
}

func NewProcess(
	ledger application.Ledger,
	pool PoolSource,
	registry Registry,
	handler RecordHandler,
	listener Subscriber,
	checkpoints application.CheckpointStore,
	opts Options,
	logger *slog.Logger,
) *Process {
	if opts.MaxInFlight < 1 {
		opts.MaxInFlight = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Process{
		ledger:      ledger,
		pool:        pool,
		registry:    registry,
		handler:     handler,
		listener:    listener,
		checkpoints: checkpoints,
		opts:        opts,
		logger:      logger,
	}
}

// Run bootstraps the registry and dispatches records until ctx is cancelled.
// It returns nil after a normal shutdown and a CONNECTION_FAILED or
// BOOTSTRAP_EXHAUSTED error when bootstrap cannot complete.
func (p *Process) Run(ctx context.Context) error {
	defer p.setState(StateStopped)
	p.setState(StateBootstrapping)

	if err := p.bootstrap(ctx); err != nil {
		return err
	}

	from := p.startOffset(ctx)
	records, err := p.listener.Subscribe(ctx, from)
	if err != nil {
		return err
	}
	defer p.listener.Close()

	p.setState(StateListening)
	p.logger.Info("coordinator listening",
		"from", from,
		"oracles", p.registry.Count(),
		"max_in_flight", p.opts.MaxInFlight,
	)

	g := new(errgroup.Group)
	g.SetLimit(p.opts.MaxInFlight)

	// In-flight records finish on their own timeouts after a stop signal.
	handleCtx := context.WithoutCancel(ctx)

intake:
	for {
		select {
		case <-ctx.Done():
			break intake
		case record, ok := <-records:
			if !ok {
				break intake
			}
			// Blocks while MaxInFlight records are being handled.
			g.Go(func() error {
				p.handle(handleCtx, record)
				return nil
			})
		}
	}

	p.setState(StateShuttingDown)
	p.logger.Info("coordinator shutting down", "in_flight", p.inFlight.Load())

	_ = g.Wait()
	p.logger.Info("coordinator stopped")
	return nil
}

func (p *Process) bootstrap(ctx context.Context) error {
	if err := p.ledger.Ping(ctx); err != nil {
		if !domain.IsErrorCode(err, domain.ErrCodeConnectionFailed) {
			err = domain.NewConnectionFailedError(err)
		}
		p.logger.Error("ledger unreachable", "error", err)
		return err
	}

	pool, err := p.pool.Acquire(ctx)
	if err != nil {
		p.logger.Error("failed to acquire identity pool", "error", err)
		return fmt.Errorf("acquire identity pool: %w", err)
	}

	report := p.registry.RegisterAll(ctx, pool, p.opts.Stake)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if p.registry.Count() == 0 {
		err := domain.NewBootstrapExhaustedError(len(report.Outcomes))
		p.logger.Error("bootstrap exhausted", "error", err)
		return err
	}

	p.bootstrapped.Store(true)
	p.logger.Info("bootstrap complete",
		"registered", p.registry.Count(),
		"failed", report.Failed(),
	)
	return nil
}

func (p *Process) startOffset(ctx context.Context) uint64 {
	if p.checkpoints == nil {
		return p.opts.FromOffset
	}

	offset, ok, err := p.checkpoints.Load(ctx, worker.RequestStream)
	if err != nil {
		p.logger.Warn("failed to load stream checkpoint", "error", err, "from", p.opts.FromOffset)
		return p.opts.FromOffset
	}
	if !ok {
		return p.opts.FromOffset
	}

	p.logger.Info("resuming from checkpoint", "offset", offset)
	return offset
}

func (p *Process) handle(ctx context.Context, record domain.RequestRecord) {
	p.inFlight.Add(1)
	defer p.inFlight.Add(-1)

	p.handler.Handle(ctx, record)
	p.lastHandled.Store(time.Now().UnixNano())
}

func (p *Process) setState(s State) {
	p.state.Store(int32(s))
}

// State reports the lifecycle phase. While intake is open it is DISPATCHING
// whenever a record is in flight and LISTENING otherwise.
func (p *Process) State() State {
	return p.stateWith(p.inFlight.Load())
}

func (p *Process) stateWith(inFlight int64) State {
	s := State(p.state.Load())
	if s == StateListening && inFlight > 0 {
		return StateDispatching
	}
	return s
}

func (p *Process) Status() Status {
	inFlight := p.inFlight.Load()
	status := Status{
		State:           p.stateWith(inFlight).String(),
		Bootstrapped:    p.bootstrapped.Load(),
		RegisteredCount: p.registry.Count(),
		InFlight:        inFlight,
	}
	if ns := p.lastHandled.Load(); ns != 0 {
		t := time.Unix(0, ns).UTC()
		status.LastRequestHandledAt = &t
	}
	return status
}

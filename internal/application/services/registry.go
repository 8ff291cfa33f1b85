package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Brad-Behrens/FlightSurety-DApp/internal/application"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/domain"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/metrics"
	"golang.org/x/sync/errgroup"
)

// RegistrationOutcome is the result of registering one address.
type RegistrationOutcome struct {
	Address domain.Address
	Indexes domain.IndexSet
	// Adopted is set when the ledger already knew the oracle and its
	// existing indexes were taken over.
	Adopted bool
	// Existing is set when the address was already in the registry.
	Existing bool
	Err      error
}

func (o RegistrationOutcome) Succeeded() bool {
	return o.Err == nil
}

// RegistrationReport lists one outcome per requested address, in pool order.
type RegistrationReport struct {
	Outcomes []RegistrationOutcome
}

func (r RegistrationReport) Registered() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Succeeded() {
			n++
		}
	}
	return n
}

func (r RegistrationReport) Failed() int {
	return len(r.Outcomes) - r.Registered()
}

// OracleRegistry owns the coordinator's oracle identities and the index sets
// the ledger assigned them. It is written during bootstrap only.
type OracleRegistry struct {
	ledger      application.Ledger
	metrics     *metrics.Metrics
	logger      *slog.Logger
	concurrency int

	mu         sync.RWMutex
	order      []domain.Address
	identities map[domain.Address]domain.Identity
}

func NewOracleRegistry(ledger application.Ledger, concurrency int, m *metrics.Metrics, logger *slog.Logger) *OracleRegistry {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OracleRegistry{
		ledger:      ledger,
		metrics:     m,
		logger:      logger,
		concurrency: concurrency,
		identities:  make(map[domain.Address]domain.Identity),
	}
}

// RegisterAll stakes and registers every address with the ledger. Each
// address is handled independently; failures end up in the report and never
// stop the others. Successful identities join the registry in pool order.
func (r *OracleRegistry) RegisterAll(ctx context.Context, pool []domain.Address, stake string) RegistrationReport {
	addrs := make([]domain.Address, 0, len(pool))
	seen := make(map[domain.Address]struct{}, len(pool))
	for _, a := range pool {
		a = a.Normalize()
		if a == "" {
			continue
		}
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}
		addrs = append(addrs, a)
	}

	outcomes := make([]RegistrationOutcome, len(addrs))

	g := new(errgroup.Group)
	g.SetLimit(r.concurrency)
	for i, addr := range addrs {
		if existing, ok := r.Lookup(addr); ok {
			outcomes[i] = RegistrationOutcome{Address: addr, Indexes: existing.Indexes, Existing: true}
			continue
		}
		g.Go(func() error {
			outcomes[i] = r.register(ctx, addr, stake)
			return nil
		})
	}
	_ = g.Wait()

	r.mu.Lock()
	for _, o := range outcomes {
		if !o.Succeeded() || o.Existing {
			continue
		}
		r.order = append(r.order, o.Address)
		r.identities[o.Address] = domain.Identity{Address: o.Address, Indexes: o.Indexes}
	}
	r.mu.Unlock()

	report := RegistrationReport{Outcomes: outcomes}
	r.logger.Info("oracle registration finished",
		"requested", len(addrs),
		"registered", report.Registered(),
		"failed", report.Failed(),
	)
	return report
}

func (r *OracleRegistry) register(ctx context.Context, addr domain.Address, stake string) RegistrationOutcome {
	outcome := RegistrationOutcome{Address: addr}

	if err := r.ledger.Register(ctx, addr, stake); err != nil {
		if !application.IsAlreadyRegistered(err) {
			return r.fail(outcome, err)
		}
		outcome.Adopted = true
	}

	indexes, err := r.ledger.AssignedIndexes(ctx, addr)
	if err != nil {
		return r.fail(outcome, err)
	}

	set := domain.NewIndexSet(indexes...)
	if set.Empty() {
		return r.fail(outcome, domain.ErrEmptyIndexSet)
	}

	outcome.Indexes = set
	r.metrics.IncrementRegistrations(true)
	r.logger.Info("oracle registered",
		"oracle", addr,
		"indexes", []uint8(set),
		"adopted", outcome.Adopted,
	)
	return outcome
}

func (r *OracleRegistry) fail(outcome RegistrationOutcome, err error) RegistrationOutcome {
	outcome.Err = domain.NewRegistrationFailedError(outcome.Address, err)
	r.metrics.IncrementRegistrations(false)
	r.logger.Warn("oracle registration failed",
		"oracle", outcome.Address,
		"category", application.CategorizeError(err),
		"error", err,
	)
	return outcome
}

// Matching returns every registered identity holding index, in registration
// order.
func (r *OracleRegistry) Matching(index uint8) []domain.Identity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []domain.Identity
	for _, addr := range r.order {
		if id := r.identities[addr]; id.Matches(index) {
			matched = append(matched, id)
		}
	}
	return matched
}

func (r *OracleRegistry) Lookup(addr domain.Address) (domain.Identity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.identities[addr.Normalize()]
	return id, ok
}

// Identities returns a copy of the registry in registration order.
func (r *OracleRegistry) Identities() []domain.Identity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Identity, 0, len(r.order))
	for _, addr := range r.order {
		out = append(out, r.identities[addr])
	}
	return out
}

func (r *OracleRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

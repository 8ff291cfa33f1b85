package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Brad-Behrens/FlightSurety-DApp/internal/application"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/coordinator"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/domain"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/metrics"
)

type StatusReporter interface {
	Status() coordinator.Status
}

type OracleLister interface {
	Identities() []domain.Identity
	Lookup(addr domain.Address) (domain.Identity, bool)
}

// StoragePinger reports whether the journal's database answers.
type StoragePinger interface {
	Ping(ctx context.Context) error
}

// Handlers serves the coordinator's read-only status surface.
type Handlers struct {
	process StatusReporter
	oracles OracleLister
	journal application.AttemptJournal
	storage StoragePinger
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewHandlers(
	process StatusReporter,
	oracles OracleLister,
	journal application.AttemptJournal,
	storage StoragePinger,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		process: process,
		oracles: oracles,
		journal: journal,
		storage: storage,
		metrics: m,
		logger:  logger,
	}
}

// Routes registers every endpoint on a new mux.
func (h *Handlers) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /status", h.GetStatus)
	mux.HandleFunc("GET /health", h.GetHealth)
	mux.HandleFunc("GET /metrics", h.GetMetrics)
	mux.HandleFunc("GET /oracles", h.ListOracles)
	mux.HandleFunc("GET /oracles/{address}", h.GetOracle)
	mux.HandleFunc("GET /requests/{offset}/attempts", h.ListAttempts)
	return mux
}

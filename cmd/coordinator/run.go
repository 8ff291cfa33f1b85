package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/Brad-Behrens/FlightSurety-DApp/internal/application"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/application/services"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/config"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/coordinator"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/infrastructure/ledger"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/infrastructure/persistence"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/interfaces/rest/handlers"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/interfaces/rest/middleware"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/metrics"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/worker"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

// loadConfig reads the environment and applies the --log override.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	if level, _ := cmd.Flags().GetString("log"); level != "" {
		cfg.Logger.Level = level
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// ledgerClients returns the bootstrap client (retried) and the dispatch
// client (rate limited). Both share one HTTP transport.
func ledgerClients(cfg *config.Config) (bootstrap application.Ledger, dispatch application.Ledger) {
	client := ledger.NewLedgerClient(cfg.Ledger)
	retrying := ledger.NewRetryClient(client, cfg.Retry)
	return retrying, ledger.NewRateLimitedClient(retrying, cfg.Dispatch)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Register the oracle pool and answer flight status requests until stopped",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, logger)
		},
	}
	return cmd
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting oracle coordinator",
		"version", version,
		"ledger", cfg.Ledger.BaseURL,
		"port", cfg.Server.Port,
		"storage", cfg.Storage.Driver,
		"log_level", cfg.Logger.Level,
	)

	stores, err := persistence.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		return err
	}
	defer stores.Close()

	m := metrics.NewMetrics()
	bootstrapLedger, dispatchLedger := ledgerClients(cfg)

	registry := services.NewOracleRegistry(bootstrapLedger, cfg.Oracles.RegisterConcurrency, m, logger)
	dispatcher := services.NewResponseDispatcher(
		registry,
		services.NewRandomStatusSource(),
		dispatchLedger,
		logger,
		services.WithJournal(stores.Journal),
		services.WithMetrics(m),
		services.WithSubmitTimeout(cfg.Dispatch.SubmitTimeout),
	)
	// The listener reconnects on its own; it talks to the raw client.
	listener := worker.NewRequestListener(ledger.NewLedgerClient(cfg.Ledger), stores.Checkpoints, cfg.Ledger, m, logger)

	process := coordinator.NewProcess(
		bootstrapLedger,
		coordinator.NewPoolSource(cfg.Oracles, bootstrapLedger),
		registry,
		dispatcher,
		listener,
		stores.Checkpoints,
		coordinator.Options{
			Stake:       cfg.Oracles.Stake,
			FromOffset:  cfg.Ledger.FromOffset,
			MaxInFlight: cfg.Dispatch.MaxInFlight,
		},
		logger,
	)

	h := handlers.NewHandlers(process, registry, stores.Journal, stores, m, logger)

	handler := middleware.Recovery(logger)(h.Routes())
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Timeout(cfg.Server.ReadTimeout)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Bind before bootstrap so a taken port fails the run instead of leaving
	// the coordinator without a status endpoint.
	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		logger.Error("status server cannot listen", "addr", server.Addr, "error", err)
		return fmt.Errorf("status server listen on %s: %w", server.Addr, err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("status server starting", "addr", ln.Addr().String())
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("status server error", "error", err)
			serverErr <- err
			cancel()
		}
	}()

	runErr := process.Run(runCtx)

	logger.Info("shutting down status server...")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	select {
	case err := <-serverErr:
		return fmt.Errorf("status server: %w", err)
	default:
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		logger.Error("coordinator failed", "error", runErr)
		return runErr
	}

	logger.Info("coordinator exited")
	return nil
}

package persistence

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Brad-Behrens/FlightSurety-DApp/internal/application"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/config"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/infrastructure/persistence/memory"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/infrastructure/persistence/postgres"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/infrastructure/persistence/sqlite"
)

// Stores bundles the journal and checkpoint store of one storage driver.
type Stores struct {
	Driver      string
	Journal     application.AttemptJournal
	Checkpoints application.CheckpointStore
	close       func()
	ping        func(ctx context.Context) error
}

// Ping checks that the backing database answers. The memory driver always
// does.
func (s *Stores) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

func (s *Stores) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open builds the stores for cfg.Storage.Driver and applies its schema.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Stores, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := postgres.Connect(ctx, &cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return &Stores{
			Driver:      config.DriverPostgres,
			Journal:     postgres.NewAttemptRepository(db),
			Checkpoints: postgres.NewCheckpointRepository(db),
			close:       db.Close,
			ping:        db.Pool.Ping,
		}, nil

	case config.DriverSQLite:
		store, err := sqlite.NewStore(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store %s: %w", cfg.Storage.SQLitePath, err)
		}
		logger.Info("using sqlite store", "path", cfg.Storage.SQLitePath)
		return &Stores{
			Driver:      config.DriverSQLite,
			Journal:     store,
			Checkpoints: store,
			ping:        store.Ping,
			close: func() {
				if err := store.Close(); err != nil {
					logger.Error("failed to close sqlite store", "error", err)
				}
			},
		}, nil

	case config.DriverMemory, "":
		logger.Warn("using in-memory store; checkpoints are lost on restart")
		return &Stores{
			Driver:      config.DriverMemory,
			Journal:     memory.NewAttemptJournal(),
			Checkpoints: memory.NewCheckpointStore(),
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

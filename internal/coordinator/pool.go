package coordinator

import (
	"context"
	"fmt"

	"github.com/Brad-Behrens/FlightSurety-DApp/internal/application"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/config"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/domain"
)

// PoolSource yields the addresses the coordinator may register as oracles.
type PoolSource interface {
	Acquire(ctx context.Context) ([]domain.Address, error)
}

func NewPoolSource(cfg config.OraclesConfig, ledger application.Ledger) PoolSource {
	if cfg.Source == "file" {
		return FilePool{Path: cfg.PoolFile}
	}
	return LedgerPool{Ledger: ledger, Offset: cfg.Offset, Count: cfg.Count}
}

// LedgerPool takes Count accounts starting at Offset from the ledger's
// account list. The accounts before Offset belong to the owner and airlines.
type LedgerPool struct {
	Ledger application.Ledger
	Offset int
	Count  int
}

func (p LedgerPool) Acquire(ctx context.Context) ([]domain.Address, error) {
	accounts, err := p.Ledger.Accounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ledger accounts: %w", err)
	}
	if p.Offset >= len(accounts) {
		return nil, fmt.Errorf("ledger exposes %d accounts, oracle offset %d is out of range", len(accounts), p.Offset)
	}

	end := min(p.Offset+p.Count, len(accounts))
	return accounts[p.Offset:end], nil
}

type FilePool struct {
	Path string
}

func (p FilePool) Acquire(context.Context) ([]domain.Address, error) {
	return config.LoadIdentityPool(p.Path)
}

// StaticPool is a fixed list of addresses.
type StaticPool []domain.Address

func (p StaticPool) Acquire(context.Context) ([]domain.Address, error) {
	return p, nil
}

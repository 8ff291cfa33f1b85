package main

import (
	"fmt"

	"github.com/Brad-Behrens/FlightSurety-DApp/internal/application/services"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/coordinator"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/domain"
	"github.com/spf13/cobra"
)

// newRegisterCmd registers the pool and prints each identity's indexes
// without listening for requests.
func newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Register the oracle pool with the ledger and print the assigned indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			bootstrapLedger, _ := ledgerClients(cfg)
			if err := bootstrapLedger.Ping(ctx); err != nil {
				return domain.NewConnectionFailedError(err)
			}

			pool, err := coordinator.NewPoolSource(cfg.Oracles, bootstrapLedger).Acquire(ctx)
			if err != nil {
				return fmt.Errorf("acquire identity pool: %w", err)
			}

			registry := services.NewOracleRegistry(bootstrapLedger, cfg.Oracles.RegisterConcurrency, nil, logger)
			report := registry.RegisterAll(ctx, pool, cfg.Oracles.Stake)

			out := cmd.OutOrStdout()
			for _, o := range report.Outcomes {
				switch {
				case o.Err != nil:
					fmt.Fprintf(out, "%s\tFAILED\t%v\n", o.Address, o.Err)
				case o.Adopted:
					fmt.Fprintf(out, "%s\tadopted\t%v\n", o.Address, indexList(o.Indexes))
				default:
					fmt.Fprintf(out, "%s\tregistered\t%v\n", o.Address, indexList(o.Indexes))
				}
			}
			fmt.Fprintf(out, "%d registered, %d failed\n", report.Registered(), report.Failed())

			if registry.Count() == 0 {
				return domain.NewBootstrapExhaustedError(len(report.Outcomes))
			}
			return nil
		},
	}
}

func indexList(set domain.IndexSet) []int {
	out := make([]int, 0, len(set))
	for _, idx := range set {
		out = append(out, int(idx))
	}
	return out
}

// Package seed implements the batch-seed command: applying the built-in
// authoritative infrastructure entities to the registry.
package seed

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/factmap/pkg/canon"
	"github.com/agentstation/factmap/pkg/errors"
	"github.com/agentstation/factmap/pkg/logging"
	"github.com/agentstation/factmap/pkg/merge"
	"github.com/agentstation/factmap/pkg/seeds"
	"github.com/agentstation/factmap/pkg/store"
)

// AppContext defines the interface the seed command needs from the app.
type AppContext interface {
	Store() (store.Store, error)
	Comparator() (canon.Comparator, error)
	Logger() *zerolog.Logger
}

// NewCommand creates the seed command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Apply the built-in seed entities to the registry",
		Long: `Seed applies the built-in list of authoritative infrastructure
entities to the registry. Seed data always wins on non-constraint
fields; constraints already recorded in the registry always survive.
This path never reports a conflict.

The registry is written once at the end of the run, so observers of the
file see the whole seeding as a single transition.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app)
		},
	}
}

func run(cmd *cobra.Command, app AppContext) error {
	ctx := logging.WithLogger(cmd.Context(), app.Logger())

	// Preflight the comparator so a missing external tool fails before
	// any registry I/O, matching the harvest path's behavior.
	if _, err := app.Comparator(); err != nil {
		return err
	}

	seedList, err := seeds.Default()
	if err != nil {
		return err
	}

	st, err := app.Store()
	if err != nil {
		return err
	}

	if locker, ok := st.(store.Locker); ok {
		release, err := locker.Lock(ctx)
		if err != nil {
			return err
		}
		defer release()
	}

	reg, err := st.Load(ctx)
	if err != nil {
		if errors.IsRegistryNotFound(err) {
			return fmt.Errorf("%w (run 'factmap init' to create one)", err)
		}
		return err
	}

	seeder := merge.NewSeeder(st)
	stats, err := seeder.Seed(ctx, reg, seedList)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Registry seeded: %d entities (%d infra)\n", stats.Total, stats.Infra)
	return nil
}

// Package initialize implements the init command, creating an empty
// registry file at the configured path.
package initialize

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/factmap/pkg/entities"
	"github.com/agentstation/factmap/pkg/errors"
	"github.com/agentstation/factmap/pkg/logging"
	"github.com/agentstation/factmap/pkg/store"
)

// AppContext defines the interface the init command needs from the app.
type AppContext interface {
	Store() (store.Store, error)
	Logger() *zerolog.Logger
}

// NewCommand creates the init command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty registry file",
		Long: `Init creates an empty registry at the configured path. An existing
registry is left alone unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app, force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing registry")
	return cmd
}

func run(cmd *cobra.Command, app AppContext, force bool) error {
	ctx := logging.WithLogger(cmd.Context(), app.Logger())

	st, err := app.Store()
	if err != nil {
		return err
	}

	if !force {
		if _, err := st.Load(ctx); err == nil {
			return errors.NewUsageError("init",
				fmt.Sprintf("registry already exists at %s (use --force to overwrite)", st.Path()))
		} else if !errors.IsRegistryNotFound(err) {
			return err
		}
	}

	reg := entities.NewRegistry()
	if err := st.Save(ctx, reg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized empty registry at %s\n", st.Path())
	return nil
}

package app

import (
	"github.com/spf13/cobra"

	initcmd "github.com/agentstation/factmap/cmd/factmap/cmd/initialize"
	listcmd "github.com/agentstation/factmap/cmd/factmap/cmd/list"
	mergecmd "github.com/agentstation/factmap/cmd/factmap/cmd/merge"
	seedcmd "github.com/agentstation/factmap/cmd/factmap/cmd/seed"
	versioncmd "github.com/agentstation/factmap/cmd/factmap/cmd/version"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(mergecmd.NewCommand(a))
	rootCmd.AddCommand(seedcmd.NewCommand(a))
	rootCmd.AddCommand(initcmd.NewCommand(a))
	rootCmd.AddCommand(listcmd.NewCommand(a))
	rootCmd.AddCommand(versioncmd.NewCommand(a))
}

// Package version implements the version command.
package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// AppContext defines the interface the version command needs from the app.
type AppContext interface {
	Version() string
	Commit() string
	Date() string
}

// NewCommand creates the version command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "factmap %s\n", app.Version())
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", app.Commit())
			fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", app.Date())
			fmt.Fprintf(cmd.OutOrStdout(), "  go:     %s (%s/%s)\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}

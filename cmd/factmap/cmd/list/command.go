// Package list implements the list command, rendering the current
// registry contents.
package list

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/factmap/pkg/entities"
	"github.com/agentstation/factmap/pkg/logging"
	"github.com/agentstation/factmap/pkg/store"
)

// AppContext defines the interface the list command needs from the app.
type AppContext interface {
	Store() (store.Store, error)
	Logger() *zerolog.Logger
}

// NewCommand creates the list command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	var entityType string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered entities",
		Example: `  factmap list
  factmap list --type infra`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app, entityType)
		},
	}
	cmd.Flags().StringVarP(&entityType, "type", "t", "", "filter by entity type (infra, forge-project)")
	return cmd
}

func run(cmd *cobra.Command, app AppContext, entityType string) error {
	ctx := logging.WithLogger(cmd.Context(), app.Logger())

	st, err := app.Store()
	if err != nil {
		return err
	}
	reg, err := st.Load(ctx)
	if err != nil {
		return err
	}

	title := cases.Title(language.English)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tKIND\tNAME\tCONSTRAINTS")

	shown := 0
	for _, e := range reg.Entities {
		if entityType != "" && e.Type != entities.Type(entityType) {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.ID,
			e.Type,
			title.String(strings.ReplaceAll(e.Kind.String(), "_", " ")),
			e.Name,
			formatConstraints(e.Constraints),
		)
		shown++
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d of %d entities (last updated %s)\n",
		shown, reg.Len(), reg.LastUpdated.String())
	return nil
}

func formatConstraints(cs []entities.Constraint) string {
	if len(cs) == 0 {
		return "-"
	}
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.Type + "=" + c.Value
	}
	return strings.Join(parts, ", ")
}

// Package merge implements the single-candidate merge command, the
// interactive/harvest path into the registry.
package merge

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/factmap/pkg/canon"
	"github.com/agentstation/factmap/pkg/entities"
	"github.com/agentstation/factmap/pkg/errors"
	"github.com/agentstation/factmap/pkg/logging"
	"github.com/agentstation/factmap/pkg/merge"
	"github.com/agentstation/factmap/pkg/store"
)

// AppContext defines the interface the merge command needs from the app.
type AppContext interface {
	Store() (store.Store, error)
	Comparator() (canon.Comparator, error)
	Logger() *zerolog.Logger
}

// NewCommand creates the merge command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "merge <candidate.json | ->",
		Short: "Merge one candidate entity into the registry",
		Long: `Merge decides whether the registry already holds an equivalent record
for the candidate, appends it when its id is new, and reports a conflict
when the same id carries divergent metadata.

The registry is never modified on skip or conflict, and recorded
constraint facts are never dropped: the candidate is compared in its
constraint-safe form, with the existing entity's constraints taking
precedence.

Exit status: 0 when the candidate was appended or skipped, 2 on
conflict, 1 on any other error.`,
		Example: `  factmap merge candidate.json
  harvester discover pg-main | factmap merge -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, args[0])
		},
	}
}

func run(cmd *cobra.Command, app AppContext, source string) error {
	ctx := logging.WithLogger(cmd.Context(), app.Logger())

	data, err := readCandidate(source)
	if err != nil {
		return err
	}
	candidate, err := entities.ParseEntity(data)
	if err != nil {
		return err
	}

	cmp, err := app.Comparator()
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

	engine := merge.NewEngine(st, merge.WithComparator(cmp))
	result, err := engine.MergeOne(ctx, reg, candidate)
	if err != nil {
		var conflict *errors.ConflictError
		if errors.As(err, &conflict) {
			printConflict(cmd.ErrOrStderr(), result)
		}
		return err
	}

	switch result.Outcome {
	case merge.OutcomeAppended:
		fmt.Fprintf(cmd.OutOrStdout(), "Appended entity %s (%d entities registered)\n", result.ID, reg.Len())
	case merge.OutcomeSkipped:
		fmt.Fprintf(cmd.OutOrStdout(), "Skipped entity %s: already current\n", result.ID)
	}
	return nil
}

// readCandidate reads the candidate JSON from a file or, for "-", stdin.
func readCandidate(source string) ([]byte, error) {
	if source == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, errors.WrapIO("read", "stdin", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, errors.WrapIO("read", source, err)
	}
	return data, nil
}

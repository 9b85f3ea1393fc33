package merge

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/agentstation/factmap/pkg/entities"
	"github.com/agentstation/factmap/pkg/merge"
)

// printConflict renders both sides of a conflict for manual resolution:
// the registered entity and the constraint-safe form of the candidate.
func printConflict(w io.Writer, result merge.Result) {
	fmt.Fprintf(w, "Conflict for entity %q: registered metadata diverges from candidate.\n", result.ID)
	fmt.Fprintf(w, "The registry was left unchanged. Resolve manually and re-run.\n\n")

	fmt.Fprintln(w, "--- registered")
	writeEntity(w, result.Existing)
	fmt.Fprintln(w, "--- candidate (constraint-safe)")
	writeEntity(w, result.Safe)
}

func writeEntity(w io.Writer, e *entities.Entity) {
	if e == nil {
		fmt.Fprintln(w, "(none)")
		return
	}
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "(unrenderable: %v)\n", err)
		return
	}
	fmt.Fprintf(w, "%s\n", data)
}

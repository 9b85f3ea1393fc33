// Package merge implements the two merge policies of the factmap
// registry: the conflict-sensitive single-candidate policy used on the
// harvest path (Engine) and the authoritative-update policy used when
// seeding (Seeder). Both share one pure constraint-union helper so the
// "constraints are never silently lost" guarantee has a single home.
package merge

import (
	"github.com/agentstation/factmap/pkg/entities"
)

// MergeConstraints unions two constraint sequences. Existing constraints
// are authoritative: the sequences concatenate existing-first and then
// deduplicate by type keeping the first-seen entry, so a recorded value
// is never silently overwritten by an incoming one. Incoming constraints
// of novel types are appended in their own order.
func MergeConstraints(existing, incoming []entities.Constraint) []entities.Constraint {
	if len(existing) == 0 && len(incoming) == 0 {
		return nil
	}

	merged := make([]entities.Constraint, 0, len(existing)+len(incoming))
	seen := make(map[string]bool, len(existing)+len(incoming))

	for _, c := range existing {
		if seen[c.Type] {
			continue
		}
		seen[c.Type] = true
		merged = append(merged, c)
	}
	for _, c := range incoming {
		if seen[c.Type] {
			continue
		}
		seen[c.Type] = true
		merged = append(merged, c)
	}
	return merged
}

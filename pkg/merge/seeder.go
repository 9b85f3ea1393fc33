package merge

import (
	"context"

	"github.com/agentstation/factmap/pkg/entities"
	"github.com/agentstation/factmap/pkg/logging"
	"github.com/agentstation/factmap/pkg/store"
)

// SeedStats summarizes a seeding run.
type SeedStats struct {
	Total   int // Entities in the registry after seeding
	Infra   int // Entities of type infra after seeding
	Added   int // Seed entities with a novel id
	Updated int // Seed entities that replaced an existing record
}

// Seeder applies a fixed list of authoritative seed entities to the
// registry. This is deliberately a distinct operation from
// Engine.MergeOne, not a parameterization of it: seed data always wins
// on non-constraint fields and this path never raises a conflict, which
// is the opposite failure semantics of the harvest path.
type Seeder struct {
	store store.Store
}

// NewSeeder creates a seeder persisting through s.
func NewSeeder(s store.Store) *Seeder {
	return &Seeder{store: s}
}

// Seed folds the seed entities into the registry in order. A novel id
// appends the seed verbatim; an existing id has all fields replaced by
// the seed's, except constraints, which are recomputed with
// MergeConstraints whenever the existing entity carries any (so a
// recorded constraint survives reseeding even when the seed list lost
// it). The registry's last_updated is refreshed exactly once and the
// whole registry is persisted in a single save, so observers of the file
// see the run as one transition.
func (s *Seeder) Seed(ctx context.Context, reg *entities.Registry, seeds []entities.Entity) (SeedStats, error) {
	log := logging.Ctx(ctx)

	var stats SeedStats
	for _, seed := range seeds {
		existing := reg.FindByID(seed.ID)
		if existing == nil {
			reg.Append(seed.Clone())
			stats.Added++
			continue
		}

		merged := seed.Clone()
		if existing.HasConstraints() {
			merged.Constraints = MergeConstraints(existing.Constraints, seed.Constraints)
		}
		*existing = merged
		stats.Updated++
	}

	reg.Touch()
	if err := s.store.Save(ctx, reg); err != nil {
		return SeedStats{}, err
	}

	stats.Total = reg.Len()
	stats.Infra = reg.CountByType(entities.TypeInfra)

	log.Info().
		Int("seeds", len(seeds)).
		Int("added", stats.Added).
		Int("updated", stats.Updated).
		Int("total", stats.Total).
		Msg("Registry seeded")
	return stats, nil
}

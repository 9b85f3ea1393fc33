package merge_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/factmap/pkg/entities"
	"github.com/agentstation/factmap/pkg/merge"
	"github.com/agentstation/factmap/pkg/store"
)

func seedList() []entities.Entity {
	return []entities.Entity{
		{
			ID:   "pg-main",
			Type: entities.TypeInfra,
			Kind: entities.KindDatabase,
			Name: "Main PostgreSQL",
			Attrs: map[string]any{
				"host": "pg-main.internal",
			},
			Constraints: []entities.Constraint{
				{Type: "access", Value: "READ ONLY"},
			},
		},
		{
			ID:   "redis-cache",
			Type: entities.TypeInfra,
			Kind: entities.KindService,
			Name: "Redis Cache",
		},
		{
			ID:   "ci-deploy",
			Type: entities.TypeForgeProject,
			Kind: entities.KindPipelineStage,
			Name: "Deploy Stage",
		},
	}
}

func TestSeedEmptyRegistry(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory(store.WithRegistry(entities.NewRegistry()))
	seeder := merge.NewSeeder(st)

	reg, err := st.Load(ctx)
	require.NoError(t, err)

	stats, err := seeder.Seed(ctx, reg, seedList())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Infra)
	assert.Equal(t, 3, stats.Added)
	assert.Equal(t, 0, stats.Updated)

	// One save for the whole run, regardless of how many seeds applied
	assert.Equal(t, 1, st.Saves)
}

func TestSeedIdempotence(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory(store.WithRegistry(entities.NewRegistry()))
	seeder := merge.NewSeeder(st)

	reg, err := st.Load(ctx)
	require.NoError(t, err)
	first, err := seeder.Seed(ctx, reg, seedList())
	require.NoError(t, err)

	afterFirst, err := st.Load(ctx)
	require.NoError(t, err)

	second, err := seeder.Seed(ctx, afterFirst, seedList())
	require.NoError(t, err)

	assert.Equal(t, first.Total, second.Total)

	afterSecond, err := st.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, afterFirst.Len(), afterSecond.Len())
	for i := range afterFirst.Entities {
		assert.True(t, entities.Equal(afterFirst.Entities[i], afterSecond.Entities[i]),
			"entity %s changed across reseed", afterFirst.Entities[i].ID)
	}
}

func TestSeedOverwritesNonConstraintFields(t *testing.T) {
	ctx := context.Background()

	// Registry holds a drifted version of a seeded entity
	reg := entities.NewRegistry()
	reg.Append(entities.Entity{
		ID:   "redis-cache",
		Type: entities.TypeInfra,
		Kind: entities.KindService,
		Name: "Old Cache Name",
		Attrs: map[string]any{
			"host": "stale.internal",
		},
	})
	st := store.NewMemory(store.WithRegistry(reg))
	seeder := merge.NewSeeder(st)

	loaded, err := st.Load(ctx)
	require.NoError(t, err)
	stats, err := seeder.Seed(ctx, loaded, seedList())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Updated)

	stored, err := st.Load(ctx)
	require.NoError(t, err)
	e := stored.FindByID("redis-cache")
	require.NotNil(t, e)
	assert.Equal(t, "Redis Cache", e.Name)
	assert.NotContains(t, e.Attrs, "host", "stale attrs must be replaced wholesale")
}

func TestSeedPreservesRecordedConstraints(t *testing.T) {
	ctx := context.Background()

	// Registered entity carries a constraint the seed list does not
	reg := entities.NewRegistry()
	reg.Append(entities.Entity{
		ID:   "redis-cache",
		Type: entities.TypeInfra,
		Kind: entities.KindService,
		Name: "Redis Cache",
		Constraints: []entities.Constraint{
			{Type: "access", Value: "READ ONLY"},
		},
	})
	st := store.NewMemory(store.WithRegistry(reg))
	seeder := merge.NewSeeder(st)

	loaded, err := st.Load(ctx)
	require.NoError(t, err)
	_, err = seeder.Seed(ctx, loaded, seedList())
	require.NoError(t, err)

	stored, err := st.Load(ctx)
	require.NoError(t, err)
	c, ok := stored.FindByID("redis-cache").Constraint("access")
	require.True(t, ok, "recorded constraint must survive reseeding")
	assert.Equal(t, "READ ONLY", c.Value)
}

func TestSeedExistingConstraintValueWins(t *testing.T) {
	ctx := context.Background()

	reg := entities.NewRegistry()
	reg.Append(entities.Entity{
		ID:   "pg-main",
		Type: entities.TypeInfra,
		Kind: entities.KindDatabase,
		Name: "Main PostgreSQL",
		Constraints: []entities.Constraint{
			{Type: "access", Value: "NO ACCESS"},
		},
	})
	st := store.NewMemory(store.WithRegistry(reg))
	seeder := merge.NewSeeder(st)

	loaded, err := st.Load(ctx)
	require.NoError(t, err)
	_, err = seeder.Seed(ctx, loaded, seedList())
	require.NoError(t, err)

	stored, err := st.Load(ctx)
	require.NoError(t, err)
	c, ok := stored.FindByID("pg-main").Constraint("access")
	require.True(t, ok)
	assert.Equal(t, "NO ACCESS", c.Value, "recorded value beats the seed's")
}

func TestSeedLeavesUnrelatedEntitiesAlone(t *testing.T) {
	ctx := context.Background()

	// An entity merged from harvest, absent from the seed list
	harvested := entities.Entity{
		ID:   "svc-custom",
		Type: entities.TypeInfra,
		Kind: entities.KindService,
		Name: "Custom Service",
		Attrs: map[string]any{
			"host": "custom.internal",
		},
	}
	reg := entities.NewRegistry()
	reg.Append(harvested)
	st := store.NewMemory(store.WithRegistry(reg))
	seeder := merge.NewSeeder(st)

	loaded, err := st.Load(ctx)
	require.NoError(t, err)
	stats, err := seeder.Seed(ctx, loaded, seedList())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)

	stored, err := st.Load(ctx)
	require.NoError(t, err)
	got := stored.FindByID("svc-custom")
	require.NotNil(t, got, "non-seed entity must survive reseed")
	assert.True(t, entities.Equal(harvested, *got))
}

func TestSeedRefreshesTimestampOnce(t *testing.T) {
	ctx := context.Background()

	reg := entities.NewRegistry()
	before := reg.LastUpdated
	st := store.NewMemory(store.WithRegistry(reg))
	seeder := merge.NewSeeder(st)

	loaded, err := st.Load(ctx)
	require.NoError(t, err)
	_, err = seeder.Seed(ctx, loaded, seedList())
	require.NoError(t, err)

	stored, err := st.Load(ctx)
	require.NoError(t, err)
	assert.False(t, stored.LastUpdated.Before(before))
}

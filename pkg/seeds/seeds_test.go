package seeds_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/factmap/pkg/entities"
	"github.com/agentstation/factmap/pkg/seeds"
)

func TestDefaultSeeds(t *testing.T) {
	list, err := seeds.Default()
	require.NoError(t, err)
	require.NotEmpty(t, list)

	seen := make(map[string]bool)
	infra := 0
	for _, e := range list {
		require.NoError(t, e.Validate())
		assert.False(t, seen[e.ID], "duplicate seed id %s", e.ID)
		seen[e.ID] = true
		if e.Type == entities.TypeInfra {
			infra++
		}
	}
	assert.Greater(t, infra, 0, "seed list must include infrastructure entities")
}

func TestDefaultSeedsCarryAccessConstraints(t *testing.T) {
	list, err := seeds.Default()
	require.NoError(t, err)

	var pgMain *entities.Entity
	for i := range list {
		if list[i].ID == "pg-main" {
			pgMain = &list[i]
		}
	}
	require.NotNil(t, pgMain)

	c, ok := pgMain.Constraint(entities.ConstraintAccess)
	require.True(t, ok)
	assert.Equal(t, "READ ONLY", c.Value)
}

func TestDefaultSeedsAttrsAreCanonical(t *testing.T) {
	list, err := seeds.Default()
	require.NoError(t, err)

	for _, e := range list {
		if port, ok := e.Attrs["port"]; ok {
			// YAML integers must fold onto the JSON value domain so
			// seeded entities compare equal to harvested ones.
			assert.IsType(t, float64(0), port, "seed %s port", e.ID)
		}
	}
}

func TestMustDefault(t *testing.T) {
	assert.NotPanics(t, func() {
		list := seeds.MustDefault()
		assert.NotEmpty(t, list)
	})
}

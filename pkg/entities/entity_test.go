package entities_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/factmap/pkg/entities"
	"github.com/agentstation/factmap/pkg/errors"
)

func TestEntityJSONRoundTrip(t *testing.T) {
	raw := []byte(`{
		"id": "pg-main",
		"type": "infra",
		"kind": "database",
		"name": "Main PostgreSQL",
		"description": "Primary database",
		"host": "pg-main.internal",
		"port": 5432,
		"constraints": [{"type": "access", "value": "READ ONLY"}]
	}`)

	var e entities.Entity
	require.NoError(t, json.Unmarshal(raw, &e))

	assert.Equal(t, "pg-main", e.ID)
	assert.Equal(t, entities.TypeInfra, e.Type)
	assert.Equal(t, entities.KindDatabase, e.Kind)
	assert.Equal(t, "Main PostgreSQL", e.Name)
	assert.Equal(t, "Primary database", e.Description)
	require.Len(t, e.Constraints, 1)
	assert.Equal(t, "access", e.Constraints[0].Type)

	// Kind-specific fields land in the attribute bag
	assert.Equal(t, "pg-main.internal", e.Attrs["host"])
	assert.Equal(t, float64(5432), e.Attrs["port"])
	assert.NotContains(t, e.Attrs, "id")

	// Round trip preserves the flattened shape
	out, err := json.Marshal(e)
	require.NoError(t, err)

	var decoded entities.Entity
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.True(t, entities.Equal(e, decoded))
}

func TestParseEntity(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:  "valid candidate",
			input: `{"id": "x1", "type": "infra", "kind": "service", "name": "A"}`,
		},
		{
			name:    "unparsable JSON",
			input:   `{not json`,
			wantErr: true,
		},
		{
			name:    "missing id",
			input:   `{"type": "infra", "kind": "service", "name": "A"}`,
			wantErr: true,
		},
		{
			name:    "empty id",
			input:   `{"id": "", "name": "A"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := entities.ParseEntity([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidationError(err), "expected a candidate validation error, got %v", err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestEntityClone(t *testing.T) {
	e := entities.Entity{
		ID:   "svc-1",
		Type: entities.TypeInfra,
		Kind: entities.KindService,
		Name: "Service",
		Constraints: []entities.Constraint{
			{Type: "access", Value: "READ ONLY"},
		},
		Attrs: map[string]any{
			"host": "svc.internal",
			"tags": []any{"a", "b"},
		},
	}

	clone := e.Clone()
	clone.Constraints[0].Value = "changed"
	clone.Attrs["host"] = "other"
	clone.Attrs["tags"].([]any)[0] = "z"

	assert.Equal(t, "READ ONLY", e.Constraints[0].Value)
	assert.Equal(t, "svc.internal", e.Attrs["host"])
	assert.Equal(t, "a", e.Attrs["tags"].([]any)[0])
}

func TestEntityConstraintLookup(t *testing.T) {
	e := entities.Entity{
		ID: "db-1",
		Constraints: []entities.Constraint{
			{Type: "access", Value: "READ ONLY"},
			{Type: "retention", Value: "30d"},
		},
	}

	c, ok := e.Constraint("access")
	require.True(t, ok)
	assert.Equal(t, "READ ONLY", c.Value)

	_, ok = e.Constraint("missing")
	assert.False(t, ok)

	assert.True(t, e.HasConstraints())
	assert.False(t, (&entities.Entity{}).HasConstraints())
}

func TestRegistryHelpers(t *testing.T) {
	reg := entities.NewRegistry()
	assert.Equal(t, 0, reg.Len())
	assert.Nil(t, reg.FindByID("x1"))

	reg.Append(entities.Entity{ID: "x1", Type: entities.TypeInfra})
	reg.Append(entities.Entity{ID: "x2", Type: entities.TypeForgeProject})

	require.NotNil(t, reg.FindByID("x1"))
	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, 1, reg.CountByType(entities.TypeInfra))

	// FindByID aliases the backing slice so merges can update in place
	reg.FindByID("x1").Name = "renamed"
	assert.Equal(t, "renamed", reg.Entities[0].Name)

	clone := reg.Clone()
	clone.FindByID("x1").Name = "clone-renamed"
	assert.Equal(t, "renamed", reg.Entities[0].Name)
}

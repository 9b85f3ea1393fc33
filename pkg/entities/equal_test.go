package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/factmap/pkg/entities"
)

func TestEqualValue(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{
			name: "map key order is irrelevant",
			a:    map[string]any{"a": 1, "b": "x"},
			b:    map[string]any{"b": "x", "a": 1},
			want: true,
		},
		{
			name: "sequence order matters",
			a:    []any{"a", "b"},
			b:    []any{"b", "a"},
			want: false,
		},
		{
			name: "numbers compare across decoder types",
			a:    map[string]any{"port": 5432},
			b:    map[string]any{"port": float64(5432)},
			want: true,
		},
		{
			name: "yaml-style map keys fold to strings",
			a:    map[any]any{"k": "v"},
			b:    map[string]any{"k": "v"},
			want: true,
		},
		{
			name: "nested divergence detected",
			a:    map[string]any{"m": map[string]any{"x": 1}},
			b:    map[string]any{"m": map[string]any{"x": 2}},
			want: false,
		},
		{
			name: "missing key is not equal",
			a:    map[string]any{"a": 1},
			b:    map[string]any{"a": 1, "b": 2},
			want: false,
		},
		{
			name: "nil equals nil",
			a:    nil,
			b:    nil,
			want: true,
		},
		{
			name: "nil is not zero",
			a:    nil,
			b:    float64(0),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, entities.EqualValue(tt.a, tt.b))
		})
	}
}

func TestEntityEqual(t *testing.T) {
	base := entities.Entity{
		ID:   "x1",
		Type: entities.TypeInfra,
		Kind: entities.KindService,
		Name: "A",
		Attrs: map[string]any{
			"host": "a.internal",
			"port": float64(8080),
		},
		Constraints: []entities.Constraint{
			{Type: "access", Value: "READ ONLY"},
		},
	}

	t.Run("identical entities are equal", func(t *testing.T) {
		assert.True(t, entities.Equal(base, base.Clone()))
	})

	t.Run("attr decoded as int still equal", func(t *testing.T) {
		other := base.Clone()
		other.Attrs["port"] = 8080
		assert.True(t, entities.Equal(base, other))
	})

	t.Run("renamed entity differs", func(t *testing.T) {
		other := base.Clone()
		other.Name = "B"
		assert.False(t, entities.Equal(base, other))
	})

	t.Run("constraint order matters", func(t *testing.T) {
		a := base.Clone()
		a.Constraints = append(a.Constraints, entities.Constraint{Type: "retention", Value: "30d"})
		b := a.Clone()
		b.Constraints[0], b.Constraints[1] = b.Constraints[1], b.Constraints[0]
		assert.False(t, entities.Equal(a, b))
	})

	t.Run("missing constraints differ", func(t *testing.T) {
		other := base.Clone()
		other.Constraints = nil
		assert.False(t, entities.Equal(base, other))
	})

	t.Run("extra attr differs", func(t *testing.T) {
		other := base.Clone()
		other.Attrs["region"] = "eu"
		assert.False(t, entities.Equal(base, other))
	})
}

package merge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/agentstation/factmap/pkg/entities"
	"github.com/agentstation/factmap/pkg/merge"
)

func TestMergeConstraints(t *testing.T) {
	access := entities.Constraint{Type: "access", Value: "READ ONLY"}
	accessRW := entities.Constraint{Type: "access", Value: "READ WRITE"}
	retention := entities.Constraint{Type: "retention", Value: "30d"}

	tests := []struct {
		name     string
		existing []entities.Constraint
		incoming []entities.Constraint
		want     []entities.Constraint
	}{
		{
			name: "both empty yields nil",
		},
		{
			name:     "existing only",
			existing: []entities.Constraint{access},
			want:     []entities.Constraint{access},
		},
		{
			name:     "incoming only",
			incoming: []entities.Constraint{access},
			want:     []entities.Constraint{access},
		},
		{
			name:     "existing value wins on colliding type",
			existing: []entities.Constraint{access},
			incoming: []entities.Constraint{accessRW},
			want:     []entities.Constraint{access},
		},
		{
			name:     "novel incoming types append after existing",
			existing: []entities.Constraint{access},
			incoming: []entities.Constraint{retention},
			want:     []entities.Constraint{access, retention},
		},
		{
			name:     "duplicate types within one side keep first",
			existing: []entities.Constraint{access, accessRW},
			incoming: nil,
			want:     []entities.Constraint{access},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := merge.MergeConstraints(tt.existing, tt.incoming)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Existing constraint values are authoritative: for any pair of inputs,
// every existing type survives with its original value, every incoming
// type is represented, and no type appears twice.
func TestMergeConstraintsProperties(t *testing.T) {
	constraintGen := rapid.Custom(func(rt *rapid.T) entities.Constraint {
		return entities.Constraint{
			Type:  rapid.SampledFrom([]string{"access", "retention", "scope", "owner"}).Draw(rt, "type"),
			Value: rapid.StringMatching(`[A-Z ]{1,12}`).Draw(rt, "value"),
		}
	})

	rapid.Check(t, func(rt *rapid.T) {
		existing := rapid.SliceOfN(constraintGen, 0, 6).Draw(rt, "existing")
		incoming := rapid.SliceOfN(constraintGen, 0, 6).Draw(rt, "incoming")

		merged := merge.MergeConstraints(existing, incoming)

		byType := make(map[string]string)
		for _, c := range merged {
			if _, dup := byType[c.Type]; dup {
				rt.Fatalf("type %q appears twice in %v", c.Type, merged)
			}
			byType[c.Type] = c.Value
		}

		firstOf := func(cs []entities.Constraint, ctype string) (string, bool) {
			for _, c := range cs {
				if c.Type == ctype {
					return c.Value, true
				}
			}
			return "", false
		}

		for _, c := range existing {
			want, _ := firstOf(existing, c.Type)
			if byType[c.Type] != want {
				rt.Fatalf("existing value for %q lost: got %q want %q", c.Type, byType[c.Type], want)
			}
		}
		for _, c := range incoming {
			if _, present := byType[c.Type]; !present {
				rt.Fatalf("incoming type %q missing from %v", c.Type, merged)
			}
		}
	})
}

// Merging is idempotent over the incoming side: applying the same
// incoming constraints twice changes nothing.
func TestMergeConstraintsIdempotent(t *testing.T) {
	existing := []entities.Constraint{{Type: "access", Value: "READ ONLY"}}
	incoming := []entities.Constraint{
		{Type: "access", Value: "READ WRITE"},
		{Type: "retention", Value: "30d"},
	}

	once := merge.MergeConstraints(existing, incoming)
	twice := merge.MergeConstraints(once, incoming)
	assert.Equal(t, once, twice)
}

package entities

import (
	"github.com/agentstation/utc"
)

// Registry is the full persisted collection of entities plus bookkeeping
// for the last successful write. Entity ids are unique across Entities;
// order is preserved as written.
type Registry struct {
	Entities    []Entity `json:"entities" yaml:"entities"`
	LastUpdated utc.Time `json:"last_updated" yaml:"last_updated"`

	// Revision identifies the on-disk generation of the registry. It is
	// stamped by stores running in compare-and-swap mode and absent
	// otherwise, so files written without it stay byte-compatible.
	Revision string `json:"revision,omitempty" yaml:"revision,omitempty"`
}

// NewRegistry returns an empty registry with a fresh timestamp.
func NewRegistry() *Registry {
	return &Registry{
		Entities:    []Entity{},
		LastUpdated: utc.Now(),
	}
}

// FindByID returns a pointer to the entity with the given id, or nil.
// The pointer aliases the registry's backing slice.
func (r *Registry) FindByID(id string) *Entity {
	for i := range r.Entities {
		if r.Entities[i].ID == id {
			return &r.Entities[i]
		}
	}
	return nil
}

// Append adds an entity to the end of the sequence.
func (r *Registry) Append(e Entity) {
	r.Entities = append(r.Entities, e)
}

// Touch refreshes the last-updated timestamp. Callers invoke it exactly
// once per successful write, never on skip or conflict.
func (r *Registry) Touch() {
	r.LastUpdated = utc.Now()
}

// Len returns the number of registered entities.
func (r *Registry) Len() int {
	return len(r.Entities)
}

// CountByType returns how many entities carry the given type.
func (r *Registry) CountByType(t Type) int {
	n := 0
	for i := range r.Entities {
		if r.Entities[i].Type == t {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the registry, useful for computing a
// tentative new value without touching the loaded one.
func (r *Registry) Clone() *Registry {
	out := &Registry{
		LastUpdated: r.LastUpdated,
		Revision:    r.Revision,
		Entities:    make([]Entity, 0, len(r.Entities)),
	}
	for _, e := range r.Entities {
		out.Entities = append(out.Entities, e.Clone())
	}
	return out
}

// Package entities defines the core data model for the factmap registry:
// entities, the durable constraint facts attached to them, and the registry
// document itself. It also provides the canonical deep-equality comparison
// the merge engine uses to decide skip versus conflict.
//
// An entity is a flat record: a handful of well-known fields plus an open,
// kind-specific attribute bag (host, namespace, url, and so on). The bag
// round-trips through JSON untouched so harvesters can record whatever a
// kind needs without a schema change here.
package entities

import (
	"encoding/json"

	"github.com/agentstation/factmap/pkg/errors"
)

// Type is the broad category of an entity.
type Type string

// String returns the string representation of a Type.
func (t Type) String() string {
	return string(t)
}

// Entity types.
const (
	TypeInfra        Type = "infra"         // Infrastructure facts: databases, services, cluster resources
	TypeForgeProject Type = "forge-project" // Project facts: repositories, pipelines
)

// Kind is the subtype of an entity within its type.
type Kind string

// String returns the string representation of a Kind.
func (k Kind) String() string {
	return string(k)
}

// Well-known entity kinds. The set is open; harvesters may record others.
const (
	KindDatabase      Kind = "database"
	KindService       Kind = "service"
	KindK8sResource   Kind = "k8s_resource"
	KindPipelineStage Kind = "pipeline_stage"
)

// Entity represents one recorded fact in the registry.
type Entity struct {
	ID          string       `json:"id" yaml:"id"`                                       // Unique identifier; the sole identity key
	Type        Type         `json:"type" yaml:"type"`                                   // Broad category
	Kind        Kind         `json:"kind" yaml:"kind"`                                   // Subtype within the category
	Name        string       `json:"name" yaml:"name"`                                   // Display name
	Description string       `json:"description,omitempty" yaml:"description,omitempty"` // Free-text description
	Constraints []Constraint `json:"constraints,omitempty" yaml:"constraints,omitempty"` // Durable constraint facts, unique by type

	// Attrs holds all kind-specific fields (host, namespace, url, ...).
	// It is flattened into the entity object on the wire.
	Attrs map[string]any `json:"-" yaml:"attrs,omitempty"`
}

// reserved field names lifted out of the attribute bag on decode.
var reservedFields = map[string]bool{
	"id":          true,
	"type":        true,
	"kind":        true,
	"name":        true,
	"description": true,
	"constraints": true,
}

// Validate checks the entity satisfies the registry's minimal schema.
// Only the id is mandatory; everything else is harvester-supplied.
func (e *Entity) Validate() error {
	if e.ID == "" {
		return errors.NewCandidateError("id", "must not be empty", nil)
	}
	return nil
}

// HasConstraints reports whether the entity carries any constraint facts.
func (e *Entity) HasConstraints() bool {
	return len(e.Constraints) > 0
}

// Constraint returns the constraint of the given type, if recorded.
func (e *Entity) Constraint(ctype string) (Constraint, bool) {
	for _, c := range e.Constraints {
		if c.Type == ctype {
			return c, true
		}
	}
	return Constraint{}, false
}

// Clone returns a deep copy of the entity. Constraint slices and the
// attribute bag are copied; nested bag values are copied recursively.
func (e Entity) Clone() Entity {
	out := e
	if e.Constraints != nil {
		out.Constraints = make([]Constraint, len(e.Constraints))
		copy(out.Constraints, e.Constraints)
	}
	if e.Attrs != nil {
		out.Attrs = cloneValue(e.Attrs).(map[string]any)
	}
	return out
}

// cloneValue deep-copies a decoded JSON value.
func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = cloneValue(item)
		}
		return m
	case []any:
		s := make([]any, len(val))
		for i, item := range val {
			s[i] = cloneValue(item)
		}
		return s
	default:
		return v
	}
}

// MarshalJSON flattens the attribute bag into the entity object.
func (e Entity) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(e.Attrs)+6)
	for k, v := range e.Attrs {
		if reservedFields[k] {
			continue
		}
		doc[k] = v
	}
	doc["id"] = e.ID
	doc["type"] = string(e.Type)
	doc["kind"] = string(e.Kind)
	doc["name"] = e.Name
	if e.Description != "" {
		doc["description"] = e.Description
	}
	if len(e.Constraints) > 0 {
		doc["constraints"] = e.Constraints
	}
	return json.Marshal(doc)
}

// UnmarshalJSON lifts well-known fields out of the object and keeps the
// remainder in the attribute bag.
func (e *Entity) UnmarshalJSON(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	*e = Entity{}
	for key, raw := range doc {
		switch key {
		case "id":
			if err := json.Unmarshal(raw, &e.ID); err != nil {
				return errors.NewParseError("json", "", "entity id must be a string", err)
			}
		case "type":
			if err := json.Unmarshal(raw, &e.Type); err != nil {
				return errors.NewParseError("json", "", "entity type must be a string", err)
			}
		case "kind":
			if err := json.Unmarshal(raw, &e.Kind); err != nil {
				return errors.NewParseError("json", "", "entity kind must be a string", err)
			}
		case "name":
			if err := json.Unmarshal(raw, &e.Name); err != nil {
				return errors.NewParseError("json", "", "entity name must be a string", err)
			}
		case "description":
			if err := json.Unmarshal(raw, &e.Description); err != nil {
				return errors.NewParseError("json", "", "entity description must be a string", err)
			}
		case "constraints":
			if err := json.Unmarshal(raw, &e.Constraints); err != nil {
				return errors.NewParseError("json", "", "entity constraints must be a list of {type, value}", err)
			}
		default:
			var v any
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			if e.Attrs == nil {
				e.Attrs = make(map[string]any)
			}
			e.Attrs[key] = v
		}
	}
	return nil
}

// ParseEntity decodes a single entity from JSON, validating its id.
// Harvest candidates arrive through this path.
func ParseEntity(data []byte) (Entity, error) {
	var e Entity
	if err := json.Unmarshal(data, &e); err != nil {
		return Entity{}, errors.NewCandidateError("", "unparsable JSON", err)
	}
	if err := e.Validate(); err != nil {
		return Entity{}, err
	}
	return e, nil
}

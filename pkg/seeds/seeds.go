// Package seeds ships the built-in list of authoritative infrastructure
// entities. The list is compiled into the binary as YAML and applied
// with the Seeder's authoritative-update policy when bootstrapping or
// refreshing a registry.
package seeds

import (
	_ "embed"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/factmap/pkg/entities"
	"github.com/agentstation/factmap/pkg/errors"
)

//go:embed seeds.yaml
var seedsYAML []byte

// Default returns the built-in seed entities in declaration order.
// The returned slice is freshly decoded, so callers may mutate it.
func Default() ([]entities.Entity, error) {
	var doc struct {
		Entities []seedEntity `yaml:"entities"`
	}
	if err := yaml.Unmarshal(seedsYAML, &doc); err != nil {
		return nil, errors.WrapParse("yaml", "seeds.yaml", err)
	}

	out := make([]entities.Entity, 0, len(doc.Entities))
	for _, s := range doc.Entities {
		e := entities.Entity{
			ID:          s.ID,
			Type:        entities.Type(s.Type),
			Kind:        entities.Kind(s.Kind),
			Name:        s.Name,
			Description: s.Description,
			Constraints: s.Constraints,
			Attrs:       normalizeAttrs(s.Attrs),
		}
		if err := e.Validate(); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// MustDefault returns the built-in seeds or panics. The embedded list is
// validated by tests, so a panic here means a broken build.
func MustDefault() []entities.Entity {
	seeds, err := Default()
	if err != nil {
		panic("embedded seed list is invalid: " + err.Error())
	}
	return seeds
}

// seedEntity is the YAML shape of one seed record.
type seedEntity struct {
	ID          string                `yaml:"id"`
	Type        string                `yaml:"type"`
	Kind        string                `yaml:"kind"`
	Name        string                `yaml:"name"`
	Description string                `yaml:"description"`
	Constraints []entities.Constraint `yaml:"constraints"`
	Attrs       map[string]any        `yaml:"attrs"`
}

// normalizeAttrs folds YAML-decoded values onto the JSON value domain so
// seeded entities compare canonically against harvested ones.
func normalizeAttrs(attrs map[string]any) map[string]any {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case uint64:
		return float64(val)
	case float32:
		return float64(val)
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = normalizeValue(item)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			if key, ok := k.(string); ok {
				m[key] = normalizeValue(item)
			}
		}
		return m
	case []any:
		s := make([]any, len(val))
		for i, item := range val {
			s[i] = normalizeValue(item)
		}
		return s
	default:
		return v
	}
}

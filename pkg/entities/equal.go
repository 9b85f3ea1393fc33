package entities

// Canonical deep equality for registry values. The comparison is
// independent of any serialization library: mapping keys compare
// order-independently, sequences compare order-sensitively (constraint
// and entity order is meaningful), and numbers compare on the JSON value
// domain so an attribute decoded as int by one codec and float64 by
// another still compares equal.

// Equal reports whether two entities are canonically equal.
func Equal(a, b Entity) bool {
	return EqualValue(a.canonical(), b.canonical())
}

// EqualValue reports canonical deep equality between two decoded
// structured values (maps, slices, strings, numbers, bools, nil).
func EqualValue(a, b any) bool {
	a, b = normalize(a), normalize(b)

	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !EqualValue(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bval, present := bv[k]
			if !present || !EqualValue(v, bval) {
				return false
			}
		}
		return true
	default:
		// Unknown scalar kinds fall back to Go equality.
		return a == b
	}
}

// normalize maps a decoded value onto the JSON value domain. YAML
// decoders produce ints and map[any]any where JSON produces float64 and
// map[string]any; folding both here keeps Equal codec-agnostic.
func normalize(v any) any {
	switch val := v.(type) {
	case int:
		return float64(val)
	case int8:
		return float64(val)
	case int16:
		return float64(val)
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	case uint:
		return float64(val)
	case uint8:
		return float64(val)
	case uint16:
		return float64(val)
	case uint32:
		return float64(val)
	case uint64:
		return float64(val)
	case float32:
		return float64(val)
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			key, ok := k.(string)
			if !ok {
				return v
			}
			m[key] = item
		}
		return m
	default:
		return v
	}
}

// canonical reduces an entity to its canonical value-domain form: one
// flat mapping of field name to value, constraints as an ordered
// sequence of {type, value} mappings.
func (e Entity) canonical() map[string]any {
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
		cs := make([]any, len(e.Constraints))
		for i, c := range e.Constraints {
			cs[i] = map[string]any{"type": c.Type, "value": c.Value}
		}
		doc["constraints"] = cs
	}
	return doc
}

package entities

// Constraint is a durable, type-tagged fact attached to an entity, such
// as an account-level access restriction. Once recorded, a constraint of
// a given type survives every subsequent successful merge; the merge
// policies are responsible for never dropping one.
type Constraint struct {
	Type  string `json:"type" yaml:"type"`   // Constraint category, unique within one entity
	Value string `json:"value" yaml:"value"` // Human-readable fact, e.g. "READ ONLY"
}

// Well-known constraint types.
const (
	ConstraintAccess = "access" // Access restriction, e.g. read-only accounts
)

// ConstraintTypes returns the set of constraint types present in order
// of first appearance.
func ConstraintTypes(cs []Constraint) []string {
	seen := make(map[string]bool, len(cs))
	var types []string
	for _, c := range cs {
		if !seen[c.Type] {
			seen[c.Type] = true
			types = append(types, c.Type)
		}
	}
	return types
}

// Package canon provides canonical comparison of registry entities
// behind a small interface. The merge engine only ever asks "are these
// two entities the same fact"; how that answer is computed is an
// implementation detail the caller selects.
//
// Builtin answers in process and is the default. Exec shells out to an
// external JSON transform tool (jq or compatible) and exists for
// operators who want the comparison semantics of their own tooling to
// decide conflicts.
package canon

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"

	"github.com/agentstation/factmap/pkg/entities"
	"github.com/agentstation/factmap/pkg/errors"
)

// Comparator decides canonical equality between two entities.
type Comparator interface {
	// Equal reports whether a and b describe the same fact: mapping
	// keys compare order-independently, sequences order-sensitively.
	Equal(ctx context.Context, a, b entities.Entity) (bool, error)

	// Name identifies the comparison engine for diagnostics.
	Name() string
}

// Builtin compares entities in process using entities.Equal.
type Builtin struct{}

var _ Comparator = Builtin{}

// NewBuiltin returns the in-process comparator.
func NewBuiltin() Builtin {
	return Builtin{}
}

// Name identifies the comparison engine.
func (Builtin) Name() string {
	return "builtin"
}

// Equal reports canonical equality.
func (Builtin) Equal(_ context.Context, a, b entities.Entity) (bool, error) {
	return entities.Equal(a, b), nil
}

// Exec compares entities by canonicalizing both through an external
// JSON tool (`<bin> -S .`, jq-style sorted-keys identity transform) and
// comparing the outputs.
type Exec struct {
	bin string
}

var _ Comparator = (*Exec)(nil)

// NewExec returns a comparator backed by the named binary. It fails
// with a DependencyError when the binary is not on PATH, so a missing
// tool is reported before any registry I/O happens.
func NewExec(bin string) (*Exec, error) {
	if bin == "" {
		bin = "jq"
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return nil, errors.NewDependencyError(bin, "structured-data tool not found on PATH")
	}
	return &Exec{bin: path}, nil
}

// Name identifies the comparison engine.
func (e *Exec) Name() string {
	return e.bin
}

// Equal canonicalizes both entities through the external tool and
// compares the canonical forms byte for byte.
func (e *Exec) Equal(ctx context.Context, a, b entities.Entity) (bool, error) {
	ca, err := e.canonicalize(ctx, a)
	if err != nil {
		return false, err
	}
	cb, err := e.canonicalize(ctx, b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(ca, cb), nil
}

// canonicalize pipes the entity's JSON through `<bin> -S .`.
func (e *Exec) canonicalize(ctx context.Context, ent entities.Entity) ([]byte, error) {
	data, err := json.Marshal(ent)
	if err != nil {
		return nil, errors.WrapParse("json", "", err)
	}

	cmd := exec.CommandContext(ctx, e.bin, "-S", ".")
	cmd.Stdin = bytes.NewReader(data)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, errors.NewDependencyError(e.bin, "canonicalization failed: "+stderr.String())
	}
	return out.Bytes(), nil
}

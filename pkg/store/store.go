// Package store provides persistence for the factmap registry. The
// registry lives in a single JSON file that is loaded and saved
// wholesale; this package is the sole I/O boundary of the system.
//
// Two implementations are provided: File, backed by a JSON file on disk
// with selectable protection against concurrent writers, and Memory, an
// in-memory store for tests and embedding.
package store

import (
	"context"

	"github.com/agentstation/factmap/pkg/entities"
)

// Store loads and saves a registry as a whole.
type Store interface {
	// Load reads the current registry. It fails with
	// errors.ErrRegistryNotFound when no registry exists yet and with a
	// ParseError when the content is not a well-formed registry.
	Load(ctx context.Context) (*entities.Registry, error)

	// Save replaces the stored registry wholesale.
	Save(ctx context.Context, reg *entities.Registry) error

	// Path identifies the backing location for diagnostics.
	Path() string
}

// Locker is implemented by stores that can hold an advisory lock across
// a whole read-compute-write cycle.
type Locker interface {
	// Lock acquires the advisory lock. The returned function releases it.
	Lock(ctx context.Context) (release func(), err error)
}

// LockMode selects how a file store defends against concurrent writers.
type LockMode string

// Lock modes.
const (
	// LockNone performs plain read-modify-write. Two concurrent
	// invocations race and the last writer wins; kept for compatibility
	// with registries managed by external tooling.
	LockNone LockMode = "none"

	// LockFile holds an advisory lock file across the whole
	// read-compute-write cycle.
	LockFile LockMode = "file"

	// LockRevision stamps a revision into the file on save and refuses
	// to overwrite a registry whose revision no longer matches the one
	// loaded, failing with errors.ErrStale instead of losing an update.
	LockRevision LockMode = "revision"
)

// ParseLockMode maps a configuration string onto a LockMode.
func ParseLockMode(s string) (LockMode, bool) {
	switch LockMode(s) {
	case LockNone, LockFile, LockRevision:
		return LockMode(s), true
	case "":
		return LockNone, true
	}
	return LockNone, false
}

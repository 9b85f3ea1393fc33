package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/agentstation/factmap/pkg/entities"
	"github.com/agentstation/factmap/pkg/errors"
	"github.com/agentstation/factmap/pkg/logging"
)

const (
	filePermissions = 0o644
	dirPermissions  = 0o755
)

// File is a Store backed by a single JSON registry file.
type File struct {
	path     string
	lockMode LockMode

	// loadedRevision is the revision of the last registry read, used by
	// LockRevision to detect writes that would clobber someone else's.
	loadedRevision string
}

// Compile-time interface checks.
var (
	_ Store  = (*File)(nil)
	_ Locker = (*File)(nil)
)

// FileOption configures a File store.
type FileOption func(*File)

// WithLockMode selects the concurrency protection for the store.
func WithLockMode(mode LockMode) FileOption {
	return func(f *File) {
		f.lockMode = mode
	}
}

// NewFile creates a file store for the registry at path.
func NewFile(path string, opts ...FileOption) *File {
	f := &File{
		path:     path,
		lockMode: LockNone,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Path returns the registry file path.
func (f *File) Path() string {
	return f.path
}

// Load reads and decodes the registry file.
func (f *File) Load(_ context.Context) (*entities.Registry, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("registry %s: %w", f.path, errors.ErrRegistryNotFound)
		}
		return nil, errors.WrapIO("read", f.path, err)
	}

	var reg entities.Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, errors.NewParseError("json", f.path, "content is not a well-formed registry", err)
	}
	if reg.Entities == nil {
		reg.Entities = []entities.Entity{}
	}

	f.loadedRevision = reg.Revision
	return &reg, nil
}

// Save encodes and writes the registry wholesale. The write goes to a
// temp file in the same directory followed by an atomic rename, so an
// interrupted save never leaves a truncated registry behind.
func (f *File) Save(_ context.Context, reg *entities.Registry) error {
	if f.lockMode == LockRevision {
		if err := f.checkRevision(); err != nil {
			return err
		}
		reg.Revision = uuid.NewString()
	}

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return errors.WrapParse("json", f.path, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return errors.WrapIO("create", dir, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.WrapIO("write", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.WrapIO("close", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, filePermissions); err != nil {
		os.Remove(tmpPath)
		return errors.WrapIO("chmod", tmpPath, err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return errors.WrapIO("rename", f.path, err)
	}

	f.loadedRevision = reg.Revision

	logging.Debug().
		Str("path", f.path).
		Int("entities", reg.Len()).
		Msg("Registry saved")
	return nil
}

// checkRevision refuses the save when the on-disk revision no longer
// matches the one loaded by this store instance.
func (f *File) checkRevision() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			// Nothing on disk; first write wins.
			return nil
		}
		return errors.WrapIO("read", f.path, err)
	}

	var current struct {
		Revision string `json:"revision"`
	}
	if err := json.Unmarshal(data, &current); err != nil {
		return errors.NewParseError("json", f.path, "content is not a well-formed registry", err)
	}
	if current.Revision != f.loadedRevision {
		return fmt.Errorf("registry %s was modified since load: %w", f.path, errors.ErrStale)
	}
	return nil
}

// Lock acquires an advisory lock file next to the registry. Callers in
// LockFile mode hold it across the whole load-compute-save cycle. In
// other modes Lock is a no-op, so callers can always bracket with it.
func (f *File) Lock(_ context.Context) (func(), error) {
	if f.lockMode != LockFile {
		return func() {}, nil
	}

	lockPath := f.path + ".lock"
	if err := os.MkdirAll(filepath.Dir(lockPath), dirPermissions); err != nil {
		return nil, errors.WrapIO("create", filepath.Dir(lockPath), err)
	}

	fh, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, filePermissions)
	if err != nil {
		if os.IsExist(err) {
			return nil, errors.NewIOError("lock", lockPath,
				fmt.Errorf("registry is locked by another process; remove the lock file if that process is gone"))
		}
		return nil, errors.WrapIO("lock", lockPath, err)
	}
	fmt.Fprintf(fh, "%d\n", os.Getpid())
	fh.Close()

	release := func() {
		if err := os.Remove(lockPath); err != nil && !os.IsNotExist(err) {
			logging.Warn().Str("path", lockPath).Err(err).Msg("Failed to release registry lock")
		}
	}
	return release, nil
}

package store

import (
	"context"
	"sync"

	"github.com/agentstation/factmap/pkg/entities"
	"github.com/agentstation/factmap/pkg/errors"
)

// Memory is an in-memory Store, used as a unit-test fake and for
// embedding the merge engine without a filesystem. It deep-copies on
// both Load and Save so callers cannot mutate the stored value behind
// its back.
type Memory struct {
	mu       sync.Mutex
	reg      *entities.Registry
	readOnly bool

	// Saves counts successful Save calls, handy for asserting that skip
	// and conflict paths never write.
	Saves int
}

var _ Store = (*Memory)(nil)

// MemoryOption configures a Memory store.
type MemoryOption func(*Memory)

// WithReadOnly makes every Save fail with errors.ErrReadOnly.
func WithReadOnly() MemoryOption {
	return func(m *Memory) {
		m.readOnly = true
	}
}

// WithRegistry preloads the store with a registry value.
func WithRegistry(reg *entities.Registry) MemoryOption {
	return func(m *Memory) {
		m.reg = reg.Clone()
	}
}

// NewMemory creates an in-memory store. Without WithRegistry, Load
// fails with errors.ErrRegistryNotFound until the first Save.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Path identifies the store for diagnostics.
func (m *Memory) Path() string {
	return "memory"
}

// Load returns a deep copy of the stored registry.
func (m *Memory) Load(_ context.Context) (*entities.Registry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.reg == nil {
		return nil, errors.ErrRegistryNotFound
	}
	return m.reg.Clone(), nil
}

// Save replaces the stored registry with a deep copy of reg.
func (m *Memory) Save(_ context.Context, reg *entities.Registry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.readOnly {
		return errors.ErrReadOnly
	}
	m.reg = reg.Clone()
	m.Saves++
	return nil
}

// Package app provides the application context and dependency management
// for the factmap CLI. It centralizes configuration, logging, and
// construction of the registry store and comparator so commands receive
// their dependencies instead of reaching for globals.
package app

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/factmap/pkg/canon"
	"github.com/agentstation/factmap/pkg/errors"
	"github.com/agentstation/factmap/pkg/store"
)

// App represents the factmap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger
}

// Option configures an App.
type Option func(*App) error

// WithConfig overrides the loaded configuration, mainly for tests.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// New creates a new App instance with the given version information.
func New(version, commit, date string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("app", "loading configuration", err)
	}
	app.config = config

	logger := NewLogger(app.config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version string.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Store builds the registry store from configuration.
func (a *App) Store() (store.Store, error) {
	mode, ok := store.ParseLockMode(a.config.LockMode)
	if !ok {
		return nil, errors.NewConfigError("store", "unknown lock mode "+a.config.LockMode, nil)
	}
	return store.NewFile(a.config.RegistryPath, store.WithLockMode(mode)), nil
}

// Comparator builds the canonical comparator from configuration. The
// external engine fails here, before any registry I/O, when the
// configured tool is missing.
func (a *App) Comparator() (canon.Comparator, error) {
	switch a.config.CompareEngine {
	case "", "builtin":
		return canon.NewBuiltin(), nil
	case "exec":
		return canon.NewExec(a.config.CompareBin)
	default:
		return nil, errors.NewConfigError("comparator", "unknown compare engine "+a.config.CompareEngine, nil)
	}
}

// Package errors provides custom error types for the factmap system.
// These errors enable programmatic error checking, stable process exit
// codes, and improved diagnostics throughout the application.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// As is an alias for the standard library errors.As.
var As = errors.As

// Is is an alias for the standard library errors.Is.
var Is = errors.Is

// Common sentinel errors for the factmap system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrRegistryNotFound indicates the registry file does not exist yet
	ErrRegistryNotFound = errors.New("registry not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict indicates divergent metadata under an already-registered id
	ErrConflict = errors.New("merge conflict")

	// ErrStale indicates the registry changed on disk between load and save
	ErrStale = errors.New("registry revision is stale")

	// ErrReadOnly indicates an attempt to modify a read-only store
	ErrReadOnly = errors.New("read only")
)

// Process exit statuses. Conflicts get their own status so an
// orchestrating agent can tell "needs a human" apart from plain failure.
const (
	ExitOK       = 0
	ExitError    = 1
	ExitConflict = 2
)

// ExitCode maps an error to the process exit status for the CLI.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrConflict):
		return ExitConflict
	default:
		return ExitError
	}
}

// UsageError represents a malformed invocation (wrong arguments, bad flags).
type UsageError struct {
	Command string
	Message string
}

// Error implements the error interface
func (e *UsageError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("usage error in %s: %s", e.Command, e.Message)
	}
	return fmt.Sprintf("usage error: %s", e.Message)
}

// Is implements errors.Is support
func (e *UsageError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewUsageError creates a new UsageError
func NewUsageError(command, message string) *UsageError {
	return &UsageError{Command: command, Message: message}
}

// DependencyError indicates a required external dependency is missing,
// such as the configured structured-data comparison tool.
type DependencyError struct {
	Dependency string
	Message    string
}

// Error implements the error interface
func (e *DependencyError) Error() string {
	return fmt.Sprintf("dependency %s: %s", e.Dependency, e.Message)
}

// NewDependencyError creates a new DependencyError
func NewDependencyError(dependency, message string) *DependencyError {
	return &DependencyError{Dependency: dependency, Message: message}
}

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// CandidateError represents an invalid candidate entity: unparsable
// JSON, or a candidate whose id field is empty or missing.
type CandidateError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface
func (e *CandidateError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid candidate: field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid candidate: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *CandidateError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *CandidateError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewCandidateError creates a new CandidateError
func NewCandidateError(field, message string, err error) *CandidateError {
	return &CandidateError{Field: field, Message: message, Err: err}
}

// ConflictError reports divergent metadata recorded under an id that is
// already registered. The registry is guaranteed untouched; Existing and
// Safe carry both sides for manual resolution. Safe is the candidate
// after constraint-preserving rewriting, so a resolver never sees a
// version of the candidate that would drop recorded constraints.
type ConflictError struct {
	ID       string
	Existing any
	Safe     any
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict for entity %s: existing metadata diverges from candidate", e.ID)
}

// Is implements errors.Is support
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// NewConflictError creates a new ConflictError
func NewConflictError(id string, existing, safe any) *ConflictError {
	return &ConflictError{ID: id, Existing: existing, Safe: safe}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "rename", "lock"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{Operation: operation, Path: path, Message: message, Err: err}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRegistryNotFound checks if an error means the registry file is absent
func IsRegistryNotFound(err error) bool {
	return errors.Is(err, ErrRegistryNotFound)
}

// IsConflict checks if an error is a merge conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsStale checks if an error is a stale-revision error
func IsStale(err error) bool {
	return errors.Is(err, ErrStale)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

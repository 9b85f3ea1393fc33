package merge

import (
	"context"

	"github.com/agentstation/factmap/pkg/canon"
	"github.com/agentstation/factmap/pkg/entities"
	"github.com/agentstation/factmap/pkg/errors"
	"github.com/agentstation/factmap/pkg/logging"
	"github.com/agentstation/factmap/pkg/store"
)

// Outcome is the decision the engine reached for one candidate.
type Outcome string

// Merge outcomes.
const (
	// OutcomeAppended means the candidate's id was new and the entity
	// was added to the registry.
	OutcomeAppended Outcome = "appended"

	// OutcomeSkipped means an equivalent entity is already registered;
	// nothing was written.
	OutcomeSkipped Outcome = "skipped"

	// OutcomeConflict means an entity with the same id exists but its
	// metadata diverges; nothing was written.
	OutcomeConflict Outcome = "conflict"
)

// Result reports what the engine decided for a candidate. On conflict,
// Existing and Safe carry both sides for manual resolution; Safe is the
// candidate after constraint-preserving rewriting.
type Result struct {
	Outcome  Outcome
	ID       string
	Existing *entities.Entity
	Safe     *entities.Entity
}

// Engine applies the conflict-sensitive single-candidate merge policy.
// Identity is by id only, never by content; divergent metadata under one
// id is never resolved automatically, because the registry encodes
// verified facts that an automated merge could corrupt.
type Engine struct {
	store   store.Store
	compare canon.Comparator
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithComparator overrides the canonical comparator, by default the
// in-process one.
func WithComparator(c canon.Comparator) EngineOption {
	return func(e *Engine) {
		e.compare = c
	}
}

// NewEngine creates a merge engine persisting through s.
func NewEngine(s store.Store, opts ...EngineOption) *Engine {
	e := &Engine{
		store:   s,
		compare: canon.NewBuiltin(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MergeOne merges a single candidate into the registry.
//
// A novel id appends the candidate and persists the registry. An
// equivalent existing entity skips with no write; last_updated is not
// bumped on skip, to avoid noisy churn. Divergent metadata returns a
// conflict Result together with a *errors.ConflictError; the registry
// value and its file are left untouched so the caller can reconcile.
//
// If the existing entity carries constraints, the candidate is compared
// (and reported) in its constraint-safe form: its constraints replaced
// by MergeConstraints(existing, candidate), so recorded constraint facts
// can never be dropped by this path.
func (e *Engine) MergeOne(ctx context.Context, reg *entities.Registry, candidate entities.Entity) (Result, error) {
	log := logging.Ctx(ctx)

	if err := candidate.Validate(); err != nil {
		return Result{}, err
	}

	existing := reg.FindByID(candidate.ID)
	if existing == nil {
		reg.Append(candidate.Clone())
		reg.Touch()
		if err := e.store.Save(ctx, reg); err != nil {
			return Result{}, err
		}
		log.Info().
			Str("id", candidate.ID).
			Str("kind", candidate.Kind.String()).
			Msg("Entity appended to registry")
		return Result{Outcome: OutcomeAppended, ID: candidate.ID}, nil
	}

	safe := candidate.Clone()
	if existing.HasConstraints() {
		safe.Constraints = MergeConstraints(existing.Constraints, candidate.Constraints)
	}

	equal, err := e.compare.Equal(ctx, *existing, safe)
	if err != nil {
		return Result{}, err
	}
	if equal {
		log.Debug().
			Str("id", candidate.ID).
			Msg("Candidate already current, skipping")
		return Result{Outcome: OutcomeSkipped, ID: candidate.ID}, nil
	}

	log.Warn().
		Str("id", candidate.ID).
		Msg("Candidate diverges from registered entity")

	existingCopy := existing.Clone()
	res := Result{
		Outcome:  OutcomeConflict,
		ID:       candidate.ID,
		Existing: &existingCopy,
		Safe:     &safe,
	}
	return res, errors.NewConflictError(candidate.ID, &existingCopy, &safe)
}

package rivet

import (
	"github.com/pkg/errors"
)

// Error kinds surfaced by the engine. Callers match with errors.Is; the
// wrapped form carries the relation name, view id, or callback detail.
var (
	// ErrDuplicateRelation is returned by AddRelation when the name is
	// already registered.
	ErrDuplicateRelation = errors.New("relation already exists")

	// ErrUnknownRelation is returned when a relation handle does not
	// resolve against the database it is used with.
	ErrUnknownRelation = errors.New("unknown relation")

	// ErrTypeMismatch is returned when a relation or view handle resolves
	// to an instance of a different element type.
	ErrTypeMismatch = errors.New("element type mismatch")

	// ErrCyclicView is returned by StoreView when the expression references
	// a view that is not yet registered. Registration order is the
	// topological order of view dependencies, so any forward reference
	// would close a cycle.
	ErrCyclicView = errors.New("cyclic view dependency")

	// ErrEvaluation is returned when a user-supplied predicate or
	// projection function panics during evaluation.
	ErrEvaluation = errors.New("evaluation failed")
)

// guard runs fn and converts a panic from a user-supplied callback into an
// ErrEvaluation error. Every evaluation entry point passes through here so
// that a failing callback can never unwind through the stabilization driver
// and leave a view half-updated.
func guard[T any](what string, fn func() ([]T, error)) (out []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = errors.Wrapf(ErrEvaluation, "%s: callback panic: %v", what, r)
		}
	}()
	return fn()
}

package rivet

import (
	"fmt"
	"reflect"
)

// Instance is the staged container backing a relation or view. Tuples move
// through three disjoint sets:
//
//	pending: inserted since the last stabilization step; seen by All but
//	         not yet by delta or stable evaluation
//	recent:  new in the current evaluation round; contributes to delta
//	         computations exactly once
//	stable:  already observed by every view depending on this instance
//
// recent and stable are kept sorted in the canonical order and free of
// duplicates; pending is kept free of duplicates within itself at Insert
// and is deduplicated against recent and stable at stabilization. Content
// only ever grows.
type Instance[T comparable] struct {
	pending []T
	recent  []T
	stable  []T
}

// NewInstance creates an empty instance.
func NewInstance[T comparable]() *Instance[T] {
	return &Instance[T]{}
}

// Insert adds a batch of tuples to the pending set. The batch is
// deduplicated against itself and against tuples already pending;
// duplicates of recent or stable tuples are dropped later, when the
// pending set rolls forward in Stabilize.
func (in *Instance[T]) Insert(batch []T) {
	if len(batch) == 0 {
		return
	}
	seen := make(map[T]struct{}, len(in.pending)+len(batch))
	for _, t := range in.pending {
		seen[t] = struct{}{}
	}
	for _, t := range batch {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		in.pending = append(in.pending, t)
	}
}

// Stabilize advances the staging by one step: recent merges into stable,
// and pending (minus anything already stable) becomes the new recent,
// sorted. Returns true iff the new recent set is non-empty; an instance is
// still changing while successive calls keep returning true.
func (in *Instance[T]) Stabilize() bool {
	in.stable = mergeSorted(in.stable, in.recent)

	fresh := dedupSort(in.pending)
	fresh = subtract(fresh, in.stable)
	in.recent = fresh
	in.pending = nil

	return len(in.recent) > 0
}

// Recent returns the recent set. The returned slice is a read-only borrow;
// callers must not modify it.
func (in *Instance[T]) Recent() []T {
	return in.recent
}

// Stable returns the stable set. The returned slice is a read-only borrow;
// callers must not modify it.
func (in *Instance[T]) Stable() []T {
	return in.stable
}

// All returns the full content of the instance (stable, recent, and
// pending), sorted and deduplicated.
func (in *Instance[T]) All() []T {
	out := mergeSorted(in.stable, in.recent)
	if len(in.pending) > 0 {
		out = mergeSorted(out, dedupSort(in.pending))
	}
	return out
}

// Len returns the number of distinct tuples held across all three sets.
func (in *Instance[T]) Len() int {
	return len(in.All())
}

// Changing reports whether the instance still has tuples that have not
// reached the stable set.
func (in *Instance[T]) Changing() bool {
	return len(in.pending) > 0 || len(in.recent) > 0
}

// instance is the type-erased face an Instance shows to the database, which
// stores instances of differing element types keyed by name.
type instance interface {
	stabilizeStep() bool
	changing() bool
	size() int
	elemType() string
}

func (in *Instance[T]) stabilizeStep() bool { return in.Stabilize() }
func (in *Instance[T]) changing() bool      { return in.Changing() }
func (in *Instance[T]) size() int           { return in.Len() }

func (in *Instance[T]) elemType() string {
	var zero T
	return fmt.Sprintf("%v", reflect.TypeOf(&zero).Elem())
}

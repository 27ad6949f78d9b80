package rivet

import (
	"fmt"

	"github.com/pkg/errors"
)

// Expression is a tree describing how to derive tuples of type T from
// relations, views, and literal singletons. Expressions are values: they
// hold relation names and view ids, not instances, and resolve them against
// a database at evaluation time. The node set is closed; user-supplied
// predicates and projection functions are the only extension points.
//
// Each node supports three evaluation modes, all returning sorted,
// deduplicated tuple slices:
//
//	evalFull:   tuples derivable from the full content of the leaves
//	evalDelta:  tuples newly derivable from the current recent sets,
//	            produced so that each new tuple appears at most once per
//	            stabilization round
//	evalStable: tuples derivable from only the stable portions
type Expression[T comparable] interface {
	fmt.Stringer

	evalFull(db *Database) ([]T, error)
	evalDelta(db *Database) ([]T, error)
	evalStable(db *Database) ([]T, error)

	// collectDeps records the relation names and view ids this expression
	// reads, for StoreView's dependency validation.
	collectDeps(d *depSet)
}

// depSet accumulates the leaves an expression reads.
type depSet struct {
	relations map[string]struct{}
	views     map[int]struct{}
}

func newDepSet() *depSet {
	return &depSet{
		relations: make(map[string]struct{}),
		views:     make(map[int]struct{}),
	}
}

// Relation is a named handle to an instance owned by a database. It is
// itself an expression: it evaluates to the content of its instance.
type Relation[T comparable] struct {
	name string
}

// Name returns the database-scoped relation name.
func (r Relation[T]) Name() string {
	return r.name
}

func (r Relation[T]) String() string {
	return fmt.Sprintf("Relation(%s)", r.name)
}

func (r Relation[T]) evalFull(db *Database) ([]T, error) {
	inst, err := resolveRelation[T](db, r.name)
	if err != nil {
		return nil, err
	}
	return inst.All(), nil
}

func (r Relation[T]) evalDelta(db *Database) ([]T, error) {
	inst, err := resolveRelation[T](db, r.name)
	if err != nil {
		return nil, err
	}
	return inst.Recent(), nil
}

func (r Relation[T]) evalStable(db *Database) ([]T, error) {
	inst, err := resolveRelation[T](db, r.name)
	if err != nil {
		return nil, err
	}
	return inst.Stable(), nil
}

func (r Relation[T]) collectDeps(d *depSet) {
	d.relations[r.name] = struct{}{}
}

// resolveRelation looks a relation name up in the database and downcasts
// its instance to the expected element type.
func resolveRelation[T comparable](db *Database, name string) (*Instance[T], error) {
	raw, ok := db.relations[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownRelation, "relation %q", name)
	}
	inst, ok := raw.(*Instance[T])
	if !ok {
		return nil, errors.Wrapf(ErrTypeMismatch,
			"relation %q holds tuples of type %s", name, raw.elemType())
	}
	return inst, nil
}

// View is a handle to a stored view. As an expression it reads the view's
// materialized instance; it never recurses into the stored expression, which
// is what makes views a caching boundary.
type View[T comparable] struct {
	id int
}

// ID returns the database-scoped view identifier.
func (v View[T]) ID() int {
	return v.id
}

func (v View[T]) String() string {
	return fmt.Sprintf("View(%d)", v.id)
}

func (v View[T]) evalFull(db *Database) ([]T, error) {
	inst, err := resolveView[T](db, v.id)
	if err != nil {
		return nil, err
	}
	return inst.All(), nil
}

func (v View[T]) evalDelta(db *Database) ([]T, error) {
	inst, err := resolveView[T](db, v.id)
	if err != nil {
		return nil, err
	}
	return inst.Recent(), nil
}

func (v View[T]) evalStable(db *Database) ([]T, error) {
	inst, err := resolveView[T](db, v.id)
	if err != nil {
		return nil, err
	}
	return inst.Stable(), nil
}

func (v View[T]) collectDeps(d *depSet) {
	d.views[v.id] = struct{}{}
}

// resolveView looks a view id up in the registry and downcasts its instance
// to the expected element type.
func resolveView[T comparable](db *Database, id int) (*Instance[T], error) {
	if id < 0 || id >= len(db.views) {
		return nil, errors.Wrapf(ErrUnknownRelation, "view %d", id)
	}
	inst, ok := db.views[id].inst().(*Instance[T])
	if !ok {
		return nil, errors.Wrapf(ErrTypeMismatch,
			"view %d holds tuples of type %s", id, db.views[id].inst().elemType())
	}
	return inst, nil
}

// Singleton is a literal one-tuple expression. Its tuple counts as stable
// from the first round and never appears in a delta; views pick it up
// through the registration-time seeding pass instead.
type Singleton[T comparable] struct {
	tuple T
}

// NewSingleton creates a literal singleton expression.
func NewSingleton[T comparable](tuple T) Singleton[T] {
	return Singleton[T]{tuple: tuple}
}

func (s Singleton[T]) String() string {
	return fmt.Sprintf("Singleton(%v)", s.tuple)
}

func (s Singleton[T]) evalFull(*Database) ([]T, error) {
	return []T{s.tuple}, nil
}

func (s Singleton[T]) evalDelta(*Database) ([]T, error) {
	return nil, nil
}

func (s Singleton[T]) evalStable(*Database) ([]T, error) {
	return []T{s.tuple}, nil
}

func (s Singleton[T]) collectDeps(*depSet) {}

package rivet

import (
	"fmt"
)

// storedView is the type-erased face a registered view shows to the
// stabilization driver. Refresh and commit are split so that a sweep can
// compute every view's delta before any view's instance is touched: a
// failing user callback then aborts the sweep with no partial view update
// committed.
type storedView interface {
	refresh(db *Database) (int, error)
	commit()
	discard()
	inst() instance
	describe() string
}

// viewEntry is a registered view: the stored expression, the instance
// materializing its result, and the delta buffered by the current sweep.
type viewEntry[T comparable] struct {
	id       int
	expr     Expression[T]
	instance *Instance[T]
	buffered []T
}

// refresh computes the expression's delta against the current round and
// buffers it for commit.
func (v *viewEntry[T]) refresh(db *Database) (int, error) {
	tuples, err := guard(fmt.Sprintf("view %d", v.id), func() ([]T, error) {
		return v.expr.evalDelta(db)
	})
	if err != nil {
		return 0, err
	}
	v.buffered = tuples
	return len(tuples), nil
}

// commit pushes the buffered delta into the view's pending set, where the
// next sweep rolls it to recent.
func (v *viewEntry[T]) commit() {
	if len(v.buffered) > 0 {
		v.instance.Insert(v.buffered)
	}
	v.buffered = nil
}

func (v *viewEntry[T]) discard() {
	v.buffered = nil
}

func (v *viewEntry[T]) inst() instance {
	return v.instance
}

func (v *viewEntry[T]) describe() string {
	return fmt.Sprintf("View(%d) = %s", v.id, v.expr)
}

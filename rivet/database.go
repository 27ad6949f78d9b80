package rivet

import (
	"time"

	"github.com/pkg/errors"

	"github.com/wbrown/rivet-db/rivet/events"
)

// Options configures a database.
type Options struct {
	// EventHandler receives engine events (sweeps, view refreshes,
	// evaluations). Nil disables event collection entirely.
	EventHandler events.Handler
}

// Database owns named relations and an ordered registry of views, and
// drives the incremental evaluation that keeps the views current.
//
// The database is an exclusive resource: mutations and evaluations are
// synchronous, run to completion on the caller's goroutine, and must not
// overlap. Content grows monotonically; a tuple once inserted is never
// removed.
type Database struct {
	relations map[string]instance
	relOrder  []string
	views     []storedView
	collector *events.Collector
}

// New creates an empty database.
func New() *Database {
	return NewWithOptions(Options{})
}

// NewWithOptions creates an empty database with the given options.
func NewWithOptions(opts Options) *Database {
	return &Database{
		relations: make(map[string]instance),
		collector: events.NewCollector(opts.EventHandler),
	}
}

// Collector exposes the database's event collector.
func (db *Database) Collector() *events.Collector {
	return db.collector
}

// Stats reports the current shape of the database.
type Stats struct {
	Relations int
	Views     int
	Tuples    int // distinct tuples across all relation and view instances
}

// Stats returns counts over the database's relations and views.
func (db *Database) Stats() Stats {
	s := Stats{
		Relations: len(db.relations),
		Views:     len(db.views),
	}
	for _, inst := range db.relations {
		s.Tuples += inst.size()
	}
	for _, v := range db.views {
		s.Tuples += v.inst().size()
	}
	return s
}

// AddRelation registers a new named relation of element type T and returns
// its handle. The name must be non-empty and unique within the database.
func AddRelation[T comparable](db *Database, name string) (Relation[T], error) {
	if name == "" {
		return Relation[T]{}, errors.New("relation name must be non-empty")
	}
	if _, ok := db.relations[name]; ok {
		return Relation[T]{}, errors.Wrapf(ErrDuplicateRelation, "relation %q", name)
	}
	db.relations[name] = NewInstance[T]()
	db.relOrder = append(db.relOrder, name)
	return Relation[T]{name: name}, nil
}

// Insert pushes a batch of tuples into the relation's pending set. It does
// not trigger stabilization; the tuples become visible on the next
// Evaluate or StoreView call.
func Insert[T comparable](db *Database, rel Relation[T], batch []T) error {
	start := time.Now()
	inst, err := resolveRelation[T](db, rel.name)
	if err != nil {
		return err
	}
	inst.Insert(batch)
	if db.collector.Enabled() {
		db.collector.AddTiming(events.InsertApplied, start, map[string]interface{}{
			"relation":    rel.name,
			"tuple.count": len(batch),
		})
	}
	return nil
}

// StoreView registers expr as a view. Every relation and view the
// expression references must already be registered with this database;
// registration order is therefore a topological order of view
// dependencies, and a reference to an unregistered view is rejected as
// cyclic. The new view is seeded with the expression's full result and the
// database is stabilized before the handle is returned, so the view is
// current immediately.
func StoreView[T comparable](db *Database, expr Expression[T]) (View[T], error) {
	deps := newDepSet()
	expr.collectDeps(deps)
	for name := range deps.relations {
		if _, ok := db.relations[name]; !ok {
			return View[T]{}, errors.Wrapf(ErrUnknownRelation, "relation %q", name)
		}
	}
	for id := range deps.views {
		if id < 0 || id >= len(db.views) {
			return View[T]{}, errors.Wrapf(ErrCyclicView, "view %d is not registered", id)
		}
	}

	// Bring everything to rest first so the seed is computed against a
	// fully stable state and later deltas cover only genuinely new tuples.
	if err := db.stabilize(); err != nil {
		return View[T]{}, err
	}

	start := time.Now()
	seed, err := guard("view seed", func() ([]T, error) {
		return expr.evalFull(db)
	})
	if err != nil {
		db.emitError(err)
		return View[T]{}, err
	}

	entry := &viewEntry[T]{
		id:       len(db.views),
		expr:     expr,
		instance: NewInstance[T](),
	}
	entry.instance.Insert(seed)
	db.views = append(db.views, entry)

	if db.collector.Enabled() {
		db.collector.AddTiming(events.ViewSeeded, start, map[string]interface{}{
			"view":        entry.id,
			"expression":  expr.String(),
			"tuple.count": len(seed),
		})
	}

	// Roll the seed through recent into stable so dependents registered
	// later, and the first Evaluate, see a quiet view.
	if err := db.stabilize(); err != nil {
		return View[T]{}, err
	}
	return View[T]{id: entry.id}, nil
}

// Evaluate drives the database to a fixpoint and computes the expression's
// full result against the stabilized state. Tuples are returned
// deduplicated, in the engine's canonical order.
func Evaluate[T comparable](db *Database, expr Expression[T]) (Result[T], error) {
	start := time.Now()
	if db.collector.Enabled() {
		db.collector.AddTiming(events.EvaluateInvoked, start, map[string]interface{}{
			"expression": expr.String(),
		})
	}

	if err := db.stabilize(); err != nil {
		return Result[T]{}, err
	}

	tuples, err := guard("evaluate", func() ([]T, error) {
		return expr.evalFull(db)
	})
	if err != nil {
		db.emitError(err)
		return Result[T]{}, err
	}

	if db.collector.Enabled() {
		db.collector.AddTiming(events.EvaluateCompleted, start, map[string]interface{}{
			"expression":  expr.String(),
			"tuple.count": len(tuples),
		})
	}
	return Result[T]{tuples: tuples}, nil
}

// stabilize is the fixpoint driver: it repeats sweeps until no instance
// changes. One sweep advances every relation instance one staging step,
// refreshes every view with its expression's delta in registration order,
// and advances every view instance one step. Termination follows from
// monotonicity: the reachable tuple domain is bounded by what has been
// inserted, and every sweep only moves tuples forward through the stages.
func (db *Database) stabilize() error {
	rounds := 0
	fixpointStart := time.Now()
	for {
		start := time.Now()
		changed := false

		for _, name := range db.relOrder {
			if db.relations[name].stabilizeStep() {
				changed = true
			}
		}

		// Compute every view's delta before committing any of them. A
		// failing callback aborts the sweep with all view instances
		// untouched.
		for _, v := range db.views {
			count, err := v.refresh(db)
			if err != nil {
				for _, u := range db.views {
					u.discard()
				}
				db.emitError(err)
				return err
			}
			if count > 0 && db.collector.Enabled() {
				db.collector.AddTiming(events.ViewRefreshed, start, map[string]interface{}{
					"view":        v.describe(),
					"delta.count": count,
				})
			}
		}
		for _, v := range db.views {
			v.commit()
		}
		for _, v := range db.views {
			if v.inst().stabilizeStep() {
				changed = true
			}
		}

		if db.collector.Enabled() {
			db.collector.AddTiming(events.SweepComplete, start, map[string]interface{}{
				"round":   rounds,
				"changed": changed,
			})
		}
		rounds++
		if !changed {
			break
		}
	}
	if db.collector.Enabled() {
		db.collector.AddTiming(events.FixpointReached, fixpointStart, map[string]interface{}{
			"rounds": rounds,
		})
	}
	return nil
}

func (db *Database) emitError(err error) {
	if db.collector.Enabled() {
		db.collector.AddTiming(events.ErrorEvaluation, time.Now(), map[string]interface{}{
			"error": err.Error(),
		})
	}
}

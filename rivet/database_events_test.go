package rivet

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wbrown/rivet-db/rivet/events"
)

func TestDatabaseEmitsEvents(t *testing.T) {
	var seen []string
	db := NewWithOptions(Options{
		EventHandler: func(e events.Event) { seen = append(seen, e.Name) },
	})

	r, err := AddRelation[int](db, "r")
	require.NoError(t, err)
	require.NoError(t, Insert(db, r, []int{1, 2}))

	_, err = StoreView[int](db, r)
	require.NoError(t, err)

	// A post-registration insert makes the next stabilization actually
	// refresh the view.
	require.NoError(t, Insert(db, r, []int{3}))

	_, err = Evaluate[int](db, r)
	require.NoError(t, err)

	require.Contains(t, seen, events.InsertApplied)
	require.Contains(t, seen, events.ViewSeeded)
	require.Contains(t, seen, events.ViewRefreshed)
	require.Contains(t, seen, events.FixpointReached)
	require.Contains(t, seen, events.EvaluateInvoked)
	require.Contains(t, seen, events.EvaluateCompleted)

	// The database's own collector retains the history.
	require.NotEmpty(t, db.Collector().Events())
}

func TestDefaultDatabaseCollectsNothing(t *testing.T) {
	db := New()
	r, err := AddRelation[int](db, "r")
	require.NoError(t, err)
	require.NoError(t, Insert(db, r, []int{1}))
	_, err = Evaluate[int](db, r)
	require.NoError(t, err)

	require.Empty(t, db.Collector().Events())
}

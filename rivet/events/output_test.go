package events

import (
	"strings"
	"testing"
	"time"
)

func TestCollectorDisabledWithoutHandler(t *testing.T) {
	c := NewCollector(nil)
	if c.Enabled() {
		t.Error("collector without handler should be disabled")
	}

	c.AddTiming(SweepBegin, time.Now(), nil)
	if len(c.Events()) != 0 {
		t.Error("disabled collector should record nothing")
	}
}

func TestCollectorRecordsAndNotifies(t *testing.T) {
	var handled []Event
	c := NewCollector(func(e Event) { handled = append(handled, e) })

	start := time.Now()
	c.AddTiming(FixpointReached, start, map[string]interface{}{"rounds": 2})
	c.AddTiming(EvaluateCompleted, start, map[string]interface{}{
		"expression":  "Relation(r)",
		"tuple.count": 3,
	})

	if len(handled) != 2 {
		t.Fatalf("expected 2 handled events, got %d", len(handled))
	}
	events := c.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 collected events, got %d", len(events))
	}
	if events[0].Name != FixpointReached {
		t.Errorf("expected %s, got %s", FixpointReached, events[0].Name)
	}
	if events[0].Latency < 0 {
		t.Error("latency should be non-negative")
	}

	c.Reset()
	if len(c.Events()) != 0 {
		t.Error("reset should clear collected events")
	}
}

func TestFormatEvents(t *testing.T) {
	formatter := &OutputFormatter{useColor: false}

	tests := []struct {
		name     string
		event    Event
		contains []string
	}{
		{
			name: "insert",
			event: Event{Name: InsertApplied, Data: map[string]interface{}{
				"relation":    "musicians",
				"tuple.count": 4,
			}},
			contains: []string{"4 Tuples", "musicians"},
		},
		{
			name: "fixpoint",
			event: Event{Name: FixpointReached, Data: map[string]interface{}{
				"rounds": 3,
			}},
			contains: []string{"Fixpoint", "3 sweeps"},
		},
		{
			name: "view refreshed",
			event: Event{Name: ViewRefreshed, Data: map[string]interface{}{
				"view":        "View(0) = Join(Relation(m), Relation(b))",
				"delta.count": 2,
			}},
			contains: []string{"View(0)", "2 Tuples"},
		},
		{
			name: "evaluation error",
			event: Event{Name: ErrorEvaluation, Data: map[string]interface{}{
				"error": "evaluation failed",
			}},
			contains: []string{"failed"},
		},
		{
			name:     "unknown event falls back to generic",
			event:    Event{Name: "custom/event", Data: map[string]interface{}{"k": "v"}},
			contains: []string{"custom/event"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatter.Format(tt.event)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("formatted %q missing %q", got, want)
				}
			}
		})
	}
}

func TestFormatQuietViewRefresh(t *testing.T) {
	formatter := &OutputFormatter{useColor: false}
	got := formatter.Format(Event{Name: ViewRefreshed, Data: map[string]interface{}{
		"view":        "View(1)",
		"delta.count": 0,
	}})
	if got != "" {
		t.Errorf("zero-delta refresh should format to nothing, got %q", got)
	}
}

func TestFormatLatency(t *testing.T) {
	formatter := &OutputFormatter{useColor: false}

	if got := formatter.formatLatency(250 * time.Microsecond); got != "[250µs]" {
		t.Errorf("expected [250µs], got %s", got)
	}
	if got := formatter.formatLatency(1500 * time.Microsecond); got != "[1.5ms]" {
		t.Errorf("expected [1.5ms], got %s", got)
	}
}

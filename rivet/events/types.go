// Package events provides a clean, low-overhead event system for tracking
// stabilization progress and debugging information inside the engine.
package events

import (
	"sync"
	"time"
)

// Event name constants following hierarchical naming pattern
const (
	// Insertion lifecycle
	InsertApplied = "insert/applied"

	// Stabilization sweeps
	SweepBegin      = "sweep/begin"
	SweepComplete   = "sweep/complete"
	FixpointReached = "fixpoint/reached"

	// View maintenance
	ViewStored    = "view/stored"
	ViewSeeded    = "view/seeded"
	ViewRefreshed = "view/refreshed"

	// Evaluation lifecycle
	EvaluateInvoked   = "evaluate/invoked"
	EvaluateCompleted = "evaluate/completed"

	// Errors
	ErrorEvaluation = "error/evaluation"
)

// Event represents a single engine event during insertion, view
// maintenance, or evaluation.
type Event struct {
	Name    string                 // Event name using hierarchical constants above
	Start   time.Time              // Start timestamp
	End     time.Time              // End timestamp
	Latency time.Duration          // Duration (End - Start)
	Data    map[string]interface{} // Additional event-specific data
}

// Handler processes events as they occur.
type Handler func(event Event)

// Collector accumulates events during engine operation.
type Collector struct {
	enabled bool
	handler Handler
	events  []Event
	mu      sync.Mutex
}

// NewCollector creates a new event collector. A nil handler disables the
// collector entirely; recording becomes a no-op.
func NewCollector(handler Handler) *Collector {
	return &Collector{
		enabled: handler != nil,
		handler: handler,
		events:  make([]Event, 0, 64),
	}
}

// Enabled reports whether events will be recorded.
func (c *Collector) Enabled() bool {
	return c != nil && c.enabled
}

// Handler returns the underlying event handler.
func (c *Collector) Handler() Handler {
	return c.handler
}

// Add records a new event.
// Thread-safe for concurrent access.
func (c *Collector) Add(event Event) {
	if !c.Enabled() {
		return
	}

	c.mu.Lock()
	c.events = append(c.events, event)
	c.mu.Unlock()

	// Call handler outside the lock to avoid deadlocks
	if c.handler != nil {
		c.handler(event)
	}
}

// AddTiming records an event with timing information.
func (c *Collector) AddTiming(name string, start time.Time, data map[string]interface{}) {
	if !c.Enabled() {
		return
	}

	end := time.Now()
	c.Add(Event{
		Name:    name,
		Start:   start,
		End:     end,
		Latency: end.Sub(start),
		Data:    data,
	})
}

// Events returns all collected events.
func (c *Collector) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	eventsCopy := make([]Event, len(c.events))
	copy(eventsCopy, c.events)
	return eventsCopy
}

// Reset clears the collector for reuse.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = c.events[:0]
}

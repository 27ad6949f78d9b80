package events

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
)

// OutputFormatter formats events for human-readable display.
type OutputFormatter struct {
	useColor bool
	writer   io.Writer
}

// NewOutputFormatter creates a formatter writing to w. Color is enabled
// only when w is an *os.File on descriptor 1 or 2 (see isTerminal).
func NewOutputFormatter(w io.Writer) *OutputFormatter {
	if w == nil {
		w = os.Stdout
	}

	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = isTerminal(f.Fd())
	}

	return &OutputFormatter{
		useColor: useColor,
		writer:   w,
	}
}

// Handle implements the Handler signature - prints events as they occur.
func (f *OutputFormatter) Handle(event Event) {
	output := f.Format(event)
	if output != "" {
		fmt.Fprintln(f.writer, output)
	}
}

// Format converts an event to a human-readable string.
func (f *OutputFormatter) Format(event Event) string {
	latency := f.formatLatency(event.Latency)

	switch event.Name {
	case InsertApplied:
		return fmt.Sprintf("%s Inserted %s into %v",
			latency,
			f.colorizeCount("Tuples", event.Data["tuple.count"].(int)),
			event.Data["relation"])

	case SweepBegin:
		return fmt.Sprintf("%s %s sweep %d starting",
			latency,
			f.colorize("===", color.FgYellow),
			event.Data["round"].(int))

	case SweepComplete:
		return fmt.Sprintf("%s sweep %d completed, changed=%v",
			latency,
			event.Data["round"].(int),
			event.Data["changed"])

	case FixpointReached:
		return fmt.Sprintf("%s %s Fixpoint after %d sweeps",
			latency,
			f.colorize("===", color.FgGreen),
			event.Data["rounds"].(int))

	case ViewStored:
		return fmt.Sprintf("%s Stored view %v over %v",
			latency,
			event.Data["view"],
			event.Data["expression"])

	case ViewSeeded:
		return fmt.Sprintf("%s Seeded view %v with %s",
			latency,
			event.Data["view"],
			f.colorizeCount("Tuples", event.Data["tuple.count"].(int)))

	case ViewRefreshed:
		count := event.Data["delta.count"].(int)
		if count == 0 {
			return ""
		}
		return fmt.Sprintf("%s View %v %s %s",
			latency,
			event.Data["view"],
			f.colorize("←", color.FgYellow),
			f.colorizeCount("Tuples", count))

	case EvaluateInvoked:
		return fmt.Sprintf("%s Evaluate: %v", latency, event.Data["expression"])

	case EvaluateCompleted:
		return fmt.Sprintf("%s %s Evaluation done with %s",
			latency,
			f.colorize("===", color.FgGreen),
			f.colorizeCount("Tuples", event.Data["tuple.count"].(int)))

	case ErrorEvaluation:
		return fmt.Sprintf("%s %s Evaluation failed: %v",
			latency,
			f.colorize("✗", color.FgRed),
			event.Data["error"])

	default:
		// Generic format for unknown events
		return fmt.Sprintf("%s %s %v", latency, event.Name, event.Data)
	}
}

// formatLatency formats a duration as [XXXms] or [XXXµs] with color coding.
func (f *OutputFormatter) formatLatency(d time.Duration) string {
	// Use microseconds for sub-millisecond durations
	if d < time.Millisecond {
		us := d.Microseconds()
		s := fmt.Sprintf("[%dµs]", us)
		if !f.useColor {
			return s
		}
		return color.GreenString(s)
	}

	// Use floating-point milliseconds to preserve precision
	ms := float64(d.Microseconds()) / 1000.0
	s := fmt.Sprintf("[%.1fms]", ms)

	if !f.useColor {
		return s
	}

	switch {
	case ms < 50:
		return color.GreenString(s)
	case ms < 200:
		return color.YellowString(s)
	default:
		return color.RedString(s)
	}
}

// colorizeCount formats a count with a label, using color based on the
// label type.
func (f *OutputFormatter) colorizeCount(label string, count int) string {
	text := fmt.Sprintf("%d %s", count, label)

	if !f.useColor {
		return text
	}

	switch label {
	case "Tuples":
		return color.MagentaString(text)
	case "Relations", "Views":
		return color.CyanString(text)
	default:
		return text
	}
}

// colorize applies color if enabled.
func (f *OutputFormatter) colorize(text string, attrs ...color.Attribute) string {
	if !f.useColor {
		return text
	}
	return color.New(attrs...).Sprint(text)
}

// ConsoleHandler creates a handler that prints formatted events to stdout.
func ConsoleHandler() Handler {
	formatter := NewOutputFormatter(os.Stdout)
	return formatter.Handle
}

// isTerminal treats the stdout and stderr descriptors as terminals. It does
// not query the descriptor, so a redirected stdout or stderr also counts.
func isTerminal(fd uintptr) bool {
	return fd == uintptr(1) || fd == uintptr(2) // stdout or stderr
}

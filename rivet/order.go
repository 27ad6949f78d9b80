package rivet

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Compare compares two element values and returns:
//
//	-1 if left < right
//	 0 if left == right
//	 1 if left > right
//
// This is the engine's canonical total order. It handles:
// - Basic types: int, int64, float64, string, bool, time.Time
// - Nil values (nil is less than any non-nil value)
// - Type conversions between numeric types
// - Composite tuple types (structs) via a deterministic string rendering
//
// Recent and stable sets are kept sorted in this order so that joins can do
// a linear merge and set operations can merge-scan; evaluation results are
// returned in this order.
func Compare(left, right interface{}) int {
	// Handle nil
	if left == nil && right == nil {
		return 0
	}
	if left == nil {
		return -1
	}
	if right == nil {
		return 1
	}

	// Handle numeric comparisons
	switch l := left.(type) {
	case int:
		return compareNumeric(int64(l), right)
	case int64:
		return compareNumeric(l, right)
	case uint64:
		if r, ok := right.(uint64); ok {
			if l < r {
				return -1
			} else if l > r {
				return 1
			}
			return 0
		}
		return compareNumeric(int64(l), right)
	case float64:
		return compareFloat(l, right)
	case string:
		if r, ok := right.(string); ok {
			return strings.Compare(l, r)
		}
		// String vs non-string: type mismatch
		return -1
	case bool:
		if r, ok := right.(bool); ok {
			if !l && r {
				return -1
			} else if l && !r {
				return 1
			}
			return 0
		}
		// Bool vs non-bool: type mismatch
		return -1
	case time.Time:
		if r, ok := right.(time.Time); ok {
			if l.Before(r) {
				return -1
			} else if l.After(r) {
				return 1
			}
			return 0
		}
		// Time vs non-time: type mismatch
		return -1
	}

	// Fall back to string comparison for composite types. Within one
	// instance every value has the same concrete type, so the rendering is
	// stable and total even though it is not meaningful across types.
	return strings.Compare(stringValue(left), stringValue(right))
}

// compareNumeric compares an int64 with another numeric value
func compareNumeric(left int64, right interface{}) int {
	switch r := right.(type) {
	case int:
		return compareInt64s(left, int64(r))
	case int64:
		return compareInt64s(left, r)
	case uint64:
		return compareInt64s(left, int64(r))
	case float64:
		return compareFloat(float64(left), right)
	}
	// Non-numeric: type mismatch
	return -1
}

// compareFloat compares a float64 with another numeric value
func compareFloat(left float64, right interface{}) int {
	switch r := right.(type) {
	case int:
		return compareFloats(left, float64(r))
	case int64:
		return compareFloats(left, float64(r))
	case float64:
		return compareFloats(left, r)
	}
	// Non-numeric: type mismatch
	return -1
}

// compareInt64s compares two int64 values
func compareInt64s(a, b int64) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

// compareFloats compares two float64 values
func compareFloats(a, b float64) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

// stringValue converts a value to a string for comparison
func stringValue(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", v)
}

// sortTuples sorts a tuple slice in place in the canonical order.
func sortTuples[T comparable](tuples []T) {
	sort.Slice(tuples, func(i, j int) bool {
		return Compare(tuples[i], tuples[j]) < 0
	})
}

// dedupSort returns the distinct tuples of batch, sorted canonically.
// The input slice is not modified.
func dedupSort[T comparable](batch []T) []T {
	if len(batch) == 0 {
		return nil
	}
	seen := make(map[T]struct{}, len(batch))
	out := make([]T, 0, len(batch))
	for _, t := range batch {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sortTuples(out)
	return out
}

// mergeSorted merges two canonically sorted, individually deduplicated
// slices into one sorted deduplicated slice.
func mergeSorted[T comparable](a, b []T) []T {
	if len(a) == 0 {
		return append([]T(nil), b...)
	}
	if len(b) == 0 {
		return append([]T(nil), a...)
	}
	return dedupSort(append(append(make([]T, 0, len(a)+len(b)), a...), b...))
}

// subtract returns the tuples of a that are not members of b.
// The result preserves a's order.
func subtract[T comparable](a, b []T) []T {
	if len(a) == 0 || len(b) == 0 {
		return append([]T(nil), a...)
	}
	drop := make(map[T]struct{}, len(b))
	for _, t := range b {
		drop[t] = struct{}{}
	}
	out := make([]T, 0, len(a))
	for _, t := range a {
		if _, ok := drop[t]; ok {
			continue
		}
		out = append(out, t)
	}
	return out
}

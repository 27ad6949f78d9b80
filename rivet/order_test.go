package rivet

import (
	"testing"
	"time"
)

func TestCompare(t *testing.T) {
	earlier := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	later := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		left     interface{}
		right    interface{}
		expected int
	}{
		{"nil vs nil", nil, nil, 0},
		{"nil vs value", nil, 1, -1},
		{"value vs nil", 1, nil, 1},
		{"int less", 1, 2, -1},
		{"int equal", 3, 3, 0},
		{"int greater", 5, 2, 1},
		{"int vs int64", 2, int64(3), -1},
		{"int vs float", 2, 2.5, -1},
		{"float equal int", 2.0, 2, 0},
		{"string less", "abc", "abd", -1},
		{"string equal", "x", "x", 0},
		{"bool false less true", false, true, -1},
		{"bool equal", true, true, 0},
		{"time before", earlier, later, -1},
		{"time equal", earlier, earlier, 0},
		{"struct fallback equal", struct{ A, B string }{"a", "b"}, struct{ A, B string }{"a", "b"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compare(tt.left, tt.right)
			if got != tt.expected {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.left, tt.right, got, tt.expected)
			}
		})
	}
}

func TestCompareStructOrderIsTotal(t *testing.T) {
	type pair struct {
		Name string
		Band string
	}
	a := pair{"Alice", "X"}
	b := pair{"Bob", "X"}

	if Compare(a, b) >= 0 {
		t.Errorf("expected %v < %v", a, b)
	}
	if Compare(b, a) <= 0 {
		t.Errorf("expected %v > %v", b, a)
	}
	if Compare(a, a) != 0 {
		t.Errorf("expected %v == %v", a, a)
	}
}

func TestDedupSort(t *testing.T) {
	got := dedupSort([]int{3, 1, 2, 3, 1})
	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestDedupSortEmpty(t *testing.T) {
	if got := dedupSort([]string(nil)); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}

func TestMergeSorted(t *testing.T) {
	got := mergeSorted([]int{1, 3, 5}, []int{2, 3, 4})
	want := []int{1, 2, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestSubtract(t *testing.T) {
	got := subtract([]int{1, 2, 3, 4}, []int{2, 4})
	want := []int{1, 3}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

package stats

import (
	"math/rand"
	"testing"
)

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
		ok     bool
	}{
		{"odd count", []float64{1, 2, 3, 4, 5}, 3, true},
		{"even count", []float64{1, 2, 3, 4, 5, 6}, 3.5, true},
		{"single", []float64{42}, 42, true},
		{"empty", nil, 0, false},
		{"unsorted", []float64{5, 1, 4, 2, 3}, 3, true},
		{"fractional", []float64{38.9, 36.2, 40.5}, 38.9, true},
	}
	for _, tt := range tests {
		got, ok := Median(tt.values)
		if ok != tt.ok || got != tt.want {
			t.Errorf("%s: Median(%v) = (%v, %v), want (%v, %v)",
				tt.name, tt.values, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMedian_DoesNotMutateInput(t *testing.T) {
	values := []float64{5, 1, 4, 2, 3}
	Median(values)
	want := []float64{5, 1, 4, 2, 3}
	for i := range values {
		if values[i] != want[i] {
			t.Fatalf("input mutated: %v, want %v", values, want)
		}
	}
}

func TestMedian_OrderInvariant(t *testing.T) {
	values := []float64{12.5, 3, 99, 42, 7.25, 50, 18}
	want, _ := Median(values)

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := make([]float64, len(values))
		copy(shuffled, values)
		r.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		got, _ := Median(shuffled)
		if got != want {
			t.Fatalf("Median(%v) = %v, want %v", shuffled, got, want)
		}
	}
}

func TestMode(t *testing.T) {
	got, ok := Mode(map[string]float64{"Male": 48.9, "Female": 51.1})
	if !ok || got != "Female" {
		t.Errorf("Mode = (%q, %v), want (Female, true)", got, ok)
	}
}

func TestMode_Empty(t *testing.T) {
	_, ok := Mode(map[string]float64{})
	if ok {
		t.Error("Mode of empty map should report absent")
	}
}

func TestMode_TieBreak(t *testing.T) {
	// Equal values resolve to the smallest key, every run.
	for i := 0; i < 50; i++ {
		got, ok := Mode(map[string]int{"b": 10, "a": 10, "c": 10})
		if !ok || got != "a" {
			t.Fatalf("Mode tie = (%q, %v), want (a, true)", got, ok)
		}
	}
}

// Package stats provides the small aggregation primitives the profile
// engine is built on: median of a numeric sequence and mode of a
// frequency mapping.
package stats

import (
	"cmp"
	"sort"
)

// Median returns the median of values, or false if values is empty.
// For an even count the result is the arithmetic mean of the two middle
// elements. The input slice is never mutated.
func Median(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], true
	}
	return (sorted[mid-1] + sorted[mid]) / 2, true
}

// Mode returns the key with the largest value in dist, or false if dist
// is empty. Ties resolve to the smallest key in the key type's natural
// order, so the result is deterministic regardless of map iteration order.
func Mode[K cmp.Ordered, V cmp.Ordered](dist map[K]V) (K, bool) {
	var best K
	var bestVal V
	found := false
	for k, v := range dist {
		switch {
		case !found:
			best, bestVal, found = k, v, true
		case v > bestVal:
			best, bestVal = k, v
		case v == bestVal && k < best:
			best = k
		}
	}
	return best, found
}

package analytics

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean of values, 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Median returns the standard even/odd median of values (average of the two
// middle elements for even length), 0 for an empty slice. The input is not
// modified.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 != 0 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// ReductionPercent returns (initial-discharge)/initial*100, guarded to 0 when
// initial is not positive. Every percentage in the engine goes through this
// guard so empty buckets never produce NaN or Inf.
func ReductionPercent(initial, discharge float64) float64 {
	if initial <= 0 {
		return 0
	}
	return (initial - discharge) / initial * 100
}

// round1 rounds to one decimal place, matching the display precision the
// dashboard uses for percentages.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// scoreValues collects the non-nil scores as float64s.
func scoreValues(scores []*int) []float64 {
	out := make([]float64, 0, len(scores))
	for _, s := range scores {
		if s != nil {
			out = append(out, float64(*s))
		}
	}
	return out
}

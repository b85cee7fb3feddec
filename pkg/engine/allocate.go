package engine

import (
	"math"
)

// Allocate splits a total delta across positions proportionally to their
// weights (typically current absolute notionals). A single weight takes the
// whole delta regardless of its value; a zero weight sum allocates nothing.
func Allocate(total float64, weights []float64) []float64 {
	out := make([]float64, len(weights))
	if len(weights) == 0 {
		return out
	}
	if len(weights) == 1 {
		out[0] = total
		return out
	}

	var sum float64
	for _, w := range weights {
		sum += math.Abs(w)
	}
	if sum <= 0 {
		return out
	}
	for i, w := range weights {
		out[i] = total * math.Abs(w) / sum
	}
	return out
}

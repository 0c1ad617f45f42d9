package selection

import (
	"math"
	"math/rand/v2"
)

// Draw picks one item at random with probability proportional to weight.
// Non-positive and NaN weights never win. It reports false when nothing has
// positive weight.
func Draw[T any](rng *rand.Rand, items []T, weight func(T) float64) (T, bool) {
	var zero T

	weights := make([]float64, len(items))
	var total float64
	for i, item := range items {
		w := weight(item)
		if w <= 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			continue
		}
		weights[i] = w
		total += w
	}
	if total <= 0 {
		return zero, false
	}

	target := rng.Float64() * total
	cumulative := 0.0
	last := -1
	for i, w := range weights {
		if w == 0 {
			continue
		}
		cumulative += w
		last = i
		if target < cumulative {
			return items[i], true
		}
	}

	// Floating point rounding on the final bucket
	return items[last], true
}

// NewRand returns a generator seeded so replays and tests get the same draws.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

package stochastic

import (
	"math"
	"math/rand"
)

// CheckDistribution verifies that weights are finite, non-negative and sum
// to 1 within Epsilon. It returns the offending sum on failure.
func CheckDistribution(weights []float64) (float64, bool) {
	sum := 0.0
	for _, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return w, false
		}
		sum += w
	}
	return sum, math.Abs(sum-1) <= Epsilon
}

// Categorical draws an index with probability proportional to weights.
// The weights must already satisfy CheckDistribution.
func Categorical(rng *rand.Rand, weights []float64) int {
	u := rng.Float64()
	cum := 0.0
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cum += w
		last = i
		if u < cum {
			return i
		}
	}
	// u landed in the rounding gap above the final cumulative sum.
	return last
}

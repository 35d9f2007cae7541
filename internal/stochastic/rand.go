package stochastic

import (
	"math/rand"
	"time"
)

// NewRand returns a deterministic source for seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Source returns a deterministic source when seed is set and a
// clock-seeded one otherwise.
func Source(seed *int64) *rand.Rand {
	if seed != nil {
		return NewRand(*seed)
	}
	return NewRand(time.Now().UnixNano())
}

// OrDefault returns rng, or a clock-seeded source when rng is nil.
func OrDefault(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return Source(nil)
}

// Package poisson generates arrival times of a homogeneous Poisson process.
package poisson

import (
	"math"
	"math/rand"
	"sort"

	"github.com/san-kum/stochsim/internal/stochastic"
)

// Params configures an arrival timeline.
type Params struct {
	// Horizon is the total observation time; arrivals are strictly below it.
	Horizon float64
	// Rate is the expected number of arrivals per unit time (lambda).
	Rate float64
}

func (p Params) Validate() error {
	if !(p.Rate > 0) || math.IsInf(p.Rate, 0) {
		return stochastic.Invalid(stochastic.ErrRate, "rate", p.Rate)
	}
	if p.Horizon < 0 || math.IsNaN(p.Horizon) || math.IsInf(p.Horizon, 0) {
		return stochastic.Invalid(stochastic.ErrHorizon, "horizon", p.Horizon)
	}
	return nil
}

const maxPrealloc = 1 << 20

// capacityHint is the expected arrival count, capped at maxPrealloc.
func capacityHint(rate, horizon float64) int {
	return int(math.Min(rate*horizon, maxPrealloc)) + 1
}

// Timeline is a strictly increasing sequence of arrival times.
type Timeline []float64

// Arrivals accumulates exponential gaps with mean 1/Rate until the running
// sum reaches Horizon and returns every arrival below it.
func Arrivals(rng *rand.Rand, p Params) (Timeline, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	rng = stochastic.OrDefault(rng)
	tl := make(Timeline, 0, capacityHint(p.Rate, p.Horizon))
	t := 0.0
	for {
		gap := rng.ExpFloat64() / p.Rate
		t += gap
		if t >= p.Horizon {
			break
		}
		// A zero gap would break strict ordering.
		if gap == 0 && len(tl) > 0 {
			continue
		}
		tl = append(tl, t)
	}
	return tl, nil
}

// Gaps returns the inter-arrival times, the first measured from zero.
func (tl Timeline) Gaps() []float64 {
	out := make([]float64, len(tl))
	prev := 0.0
	for i, t := range tl {
		out[i] = t - prev
		prev = t
	}
	return out
}

// CountAt returns N(t), the number of arrivals at or before t.
func (tl Timeline) CountAt(t float64) int {
	return sort.Search(len(tl), func(i int) bool { return tl[i] > t })
}

// Interval is one bucket of a binned timeline.
// Occurred is 1 when the interval saw at least one arrival.
type Interval struct {
	End        float64 `json:"end"`
	Events     int     `json:"events"`
	Occurred   int     `json:"occurred"`
	Cumulative int     `json:"cumulative"`
}

// Bin buckets tl into consecutive intervals of width covering [0, horizon).
// The last interval is truncated at horizon; arrivals at or past horizon
// are not counted.
func Bin(tl Timeline, horizon, width float64) ([]Interval, error) {
	if horizon < 0 || math.IsNaN(horizon) || math.IsInf(horizon, 0) {
		return nil, stochastic.Invalid(stochastic.ErrHorizon, "horizon", horizon)
	}
	if !(width > 0) || math.IsInf(width, 0) {
		return nil, stochastic.Invalid(stochastic.ErrShape, "width", width)
	}

	n := int(math.Ceil(horizon / width))
	out := make([]Interval, 0, n)
	idx, cum := 0, 0
	for k := 1; k <= n; k++ {
		end := math.Min(float64(k)*width, horizon)
		if k == n {
			end = horizon
		}
		events := 0
		for idx < len(tl) && tl[idx] < end {
			events++
			idx++
		}
		cum += events
		occurred := 0
		if events > 0 {
			occurred = 1
		}
		out = append(out, Interval{End: end, Events: events, Occurred: occurred, Cumulative: cum})
	}
	return out, nil
}

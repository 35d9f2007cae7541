// Package brownian generates Brownian motion paths in one to three
// dimensions by summing independent Gaussian increments.
package brownian

import (
	"math"
	"math/rand"

	"github.com/san-kum/stochsim/internal/stochastic"
)

// Params configures a path.
type Params struct {
	// Start is the origin; its length sets the dimensionality.
	Start stochastic.Point
	// Scale is the standard deviation of each per-axis increment.
	Scale float64
	// Moves is the number of increments applied after Start.
	Moves int
}

// Validate checks the parameters without drawing any samples.
func (p Params) Validate() error {
	if !stochastic.ValidDim(len(p.Start)) {
		return stochastic.Invalid(stochastic.ErrDimension, "start", len(p.Start))
	}
	if !p.Start.IsValid() {
		return stochastic.Invalid(stochastic.ErrShape, "start", p.Start)
	}
	if p.Scale < 0 || math.IsNaN(p.Scale) || math.IsInf(p.Scale, 0) {
		return stochastic.Invalid(stochastic.ErrScale, "scale", p.Scale)
	}
	if p.Moves < 0 {
		return stochastic.Invalid(stochastic.ErrSteps, "moves", p.Moves)
	}
	return nil
}

// Generate returns Moves+1 points beginning at Start.
func Generate(rng *rand.Rand, p Params) (stochastic.Path, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	rng = stochastic.OrDefault(rng)
	path := make(stochastic.Path, 0, p.Moves+1)
	x := p.Start.Clone()
	path = append(path, x.Clone())

	for i := 0; i < p.Moves; i++ {
		for k := range x {
			x[k] += p.Scale * rng.NormFloat64()
		}
		path = append(path, x.Clone())
	}
	return path, nil
}

// Increments returns the per-move displacement vectors of path.
func Increments(path stochastic.Path) stochastic.Path {
	if len(path) < 2 {
		return nil
	}
	out := make(stochastic.Path, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		out = append(out, path[i].Sub(path[i-1]))
	}
	return out
}

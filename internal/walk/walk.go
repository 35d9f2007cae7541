// Package walk generates lattice random walks in one to three dimensions.
//
// A walk in d dimensions has 2d possible unit moves, ordered
// +x, -x, +y, -y, +z, -z. Each step picks exactly one of them.
package walk

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/stochsim/internal/stochastic"
)

// Site is an integer lattice coordinate.
type Site []int

func (s Site) Clone() Site {
	c := make(Site, len(s))
	copy(c, s)
	return c
}

// Point converts s to float coordinates.
func (s Site) Point() stochastic.Point {
	p := make(stochastic.Point, len(s))
	for i, v := range s {
		p[i] = float64(v)
	}
	return p
}

// Path is the ordered list of visited sites, start first.
type Path []Site

// Points converts p for rendering.
func (p Path) Points() stochastic.Path {
	out := make(stochastic.Path, len(p))
	for i, s := range p {
		out[i] = s.Point()
	}
	return out
}

// Displacement returns the offset of the final site from the start.
func (p Path) Displacement() Site {
	if len(p) == 0 {
		return nil
	}
	first, last := p[0], p[len(p)-1]
	d := make(Site, len(first))
	for i := range first {
		d[i] = last[i] - first[i]
	}
	return d
}

// Params configures a walk.
type Params struct {
	// Start is the first site; its length sets the dimensionality.
	Start Site
	// Probs holds one probability per move, 2*len(Start) entries.
	Probs []float64
	// Steps is the number of moves taken after Start.
	Steps int
}

func (p Params) Validate() error {
	dim := len(p.Start)
	if !stochastic.ValidDim(dim) {
		return stochastic.Invalid(stochastic.ErrDimension, "start", dim)
	}
	if len(p.Probs) != 2*dim {
		return stochastic.Invalid(stochastic.ErrDimension, "probs", len(p.Probs))
	}
	if sum, ok := stochastic.CheckDistribution(p.Probs); !ok {
		return stochastic.Invalid(stochastic.ErrProbability, "probs", sum)
	}
	if p.Steps < 0 {
		return stochastic.Invalid(stochastic.ErrSteps, "steps", p.Steps)
	}
	return nil
}

// Generate returns Steps+1 sites beginning at Start.
func Generate(rng *rand.Rand, p Params) (Path, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	rng = stochastic.OrDefault(rng)
	path := make(Path, 0, p.Steps+1)
	cur := p.Start.Clone()
	path = append(path, cur.Clone())

	for i := 0; i < p.Steps; i++ {
		move := stochastic.Categorical(rng, p.Probs)
		axis, sign := move/2, 1
		if move%2 == 1 {
			sign = -1
		}
		cur[axis] += sign
		path = append(path, cur.Clone())
	}
	return path, nil
}

// Uniform returns the symmetric move probabilities for dim.
func Uniform(dim int) ([]float64, error) {
	if !stochastic.ValidDim(dim) {
		return nil, stochastic.Invalid(stochastic.ErrDimension, "dim", dim)
	}
	probs := make([]float64, 2*dim)
	for i := range probs {
		probs[i] = 1 / float64(2*dim)
	}
	return probs, nil
}

// MoveNames labels the move probabilities for dim, e.g. "+x", "-x".
func MoveNames(dim int) []string {
	axes := []string{"x", "y", "z"}
	names := make([]string, 0, 2*dim)
	for i := 0; i < dim && i < len(axes); i++ {
		names = append(names, fmt.Sprintf("+%s", axes[i]), fmt.Sprintf("-%s", axes[i]))
	}
	return names
}

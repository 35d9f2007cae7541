package brownian

import "github.com/san-kum/stochsim/internal/stochastic"

// Summary holds per-axis statistics of a path.
type Summary struct {
	Final    stochastic.Point
	Mean     stochastic.Point
	Variance stochastic.Point
}

// Summarize computes the final position and per-axis mean and population
// variance of path. An empty path yields a zero Summary.
func Summarize(path stochastic.Path) Summary {
	if len(path) == 0 {
		return Summary{}
	}
	dim := path.Dim()
	n := float64(len(path))

	mean := make(stochastic.Point, dim)
	for _, pt := range path {
		for k := 0; k < dim; k++ {
			mean[k] += pt[k]
		}
	}
	for k := range mean {
		mean[k] /= n
	}

	variance := make(stochastic.Point, dim)
	for _, pt := range path {
		for k := 0; k < dim; k++ {
			d := pt[k] - mean[k]
			variance[k] += d * d
		}
	}
	for k := range variance {
		variance[k] /= n
	}

	return Summary{
		Final:    path[len(path)-1].Clone(),
		Mean:     mean,
		Variance: variance,
	}
}

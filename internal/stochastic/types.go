package stochastic

import "math"

// MaxDim is the highest dimensionality supported by the path generators.
const MaxDim = 3

// Epsilon is the tolerance for "sums to 1" checks on probability vectors.
const Epsilon = 1e-8

// Point is a coordinate tuple with 1 to MaxDim components.
type Point []float64

func (p Point) Clone() Point {
	c := make(Point, len(p))
	copy(c, p)
	return c
}

func (p Point) Dim() int { return len(p) }

func (p Point) IsValid() bool {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (p Point) Sub(other Point) Point {
	result := make(Point, len(p))
	for i := range p {
		if i < len(other) {
			result[i] = p[i] - other[i]
		} else {
			result[i] = p[i]
		}
	}
	return result
}

func (p Point) Norm() float64 {
	sum := 0.0
	for _, v := range p {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Path is an ordered sequence of points, starting at the origin of the run.
type Path []Point

// Dim returns the dimensionality of the first point, or 0 for an empty path.
func (p Path) Dim() int {
	if len(p) == 0 {
		return 0
	}
	return len(p[0])
}

// Axis extracts component i of every point.
func (p Path) Axis(i int) []float64 {
	out := make([]float64, len(p))
	for k, pt := range p {
		if i < len(pt) {
			out[k] = pt[i]
		}
	}
	return out
}

// Bounds returns per-axis minima and maxima.
func (p Path) Bounds() (lo, hi Point) {
	if len(p) == 0 {
		return nil, nil
	}
	lo, hi = p[0].Clone(), p[0].Clone()
	for _, pt := range p[1:] {
		for i := range lo {
			if i >= len(pt) {
				continue
			}
			lo[i] = math.Min(lo[i], pt[i])
			hi[i] = math.Max(hi[i], pt[i])
		}
	}
	return lo, hi
}

// ValidDim reports whether d is a supported dimensionality.
func ValidDim(d int) bool {
	return d >= 1 && d <= MaxDim
}

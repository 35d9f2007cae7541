// Package stochastic holds the vocabulary shared by the process generators.
//
// The generators themselves live in sibling packages and never depend on one
// another:
//
//   - markov: discrete-time Markov chain traces
//   - brownian: Gaussian-increment paths in 1-3 dimensions
//   - poisson: arrival timelines from exponential gaps
//   - walk: lattice random walks in 1-3 dimensions
//
// This package provides the pieces they share: [Point] and [Path], the
// sentinel errors and [ValidationError], the [Epsilon] used for probability
// sums, a seeded [NewRand] constructor and the weighted [Categorical] draw.
//
// # Example
//
//	rng := stochastic.NewRand(42)
//	path, err := brownian.Generate(rng, brownian.Params{
//		Start: stochastic.Point{0, 0},
//		Scale: 1,
//		Moves: 100,
//	})
//
// # Thread Safety
//
// A *rand.Rand is not safe for concurrent use. Every generator call should
// own its source; none of the generators keep state between calls.
package stochastic

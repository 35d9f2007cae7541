// Package markov simulates discrete-time Markov chains over labelled states.
package markov

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/stochsim/internal/stochastic"
)

// Chain is a validated state set with its row-stochastic transition matrix.
type Chain struct {
	states []string
	index  map[string]int
	matrix [][]float64
}

// NewChain validates the state set and transition matrix and copies both.
func NewChain(states []string, matrix [][]float64) (*Chain, error) {
	if len(states) == 0 {
		return nil, stochastic.Invalid(stochastic.ErrShape, "states", 0)
	}

	index := make(map[string]int, len(states))
	for i, s := range states {
		if s == "" {
			return nil, stochastic.Invalid(stochastic.ErrDuplicateState, fmt.Sprintf("states[%d]", i), s)
		}
		if _, dup := index[s]; dup {
			return nil, stochastic.Invalid(stochastic.ErrDuplicateState, fmt.Sprintf("states[%d]", i), s)
		}
		index[s] = i
	}

	if len(matrix) != len(states) {
		return nil, stochastic.Invalid(stochastic.ErrShape, "rows", len(matrix))
	}

	m := make([][]float64, len(matrix))
	for i, row := range matrix {
		if len(row) != len(states) {
			return nil, stochastic.Invalid(stochastic.ErrShape, fmt.Sprintf("row[%d].cols", i), len(row))
		}
		if sum, ok := stochastic.CheckDistribution(row); !ok {
			return nil, stochastic.Invalid(stochastic.ErrNotStochastic, fmt.Sprintf("row[%d]", i), sum)
		}
		m[i] = append([]float64(nil), row...)
	}

	return &Chain{
		states: append([]string(nil), states...),
		index:  index,
		matrix: m,
	}, nil
}

// States returns a copy of the state labels in matrix order.
func (c *Chain) States() []string {
	return append([]string(nil), c.states...)
}

// Len returns the number of states.
func (c *Chain) Len() int { return len(c.states) }

// Index returns the matrix index of state.
func (c *Chain) Index(state string) (int, bool) {
	i, ok := c.index[state]
	return i, ok
}

// Prob returns P(from -> to), or 0 for unknown states.
func (c *Chain) Prob(from, to string) float64 {
	i, ok := c.index[from]
	if !ok {
		return 0
	}
	j, ok := c.index[to]
	if !ok {
		return 0
	}
	return c.matrix[i][j]
}

// Row returns a copy of the transition row for state.
func (c *Chain) Row(state string) ([]float64, error) {
	i, ok := c.index[state]
	if !ok {
		return nil, stochastic.Invalid(stochastic.ErrUnknownState, "state", state)
	}
	return append([]float64(nil), c.matrix[i]...), nil
}

// Step draws the successor of current from its transition row.
func (c *Chain) Step(rng *rand.Rand, current string) (string, error) {
	i, ok := c.index[current]
	if !ok {
		return "", stochastic.Invalid(stochastic.ErrUnknownState, "state", current)
	}
	return c.states[stochastic.Categorical(stochastic.OrDefault(rng), c.matrix[i])], nil
}

// Simulate walks the chain for steps transitions starting at initial.
// The returned trace has steps+1 entries and begins with initial.
func (c *Chain) Simulate(rng *rand.Rand, initial string, steps int) (Trace, error) {
	if steps < 0 {
		return nil, stochastic.Invalid(stochastic.ErrSteps, "steps", steps)
	}
	cur, ok := c.index[initial]
	if !ok {
		return nil, stochastic.Invalid(stochastic.ErrUnknownState, "initial", initial)
	}

	rng = stochastic.OrDefault(rng)
	trace := make(Trace, 0, steps+1)
	trace = append(trace, initial)
	for i := 0; i < steps; i++ {
		cur = stochastic.Categorical(rng, c.matrix[cur])
		trace = append(trace, c.states[cur])
	}
	return trace, nil
}

// Simulate validates states and matrix, then runs the chain.
func Simulate(states []string, matrix [][]float64, initial string, steps int, rng *rand.Rand) (Trace, error) {
	c, err := NewChain(states, matrix)
	if err != nil {
		return nil, err
	}
	return c.Simulate(rng, initial, steps)
}

// Edge is a transition with non-zero probability.
type Edge struct {
	From, To      string
	Prob          float64
	Self          bool
	Bidirectional bool
}

// Edges lists every non-zero transition in row-major order.
func (c *Chain) Edges() []Edge {
	edges := make([]Edge, 0, len(c.states))
	for i, from := range c.states {
		for j, to := range c.states {
			p := c.matrix[i][j]
			if p <= 0 {
				continue
			}
			edges = append(edges, Edge{
				From:          from,
				To:            to,
				Prob:          p,
				Self:          i == j,
				Bidirectional: i != j && c.matrix[j][i] > 0,
			})
		}
	}
	return edges
}

// Empirical returns the observed transition frequencies of trace. Rows for
// states that were never left are all zero.
func (c *Chain) Empirical(trace Trace) ([][]float64, error) {
	n := len(c.states)
	counts := make([][]float64, n)
	for i := range counts {
		counts[i] = make([]float64, n)
	}

	for _, tr := range trace.Transitions() {
		i, ok := c.index[tr.From]
		if !ok {
			return nil, stochastic.Invalid(stochastic.ErrUnknownState, "trace", tr.From)
		}
		j, ok := c.index[tr.To]
		if !ok {
			return nil, stochastic.Invalid(stochastic.ErrUnknownState, "trace", tr.To)
		}
		counts[i][j]++
	}

	for _, row := range counts {
		total := 0.0
		for _, v := range row {
			total += v
		}
		if total == 0 {
			continue
		}
		for j := range row {
			row[j] /= total
		}
	}
	return counts, nil
}

// Occupancy returns the fraction of trace entries spent in each state.
func (c *Chain) Occupancy(trace Trace) (map[string]float64, error) {
	occ := make(map[string]float64, len(c.states))
	for _, s := range c.states {
		occ[s] = 0
	}
	if len(trace) == 0 {
		return occ, nil
	}
	for _, s := range trace {
		if _, ok := c.index[s]; !ok {
			return nil, stochastic.Invalid(stochastic.ErrUnknownState, "trace", s)
		}
		occ[s]++
	}
	for s := range occ {
		occ[s] /= float64(len(trace))
	}
	return occ, nil
}

// MaxDeviation is the largest absolute entry-wise difference between the
// chain's matrix and m.
func (c *Chain) MaxDeviation(m [][]float64) float64 {
	worst := 0.0
	for i := range c.matrix {
		for j := range c.matrix[i] {
			if i < len(m) && j < len(m[i]) {
				worst = math.Max(worst, math.Abs(c.matrix[i][j]-m[i][j]))
			}
		}
	}
	return worst
}

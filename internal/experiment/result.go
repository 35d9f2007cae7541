package experiment

import (
	"github.com/san-kum/stochsim/internal/markov"
	"github.com/san-kum/stochsim/internal/poisson"
	"github.com/san-kum/stochsim/internal/stochastic"
	"github.com/san-kum/stochsim/internal/walk"
)

// Result is the output of one process run in a shape every renderer and
// exporter understands. Only the fields of the run's process are set.
type Result struct {
	Process string
	Seed    int64

	// markov
	Chain *markov.Chain
	Trace markov.Trace

	// brownian and walk; for walk Path mirrors Sites
	Path  stochastic.Path
	Sites walk.Path

	// poisson
	Timeline poisson.Timeline
	Bins     []poisson.Interval
	Horizon  float64

	Metrics map[string]float64
}

// Series is one named numeric column of a result.
type Series struct {
	Name   string
	Values []float64
}

var axisNames = []string{"x", "y", "z"}

// Series returns the plottable columns: state index for markov, one column
// per axis for paths, and N(t) at every arrival for poisson.
func (r *Result) Series() []Series {
	switch r.Process {
	case "markov":
		if r.Chain == nil {
			return nil
		}
		return []Series{{Name: "state", Values: r.Trace.Indices(r.Chain.Index)}}
	case "poisson":
		counts := make([]float64, len(r.Bins))
		for i, b := range r.Bins {
			counts[i] = float64(b.Cumulative)
		}
		events := make([]float64, len(r.Bins))
		for i, b := range r.Bins {
			events[i] = float64(b.Events)
		}
		return []Series{
			{Name: "cumulative", Values: counts},
			{Name: "events", Values: events},
		}
	default:
		out := make([]Series, 0, r.Path.Dim())
		for i := 0; i < r.Path.Dim() && i < len(axisNames); i++ {
			out = append(out, Series{Name: axisNames[i], Values: r.Path.Axis(i)})
		}
		return out
	}
}

// Len returns the number of samples in the result.
func (r *Result) Len() int {
	switch r.Process {
	case "markov":
		return len(r.Trace)
	case "poisson":
		return len(r.Timeline)
	default:
		return len(r.Path)
	}
}

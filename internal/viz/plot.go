package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/stochsim/internal/experiment"
)

type PlotOptions struct {
	Width, Height int
}

// Plot renders a static chart of every series in r. A zero width fits the
// terminal.
func Plot(r *experiment.Result, opts PlotOptions) (string, error) {
	if r == nil || r.Len() == 0 && r.Process != "poisson" {
		return "", ErrNothingToDraw
	}
	if opts.Width <= 0 {
		w, _ := TerminalSize()
		opts.Width = w - 12
	}
	if opts.Height <= 0 {
		opts.Height = 12
	}
	opts.Width = max(opts.Width, 10)

	var b strings.Builder
	switch r.Process {
	case "markov":
		if r.Chain == nil {
			return "", ErrNothingToDraw
		}
		s := r.Series()[0]
		b.WriteString(graph(s.Values, opts, "state index by step"))
		b.WriteString("\n  ")
		for i, name := range r.Chain.States() {
			fmt.Fprintf(&b, "%d=%s ", i, name)
		}
		b.WriteString("\n")
	case "poisson":
		if len(r.Bins) == 0 {
			return "", ErrNothingToDraw
		}
		b.WriteString(graph(staircase(r), opts, "N(t) cumulative arrivals"))
		b.WriteString("\n\n")
		b.WriteString(Bars(r))
	default:
		for _, s := range r.Series() {
			b.WriteString(graph(s.Values, opts, s.Name+" by step"))
			b.WriteString("\n\n")
		}
	}
	return b.String(), nil
}

func graph(values []float64, opts PlotOptions, caption string) string {
	if len(values) == 1 {
		values = []float64{values[0], values[0]}
	}
	return asciigraph.Plot(values,
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.Caption(caption),
	)
}

// staircase samples N(t) at every arrival, starting from N(0)=0.
func staircase(r *experiment.Result) []float64 {
	out := make([]float64, 0, 2*len(r.Timeline)+2)
	out = append(out, 0)
	for i := range r.Timeline {
		out = append(out, float64(i), float64(i+1))
	}
	return append(out, float64(len(r.Timeline)))
}

// Bars renders the per-interval arrival counts as horizontal bars.
func Bars(r *experiment.Result) string {
	var b strings.Builder
	start := 0.0
	for _, bin := range r.Bins {
		fmt.Fprintf(&b, "  [%6.2f, %6.2f) %-3d %s\n", start, bin.End, bin.Events, strings.Repeat("█", bin.Events))
		start = bin.End
	}
	return b.String()
}

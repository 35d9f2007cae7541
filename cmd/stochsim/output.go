package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/stochsim/internal/experiment"
)

const statesPerLine = 16

func printTrajectory(out io.Writer, r *experiment.Result) {
	switch r.Process {
	case "markov":
		fmt.Fprintln(out, "trace:")
		for i := 0; i < len(r.Trace); i += statesPerLine {
			end := min(i+statesPerLine, len(r.Trace))
			fmt.Fprintf(out, "  %4d  %s\n", i, strings.Join(r.Trace[i:end], " -> "))
		}
	case "poisson":
		fmt.Fprintf(out, "arrivals in [0, %g):\n", r.Horizon)
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  N\tTIME\tGAP")
		for i, gap := range r.Timeline.Gaps() {
			fmt.Fprintf(w, "  %d\t%.4f\t%.4f\n", i+1, r.Timeline[i], gap)
		}
		w.Flush()
		fmt.Fprintln(out, "\nintervals (end, occurred, cumulative):")
		for _, b := range r.Bins {
			fmt.Fprintf(out, "  (%g, %d, %d)\n", b.End, b.Occurred, b.Cumulative)
		}
	default:
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprint(w, "  STEP")
		for _, s := range r.Series() {
			fmt.Fprintf(w, "\t%s", strings.ToUpper(s.Name))
		}
		fmt.Fprintln(w)
		for i, p := range r.Path {
			fmt.Fprintf(w, "  %d", i)
			for _, v := range p {
				fmt.Fprintf(w, "\t%.4f", v)
			}
			fmt.Fprintln(w)
		}
		w.Flush()
	}
}

func metricKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func printMetrics(out io.Writer, m map[string]float64) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, k := range metricKeys(m) {
		fmt.Fprintf(w, "  %s\t%.6f\n", k, m[k])
	}
	return w.Flush()
}

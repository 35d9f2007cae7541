package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/stochsim/internal/experiment"
)

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// WriteCSV writes one row per sample. Markov rows carry the state label and
// its matrix index, path rows one column per axis, Poisson rows the arrival
// time, the gap since the previous arrival and N(t).
func WriteCSV(w io.Writer, r *experiment.Result) error {
	cw := csv.NewWriter(w)

	switch r.Process {
	case "markov":
		if r.Chain == nil {
			return ErrNoResult
		}
		cw.Write([]string{"step", "state", "index"})
		for i, s := range r.Trace {
			idx, _ := r.Chain.Index(s)
			cw.Write([]string{strconv.Itoa(i), s, strconv.Itoa(idx)})
		}
	case "poisson":
		cw.Write([]string{"event", "time", "gap", "count"})
		for i, gap := range r.Timeline.Gaps() {
			cw.Write([]string{strconv.Itoa(i + 1), formatFloat(r.Timeline[i]), formatFloat(gap), strconv.Itoa(i + 1)})
		}
	case "brownian", "walk":
		header := []string{"step"}
		for _, s := range r.Series() {
			header = append(header, s.Name)
		}
		cw.Write(header)
		for i, p := range r.Path {
			row := make([]string, 0, len(p)+1)
			row = append(row, strconv.Itoa(i))
			for _, v := range p {
				row = append(row, formatFloat(v))
			}
			cw.Write(row)
		}
	default:
		return fmt.Errorf("export: cannot write process %q", r.Process)
	}

	cw.Flush()
	return cw.Error()
}

// WriteIntervalsCSV writes the per-interval Poisson counts.
func WriteIntervalsCSV(w io.Writer, r *experiment.Result) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"end", "events", "occurred", "cumulative"})
	for _, b := range r.Bins {
		cw.Write([]string{formatFloat(b.End), strconv.Itoa(b.Events), strconv.Itoa(b.Occurred), strconv.Itoa(b.Cumulative)})
	}
	cw.Flush()
	return cw.Error()
}

package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/stochsim/internal/experiment"
	"github.com/san-kum/stochsim/internal/poisson"
)

type ExportData struct {
	Process   string             `json:"process"`
	Seed      int64              `json:"seed"`
	Samples   int                `json:"samples"`
	States    []string           `json:"states,omitempty"`
	Matrix    [][]float64        `json:"matrix,omitempty"`
	Trace     []string           `json:"trace,omitempty"`
	Path      [][]float64        `json:"path,omitempty"`
	Sites     [][]int            `json:"sites,omitempty"`
	Arrivals  []float64          `json:"arrivals,omitempty"`
	Horizon   float64            `json:"horizon,omitempty"`
	Intervals []poisson.Interval `json:"intervals,omitempty"`
	Metrics   map[string]float64 `json:"metrics"`
}

// NewExportData flattens r into its serialisable form.
func NewExportData(r *experiment.Result) ExportData {
	data := ExportData{
		Process: r.Process,
		Seed:    r.Seed,
		Samples: r.Len(),
		Metrics: r.Metrics,
	}
	switch r.Process {
	case "markov":
		if r.Chain != nil {
			data.States = r.Chain.States()
			for _, s := range data.States {
				row, _ := r.Chain.Row(s)
				data.Matrix = append(data.Matrix, row)
			}
		}
		data.Trace = r.Trace
	case "poisson":
		data.Arrivals = r.Timeline
		data.Horizon = r.Horizon
		data.Intervals = r.Bins
	default:
		data.Path = make([][]float64, len(r.Path))
		for i, p := range r.Path {
			data.Path[i] = p
		}
		if r.Sites != nil {
			data.Sites = make([][]int, len(r.Sites))
			for i, s := range r.Sites {
				data.Sites[i] = s
			}
		}
	}
	return data
}

func WriteJSON(w io.Writer, r *experiment.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewExportData(r))
}

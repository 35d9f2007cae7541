package experiment

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/san-kum/stochsim/internal/brownian"
	"github.com/san-kum/stochsim/internal/config"
	"github.com/san-kum/stochsim/internal/markov"
	"github.com/san-kum/stochsim/internal/poisson"
	"github.com/san-kum/stochsim/internal/stochastic"
	"github.com/san-kum/stochsim/internal/walk"
)

// Runner generates one process from its config section.
type Runner func(cfg *config.Config, rng *rand.Rand) (*Result, error)

type Registry struct {
	runners map[string]Runner
}

func NewRegistry() *Registry {
	r := &Registry{runners: make(map[string]Runner)}

	r.runners["markov"] = runMarkov
	r.runners["brownian"] = runBrownian
	r.runners["poisson"] = runPoisson
	r.runners["walk"] = runWalk

	return r
}

// Register adds or replaces a runner.
func (r *Registry) Register(name string, fn Runner) {
	r.runners[name] = fn
}

func (r *Registry) GetRunner(name string) (Runner, error) {
	fn, ok := r.runners[name]
	if !ok {
		return nil, fmt.Errorf("unknown process: %s", name)
	}
	return fn, nil
}

func (r *Registry) ListProcesses() []string {
	names := make([]string, 0, len(r.runners))
	for name := range r.runners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func runMarkov(cfg *config.Config, rng *rand.Rand) (*Result, error) {
	mc := cfg.Markov
	chain, err := markov.NewChain(mc.States, mc.Matrix)
	if err != nil {
		return nil, err
	}
	initial := mc.Initial
	if initial == "" {
		initial = mc.States[0]
	}
	trace, err := chain.Simulate(rng, initial, mc.Steps)
	if err != nil {
		return nil, err
	}

	metrics := map[string]float64{
		"steps": float64(mc.Steps),
	}
	occ, err := chain.Occupancy(trace)
	if err != nil {
		return nil, err
	}
	visited := 0
	for state, frac := range occ {
		metrics["occupancy_"+state] = frac
		if frac > 0 {
			visited++
		}
	}
	metrics["visited"] = float64(visited)

	return &Result{Process: "markov", Chain: chain, Trace: trace, Metrics: metrics}, nil
}

func runBrownian(cfg *config.Config, rng *rand.Rand) (*Result, error) {
	bc := cfg.Brownian
	path, err := brownian.Generate(rng, brownian.Params{
		Start: stochastic.Point(bc.Start),
		Scale: bc.Scale,
		Moves: bc.Moves,
	})
	if err != nil {
		return nil, err
	}

	s := brownian.Summarize(path)
	metrics := make(map[string]float64)
	for i := range s.Final {
		axis := axisNames[i]
		metrics["final_"+axis] = s.Final[i]
		metrics["mean_"+axis] = s.Mean[i]
		metrics["var_"+axis] = s.Variance[i]
	}
	metrics["displacement"] = s.Final.Sub(path[0]).Norm()

	return &Result{Process: "brownian", Path: path, Metrics: metrics}, nil
}

func runPoisson(cfg *config.Config, rng *rand.Rand) (*Result, error) {
	pc := cfg.Poisson
	tl, err := poisson.Arrivals(rng, poisson.Params{Horizon: pc.Horizon, Rate: pc.Rate})
	if err != nil {
		return nil, err
	}
	width := pc.Interval
	if width <= 0 {
		width = config.DefaultInterval
	}
	bins, err := poisson.Bin(tl, pc.Horizon, width)
	if err != nil {
		return nil, err
	}

	metrics := map[string]float64{
		"arrivals": float64(len(tl)),
		"expected": pc.Rate * pc.Horizon,
	}
	if pc.Horizon > 0 {
		metrics["empirical_rate"] = float64(len(tl)) / pc.Horizon
	}
	if len(tl) > 0 {
		metrics["mean_gap"] = tl[len(tl)-1] / float64(len(tl))
	}

	return &Result{
		Process:  "poisson",
		Timeline: tl,
		Bins:     bins,
		Horizon:  pc.Horizon,
		Metrics:  metrics,
	}, nil
}

func runWalk(cfg *config.Config, rng *rand.Rand) (*Result, error) {
	wc := cfg.Walk
	sites, err := walk.Generate(rng, walk.Params{
		Start: walk.Site(wc.Start),
		Probs: wc.Probs,
		Steps: wc.Steps,
	})
	if err != nil {
		return nil, err
	}

	path := sites.Points()
	metrics := make(map[string]float64)
	disp := sites.Displacement()
	for i, d := range disp {
		metrics["displacement_"+axisNames[i]] = float64(d)
	}
	maxDist := 0.0
	for _, pt := range path {
		if d := pt.Sub(path[0]).Norm(); d > maxDist {
			maxDist = d
		}
	}
	metrics["max_distance"] = maxDist
	metrics["distance"] = path[len(path)-1].Sub(path[0]).Norm()

	return &Result{Process: "walk", Sites: sites, Path: path, Metrics: metrics}, nil
}

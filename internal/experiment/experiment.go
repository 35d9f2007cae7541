// Package experiment turns a config into a process run.
package experiment

import (
	"context"
	"log/slog"
	"time"

	"github.com/san-kum/stochsim/internal/config"
	"github.com/san-kum/stochsim/internal/logging"
	"github.com/san-kum/stochsim/internal/stochastic"
)

type Experiment struct {
	cfg      *config.Config
	registry *Registry
	seed     int64
	log      *slog.Logger
}

// New prepares a run of cfg.Process. An unseeded config gets a clock seed,
// which is reported on the result so the run can be repeated.
func New(cfg *config.Config, registry *Registry, log *slog.Logger) *Experiment {
	seed := time.Now().UnixNano()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	if registry == nil {
		registry = NewRegistry()
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Experiment{cfg: cfg, registry: registry, seed: seed, log: log}
}

func (e *Experiment) Seed() int64 { return e.seed }

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	run, err := e.registry.GetRunner(e.cfg.Process)
	if err != nil {
		return nil, err
	}

	e.log.Debug("running process", "process", e.cfg.Process, "seed", e.seed)
	start := time.Now()

	result, err := run(e.cfg, stochastic.NewRand(e.seed))
	if err != nil {
		e.log.Debug("process rejected input", "process", e.cfg.Process, "err", err)
		return nil, err
	}
	result.Seed = e.seed

	e.log.Debug("process complete", "process", e.cfg.Process, "samples", result.Len(), "elapsed", time.Since(start))
	return result, nil
}

package main

import (
	"fmt"
	"math"
	"os"

	"github.com/san-kum/stochsim/internal/config"
	"github.com/san-kum/stochsim/internal/stochastic"
	"github.com/san-kum/stochsim/internal/walk"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// resolveConfig layers defaults, preset, config file and flags, each
// overriding the one before.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	process := ""
	if len(args) > 0 {
		process = args[0]
	}

	var data []byte
	if configFile != "" {
		var err error
		if data, err = os.ReadFile(configFile); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if process == "" {
			var probe struct {
				Process string `yaml:"process"`
			}
			if err := yaml.Unmarshal(data, &probe); err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
			process = probe.Process
		}
	}
	if process == "" {
		process = config.DefaultProcess
	}
	if !knownProcess(process) {
		return nil, fmt.Errorf("unknown process: %s (available: %v)", process, config.Processes)
	}

	cfg := config.DefaultConfig()
	if preset != "" {
		if cfg = config.GetPreset(process, preset); cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(process))
		}
	}
	if data != nil {
		if err := config.Decode(data, cfg); err != nil {
			return nil, err
		}
	}
	cfg.Process = process

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func knownProcess(p string) bool {
	for _, name := range config.Processes {
		if name == p {
			return true
		}
	}
	return false
}

// applies lists which process each process flag belongs to.
var applies = map[string][]string{
	"steps":    {"markov", "brownian", "walk"},
	"scale":    {"brownian"},
	"rate":     {"poisson"},
	"horizon":  {"poisson"},
	"interval": {"poisson"},
	"dim":      {"brownian", "walk"},
	"probs":    {"walk"},
	"start":    {"brownian", "walk"},
	"initial":  {"markov"},
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	changed := func(name string) bool {
		f := flags.Lookup(name)
		if f == nil || !f.Changed {
			return false
		}
		for _, p := range applies[name] {
			if p == cfg.Process {
				return true
			}
		}
		log.Warn("flag ignored for process", "flag", name, "process", cfg.Process)
		return false
	}

	if flags.Changed("seed") {
		cfg.SetSeed(seed)
	}
	if f := flags.Lookup("fps"); f != nil && f.Changed {
		cfg.Render.FPS = fps
	}
	if f := flags.Lookup("width"); f != nil && f.Changed {
		cfg.Render.Width = width
	}
	if f := flags.Lookup("height"); f != nil && f.Changed {
		cfg.Render.Height = height
	}
	if flags.Changed("theme") {
		cfg.Render.Theme = theme
	}

	if changed("steps") {
		switch cfg.Process {
		case "markov":
			cfg.Markov.Steps = steps
		case "brownian":
			cfg.Brownian.Moves = steps
		case "walk":
			cfg.Walk.Steps = steps
		}
	}
	if changed("initial") {
		cfg.Markov.Initial = initial
	}
	if changed("scale") {
		cfg.Brownian.Scale = scale
	}
	if changed("rate") {
		cfg.Poisson.Rate = rate
	}
	if changed("horizon") {
		cfg.Poisson.Horizon = horizon
	}
	if changed("interval") {
		cfg.Poisson.Interval = interval
	}

	if changed("dim") {
		if !stochastic.ValidDim(dim) {
			return stochastic.Invalid(stochastic.ErrDimension, "dim", dim)
		}
		switch cfg.Process {
		case "brownian":
			cfg.Brownian.Start = make([]float64, dim)
		case "walk":
			cfg.Walk.Start = make([]int, dim)
			u, err := walk.Uniform(dim)
			if err != nil {
				return err
			}
			cfg.Walk.Probs = u
		}
	}
	if changed("start") {
		switch cfg.Process {
		case "brownian":
			cfg.Brownian.Start = append([]float64(nil), start...)
		case "walk":
			sites := make([]int, len(start))
			for i, v := range start {
				if v != math.Trunc(v) || v < math.MinInt32 || v > math.MaxInt32 {
					return fmt.Errorf("walk start must be an integer in int32 range, got %v", v)
				}
				sites[i] = int(v)
			}
			cfg.Walk.Start = sites
		}
	}
	if changed("probs") {
		cfg.Walk.Probs = append([]float64(nil), probs...)
	}
	return nil
}

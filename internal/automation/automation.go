// Package automation runs scripted sequences of process runs from YAML.
package automation

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/san-kum/stochsim/internal/config"
	"github.com/san-kum/stochsim/internal/experiment"
	"github.com/san-kum/stochsim/internal/export"
	"github.com/san-kum/stochsim/internal/logging"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted run sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run. Preset, when set, is the base config;
// Params are decoded over the process section and SaveAs, when set, is
// an export path whose extension picks the format.
type ScenarioStep struct {
	Name    string         `yaml:"name"`
	Process string         `yaml:"process"`
	Preset  string         `yaml:"preset"`
	Seed    *int64         `yaml:"seed"`
	Params  map[string]any `yaml:"params"`
	SaveAs  string         `yaml:"save_as"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// Config resolves the step into a full config.
func (s ScenarioStep) Config() (*config.Config, error) {
	var cfg *config.Config
	if s.Preset != "" {
		if cfg = config.GetPreset(s.Process, s.Preset); cfg == nil {
			return nil, fmt.Errorf("unknown preset %s/%s", s.Process, s.Preset)
		}
	} else {
		cfg = config.DefaultConfig()
		cfg.Process = s.Process
	}
	if err := cfg.Apply(s.Process, s.Params); err != nil {
		return nil, err
	}
	if s.Seed != nil {
		cfg.SetSeed(*s.Seed)
	}
	return cfg, nil
}

// RunScenario executes all steps in order, stopping at the first failure
// or when ctx is done. Results of the completed steps are returned either
// way.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, log *slog.Logger) ([]*experiment.Result, error) {
	if log == nil {
		log = logging.Discard()
	}
	results := make([]*experiment.Result, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		log.Info("running step", "step", i+1, "of", len(scenario.Steps), "name", step.Name, "process", step.Process)

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		result, err := experiment.New(cfg, registry, log).Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		if step.SaveAs != "" {
			f, err := export.FormatFromPath(step.SaveAs)
			if err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}
			if err := export.WriteFile(step.SaveAs, f, result); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			log.Info("saved step output", "step", i+1, "path", step.SaveAs)
		}

		results = append(results, result)
	}

	return results, nil
}

// ParameterSweep runs one process across evenly spaced values of a single
// numeric parameter, every run with the same seed.
type ParameterSweep struct {
	Process   string
	Preset    string
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Seed      int64
}

type SweepResult struct {
	ParamValue float64
	Samples    int
	Metrics    map[string]float64
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *experiment.Registry, log *slog.Logger) ([]SweepResult, error) {
	if log == nil {
		log = logging.Discard()
	}
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}
	results := make([]SweepResult, 0, sweep.NumSteps)

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	for i := 0; i < sweep.NumSteps; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		paramVal := sweep.ParamMin + float64(i)*paramStep

		step := ScenarioStep{
			Process: sweep.Process,
			Preset:  sweep.Preset,
			Seed:    &sweep.Seed,
			Params:  map[string]any{sweep.ParamName: paramVal},
		}
		cfg, err := step.Config()
		if err != nil {
			return results, err
		}
		result, err := experiment.New(cfg, registry, log).Run(ctx)
		if err != nil {
			return results, fmt.Errorf("%s=%g: %w", sweep.ParamName, paramVal, err)
		}

		results = append(results, SweepResult{
			ParamValue: paramVal,
			Samples:    result.Len(),
			Metrics:    result.Metrics,
		})
		log.Debug("sweep point", "index", i+1, "of", sweep.NumSteps, sweep.ParamName, paramVal)
	}

	return results, nil
}

// MonteCarloConfig repeats one configuration over consecutive seeds.
type MonteCarloConfig struct {
	Process   string
	Preset    string
	Params    map[string]any
	NumTrials int
	Seed      int64
}

// MetricStats summarises one metric across trials.
type MetricStats struct {
	Mean, Variance, Min, Max float64
}

type MonteCarloResult struct {
	Trials int
	Seeds  []int64
	Stats  map[string]MetricStats
}

// RunMonteCarlo runs cfg.NumTrials independent trials with seeds Seed,
// Seed+1, ... and aggregates every reported metric.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, registry *experiment.Registry, log *slog.Logger) (*MonteCarloResult, error) {
	if log == nil {
		log = logging.Discard()
	}
	if cfg.NumTrials < 1 {
		return nil, fmt.Errorf("monte carlo needs at least one trial, got %d", cfg.NumTrials)
	}

	samples := make(map[string][]float64)
	seeds := make([]int64, 0, cfg.NumTrials)
	for trial := 0; trial < cfg.NumTrials; trial++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		seed := cfg.Seed + int64(trial)
		step := ScenarioStep{Process: cfg.Process, Preset: cfg.Preset, Seed: &seed, Params: cfg.Params}
		c, err := step.Config()
		if err != nil {
			return nil, err
		}
		result, err := experiment.New(c, registry, log).Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("trial %d: %w", trial, err)
		}
		for k, v := range result.Metrics {
			samples[k] = append(samples[k], v)
		}
		seeds = append(seeds, seed)

		if (trial+1)%100 == 0 {
			log.Debug("monte carlo progress", "done", trial+1, "of", cfg.NumTrials)
		}
	}

	out := &MonteCarloResult{Trials: cfg.NumTrials, Seeds: seeds, Stats: make(map[string]MetricStats, len(samples))}
	for k, vs := range samples {
		out.Stats[k] = summarize(vs)
	}
	return out, nil
}

func summarize(vs []float64) MetricStats {
	s := MetricStats{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, v := range vs {
		s.Mean += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Mean /= float64(len(vs))
	for _, v := range vs {
		s.Variance += (v - s.Mean) * (v - s.Mean)
	}
	s.Variance /= float64(len(vs))
	return s
}

package experiment

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/san-kum/stochsim/internal/config"
	"github.com/san-kum/stochsim/internal/stochastic"
)

func TestRunEveryPreset(t *testing.T) {
	for process := range config.Presets {
		for _, name := range config.ListPresets(process) {
			t.Run(process+"/"+name, func(t *testing.T) {
				cfg := config.GetPreset(process, name)
				result, err := New(cfg, nil, nil).Run(context.Background())
				if err != nil {
					t.Fatalf("run failed: %v", err)
				}
				if result.Process != process {
					t.Errorf("expected process %s, got %s", process, result.Process)
				}
				if result.Seed != *cfg.Seed {
					t.Errorf("expected seed %d, got %d", *cfg.Seed, result.Seed)
				}
				if len(result.Metrics) == 0 {
					t.Error("expected metrics")
				}
				if len(result.Series()) == 0 {
					t.Error("expected at least one series")
				}
			})
		}
	}
}

func TestRunDeterministic(t *testing.T) {
	cfg := config.GetPreset("brownian", "2d")

	a, err := New(cfg, nil, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	b, err := New(cfg, nil, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(a.Path) != len(b.Path) {
		t.Fatal("path lengths differ")
	}
	for i := range a.Path {
		for k := range a.Path[i] {
			if a.Path[i][k] != b.Path[i][k] {
				t.Fatalf("point %d differs", i)
			}
		}
	}
}

func TestRunUnseededReportsSeed(t *testing.T) {
	cfg := config.DefaultConfig()
	exp := New(cfg, nil, nil)

	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Seed != exp.Seed() {
		t.Error("result seed does not match experiment seed")
	}

	cfg.SetSeed(result.Seed)
	again, err := New(cfg, nil, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for i := range result.Trace {
		if result.Trace[i] != again.Trace[i] {
			t.Fatal("reported seed did not reproduce the trace")
		}
	}
}

func TestRunValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   error
	}{
		{"markov row sum", func(c *config.Config) {
			c.Process = "markov"
			c.Markov.Matrix[0] = []float64{0.5, 0.5, 0.1, 0}
		}, stochastic.ErrNotStochastic},
		{"poisson rate", func(c *config.Config) {
			c.Process = "poisson"
			c.Poisson.Rate = 0
		}, stochastic.ErrRate},
		{"brownian dim", func(c *config.Config) {
			c.Process = "brownian"
			c.Brownian.Start = []float64{0, 0, 0, 0}
		}, stochastic.ErrDimension},
		{"walk probs", func(c *config.Config) {
			c.Process = "walk"
			c.Walk.Probs = []float64{0.2, 0.2, 0.2, 0.2}
		}, stochastic.ErrProbability},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(cfg)
			cfg.SetSeed(1)
			_, err := New(cfg, nil, nil).Run(context.Background())
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestRunUnknownProcess(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Process = "lorenz"
	if _, err := New(cfg, nil, nil).Run(context.Background()); err == nil {
		t.Error("expected error for unknown process")
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(config.DefaultConfig(), nil, nil).Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	names := r.ListProcesses()
	want := []string{"brownian", "markov", "poisson", "walk"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expected %v, got %v", want, names)
		}
	}

	r.Register("constant", func(cfg *config.Config, rng *rand.Rand) (*Result, error) {
		return &Result{Process: "constant", Path: stochastic.Path{{1}}}, nil
	})
	if _, err := r.GetRunner("constant"); err != nil {
		t.Errorf("registered runner not found: %v", err)
	}
}

func TestSeriesShapes(t *testing.T) {
	cfg := config.GetPreset("walk", "3d")
	result, err := New(cfg, nil, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	series := result.Series()
	if len(series) != 3 {
		t.Fatalf("expected 3 series, got %d", len(series))
	}
	if series[2].Name != "z" || len(series[2].Values) != 31 {
		t.Errorf("unexpected z series: %+v", series[2])
	}
	if result.Metrics["distance"] < 0 {
		t.Error("negative distance")
	}
}

func TestRunCustomStatesWithoutInitial(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.SetSeed(5)
	if err := config.Decode([]byte("markov:\n  states: [x, y]\n  matrix: [[0.5, 0.5], [0.5, 0.5]]\n"), cfg); err != nil {
		t.Fatal(err)
	}
	result, err := New(cfg, nil, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Trace[0] != "x" {
		t.Errorf("trace starts at %q, want first state x", result.Trace[0])
	}
}

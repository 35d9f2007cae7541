package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

const (
	DefaultProcess  = "markov"
	DefaultSteps    = 10
	DefaultMoves    = 100
	DefaultScale    = 1.0
	DefaultHorizon  = 10.0
	DefaultRate     = 1.0
	DefaultInterval = 1.0
	DefaultWalkLen  = 50
	DefaultFPS      = 10
	DefaultWidth    = 60
	DefaultHeight   = 18
	DefaultTheme    = "cyberpunk"
)

// Processes lists the process names understood by the config layer.
var Processes = []string{"markov", "brownian", "poisson", "walk"}

type Config struct {
	Process  string         `yaml:"process"`
	Seed     *int64         `yaml:"seed,omitempty"`
	Markov   MarkovConfig   `yaml:"markov"`
	Brownian BrownianConfig `yaml:"brownian"`
	Poisson  PoissonConfig  `yaml:"poisson"`
	Walk     WalkConfig     `yaml:"walk"`
	Render   RenderConfig   `yaml:"render"`
}

type MarkovConfig struct {
	States  []string    `yaml:"states" mapstructure:"states"`
	Matrix  [][]float64 `yaml:"matrix" mapstructure:"matrix"`
	Initial string      `yaml:"initial" mapstructure:"initial"` // empty means the first state
	Steps   int         `yaml:"steps" mapstructure:"steps"`
}

type BrownianConfig struct {
	Start []float64 `yaml:"start" mapstructure:"start"`
	Scale float64   `yaml:"scale" mapstructure:"scale"`
	Moves int       `yaml:"moves" mapstructure:"moves"`
}

type PoissonConfig struct {
	Horizon  float64 `yaml:"horizon" mapstructure:"horizon"`
	Rate     float64 `yaml:"rate" mapstructure:"rate"`
	Interval float64 `yaml:"interval" mapstructure:"interval"`
}

type WalkConfig struct {
	Start []int     `yaml:"start" mapstructure:"start"`
	Probs []float64 `yaml:"probs" mapstructure:"probs"`
	Steps int       `yaml:"steps" mapstructure:"steps"`
}

type RenderConfig struct {
	Animate bool   `yaml:"animate" mapstructure:"animate"`
	Output  string `yaml:"output" mapstructure:"output"`
	Theme   string `yaml:"theme" mapstructure:"theme"`
	FPS     int    `yaml:"fps" mapstructure:"fps"`
	Width   int    `yaml:"width" mapstructure:"width"`
	Height  int    `yaml:"height" mapstructure:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Process: DefaultProcess,
		Markov: MarkovConfig{
			States: []string{"A", "B", "C", "D"},
			Matrix: [][]float64{
				{0.15, 0.7, 0.15, 0},
				{0.15, 0.05, 0.6, 0.2},
				{0.3, 0.1, 0.5, 0.1},
				{0, 0.4, 0.1, 0.5},
			},
			Steps: DefaultSteps,
		},
		Brownian: BrownianConfig{
			Start: []float64{0},
			Scale: DefaultScale,
			Moves: DefaultMoves,
		},
		Poisson: PoissonConfig{
			Horizon:  DefaultHorizon,
			Rate:     DefaultRate,
			Interval: DefaultInterval,
		},
		Walk: WalkConfig{
			Start: []int{0, 0},
			Probs: []float64{0.25, 0.25, 0.25, 0.25},
			Steps: DefaultWalkLen,
		},
		Render: RenderConfig{
			Theme:  DefaultTheme,
			FPS:    DefaultFPS,
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
	}
}

// Load reads a YAML config on top of DefaultConfig.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := Decode(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode overlays YAML data onto cfg; keys absent from data keep their
// current values.
func Decode(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	var probe struct {
		Markov map[string]any `yaml:"markov"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	cfg.Markov.resetInitial(probe.Markov)
	return nil
}

// resetInitial drops an inherited initial state when keys replace the
// state set without naming one, so the chain starts from its first state.
func (m *MarkovConfig) resetInitial(keys map[string]any) {
	_, states := keys["states"]
	_, initial := keys["initial"]
	if states && !initial {
		m.Initial = ""
	}
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Apply decodes a free-form parameter map into the section for process.
// Keys not present in params keep their current values.
func (c *Config) Apply(process string, params map[string]any) error {
	var target any
	switch process {
	case "markov":
		target = &c.Markov
	case "brownian":
		target = &c.Brownian
	case "poisson":
		target = &c.Poisson
	case "walk":
		target = &c.Walk
	case "render":
		target = &c.Render
	default:
		return fmt.Errorf("unknown process: %s", process)
	}
	if len(params) == 0 {
		return nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		ZeroFields:       true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(params); err != nil {
		return fmt.Errorf("%s params: %w", process, err)
	}
	if process == "markov" {
		c.Markov.resetInitial(params)
	}
	return nil
}

// SetSeed records an explicit seed.
func (c *Config) SetSeed(v int64) {
	c.Seed = &v
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	if c.Seed != nil {
		out.SetSeed(*c.Seed)
	}
	out.Markov.States = append([]string(nil), c.Markov.States...)
	out.Markov.Matrix = make([][]float64, len(c.Markov.Matrix))
	for i, row := range c.Markov.Matrix {
		out.Markov.Matrix[i] = append([]float64(nil), row...)
	}
	out.Brownian.Start = append([]float64(nil), c.Brownian.Start...)
	out.Walk.Start = append([]int(nil), c.Walk.Start...)
	out.Walk.Probs = append([]float64(nil), c.Walk.Probs...)
	return &out
}

package config

import "sort"

var Presets = map[string]map[string]*Config{
	"markov": {
		"abcd": preset("markov", 42, func(c *Config) {
			c.Markov.Steps = 15
		}),
		"weather": preset("markov", 7, func(c *Config) {
			c.Markov = MarkovConfig{
				States: []string{"sunny", "cloudy", "rainy"},
				Matrix: [][]float64{
					{0.7, 0.2, 0.1},
					{0.3, 0.4, 0.3},
					{0.2, 0.4, 0.4},
				},
				Initial: "sunny",
				Steps:   30,
			}
		}),
		"coin": preset("markov", 1, func(c *Config) {
			c.Markov = MarkovConfig{
				States:  []string{"H", "T"},
				Matrix:  [][]float64{{0.5, 0.5}, {0.5, 0.5}},
				Initial: "H",
				Steps:   20,
			}
		}),
	},
	"brownian": {
		"1d": preset("brownian", 42, func(c *Config) {
			c.Brownian = BrownianConfig{Start: []float64{0}, Scale: 1, Moves: 100}
		}),
		"2d": preset("brownian", 42, func(c *Config) {
			c.Brownian = BrownianConfig{Start: []float64{0, 0}, Scale: 2, Moves: 100}
			c.Render.Animate = true
		}),
		"3d": preset("brownian", 42, func(c *Config) {
			c.Brownian = BrownianConfig{Start: []float64{0, 0, 0}, Scale: 3, Moves: 100}
			c.Render.Animate = true
		}),
	},
	"poisson": {
		"default": preset("poisson", 42, func(c *Config) {
			c.Poisson = PoissonConfig{Horizon: 10, Rate: 1.5, Interval: 1}
		}),
		"busy": preset("poisson", 3, func(c *Config) {
			c.Poisson = PoissonConfig{Horizon: 60, Rate: 4, Interval: 5}
		}),
	},
	"walk": {
		"1d": preset("walk", 42, func(c *Config) {
			c.Walk = WalkConfig{Start: []int{10}, Probs: []float64{0.6, 0.4}, Steps: 30}
		}),
		"2d": preset("walk", 123, func(c *Config) {
			c.Walk = WalkConfig{Start: []int{10, 5}, Probs: []float64{0.3, 0.2, 0.3, 0.2}, Steps: 30}
			c.Render.Animate = true
		}),
		"3d": preset("walk", 7, func(c *Config) {
			c.Walk = WalkConfig{Start: []int{10, 5, 3}, Probs: []float64{0.15, 0.25, 0.2, 0.2, 0.1, 0.1}, Steps: 30}
			c.Render.Animate = true
		}),
	},
}

func preset(process string, seed int64, fn func(*Config)) *Config {
	c := DefaultConfig()
	c.Process = process
	c.SetSeed(seed)
	fn(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(process, name string) *Config {
	processPresets, ok := Presets[process]
	if !ok {
		return nil
	}
	cfg, ok := processPresets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// ListPresets returns the preset names for process in sorted order.
func ListPresets(process string) []string {
	processPresets, ok := Presets[process]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(processPresets))
	for name := range processPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

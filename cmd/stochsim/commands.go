package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/stochsim/internal/automation"
	"github.com/san-kum/stochsim/internal/config"
	"github.com/san-kum/stochsim/internal/experiment"
	"github.com/san-kum/stochsim/internal/export"
	"github.com/san-kum/stochsim/internal/viz"
	"github.com/spf13/cobra"
)

// generate resolves the config for cmd and runs it once.
func generate(cmd *cobra.Command, args []string) (*config.Config, *experiment.Result, error) {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return nil, nil, err
	}
	result, err := experiment.New(cfg, registry, log).Run(cmd.Context())
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", cfg.Process, err)
	}
	return cfg, result, nil
}

func runProcess(cmd *cobra.Command, args []string) error {
	start := time.Now()
	_, result, err := generate(cmd, args)
	if err != nil {
		return err
	}

	fmt.Printf("%s (seed %d, %d samples, %v)\n\n", result.Process, result.Seed, result.Len(), time.Since(start).Round(time.Microsecond))
	printTrajectory(os.Stdout, result)
	fmt.Println("\nmetrics:")
	return printMetrics(os.Stdout, result.Metrics)
}

func plotProcess(cmd *cobra.Command, args []string) error {
	cfg, result, err := generate(cmd, args)
	if err != nil {
		return err
	}
	opts := viz.PlotOptions{Height: cfg.Render.Height / 2}
	if cmd.Flags().Changed("width") {
		opts.Width = cfg.Render.Width
	}
	out, err := viz.Plot(result, opts)
	if err != nil {
		return err
	}
	fmt.Printf("%s (seed %d)\n\n%s", result.Process, result.Seed, out)
	return nil
}

func animateProcess(cmd *cobra.Command, args []string) error {
	cfg, result, err := generate(cmd, args)
	if err != nil {
		return err
	}

	if gifPath != "" {
		frames, err := viz.Frames(result, cfg.Render.Width, cfg.Render.Height)
		if err != nil {
			return err
		}
		f, err := os.Create(gifPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := viz.WriteGIF(f, frames, cfg.Render.FPS); err != nil {
			return err
		}
		log.Info("wrote animation", "path", gifPath, "frames", len(frames), "seed", result.Seed)
		return nil
	}

	opts := viz.PlayerOptions{
		Title: fmt.Sprintf("%s seed %d", result.Process, result.Seed),
		FPS:   cfg.Render.FPS,
		Theme: cfg.Render.Theme,
	}
	if cmd.Flags().Changed("width") || cmd.Flags().Changed("height") {
		opts.Width, opts.Height = cfg.Render.Width, cfg.Render.Height
	}
	p, err := viz.NewPlayer(result, opts)
	if err != nil {
		return err
	}
	return viz.RunPlayer(p)
}

func exportProcess(cmd *cobra.Command, args []string) error {
	f := export.CSV
	var err error
	switch {
	case format != "":
		f, err = export.ParseFormat(format)
	case outPath != "":
		f, err = export.FormatFromPath(outPath)
	}
	if err != nil {
		return err
	}

	_, result, err := generate(cmd, args)
	if err != nil {
		return err
	}

	if intervals && (result.Process != "poisson" || f != export.CSV) {
		return fmt.Errorf("--intervals needs the poisson process and csv format")
	}

	w := os.Stdout
	if outPath != "" {
		file, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer file.Close()
		w = file
	}

	if intervals {
		err = export.WriteIntervalsCSV(w, result)
	} else {
		err = export.Write(w, f, result)
	}
	if err != nil {
		return err
	}
	if outPath != "" {
		log.Info("exported", "path", outPath, "format", f, "seed", result.Seed)
	}
	return nil
}

func runScenarioFile(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	results, err := automation.RunScenario(cmd.Context(), sc, registry, log)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tNAME\tPROCESS\tSEED\tSAMPLES")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\n", i+1, sc.Steps[i].Name, r.Process, r.Seed, r.Len())
	}
	if ferr := w.Flush(); err == nil {
		err = ferr
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	s := &automation.ParameterSweep{
		Process:   args[0],
		Preset:    preset,
		ParamName: sweepParam,
		ParamMin:  sweepFrom,
		ParamMax:  sweepTo,
		NumSteps:  sweepN,
		Seed:      seedOrClock(cmd),
	}
	results, err := automation.RunSweep(cmd.Context(), s, registry, log)
	if err != nil {
		return err
	}

	keys := metricKeys(results[0].Metrics)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tSAMPLES\t%s\n", strings.ToUpper(sweepParam), strings.ToUpper(strings.Join(keys, "\t")))
	for _, r := range results {
		fmt.Fprintf(w, "%.4g\t%d", r.ParamValue, r.Samples)
		for _, k := range keys {
			fmt.Fprintf(w, "\t%.4g", r.Metrics[k])
		}
		fmt.Fprintln(w)
	}
	fmt.Printf("seed %d\n\n", s.Seed)
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	mc := &automation.MonteCarloConfig{
		Process:   args[0],
		Preset:    preset,
		NumTrials: trials,
		Seed:      seedOrClock(cmd),
	}
	res, err := automation.RunMonteCarlo(cmd.Context(), mc, registry, log)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d trials, seeds %d..%d\n\n", mc.Process, res.Trials, res.Seeds[0], res.Seeds[len(res.Seeds)-1])
	keys := make([]string, 0, len(res.Stats))
	for k := range res.Stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tVARIANCE\tMIN\tMAX")
	for _, k := range keys {
		s := res.Stats[k]
		fmt.Fprintf(w, "%s\t%.6g\t%.6g\t%.6g\t%.6g\n", k, s.Mean, s.Variance, s.Min, s.Max)
	}
	return w.Flush()
}

func seedOrClock(cmd *cobra.Command) int64 {
	if cmd.Flags().Changed("seed") {
		return seed
	}
	return time.Now().UnixNano()
}

func listPresets(cmd *cobra.Command, args []string) error {
	processes := config.Processes
	if len(args) > 0 {
		processes = args[:1]
	}
	for _, p := range processes {
		presets := config.ListPresets(p)
		if len(presets) == 0 {
			fmt.Printf("no presets for process: %s\n", p)
			continue
		}
		fmt.Printf("presets for %s:\n", p)
		for _, name := range presets {
			fmt.Printf("  %s\n", name)
		}
	}
	return nil
}

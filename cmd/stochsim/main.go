package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/san-kum/stochsim/internal/experiment"
	"github.com/san-kum/stochsim/internal/logging"
	"github.com/san-kum/stochsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	seed       int64
	logLevel   string
	// process parameters
	steps    int
	scale    float64
	rate     float64
	horizon  float64
	interval float64
	dim      int
	probs    []float64
	start    []float64
	initial  string
	// rendering
	theme  string
	fps    int
	width  int
	height int
	// command specific
	gifPath    string
	format     string
	outPath    string
	intervals  bool
	sweepParam string
	sweepFrom  float64
	sweepTo    float64
	sweepN     int
	trials     int

	log      *slog.Logger
	registry = experiment.NewRegistry()
)

// main wires the cobra command tree. With no subcommand on a terminal it
// opens the interactive explorer. Interrupts cancel the command context,
// which stops scenarios, sweeps and Monte Carlo runs between runs.
func main() {
	rootCmd := &cobra.Command{
		Use:          "stochsim",
		Short:        "stochastic process explorer",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log = logging.NewLogger(logLevel, os.Stderr)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !viz.IsTerminal() {
				return cmd.Help()
			}
			return viz.RunMenu(viz.NewMenu(registry, log, theme))
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Int64Var(&seed, "seed", 0, "random seed (default: clock)")
	pf.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	pf.StringVar(&theme, "theme", "cyberpunk", "colour theme")

	runCmd := &cobra.Command{
		Use:   "run [process]",
		Short: "generate a trajectory and print it with summary metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runProcess,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [process]",
		Short: "static terminal plot of a generated trajectory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotProcess,
	}

	animateCmd := &cobra.Command{
		Use:   "animate [process]",
		Short: "animate a generated trajectory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  animateProcess,
	}
	animateCmd.Flags().StringVar(&gifPath, "gif", "", "render the animation to this GIF instead of the terminal")
	animateCmd.Flags().IntVar(&fps, "fps", 0, "frames per second")

	exportCmd := &cobra.Command{
		Use:   "export [process]",
		Short: "write a generated trajectory as csv, json or svg",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportProcess,
	}
	exportCmd.Flags().StringVar(&format, "format", "", "csv, json or svg (default: from --out, else csv)")
	exportCmd.Flags().StringVar(&outPath, "out", "", "output file (default: stdout)")
	exportCmd.Flags().BoolVar(&intervals, "intervals", false, "poisson: write per-interval counts instead of arrivals")

	for _, c := range []*cobra.Command{runCmd, plotCmd, animateCmd, exportCmd} {
		addProcessFlags(c)
	}
	for _, c := range []*cobra.Command{plotCmd, animateCmd} {
		c.Flags().IntVar(&width, "width", 0, "canvas width in cells")
		c.Flags().IntVar(&height, "height", 0, "canvas height in cells")
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run every step of a YAML scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenarioFile,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [process]",
		Short: "rerun a process across a range of one parameter",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "", "parameter name, e.g. rate or scale")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 1, "last value")
	sweepCmd.Flags().IntVar(&sweepN, "points", 5, "number of values")
	sweepCmd.MarkFlagRequired("param")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [process]",
		Short: "repeat a process over consecutive seeds and summarise its metrics",
		Args:  cobra.ExactArgs(1),
		RunE:  runMonteCarlo,
	}
	monteCarloCmd.Flags().IntVar(&trials, "trials", 100, "number of trials")

	presetsCmd := &cobra.Command{
		Use:   "presets [process]",
		Short: "list presets, optionally for one process",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	processesCmd := &cobra.Command{
		Use:   "processes",
		Short: "list available processes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range registry.ListProcesses() {
				fmt.Println(p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, plotCmd, animateCmd, exportCmd, scenarioCmd, sweepCmd, monteCarloCmd, presetsCmd, processesCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func addProcessFlags(c *cobra.Command) {
	f := c.Flags()
	f.IntVar(&steps, "steps", 0, "markov/walk steps, brownian moves")
	f.Float64Var(&scale, "scale", 0, "brownian increment standard deviation")
	f.Float64Var(&rate, "rate", 0, "poisson arrival rate")
	f.Float64Var(&horizon, "horizon", 0, "poisson time horizon")
	f.Float64Var(&interval, "interval", 0, "poisson counting interval")
	f.IntVar(&dim, "dim", 0, "brownian/walk dimension (1-3)")
	f.Float64SliceVar(&probs, "probs", nil, "walk move probabilities +x,-x,+y,-y,+z,-z")
	f.Float64SliceVar(&start, "start", nil, "brownian/walk start coordinates")
	f.StringVar(&initial, "initial", "", "markov initial state")
}

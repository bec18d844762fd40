package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/rootlab/internal/config"
	"github.com/san-kum/rootlab/internal/logging"
)

var (
	configFile string
	preset     string
	format     string
	logLevel   string
	devLog     bool

	eqID      int
	method    string
	left      float64
	right     float64
	estimate  float64
	maxIter   int
	partial   bool
	request   string
	inputFile string
	traceFile string

	x0        float64
	y0        float64
	tolerance float64

	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	width      int
	height     int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "rootlab",
		Short:         "nonlinear equation and system root finding lab",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&format, "format", config.DefaultFormat, "output format: json, yaml, csv, table")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level")
	rootCmd.PersistentFlags().BoolVar(&devLog, "log-dev", false, "human-readable console logs")
	rootCmd.PersistentFlags().IntVar(&maxIter, "max-iterations", config.DefaultMaxIterations, "iteration ceiling")
	rootCmd.PersistentFlags().BoolVar(&partial, "partial-trace", false, "include recorded steps in error output")

	solveCmd := &cobra.Command{
		Use:   "solve [equation]",
		Short: "find a root of a catalog equation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSolve,
	}
	scalarFlags(solveCmd)
	solveCmd.Flags().StringVar(&request, "request", "", `JSON request, e.g. {"eq_id":1,"interval":[-3,-1],"estimate":0.0001,"method_id":0}`)
	solveCmd.Flags().StringVar(&inputFile, "file", "", "read the JSON request from a file")

	systemCmd := &cobra.Command{
		Use:   "system [system]",
		Short: "solve a catalog two-equation system with Newton's method",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSystem,
	}
	systemCmd.Flags().Float64Var(&x0, "x0", 1, "initial x")
	systemCmd.Flags().Float64Var(&y0, "y0", 1, "initial y")
	systemCmd.Flags().Float64Var(&tolerance, "tolerance", config.DefaultEstimate, "step norm tolerance")
	systemCmd.Flags().StringVar(&request, "request", "", `JSON request, e.g. {"eq_id":0,"interval":[1,1],"estimate":0.0001}`)
	systemCmd.Flags().StringVar(&inputFile, "file", "", "read the JSON request from a file")

	compareCmd := &cobra.Command{
		Use:   "compare [equation]",
		Short: "run every method on the same input",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCompare,
	}
	scalarFlags(compareCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [equation]",
		Short: "solve across a logarithmic range of estimates",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	scalarFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1e-2, "loosest estimate")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 1e-10, "tightest estimate")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of estimates")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	equationsCmd := &cobra.Command{
		Use:   "equations",
		Short: "list catalog equations and systems",
		Args:  cobra.NoArgs,
		RunE:  listEquations,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [kind]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [equation]",
		Short: "plot the function and the convergence of a solve",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlot,
	}
	scalarFlags(plotCmd)
	plotCmd.Flags().IntVar(&width, "width", 60, "plot width")
	plotCmd.Flags().IntVar(&height, "height", 12, "plot height")

	viewCmd := &cobra.Command{
		Use:   "view [equation]",
		Short: "browse a solve's trace interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runView,
	}
	scalarFlags(viewCmd)
	viewCmd.Flags().StringVar(&traceFile, "trace", "", "browse a CSV trace file instead of solving")


	rootCmd.AddCommand(solveCmd, systemCmd, compareCmd, sweepCmd, batchCmd, equationsCmd, presetsCmd, plotCmd, viewCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func scalarFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&method, "method", "bisection", "bisection, iteration, newton, secant (or 0-3)")
	cmd.Flags().Float64Var(&left, "left", -3, "left endpoint or first starting point")
	cmd.Flags().Float64Var(&right, "right", -1, "right endpoint or second starting point")
	cmd.Flags().Float64Var(&estimate, "estimate", config.DefaultEstimate, "halting tolerance")
}

// loadConfig layers defaults, preset, config file, environment, and flags
// in that order.
func loadConfig(cmd *cobra.Command, args []string, kind string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset(kind, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(kind))
		}
		cfg = p
	}
	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if len(args) > 0 {
		if _, err := fmt.Sscan(args[0], &eqID); err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", args[0], err)
		}
		if kind == "system" {
			cfg.System.ID = eqID
		} else {
			cfg.Equation = eqID
		}
	}
	if flags.Changed("method") {
		cfg.Method = method
	}
	if flags.Changed("left") {
		cfg.Left = left
	}
	if flags.Changed("right") {
		cfg.Right = right
	}
	if flags.Changed("estimate") {
		cfg.Estimate = estimate
	}
	if flags.Changed("x0") {
		cfg.System.X0 = x0
	}
	if flags.Changed("y0") {
		cfg.System.Y0 = y0
	}
	if flags.Changed("tolerance") {
		cfg.System.Tolerance = tolerance
	}
	if flags.Changed("max-iterations") {
		cfg.MaxIterations = maxIter
	}
	if flags.Changed("format") {
		cfg.Format = format
	}
	if flags.Changed("partial-trace") {
		cfg.PartialTrace = partial
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-dev") {
		cfg.Log.Development = devLog
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *zap.Logger {
	return logging.NewOrNop(logging.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
}

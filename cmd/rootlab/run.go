package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/rootlab/internal/batch"
	"github.com/san-kum/rootlab/internal/calc"
	"github.com/san-kum/rootlab/internal/config"
	"github.com/san-kum/rootlab/internal/equation"
	"github.com/san-kum/rootlab/internal/export"
	"github.com/san-kum/rootlab/internal/service"
	"github.com/san-kum/rootlab/internal/solver"
	"github.com/san-kum/rootlab/internal/viz"
)

func newService(cfg *config.Config) (*service.Service, func()) {
	log := newLogger(cfg)
	svc := service.New(
		service.WithLogger(log),
		service.WithSettings(cfg.Settings()),
		service.WithPartialTrace(cfg.PartialTrace),
	)
	return svc, func() { _ = log.Sync() }
}

// requestBody returns the --request string or the --file contents, or nil
// when neither is set.
func requestBody() (io.Reader, func(), error) {
	switch {
	case request != "" && inputFile != "":
		return nil, nil, errors.New("use either --request or --file, not both")
	case request != "":
		return strings.NewReader(request), func() {}, nil
	case inputFile != "":
		f, err := os.Open(inputFile)
		if err != nil {
			return nil, nil, err
		}
		return f, func() { f.Close() }, nil
	}
	return nil, func() {}, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args, "scalar")
	if err != nil {
		return err
	}
	svc, done := newService(cfg)
	defer done()

	body, closeBody, err := requestBody()
	if err != nil {
		return err
	}
	defer closeBody()

	ctx := cmd.Context()
	var resp service.EquationResponse
	if body != nil {
		resp = svc.HandleEquation(ctx, body)
	} else {
		m, err := solver.ParseMethod(cfg.Method)
		if err != nil {
			return err
		}
		resp = svc.SolveEquation(ctx, service.EquationRequest{
			EqID:     cfg.Equation,
			Interval: []float64{cfg.Left, cfg.Right},
			Estimate: cfg.Estimate,
			MethodID: int(m),
		})
	}

	f, _ := export.ParseFormat(cfg.Format)
	out := cmd.OutOrStdout()
	if f.Structured() {
		if err := export.Write(out, f, resp); err != nil {
			return err
		}
	} else if resp.OK() {
		if err := writeSteps(out, f, resp.Result.Steps, viz.Summary(resp.Result)); err != nil {
			return err
		}
	} else if len(resp.Steps) > 0 {
		if err := writeSteps(out, f, resp.Steps, ""); err != nil {
			return err
		}
	}

	if !resp.OK() {
		return errors.New(resp.Error)
	}
	return nil
}

func runSystem(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args, "system")
	if err != nil {
		return err
	}
	svc, done := newService(cfg)
	defer done()

	body, closeBody, err := requestBody()
	if err != nil {
		return err
	}
	defer closeBody()

	ctx := cmd.Context()
	var resp service.SystemResponse
	if body != nil {
		resp = svc.HandleSystem(ctx, body)
	} else {
		resp = svc.SolveSystem(ctx, service.SystemRequest{
			EqID:     cfg.System.ID,
			Interval: []float64{cfg.System.X0, cfg.System.Y0},
			Estimate: cfg.System.Tolerance,
		})
	}

	f, _ := export.ParseFormat(cfg.Format)
	out := cmd.OutOrStdout()
	if f.Structured() {
		if err := export.Write(out, f, resp); err != nil {
			return err
		}
	} else if resp.OK() {
		if err := writeSteps(out, f, resp.Result.Steps, viz.SystemSummary(resp.Result)); err != nil {
			return err
		}
	} else if len(resp.Steps) > 0 {
		if err := writeSteps(out, f, resp.Steps, ""); err != nil {
			return err
		}
	}

	if !resp.OK() {
		return errors.New(resp.Error)
	}
	return nil
}

// writeSteps prints a trace as CSV, or as a table under summary.
func writeSteps(w io.Writer, f export.Format, steps []calc.Step, summary string) error {
	if f == export.CSV {
		return export.WriteCSV(w, steps)
	}
	if summary != "" {
		fmt.Fprintln(w, summary)
	}
	return export.WriteTable(w, steps)
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args, "scalar")
	if err != nil {
		return err
	}
	eq, err := equation.Lookup(cfg.Equation)
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	defer log.Sync()

	runner := batch.NewRunner(log, cfg.Settings())
	cmp := runner.CompareMethods(cmd.Context(), eq.WithStep(cfg.ScalarStep), cfg.Left, cfg.Right, cfg.Estimate)

	f, _ := export.ParseFormat(cfg.Format)
	out := cmd.OutOrStdout()
	if f.Structured() {
		return export.Write(out, f, cmp)
	}

	fmt.Fprintf(out, "%s  on [%g, %g], estimate %g\n\n", eq.Expression(), cfg.Left, cfg.Right, cfg.Estimate)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tROOT\tITERATIONS\tERROR\tFAILURE")
	for _, c := range cmp {
		if c.Result == nil {
			fmt.Fprintf(w, "%s\t-\t-\t-\t%s\n", c.Method, c.Err)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%.3e\t\n", c.Method, c.Result.Display, c.Result.Iterations, c.Result.ErrorValue)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args, "scalar")
	if err != nil {
		return err
	}
	eq, err := equation.Lookup(cfg.Equation)
	if err != nil {
		return err
	}
	m, err := solver.ParseMethod(cfg.Method)
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	defer log.Sync()

	results, err := batch.NewRunner(log, cfg.Settings()).RunSweep(cmd.Context(), eq.WithStep(cfg.ScalarStep), batch.ToleranceSweep{
		Method:   m,
		Left:     cfg.Left,
		Right:    cfg.Right,
		Max:      sweepMax,
		Min:      sweepMin,
		NumSteps: sweepSteps,
	})
	if err != nil {
		return err
	}

	f, _ := export.ParseFormat(cfg.Format)
	out := cmd.OutOrStdout()
	if f.Structured() {
		return export.Write(out, f, results)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ESTIMATE\tROOT\tITERATIONS\tFAILURE")
	for _, r := range results {
		if r.Err != "" {
			fmt.Fprintf(w, "%.1e\t-\t-\t%s\n", r.Estimate, r.Err)
			continue
		}
		fmt.Fprintf(w, "%.1e\t%.12g\t%d\t\n", r.Estimate, r.Root, r.Iterations)
	}
	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil, "scalar")
	if err != nil {
		return err
	}
	scenario, err := batch.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}
	log := newLogger(cfg)
	defer log.Sync()

	outcomes, err := batch.NewRunner(log, cfg.Settings()).RunScenario(cmd.Context(), scenario)
	if err != nil {
		return err
	}

	f, _ := export.ParseFormat(cfg.Format)
	out := cmd.OutOrStdout()
	if f.Structured() {
		return export.Write(out, f, outcomes)
	}

	if scenario.Name != "" {
		fmt.Fprintln(out, viz.Title.Render(scenario.Name))
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tKIND\tPROBLEM\tSOLUTION\tITERATIONS\tFAILURE")
	for _, o := range outcomes {
		switch {
		case o.Scalar != nil:
			fmt.Fprintf(w, "%d\t%s\t%s %s\t%s\t%d\t\n", o.Step, o.Kind, o.Scalar.Equation, o.Scalar.Method, o.Scalar.Display, o.Scalar.Iterations)
		case o.System != nil:
			fmt.Fprintf(w, "%d\t%s\t%s\t(%.6g, %.6g)\t%d\t\n", o.Step, o.Kind, o.System.System, o.System.X, o.System.Y, o.System.Iterations)
		default:
			fmt.Fprintf(w, "%d\t%s\t-\t-\t-\t%s\n", o.Step, o.Kind, o.Err)
		}
	}
	return w.Flush()
}

func listEquations(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.Title.Render("equations"))
	for _, eq := range equation.Scalars() {
		fmt.Fprintf(out, "  %d  %-12s %s = 0\n", eq.ID(), eq.Name(), eq.Expression())
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, viz.Title.Render("systems"))
	for _, sys := range equation.Systems() {
		e := sys.Expressions()
		fmt.Fprintf(out, "  %d  %-12s %s = 0, %s = 0\n", sys.ID(), sys.Name(), e[0], e[1])
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, viz.Title.Render("methods"))
	for _, m := range solver.Methods() {
		fmt.Fprintf(out, "  %d  %s\n", int(m), m)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	kinds := config.Kinds()
	if len(args) > 0 {
		kinds = args
	}
	out := cmd.OutOrStdout()
	for _, kind := range kinds {
		names := config.ListPresets(kind)
		if len(names) == 0 {
			fmt.Fprintf(out, "no presets for kind: %s\n", kind)
			continue
		}
		fmt.Fprintf(out, "presets for %s:\n", kind)
		for _, name := range names {
			fmt.Fprintf(out, "  %s\n", name)
		}
	}
	return nil
}

// solveFromConfig runs the configured scalar problem directly.
func solveFromConfig(ctx context.Context, cfg *config.Config) (*equation.Scalar, *solver.Result, error) {
	eq, err := equation.Lookup(cfg.Equation)
	if err != nil {
		return nil, nil, err
	}
	eq = eq.WithStep(cfg.ScalarStep)
	m, err := solver.ParseMethod(cfg.Method)
	if err != nil {
		return nil, nil, err
	}
	res, err := solver.New(eq, m, solver.WithSettings(cfg.Settings())).Solve(ctx, cfg.Left, cfg.Right, cfg.Estimate)
	return eq, res, err
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args, "scalar")
	if err != nil {
		return err
	}
	eq, res, err := solveFromConfig(cmd.Context(), cfg)
	if err != nil && eq == nil {
		return err
	}

	out := cmd.OutOrStdout()
	chart, perr := viz.PlotFunction(eq, cfg.Left, cfg.Right, width, height, eq.Expression())
	if perr != nil {
		return perr
	}
	fmt.Fprintln(out, chart)
	fmt.Fprintln(out)

	steps := calc.PartialSteps(err)
	if res != nil {
		steps = res.Steps
	}
	if conv, cerr := viz.PlotConvergence(steps, height/2); cerr == nil {
		fmt.Fprintln(out, conv)
		fmt.Fprintln(out, viz.Sparkline(absDiffs(steps), width))
	}
	if res != nil {
		fmt.Fprintln(out, viz.Summary(res))
	}
	return err
}

func absDiffs(steps []calc.Step) []float64 {
	out := make([]float64, len(steps))
	for i, s := range steps {
		out[i] = s.AbsDiff
	}
	return out
}

func runView(cmd *cobra.Command, args []string) error {
	if traceFile != "" {
		return viewTrace(traceFile)
	}
	cfg, err := loadConfig(cmd, args, "scalar")
	if err != nil {
		return err
	}
	eq, res, err := solveFromConfig(cmd.Context(), cfg)
	steps := calc.PartialSteps(err)
	header := ""
	switch {
	case res != nil:
		steps = res.Steps
		header = fmt.Sprintf("%s  root %s after %d iterations", res.Method, res.Display, res.Iterations)
	case len(steps) > 0:
		header = viz.ErrorText.Render(err.Error())
	default:
		return err
	}

	b := viz.NewBrowser(fmt.Sprintf("%s: %s", eq.Name(), eq.Expression()), header, steps)
	if _, perr := tea.NewProgram(b, tea.WithAltScreen()).Run(); perr != nil {
		return perr
	}
	return nil
}

// viewTrace browses a trace previously written with --format csv.
func viewTrace(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	steps, err := export.ReadCSV(f)
	if err != nil {
		return fmt.Errorf("failed to read trace: %w", err)
	}
	b := viz.NewBrowser(path, fmt.Sprintf("%d steps", len(steps)), steps)
	_, err = tea.NewProgram(b, tea.WithAltScreen()).Run()
	return err
}

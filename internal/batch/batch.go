// Package batch runs scripted sequences of solves: YAML scenarios, method
// comparisons, and tolerance sweeps.
package batch

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/rootlab/internal/calc"
	"github.com/san-kum/rootlab/internal/equation"
	"github.com/san-kum/rootlab/internal/solver"
	"github.com/san-kum/rootlab/internal/system"
)

// Scenario is a named list of problems.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep describes one problem. Kind is "scalar" (the default) or
// "system"; for systems Interval holds the start point and Method is
// ignored.
type ScenarioStep struct {
	Kind          string    `yaml:"kind"`
	Equation      int       `yaml:"equation"`
	Method        string    `yaml:"method"`
	Interval      []float64 `yaml:"interval"`
	Estimate      float64   `yaml:"estimate"`
	MaxIterations int       `yaml:"max_iterations"`
}

// Outcome is the result of one scenario step. Err holds the solver failure,
// if any; the scenario keeps going after one.
type Outcome struct {
	Step   int            `json:"step" yaml:"step"`
	Kind   string         `json:"kind" yaml:"kind"`
	Scalar *solver.Result `json:"scalar,omitempty" yaml:"scalar,omitempty"`
	System *system.Result `json:"system,omitempty" yaml:"system,omitempty"`
	Err    string         `json:"error,omitempty" yaml:"error,omitempty"`
}

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
	return &scenario, nil
}

type Runner struct {
	log      *zap.Logger
	settings calc.Settings
}

func NewRunner(log *zap.Logger, settings calc.Settings) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{log: log, settings: settings}
}

// RunScenario executes every step in order. A step that names an unknown
// equation, method, or kind aborts the run; solver failures are recorded in
// the step's Outcome.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		r.log.Info("running step", zap.String("scenario", scenario.Name), zap.Int("step", i+1), zap.Int("of", len(scenario.Steps)))

		out, err := r.runStep(ctx, step)
		if err != nil {
			return outcomes, fmt.Errorf("step %d: %w", i+1, err)
		}
		out.Step = i + 1
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}

func (r *Runner) runStep(ctx context.Context, step ScenarioStep) (Outcome, error) {
	if len(step.Interval) != 2 {
		return Outcome{}, fmt.Errorf("interval needs 2 values, got %d: %w", len(step.Interval), calc.ErrInvalidInterval)
	}
	settings := r.settings
	if step.MaxIterations > 0 {
		settings.MaxIterations = step.MaxIterations
	}

	switch step.Kind {
	case "", "scalar":
		eq, err := equation.Lookup(step.Equation)
		if err != nil {
			return Outcome{}, err
		}
		m, err := solver.ParseMethod(step.Method)
		if err != nil {
			return Outcome{}, err
		}
		out := Outcome{Kind: "scalar"}
		res, err := solver.New(eq, m, solver.WithSettings(settings)).Solve(ctx, step.Interval[0], step.Interval[1], step.Estimate)
		if err != nil {
			out.Err = err.Error()
		}
		out.Scalar = res
		return out, nil

	case "system":
		sys, err := equation.LookupSystem(step.Equation)
		if err != nil {
			return Outcome{}, err
		}
		out := Outcome{Kind: "system"}
		res, err := system.New(sys, step.Interval[0], step.Interval[1], step.Estimate, system.WithSettings(settings)).Solve(ctx)
		if err != nil {
			out.Err = err.Error()
		}
		out.System = res
		return out, nil

	default:
		return Outcome{}, fmt.Errorf("unknown kind %q", step.Kind)
	}
}

// Comparison is one method's attempt at a shared problem.
type Comparison struct {
	Method solver.Method  `json:"method" yaml:"method"`
	Result *solver.Result `json:"result,omitempty" yaml:"result,omitempty"`
	Err    string         `json:"error,omitempty" yaml:"error,omitempty"`
}

// CompareMethods runs every method on eq over the same inputs.
func (r *Runner) CompareMethods(ctx context.Context, eq solver.Equation, left, right, estimate float64) []Comparison {
	out := make([]Comparison, 0, len(solver.Methods()))
	for _, m := range solver.Methods() {
		c := Comparison{Method: m}
		res, err := solver.New(eq, m, solver.WithSettings(r.settings)).Solve(ctx, left, right, estimate)
		if err != nil {
			c.Err = err.Error()
		}
		c.Result = res
		out = append(out, c)
	}
	return out
}

// ToleranceSweep solves one problem at NumSteps estimates spaced
// logarithmically between Max and Min.
type ToleranceSweep struct {
	Method   solver.Method
	Left     float64
	Right    float64
	Max, Min float64
	NumSteps int
}

type SweepResult struct {
	Estimate   float64 `json:"estimate" yaml:"estimate"`
	Root       float64 `json:"root" yaml:"root"`
	Iterations int     `json:"iterations" yaml:"iterations"`
	Err        string  `json:"error,omitempty" yaml:"error,omitempty"`
}

func (r *Runner) RunSweep(ctx context.Context, eq solver.Equation, sweep ToleranceSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}
	if !(sweep.Min > 0) || !(sweep.Max > sweep.Min) {
		return nil, fmt.Errorf("sweep range [%g, %g]: %w", sweep.Min, sweep.Max, calc.ErrInvalidTolerance)
	}

	estimates := floats.LogSpan(make([]float64, sweep.NumSteps), sweep.Max, sweep.Min)
	results := make([]SweepResult, 0, sweep.NumSteps)
	sv := solver.New(eq, sweep.Method, solver.WithSettings(r.settings))

	for _, est := range estimates {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		sr := SweepResult{Estimate: est}
		res, err := sv.Solve(ctx, sweep.Left, sweep.Right, est)
		if err != nil {
			sr.Err = err.Error()
		} else {
			sr.Root, sr.Iterations = res.Root, res.Iterations
		}
		results = append(results, sr)
	}
	return results, nil
}

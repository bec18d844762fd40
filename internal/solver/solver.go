package solver

import (
	"context"
	"fmt"

	"github.com/san-kum/rootlab/internal/calc"
	"github.com/san-kum/rootlab/internal/equation"
)

// machineEpsilon is the float64 unit roundoff, 2^-52.
const machineEpsilon = 0x1p-52

// Equation is the scalar model a Solver iterates against.
type Equation interface {
	Value(x float64) float64
	Derivative(x float64, order int) (float64, error)
}

type identified interface {
	ID() equation.ID
	Name() string
}

// Result is a converged root together with the trace that produced it.
type Result struct {
	EquationID    int         `json:"eq_id" yaml:"eq_id"`
	Equation      string      `json:"equation,omitempty" yaml:"equation,omitempty"`
	Method        Method      `json:"method" yaml:"method"`
	MethodID      int         `json:"method_id" yaml:"method_id"`
	Left          float64     `json:"left" yaml:"left"`
	Right         float64     `json:"right" yaml:"right"`
	Estimate      float64     `json:"estimate" yaml:"estimate"`
	Root          float64     `json:"root" yaml:"root"`
	FunctionValue float64     `json:"function_value" yaml:"function_value"`
	ErrorValue    float64     `json:"error_value" yaml:"error_value"`
	Iterations    int         `json:"iterations" yaml:"iterations"`
	Rounded       bool        `json:"rounded" yaml:"rounded"`
	Digits        int         `json:"digits" yaml:"digits"`
	Display       string      `json:"display" yaml:"display"`
	Steps         []calc.Step `json:"steps" yaml:"steps"`
	Err           string      `json:"err" yaml:"err"`
}

// Solver runs one method against one equation.
type Solver struct {
	eq        Equation
	method    Method
	settings  calc.Settings
	observers []calc.Observer
}

type Option func(*Solver)

// WithSettings replaces the default settings.
func WithSettings(s calc.Settings) Option {
	return func(sv *Solver) { sv.settings = s }
}

// WithMaxIterations overrides the iteration ceiling.
func WithMaxIterations(n int) Option {
	return func(sv *Solver) { sv.settings.MaxIterations = n }
}

// WithObserver registers o to receive every recorded step.
func WithObserver(o calc.Observer) Option {
	return func(sv *Solver) { sv.observers = append(sv.observers, o) }
}

func New(eq Equation, method Method, opts ...Option) *Solver {
	s := &Solver{
		eq:       eq,
		method:   method,
		settings: calc.DefaultSettings(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Solver) Method() Method { return s.method }

// Solve locates a root on [left, right]. For the secant method left and
// right are the two starting points. estimate is the halting tolerance on
// the successive iterate distance or bracket width.
func (s *Solver) Solve(ctx context.Context, left, right, estimate float64) (*Result, error) {
	if estimate <= 0 || !calc.IsFinite(estimate) {
		return nil, fmt.Errorf("%s: %w, got %g", s.method, calc.ErrInvalidTolerance, estimate)
	}
	if !calc.IsFinite(left, right) {
		return nil, fmt.Errorf("%s: %w", s.method, calc.ErrInvalidInterval)
	}

	r := &run{
		ctx:      ctx,
		solver:   s,
		eq:       s.eq,
		left:     left,
		right:    right,
		estimate: estimate,
	}

	if s.method.Bracketing() && s.eq.Value(left)*s.eq.Value(right) >= 0 {
		return nil, fmt.Errorf("%s: %w", s.method, calc.ErrSign)
	}

	switch s.method {
	case Bisection:
		return r.bisection()
	case FixedPoint:
		return r.fixedPoint()
	case Newton:
		return r.newton()
	case Secant:
		return r.secant()
	default:
		return nil, fmt.Errorf("%w: %s", calc.ErrInvalidSelector, s.method)
	}
}

// run carries the state of a single Solve call.
type run struct {
	ctx      context.Context
	solver   *Solver
	eq       Equation
	trace    *calc.Trace
	left     float64
	right    float64
	estimate float64
}

func (r *run) begin() {
	r.trace = calc.NewTrace(r.solver.observers...)
}

// guard is checked before each iteration once count steps are recorded.
func (r *run) guard(count int, x float64) error {
	select {
	case <-r.ctx.Done():
		return r.fail(count, x, r.ctx.Err())
	default:
	}
	if count >= r.solver.settings.MaxIterations {
		return r.fail(count, x, fmt.Errorf("%w (%d iterations)", calc.ErrNonConvergence, count))
	}
	return nil
}

func (r *run) slope(x float64) (float64, error) {
	return r.eq.Derivative(x, 1)
}

func (r *run) fail(iteration int, x float64, err error) error {
	var steps []calc.Step
	if r.trace != nil {
		steps = r.trace.Steps()
	}
	return &calc.SolveError{
		Method:    r.solver.method.String(),
		Iteration: iteration,
		X:         x,
		Steps:     steps,
		Wrapped:   err,
	}
}

func (r *run) finish(root, errValue float64, iterations int) *Result {
	m := r.solver.method
	fx := r.eq.Value(root)
	digits := calc.Digits(r.estimate)

	res := &Result{
		EquationID: -1,
		Method:     m,
		MethodID:   int(m),
		Left:       r.left,
		Right:      r.right,
		Estimate:   r.estimate,
		ErrorValue: errValue,
		Iterations: iterations,
		Rounded:    m.Rounded(),
		Digits:     digits,
		Steps:      r.trace.Steps(),
	}
	if id, ok := r.eq.(identified); ok {
		res.EquationID = int(id.ID())
		res.Equation = id.Name()
	}

	if m.Rounded() {
		res.Root = calc.CeilTo(root, digits)
		res.FunctionValue = calc.CeilTo(fx, digits)
		res.Display = calc.Format(res.Root, digits)
	} else {
		res.Root = root
		res.FunctionValue = fx
		res.Display = calc.Format(root, -1)
	}
	return res
}

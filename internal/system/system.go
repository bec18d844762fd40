// Package system solves two-equation nonlinear systems with Newton's method.
//
// Each iteration estimates the Jacobian by forward differences, checks its
// determinant, and solves J·Δ = -g(x, y) with Cramer's rule. Convergence is
// local: the caller supplies a starting point close enough to a root.
package system

import (
	"context"
	"fmt"

	"github.com/san-kum/rootlab/internal/calc"
	"github.com/san-kum/rootlab/internal/equation"
	"github.com/san-kum/rootlab/internal/numdiff"
	"gonum.org/v1/gonum/floats"
)

// Equations is the pair of residual functions a Solver iterates against.
type Equations interface {
	Value(x, y float64) (float64, float64)
}

type identified interface {
	ID() equation.SystemID
	Name() string
}

type Result struct {
	SystemID   int         `json:"eq_id" yaml:"eq_id"`
	System     string      `json:"system,omitempty" yaml:"system,omitempty"`
	X0         float64     `json:"x0" yaml:"x0"`
	Y0         float64     `json:"y0" yaml:"y0"`
	Tolerance  float64     `json:"estimate" yaml:"estimate"`
	X          float64     `json:"x" yaml:"x"`
	Y          float64     `json:"y" yaml:"y"`
	G1         float64     `json:"g1" yaml:"g1"`
	G2         float64     `json:"g2" yaml:"g2"`
	Iterations int         `json:"iterations" yaml:"iterations"`
	ErrorValue float64     `json:"error_value" yaml:"error_value"`
	Steps      []calc.Step `json:"steps" yaml:"steps"`
}

type Solver struct {
	sys       Equations
	x0, y0    float64
	tolerance float64
	settings  calc.Settings
	observers []calc.Observer
}

type Option func(*Solver)

func WithSettings(s calc.Settings) Option {
	return func(sv *Solver) { sv.settings = s }
}

func WithMaxIterations(n int) Option {
	return func(sv *Solver) { sv.settings.MaxIterations = n }
}

func WithObserver(o calc.Observer) Option {
	return func(sv *Solver) { sv.observers = append(sv.observers, o) }
}

func New(sys Equations, x0, y0, tolerance float64, opts ...Option) *Solver {
	s := &Solver{
		sys:       sys,
		x0:        x0,
		y0:        y0,
		tolerance: tolerance,
		settings:  calc.DefaultSettings(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Solve iterates from (x0, y0) until the Newton step norm drops below the
// tolerance. Iterations counts the steps taken before the converging one.
func (s *Solver) Solve(ctx context.Context) (*Result, error) {
	if s.tolerance <= 0 || !calc.IsFinite(s.tolerance) {
		return nil, fmt.Errorf("newton system: %w, got %g", calc.ErrInvalidTolerance, s.tolerance)
	}
	if !calc.IsFinite(s.x0, s.y0) {
		return nil, fmt.Errorf("newton system: %w", calc.ErrInvalidInterval)
	}

	trace := calc.NewTrace(s.observers...)
	x, y := s.x0, s.y0
	h := s.settings.JacobianStep

	for counter := 0; ; counter++ {
		select {
		case <-ctx.Done():
			return nil, s.fail(trace, counter, x, ctx.Err())
		default:
		}
		if counter >= s.settings.MaxIterations {
			return nil, s.fail(trace, counter, x, fmt.Errorf("%w (%d iterations)", calc.ErrNonConvergence, counter))
		}

		g1, g2 := s.sys.Value(x, y)
		j := numdiff.Jacobian(s.sys.Value, x, y, h, [2]float64{g1, g2})

		det := j[0][0]*j[1][1] - j[0][1]*j[1][0]
		if det == 0 {
			return nil, s.fail(trace, counter, x, calc.ErrSingularJacobian)
		}

		delta := cramer(j, [2]float64{-g1, -g2}, det)
		estimate := floats.Norm(delta[:], 2)

		trace.Append(calc.Step{
			Iteration:   counter,
			X:           x,
			Y:           calc.Float(y),
			F:           g1,
			G2:          calc.Float(g2),
			Jacobian:    &j,
			Determinant: calc.Float(det),
			DeltaX:      calc.Float(delta[0]),
			DeltaY:      calc.Float(delta[1]),
			AbsDiff:     estimate,
		})

		x += delta[0]
		y += delta[1]
		if !calc.IsFinite(x, y) {
			return nil, s.fail(trace, counter, x, calc.ErrNonFinite)
		}

		if estimate < s.tolerance {
			return s.finish(trace, x, y, counter, estimate), nil
		}
	}
}

func (s *Solver) finish(trace *calc.Trace, x, y float64, iterations int, estimate float64) *Result {
	g1, g2 := s.sys.Value(x, y)
	res := &Result{
		SystemID:   -1,
		X0:         s.x0,
		Y0:         s.y0,
		Tolerance:  s.tolerance,
		X:          x,
		Y:          y,
		G1:         g1,
		G2:         g2,
		Iterations: iterations,
		ErrorValue: estimate,
		Steps:      trace.Steps(),
	}
	if id, ok := s.sys.(identified); ok {
		res.SystemID = int(id.ID())
		res.System = id.Name()
	}
	return res
}

func (s *Solver) fail(trace *calc.Trace, iteration int, x float64, err error) error {
	return &calc.SolveError{
		Method:    "newton system",
		Iteration: iteration,
		X:         x,
		Steps:     trace.Steps(),
		Wrapped:   err,
	}
}

// cramer solves a·v = b for a 2×2 matrix with non-zero determinant det.
func cramer(a [2][2]float64, b [2]float64, det float64) [2]float64 {
	dx := b[0]*a[1][1] - b[1]*a[0][1]
	dy := a[0][0]*b[1] - a[1][0]*b[0]
	return [2]float64{dx / det, dy / det}
}

package solver

import (
	"math"

	"github.com/san-kum/rootlab/internal/calc"
)

// newton runs Newton-Raphson from right when f(right)*f'(right) > 0 and
// from left otherwise. The rule is a concavity heuristic and does not
// guarantee convergence.
func (r *run) newton() (*Result, error) {
	dr, err := r.slope(r.right)
	if err != nil {
		return nil, err
	}

	x0 := r.left
	if r.eq.Value(r.right)*dr > 0 {
		x0 = r.right
	}

	r.begin()
	for n := 1; ; n++ {
		if err := r.guard(n-1, x0); err != nil {
			return nil, err
		}

		fx0 := r.eq.Value(x0)
		dfx0, err := r.slope(x0)
		if err != nil {
			return nil, r.fail(n, x0, err)
		}
		if dfx0 == 0 {
			return nil, r.fail(n, x0, calc.ErrZeroDerivative)
		}

		x := x0 - fx0/dfx0
		if !calc.IsFinite(x) {
			return nil, r.fail(n, x0, calc.ErrNonFinite)
		}
		diff := math.Abs(x - x0)

		r.trace.Append(calc.Step{
			Iteration:  n,
			X:          x0,
			F:          fx0,
			Derivative: calc.Float(dfx0),
			Next:       calc.Float(x),
			AbsDiff:    diff,
		})

		if diff <= r.estimate && math.Abs(r.eq.Value(x)) < r.estimate {
			return r.finish(x, diff, n), nil
		}

		x0 = x
	}
}

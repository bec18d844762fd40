package solver

import (
	"math"

	"github.com/san-kum/rootlab/internal/calc"
)

// secant iterates from the two starting points x0 = left, x1 = right.
func (r *run) secant() (*Result, error) {
	x0, x1 := r.left, r.right

	if math.Abs(r.eq.Value(x1)-r.eq.Value(x0)) < machineEpsilon {
		return nil, r.fail(0, x1, calc.ErrDegenerateSecant)
	}

	r.begin()
	for n := 0; ; n++ {
		if err := r.guard(n, x1); err != nil {
			return nil, err
		}

		f0, f1 := r.eq.Value(x0), r.eq.Value(x1)
		den := f1 - f0
		if den == 0 {
			return nil, r.fail(n, x1, calc.ErrDegenerateSecant)
		}

		x2 := x1 - f1*(x1-x0)/den
		if !calc.IsFinite(x2) {
			return nil, r.fail(n, x1, calc.ErrNonFinite)
		}
		diff := math.Abs(x2 - x1)

		r.trace.Append(calc.Step{
			Iteration: n,
			Prev:      calc.Float(x0),
			X:         x1,
			Next:      calc.Float(x2),
			F:         r.eq.Value(x2),
			AbsDiff:   diff,
		})

		if diff < r.estimate {
			return r.finish(x2, diff, n+1), nil
		}

		x0, x1 = x1, x2
	}
}

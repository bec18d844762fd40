package solver

import (
	"math"

	"github.com/san-kum/rootlab/internal/calc"
)

// bisection halves [a, b] keeping the half with the sign change until the
// bracket is narrower than the estimate.
func (r *run) bisection() (*Result, error) {
	r.begin()
	a, b := r.left, r.right

	var x float64
	for n := 0; ; n++ {
		if err := r.guard(n, x); err != nil {
			return nil, err
		}

		x = (a + b) / 2
		fa, fb, fx := r.eq.Value(a), r.eq.Value(b), r.eq.Value(x)

		r.trace.Append(calc.Step{
			Iteration: n,
			Left:      calc.Float(a),
			Right:     calc.Float(b),
			X:         x,
			FLeft:     calc.Float(fa),
			FRight:    calc.Float(fb),
			F:         fx,
			AbsDiff:   math.Abs(b - a),
		})

		if fa*fx > 0 {
			a = x
		} else {
			b = x
		}

		if width := math.Abs(b - a); width < r.estimate {
			return r.finish(x, width, n+1), nil
		}
	}
}

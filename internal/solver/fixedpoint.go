package solver

import (
	"math"

	"github.com/san-kum/rootlab/internal/calc"
)

// fixedPoint iterates x = x - f(x)/sigma with sigma = max(|f'(left)|, |f'(right)|),
// starting from the endpoint with the steeper slope.
func (r *run) fixedPoint() (*Result, error) {
	dl, err := r.slope(r.left)
	if err != nil {
		return nil, err
	}
	dr, err := r.slope(r.right)
	if err != nil {
		return nil, err
	}

	sigma := math.Max(math.Abs(dl), math.Abs(dr))
	x := r.right
	if math.Abs(dl) > math.Abs(dr) {
		x = r.left
	}

	// The map contracts only where 1 - f'/sigma < 1.
	if sigma == 0 || (1-dl/sigma >= 1 && 1-dr/sigma >= 1) {
		return nil, r.fail(0, x, calc.ErrConvergence)
	}

	r.begin()
	prev := math.Inf(1)
	for n := 0; ; n++ {
		if err := r.guard(n, x); err != nil {
			return nil, err
		}

		next := x - r.eq.Value(x)/sigma
		if !calc.IsFinite(next) {
			return nil, r.fail(n, x, calc.ErrNonFinite)
		}

		diff := math.Abs(next - x)
		if diff > prev {
			return nil, r.fail(n, x, calc.ErrNarrowInterval)
		}

		r.trace.Append(calc.Step{
			Iteration: n,
			X:         x,
			Next:      calc.Float(next),
			F:         r.eq.Value(next),
			AbsDiff:   diff,
		})

		if diff < r.estimate {
			return r.finish(next, diff, n+1), nil
		}

		prev = diff
		x = next
	}
}

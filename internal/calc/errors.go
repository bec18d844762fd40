package calc

import (
	"errors"
	"fmt"
)

// Domain errors for root-finding operations.
var (
	// ErrInvalidSelector indicates an equation or method id outside the catalog.
	ErrInvalidSelector = errors.New("calc: invalid equation or method id")

	// ErrInvalidTolerance indicates a non-positive or non-finite estimate.
	ErrInvalidTolerance = errors.New("calc: estimate must be positive")

	// ErrInvalidInterval indicates a NaN or infinite endpoint.
	ErrInvalidInterval = errors.New("calc: interval endpoints must be finite")

	// ErrSign indicates a bracketing method got an interval without a sign change.
	ErrSign = errors.New("calc: function values at the interval endpoints must have opposite signs")

	// ErrConvergence indicates the fixed-point map does not contract at either endpoint.
	ErrConvergence = errors.New("calc: method does not converge on this interval")

	// ErrNarrowInterval indicates the fixed-point step distance started growing.
	ErrNarrowInterval = errors.New("calc: narrow down the interval, the method converges only in a small neighborhood of the root")

	// ErrZeroDerivative indicates Newton-Raphson hit a zero first derivative.
	ErrZeroDerivative = errors.New("calc: first derivative is zero, refine the input interval")

	// ErrDegenerateSecant indicates the secant denominator vanished.
	ErrDegenerateSecant = errors.New("calc: denominator too small, secant method cannot proceed")

	// ErrSingularJacobian indicates a zero Jacobian determinant.
	ErrSingularJacobian = errors.New("calc: jacobian determinant is zero, system does not meet the sufficient condition for convergence")

	// ErrNonConvergence indicates the iteration ceiling was reached.
	ErrNonConvergence = errors.New("calc: iteration limit reached without convergence")

	// ErrNonFinite indicates an iterate became NaN or Inf.
	ErrNonFinite = errors.New("calc: iterate diverged (NaN or Inf detected)")

	// ErrDerivativeOrder indicates a derivative order other than 1 or 2.
	ErrDerivativeOrder = errors.New("calc: unsupported derivative order")
)

// SolveError wraps an error raised after iteration began with the solver
// context at the point of failure.
type SolveError struct {
	Method    string
	Iteration int
	X         float64
	Steps     []Step
	Wrapped   error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("%s: iteration %d (x=%g): %v", e.Method, e.Iteration, e.X, e.Wrapped)
}

func (e *SolveError) Unwrap() error {
	return e.Wrapped
}

// PartialSteps returns the trace collected before err, if err carries one.
func PartialSteps(err error) []Step {
	var se *SolveError
	if errors.As(err, &se) {
		return se.Steps
	}
	return nil
}

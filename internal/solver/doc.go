// Package solver locates roots of single-variable equations.
//
// Four iterative methods are supported, selected by [Method]:
//
//   - [Bisection]: halves a sign-changing bracket
//   - [FixedPoint]: simple iteration x = x - f(x)/sigma
//   - [Newton]: Newton-Raphson with a forward-difference derivative
//   - [Secant]: secant method from two starting points
//
// Every method records one [calc.Step] per iteration and returns the full
// trace with the [Result]. Bisection, fixed-point and secant round the root
// and function value upward to the precision implied by the estimate;
// Newton-Raphson reports them unrounded.
//
// # Example
//
//	eq, _ := equation.Lookup(1)
//	res, err := solver.New(eq, solver.Bisection).Solve(ctx, -3, -1, 1e-4)
//
// A [Solver] holds no per-call state, so repeated calls with the same
// inputs produce identical results.
package solver

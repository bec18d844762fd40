// Package calc provides the shared primitives for the root-finding engine.
//
// The package defines the types every solver agrees on:
//
//   - [Step]: one per-iteration diagnostic record
//   - [Trace]: append-only log of steps returned with a result
//   - [Settings]: iteration ceiling and finite-difference step sizes
//   - [Observer]: hook notified as steps are recorded
//   - [SolveError]: failure raised after iteration began
//
// # Example
//
//	eq, _ := equation.Lookup(1)
//	s := solver.New(eq, solver.Bisection)
//	res, err := s.Solve(ctx, -3, -1, 1e-4)
//	if errors.Is(err, calc.ErrSign) {
//	    // interval has no sign change
//	}
//
// # Thread Safety
//
// A [Trace] is owned by the solve that created it and is NOT safe for
// concurrent mutation. Finished traces are read-only.
package calc

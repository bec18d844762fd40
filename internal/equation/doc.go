// Package equation provides the closed catalogs of equations the solvers
// operate on.
//
//   - [Scalar]: single-variable equation f(x) = 0 with numeric derivatives
//   - [System]: two-equation system g1(x, y) = 0, g2(x, y) = 0
//
// Catalog entries are selected by wire id through [Lookup] and
// [LookupSystem], which reject ids outside the catalog with
// [calc.ErrInvalidSelector]. Models are immutable and safe to share between
// concurrent solves.
//
//	eq, err := equation.Lookup(1) // x^3 - x + 4
//	fx := eq.Value(-1.8)
//	dfx, _ := eq.Derivative(-1.8, 1)
package equation

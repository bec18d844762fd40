// Package numdiff estimates derivatives by fixed-step finite differences.
//
// Scalar derivatives use a forward difference for order 1 and a central
// difference for order 2. Jacobians of two-variable systems use forward
// differences. Step sizes are supplied by the caller, normally from
// [calc.Settings].
package numdiff

import (
	"fmt"

	"github.com/san-kum/rootlab/internal/calc"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// Derivative returns the order-th derivative of f at x with step h.
//
//	order 1: (f(x+h) - f(x)) / h
//	order 2: (f(x+h) - 2f(x) + f(x-h)) / h²
func Derivative(f func(float64) float64, x, h float64, order int) (float64, error) {
	var formula fd.Formula
	switch order {
	case 1:
		formula = fd.Forward
	case 2:
		formula = fd.Central2nd
	default:
		return 0, fmt.Errorf("%w: %d", calc.ErrDerivativeOrder, order)
	}
	return fd.Derivative(f, x, &fd.Settings{Formula: formula, Step: h}), nil
}

// Func2 is a two-equation system g(x, y) = (g1, g2).
type Func2 func(x, y float64) (float64, float64)

// Jacobian returns the forward-difference Jacobian of g at (x, y):
//
//	[[dg1/dx, dg1/dy],
//	 [dg2/dx, dg2/dy]]
//
// origin must hold g(x, y); it is reused instead of re-evaluating the system.
func Jacobian(g Func2, x, y, h float64, origin [2]float64) [2][2]float64 {
	dst := mat.NewDense(2, 2, nil)
	fd.Jacobian(dst, func(out, in []float64) {
		out[0], out[1] = g(in[0], in[1])
	}, []float64{x, y}, &fd.JacobianSettings{
		Formula:     fd.Forward,
		Step:        h,
		OriginValue: origin[:],
	})

	return [2][2]float64{
		{dst.At(0, 0), dst.At(0, 1)},
		{dst.At(1, 0), dst.At(1, 1)},
	}
}

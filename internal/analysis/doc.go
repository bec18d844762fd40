// Package analysis provides convergence diagnostics for iteration traces.
//
// The package characterizes how a solver approached its answer:
//
//   - [Ratios]: successive step-size ratios e(k+1)/e(k)
//   - [Order]: estimated order of convergence from the last three steps
//   - [Monotonic]: whether step sizes never grew
//   - [Summarize]: all of the above for a finished trace
//
// # Convergence Order
//
// Linear methods (bisection, fixed-point) settle near p = 1, secant near
// p = 1.618, and Newton-Raphson near p = 2:
//
//	sum := analysis.Summarize(res.Steps)
//	if sum.OrderKnown && sum.Order > 1.5 {
//	    // superlinear
//	}
package analysis

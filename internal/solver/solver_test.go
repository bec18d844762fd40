package solver_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rootlab/internal/calc"
	"github.com/san-kum/rootlab/internal/equation"
	"github.com/san-kum/rootlab/internal/solver"
)

const cubicRoot = -1.7963219032638145

func mustLookup(id equation.ID) *equation.Scalar {
	eq, err := equation.Lookup(int(id))
	Expect(err).NotTo(HaveOccurred())
	return eq
}

// plateau is flat outside [-1, 1] and linear inside.
var plateau = equation.NewFunc("plateau", func(x float64) float64 {
	switch {
	case x <= -1:
		return -1
	case x >= 1:
		return 1
	default:
		return x
	}
})

var _ = Describe("Solver", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("bisection", func() {
		It("finds the root of x^3 - x + 4 on [-3, -1]", func() {
			eq := mustLookup(equation.Equation2)
			res, err := solver.New(eq, solver.Bisection).Solve(ctx, -3, -1, 1e-4)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Root).To(BeNumerically("~", -1.7963, 1e-9))
			Expect(math.Abs(res.FunctionValue)).To(BeNumerically("<", 0.01))
			Expect(res.ErrorValue).To(BeNumerically("<", 1e-4))
			Expect(res.Iterations).To(Equal(15))
			Expect(res.Steps).To(HaveLen(res.Iterations))
			Expect(res.Digits).To(Equal(4))
			Expect(res.Display).To(Equal("-1.7963"))
			Expect(res.EquationID).To(Equal(1))
			Expect(res.Err).To(BeEmpty())
		})

		It("halves the bracket on every iteration", func() {
			eq := mustLookup(equation.Equation2)
			res, err := solver.New(eq, solver.Bisection).Solve(ctx, -3, -1, 1e-4)
			Expect(err).NotTo(HaveOccurred())

			for i := 1; i < len(res.Steps); i++ {
				Expect(res.Steps[i].AbsDiff).To(Equal(res.Steps[i-1].AbsDiff / 2))
				Expect(res.Steps[i].Iteration).To(Equal(i))
			}
			Expect(*res.Steps[0].Left).To(Equal(-3.0))
			Expect(*res.Steps[0].Right).To(Equal(-1.0))
		})

		It("keeps f(root) within an order of magnitude of the estimate for every catalog equation", func() {
			brackets := map[equation.ID][2]float64{
				equation.Equation1: {-1, 0},
				equation.Equation2: {-3, -1},
				equation.Equation3: {1, 2},
				equation.Equation4: {-1, 0},
			}
			for id, b := range brackets {
				eq := mustLookup(id)
				res, err := solver.New(eq, solver.Bisection).Solve(ctx, b[0], b[1], 1e-5)
				Expect(err).NotTo(HaveOccurred())
				last := res.Steps[len(res.Steps)-1]
				Expect(math.Abs(eq.Value(last.X))).To(BeNumerically("<", 1e-3), "equation %d", id)
				Expect(res.ErrorValue).To(BeNumerically("<", 1e-5))
			}
		})

		It("rejects an interval without a sign change", func() {
			eq := mustLookup(equation.Equation2)
			_, err := solver.New(eq, solver.Bisection).Solve(ctx, 0, 2, 1e-4)
			Expect(err).To(MatchError(calc.ErrSign))
			Expect(calc.PartialSteps(err)).To(BeEmpty())
		})

		It("stops at the iteration ceiling", func() {
			eq := mustLookup(equation.Equation2)
			_, err := solver.New(eq, solver.Bisection, solver.WithMaxIterations(3)).Solve(ctx, -3, -1, 1e-4)
			Expect(err).To(MatchError(calc.ErrNonConvergence))
			Expect(calc.PartialSteps(err)).To(HaveLen(3))
		})
	})

	Describe("fixed-point iteration", func() {
		It("converges on x^3 - x + 4", func() {
			eq := mustLookup(equation.Equation2)
			res, err := solver.New(eq, solver.FixedPoint).Solve(ctx, -3, -1, 1e-4)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Root).To(BeNumerically("~", cubicRoot, 1e-3))
			Expect(res.ErrorValue).To(BeNumerically("<", 1e-4))
			Expect(res.Steps).To(HaveLen(res.Iterations))
			Expect(*res.Steps[0].Next).To(BeNumerically(">", -3.0))
			Expect(res.Steps[0].X).To(Equal(-3.0), "starts at the endpoint with the steeper slope")
		})

		It("reports a non-contracting map", func() {
			eq := mustLookup(equation.Equation1)
			_, err := solver.New(eq, solver.FixedPoint).Solve(ctx, 1, 2, 1e-3)
			Expect(err).To(MatchError(calc.ErrConvergence))
		})

		It("asks for a narrower interval when the step grows", func() {
			eq := mustLookup(equation.Equation1)
			_, err := solver.New(eq, solver.FixedPoint).Solve(ctx, 0, 2, 1e-3)
			Expect(err).To(MatchError(calc.ErrNarrowInterval))
		})
	})

	Describe("Newton-Raphson", func() {
		It("finds ln 5 for e^x - 5", func() {
			eq := mustLookup(equation.Equation3)
			res, err := solver.New(eq, solver.Newton).Solve(ctx, 1, 2, 1e-6)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Root).To(BeNumerically("~", math.Log(5), 1e-6))
			Expect(math.Abs(res.FunctionValue)).To(BeNumerically("<", 1e-6))
			Expect(res.Rounded).To(BeFalse())
			Expect(res.Steps[0].X).To(Equal(2.0))
			Expect(res.Steps[0].Iteration).To(Equal(1))
			Expect(res.Steps).To(HaveLen(res.Iterations))
		})

		It("returns the root unrounded", func() {
			eq := mustLookup(equation.Equation2)
			res, err := solver.New(eq, solver.Newton).Solve(ctx, -3, -1, 1e-4)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Root).To(BeNumerically("~", cubicRoot, 1e-8))
			Expect(res.Root).NotTo(Equal(calc.CeilTo(res.Root, res.Digits)))
		})

		It("fails on a zero derivative", func() {
			_, err := solver.New(plateau, solver.Newton).Solve(ctx, -2, 2, 1e-4)
			Expect(err).To(MatchError(calc.ErrZeroDerivative))
		})
	})

	Describe("secant", func() {
		It("converges from two starting points", func() {
			eq := mustLookup(equation.Equation2)
			res, err := solver.New(eq, solver.Secant).Solve(ctx, -3, -1, 1e-4)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Root).To(BeNumerically("~", -1.7963, 1e-9))
			Expect(res.Steps).To(HaveLen(res.Iterations))
			Expect(*res.Steps[0].Prev).To(Equal(-3.0))
			Expect(res.Steps[0].X).To(Equal(-1.0))
		})

		It("does not require a sign change", func() {
			eq := mustLookup(equation.Equation3)
			res, err := solver.New(eq, solver.Secant).Solve(ctx, 2, 3, 1e-6)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Root).To(BeNumerically("~", math.Log(5), 1e-5))
		})

		It("fails when both starting points coincide", func() {
			eq := mustLookup(equation.Equation3)
			_, err := solver.New(eq, solver.Secant).Solve(ctx, 1, 1, 1e-4)
			Expect(err).To(MatchError(calc.ErrDegenerateSecant))
		})
	})

	Describe("every method", func() {
		It("is idempotent across calls", func() {
			eq := mustLookup(equation.Equation2)
			for _, m := range solver.Methods() {
				s := solver.New(eq, m)
				first, err := s.Solve(ctx, -3, -1, 1e-4)
				Expect(err).NotTo(HaveOccurred())
				second, err := s.Solve(ctx, -3, -1, 1e-4)
				Expect(err).NotTo(HaveOccurred())
				fresh, err := solver.New(eq, m).Solve(ctx, -3, -1, 1e-4)
				Expect(err).NotTo(HaveOccurred())

				Expect(second).To(Equal(first), m.String())
				Expect(fresh).To(Equal(first), m.String())
			}
		})

		It("notifies observers once per recorded step", func() {
			eq := mustLookup(equation.Equation2)
			for _, m := range solver.Methods() {
				count := 0
				obs := calc.ObserverFunc(func(calc.Step) { count++ })
				res, err := solver.New(eq, m, solver.WithObserver(obs)).Solve(ctx, -3, -1, 1e-4)
				Expect(err).NotTo(HaveOccurred())
				Expect(count).To(Equal(res.Iterations), m.String())
			}
		})

		It("rejects a non-positive estimate", func() {
			eq := mustLookup(equation.Equation2)
			for _, est := range []float64{0, -1e-3, math.NaN()} {
				_, err := solver.New(eq, solver.Bisection).Solve(ctx, -3, -1, est)
				Expect(err).To(MatchError(calc.ErrInvalidTolerance))
			}
		})

		It("rejects non-finite endpoints", func() {
			eq := mustLookup(equation.Equation2)
			_, err := solver.New(eq, solver.Secant).Solve(ctx, math.Inf(-1), -1, 1e-4)
			Expect(err).To(MatchError(calc.ErrInvalidInterval))
		})

		It("honors context cancellation", func() {
			eq := mustLookup(equation.Equation2)
			canceled, cancel := context.WithCancel(ctx)
			cancel()
			_, err := solver.New(eq, solver.Bisection).Solve(canceled, -3, -1, 1e-4)
			Expect(err).To(MatchError(context.Canceled))
		})
	})
})

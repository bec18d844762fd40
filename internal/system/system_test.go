package system

import (
	"context"
	"math"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/rootlab/internal/calc"
	"github.com/san-kum/rootlab/internal/equation"
)

func lookup(t *testing.T, id equation.SystemID) *equation.System {
	t.Helper()
	sys, err := equation.LookupSystem(int(id))
	if err != nil {
		t.Fatalf("lookup system %d: %v", id, err)
	}
	return sys
}

func TestSolveCircleParabola(t *testing.T) {
	g := NewWithT(t)
	sys := lookup(t, equation.System1)

	res, err := New(sys, 1, 1, 1e-4).Solve(context.Background())
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(res.Iterations).To(BeNumerically("<", 20))
	g.Expect(res.ErrorValue).To(BeNumerically("<", 1e-4))
	g.Expect(math.Abs(res.G1)).To(BeNumerically("<", 1e-4))
	g.Expect(math.Abs(res.G2)).To(BeNumerically("<", 1e-4))
	g.Expect(res.X).To(BeNumerically("~", 0.7832, 1e-3))
	g.Expect(res.Y).To(BeNumerically("~", 1.8403, 1e-3))
	g.Expect(res.SystemID).To(Equal(0))
	g.Expect(res.Steps).To(HaveLen(res.Iterations + 1))
}

func TestSolveCatalogSystems(t *testing.T) {
	tests := []struct {
		name   string
		id     equation.SystemID
		x0, y0 float64
	}{
		{"system 1 mirrored", equation.System1, -1, 1},
		{"system 2", equation.System2, 0.5, 0.5},
		{"system 3", equation.System3, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)
			sys := lookup(t, tt.id)
			res, err := New(sys, tt.x0, tt.y0, 1e-4).Solve(context.Background())
			g.Expect(err).NotTo(HaveOccurred())

			g1, g2 := sys.Value(res.X, res.Y)
			g.Expect(math.Abs(g1)).To(BeNumerically("<", 1e-4))
			g.Expect(math.Abs(g2)).To(BeNumerically("<", 1e-4))
		})
	}
}

func TestSolveSingularJacobian(t *testing.T) {
	g := NewWithT(t)
	sys := equation.NewSystemFunc("dependent", func(x, y float64) (float64, float64) {
		return x + y - 1, x + y - 1
	})

	_, err := New(sys, 0, 0, 1e-4).Solve(context.Background())
	g.Expect(err).To(MatchError(calc.ErrSingularJacobian))
}

func TestSolveIterationCeiling(t *testing.T) {
	g := NewWithT(t)
	sys := lookup(t, equation.System1)

	_, err := New(sys, 1, 1, 1e-4, WithMaxIterations(2)).Solve(context.Background())
	g.Expect(err).To(MatchError(calc.ErrNonConvergence))
	g.Expect(calc.PartialSteps(err)).To(HaveLen(2))
}

func TestSolveInvalidTolerance(t *testing.T) {
	g := NewWithT(t)
	sys := lookup(t, equation.System1)

	_, err := New(sys, 1, 1, 0).Solve(context.Background())
	g.Expect(err).To(MatchError(calc.ErrInvalidTolerance))
}

func TestSolveIsIdempotent(t *testing.T) {
	g := NewWithT(t)
	s := New(lookup(t, equation.System3), 0, 0, 1e-6)

	first, err := s.Solve(context.Background())
	g.Expect(err).NotTo(HaveOccurred())
	second, err := s.Solve(context.Background())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(second).To(Equal(first))
}

func TestSolveRecordsJacobian(t *testing.T) {
	g := NewWithT(t)
	var first calc.Step
	seen := 0
	obs := calc.ObserverFunc(func(s calc.Step) {
		if seen == 0 {
			first = s
		}
		seen++
	})

	res, err := New(lookup(t, equation.System1), 1, 1, 1e-4, WithObserver(obs)).Solve(context.Background())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(seen).To(Equal(len(res.Steps)))

	g.Expect(first.Jacobian).NotTo(BeNil())
	g.Expect(first.Jacobian[0][0]).To(BeNumerically("~", 2, 1e-3))
	g.Expect(first.Jacobian[1][0]).To(BeNumerically("~", -6, 1e-3))
	g.Expect(*first.Determinant).To(BeNumerically("~", 2*1-2*(-6), 1e-2))
}

func TestCramer(t *testing.T) {
	a := [2][2]float64{{2, 1}, {1, 3}}
	b := [2]float64{3, 5}
	det := a[0][0]*a[1][1] - a[0][1]*a[1][0]

	v := cramer(a, b, det)
	if math.Abs(v[0]-0.8) > 1e-12 || math.Abs(v[1]-1.4) > 1e-12 {
		t.Errorf("expected (0.8, 1.4), got (%g, %g)", v[0], v[1])
	}
}

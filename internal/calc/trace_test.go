package calc

import (
	"errors"
	"fmt"
	"testing"

	. "github.com/onsi/gomega"
)

func TestTraceAppendAndCopy(t *testing.T) {
	g := NewWithT(t)

	tr := NewTrace()
	_, ok := tr.Last()
	g.Expect(ok).To(BeFalse())

	tr.Append(Step{Iteration: 0, X: 1, AbsDiff: 0.5})
	tr.Append(Step{Iteration: 1, X: 2, AbsDiff: 0.25})

	g.Expect(tr.Len()).To(Equal(2))
	last, ok := tr.Last()
	g.Expect(ok).To(BeTrue())
	g.Expect(last.X).To(Equal(2.0))
	g.Expect(tr.AbsDiffs()).To(Equal([]float64{0.5, 0.25}))

	steps := tr.Steps()
	steps[0].X = 99
	g.Expect(tr.Steps()[0].X).To(Equal(1.0), "Steps must return a copy")
}

func TestTraceObservers(t *testing.T) {
	g := NewWithT(t)

	var seen []int
	tr := NewTrace(ObserverFunc(func(s Step) { seen = append(seen, s.Iteration) }))
	for i := 0; i < 3; i++ {
		tr.Append(Step{Iteration: i})
	}

	g.Expect(seen).To(Equal([]int{0, 1, 2}))
}

func TestSolveErrorUnwrap(t *testing.T) {
	g := NewWithT(t)

	steps := []Step{{Iteration: 0}, {Iteration: 1}}
	err := fmt.Errorf("solve: %w", &SolveError{
		Method:    "newton",
		Iteration: 2,
		X:         0.5,
		Steps:     steps,
		Wrapped:   ErrZeroDerivative,
	})

	g.Expect(errors.Is(err, ErrZeroDerivative)).To(BeTrue())
	g.Expect(err.Error()).To(ContainSubstring("newton: iteration 2"))
	g.Expect(PartialSteps(err)).To(HaveLen(2))
	g.Expect(PartialSteps(ErrSign)).To(BeNil())
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.ScalarStep != 1e-5 {
		t.Errorf("expected scalar step 1e-5, got %g", s.ScalarStep)
	}
	if s.JacobianStep != 1e-4 {
		t.Errorf("expected jacobian step 1e-4, got %g", s.JacobianStep)
	}
	if s.MaxIterations <= 0 {
		t.Error("max iterations should be positive")
	}
}

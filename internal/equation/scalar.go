package equation

import (
	"fmt"
	"math"

	"github.com/san-kum/rootlab/internal/calc"
	"github.com/san-kum/rootlab/internal/numdiff"
)

// ID selects a scalar equation. Wire ids start at 0.
type ID int

const (
	Equation1 ID = iota
	Equation2
	Equation3
	Equation4
)

// Scalar is a single-variable equation f(x) = 0.
type Scalar struct {
	id   ID
	name string
	expr string
	f    func(float64) float64
	step float64
}

var scalars = []Scalar{
	{id: Equation1, name: "equation 1", expr: "1.62x^3 - 8.15x^2 + 4.39x + 4.29", f: func(x float64) float64 {
		return 1.62*math.Pow(x, 3) - 8.15*math.Pow(x, 2) + 4.39*x + 4.29
	}},
	{id: Equation2, name: "equation 2", expr: "x^3 - x + 4", f: func(x float64) float64 {
		return math.Pow(x, 3) - x + 4.0
	}},
	{id: Equation3, name: "equation 3", expr: "e^x - 5", f: func(x float64) float64 {
		return math.Exp(x) - 5.0
	}},
	{id: Equation4, name: "equation 4", expr: "sin(2x) + pi/4", f: func(x float64) float64 {
		return math.Sin(2.0*x) + math.Pi/4.0
	}},
}

// Lookup returns the catalog equation with the given wire id.
func Lookup(id int) (*Scalar, error) {
	if id < 0 || id >= len(scalars) {
		return nil, fmt.Errorf("%w: equation %d (valid 0..%d)", calc.ErrInvalidSelector, id, len(scalars)-1)
	}
	s := scalars[id]
	s.step = calc.DefaultScalarStep
	return &s, nil
}

// Scalars returns every catalog equation in id order.
func Scalars() []*Scalar {
	out := make([]*Scalar, 0, len(scalars))
	for i := range scalars {
		s, _ := Lookup(i)
		out = append(out, s)
	}
	return out
}

// NewFunc wraps an arbitrary function as a Scalar outside the catalog.
// Its ID is -1.
func NewFunc(name string, f func(float64) float64) *Scalar {
	return &Scalar{id: -1, name: name, expr: name, f: f, step: calc.DefaultScalarStep}
}

// WithStep returns a copy of s that differentiates with step h.
func (s *Scalar) WithStep(h float64) *Scalar {
	c := *s
	c.step = h
	return &c
}

func (s *Scalar) ID() ID             { return s.id }
func (s *Scalar) Name() string       { return s.name }
func (s *Scalar) Expression() string { return s.expr }
func (s *Scalar) Step() float64      { return s.step }

func (s *Scalar) Value(x float64) float64 {
	return s.f(x)
}

// Derivative estimates the order-th derivative at x. Only orders 1 and 2
// are supported.
func (s *Scalar) Derivative(x float64, order int) (float64, error) {
	return numdiff.Derivative(s.f, x, s.step, order)
}

// Sample evaluates f at n evenly spaced points over [a, b].
func (s *Scalar) Sample(a, b float64, n int) []float64 {
	if n < 2 {
		return []float64{s.f(a)}
	}
	out := make([]float64, n)
	dx := (b - a) / float64(n-1)
	for i := range out {
		out[i] = s.f(a + float64(i)*dx)
	}
	return out
}

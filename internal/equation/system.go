package equation

import (
	"fmt"
	"math"

	"github.com/san-kum/rootlab/internal/calc"
)

// SystemID selects a two-equation system. Wire ids start at 0.
type SystemID int

const (
	System1 SystemID = iota
	System2
	System3
)

// System is a pair of equations g1(x, y) = 0, g2(x, y) = 0.
type System struct {
	id    SystemID
	name  string
	exprs [2]string
	g     func(x, y float64) (float64, float64)
}

var systems = []System{
	{id: System1, name: "system 1", exprs: [2]string{"x^2 + y^2 - 4", "-3x^2 + y"},
		g: func(x, y float64) (float64, float64) {
			return math.Pow(x, 2) + math.Pow(y, 2) - 4.0, -3.0*math.Pow(x, 2) + y
		}},
	{id: System2, name: "system 2", exprs: [2]string{"x^2 + x - y^2 - 0.15", "x^2 - y + y^2 + 0.17"},
		g: func(x, y float64) (float64, float64) {
			return math.Pow(x, 2) + x - math.Pow(y, 2) - 0.15, math.Pow(x, 2) - y + math.Pow(y, 2) + 0.17
		}},
	{id: System3, name: "system 3", exprs: [2]string{"2y - cos(x + 1)", "x + sin(y) + 0.4"},
		g: func(x, y float64) (float64, float64) {
			return 2.0*y - math.Cos(x+1.0), x + math.Sin(y) + 0.4
		}},
}

// LookupSystem returns the catalog system with the given wire id.
func LookupSystem(id int) (*System, error) {
	if id < 0 || id >= len(systems) {
		return nil, fmt.Errorf("%w: system %d (valid 0..%d)", calc.ErrInvalidSelector, id, len(systems)-1)
	}
	s := systems[id]
	return &s, nil
}

// Systems returns every catalog system in id order.
func Systems() []*System {
	out := make([]*System, 0, len(systems))
	for i := range systems {
		s, _ := LookupSystem(i)
		out = append(out, s)
	}
	return out
}

// NewSystemFunc wraps an arbitrary pair of equations outside the catalog.
func NewSystemFunc(name string, g func(x, y float64) (float64, float64)) *System {
	return &System{id: -1, name: name, exprs: [2]string{name, name}, g: g}
}

func (s *System) ID() SystemID           { return s.id }
func (s *System) Name() string           { return s.name }
func (s *System) Expressions() [2]string { return s.exprs }

// Value returns both residuals at (x, y).
func (s *System) Value(x, y float64) (float64, float64) {
	return s.g(x, y)
}

package solver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/rootlab/internal/calc"
)

// Method is the closed set of scalar root-finding methods. Values match the
// wire method ids.
type Method int

const (
	Bisection Method = iota
	FixedPoint
	Newton
	Secant
)

var methodNames = [...]string{"bisection", "iteration", "newton", "secant"}

var methodAliases = map[string]Method{
	"bisection":        Bisection,
	"half-division":    Bisection,
	"iteration":        FixedPoint,
	"fixed-point":      FixedPoint,
	"simple-iteration": FixedPoint,
	"newton":           Newton,
	"newton-raphson":   Newton,
	"secant":           Secant,
}

// Methods returns every method in id order.
func Methods() []Method {
	return []Method{Bisection, FixedPoint, Newton, Secant}
}

// MethodFromID validates a wire method id.
func MethodFromID(id int) (Method, error) {
	if id < 0 || id >= len(methodNames) {
		return 0, fmt.Errorf("%w: method %d (valid 0..%d)", calc.ErrInvalidSelector, id, len(methodNames)-1)
	}
	return Method(id), nil
}

// ParseMethod accepts a method name, alias, or numeric id.
func ParseMethod(s string) (Method, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if m, ok := methodAliases[key]; ok {
		return m, nil
	}
	if id, err := strconv.Atoi(key); err == nil {
		return MethodFromID(id)
	}
	return 0, fmt.Errorf("%w: unknown method %q", calc.ErrInvalidSelector, s)
}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return "method(" + strconv.Itoa(int(m)) + ")"
	}
	return methodNames[m]
}

// Rounded reports whether the method ceiling-rounds its final answer.
func (m Method) Rounded() bool { return m != Newton }

// Bracketing reports whether the method requires a sign change on [left, right].
func (m Method) Bracketing() bool { return m != Secant }

func (m Method) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Method) UnmarshalText(b []byte) error {
	parsed, err := ParseMethod(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

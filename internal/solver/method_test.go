package solver

import (
	"errors"
	"testing"

	"github.com/san-kum/rootlab/internal/calc"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in   string
		want Method
	}{
		{"bisection", Bisection},
		{"half-division", Bisection},
		{"Fixed-Point", FixedPoint},
		{"iteration", FixedPoint},
		{"newton-raphson", Newton},
		{" secant ", Secant},
		{"2", Newton},
		{"0", Bisection},
	}

	for _, tt := range tests {
		got, err := ParseMethod(tt.in)
		if err != nil {
			t.Errorf("ParseMethod(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMethod(%q): expected %s, got %s", tt.in, tt.want, got)
		}
	}
}

func TestParseMethodInvalid(t *testing.T) {
	for _, in := range []string{"", "regula-falsi", "4", "-1"} {
		if _, err := ParseMethod(in); !errors.Is(err, calc.ErrInvalidSelector) {
			t.Errorf("ParseMethod(%q): expected ErrInvalidSelector, got %v", in, err)
		}
	}
}

func TestMethodProperties(t *testing.T) {
	for _, m := range Methods() {
		if m.Rounded() == (m == Newton) {
			t.Errorf("%s: unexpected rounding policy", m)
		}
		if m.Bracketing() == (m == Secant) {
			t.Errorf("%s: unexpected bracketing flag", m)
		}
	}
	if Method(9).String() != "method(9)" {
		t.Errorf("unexpected name for out-of-range method: %s", Method(9))
	}
}

func TestMethodText(t *testing.T) {
	b, err := Newton.MarshalText()
	if err != nil || string(b) != "newton" {
		t.Fatalf("expected newton, got %q (%v)", b, err)
	}
	var m Method
	if err := m.UnmarshalText([]byte("secant")); err != nil || m != Secant {
		t.Errorf("expected secant, got %s (%v)", m, err)
	}
}

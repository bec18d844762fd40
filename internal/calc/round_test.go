package calc

import (
	"math"
	"testing"
)

func TestDigits(t *testing.T) {
	tests := []struct {
		estimate float64
		expected int
	}{
		{0.0001, 4},
		{1e-6, 6},
		{0.01, 2},
		{0.5, 1},
		{1, 1},
		{10, 1},
		{0.003, 3},
	}

	for _, tt := range tests {
		if got := Digits(tt.estimate); got != tt.expected {
			t.Errorf("Digits(%g): expected %d, got %d", tt.estimate, tt.expected, got)
		}
	}
}

func TestCeilTo(t *testing.T) {
	tests := []struct {
		v        float64
		n        int
		expected float64
	}{
		{1.23451, 4, 1.2346},
		{1.2345, 4, 1.2345},
		{-1.79632, 4, -1.7963},
		{-1.79638, 4, -1.7963},
		{0.01, 1, 0.1},
		{2, 3, 2},
	}

	for _, tt := range tests {
		got := CeilTo(tt.v, tt.n)
		if math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("CeilTo(%g, %d): expected %g, got %g", tt.v, tt.n, tt.expected, got)
		}
	}
}

func TestCeilToNeverRoundsDown(t *testing.T) {
	for _, v := range []float64{-3.14159, -0.00049, 0.00049, 2.71828, 1e-9} {
		if got := CeilTo(v, 3); got < v {
			t.Errorf("CeilTo(%g, 3) = %g is below the input", v, got)
		}
	}
}

func TestFormat(t *testing.T) {
	if got := Format(1.5, 3); got != "1.500" {
		t.Errorf("expected 1.500, got %s", got)
	}
	if got := Format(0.1, -1); got != "0.1" {
		t.Errorf("expected 0.1, got %s", got)
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1, -2, 0) {
		t.Error("expected finite values to pass")
	}
	if IsFinite(1, math.NaN()) {
		t.Error("NaN should not be finite")
	}
	if IsFinite(math.Inf(-1)) {
		t.Error("-Inf should not be finite")
	}
}

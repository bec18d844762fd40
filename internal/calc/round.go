package calc

import (
	"math"
	"strconv"
)

// Digits returns the display precision derived from estimate:
// max(1, ceil(|log10(estimate)|)).
func Digits(estimate float64) int {
	n := int(math.Ceil(math.Abs(math.Log10(estimate))))
	if n < 1 {
		n = 1
	}
	return n
}

// CeilTo rounds v upward to n decimal digits: ceil(v*10^n)/10^n.
func CeilTo(v float64, n int) float64 {
	m := math.Pow(10, float64(n))
	return math.Ceil(v*m) / m
}

// Format renders v with n decimal digits, or the shortest exact form when n < 0.
func Format(v float64, n int) string {
	return strconv.FormatFloat(v, 'f', n, 64)
}

// IsFinite reports whether every value is neither NaN nor Inf.
func IsFinite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

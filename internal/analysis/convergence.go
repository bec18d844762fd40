package analysis

import (
	"math"

	"github.com/san-kum/rootlab/internal/calc"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the convergence behavior of a trace.
type Summary struct {
	Steps      int     `json:"steps" yaml:"steps"`
	FinalDiff  float64 `json:"final_diff" yaml:"final_diff"`
	MaxDiff    float64 `json:"max_diff" yaml:"max_diff"`
	MeanRatio  float64 `json:"mean_ratio" yaml:"mean_ratio"`
	Order      float64 `json:"order" yaml:"order"`
	OrderKnown bool    `json:"order_known" yaml:"order_known"`
	Monotonic  bool    `json:"monotonic" yaml:"monotonic"`
}

// Ratios returns e[k+1]/e[k] for every consecutive pair with e[k] != 0.
func Ratios(diffs []float64) []float64 {
	if len(diffs) < 2 {
		return nil
	}
	out := make([]float64, 0, len(diffs)-1)
	for k := 0; k+1 < len(diffs); k++ {
		if diffs[k] == 0 {
			continue
		}
		out = append(out, diffs[k+1]/diffs[k])
	}
	return out
}

// Order estimates p in e[k+1] ≈ C·e[k]^p from the last three positive step
// sizes. It reports false when fewer than three usable steps exist.
func Order(diffs []float64) (float64, bool) {
	pos := make([]float64, 0, len(diffs))
	for _, d := range diffs {
		if d > 0 && calc.IsFinite(d) {
			pos = append(pos, d)
		}
	}
	if len(pos) < 3 {
		return 0, false
	}

	e0, e1, e2 := pos[len(pos)-3], pos[len(pos)-2], pos[len(pos)-1]
	den := math.Log(e1 / e0)
	if den == 0 {
		return 0, false
	}
	p := math.Log(e2/e1) / den
	if !calc.IsFinite(p) {
		return 0, false
	}
	return p, true
}

// Monotonic reports whether no step size exceeds its predecessor.
func Monotonic(diffs []float64) bool {
	for k := 1; k < len(diffs); k++ {
		if diffs[k] > diffs[k-1] {
			return false
		}
	}
	return true
}

func Summarize(steps []calc.Step) Summary {
	diffs := make([]float64, len(steps))
	for i, s := range steps {
		diffs[i] = s.AbsDiff
	}

	sum := Summary{
		Steps:     len(steps),
		Monotonic: Monotonic(diffs),
	}
	if len(diffs) == 0 {
		return sum
	}

	sum.FinalDiff = diffs[len(diffs)-1]
	sum.MaxDiff = floats.Max(diffs)
	if r := Ratios(diffs); len(r) > 0 {
		sum.MeanRatio = stat.Mean(r, nil)
	}
	sum.Order, sum.OrderKnown = Order(diffs)
	return sum
}

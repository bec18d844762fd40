package viz

import (
	"errors"
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rootlab/internal/calc"
)

var errNoData = errors.New("viz: nothing to plot")

// Sampler evaluates a function at n evenly spaced points; equation.Scalar
// satisfies it.
type Sampler interface {
	Sample(a, b float64, n int) []float64
}

// PlotFunction draws f over [a, b] with a zero line.
func PlotFunction(f Sampler, a, b float64, width, height int, caption string) (string, error) {
	ys := f.Sample(a, b, width)
	if len(ys) == 0 {
		return "", errNoData
	}
	finite := make([]float64, 0, len(ys))
	for _, y := range ys {
		if calc.IsFinite(y) {
			finite = append(finite, y)
		}
	}
	if len(finite) == 0 {
		return "", errNoData
	}

	zero := make([]float64, len(finite))
	return asciigraph.PlotMany([][]float64{finite, zero},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.DarkGray),
	), nil
}

// PlotConvergence draws log10 of each step's abs_diff. Zero differences
// are dropped.
func PlotConvergence(steps []calc.Step, height int) (string, error) {
	logs := make([]float64, 0, len(steps))
	for _, s := range steps {
		if s.AbsDiff > 0 && calc.IsFinite(s.AbsDiff) {
			logs = append(logs, math.Log10(s.AbsDiff))
		}
	}
	if len(logs) == 0 {
		return "", errNoData
	}
	if len(logs) == 1 {
		logs = append(logs, logs[0])
	}
	return asciigraph.Plot(logs,
		asciigraph.Height(height),
		asciigraph.Caption("log10 |step|"),
		asciigraph.SeriesColors(asciigraph.Green),
	), nil
}

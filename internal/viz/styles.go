package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/rootlab/internal/analysis"
	"github.com/san-kum/rootlab/internal/solver"
	"github.com/san-kum/rootlab/internal/system"
)

var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Label = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888899"))

	Value = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00ccff")).
		Bold(true)

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	Selected = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff00ff")).
			Background(lipgloss.Color("#1a001a"))

	ErrorText = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

type field struct{ label, value string }

func renderFields(title string, fields []field) string {
	width := 0
	for _, f := range fields {
		width = max(width, len(f.label))
	}

	var sb strings.Builder
	sb.WriteString(Title.Render(title))
	for _, f := range fields {
		sb.WriteString("\n")
		sb.WriteString(Label.Render(fmt.Sprintf("%-*s", width, f.label)))
		sb.WriteString("  ")
		sb.WriteString(Value.Render(f.value))
	}
	return Panel.Render(sb.String())
}

// Summary renders a scalar result with its convergence diagnostics.
func Summary(res *solver.Result) string {
	sum := analysis.Summarize(res.Steps)
	fields := []field{
		{"equation", res.Equation},
		{"method", res.Method.String()},
		{"interval", fmt.Sprintf("[%g, %g]", res.Left, res.Right)},
		{"estimate", fmt.Sprintf("%g", res.Estimate)},
		{"root", res.Display},
		{"f(root)", fmt.Sprintf("%g", res.FunctionValue)},
		{"error", fmt.Sprintf("%g", res.ErrorValue)},
		{"iterations", fmt.Sprintf("%d", res.Iterations)},
		{"order", order(sum)},
	}
	return renderFields("root", fields)
}

func SystemSummary(res *system.Result) string {
	sum := analysis.Summarize(res.Steps)
	fields := []field{
		{"system", res.System},
		{"start", fmt.Sprintf("(%g, %g)", res.X0, res.Y0)},
		{"tolerance", fmt.Sprintf("%g", res.Tolerance)},
		{"x", fmt.Sprintf("%.10g", res.X)},
		{"y", fmt.Sprintf("%.10g", res.Y)},
		{"g(x, y)", fmt.Sprintf("(%g, %g)", res.G1, res.G2)},
		{"error", fmt.Sprintf("%g", res.ErrorValue)},
		{"iterations", fmt.Sprintf("%d", res.Iterations)},
		{"order", order(sum)},
	}
	return renderFields("solution", fields)
}

func order(sum analysis.Summary) string {
	if !sum.OrderKnown {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", sum.Order)
}

// Sparkline renders values as a single row of block characters, sampled
// down to width.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := max(len(values)/width, 1)

	var sb strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := min(max(int(norm*float64(len(chars)-1)), 0), len(chars)-1)

		c := string(chars[idx])
		switch {
		case norm > 0.7:
			sb.WriteString(SparkHigh.Render(c))
		case norm > 0.3:
			sb.WriteString(SparkMid.Render(c))
		default:
			sb.WriteString(SparkLow.Render(c))
		}
	}
	return sb.String()
}

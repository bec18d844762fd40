package viz

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/rootlab/internal/calc"
	"github.com/san-kum/rootlab/internal/equation"
	"github.com/san-kum/rootlab/internal/solver"
	"github.com/san-kum/rootlab/internal/system"
)

func solveBisection(t *testing.T) *solver.Result {
	t.Helper()
	eq, _ := equation.Lookup(int(equation.Equation2))
	res, err := solver.New(eq, solver.Bisection).Solve(context.Background(), -3, -1, 1e-4)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestSummary(t *testing.T) {
	out := Summary(solveBisection(t))
	for _, want := range []string{"bisection", "-1.7963", "15", "equation 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestSystemSummary(t *testing.T) {
	sys, _ := equation.LookupSystem(0)
	res, err := system.New(sys, 1, 1, 1e-4).Solve(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	out := SystemSummary(res)
	if !strings.Contains(out, "system 1") || !strings.Contains(out, "0.78") {
		t.Errorf("unexpected system summary:\n%s", out)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil, 4); got != "────" {
		t.Errorf("empty sparkline = %q", got)
	}
	out := Sparkline([]float64{1, 2, 3, 4, 5, 6, 7, 8}, 8)
	if !strings.Contains(out, "▁") || !strings.Contains(out, "█") {
		t.Errorf("sparkline should span low to high: %q", out)
	}
}

func TestPlotFunction(t *testing.T) {
	eq, _ := equation.Lookup(int(equation.Equation2))
	out, err := PlotFunction(eq, -3, -1, 40, 8, "x^3 - x + 4")
	if err != nil {
		t.Fatalf("plot: %v", err)
	}
	if !strings.Contains(out, "x^3 - x + 4") {
		t.Error("plot should include caption")
	}
	if len(strings.Split(out, "\n")) < 8 {
		t.Errorf("plot too short:\n%s", out)
	}
}

func TestPlotConvergence(t *testing.T) {
	out, err := PlotConvergence(solveBisection(t).Steps, 6)
	if err != nil {
		t.Fatalf("plot: %v", err)
	}
	if !strings.Contains(out, "log10") {
		t.Error("plot should include caption")
	}

	if _, err := PlotConvergence([]calc.Step{{AbsDiff: 0}}, 6); err == nil {
		t.Error("expected error with no positive diffs")
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBrowserNavigation(t *testing.T) {
	steps := solveBisection(t).Steps
	b := NewBrowser("equation 2", "bisection", steps)

	b.Update(key("down"))
	b.Update(key("down"))
	if b.Cursor() != 2 {
		t.Errorf("expected cursor 2, got %d", b.Cursor())
	}

	b.Update(key("up"))
	b.Update(key("up"))
	b.Update(key("up"))
	if b.Cursor() != 0 {
		t.Errorf("cursor should clamp at 0, got %d", b.Cursor())
	}

	b.Update(key("G"))
	if b.Cursor() != len(steps)-1 {
		t.Errorf("expected last step, got %d", b.Cursor())
	}
	if !strings.Contains(b.View(), "step 15/15") {
		t.Errorf("view should show position:\n%s", b.View())
	}

	b.Update(key("g"))
	b.Update(key("pgdown"))
	if b.Cursor() != pageSize {
		t.Errorf("expected cursor %d after page down, got %d", pageSize, b.Cursor())
	}

	_, cmd := b.Update(key("q"))
	if cmd == nil {
		t.Error("q should return a quit command")
	}
	if b.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestBrowserEmpty(t *testing.T) {
	b := NewBrowser("empty", "", nil)
	b.Update(key("down"))
	if !strings.Contains(b.View(), "no steps recorded") {
		t.Error("empty browser should say so")
	}
}

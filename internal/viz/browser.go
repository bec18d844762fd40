package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/rootlab/internal/calc"
	"github.com/san-kum/rootlab/internal/export"
)

const pageSize = 10

// Browser is a Bubble Tea model that pages through a trace. The selected
// step's fields are shown below the table.
type Browser struct {
	title  string
	header string
	steps  []calc.Step
	cursor int
	offset int
	height int
	quit   bool
}

func NewBrowser(title, header string, steps []calc.Step) *Browser {
	return &Browser{
		title:  title,
		header: header,
		steps:  steps,
		height: pageSize,
	}
}

func (b *Browser) Cursor() int { return b.cursor }

func (b *Browser) Init() tea.Cmd { return nil }

func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			b.quit = true
			return b, tea.Quit
		case "up", "k":
			b.move(-1)
		case "down", "j":
			b.move(1)
		case "pgup":
			b.move(-b.height)
		case "pgdown":
			b.move(b.height)
		case "g", "home":
			b.move(-len(b.steps))
		case "G", "end":
			b.move(len(b.steps))
		}
	case tea.WindowSizeMsg:
		// title, header, column row, detail block, and hints
		b.height = max(msg.Height-14, 3)
		b.clampOffset()
	}
	return b, nil
}

func (b *Browser) move(delta int) {
	if len(b.steps) == 0 {
		return
	}
	b.cursor = min(max(b.cursor+delta, 0), len(b.steps)-1)
	b.clampOffset()
}

func (b *Browser) clampOffset() {
	if b.cursor < b.offset {
		b.offset = b.cursor
	}
	if b.cursor >= b.offset+b.height {
		b.offset = b.cursor - b.height + 1
	}
}

func (b *Browser) View() string {
	if b.quit {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(Title.Render(b.title))
	sb.WriteString("\n")
	if b.header != "" {
		sb.WriteString(Subtle.Render(b.header))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if len(b.steps) == 0 {
		sb.WriteString(Subtle.Render("no steps recorded"))
		sb.WriteString("\n")
		return sb.String()
	}

	var table strings.Builder
	end := min(b.offset+b.height, len(b.steps))
	_ = export.WriteTable(&table, b.steps[b.offset:end])
	lines := strings.Split(strings.TrimRight(table.String(), "\n"), "\n")

	sb.WriteString(Label.Render(lines[0]))
	sb.WriteString("\n")
	for i, line := range lines[1:] {
		if b.offset+i == b.cursor {
			sb.WriteString(Selected.Render(line))
		} else {
			sb.WriteString(line)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(b.detail(b.steps[b.cursor]))
	sb.WriteString("\n")
	sb.WriteString(KeyHint.Render(fmt.Sprintf("step %d/%d  ↑↓ move  pgup/pgdn page  g/G ends  q quit", b.cursor+1, len(b.steps))))
	sb.WriteString("\n")
	return sb.String()
}

func (b *Browser) detail(s calc.Step) string {
	var one strings.Builder
	_ = export.WriteCSV(&one, []calc.Step{s})
	rows := strings.Split(strings.TrimSpace(one.String()), "\n")
	if len(rows) < 2 {
		return ""
	}
	names := strings.Split(rows[0], ",")
	values := strings.Split(rows[1], ",")

	parts := make([]string, 0, len(names))
	for i := range names {
		parts = append(parts, Label.Render(names[i]+"=")+Value.Render(values[i]))
	}
	return strings.Join(parts, "  ")
}

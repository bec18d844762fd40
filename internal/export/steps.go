package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/san-kum/rootlab/internal/calc"
)

type column struct {
	name string
	get  func(calc.Step) *float64
	set  func(*calc.Step, float64)
}

// columns lists every step field in display order. Optional fields only
// appear when at least one step carries them.
var columns = []column{
	{"a", func(s calc.Step) *float64 { return s.Left }, func(s *calc.Step, v float64) { s.Left = calc.Float(v) }},
	{"b", func(s calc.Step) *float64 { return s.Right }, func(s *calc.Step, v float64) { s.Right = calc.Float(v) }},
	{"x_k_1", func(s calc.Step) *float64 { return s.Prev }, func(s *calc.Step, v float64) { s.Prev = calc.Float(v) }},
	{"x_k", func(s calc.Step) *float64 { return &s.X }, func(s *calc.Step, v float64) { s.X = v }},
	{"y_k", func(s calc.Step) *float64 { return s.Y }, func(s *calc.Step, v float64) { s.Y = calc.Float(v) }},
	{"x_k_plus_one", func(s calc.Step) *float64 { return s.Next }, func(s *calc.Step, v float64) { s.Next = calc.Float(v) }},
	{"fa", func(s calc.Step) *float64 { return s.FLeft }, func(s *calc.Step, v float64) { s.FLeft = calc.Float(v) }},
	{"fb", func(s calc.Step) *float64 { return s.FRight }, func(s *calc.Step, v float64) { s.FRight = calc.Float(v) }},
	{"f", func(s calc.Step) *float64 { return &s.F }, func(s *calc.Step, v float64) { s.F = v }},
	{"g2", func(s calc.Step) *float64 { return s.G2 }, func(s *calc.Step, v float64) { s.G2 = calc.Float(v) }},
	{"f_prime_x_k", func(s calc.Step) *float64 { return s.Derivative }, func(s *calc.Step, v float64) { s.Derivative = calc.Float(v) }},
	{"determinant", func(s calc.Step) *float64 { return s.Determinant }, func(s *calc.Step, v float64) { s.Determinant = calc.Float(v) }},
	{"dx", func(s calc.Step) *float64 { return s.DeltaX }, func(s *calc.Step, v float64) { s.DeltaX = calc.Float(v) }},
	{"dy", func(s calc.Step) *float64 { return s.DeltaY }, func(s *calc.Step, v float64) { s.DeltaY = calc.Float(v) }},
	{"abs_diff", func(s calc.Step) *float64 { return &s.AbsDiff }, func(s *calc.Step, v float64) { s.AbsDiff = v }},
}

func present(steps []calc.Step) []column {
	out := make([]column, 0, len(columns))
	for _, c := range columns {
		for _, s := range steps {
			if c.get(s) != nil {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Header returns the column names WriteCSV would emit for steps.
func Header(steps []calc.Step) []string {
	cols := present(steps)
	header := make([]string, 0, len(cols)+1)
	header = append(header, "iteration")
	for _, c := range cols {
		header = append(header, c.name)
	}
	return header
}

func rows(steps []calc.Step, format func(float64) string) [][]string {
	cols := present(steps)
	out := make([][]string, 0, len(steps))
	for _, s := range steps {
		row := make([]string, 0, len(cols)+1)
		row = append(row, strconv.Itoa(s.Iteration))
		for _, c := range cols {
			if v := c.get(s); v != nil {
				row = append(row, format(*v))
			} else {
				row = append(row, "")
			}
		}
		out = append(out, row)
	}
	return out
}

// WriteCSV writes one row per step with full float precision.
func WriteCSV(w io.Writer, steps []calc.Step) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(steps)); err != nil {
		return err
	}
	lossless := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	if err := cw.WriteAll(rows(steps, lossless)); err != nil {
		return err
	}
	return cw.Error()
}

// ReadCSV parses a trace written by WriteCSV.
func ReadCSV(r io.Reader) ([]calc.Step, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []calc.Step{}, nil
	}

	byName := make(map[string]column, len(columns))
	for _, c := range columns {
		byName[c.name] = c
	}

	header := records[0]
	steps := make([]calc.Step, 0, len(records)-1)
	for i, rec := range records[1:] {
		var s calc.Step
		for j, field := range rec {
			if field == "" || j >= len(header) {
				continue
			}
			if header[j] == "iteration" {
				n, err := strconv.Atoi(field)
				if err != nil {
					return nil, fmt.Errorf("export: row %d: %w", i+1, err)
				}
				s.Iteration = n
				continue
			}
			c, ok := byName[header[j]]
			if !ok {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("export: row %d column %s: %w", i+1, header[j], err)
			}
			c.set(&s, v)
		}
		steps = append(steps, s)
	}
	return steps, nil
}

// WriteTable writes an aligned plain-text table.
func WriteTable(w io.Writer, steps []calc.Step) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	short := func(v float64) string { return strconv.FormatFloat(v, 'g', 8, 64) }

	writeRow(tw, Header(steps))
	for _, row := range rows(steps, short) {
		writeRow(tw, row)
	}
	return tw.Flush()
}

func writeRow(w io.Writer, cells []string) {
	for _, c := range cells {
		fmt.Fprint(w, c, "\t")
	}
	fmt.Fprintln(w)
}

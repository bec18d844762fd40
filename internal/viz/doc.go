// Package viz renders solver output in the terminal.
//
// The package covers three surfaces:
//
//   - [Summary] and [SystemSummary]: styled result panels
//   - [PlotFunction] and [PlotConvergence]: asciigraph line charts
//   - [Browser]: a Bubble Tea program for paging through a trace
//
// # Key Bindings
//
//	↑/k, ↓/j  - Move one step
//	pgup/pgdn - Move one page
//	g/G       - First/last step
//	q, esc    - Quit
package viz

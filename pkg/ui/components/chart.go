package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const labelWidth = 8

// plotted is a rendered chart split into its y labels, plot rows and x axis.
type plotted struct {
	labels []string
	rows   []string
	axis   string
}

// plot samples ys on a width x height character grid. Rows at the maximum,
// minimum and zero carry a y label. The y range always includes zero so the
// axis is visible.
func plot(xs, ys []float64, width, height int) (plotted, bool) {
	n := len(ys)
	if n == 0 || len(xs) != n || width < 2 || height < 2 {
		return plotted{}, false
	}

	lo, hi := 0.0, 0.0
	for _, y := range ys {
		lo = math.Min(lo, y)
		hi = math.Max(hi, y)
	}
	if hi == lo {
		hi = lo + 1
	}

	toRow := func(y float64) int {
		return int(math.Round((hi - y) / (hi - lo) * float64(height-1)))
	}

	grid := make([][]rune, height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", width))
	}
	zero := toRow(0)
	for c := range grid[zero] {
		grid[zero][c] = '─'
	}
	for c := 0; c < width; c++ {
		idx := int(math.Round(float64(c) * float64(n-1) / float64(width-1)))
		grid[toRow(ys[idx])][c] = '•'
	}

	values := map[int]float64{0: hi, height - 1: lo}
	values[zero] = 0

	p := plotted{
		labels: make([]string, height),
		rows:   make([]string, height),
	}
	for r, cells := range grid {
		if v, ok := values[r]; ok {
			p.labels[r] = fmt.Sprintf("%*.2f ┤", labelWidth, v)
		} else {
			p.labels[r] = fmt.Sprintf("%*s │", labelWidth, "")
		}
		p.rows[r] = string(cells)
	}

	first := fmt.Sprintf("%.2f", xs[0])
	last := fmt.Sprintf("%.2f", xs[n-1])
	gap := width - len(first) - len(last)
	if gap < 1 {
		gap = 1
	}
	p.axis = strings.Repeat(" ", labelWidth+2) + first + strings.Repeat(" ", gap) + last
	return p, true
}

// Plot renders ys over xs as plain text: one line per grid row, top first,
// then an axis line with the first and last x.
func Plot(xs, ys []float64, width, height int) []string {
	p, ok := plot(xs, ys, width, height)
	if !ok {
		return nil
	}
	lines := make([]string, 0, height+1)
	for r := range p.rows {
		lines = append(lines, p.labels[r]+p.rows[r])
	}
	return append(lines, p.axis)
}

// ChartComponent renders a payoff curve.
type ChartComponent struct {
	xs, ys        []float64
	width, height int
}

// NewChartComponent creates a chart of ys over xs.
func NewChartComponent(xs, ys []float64, width, height int) *ChartComponent {
	return &ChartComponent{xs: xs, ys: ys, width: width, height: height}
}

// View renders the chart. The curve is green when it never goes below
// zero and red otherwise.
func (c *ChartComponent) View() string {
	p, ok := plot(c.xs, c.ys, c.width, c.height)
	if !ok {
		return ""
	}

	axisStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	curveStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	for _, y := range c.ys {
		if y < 0 {
			curveStyle = curveStyle.Foreground(lipgloss.Color("#EF4444"))
			break
		}
	}

	lines := make([]string, 0, len(p.rows)+1)
	for r := range p.rows {
		lines = append(lines, axisStyle.Render(p.labels[r])+curveStyle.Render(p.rows[r]))
	}
	lines = append(lines, axisStyle.Render(p.axis))
	return strings.Join(lines, "\n")
}

package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestPlot(t *testing.T) {
	tests := []struct {
		name          string
		xs, ys        []float64
		width, height int
		want          []string
	}{
		{
			name:   "peak",
			xs:     []float64{0, 1, 2},
			ys:     []float64{0, 10, 0},
			width:  3,
			height: 3,
			want: []string{
				"   10.00 ┤ • ",
				"         │   ",
				"    0.00 ┤•─•",
				"          0.00 2.00",
			},
		},
		{
			name:   "crosses_zero",
			xs:     []float64{0, 1},
			ys:     []float64{-5, 5},
			width:  2,
			height: 3,
			want: []string{
				"    5.00 ┤ •",
				"    0.00 ┤──",
				"   -5.00 ┤• ",
				"          0.00 1.00",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Plot(tt.xs, tt.ys, tt.width, tt.height)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d lines, want %d:\n%s", len(got), len(tt.want), strings.Join(got, "\n"))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPlot_Degenerate(t *testing.T) {
	if got := Plot(nil, nil, 10, 5); got != nil {
		t.Errorf("empty input: got %v, want nil", got)
	}
	if got := Plot([]float64{1, 2}, []float64{1}, 10, 5); got != nil {
		t.Errorf("mismatched input: got %v, want nil", got)
	}
	if got := Plot([]float64{1}, []float64{1}, 1, 5); got != nil {
		t.Errorf("too narrow: got %v, want nil", got)
	}
}

func TestTableComponent(t *testing.T) {
	headers := []string{"Transaction", "Time now", "S < 90"}
	records := [][]string{
		{"Buy 1 call X1", "-12", "0"},
		{"Total", "1", "1"},
	}

	view := NewTableComponent("", headers, records).View()
	lines := strings.Split(view, "\n")

	// top, header, rule, row, rule, total, bottom
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), view)
	}
	width := lipgloss.Width(lines[0])
	for i, l := range lines {
		if lipgloss.Width(l) != width {
			t.Errorf("line %d width = %d, want %d", i, lipgloss.Width(l), width)
		}
	}
	if !strings.Contains(lines[5], "Total") {
		t.Errorf("total row = %q", lines[5])
	}
}

func TestFlagsComponent(t *testing.T) {
	c := NewFlagsComponent("calls", []FlagStatus{
		{Tag: "cx2_overpriced", Description: "X2 call is overpriced"},
		{Tag: "butterfly", Description: "not convex", Violated: true},
	})
	if got := c.Violations(); got != 1 {
		t.Errorf("Violations() = %d, want 1", got)
	}

	view := c.View()
	if !strings.Contains(view, "✗") || !strings.Contains(view, "not convex") {
		t.Errorf("violated rule missing from view:\n%s", view)
	}
	if strings.Contains(view, "no arbitrage detected") {
		t.Errorf("clean banner shown with a violation:\n%s", view)
	}
}

func TestSummaryComponent(t *testing.T) {
	riskless := NewSummaryComponent(Summary{Weighting: "1:2:1", Credit: "1", Min: 1, Max: 11, Mean: 4})
	if !riskless.RiskFree() {
		t.Error("RiskFree() = false for min 1")
	}
	if !strings.Contains(riskless.View(), "1:2:1") {
		t.Errorf("weighting missing:\n%s", riskless.View())
	}

	risky := NewSummaryComponent(Summary{Credit: "-1", Min: -1})
	if risky.RiskFree() {
		t.Error("RiskFree() = true for min -1")
	}
	if strings.Contains(risky.View(), "Weights") {
		t.Errorf("vertical shows weights:\n%s", risky.View())
	}
}

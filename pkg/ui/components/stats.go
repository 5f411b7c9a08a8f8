// Package components provides reusable TUI components.
package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Summary holds the figures shown under a portfolio.
type Summary struct {
	Weighting string // empty for verticals
	Credit    string
	Min       float64
	Max       float64
	Mean      float64
	Points    int
}

// SummaryComponent renders a portfolio summary.
type SummaryComponent struct {
	summary Summary
}

// NewSummaryComponent creates a new summary component.
func NewSummaryComponent(s Summary) *SummaryComponent {
	return &SummaryComponent{summary: s}
}

// RiskFree reports whether the payoff never goes negative.
func (s *SummaryComponent) RiskFree() bool {
	return s.summary.Min >= 0
}

// View renders the summary component.
func (s *SummaryComponent) View() string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	goodStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	badStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)

	verdict := goodStyle.Render("riskless")
	if !s.RiskFree() {
		verdict = badStyle.Render("payoff goes negative")
	}

	out := ""
	if s.summary.Weighting != "" {
		out += style.Render("Weights: ") + valueStyle.Render(s.summary.Weighting) + "  │  "
	}
	out += style.Render("Credit: ") + valueStyle.Render(s.summary.Credit) + "\n"
	out += fmt.Sprintf("%s %s  │  %s %s  │  %s %s  │  %s (%d points)",
		style.Render("Min:"), valueStyle.Render(fmt.Sprintf("%.2f", s.summary.Min)),
		style.Render("Max:"), valueStyle.Render(fmt.Sprintf("%.2f", s.summary.Max)),
		style.Render("Mean:"), valueStyle.Render(fmt.Sprintf("%.2f", s.summary.Mean)),
		verdict, s.summary.Points,
	)
	return out
}

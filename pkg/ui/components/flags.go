package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FlagStatus is one no-arbitrage rule and whether the quotes break it.
type FlagStatus struct {
	Tag         string
	Description string
	Violated    bool
}

// FlagsComponent lists the rules of one option class.
type FlagsComponent struct {
	heading  string
	statuses []FlagStatus
}

// NewFlagsComponent creates a flag list under heading.
func NewFlagsComponent(heading string, statuses []FlagStatus) *FlagsComponent {
	return &FlagsComponent{heading: heading, statuses: statuses}
}

// Violations returns the number of violated rules.
func (f *FlagsComponent) Violations() int {
	n := 0
	for _, s := range f.statuses {
		if s.Violated {
			n++
		}
	}
	return n
}

// View renders the list.
func (f *FlagsComponent) View() string {
	headingStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	badStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	var sb strings.Builder
	sb.WriteString(headingStyle.Render(strings.ToUpper(f.heading)))
	if f.Violations() == 0 {
		sb.WriteString("  " + okStyle.Render("no arbitrage detected"))
	}
	sb.WriteString("\n")

	for _, s := range f.statuses {
		if s.Violated {
			sb.WriteString(fmt.Sprintf("  %s %-15s %s\n", badStyle.Render("✗"), s.Tag, s.Description))
			continue
		}
		sb.WriteString(mutedStyle.Render(fmt.Sprintf("  ✓ %-15s holds", s.Tag)) + "\n")
	}
	return sb.String()
}

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TableComponent renders a payoff table in box drawing characters. The
// last record is the total row and is set off by a rule.
type TableComponent struct {
	title   string
	headers []string
	records [][]string
}

// NewTableComponent creates a table over headers and records.
func NewTableComponent(title string, headers []string, records [][]string) *TableComponent {
	return &TableComponent{title: title, headers: headers, records: records}
}

// widths returns the display width of every column.
func (t *TableComponent) widths() []int {
	w := make([]int, len(t.headers))
	for i, h := range t.headers {
		w[i] = lipgloss.Width(h)
	}
	for _, rec := range t.records {
		for i, cell := range rec {
			if i < len(w) && lipgloss.Width(cell) > w[i] {
				w[i] = lipgloss.Width(cell)
			}
		}
	}
	return w
}

func rule(widths []int, left, mid, right string) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w+2)
	}
	return left + strings.Join(parts, mid) + right
}

func row(widths []int, cells []string, style lipgloss.Style) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		pad := w - lipgloss.Width(cell)
		parts[i] = " " + style.Render(cell) + strings.Repeat(" ", pad) + " "
	}
	return "│" + strings.Join(parts, "│") + "│"
}

// View renders the table.
func (t *TableComponent) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	headerStyle := lipgloss.NewStyle().Bold(true)
	cellStyle := lipgloss.NewStyle()
	totalStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981"))

	widths := t.widths()
	lines := []string{
		rule(widths, "┌", "┬", "┐"),
		row(widths, t.headers, headerStyle),
		rule(widths, "├", "┼", "┤"),
	}
	for i, rec := range t.records {
		if i == len(t.records)-1 {
			lines = append(lines, rule(widths, "├", "┼", "┤"), row(widths, rec, totalStyle))
			continue
		}
		lines = append(lines, row(widths, rec, cellStyle))
	}
	lines = append(lines, rule(widths, "└", "┴", "┘"))

	if t.title == "" {
		return strings.Join(lines, "\n")
	}
	return titleStyle.Render(t.title) + "\n" + strings.Join(lines, "\n")
}

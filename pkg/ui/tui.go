package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fd1az/options-arbitrage/business/arbitrage/domain"
	pricingApp "github.com/fd1az/options-arbitrage/business/pricing/app"
	pricingDomain "github.com/fd1az/options-arbitrage/business/pricing/domain"
	"github.com/fd1az/options-arbitrage/internal/apperror"
	"github.com/fd1az/options-arbitrage/pkg/ui/components"
)

// Phase represents the current UI phase.
type Phase string

const (
	PhaseWelcome Phase = "welcome" // Initial welcome screen
	PhaseForm    Phase = "form"    // Request input
	PhaseResults Phase = "results" // Evaluation report
)

// WelcomeDuration is how long the welcome screen shows before auto-advancing.
const WelcomeDuration = 2 * time.Second

// evaluateTimeout bounds one evaluation started from the form.
const evaluateTimeout = 5 * time.Second

const (
	chartHeight   = 12
	maxChartWidth = 72
)

// Evaluator is the part of the arbitrage evaluator the TUI drives.
type Evaluator interface {
	Evaluate(ctx context.Context, req pricingDomain.Request) (*domain.Evaluation, error)
}

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	evaluator Evaluator
	keys      KeyMap

	// Phase state
	phase        Phase
	welcomeStart time.Time

	form       form
	evaluating bool
	err        error

	evaluation *domain.Evaluation
	selected   int

	width    int
	height   int
	quitting bool
}

// New creates a new TUI model.
func New(evaluator Evaluator) Model {
	return Model{
		evaluator:    evaluator,
		keys:         DefaultKeyMap(),
		phase:        PhaseWelcome,
		welcomeStart: time.Now(),
		form:         newForm(),
	}
}

// Init initializes the TUI model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// tickCmd returns a command that sends a tick every 100ms for the welcome animation.
func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// evaluateCmd runs the evaluation off the update loop.
func evaluateCmd(evaluator Evaluator, req pricingDomain.Request) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), evaluateTimeout)
		defer cancel()

		eval, err := evaluator.Evaluate(ctx, req)
		if err != nil {
			return ErrorMsg{Error: err}
		}
		return EvaluationMsg{Evaluation: eval}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.phase {
		case PhaseWelcome:
			// any key skips the welcome screen
			return m.enterForm()
		case PhaseForm:
			return m.updateForm(msg)
		case PhaseResults:
			return m.updateResults(msg)
		}

	case TickMsg:
		if m.phase != PhaseWelcome {
			return m, nil
		}
		if time.Since(m.welcomeStart) >= WelcomeDuration {
			return m.enterForm()
		}
		return m, tickCmd()

	case EvaluationMsg:
		m.evaluating = false
		m.err = nil
		m.evaluation = msg.Evaluation
		m.selected = 0
		m.phase = PhaseResults
		return m, nil

	case ErrorMsg:
		m.evaluating = false
		m.err = msg.Error
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	if m.phase == PhaseForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) enterForm() (tea.Model, tea.Cmd) {
	m.phase = PhaseForm
	return m, textinput.Blink
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Next):
		return m, m.form.next()
	case key.Matches(msg, m.keys.Prev):
		return m, m.form.prev()
	case key.Matches(msg, m.keys.Submit):
		if m.evaluating {
			return m, nil
		}
		req, err := pricingApp.ParseInline(m.form.input())
		if err == nil {
			err = req.Validate()
		}
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.evaluating = true
		return m, evaluateCmd(m.evaluator, req)
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := 0
	if m.evaluation != nil {
		n = len(m.evaluation.Opportunities)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		return m.enterForm()
	case key.Matches(msg, m.keys.NextOpp):
		if n > 0 {
			m.selected = (m.selected + 1) % n
		}
	case key.Matches(msg, m.keys.PrevOpp):
		if n > 0 {
			m.selected = (m.selected - 1 + n) % n
		}
	}
	return m, nil
}

// Phase returns the current phase.
func (m Model) Phase() Phase {
	return m.phase
}

// Err returns the last rejected input or failed evaluation.
func (m Model) Err() error {
	return m.err
}

// View renders the current phase.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.phase {
	case PhaseWelcome:
		return m.renderWelcomeScreen()
	case PhaseForm:
		return m.renderForm()
	default:
		return m.renderResults()
	}
}

func (m Model) renderWelcomeScreen() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)

	goldStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorWarning)

	// Animated dots based on time
	elapsed := time.Since(m.welcomeStart)
	dots := strings.Repeat(".", int(elapsed.Milliseconds()/300)%4)

	var sb strings.Builder
	sb.WriteString("\n\n\n\n")

	logo := `
     ██████╗ ██████╗ ████████╗    █████╗ ██████╗ ██████╗
    ██╔═══██╗██╔══██╗╚══██╔══╝   ██╔══██╗██╔══██╗██╔══██╗
    ██║   ██║██████╔╝   ██║      ███████║██████╔╝██████╔╝
    ██║   ██║██╔═══╝    ██║      ██╔══██║██╔══██╗██╔══██╗
    ╚██████╔╝██║        ██║      ██║  ██║██║  ██║██████╔╝
     ╚═════╝ ╚═╝        ╚═╝      ╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝
`
	sb.WriteString(titleStyle.Render(logo))
	sb.WriteString("\n")
	sb.WriteString(MutedValue.Render("          S T A T I C   O P T I O N   A R B I T R A G E"))
	sb.WriteString("\n\n\n")
	sb.WriteString(goldStyle.Render("          verticals · butterflies · payoff tables"))
	sb.WriteString("\n\n\n")
	sb.WriteString(PositiveValue.Render(fmt.Sprintf("                      Loading%s", dots)))
	sb.WriteString("\n\n")
	sb.WriteString(MutedValue.Render("              Press any key to skip, or wait..."))
	sb.WriteString("\n")
	return sb.String()
}

func (m Model) renderForm() string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("OPTION ARBITRAGE"))
	sb.WriteString("\n\n")
	sb.WriteString(MutedValue.Render("Three strikes, ascending. Prices separated by commas or spaces."))
	sb.WriteString("\n\n")
	sb.WriteString(m.form.view())
	sb.WriteString("\n")

	switch {
	case m.evaluating:
		sb.WriteString(WarningValue.Render("Evaluating..."))
	case m.err != nil:
		sb.WriteString(ErrorStyle.Render("✗ " + errorText(m.err)))
	}
	sb.WriteString("\n\n")
	sb.WriteString(renderHelp(m.keys.FormHelp()))
	return sb.String()
}

func (m Model) renderResults() string {
	eval := m.evaluation
	if eval == nil {
		return ""
	}
	req := eval.Request

	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("OPTION ARBITRAGE EVALUATION"))
	sb.WriteString("\n\n")
	sb.WriteString(MutedValue.Render(fmt.Sprintf("Mode %s  │  Strikes %s", req.Mode, joinStrings(req.Strikes().Slice()))))
	for _, class := range req.Mode.Classes() {
		if q, ok := req.Quote(class); ok {
			sb.WriteString(MutedValue.Render(fmt.Sprintf("  │  %ss %s", class, joinStrings(q.Slice()))))
		}
	}
	sb.WriteString("\n\n")

	for _, class := range req.Mode.Classes() {
		sb.WriteString(components.NewFlagsComponent(string(class)+"s", flagStatuses(eval, class)).View())
		sb.WriteString("\n")
	}

	if len(eval.Opportunities) == 0 {
		sb.WriteString(PositiveValue.Render("Quotes are free of static arbitrage."))
		sb.WriteString("\n\n")
		sb.WriteString(renderHelp([]key.Binding{m.keys.Back, m.keys.Quit}))
		return sb.String()
	}

	selected := m.selected
	if selected >= len(eval.Opportunities) {
		selected = 0
	}
	opp := eval.Opportunities[selected]

	sb.WriteString(HeaderStyle.Render(fmt.Sprintf("Portfolio %d/%d", selected+1, len(eval.Opportunities))))
	sb.WriteString(MutedValue.Render("[" + opp.Flag.String() + "]"))
	sb.WriteString("\n")
	sb.WriteString(components.NewTableComponent(opp.Title, opp.Table.Headers(), opp.Table.Records()).View())
	sb.WriteString("\n\n")

	summary := components.Summary{
		Credit: opp.Portfolio.Credit().String(),
		Min:    opp.Summary.Min,
		Max:    opp.Summary.Max,
		Mean:   opp.Summary.Mean,
		Points: opp.Curve.Len(),
	}
	if opp.Weighting != nil {
		summary.Weighting = opp.Weighting.String()
	}
	sb.WriteString(components.NewSummaryComponent(summary).View())
	sb.WriteString("\n\n")

	xs := make([]float64, 0, opp.Curve.Len())
	for _, p := range opp.Curve.Points() {
		xs = append(xs, p.Underlying)
	}
	sb.WriteString(components.NewChartComponent(xs, opp.Curve.PayoffFloats(), m.chartWidth(), chartHeight).View())
	sb.WriteString("\n\n")
	sb.WriteString(renderHelp(m.keys.ResultsHelp()))
	return sb.String()
}

func (m Model) chartWidth() int {
	w := m.width - 14
	if w <= 0 || w > maxChartWidth {
		return maxChartWidth
	}
	return w
}

// flagStatuses reports every rule of class in order, marking those the
// evaluation flagged.
func flagStatuses(eval *domain.Evaluation, class pricingDomain.OptionClass) []components.FlagStatus {
	var out []components.FlagStatus
	for _, f := range domain.AllFlags {
		if f.Class() != class {
			continue
		}
		out = append(out, components.FlagStatus{
			Tag:         f.String(),
			Description: f.Description(),
			Violated:    domain.Contains(eval.Flags, f),
		})
	}
	return out
}

func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return HelpStyle.Render(strings.Join(parts, " • "))
}

// errorText renders an error for the status line. Application errors show
// their message and the offending input.
func errorText(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.Context != "" {
			return appErr.Message + ": " + appErr.Context
		}
		return appErr.Message
	}
	return err.Error()
}

func joinStrings[T fmt.Stringer](vals []T) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}

// Run starts the TUI on the alternate screen and blocks until the user quits.
func Run(evaluator Evaluator) error {
	p := tea.NewProgram(New(evaluator), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

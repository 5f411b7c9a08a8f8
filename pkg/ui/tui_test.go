package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/options-arbitrage/business/arbitrage/app"
	arbDomain "github.com/fd1az/options-arbitrage/business/arbitrage/domain"
	payoffApp "github.com/fd1az/options-arbitrage/business/payoff/app"
	"github.com/fd1az/options-arbitrage/internal/apperror"
	"github.com/fd1az/options-arbitrage/internal/logger"
)

func newTestModel(t *testing.T) Model {
	t.Helper()

	evaluator, err := app.NewEvaluator(
		app.NewDetector(),
		payoffApp.NewConstructor(arbDomain.DefaultMaxDenominator),
		app.DefaultEvaluatorConfig(),
		logger.NewDiscard(),
	)
	require.NoError(t, err)
	return New(evaluator)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// submit presses enter on the form and runs the resulting evaluation.
func submit(t *testing.T, m Model) Model {
	t.Helper()
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.evaluating)

	msg := cmd()
	m, _ = update(t, m, msg)
	return m
}

func TestWelcome_AnyKeySkips(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, PhaseWelcome, m.Phase())
	assert.Contains(t, m.View(), "Press any key")

	m, _ = update(t, m, keyRunes("x"))
	assert.Equal(t, PhaseForm, m.Phase())
}

func TestWelcome_AutoAdvance(t *testing.T) {
	m := newTestModel(t)

	m, cmd := update(t, m, TickMsg{})
	assert.Equal(t, PhaseWelcome, m.Phase())
	assert.NotNil(t, cmd)

	m.welcomeStart = time.Now().Add(-WelcomeDuration)
	m, _ = update(t, m, TickMsg{})
	assert.Equal(t, PhaseForm, m.Phase())
}

func TestForm_EvaluateButterfly(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, keyRunes("x"))

	m = submit(t, m)
	require.NoError(t, m.Err())
	assert.Equal(t, PhaseResults, m.Phase())
	require.NotNil(t, m.evaluation)
	assert.Equal(t, []arbDomain.Flag{arbDomain.FlagCallButterfly}, m.evaluation.Flags)

	view := m.View()
	assert.Contains(t, view, "Call Butterfly Arbitrage")
	assert.Contains(t, view, "Portfolio 1/1")
	assert.Contains(t, view, "1:2:1")
	assert.Contains(t, view, "riskless")

	// single opportunity: cycling stays put
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 0, m.selected)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, PhaseForm, m.Phase())
}

func TestForm_NoArbitrage(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, keyRunes("x"))
	m.form.setValue(fieldCalls, "12, 6, 1")

	m = submit(t, m)
	assert.Equal(t, PhaseResults, m.Phase())
	assert.Empty(t, m.evaluation.Opportunities)
	assert.Contains(t, m.View(), "free of static arbitrage")
}

func TestForm_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		field    field
		value    string
		wantCode apperror.Code
	}{
		{"strikes_not_increasing", fieldStrikes, "100, 90, 110", apperror.CodeInvalidStrikes},
		{"two_strikes", fieldStrikes, "90, 100", apperror.CodeInvalidStrikes},
		{"bad_number", fieldCalls, "12, x, 1", apperror.CodeInvalidInput},
		{"unknown_mode", fieldMode, "sideways", apperror.CodeInvalidMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)
			m, _ = update(t, m, keyRunes("x"))
			m.form.setValue(tt.field, tt.value)

			m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
			assert.Nil(t, cmd)
			assert.Equal(t, PhaseForm, m.Phase())
			assert.Equal(t, tt.wantCode, apperror.GetCode(m.Err()))
			assert.Contains(t, m.View(), "✗")
		})
	}
}

func TestForm_FieldsFollowMode(t *testing.T) {
	f := newForm()
	assert.Equal(t, []field{fieldMode, fieldStrikes, fieldCalls}, f.visible())

	f.setValue(fieldMode, "p")
	f.setValue(fieldPuts, "1, 4, 12")
	assert.Equal(t, []field{fieldMode, fieldStrikes, fieldPuts}, f.visible())

	in := f.input()
	assert.Empty(t, in.Calls)
	assert.Equal(t, "1, 4, 12", in.Puts)

	f.next()
	f.next()
	assert.Equal(t, fieldPuts, f.focus)
	f.next()
	assert.Equal(t, fieldMode, f.focus)
	f.prev()
	assert.Equal(t, fieldPuts, f.focus)
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, keyRunes("x"))

	// q is text while the form has focus
	m, _ = update(t, m, keyRunes("q"))
	assert.False(t, m.quitting)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestErrorText(t *testing.T) {
	err := apperror.Validationf(apperror.CodeInvalidStrikes, "x1=%s", "100")
	assert.True(t, strings.HasSuffix(errorText(err), ": x1=100"))
}

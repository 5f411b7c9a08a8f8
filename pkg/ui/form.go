package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	pricingApp "github.com/fd1az/options-arbitrage/business/pricing/app"
	pricingDomain "github.com/fd1az/options-arbitrage/business/pricing/domain"
)

type field int

const (
	fieldMode field = iota
	fieldStrikes
	fieldCalls
	fieldPuts
	fieldCount
)

var fieldLabels = [fieldCount]string{"Mode", "Strikes", "Calls", "Puts"}

// form collects one request as text. Price fields for classes outside the
// typed mode are hidden and skipped.
type form struct {
	inputs [fieldCount]textinput.Model
	focus  field
}

func newForm() form {
	var f form
	defaults := [fieldCount]struct{ placeholder, value string }{
		fieldMode:    {"calls | puts | both", "calls"},
		fieldStrikes: {"X1, X2, X3", "90, 100, 110"},
		fieldCalls:   {"C1, C2, C3", "12, 7, 1"},
		fieldPuts:    {"P1, P2, P3", ""},
	}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = "› "
		in.Placeholder = defaults[i].placeholder
		in.SetValue(defaults[i].value)
		in.CharLimit = 64
		in.Width = 32
		f.inputs[i] = in
	}
	f.inputs[fieldMode].Focus()
	return f
}

// mode parses the mode field. An unparseable mode shows every field.
func (f form) mode() pricingDomain.Mode {
	m, err := pricingDomain.ParseMode(f.inputs[fieldMode].Value())
	if err != nil {
		return pricingDomain.ModeBoth
	}
	return m
}

// visible returns the fields shown for the current mode, in order.
func (f form) visible() []field {
	out := []field{fieldMode, fieldStrikes}
	m := f.mode()
	if m.Includes(pricingDomain.Call) {
		out = append(out, fieldCalls)
	}
	if m.Includes(pricingDomain.Put) {
		out = append(out, fieldPuts)
	}
	return out
}

func (f *form) move(step int) tea.Cmd {
	fields := f.visible()
	pos := 0
	for i, fl := range fields {
		if fl == f.focus {
			pos = i
		}
	}
	pos = (pos + step + len(fields)) % len(fields)

	f.inputs[f.focus].Blur()
	f.focus = fields[pos]
	return f.inputs[f.focus].Focus()
}

func (f *form) next() tea.Cmd { return f.move(1) }
func (f *form) prev() tea.Cmd { return f.move(-1) }

func (f *form) setValue(fl field, v string) {
	f.inputs[fl].SetValue(v)
}

// input returns the typed request. Hidden price fields are left out.
func (f form) input() pricingApp.InlineInput {
	in := pricingApp.InlineInput{
		Mode:    f.inputs[fieldMode].Value(),
		Strikes: f.inputs[fieldStrikes].Value(),
	}
	m := f.mode()
	if m.Includes(pricingDomain.Call) {
		in.Calls = f.inputs[fieldCalls].Value()
	}
	if m.Includes(pricingDomain.Put) {
		in.Puts = f.inputs[fieldPuts].Value()
	}
	return in
}

// update forwards msg to the focused input.
func (f form) update(msg tea.Msg) (form, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f form) view() string {
	var sb strings.Builder
	for _, fl := range f.visible() {
		label := LabelStyle.Render(fieldLabels[fl])
		if fl == f.focus {
			label = FocusedLabelStyle.Render(fieldLabels[fl])
		}
		sb.WriteString(label)
		sb.WriteString(f.inputs[fl].View())
		sb.WriteString("\n")
	}
	return sb.String()
}

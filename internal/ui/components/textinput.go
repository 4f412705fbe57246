// Package components holds reusable Bubble Tea widgets.
package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathcheck/internal/ui/theme"
)

// AnswerInput wraps bubbles/textinput for typing a math answer. After
// Submit it shows a verdict mark until the text changes.
type AnswerInput struct {
	Model     textinput.Model
	submitted bool
	valid     bool
}

// NewAnswerInput creates a focused input accepting at most charLimit runes
// (0 means unlimited).
func NewAnswerInput(placeholder string, charLimit int) AnswerInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.Focus()
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return AnswerInput{Model: ti}
}

// Init returns the initial command.
func (a AnswerInput) Init() tea.Cmd {
	return a.Model.Focus()
}

// Update handles messages. Editing clears the verdict mark.
func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	before := a.Model.Value()

	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)

	if a.Model.Value() != before {
		a.submitted = false
	}
	return a, cmd
}

// View renders the input.
func (a AnswerInput) View() string {
	view := a.Model.View()
	if a.submitted {
		view += " " + theme.Verdict(a.valid)
	}
	return view
}

// Value returns the current text.
func (a AnswerInput) Value() string {
	return a.Model.Value()
}

// SetValue replaces the current text.
func (a *AnswerInput) SetValue(s string) {
	a.Model.SetValue(s)
	a.submitted = false
}

// Submit marks the input as submitted with a verdict.
func (a *AnswerInput) Submit(valid bool) {
	a.submitted = true
	a.valid = valid
}

// Submitted reports whether a verdict is shown and what it is.
func (a AnswerInput) Submitted() (submitted, valid bool) {
	return a.submitted, a.valid
}

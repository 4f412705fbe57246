// Package sandbox is an interactive terminal view for trying candidate
// answers against a fixed correct answer and seeing how the checker reads
// them.
package sandbox

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathcheck/internal/mathcheck"
	"github.com/abhisek/mathcheck/internal/ui/components"
	"github.com/abhisek/mathcheck/internal/ui/layout"
	"github.com/abhisek/mathcheck/internal/ui/theme"
)

// maxHistory is the number of submitted attempts kept on screen.
const maxHistory = 8

// Attempt is a submitted candidate answer.
type Attempt struct {
	Answer     string
	Strategy   mathcheck.Strategy
	Equivalent bool
}

// Model is the sandbox Bubble Tea model.
type Model struct {
	checker *mathcheck.Checker
	correct string

	input       components.AnswerInput
	explanation mathcheck.Explanation
	history     []Attempt

	width  int
	height int
}

// New returns a sandbox comparing typed answers against correct.
func New(checker *mathcheck.Checker, correct string) Model {
	m := Model{
		checker: checker,
		correct: correct,
		input:   components.NewAnswerInput("type an answer, e.g. 2/4", checker.Config().MaxInputLen),
	}
	m.refresh()
	return m
}

// Run starts the sandbox on the terminal and blocks until the user quits.
func Run(checker *mathcheck.Checker, correct string) error {
	_, err := tea.NewProgram(New(checker, correct)).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.input.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			m.submit()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refresh()
	return m, cmd
}

// refresh recomputes the explanation for the current input.
func (m *Model) refresh() {
	m.explanation = m.checker.Explain(m.input.Value(), m.correct)
}

// submit records the current input in the history. Blank input is ignored.
func (m *Model) submit() {
	answer := strings.TrimSpace(m.input.Value())
	if answer == "" {
		return
	}
	m.input.Submit(m.explanation.Equivalent)
	m.history = append([]Attempt{{
		Answer:     answer,
		Strategy:   m.explanation.Strategy,
		Equivalent: m.explanation.Equivalent,
	}}, m.history...)
	if len(m.history) > maxHistory {
		m.history = m.history[:maxHistory]
	}
}

// Explanation returns the explanation of the current input.
func (m Model) Explanation() mathcheck.Explanation {
	return m.explanation
}

// History returns submitted attempts, newest first.
func (m Model) History() []Attempt {
	return m.history
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		v.SetContent(m.renderBody())
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	header := layout.RenderHeader("Sandbox", "= "+m.correct, m.width)
	footer := layout.RenderFooter([]layout.KeyHint{
		{Key: "Enter", Description: "Record"},
		{Key: "Esc", Description: "Quit"},
	}, m.width)
	v.SetContent(layout.RenderFrame(header, m.renderBody(), footer, m.width, m.height))
	return v
}

func (m Model) renderBody() string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("Correct answer: ") + theme.Value.Render(m.correct) + "\n\n")
	b.WriteString(m.input.View() + "\n\n")

	b.WriteString(RenderExplanation(m.explanation) + "\n")

	if len(m.history) > 0 {
		b.WriteString("\n" + theme.Hint.Render("history") + "\n")
		for _, a := range m.history {
			fmt.Fprintf(&b, "  %s %s %s\n", theme.Verdict(a.Equivalent), theme.Body.Render(a.Answer), theme.Hint.Render(string(a.Strategy)))
		}
	}
	return b.String()
}

// RenderExplanation renders ex as a two-column card, typed answer on the
// left and correct answer on the right.
func RenderExplanation(ex mathcheck.Explanation) string {
	rows := [][3]string{
		{"normalized", quoteOrAbsent(ex.User.Normalized), quoteOrAbsent(ex.Correct.Normalized)},
		{"fraction", fractionCell(ex.User.Fraction), fractionCell(ex.Correct.Fraction)},
		{"number", floatCell(ex.User.Number), floatCell(ex.Correct.Number)},
		{"exponent", floatCell(ex.User.Exponent), floatCell(ex.Correct.Exponent)},
		{"expression", floatCell(ex.User.Expression), floatCell(ex.Correct.Expression)},
	}
	column := lipgloss.NewStyle().Width(18)

	var b strings.Builder
	b.WriteString(theme.Label.Render("") + column.Inherit(theme.Hint).Render("typed") + theme.Hint.Render("correct") + "\n")
	for _, r := range rows {
		b.WriteString(theme.Label.Render(r[0]) + column.Render(r[1]) + r[2] + "\n")
	}
	b.WriteString("\n" + theme.Label.Render("verdict") + theme.Verdict(ex.Equivalent) + " " + theme.Strategy.Render(string(ex.Strategy)))
	b.WriteString("  " + theme.Hint.Render(fmt.Sprintf("tolerance %g", ex.Tolerance)))
	return theme.Card.Render(b.String())
}

func quoteOrAbsent(s string) string {
	if s == "" {
		return theme.Absent.Render("·")
	}
	return theme.Value.Render(strconv.Quote(s))
}

func fractionCell(f *mathcheck.Fraction) string {
	if f == nil {
		return theme.Absent.Render("·")
	}
	return theme.Value.Render(f.String())
}

func floatCell(v *float64) string {
	if v == nil {
		return theme.Absent.Render("·")
	}
	return theme.Value.Render(strconv.FormatFloat(*v, 'g', 10, 64))
}

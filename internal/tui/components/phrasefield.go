// Package components holds reusable bubbletea input widgets.
package components

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrEmptyPhrase is returned by Validate when nothing was typed.
var ErrEmptyPhrase = errors.New("type the name shown above")

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	inputStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	matchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// PhraseField is a single line input the user fills with a known phrase,
// such as a file name, to confirm a destructive action.
type PhraseField struct {
	label  string
	phrase string
	input  textinput.Model
	err    error
}

// NewPhraseField creates a field expecting phrase. The phrase doubles as
// placeholder and sizes the input.
func NewPhraseField(label, phrase string) PhraseField {
	ti := textinput.New()
	ti.Placeholder = phrase
	ti.CharLimit = len(phrase) + 64
	ti.Width = len(phrase) + 4

	return PhraseField{
		label:  label,
		phrase: phrase,
		input:  ti,
	}
}

// Focus focuses the input.
func (f *PhraseField) Focus() tea.Cmd {
	return f.input.Focus()
}

// Init implements tea.Model.
func (f PhraseField) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards msg to the input and clears a previous error.
func (f PhraseField) Update(msg tea.Msg) (PhraseField, tea.Cmd) {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if f.err != nil && f.Value() != "" {
		f.err = nil
	}
	return f, cmd
}

// View renders the label, the input and either a match mark or the last
// validation error.
func (f PhraseField) View() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render(f.label))
	b.WriteString("\n")
	b.WriteString(inputStyle.Render(f.input.View()))
	if f.Matches() {
		b.WriteString(matchStyle.Render(" ✓"))
	}
	if f.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(f.err.Error()))
	}
	return b.String()
}

// Value returns the typed text without surrounding whitespace.
func (f PhraseField) Value() string {
	return strings.TrimSpace(f.input.Value())
}

// Matches reports whether the typed text equals the expected phrase.
func (f PhraseField) Matches() bool {
	return f.Value() == f.phrase
}

// Validate rejects an empty input. A mismatching phrase is left to the
// caller, which decides what a wrong answer means.
func (f *PhraseField) Validate() error {
	if f.Value() == "" {
		f.err = ErrEmptyPhrase
		return f.err
	}
	f.err = nil
	return nil
}

package tui

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/av-efi/eficonv/internal/tui/components"
)

// ErrCancelled is returned when the user leaves a prompt with esc or ctrl+c.
var ErrCancelled = errors.New("prompt cancelled")

// ConfirmModel asks the user to type a confirmation phrase.
type ConfirmModel struct {
	title     string
	message   string
	field     components.PhraseField
	keys      KeyMap
	confirmed bool
	cancelled bool
}

// NewConfirmModel creates a focused prompt. phrase is shown as placeholder.
func NewConfirmModel(title, message, phrase string) ConfirmModel {
	field := components.NewPhraseField("Type "+phrase+" to confirm", phrase)
	field.Focus()

	return ConfirmModel{
		title:   title,
		message: message,
		field:   field,
		keys:    DefaultKeyMap(),
	}
}

// Init implements tea.Model.
func (m ConfirmModel) Init() tea.Cmd {
	return m.field.Init()
}

// Update implements tea.Model.
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.cancelled = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Confirm):
			if err := m.field.Validate(); err != nil {
				return m, nil
			}
			m.confirmed = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.field, cmd = m.field.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ConfirmModel) View() string {
	if m.confirmed || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(SymbolWarning + "  " + m.title))
	b.WriteString("\n")
	b.WriteString(WarningBoxStyle.Render(m.message))
	b.WriteString("\n\n")
	b.WriteString(m.field.View())
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render(m.keys.HelpText()))
	b.WriteString("\n")
	return b.String()
}

// Value returns the typed text without surrounding whitespace.
func (m ConfirmModel) Value() string {
	return m.field.Value()
}

// Confirmed reports whether the user submitted the prompt.
func (m ConfirmModel) Confirmed() bool { return m.confirmed }

// Cancelled reports whether the user left the prompt.
func (m ConfirmModel) Cancelled() bool { return m.cancelled }

// RunConfirm shows a ConfirmModel on out and returns what the user typed.
func RunConfirm(ctx context.Context, in io.Reader, out io.Writer, title, message, phrase string) (string, error) {
	p := tea.NewProgram(
		NewConfirmModel(title, message, phrase),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)

	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", err
	}

	m, ok := final.(ConfirmModel)
	if !ok || m.Cancelled() {
		return "", ErrCancelled
	}
	return m.Value(), nil
}

package prompt

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jeeftor/nsiskit/internal/styles"
	"golang.org/x/term"
)

type keyMap struct {
	Yes    key.Binding
	No     key.Binding
	Toggle key.Binding
	Submit key.Binding
	Quit   key.Binding
}

var defaultKeys = keyMap{
	Yes: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "yes"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "N"),
		key.WithHelp("n", "no"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("left", "right", "h", "l", "tab"),
		key.WithHelp("←/→", "switch"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc", "q"),
		key.WithHelp("esc", "abort"),
	),
}

// ConfirmModel is a two-choice prompt. The negative choice is selected first.
type ConfirmModel struct {
	Title       string
	Detail      string
	Affirmative string
	Negative    string

	keys     keyMap
	selected bool // true when the affirmative choice is highlighted
	answer   bool
	done     bool
}

// NewConfirmModel creates a prompt with the given labels
func NewConfirmModel(title, detail, affirmative, negative string) ConfirmModel {
	return ConfirmModel{
		Title:       title,
		Detail:      detail,
		Affirmative: affirmative,
		Negative:    negative,
		keys:        defaultKeys,
	}
}

// Init implements tea.Model
func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Yes):
		m.answer, m.done = true, true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.No), key.Matches(keyMsg, m.keys.Quit):
		m.answer, m.done = false, true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Toggle):
		m.selected = !m.selected
	case key.Matches(keyMsg, m.keys.Submit):
		m.answer, m.done = m.selected, true
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model
func (m ConfirmModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.WarningStyle.Render(m.Title))
	b.WriteString("\n")
	if m.Detail != "" {
		b.WriteString(m.Detail)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	yes, no := styles.ChoiceStyle, styles.SelectedChoiceStyle
	if m.selected {
		yes, no = styles.SelectedChoiceStyle, styles.ChoiceStyle
	}
	b.WriteString(yes.Render(m.Affirmative) + " " + no.Render(m.Negative))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("%s • %s • %s • %s",
		helpText(m.keys.Yes), helpText(m.keys.No), helpText(m.keys.Toggle), helpText(m.keys.Submit))))
	b.WriteString("\n")
	return b.String()
}

func helpText(b key.Binding) string {
	h := b.Help()
	return h.Key + " " + h.Desc
}

// Answer reports the choice and whether the user made one
func (m ConfirmModel) Answer() (bool, bool) {
	return m.answer, m.done
}

// Terminal asks questions on an interactive terminal
type Terminal struct {
	In  io.Reader
	Out io.Writer
}

// NewTerminal uses stdin and stderr
func NewTerminal() *Terminal {
	return &Terminal{In: os.Stdin, Out: os.Stderr}
}

// IsInteractive reports whether stdin is a terminal
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Confirm runs an Overwrite/Abort prompt and returns true for Overwrite
func (t *Terminal) Confirm(ctx context.Context, title, detail string) (bool, error) {
	model := NewConfirmModel(title, detail, "Overwrite", "Abort")
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(t.In),
		tea.WithOutput(t.Out))

	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("confirmation prompt: %w", err)
	}

	answer, _ := final.(ConfirmModel).Answer()
	return answer, nil
}

// Package tui holds the interactive bump picker, a small bubbletea program
// showing one list of candidate versions, moved with the arrow keys and
// confirmed with enter.
package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pixijs/extension-scripts/internal/core/ports"
	"golang.org/x/term"
)

// ErrAborted is returned when the operator leaves the picker without choosing.
var ErrAborted = errors.New("version selection aborted")

// IsInteractive reports whether stdin is attached to a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Quit:   key.NewBinding(key.WithKeys("ctrl+c", "esc", "q"), key.WithHelp("q", "quit")),
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	itemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// pickerModel is the picker state.
type pickerModel struct {
	current string
	choices []ports.VersionChoice
	cursor  int
	chosen  string
	aborted bool
}

func newPickerModel(current string, choices []ports.VersionChoice) pickerModel {
	return pickerModel{current: current, choices: choices}
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, keys.Quit):
		m.aborted = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.Select):
		if len(m.choices) > 0 {
			m.chosen = m.choices[m.cursor].Version
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m pickerModel) View() string {
	if m.chosen != "" || m.aborted {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Current version is %s, select the next version:", m.current)))
	b.WriteString("\n\n")
	for i, c := range m.choices {
		line := fmt.Sprintf("%-11s %s", c.Label, c.Version)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString(itemStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(strings.Join([]string{
		keys.Up.Help().Key + " " + keys.Up.Help().Desc,
		keys.Down.Help().Key + " " + keys.Down.Help().Desc,
		keys.Select.Help().Key + " " + keys.Select.Help().Desc,
		keys.Quit.Help().Key + " " + keys.Quit.Help().Desc,
	}, " • ")))
	return b.String()
}

// BumpPicker implements ports.VersionPrompter with a terminal list.
type BumpPicker struct {
	in  io.Reader
	out io.Writer
}

// NewBumpPicker creates a picker reading keys from in and drawing on out.
func NewBumpPicker(in io.Reader, out io.Writer) ports.VersionPrompter {
	return &BumpPicker{in: in, out: out}
}

// PromptVersion runs the picker until a version is chosen or the operator quits.
func (p *BumpPicker) PromptVersion(current string, choices []ports.VersionChoice) (string, error) {
	if len(choices) == 0 {
		return "", errors.New("no versions to choose from")
	}
	final, err := tea.NewProgram(
		newPickerModel(current, choices),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	).Run()
	if err != nil {
		return "", fmt.Errorf("run version picker: %w", err)
	}
	m, ok := final.(pickerModel)
	if !ok || m.aborted || m.chosen == "" {
		return "", ErrAborted
	}
	return m.chosen, nil
}

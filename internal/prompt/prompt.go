// Package prompt asks the operator for the directory to scan when none was
// given on the command line.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Question is shown above the input field.
const Question = "Please enter the folder path you want to scan (or press Enter for current folder):"

// ErrCanceled is returned when the operator aborts the prompt.
var ErrCanceled = errors.New("prompt canceled")

var (
	questionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type model struct {
	input    textinput.Model
	done     bool
	canceled bool
}

func newModel() model {
	ti := textinput.New()
	ti.Placeholder = "."
	ti.Prompt = "> "
	ti.CharLimit = 4096
	ti.Focus()
	return model{input: ti}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.canceled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.done || m.canceled {
		return ""
	}
	return fmt.Sprintf("%s\n%s\n%s\n", questionStyle.Render(Question), m.input.View(), hintStyle.Render("enter to scan • esc to cancel"))
}

// Answer returns the trimmed input, or "." when it is empty.
func (m model) Answer() string {
	v := strings.TrimSpace(m.input.Value())
	if v == "" {
		return "."
	}
	return v
}

// Interactive reports whether both stdin and stdout are terminals.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// AskDirectory runs the prompt on the given streams.
func AskDirectory(in io.Reader, out io.Writer) (string, error) {
	final, err := tea.NewProgram(newModel(), tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return "", fmt.Errorf("error running prompt: %w", err)
	}
	m, ok := final.(model)
	if !ok || m.canceled {
		return "", ErrCanceled
	}
	return m.Answer(), nil
}

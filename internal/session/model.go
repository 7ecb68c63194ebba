package session

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/addressbook/internal/assistant"
)

// keyMap holds the session key bindings.
type keyMap struct {
	Submit   key.Binding
	Previous key.Binding
	Next     key.Binding
	Complete key.Binding
	Quit     key.Binding
}

// ShortHelp returns the bindings for the help bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Complete, k.Previous, k.Next, k.Quit}
}

// FullHelp returns the bindings grouped for expanded help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Complete},
		{k.Previous, k.Next, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run"),
		),
		Previous: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next"),
		),
		// Completion itself is handled by the text input; this is for the help bar.
		Complete: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "complete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// Model is the Bubble Tea model for the command prompt.
type Model struct {
	exec    Executor
	input   textinput.Model
	help    help.Model
	keys    keyMap
	styles  assistant.Styles
	history []string
	histIdx int // len(history) when not browsing
	last    assistant.Reply
	started bool
	done    bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithStyles sets the styles for the greeting and prompt.
func WithStyles(s assistant.Styles) ModelOption {
	return func(m *Model) { m.styles = s }
}

// WithSuggestions enables tab completion of the given words.
func WithSuggestions(words []string) ModelOption {
	return func(m *Model) {
		m.input.ShowSuggestions = true
		m.input.SetSuggestions(words)
	}
}

// NewModel creates a Model that sends submitted lines to exec.
func NewModel(exec Executor, opts ...ModelOption) Model {
	ti := textinput.New()
	ti.Prompt = PromptText
	ti.Placeholder = "help"
	ti.Focus()

	m := Model{
		exec:  exec,
		input: ti,
		help:  help.New(),
		keys:  defaultKeyMap(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.input.PromptStyle = m.styles.Prompt
	return m
}

// Init prints the greeting and starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.Println(m.styles.Accent.Render(Greeting)),
		textinput.Blink,
	)
}

// Update handles key presses and window resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.started = true
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		m.started = true
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		case key.Matches(msg, m.keys.Previous):
			m.recall(-1)
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.recall(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit executes the current line and echoes it with the reply above the prompt.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()
	if line != "" {
		m.history = append(m.history, line)
	}
	m.histIdx = len(m.history)

	reply := m.exec.Execute(line)
	m.last = reply

	cmds := []tea.Cmd{tea.Println(m.styles.Prompt.Render(PromptText) + line)}
	if reply.Text != "" {
		cmds = append(cmds, tea.Println(reply.Text))
	}
	if reply.Exit {
		m.done = true
		cmds = append(cmds, tea.Quit)
	}
	return m, tea.Sequence(cmds...)
}

// recall moves through previously submitted lines; moving past the newest clears the input.
func (m *Model) recall(step int) {
	if len(m.history) == 0 {
		return
	}
	idx := m.histIdx + step
	if idx < 0 {
		idx = 0
	}
	if idx >= len(m.history) {
		m.histIdx = len(m.history)
		m.input.Reset()
		return
	}
	m.histIdx = idx
	m.input.SetValue(m.history[idx])
	m.input.CursorEnd()
}

// View renders the prompt and the key help bar.
func (m Model) View() string {
	if m.done {
		return ""
	}
	return m.input.View() + "\n" + m.help.View(m.keys)
}

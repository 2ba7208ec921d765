package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/midway/session"
)

const navigationHelp = "Navigation: PgUp/PgDn to scroll, Up/Down for command history"

// Model is the Bubble Tea model for the Midway TUI.
type Model struct {
	session *session.Session
	log     transcript
	history *History

	view   viewport.Model
	prompt textinput.Model

	width    int
	height   int
	ready    bool
	quitting bool
}

// introMsg carries the opening lines into the Update loop.
type introMsg struct {
	lines []string
}

// New creates a TUI model wired to the given session.
func New(s *session.Session) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	return Model{
		session: s,
		prompt:  ti,
		history: NewHistory(100),
	}
}

// Run starts the Bubble Tea program.
func Run(s *session.Session) error {
	p := tea.NewProgram(New(s), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init blinks the cursor and queues the intro.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.intro)
}

// intro lists the banner, the carnival intro and the attractions on offer.
func (m Model) intro() tea.Msg {
	c := m.session.Defs.Carnival
	lines := []string{c.Title + " v" + c.Version + " by " + c.Author, ""}
	if c.Intro != "" {
		lines = append(lines, c.Intro, "")
	}
	cmds, _ := m.session.Meta("/commands")
	return introMsg{lines: append(lines, cmds...)}
}

// Update handles window resizes, key presses and the intro.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case introMsg:
		m.log.add(msg.lines...)
		m.refresh()

	case tea.KeyMsg:
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// handleKey reacts to the keys the model owns. Other keys go to the prompt.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit, true

	case "enter":
		next, cmd := m.submit()
		return next, cmd, true

	case "up":
		if line, ok := m.history.Prev(); ok {
			m.setPrompt(line)
		}
		return m, nil, true

	case "down":
		line, ok := m.history.Next()
		if !ok {
			m.history.ResetCursor()
		}
		m.setPrompt(line)
		return m, nil, true

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		return m, cmd, true
	}
	return m, nil, false
}

// submit runs the prompt line through the session and records the turn.
func (m Model) submit() (tea.Model, tea.Cmd) {
	turn := m.session.Submit(m.prompt.Value())
	m.prompt.SetValue("")
	if turn.Input == "" {
		return m, nil
	}

	m.history.Push(turn.Input)
	if turn.Kind == session.TurnMeta && strings.Fields(turn.Input)[0] == "/help" {
		turn.Lines = append(turn.Lines, "", navigationHelp)
	}
	m.log.record(turn)
	m.refresh()

	if turn.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) setPrompt(line string) {
	m.prompt.SetValue(line)
	m.prompt.CursorEnd()
}

// resize fits the viewport above the status bar and prompt.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	viewHeight := max(height-2, 1)

	if !m.ready {
		m.view = viewport.New(width, viewHeight)
		m.view.KeyMap = viewportKeyMap()
		m.ready = true
	} else {
		m.view.Width = width
		m.view.Height = viewHeight
	}
	m.refresh()
}

// refresh re-renders the transcript and scrolls to the newest line.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.view.SetContent(m.log.render(m.width))
	m.view.GotoBottom()
}

// View renders the transcript, the status bar and the prompt.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}
	return m.view.View() + "\n" + m.renderStatusBar() + "\n" + m.prompt.View()
}

// viewportKeyMap leaves Up/Down to the prompt history.
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/abilitycore/cli"
	"github.com/nathoo/abilitycore/engine"
	"github.com/nathoo/abilitycore/types"
)

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed player input
	isSystem bool // true for system messages
}

// Model is the Bubble Tea model for the AbilityCore TUI.
type Model struct {
	engine *engine.Engine
	info   types.GameInfo

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine // accumulated output lines (unstyled, for re-wrapping)

	width    int
	height   int
	ready    bool
	quitting bool
	lastCmd  string
}

// gameOutputMsg carries output from the engine into the Update loop.
type gameOutputMsg struct {
	input    string   // echoed player input (empty for intro)
	lines    []string // output lines, possibly containing embedded newlines
	isSystem bool     // true for meta-command output
}

// New creates a TUI model wired to the given engine.
func New(eng *engine.Engine, info types.GameInfo, historySize int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	return Model{
		engine:  eng,
		info:    info,
		input:   ti,
		history: NewHistory(historySize),
	}
}

// Run starts the Bubble Tea program.
func Run(eng *engine.Engine, info types.GameInfo, historySize int) error {
	m := New(eng, info, historySize)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init returns the initial command that produces the intro and the roster.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialOutput())
}

func (m Model) initialOutput() tea.Cmd {
	return func() tea.Msg {
		return gameOutputMsg{lines: m.introLines()}
	}
}

func (m Model) introLines() []string {
	var lines []string

	title := m.info.Title
	if m.info.Version != "" {
		title += " v" + m.info.Version
	}
	if m.info.Author != "" {
		title += " by " + m.info.Author
	}
	lines = append(lines, title, "")

	if m.info.Intro != "" {
		lines = append(lines, strings.TrimRight(m.info.Intro, "\n"), "")
	}

	result := m.engine.Step("show")
	return append(lines, result.Output...)
}

// Update handles messages (key presses, window resize, engine output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}

	case gameOutputMsg:
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	return m, inputCmd
}

// resize lays out the viewport above the status bar and input line.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	vpHeight := max(height-2, 1)

	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.viewport.KeyMap = viewportKeyMap()
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}
	m.refreshViewport()
}

// handleKey reacts to keys the model owns. Unhandled keys fall through to
// the text input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit, true

	case "enter":
		next, cmd := m.handleEnter()
		return next, cmd, true

	case "up":
		if prev, ok := m.history.Prev(); ok {
			m.input.SetValue(prev)
			m.input.CursorEnd()
		}
		return m, nil, true

	case "down":
		if next, ok := m.history.Next(); ok {
			m.input.SetValue(next)
			m.input.CursorEnd()
		} else {
			m.input.SetValue("")
		}
		return m, nil, true

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd, true
	}
	return m, nil, false
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}

	m.history.Push(input)
	m.history.ResetCursor()

	// Handle "again" / "g".
	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			m = m.appendOutput(gameOutputMsg{
				input: input, lines: []string{"Nothing to repeat."}, isSystem: true,
			})
			return m, nil
		}
		input = m.lastCmd
	} else if !strings.HasPrefix(input, "/") {
		m.lastCmd = input
	}

	// Meta-commands.
	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(gameOutputMsg{input: input, lines: output, isSystem: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	result := m.engine.Step(input)
	m = m.appendOutput(gameOutputMsg{input: input, lines: result.Output})
	return m, nil
}

// appendOutput adds lines to the scrollback and refreshes the viewport.
// Trace entries may span several physical lines; every physical line is
// stored separately and inherits the kind of the entry's first line.
func (m Model) appendOutput(msg gameOutputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{
			text: "> " + msg.input, isInput: true,
		})
	}

	for _, entry := range msg.lines {
		kind := kindPlain
		if !msg.isSystem {
			kind = classifyLine(entry)
		}
		for _, line := range strings.Split(entry, "\n") {
			m.rawLines = append(m.rawLines, rawLine{text: line, kind: kind, isSystem: msg.isSystem})
		}
	}

	// Blank line separator between commands.
	m.rawLines = append(m.rawLines, rawLine{})

	m.refreshViewport()

	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordWrap(rl.text, width)

		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries. Text that already fits, including separator rules, is
// returned unchanged.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wLen := len(word)

		if i == 0 {
			result.WriteString(word)
			lineLen = wLen
			continue
		}

		if lineLen+1+wLen > width {
			result.WriteString("\n")
			result.WriteString(word)
			lineLen = wLen
		} else {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}

// View renders the full TUI layout: viewport, status bar, input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/help":
		return append(cli.HelpLines(), "",
			"Navigation: PgUp/PgDn to scroll, Up/Down for command history"), false

	case "/state":
		return m.cmdState(), false

	case "/catalog":
		return m.cmdCatalog(), false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func (m *Model) cmdState() []string {
	output := []string{
		fmt.Sprintf("Turn: %d", m.engine.Turn),
		fmt.Sprintf("Commands: %d", len(m.engine.CommandLog)),
	}
	return append(output, m.engine.Summaries()...)
}

func (m *Model) cmdCatalog() []string {
	output := []string{"Abilities:"}
	for _, line := range m.engine.AbilityListing() {
		output = append(output, "  "+line)
	}
	output = append(output, "Statuses:")
	for _, line := range m.engine.StatusListing() {
		output = append(output, "  "+line)
	}
	return output
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
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

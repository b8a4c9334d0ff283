// Package tui plays Kalah in a full screen bubbletea interface: the board on
// the left, the move log on the right and the pit input underneath.
package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/kalah/internal/kalah"
	"github.com/lox/kalah/internal/render"
)

// Model is the bubbletea model for one game
type Model struct {
	logger   *log.Logger
	renderer *render.Renderer

	// UI components
	logViewport viewport.Model
	pitInput    textinput.Model

	// Game state, fed by messages from the engine goroutine
	title    string
	board    kalah.Snapshot
	hasBoard bool
	view     kalah.View
	waiting  bool
	finished bool
	outcome  string
	gameLog  []string

	// moves carries submitted input to the Session; quit is closed once
	moves    chan string
	quit     chan struct{}
	quitOnce sync.Once

	quitting    bool
	focusedPane int // 0 = log, 1 = input

	// Dimensions
	width       int
	height      int
	initialized bool
}

type (
	eventMsg    struct{ event kalah.GameEvent }
	promptMsg   struct{ view kalah.View }
	rejectedMsg struct {
		input string
		err   error
	}
)

// QuitMsg asks the model to exit
type QuitMsg struct{}

// NewModel creates a model that renders boards with r
func NewModel(r *render.Renderer, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "Waiting for the game to start"
	ti.Focus()
	ti.CharLimit = 20
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	return &Model{
		logger:      logger.WithPrefix("tui"),
		renderer:    r,
		logViewport: vp,
		pitInput:    ti,
		moves:       make(chan string, 1),
		quit:        make(chan struct{}),
		focusedPane: 1,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages in the TUI. It never blocks: submitted input goes
// into a buffered channel that holds at most one pending move.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case QuitMsg:
		return m, m.exit()

	case eventMsg:
		m.handleEvent(msg.event)

	case promptMsg:
		m.view = msg.view
		m.board = msg.view.Board
		m.hasBoard = true
		m.waiting = true
		m.pitInput.Placeholder = fmt.Sprintf("%s: pit 1-%d, or quit", msg.view.Player, msg.view.Rules.PitsPerPlayer)

	case rejectedMsg:
		m.AddLogEntry(ErrorStyle.Render(fmt.Sprintf("%q: %s", msg.input, msg.err)))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, m.exit()
		case "tab":
			// Switch focus between log and input
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.pitInput.Focus()
			} else {
				m.focusedPane = 0
				m.pitInput.Blur()
			}
		case "enter":
			if m.finished {
				return m, m.exit()
			}
			if m.focusedPane == 1 {
				input := strings.TrimSpace(m.pitInput.Value())
				m.pitInput.SetValue("")
				if cmd := m.submit(input); cmd != nil {
					return m, cmd
				}
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.pitInput, cmd = m.pitInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit hands input to the waiting mover
func (m *Model) submit(input string) tea.Cmd {
	switch strings.ToLower(input) {
	case "quit", "q", "exit":
		return m.exit()
	case "":
		return nil
	}
	if !m.waiting {
		return nil
	}

	select {
	case m.moves <- input:
		m.waiting = false
		m.pitInput.Placeholder = "..."
	default:
		m.logger.Warn("Dropped input, a move is already pending", "input", input)
	}
	return nil
}

func (m *Model) exit() tea.Cmd {
	m.quitting = true
	m.quitOnce.Do(func() { close(m.quit) })
	return tea.Sequence(tea.ClearScreen, tea.Quit)
}

func (m *Model) handleEvent(event kalah.GameEvent) {
	switch e := event.(type) {
	case kalah.GameStartEvent:
		m.title = fmt.Sprintf("%s vs %s", e.First, e.Second)
		m.board = e.Board
		m.hasBoard = true
		m.view.Active = kalah.First
		m.AddLogEntry(InfoStyle.Render(render.Describe(e)))
	case kalah.TurnEvent:
		m.board = e.Board
		m.view.Active = e.Next
		m.AddLogEntry(render.Describe(e))
	case kalah.GameEndEvent:
		m.board = e.Board
		m.finished = true
		m.waiting = false
		m.outcome = render.Describe(e)
		m.AddLogEntry(SuccessStyle.Render(m.outcome))
		m.pitInput.Placeholder = "Press enter to exit"
	}
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	// Don't render until we have valid dimensions
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	inputContent := m.renderInputPane()
	inputHeight := lipgloss.Height(inputContent)
	inputPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.borderColor(1)).
		Width(max(m.width-2, 1)).
		Render(inputContent)

	boardContent := m.renderBoardPane()
	boardWidth := max(lipgloss.Width(boardContent), 30)
	paneHeight := max(m.height-inputHeight-4, 1)

	boardPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BlurredBorderColor).
		Width(boardWidth).
		Height(paneHeight).
		Render(boardContent)

	logWidth := max(m.width-boardWidth-4, 1)
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.borderColor(0)).
		Width(logWidth).
		Height(paneHeight).
		Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, boardPane, logPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, inputPane)
}

func (m *Model) borderColor(pane int) lipgloss.Color {
	if m.focusedPane == pane {
		return FocusedBorderColor
	}
	return BlurredBorderColor
}

func (m *Model) renderBoardPane() string {
	if !m.hasBoard {
		return InfoStyle.Render("Waiting for the game to start...")
	}

	var content strings.Builder
	if m.title != "" {
		content.WriteString(HeaderStyle.Render(m.title))
		content.WriteString("\n\n")
	}

	r := m.renderer
	if !m.finished {
		r = r.WithActive(m.view.Active)
	}
	content.WriteString(r.Board(m.board))
	content.WriteString("\n\n")

	if m.finished {
		content.WriteString(SuccessStyle.Render(m.outcome))
	} else {
		content.WriteString(TurnStyle.Render(fmt.Sprintf("%s to move", m.board.Side(m.view.Active).Name)))
	}
	return content.String()
}

func (m *Model) renderInputPane() string {
	var content strings.Builder
	content.WriteString(m.pitInput.View())
	content.WriteString("\n")

	if m.focusedPane == 0 {
		content.WriteString(InfoStyle.Render("Log focused: ↑↓ scroll, Home/End, Tab to input"))
	} else {
		content.WriteString(InfoStyle.Render("Tab to scroll log • Enter to submit • Ctrl+C to quit"))
	}
	return content.String()
}

// AddLogEntry adds an entry to the move log and scrolls to it
func (m *Model) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))

	// Only call GotoBottom if viewport has valid dimensions
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// Log returns a copy of the log entries
func (m *Model) Log() []string {
	entries := make([]string, len(m.gameLog))
	copy(entries, m.gameLog)
	return entries
}

// Finished reports whether the game end has been shown
func (m *Model) Finished() bool { return m.finished }

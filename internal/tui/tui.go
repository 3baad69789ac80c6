package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/tatianab/mini-dungeon/internal/engine"
	"github.com/tatianab/mini-dungeon/internal/input"
	"github.com/tatianab/mini-dungeon/internal/models"
	"github.com/tatianab/mini-dungeon/internal/render"
	"github.com/tatianab/mini-dungeon/internal/story"
)

type sessionState int

const (
	statePlaying sessionState = iota
	stateOutcome
	stateGoodbye
)

type model struct {
	state     sessionState
	graph     *story.Graph
	session   *engine.Session
	node      *models.StoryNode
	textInput textinput.Model
	logger    *zap.Logger
	width     int
}

var (
	sceneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))

	narrativeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	questionStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true)

	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			PaddingLeft(2)

	victoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5FD75F")).
			Bold(true)

	defeatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D75F5F")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)
)

func NewModel(g *story.Graph, logger *zap.Logger) model {
	ti := textinput.New()
	ti.Placeholder = "Type your answer..."
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 40

	m := model{
		graph:     g,
		textInput: ti,
		logger:    logger,
	}
	m.start()
	return m
}

// start discards any previous session and begins a fresh one at the root.
func (m *model) start() {
	m.session = engine.NewSession(m.graph)
	m.node = m.graph.Root()
	m.state = statePlaying
	m.logger.Info("Session started",
		zap.String("session_id", m.session.ID.String()),
		zap.String("story", m.graph.Title()))
	if m.node.Kind.Terminal() {
		m.end()
	}
}

// end switches to the outcome screen for the terminal node m.node.
func (m *model) end() {
	m.state = stateOutcome
	m.logger.Info("Session ended",
		zap.String("session_id", m.session.ID.String()),
		zap.String("node", m.node.ID),
		zap.Strings("history", m.session.History))
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			answer := m.textInput.Value()
			m.textInput.Reset()
			return m.submit(answer)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
	}

	if m.state != stateGoodbye {
		m.textInput, cmd = m.textInput.Update(msg)
	}
	return m, cmd
}

// submit applies one answer. Unrecognised answers leave the prompt as it is.
func (m model) submit(answer string) (tea.Model, tea.Cmd) {
	switch m.state {
	case statePlaying:
		next, err := engine.Advance(m.graph, m.session, answer)
		if errors.Is(err, engine.ErrUnknownAnswer) {
			return m, nil
		}
		if err != nil {
			m.logger.Error("Transition failed", zap.Error(err))
			return m, tea.Quit
		}
		m.logger.Debug("Transition",
			zap.String("session_id", m.session.ID.String()),
			zap.String("from", m.node.ID),
			zap.String("to", next.ID))
		m.node = next
		if next.Kind.Terminal() {
			m.end()
		}
		return m, nil

	case stateOutcome:
		choice, ok := input.Match(answer, engine.ReplayOptions)
		if !ok {
			return m, nil
		}
		m.logger.Info("Replay decision",
			zap.String("session_id", m.session.ID.String()),
			zap.Bool("replay", choice == "yes"))
		if choice == "yes" {
			m.start()
			return m, nil
		}
		m.state = stateGoodbye
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	var s string
	text := narrativeStyle
	if m.width > 0 {
		text = text.Width(m.width)
	}

	switch m.state {
	case statePlaying:
		var parts []string
		if m.node.Scene != nil {
			parts = append(parts, sceneStyle.Render(strings.TrimRight(render.Render(*m.node.Scene), "\n")))
		}
		if m.node.Narrative != "" {
			parts = append(parts, text.Render(m.node.Narrative))
		}
		parts = append(parts, m.renderPrompt(m.node.Prompt.Question, m.node.Prompt.Options))
		s = lipgloss.JoinVertical(lipgloss.Left, parts...)

	case stateOutcome:
		style := defeatStyle
		if m.node.Kind == models.KindVictory {
			style = victoryStyle
		}
		parts := []string{style.Render(strings.TrimRight(engine.Banner(m.node.Kind), "\n"))}
		if m.node.OutcomeMessage != "" {
			parts = append(parts, text.Render(m.node.OutcomeMessage))
		}
		parts = append(parts, m.renderPrompt(engine.ReplayQuestion, engine.ReplayOptions))
		s = lipgloss.JoinVertical(lipgloss.Left, parts...)

	case stateGoodbye:
		s = engine.Goodbye
	}

	return "\n" + s + "\n"
}

func (m model) renderPrompt(question string, options []models.OptionSpec) string {
	lines := []string{"", questionStyle.Render(question)}
	for _, label := range input.DisplayLabels(options) {
		lines = append(lines, optionStyle.Render("> "+label))
	}
	lines = append(lines,
		"",
		m.textInput.View(),
		"",
		helpStyle.Render("Press Esc to quit."),
	)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Run plays g in a full-screen terminal UI until the player quits.
func Run(g *story.Graph, logger *zap.Logger) error {
	p := tea.NewProgram(NewModel(g, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

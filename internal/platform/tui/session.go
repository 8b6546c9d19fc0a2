package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/volcano-flap/internal/audio"
	"github.com/vovakirdan/volcano-flap/internal/core"
	"github.com/vovakirdan/volcano-flap/internal/logging"
	"github.com/vovakirdan/volcano-flap/internal/registry"
	"github.com/vovakirdan/volcano-flap/internal/storage"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel manages the full session flow: menu -> game or scoreboard -> menu.
// It is the top-level model for SSH sessions and for the local menu.
type SessionModel struct {
	store      *storage.Store
	config     core.RuntimeConfig
	username   string
	soundtrack audio.Soundtrack
	logger     *log.Logger

	screen     sessionScreen
	menu       MenuModel
	game       *Model
	scoreboard ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a new session model for username.
// A nil soundtrack or logger is replaced with a silent one.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string, soundtrack audio.Soundtrack, logger *log.Logger) SessionModel {
	if soundtrack == nil {
		soundtrack = audio.Nop{}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return SessionModel{
		store:      store,
		config:     cfg,
		username:   username,
		soundtrack: soundtrack,
		logger:     logger,
		menu:       NewMenuModel(store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scoreboard = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.scoreboard.Init()

	case m.menu.Selected() != nil:
		gameID := m.menu.Selected().GameID
		game, err := registry.Create(gameID)
		if err != nil {
			// Only registered games are listed.
			m.logger.Error("cannot create game", "game", gameID, "error", err)
			m.menu = NewMenuModel(m.store, m.config)
			return m, nil
		}

		m.logger.Info("game started", "game", gameID, "user", m.username)
		gameModel := NewModel(game, m.config,
			WithStore(m.store),
			WithSoundtrack(m.soundtrack),
			WithLogger(m.logger.With("game", gameID)),
			WithPlayer(m.username),
			WithBackToMenu(),
		)
		m.game = &gameModel
		m.screen = screenGame
		return m, m.game.Init()
	}

	// Menu commands are dropped once a choice is made, tea.Quit included.
	return m, cmd
}

// updateGame handles updates while a game is running.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.logger.Info("game left", "game", m.game.game.ID(), "score", m.game.State().Score)
		m.game = nil
		m.backToMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScores handles updates while the scoreboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		m.backToMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

func (m *SessionModel) backToMenu() {
	m.menu = NewMenuModel(m.store, m.config)
	m.screen = screenMenu
}

// Stop releases resources held by a running game.
func (m SessionModel) Stop() {
	if m.game != nil {
		m.game.stop()
	}
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}

// IsQuitting returns true if the user left the session.
func (m SessionModel) IsQuitting() bool {
	return m.quitting
}

// RunSession runs the menu-driven session on the local terminal.
func RunSession(store *storage.Store, cfg core.RuntimeConfig, username string, soundtrack audio.Soundtrack, logger *log.Logger) error {
	model := NewSessionModel(store, cfg, username, soundtrack, logger)

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if sm, ok := final.(SessionModel); ok {
		sm.Stop()
	}
	return err
}

package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/volcano-flap/internal/audio"
	"github.com/vovakirdan/volcano-flap/internal/core"
	"github.com/vovakirdan/volcano-flap/internal/logging"
	"github.com/vovakirdan/volcano-flap/internal/registry"
	"github.com/vovakirdan/volcano-flap/internal/storage"
)

// helpRows is the height of the key help bar below the game.
const helpRows = 1

// configReporter is implemented by games that load config files on Reset.
type configReporter interface {
	ConfigIssues() []error
}

// runReporter is implemented by games that can describe a finished run.
type runReporter interface {
	Elapsed() time.Duration
	Cleared() int
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	help       help.Model
	soundtrack audio.Soundtrack
	logger     *log.Logger
	player     string
	allowBack  bool

	inputFrame core.InputFrame
	gameState  core.GameState
	generation int       // id of the live tick loop
	ticking    bool      // whether a tick loop is scheduled
	lastTick   time.Time // zero until the first tick of a loop
	runSaved   bool      // whether the current game over has been recorded
	quitting   bool
	backToMenu bool
}

// Option configures a Model.
type Option func(*Model)

// WithStore records finished runs in store.
func WithStore(store *storage.Store) Option {
	return func(m *Model) { m.store = store }
}

// WithSoundtrack plays s while a session is running.
func WithSoundtrack(s audio.Soundtrack) Option {
	return func(m *Model) { m.soundtrack = s }
}

// WithLogger sets the logger for storage and soundtrack failures.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithPlayer tags saved runs with a player name.
func WithPlayer(name string) Option {
	return func(m *Model) { m.player = name }
}

// WithBackToMenu lets Back leave a paused or finished game.
func WithBackToMenu() Option {
	return func(m *Model) { m.allowBack = true }
}

// NewModel creates a new Bubble Tea model for the given game. cfg holds the
// terminal size; one row is kept for the help bar.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts ...Option) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg.ScreenH = max(cfg.ScreenH-helpRows, 0)

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
		soundtrack: audio.Nop{},
		logger:     logging.Discard(),
		inputFrame: core.NewInputFrame(),
		ticking:    true,
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.logConfigIssues()
	return m
}

// logConfigIssues reports config files the game fell back from.
func (m *Model) logConfigIssues() {
	cr, ok := m.game.(configReporter)
	if !ok {
		return
	}
	for _, err := range cr.ConfigIssues() {
		m.logger.Warn("config skipped, using fallback", "game", m.game.ID(), "err", err)
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate, m.generation)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMapper.Keys()
	if key.Matches(msg, keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.stop()
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) && m.allowBack && (m.gameState.GameOver || m.gameState.Paused) {
		m.stop()
		m.backToMenu = true
		return m, nil
	}

	if !m.ticking && (m.inputFrame.Has(core.ActionRestart) || m.inputFrame.Has(core.ActionStart)) {
		return m, m.startTicking()
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = max(msg.Height-helpRows, 0)
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)
	m.help.Width = msg.Width

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(m.config.ScreenW, m.config.ScreenH)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	m.gameState = m.game.State()

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.generation || !m.ticking {
		return m, nil
	}

	var dt time.Duration
	if !m.lastTick.IsZero() {
		dt = msg.Time.Sub(m.lastTick)
	}
	m.lastTick = msg.Time

	prev := m.gameState
	result := m.game.Step(m.inputFrame, dt)
	m.gameState = result.State
	m.inputFrame.Clear()

	cur := m.gameState
	if (!prev.Started && cur.Started) || (prev.GameOver && !cur.GameOver) {
		m.runSaved = false
		m.playSoundtrack()
	}
	if result.Hit {
		m.logger.Debug("hit", "game", m.game.ID(), "lives", cur.Lives, "score", cur.Score)
	}
	if cur.GameOver && !prev.GameOver {
		m.stopSoundtrack()
		m.saveRun()
		m.stopTicking()
		return m, nil
	}

	return m, tickCmd(m.config.TickRate, m.generation)
}

// startTicking begins a new tick loop; ticks of older loops are ignored.
func (m *Model) startTicking() tea.Cmd {
	m.generation++
	m.ticking = true
	m.lastTick = time.Time{}
	return tickCmd(m.config.TickRate, m.generation)
}

// stopTicking invalidates the current tick loop.
func (m *Model) stopTicking() {
	m.generation++
	m.ticking = false
}

// stop ends the tick loop and the music.
func (m *Model) stop() {
	m.stopTicking()
	m.stopSoundtrack()
}

func (m *Model) playSoundtrack() {
	if err := m.soundtrack.Play(context.Background()); err != nil {
		m.logger.Warn("soundtrack unavailable", "err", err)
	}
}

func (m *Model) stopSoundtrack() {
	if err := m.soundtrack.Stop(); err != nil {
		m.logger.Warn("could not stop soundtrack", "err", err)
	}
}

// saveRun records the finished run once per game over.
func (m *Model) saveRun() {
	if m.runSaved || m.store == nil || m.gameState.Score <= 0 {
		return
	}
	m.runSaved = true

	run := storage.Run{
		GameID: m.game.ID(),
		Player: m.player,
		Score:  m.gameState.Score,
		Ending: m.gameState.Ending,
	}
	if rr, ok := m.game.(runReporter); ok {
		run.Duration = rr.Elapsed()
		run.Cleared = rr.Cleared()
	}

	id, err := m.store.SaveRun(run)
	if err != nil {
		m.logger.Error("could not save run", "game", run.GameID, "score", run.Score, "err", err)
		return
	}
	m.logger.Info("run saved", "id", id, "game", run.GameID, "score", run.Score, "ending", run.Ending)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".volcano", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys()))
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with a model for game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts ...Option) error {
	model := NewModel(game, cfg, opts...)
	defer model.stopSoundtrack()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}

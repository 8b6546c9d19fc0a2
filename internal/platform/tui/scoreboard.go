package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/volcano-flap/internal/registry"
	"github.com/vovakirdan/volcano-flap/internal/storage"
)

// boardRuns is how many runs the board loads per mode.
const boardRuns = 100

var (
	boardTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	boardFrame  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("124")).Padding(0, 1)
	boardMuted  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardEnding = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextMode: key.NewBinding(key.WithKeys("tab", "left", "right", "h", "l"), key.WithHelp("tab", "mode")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel lists the best runs of one mode at a time, with who flew
// them and which ending they earned.
type ScoreboardModel struct {
	modes []registry.GameInfo
	mode  int
	store *storage.Store

	runs    []storage.Run
	endings map[string]int
	stats   *storage.GameStats

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a new scoreboard model. A nil store shows an
// empty board.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.load()
	return m
}

func (m *ScoreboardModel) newTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Puntos", Width: 8},
			{Title: "Piloto", Width: 12},
			{Title: "Final", Width: 8},
			{Title: "Tiempo", Width: 8},
			{Title: "Fecha", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("124")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("124")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load reads the current mode's runs. Errors leave the board empty.
func (m *ScoreboardModel) load() {
	m.runs, m.endings, m.stats = nil, nil, nil
	if m.store != nil && len(m.modes) > 0 {
		id := m.modes[m.mode].ID
		m.runs, _ = m.store.BestRuns(id, boardRuns)
		m.endings, _ = m.store.EndingCounts(id)
		m.stats, _ = m.store.GetGameStats(id)
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Score),
			player,
			r.Ending,
			r.Duration.Round(time.Second).String(),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextMode):
			if len(m.modes) > 0 {
				m.mode = (m.mode + 1) % len(m.modes)
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table = m.newTable()
		m.load()
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "RÉCORDS"
	if len(m.modes) > 0 {
		title += " · " + m.modes[m.mode].Title + " (" + m.modes[m.mode].ID + ")"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(boardTitle.Render(title), m.width))
	b.WriteString("\n\n")

	body := boardMuted.Italic(true).Padding(1, 2).Render("Sin récords todavía.\n¡Vuela por el volcán para marcar uno!")
	if len(m.runs) > 0 {
		body = m.table.View()
	}
	b.WriteString(centerText(boardFrame.Render(body), m.width))
	b.WriteString("\n")

	if m.stats != nil && m.stats.GamesCount > 0 {
		line := fmt.Sprintf("Mejor %d · %d partidas · promedio %.0f", m.stats.HighScore, m.stats.GamesCount, m.stats.AvgScore)
		b.WriteString(centerText(boardMuted.Render(line), m.width))
		b.WriteString("\n")
	}
	if summary := m.endingSummary(); summary != "" {
		b.WriteString(centerText(boardEnding.Render(summary), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// endingSummary lists how often each ending was reached, most frequent first.
func (m ScoreboardModel) endingSummary() string {
	if len(m.endings) == 0 {
		return ""
	}
	keys := make([]string, 0, len(m.endings))
	for k := range m.endings {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if m.endings[keys[i]] != m.endings[keys[j]] {
			return m.endings[keys[i]] > m.endings[keys[j]]
		}
		return keys[i] < keys[j]
	})

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s ×%d", k, m.endings[k])
	}
	return "Finales: " + strings.Join(parts, "  ")
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen on its own.
// It reports whether the user went back rather than quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}

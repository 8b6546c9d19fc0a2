// Package volcano implements Volcano Flap: Charizard is stuck in an endless
// volcano and has to flap through magma columns.
//
// Simulation holds the gameplay rules and runs in abstract playfield units.
// Game adapts it to the registry: it maps terminal cells to units, keeps a
// virtual clock for the cooldown and flash timers, and renders into a
// core.Screen.
package volcano

import (
	"errors"
	"time"

	"github.com/vovakirdan/volcano-flap/internal/config"
	"github.com/vovakirdan/volcano-flap/internal/core"
	"github.com/vovakirdan/volcano-flap/internal/registry"
)

// Registry IDs.
const (
	IDClassic = "volcano"
	IDSmooth  = "volcano_smooth"
)

// Playfield rows reserved around the volcano: the HUD on top and the lava
// floor at the bottom.
const (
	hudRows   = 1
	floorRows = 1
)

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names fall back
// to the configured difficulty.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok {
		p = ""
	}
	difficultyPreset = p
}

// Game implements registry.Game on top of a Simulation.
type Game struct {
	id       string
	title    string
	timestep config.Timestep

	sim     *Simulation
	cfg     config.VolcanoConfig
	runtime core.RuntimeConfig

	clock  time.Duration // virtual time, frozen while paused or not playing
	paused bool
	err    error // set while the terminal cannot host the playfield

	configIssues []error // config files passed over by the last Reset
}

// New creates a game using the fixed per-frame timestep.
func New() *Game {
	return &Game{id: IDClassic, title: "Volcano Flap", timestep: config.TimestepFrame}
}

// NewSmooth creates a game that scales motion by elapsed wall time.
func NewSmooth() *Game {
	return &Game{id: IDSmooth, title: "Volcano Flap (smooth)", timestep: config.TimestepElapsed}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Reset loads the configuration and builds a fresh simulation sized to the
// screen. The game starts on the intro card.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	if g.runtime.TickRate <= 0 {
		g.runtime.TickRate = core.DefaultConfig().TickRate
	}

	cfg, src, err := config.LoadVolcano(configPath)
	g.configIssues = src.Skipped
	if err != nil {
		g.configIssues = append(g.configIssues, err)
		cfg = config.DefaultVolcanoConfig()
	}
	config.ApplyPreset(&cfg, difficultyPreset)
	g.cfg = cfg

	g.clock = 0
	g.paused = false
	g.sim = nil
	g.err = nil
	g.build()
}

// build creates the simulation for the current screen, recording why it
// could not when the terminal is too small.
func (g *Game) build() {
	w, h := g.playfieldUnits(g.runtime.ScreenW, g.runtime.ScreenH)
	sim, err := NewSimulation(g.cfg, w, h, WithSeed(g.runtime.Seed), WithTimestep(g.timestep))
	if err != nil {
		g.err = err
		return
	}
	g.sim = sim
	g.err = nil
}

// Resize adapts the playfield to a new terminal size without restarting.
// A terminal too small for the volcano freezes the game until it grows.
func (g *Game) Resize(cols, rows int) {
	g.runtime.ScreenW = cols
	g.runtime.ScreenH = rows
	if g.sim == nil {
		g.build()
		return
	}
	w, h := g.playfieldUnits(cols, rows)
	g.err = g.sim.Resize(w, h)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	if g.sim == nil || g.err != nil {
		return core.StepResult{State: g.State()}
	}

	switch g.sim.Status() {
	case StatusIntro:
		if in.Has(core.ActionJump) || in.Has(core.ActionStart) {
			g.sim.Start(g.clock)
		}
		return core.StepResult{State: g.State()}

	case StatusGameOver:
		if in.Has(core.ActionRestart) || in.Has(core.ActionStart) {
			g.paused = false
			g.sim.Reset(g.clock)
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.clock += g.advance(dt)
	if in.Has(core.ActionJump) {
		g.sim.Jump()
	}

	livesBefore := g.sim.Lives()
	g.sim.Step(g.clock)

	return core.StepResult{
		State: g.State(),
		Hit:   g.sim.Lives() < livesBefore,
	}
}

// advance returns how far the virtual clock moves this tick. The frame
// timestep always moves by one nominal tick so runs are reproducible.
func (g *Game) advance(dt time.Duration) time.Duration {
	tick := time.Second / time.Duration(g.runtime.TickRate)
	if g.timestep != config.TimestepElapsed || dt <= 0 {
		return tick
	}
	return dt
}

func (g *Game) playfieldUnits(cols, rows int) (float64, float64) {
	return PlayfieldUnits(g.cfg.Render, cols, rows)
}

// PlayfieldUnits converts a terminal size in cells to playfield units,
// leaving out the HUD and lava floor rows.
func PlayfieldUnits(r config.Render, cols, rows int) (width, height float64) {
	playRows := max(rows-hudRows-floorRows, 0)
	return float64(cols) * r.CellWidth, float64(playRows) * r.CellHeight
}

// Err reports why the game cannot run, or nil.
func (g *Game) Err() error {
	return g.err
}

// ConfigIssues returns the config files the last Reset could not use. The
// game then runs on the next candidate or the built-in defaults.
func (g *Game) ConfigIssues() []error {
	return g.configIssues
}

// TooSmall reports whether the terminal is too small for the playfield.
func (g *Game) TooSmall() bool {
	return errors.Is(g.err, config.ErrPlayfieldTooSmall)
}

// Snapshot returns the current simulation snapshot. ok is false when no
// simulation could be built.
func (g *Game) Snapshot() (snap Snapshot, ok bool) {
	if g.sim == nil {
		return Snapshot{}, false
	}
	return g.sim.Snapshot(), true
}

// Elapsed returns the virtual play time of the current session.
func (g *Game) Elapsed() time.Duration {
	if g.sim == nil {
		return 0
	}
	return g.sim.Elapsed()
}

// Cleared returns how many columns the bird has flown past this session.
func (g *Game) Cleared() int {
	if g.sim == nil {
		return 0
	}
	return g.sim.cleared
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.sim == nil {
		return core.GameState{MaxLives: g.cfg.Session.MaxLives, Paused: g.paused}
	}
	st := core.GameState{
		Score:    g.sim.Score(),
		Lives:    g.sim.Lives(),
		MaxLives: g.cfg.Session.MaxLives,
		Started:  g.sim.Status() != StatusIntro,
		GameOver: g.sim.Status() == StatusGameOver,
		Paused:   g.paused,
	}
	if st.GameOver {
		st.Ending = g.sim.Ending().Key
	}
	return st
}

// Register the game with the registry
func init() {
	registry.Register(IDClassic, func() registry.Game {
		return New()
	})
	registry.Register(IDSmooth, func() registry.Game {
		return NewSmooth()
	})
}

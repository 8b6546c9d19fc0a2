package core

// RuntimeConfig contains what the platform tells a game at (re)start.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed; 0 means the platform picks one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the summary the platform needs after each tick.
type GameState struct {
	Score    int
	Lives    int
	MaxLives int
	Started  bool // false while the intro screen is shown
	GameOver bool
	Paused   bool
	Ending   string // key of the selected ending once the game is over
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	Hit   bool // a life was lost during this tick
}

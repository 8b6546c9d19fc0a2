package volcano

import "slices"

// Snapshot is a read-only copy of the simulation state for one frame.
// It shares no memory with the Simulation, so the renderer may keep it
// while the simulation keeps stepping.
type Snapshot struct {
	Version uint64 // increases with every state change
	Tick    int
	Status  Status

	Bird  Bird
	BirdX float64
	Pipes []Pipe

	Score    int
	Lives    int
	MaxLives int
	Cleared  int // columns flown past, informational only

	Width, Height float64
	PipeWidth     float64
	GapSize       float64
	BirdSize      float64
}

// Snapshot returns a copy of the current state.
func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{
		Version:   s.version,
		Tick:      s.tick,
		Status:    s.status,
		Bird:      s.bird,
		BirdX:     s.birdX(),
		Pipes:     slices.Clone(s.pipes.Pipes()),
		Score:     s.score,
		Lives:     s.lives,
		MaxLives:  s.cfg.Session.MaxLives,
		Cleared:   s.cleared,
		Width:     s.width,
		Height:    s.height,
		PipeWidth: s.cfg.Obstacles.Width,
		GapSize:   s.cfg.Obstacles.GapSize,
		BirdSize:  s.cfg.Player.Size,
	}
}

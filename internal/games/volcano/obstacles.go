package volcano

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/volcano-flap/internal/config"
	"github.com/vovakirdan/volcano-flap/internal/core"
)

// Pipe is a magma column: a top and a bottom segment with a passable gap.
type Pipe struct {
	ID     uint64  // Creation order, never reused within a Simulation
	X      float64 // Left edge
	GapTop float64 // Height of the top segment
	Passed bool    // Right edge has scrolled past the bird; not used for scoring
}

// TopBox returns the collision box of the top segment.
func (p Pipe) TopBox(width float64) core.Box {
	return core.Box{Left: p.X, Top: 0, Right: p.X + width, Bottom: p.GapTop}
}

// BottomBox returns the collision box of the bottom segment.
func (p Pipe) BottomBox(width, gap, height float64) core.Box {
	return core.Box{Left: p.X, Top: p.GapTop + gap, Right: p.X + width, Bottom: height}
}

// PipeManager handles spawning, movement and removal of columns.
type PipeManager struct {
	pipes      []Pipe
	rng        *rand.Rand
	cfg        *config.Obstacles
	difficulty *config.DifficultyManager
	spawnTimer float64 // frames since the last spawn
	nextID     uint64
}

// NewPipeManager creates a manager drawing gap positions from rng.
func NewPipeManager(rng *rand.Rand, cfg *config.Obstacles, diff *config.DifficultyManager) *PipeManager {
	return &PipeManager{
		pipes:      make([]Pipe, 0, 8),
		rng:        rng,
		cfg:        cfg,
		difficulty: diff,
		nextID:     1,
	}
}

// Reset clears all columns and the spawn timer. IDs keep counting.
func (pm *PipeManager) Reset() {
	pm.pipes = pm.pipes[:0]
	pm.spawnTimer = 0
}

// Update advances the spawn timer by frames (1 per frame in frame mode),
// spawns at the right edge when the interval is exceeded, moves every column
// left and drops those past the removal threshold.
func (pm *PipeManager) Update(frames, width, height float64, score, tick int) {
	pm.spawnTimer += frames
	rate := float64(pm.difficulty.SpawnRate(pm.cfg.SpawnRate, score, tick))
	if pm.spawnTimer > rate {
		pm.spawn(width, height)
		pm.spawnTimer = 0
	}

	dx := pm.difficulty.Speed(pm.cfg.Speed, score, tick) * frames
	for i := range pm.pipes {
		pm.pipes[i].X -= dx
	}

	kept := pm.pipes[:0]
	for _, p := range pm.pipes {
		if p.X+pm.cfg.Width >= pm.cfg.RemovalThreshold {
			kept = append(kept, p)
		}
	}
	pm.pipes = kept
}

// spawn appends a column at the right edge with a uniformly random gap that
// keeps both segments at least MinSegment tall.
func (pm *PipeManager) spawn(width, height float64) {
	pm.pipes = append(pm.pipes, Pipe{
		ID:     pm.nextID,
		X:      width,
		GapTop: GapTop(pm.rng.Float64(), height, pm.cfg.GapSize, pm.cfg.MinSegment),
	})
	pm.nextID++
}

// GapTop maps a uniform sample r in [0, 1) to the height of the top segment.
// The playfield must have passed config.ValidatePlayfield.
func GapTop(r, height, gap, minSegment float64) float64 {
	avail := height - gap - 2*minSegment
	return math.Floor(r*avail) + minSegment
}

// MarkPassed flags columns whose right edge is left of x and returns how
// many were newly passed.
func (pm *PipeManager) MarkPassed(x float64) int {
	n := 0
	for i := range pm.pipes {
		if !pm.pipes[i].Passed && pm.pipes[i].X+pm.cfg.Width < x {
			pm.pipes[i].Passed = true
			n++
		}
	}
	return n
}

// Pipes returns the live column slice. Callers must not retain it across updates.
func (pm *PipeManager) Pipes() []Pipe {
	return pm.pipes
}

// Len returns the number of active columns.
func (pm *PipeManager) Len() int {
	return len(pm.pipes)
}

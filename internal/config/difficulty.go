package config

import "math"

// DifficultyManager calculates dynamic game parameters based on score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/frames.
// With progression disabled the level is zero and every parameter is returned
// unchanged.
func (d *DifficultyManager) Level(score int, frames int) float64 {
	if !d.cfg.Enabled {
		return 0
	}
	if d.cfg.Progression.Type == "none" {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(frames) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns the column speed for the current difficulty level.
func (d *DifficultyManager) Speed(baseSpeed float64, score int, frames int) float64 {
	level := d.Level(score, frames)
	return baseSpeed * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// SpawnRate returns the spawn interval in frames for the current level.
// It never drops below a third of the base interval.
func (d *DifficultyManager) SpawnRate(baseRate int, score int, frames int) int {
	level := d.Level(score, frames)
	reduction := int(level * float64(d.cfg.Scaling.SpawnReduction))
	floor := max(baseRate/3, 1)
	return max(baseRate-reduction, floor)
}

func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}

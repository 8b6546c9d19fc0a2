package config

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// ErrPlayfieldTooSmall is returned when the playfield cannot fit a column
// gap with both segments at their minimum height.
var ErrPlayfieldTooSmall = fmt.Errorf("%w: playfield too small", ErrInvalidConfig)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// Validate checks the configuration for values that would make the game
// degenerate. Ending bands are sorted highest threshold first as a side effect.
func (c *VolcanoConfig) Validate() error {
	p := c.Physics
	if p.Gravity <= 0 {
		return invalid("physics.gravity must be positive, got %v", p.Gravity)
	}
	if p.JumpStrength >= 0 {
		return invalid("physics.jump_strength must be negative (upwards), got %v", p.JumpStrength)
	}
	switch p.Timestep {
	case TimestepFrame, TimestepElapsed:
	default:
		return invalid("physics.timestep must be %q or %q, got %q", TimestepFrame, TimestepElapsed, p.Timestep)
	}

	o := c.Obstacles
	if o.Speed <= 0 {
		return invalid("obstacles.speed must be positive, got %v", o.Speed)
	}
	if o.SpawnRate < 1 {
		return invalid("obstacles.spawn_rate must be at least 1 frame, got %d", o.SpawnRate)
	}
	if o.GapSize <= 0 {
		return invalid("obstacles.gap_size must be positive, got %v", o.GapSize)
	}
	if o.Width <= 0 {
		return invalid("obstacles.width must be positive, got %v", o.Width)
	}
	if o.MinSegment < 0 {
		return invalid("obstacles.min_segment must not be negative, got %v", o.MinSegment)
	}
	if o.RemovalThreshold > 0 {
		return invalid("obstacles.removal_threshold must be at or left of the playfield edge, got %v", o.RemovalThreshold)
	}

	pl := c.Player
	if pl.Size <= 0 {
		return invalid("player.size must be positive, got %v", pl.Size)
	}
	if pl.XRatio < 0 || pl.XRatio >= 1 {
		return invalid("player.x_ratio must be in [0, 1), got %v", pl.XRatio)
	}
	if pl.HitboxPadding < 0 || pl.HitboxPadding >= pl.Size {
		return invalid("player.hitbox_padding must be in [0, size), got %v", pl.HitboxPadding)
	}
	if pl.HitboxInset < 0 || 2*pl.HitboxInset >= pl.Size {
		return invalid("player.hitbox_inset must leave a non-empty hitbox, got %v", pl.HitboxInset)
	}

	s := c.Session
	if s.MaxLives < 1 {
		return invalid("session.max_lives must be at least 1, got %d", s.MaxLives)
	}
	if s.CollisionCooldownMS < 0 {
		return invalid("session.collision_cooldown_ms must not be negative, got %d", s.CollisionCooldownMS)
	}
	if s.FlashMS < 0 {
		return invalid("session.flash_ms must not be negative, got %d", s.FlashMS)
	}

	d := c.Difficulty
	if d.InitialLevel < 0 || d.InitialLevel > 1 {
		return invalid("difficulty.initial_level must be in [0, 1], got %v", d.InitialLevel)
	}
	switch d.Progression.Type {
	case "score", "time", "none", "":
	default:
		return invalid("difficulty.progression.type must be score, time or none, got %q", d.Progression.Type)
	}

	if c.Render.CellWidth <= 0 || c.Render.CellHeight <= 0 {
		return invalid("render cell size must be positive, got %vx%v", c.Render.CellWidth, c.Render.CellHeight)
	}

	if c.Endings.Default.Title == "" {
		return invalid("endings.default.title must not be empty")
	}
	seen := make(map[int]bool, len(c.Endings.Bands))
	for _, b := range c.Endings.Bands {
		if b.Ending.Title == "" {
			return invalid("ending band above %d has no title", b.Above)
		}
		if seen[b.Above] {
			return invalid("duplicate ending band threshold %d", b.Above)
		}
		seen[b.Above] = true
	}
	sort.SliceStable(c.Endings.Bands, func(i, j int) bool {
		return c.Endings.Bands[i].Above > c.Endings.Bands[j].Above
	})

	return nil
}

// ValidatePlayfield checks that a playfield of the given size can host the
// configured bird and column gaps.
func (c VolcanoConfig) ValidatePlayfield(width, height float64) error {
	if width <= 0 {
		return fmt.Errorf("%w: width %v", ErrPlayfieldTooSmall, width)
	}
	if height < c.Player.Size {
		return fmt.Errorf("%w: height %v is below player size %v", ErrPlayfieldTooSmall, height, c.Player.Size)
	}
	if avail := height - c.Obstacles.GapSize - 2*c.Obstacles.MinSegment; avail <= 0 {
		return fmt.Errorf("%w: height %v leaves no room for gap %v with %v minimum segments",
			ErrPlayfieldTooSmall, height, c.Obstacles.GapSize, c.Obstacles.MinSegment)
	}
	return nil
}

// MinPlayfieldHeight returns the smallest height that passes ValidatePlayfield.
// The bound is exclusive for the gap constraint, so callers needing an
// integral size should add one unit.
func (c VolcanoConfig) MinPlayfieldHeight() float64 {
	return max(c.Player.Size, c.Obstacles.GapSize+2*c.Obstacles.MinSegment)
}

// Package config provides YAML/TOML configuration loading, validation and
// difficulty management for Volcano Flap.
package config

import "time"

// Timestep selects how the simulation advances between frames.
type Timestep string

const (
	// TimestepFrame applies fixed per-frame increments regardless of the
	// time between frames. Speed depends on the frame rate.
	TimestepFrame Timestep = "frame"
	// TimestepElapsed scales every increment by the measured frame time,
	// normalised to a 60 FPS reference frame.
	TimestepElapsed Timestep = "elapsed"
)

// VolcanoConfig contains all tunables for the game.
type VolcanoConfig struct {
	Physics    Physics          `yaml:"physics" toml:"physics"`
	Obstacles  Obstacles        `yaml:"obstacles" toml:"obstacles"`
	Player     Player           `yaml:"player" toml:"player"`
	Session    Session          `yaml:"session" toml:"session"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
	Render     Render           `yaml:"render" toml:"render"`
	Endings    Endings          `yaml:"endings" toml:"endings"`
}

// Physics defines the vertical motion of the bird.
type Physics struct {
	Gravity      float64  `yaml:"gravity" toml:"gravity"`             // added to velocity every frame
	JumpStrength float64  `yaml:"jump_strength" toml:"jump_strength"` // velocity override on jump (negative = up)
	Timestep     Timestep `yaml:"timestep" toml:"timestep"`
}

// Obstacles defines magma column geometry and movement.
type Obstacles struct {
	Speed            float64 `yaml:"speed" toml:"speed"`           // units moved left per frame
	SpawnRate        int     `yaml:"spawn_rate" toml:"spawn_rate"` // frames between spawns
	GapSize          float64 `yaml:"gap_size" toml:"gap_size"`
	Width            float64 `yaml:"width" toml:"width"`
	MinSegment       float64 `yaml:"min_segment" toml:"min_segment"`             // minimum height of each column segment
	RemovalThreshold float64 `yaml:"removal_threshold" toml:"removal_threshold"` // drop once x+width falls below this
}

// Player defines the bird sprite and its hitbox insets.
type Player struct {
	Size          float64 `yaml:"size" toml:"size"`
	XRatio        float64 `yaml:"x_ratio" toml:"x_ratio"`               // left edge as a fraction of playfield width
	HitboxPadding float64 `yaml:"hitbox_padding" toml:"hitbox_padding"` // trimmed from the right edge
	HitboxInset   float64 `yaml:"hitbox_inset" toml:"hitbox_inset"`     // trimmed from top and bottom
}

// Session defines lives and hit timing.
type Session struct {
	MaxLives            int `yaml:"max_lives" toml:"max_lives"`
	CollisionCooldownMS int `yaml:"collision_cooldown_ms" toml:"collision_cooldown_ms"`
	FlashMS             int `yaml:"flash_ms" toml:"flash_ms"`
}

// CollisionCooldown returns the minimum time between two life deductions.
func (s Session) CollisionCooldown() time.Duration {
	return time.Duration(s.CollisionCooldownMS) * time.Millisecond
}

// FlashDuration returns how long the hit flag stays set after a hit.
func (s Session) FlashDuration() time.Duration {
	return time.Duration(s.FlashMS) * time.Millisecond
}

// Render maps playfield units onto terminal cells.
type Render struct {
	CellWidth  float64 `yaml:"cell_width" toml:"cell_width"`
	CellHeight float64 `yaml:"cell_height" toml:"cell_height"`
}

// Ending is one end-of-game card.
type Ending struct {
	Key      string `yaml:"key" toml:"key"`
	Title    string `yaml:"title" toml:"title"`
	Subtitle string `yaml:"subtitle" toml:"subtitle"`
	Image    string `yaml:"image" toml:"image"`
}

// EndingBand selects an ending for any final score strictly above Above.
type EndingBand struct {
	Above  int    `yaml:"above" toml:"above"`
	Ending Ending `yaml:"ending" toml:"ending"`
}

// Endings lists the score bands and the card used when none matches.
type Endings struct {
	Bands   []EndingBand `yaml:"bands" toml:"bands"`
	Default Ending       `yaml:"default" toml:"default"`
}

// DifficultyConfig defines the optional difficulty progression.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled" toml:"enabled"`
	InitialLevel float64           `yaml:"initial_level" toml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression" toml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling" toml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type" toml:"type"`     // "score", "time", or "none"
	MaxAt int    `yaml:"max_at" toml:"max_at"` // score/frames at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier" toml:"speed_multiplier"` // added to speed at max difficulty
	SpawnReduction  int     `yaml:"spawn_reduction" toml:"spawn_reduction"`   // frames removed from the spawn interval at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value to a preset. Empty means "keep the config".
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed, "":
		return p, true
	default:
		return "", false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Fixed turns progression off so the configured constants apply unchanged.
func ApplyPreset(cfg *VolcanoConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Session.MaxLives++
	case DifficultyHard:
		cfg.Session.MaxLives = 1
	}
}

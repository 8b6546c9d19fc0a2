package config

import (
	_ "embed"
)

//go:embed defaults/volcano.yaml
var defaultVolcanoYAML []byte

// DefaultVolcanoConfig returns the built-in configuration.
// It mirrors defaults/volcano.yaml and is used when the embedded file
// cannot be parsed.
func DefaultVolcanoConfig() VolcanoConfig {
	return VolcanoConfig{
		Physics: Physics{
			Gravity:      0.75,
			JumpStrength: -11,
			Timestep:     TimestepFrame,
		},
		Obstacles: Obstacles{
			Speed:            6.5,
			SpawnRate:        90,
			GapSize:          230,
			Width:            70,
			MinSegment:       50,
			RemovalThreshold: -80,
		},
		Player: Player{
			Size:          80,
			XRatio:        0.1,
			HitboxPadding: 20,
			HitboxInset:   15,
		},
		Session: Session{
			MaxLives:            2,
			CollisionCooldownMS: 1000,
			FlashMS:             200,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.6,
				SpawnReduction:  30,
			},
		},
		Render: Render{
			CellWidth:  10,
			CellHeight: 20,
		},
		Endings: Endings{
			Bands: []EndingBand{
				{Above: 3000, Ending: Ending{
					Key:      "rene",
					Title:    "¡Nunca sapo, siempre vío!",
					Subtitle: "¡Te fuiste en volá! El tío René estaría orgulloso.",
					Image:    "rene-puente",
				}},
				{Above: 1000, Ending: Ending{
					Key:      "micky",
					Title:    "¡Creeeeo que soy el Papi Micky!",
					Subtitle: "¡Coñoooo! Salvaste el semestre, manito.",
					Image:    "papi-micky",
				}},
				{Above: 500, Ending: Ending{
					Key:      "calle",
					Title:    "¡Te falta calle!",
					Subtitle: "Despertaron los leones... pero tú no.",
					Image:    "charizard",
				}},
			},
			Default: Ending{
				Key:      "jugo",
				Title:    "¡Andai puro dando jugo!",
				Subtitle: "¡Pa' la casa! Chao con los giles.",
				Image:    "charizard",
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultVolcanoYAML
}

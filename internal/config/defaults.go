package config

import (
	_ "embed"
)

//go:embed defaults/skyhop.yaml
var defaultSkyhopYAML []byte

// DefaultConfig returns the built-in configuration. It mirrors
// defaults/skyhop.yaml and is used when the embedded file cannot be parsed.
func DefaultConfig() Config {
	return Config{
		Physics: PhysicsConfig{
			Gravity:    -22.0,
			Iterations: 10,
		},
		Player: PlayerConfig{
			StartX:                0,
			StartY:                1,
			BounceNormalThreshold: 0.5,
		},
		Characters: []CharacterProfile{
			{
				Name:                   "Bouncer",
				Glyph:                  "●",
				Color:                  "yellow",
				Radius:                 0.25,
				MoveSpeed:              5,
				BounceForce:            10,
				MaxHorizontal:          2.5,
				GravityScale:           1,
				TouchSensitivity:       2,
				TouchDeadzone:          0.1,
				MaxTimeWithoutPlatform: 1,
			},
		},
		Path: PathConfig{
			PlatformWidth:        5,
			PlatformHeight:       0.5,
			PlatformSpacing:      2,
			InitialPlatformCount: 10,
			StartOffset:          -1,
			LookaheadMargin:      10,
			Reference:            ReferenceCamera,
			ObstacleWidth:        0.5,
			ObstacleHeight:       0.5,
			ObstacleYOffset:      0.5,
			ObstacleSpawnChance:  0.5,
		},
		Coins: CoinConfig{
			SpawnInterval:      1.5,
			MinX:               -2.5,
			MaxX:               2.5,
			SpawnYOffset:       8,
			PlatformYThreshold: 0.1,
			Radius:             0.2,
		},
		Camera: CameraConfig{
			OffsetX:      0,
			OffsetY:      2,
			SmoothSpeed:  5,
			CullDistance: 12,
		},
		View: ViewConfig{
			CellsPerUnitX: 6,
			CellsPerUnitY: 2,
		},
	}
}

// DefaultYAML returns the embedded default YAML, e.g. for `skyhop config`.
func DefaultYAML() []byte {
	return defaultSkyhopYAML
}

package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty converts a CLI flag value. Empty means "use the config as is".
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal leaves the loaded values untouched.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Path.ObstacleSpawnChance = cfg.Path.ObstacleSpawnChance * 0.5
		for i := range cfg.Characters {
			cfg.Characters[i].MaxTimeWithoutPlatform += 0.5
		}
	case DifficultyHard:
		cfg.Path.ObstacleSpawnChance = min(1.0, cfg.Path.ObstacleSpawnChance*1.5)
		cfg.Coins.SpawnInterval *= 1.5
	}
}

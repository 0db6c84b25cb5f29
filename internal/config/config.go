// Package config provides YAML-based configuration loading for skyhop:
// physics constants, the character roster, path and coin generation, camera
// and view scaling, plus difficulty presets.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/skyhop/internal/core"
)

// Config contains all tunables of a session.
type Config struct {
	Physics    PhysicsConfig      `yaml:"physics"`
	Player     PlayerConfig       `yaml:"player"`
	Characters []CharacterProfile `yaml:"characters"`
	Path       PathConfig         `yaml:"path"`
	Coins      CoinConfig         `yaml:"coins"`
	Camera     CameraConfig       `yaml:"camera"`
	View       ViewConfig         `yaml:"view"`
}

// PhysicsConfig defines the physics substrate parameters.
type PhysicsConfig struct {
	Gravity    float64 `yaml:"gravity"`    // World gravity along Y (negative = down)
	Iterations int     `yaml:"iterations"` // Solver iterations per step
}

// PlayerConfig holds placement rules that apply to every character.
type PlayerConfig struct {
	StartX                float64 `yaml:"start_x"`
	StartY                float64 `yaml:"start_y"`
	BounceNormalThreshold float64 `yaml:"bounce_normal_threshold"` // Min contact normal Y that counts as "from above"
}

// StartPosition returns the configured spawn point.
func (p PlayerConfig) StartPosition() core.Vec2 {
	return core.V(p.StartX, p.StartY)
}

// CharacterProfile is one selectable character: movement constants plus a
// visual handle. Locomotion is parameterized by the profile.
type CharacterProfile struct {
	Name                   string  `yaml:"name"`
	Glyph                  string  `yaml:"glyph"`
	Color                  string  `yaml:"color"`
	Radius                 float64 `yaml:"radius"`
	MoveSpeed              float64 `yaml:"move_speed"`
	BounceForce            float64 `yaml:"bounce_force"`
	MaxHorizontal          float64 `yaml:"max_horizontal"`
	GravityScale           float64 `yaml:"gravity_scale"`
	TouchSensitivity       float64 `yaml:"touch_sensitivity"`
	TouchDeadzone          float64 `yaml:"touch_deadzone"`
	MaxTimeWithoutPlatform float64 `yaml:"max_time_without_platform"` // Seconds
}

// GlyphRune returns the first rune of Glyph, or a default ball.
func (c CharacterProfile) GlyphRune() rune {
	for _, r := range c.Glyph {
		return r
	}
	return '●'
}

// PathConfig defines platform and obstacle generation.
type PathConfig struct {
	PlatformWidth        float64 `yaml:"platform_width"`
	PlatformHeight       float64 `yaml:"platform_height"`
	PlatformSpacing      float64 `yaml:"platform_spacing"`
	InitialPlatformCount int     `yaml:"initial_platform_count"`
	StartOffset          float64 `yaml:"start_offset"`     // First platform height relative to the player
	LookaheadMargin      float64 `yaml:"lookahead_margin"` // Generate while reference + margin > next platform
	Reference            string  `yaml:"reference"`        // "camera" or "player"
	ObstacleWidth        float64 `yaml:"obstacle_width"`
	ObstacleHeight       float64 `yaml:"obstacle_height"`
	ObstacleYOffset      float64 `yaml:"obstacle_y_offset"`
	ObstacleSpawnChance  float64 `yaml:"obstacle_spawn_chance"`
}

// Generator reference viewpoints.
const (
	ReferenceCamera = "camera"
	ReferencePlayer = "player"
)

// CoinConfig defines collectible spawning.
type CoinConfig struct {
	SpawnInterval      float64 `yaml:"spawn_interval"`
	MinX               float64 `yaml:"min_x"`
	MaxX               float64 `yaml:"max_x"`
	SpawnYOffset       float64 `yaml:"spawn_y_offset"`
	PlatformYThreshold float64 `yaml:"platform_y_threshold"`
	Radius             float64 `yaml:"radius"`
}

// CameraConfig defines the follow camera.
type CameraConfig struct {
	OffsetX      float64 `yaml:"offset_x"`
	OffsetY      float64 `yaml:"offset_y"`
	SmoothSpeed  float64 `yaml:"smooth_speed"`
	CullDistance float64 `yaml:"cull_distance"` // Entities further below the camera are destroyed
}

// ViewConfig maps world units to terminal cells.
type ViewConfig struct {
	CellsPerUnitX float64 `yaml:"cells_per_unit_x"`
	CellsPerUnitY float64 `yaml:"cells_per_unit_y"`
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Validate checks the values the game loop relies on.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Physics.Gravity < 0, "physics.gravity must be negative, got %v", c.Physics.Gravity)
	check(c.Path.PlatformSpacing > 0, "path.platform_spacing must be positive, got %v", c.Path.PlatformSpacing)
	check(c.Path.PlatformWidth > 0, "path.platform_width must be positive, got %v", c.Path.PlatformWidth)
	check(c.Path.PlatformHeight > 0, "path.platform_height must be positive, got %v", c.Path.PlatformHeight)
	check(c.Path.InitialPlatformCount >= 0, "path.initial_platform_count must not be negative")
	check(c.Path.ObstacleSpawnChance >= 0 && c.Path.ObstacleSpawnChance <= 1,
		"path.obstacle_spawn_chance must be within [0, 1], got %v", c.Path.ObstacleSpawnChance)
	check(c.Path.Reference == ReferenceCamera || c.Path.Reference == ReferencePlayer,
		"path.reference must be %q or %q, got %q", ReferenceCamera, ReferencePlayer, c.Path.Reference)
	check(c.Coins.SpawnInterval > 0, "coins.spawn_interval must be positive, got %v", c.Coins.SpawnInterval)
	check(c.Coins.MinX <= c.Coins.MaxX, "coins.min_x must not exceed coins.max_x")
	check(c.Coins.PlatformYThreshold >= 0, "coins.platform_y_threshold must not be negative")
	check(c.Camera.SmoothSpeed > 0, "camera.smooth_speed must be positive")
	check(len(c.Characters) > 0, "at least one character is required")

	for i, ch := range c.Characters {
		check(ch.Radius > 0, "characters[%d].radius must be positive", i)
		check(ch.BounceForce > 0, "characters[%d].bounce_force must be positive", i)
		check(ch.MaxHorizontal > 0, "characters[%d].max_horizontal must be positive", i)
		check(ch.MaxTimeWithoutPlatform > 0, "characters[%d].max_time_without_platform must be positive", i)
		if ch.Color != "" {
			_, ok := core.ParseColor(ch.Color)
			check(ok, "characters[%d].color %q is unknown", i, ch.Color)
		}
	}

	return errors.Join(errs...)
}

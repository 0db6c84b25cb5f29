package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	def := DefaultConfig()
	assert.Equal(t, def.Physics, cfg.Physics)
	assert.Equal(t, def.Player, cfg.Player)
	assert.Equal(t, def.Path, cfg.Path)
	assert.Equal(t, def.Coins, cfg.Coins)
	assert.Equal(t, def.Camera, cfg.Camera)
	assert.Equal(t, def.View, cfg.View)
	assert.Equal(t, def.Characters[0], cfg.Characters[0])
	assert.Len(t, cfg.Characters, 3)
}

func TestLoadFileOverridesOnlyGivenValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("path:\n  platform_spacing: 3.5\ncoins:\n  spawn_interval: 2\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3.5, cfg.Path.PlatformSpacing)
	assert.Equal(t, 2.0, cfg.Coins.SpawnInterval)
	assert.Equal(t, DefaultConfig().Path.PlatformWidth, cfg.Path.PlatformWidth)
	assert.Equal(t, DefaultConfig().Characters, cfg.Characters, "missing roster falls back to defaults")
}

func TestLoadCustomPathErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("path: [not a map"), 0o600))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.yaml")
	data := []byte("path:\n  platform_spacing: 0\n  reference: sideways\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))
	assert.Contains(t, err.Error(), "platform_spacing")
	assert.Contains(t, err.Error(), "reference")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"positive gravity", func(c *Config) { c.Physics.Gravity = 9.8 }, false},
		{"chance above one", func(c *Config) { c.Path.ObstacleSpawnChance = 1.2 }, false},
		{"inverted coin range", func(c *Config) { c.Coins.MinX, c.Coins.MaxX = 1, -1 }, false},
		{"no characters", func(c *Config) { c.Characters = nil }, false},
		{"unknown color", func(c *Config) { c.Characters[0].Color = "plaid" }, false},
		{"zero bounce", func(c *Config) { c.Characters[0].BounceForce = 0 }, false},
		{"player reference", func(c *Config) { c.Path.Reference = ReferencePlayer }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalid)
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	base := DefaultConfig()

	easy := DefaultConfig()
	ApplyPreset(&easy, DifficultyEasy)
	assert.Less(t, easy.Path.ObstacleSpawnChance, base.Path.ObstacleSpawnChance)
	assert.Greater(t, easy.Characters[0].MaxTimeWithoutPlatform, base.Characters[0].MaxTimeWithoutPlatform)

	hard := DefaultConfig()
	ApplyPreset(&hard, DifficultyHard)
	assert.Greater(t, hard.Path.ObstacleSpawnChance, base.Path.ObstacleSpawnChance)
	assert.LessOrEqual(t, hard.Path.ObstacleSpawnChance, 1.0)

	normal := DefaultConfig()
	ApplyPreset(&normal, DifficultyNormal)
	assert.Equal(t, base, normal)
}

func TestParseDifficulty(t *testing.T) {
	p, err := ParseDifficulty("")
	require.NoError(t, err)
	assert.Equal(t, DifficultyNormal, p)

	p, err = ParseDifficulty("hard")
	require.NoError(t, err)
	assert.Equal(t, DifficultyHard, p)

	_, err = ParseDifficulty("nightmare")
	assert.Error(t, err)
}

func TestGlyphRune(t *testing.T) {
	assert.Equal(t, '◆', CharacterProfile{Glyph: "◆x"}.GlyphRune())
	assert.Equal(t, '●', CharacterProfile{}.GlyphRune())
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("path:\n  platform_spacing: 2\n"), 0o600))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("path:\n  platform_spacing: 4\n"), 0o600))

	select {
	case cfg := <-w.Updates:
		assert.Equal(t, 4.0, cfg.Path.PlatformSpacing)
	case err := <-w.Errors:
		t.Fatalf("unexpected watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for config reload")
	}
}

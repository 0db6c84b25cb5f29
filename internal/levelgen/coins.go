package levelgen

import (
	"math/rand"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/physics"
)

// RowChecker tells the spawner where platforms are placed.
type RowChecker interface {
	NearPlatformRow(y, threshold float64) bool
}

// CoinSpawner emits coins ahead of the player on its own cadence.
type CoinSpawner struct {
	cfg     config.CoinConfig
	world   World
	rows    RowChecker
	rng     *rand.Rand
	cursor  Cursor
	emitted int
	skipped int
}

// NewCoinSpawner creates a spawner. rows may be nil, in which case no slot is skipped.
func NewCoinSpawner(cfg config.CoinConfig, world World, rows RowChecker, rng *rand.Rand) *CoinSpawner {
	return &CoinSpawner{
		cfg:    cfg,
		world:  world,
		rows:   rows,
		rng:    rng,
		cursor: NewCursor(0, cfg.SpawnInterval),
	}
}

// SetConfig swaps the coin tunables. Takes effect at the next Reset.
func (s *CoinSpawner) SetConfig(cfg config.CoinConfig) {
	s.cfg = cfg
}

// Reset reseeds the cursor relative to the player.
func (s *CoinSpawner) Reset(playerY float64) {
	s.cursor = NewCursor(playerY+s.cfg.SpawnYOffset, s.cfg.SpawnInterval)
	s.emitted = 0
	s.skipped = 0
}

// Update handles at most one due slot. Inactive spawners do nothing. A slot
// too close to a platform row is consumed without a coin.
func (s *CoinSpawner) Update(playerY float64, active bool) (physics.EntityID, bool) {
	if !active || !s.cursor.Due(playerY+s.cfg.SpawnYOffset) {
		return 0, false
	}

	y := s.cursor.Advance()
	if s.rows != nil && s.rows.NearPlatformRow(y, s.cfg.PlatformYThreshold) {
		s.skipped++
		return 0, false
	}

	x := s.cfg.MinX + s.rng.Float64()*(s.cfg.MaxX-s.cfg.MinX)
	s.emitted++
	return s.world.AddCoin(core.V(x, y), s.cfg.Radius), true
}

// NextY returns the height of the next slot.
func (s *CoinSpawner) NextY() float64 { return s.cursor.Next() }

// Emitted returns how many coins were placed since the last Reset.
func (s *CoinSpawner) Emitted() int { return s.emitted }

// Skipped returns how many slots fell on platform rows since the last Reset.
func (s *CoinSpawner) Skipped() int { return s.skipped }

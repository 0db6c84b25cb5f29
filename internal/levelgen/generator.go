package levelgen

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/physics"
)

// Platform is an emitted platform and, if one was rolled, its obstacle.
type Platform struct {
	ID       physics.EntityID
	Pos      core.Vec2
	Obstacle physics.EntityID // zero when none
}

// Generator emits one platform per frame while the reference viewpoint plus
// the lookahead margin is above the cursor.
type Generator struct {
	cfg    config.PathConfig
	world  World
	rng    *rand.Rand
	cursor Cursor
	base   float64
	count  int
}

// NewGenerator creates a generator. Call Reset before the first Update.
func NewGenerator(cfg config.PathConfig, world World, rng *rand.Rand) *Generator {
	return &Generator{
		cfg:    cfg,
		world:  world,
		rng:    rng,
		cursor: NewCursor(0, cfg.PlatformSpacing),
	}
}

// SetConfig swaps the path tunables. Takes effect at the next Reset.
func (g *Generator) SetConfig(cfg config.PathConfig) {
	g.cfg = cfg
}

// Reset reseeds the cursor to refY + StartOffset and lays out the initial path.
func (g *Generator) Reset(refY float64) []Platform {
	g.base = refY + g.cfg.StartOffset
	g.cursor = NewCursor(g.base, g.cfg.PlatformSpacing)
	g.count = 0

	out := make([]Platform, 0, g.cfg.InitialPlatformCount)
	for i := 0; i < g.cfg.InitialPlatformCount; i++ {
		out = append(out, g.emit())
	}
	return out
}

// Update emits at most one platform when refY is close enough to the cursor.
func (g *Generator) Update(refY float64) (Platform, bool) {
	if !g.cursor.Due(refY + g.cfg.LookaheadMargin) {
		return Platform{}, false
	}
	return g.emit(), true
}

func (g *Generator) emit() Platform {
	y := g.cursor.Advance()
	half := g.cfg.PlatformWidth / 2
	x := -half + g.rng.Float64()*g.cfg.PlatformWidth

	p := Platform{Pos: core.V(x, y)}
	p.ID = g.world.AddPlatform(p.Pos, g.cfg.PlatformWidth, g.cfg.PlatformHeight)

	if g.rng.Float64() < g.cfg.ObstacleSpawnChance {
		pos := core.V(x, y+g.cfg.ObstacleYOffset)
		p.Obstacle = g.world.AddObstacle(pos, g.cfg.ObstacleWidth, g.cfg.ObstacleHeight)
	}

	g.count++
	return p
}

// NextY returns the height of the next platform.
func (g *Generator) NextY() float64 { return g.cursor.Next() }

// Base returns the height of the first platform since the last Reset.
func (g *Generator) Base() float64 { return g.base }

// Count returns how many platforms were emitted since the last Reset.
func (g *Generator) Count() int { return g.count }

// Reference returns which viewpoint drives generation.
func (g *Generator) Reference() string { return g.cfg.Reference }

// NearPlatformRow reports whether y lies within threshold of a multiple of
// the spacing. Both the absolute grid and the rows actually laid out from the
// base height are checked, so they agree even when the base is off-grid.
func (g *Generator) NearPlatformRow(y, threshold float64) bool {
	spacing := g.cfg.PlatformSpacing
	if spacing <= 0 {
		return false
	}
	return nearMultiple(y, spacing, threshold) || nearMultiple(y-g.base, spacing, threshold)
}

func nearMultiple(v, spacing, threshold float64) bool {
	r := math.Mod(v, spacing)
	if r < 0 {
		r += spacing
	}
	return min(r, spacing-r) < threshold
}

package tui

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/physics"
)

// hudRows is the number of screen rows above the playfield.
const hudRows = 1

// Glyphs used for world entities.
const (
	glyphPlatform = '═'
	glyphObstacle = '▲'
	glyphCoin     = 'o'
	glyphBurst    = '✸'
)

// Viewport maps world units to screen cells, centered on the camera.
// Y grows upward in the world and downward on screen.
type Viewport struct {
	Center core.Vec2
	CellsX float64
	CellsY float64
	Top    int // first screen row of the playfield
	Width  int
	Height int
}

// ToCell returns the screen cell containing world point p.
func (v Viewport) ToCell(p core.Vec2) (col, row int) {
	x := float64(v.Width)/2 + (p.X-v.Center.X)*v.CellsX
	y := float64(v.Height)/2 - (p.Y-v.Center.Y)*v.CellsY
	return int(math.Floor(x)), v.Top + int(math.Floor(y))
}

// Contains reports whether a screen cell lies inside the playfield.
func (v Viewport) Contains(col, row int) bool {
	return col >= 0 && col < v.Width && row >= v.Top && row < v.Top+v.Height
}

// Scene is everything one frame of the view draws.
type Scene struct {
	World   *physics.World
	Camera  core.Vec2
	Profile config.CharacterProfile
	HUD     *HUD
	Status  string
}

// DrawScene renders the HUD row, the playfield and any overlay into s.
func DrawScene(s *core.Screen, view config.ViewConfig, sc Scene) {
	s.Clear()

	vp := Viewport{
		Center: sc.Camera,
		CellsX: view.CellsPerUnitX,
		CellsY: view.CellsPerUnitY,
		Top:    hudRows,
		Width:  s.Width(),
		Height: max(0, s.Height()-hudRows),
	}

	if sc.World != nil {
		drawWorld(s, vp, sc)
	}
	if sc.HUD != nil {
		drawHUD(s, sc)
		drawOverlay(s, sc)
	}
}

func drawWorld(s *core.Screen, vp Viewport, sc Scene) {
	put := func(col, row int, r rune, c core.Color) {
		if vp.Contains(col, row) {
			s.SetColored(col, row, r, c)
		}
	}
	span := func(e *physics.Entity, r rune, c core.Color) {
		lo, hi := e.Bounds()
		c0, row := vp.ToCell(core.V(lo.X, hi.Y))
		c1, _ := vp.ToCell(core.V(hi.X, hi.Y))
		for col := c0; col <= max(c0, c1-1); col++ {
			put(col, row, r, c)
		}
	}

	sc.World.Each(func(e *physics.Entity) bool {
		switch e.Kind {
		case physics.KindPlatform:
			span(e, glyphPlatform, core.ColorGreen)
		case physics.KindObstacle:
			span(e, glyphObstacle, core.ColorRed)
		case physics.KindCoin:
			col, row := vp.ToCell(e.Pos)
			put(col, row, glyphCoin, core.ColorYellow)
		case physics.KindPlayer:
			// drawn last so it stays on top
		}
		return true
	})

	player := sc.World.Player()
	if player == nil {
		return
	}
	glyph, color := sc.Profile.GlyphRune(), colorOf(sc.Profile.Color)
	if sc.HUD != nil {
		if on, phase := sc.HUD.Flashing(); on {
			glyph = glyphBurst
			color = core.ColorRed
			if (phase/4)%2 == 0 {
				color = core.ColorOrange
			}
		}
	}
	col, row := vp.ToCell(player.Position())
	put(col, row, glyph, color)
}

func drawHUD(s *core.Screen, sc Scene) {
	h := sc.HUD
	left := fmt.Sprintf(" SCORE %d  COINS %d", h.Score, h.Coins)
	right := fmt.Sprintf("BEST %d  TOTAL %d ", h.HighScore, h.TotalCoins)

	s.DrawTextColored(0, 0, left, core.ColorWhite)
	s.DrawTextColored(s.Width()-utf8.RuneCountInString(right), 0, right, core.ColorGray)
	if sc.Profile.Name != "" {
		s.DrawTextCentered(0, sc.Profile.Name, colorOf(sc.Profile.Color))
	}
	if sc.Status != "" && s.Height() > hudRows+1 {
		s.DrawTextColored(1, s.Height()-1, sc.Status, core.ColorGray)
	}
}

func drawOverlay(s *core.Screen, sc Scene) {
	var lines []string
	var title core.Color

	switch sc.HUD.Overlay() {
	case OverlayStart:
		title = core.ColorCyan
		lines = []string{
			"S K Y H O P",
			"",
			"tap ←/→ or click to start",
			fmt.Sprintf("character: %s (c to change)", sc.Profile.Name),
		}
	case OverlayGameOver:
		sum := sc.HUD.Summary()
		title = core.ColorRed
		lines = []string{
			"GAME OVER",
			"",
			fmt.Sprintf("score %d   coins %d", sum.Score, sum.Coins),
			fmt.Sprintf("best %d   total coins %d", sum.HighScore, sum.TotalCoins),
			"",
			"R to restart",
		}
	default:
		return
	}

	width := 0
	for _, l := range lines {
		width = max(width, utf8.RuneCountInString(l))
	}
	width += 4
	height := len(lines) + 2

	box := core.NewRect((s.Width()-width)/2, hudRows+(s.Height()-hudRows-height)/2, width, height)
	s.DrawRect(box, ' ', core.ColorDefault)
	s.DrawBox(box, core.ColorGray)
	for i, l := range lines {
		c := core.ColorWhite
		if i == 0 {
			c = title
		}
		s.DrawTextCentered(box.Y+1+i, l, c)
	}
}

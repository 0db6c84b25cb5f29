package tui

// flashFrames is how long the game-over flash lasts.
const flashFrames = 45

// Overlay is the screen drawn over the playfield.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayStart
	OverlayGameOver
)

// Summary is the result shown on the game-over overlay.
type Summary struct {
	Score      int
	Coins      int
	HighScore  int
	TotalCoins int
}

// HUD holds what the terminal shows around the playfield. The session
// pushes updates into it; the view reads it every frame.
type HUD struct {
	Score      int
	Coins      int
	HighScore  int
	TotalCoins int

	overlay Overlay
	summary Summary
	flash   int
}

// NewHUD creates an empty HUD.
func NewHUD() *HUD {
	return &HUD{}
}

func (h *HUD) UpdateScore(score int) { h.Score = score }

func (h *HUD) UpdateCoins(coins int) { h.Coins = coins }

func (h *HUD) ShowStart() { h.overlay = OverlayStart }

func (h *HUD) HideStartScreen() {
	if h.overlay == OverlayStart {
		h.overlay = OverlayNone
	}
}

func (h *HUD) ShowGameOver(score, coins, highScore, totalCoins int) {
	h.summary = Summary{Score: score, Coins: coins, HighScore: highScore, TotalCoins: totalCoins}
	h.overlay = OverlayGameOver
}

func (h *HUD) UpdateHighScoreAndTotalCoins(highScore, totalCoins int) {
	h.HighScore = highScore
	h.TotalCoins = totalCoins
}

// GameOverEffect starts the flash on the player glyph.
func (h *HUD) GameOverEffect() { h.flash = flashFrames }

// Overlay returns the active overlay.
func (h *HUD) Overlay() Overlay { return h.overlay }

// Summary returns the last game-over result.
func (h *HUD) Summary() Summary { return h.summary }

// Flashing reports whether the game-over flash is running, and its phase.
func (h *HUD) Flashing() (on bool, phase int) {
	return h.flash > 0, h.flash
}

// Advance ages frame-based effects by one frame.
func (h *HUD) Advance() {
	if h.flash > 0 {
		h.flash--
	}
}

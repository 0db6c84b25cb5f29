package game

import (
	"time"

	"github.com/charmbracelet/log"
)

// Settings keys.
const (
	KeyHighScore         = "HighScore"
	KeyTotalCoins        = "TotalCoins"
	KeySelectedCharacter = "SelectedCharacter"
)

// Settings is the persisted integer store.
type Settings interface {
	GetInt(key string, def int) int
	SetInt(key string, value int)
	Flush()
}

// Presenter is the UI sink. It never calls back into the game.
type Presenter interface {
	UpdateScore(score int)
	UpdateCoins(coins int)
	ShowStart()
	HideStartScreen()
	ShowGameOver(score, coins, highScore, totalCoins int)
	UpdateHighScoreAndTotalCoins(highScore, totalCoins int)
	GameOverEffect()
}

// RunRecorder receives every finished run.
type RunRecorder interface {
	RecordRun(score, coins int, duration time.Duration, character string)
}

type nopPresenter struct{}

func (nopPresenter) UpdateScore(int)                       {}
func (nopPresenter) UpdateCoins(int)                       {}
func (nopPresenter) ShowStart()                            {}
func (nopPresenter) HideStartScreen()                      {}
func (nopPresenter) ShowGameOver(int, int, int, int)       {}
func (nopPresenter) UpdateHighScoreAndTotalCoins(int, int) {}
func (nopPresenter) GameOverEffect()                       {}

type nopSettings struct{}

func (nopSettings) GetInt(_ string, def int) int { return def }
func (nopSettings) SetInt(string, int)           {}
func (nopSettings) Flush()                       {}

type nopRecorder struct{}

func (nopRecorder) RecordRun(int, int, time.Duration, string) {}

// orNop swaps missing collaborators for no-ops so call sites stay unconditional.
func orNop(p Presenter, s Settings, r RunRecorder, logger *log.Logger) (Presenter, Settings, RunRecorder) {
	if p == nil {
		logger.Warn("no presenter configured, UI updates are dropped")
		p = nopPresenter{}
	}
	if s == nil {
		logger.Warn("no settings store configured, progress is not persisted")
		s = nopSettings{}
	}
	if r == nil {
		logger.Debug("no run recorder configured")
		r = nopRecorder{}
	}
	return p, s, r
}

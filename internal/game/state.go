package game

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyhop/internal/camera"
	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/levelgen"
	"github.com/vovakirdan/skyhop/internal/locomotion"
	"github.com/vovakirdan/skyhop/internal/physics"
	"github.com/vovakirdan/skyhop/internal/registry"
)

// RunState is the lifecycle of a run.
type RunState int

const (
	Idle RunState = iota
	Running
	GameOver
)

func (s RunState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// ScoreTally is the score state of a session. HighScore and TotalCoins
// outlive runs; Score and Coins belong to the current run.
type ScoreTally struct {
	Score      int
	Coins      int
	TotalCoins int
	HighScore  int
}

// ComputeScore is whole seconds survived plus one point per two coins.
func ComputeScore(elapsed float64, coins int) int {
	return int(math.Floor(elapsed)) + coins/2
}

// StateMachine owns RunState and ScoreTally, and is the only component that
// destroys and recreates the player or resets the emitters.
type StateMachine struct {
	state          RunState
	tally          ScoreTally
	elapsed        float64
	characterIndex int
	start          config.PlayerConfig

	world   *physics.World
	ctrl    *locomotion.Controller
	gen     *levelgen.Generator
	coins   *levelgen.CoinSpawner
	cam     *camera.Follow
	chars   *registry.Registry
	player  *physics.PlayerBody
	profile config.CharacterProfile

	presenter Presenter
	settings  Settings
	recorder  RunRecorder
	logger    *log.Logger
}

// State returns the current run state.
func (m *StateMachine) State() RunState { return m.state }

// Tally returns a copy of the score state.
func (m *StateMachine) Tally() ScoreTally { return m.tally }

// Elapsed returns the seconds survived in the current run.
func (m *StateMachine) Elapsed() float64 { return m.elapsed }

// CharacterIndex returns the index of the live character.
func (m *StateMachine) CharacterIndex() int { return m.characterIndex }

// Profile returns the live character profile.
func (m *StateMachine) Profile() config.CharacterProfile { return m.profile }

// Player returns the live player body, or nil.
func (m *StateMachine) Player() *physics.PlayerBody { return m.player }

// StartRun moves Idle to Running.
func (m *StateMachine) StartRun() {
	if m.state != Idle {
		m.logger.Debug("start ignored", "state", m.state)
		return
	}
	m.state = Running
	m.logger.Info("run started", "character", m.profile.Name)
	m.presenter.HideStartScreen()
}

// Tick advances the run clock and recomputes the score.
func (m *StateMachine) Tick(dt float64) {
	if m.state != Running {
		return
	}
	m.elapsed += dt
	m.tally.Score = ComputeScore(m.elapsed, m.tally.Coins)
	m.presenter.UpdateScore(m.tally.Score)
}

// AddCoin credits one collected coin and persists the lifetime total.
func (m *StateMachine) AddCoin() {
	if m.state != Running {
		m.logger.Debug("coin ignored", "state", m.state)
		return
	}
	m.tally.Coins++
	m.tally.TotalCoins++
	m.settings.SetInt(KeyTotalCoins, m.tally.TotalCoins)
	m.tally.Score = ComputeScore(m.elapsed, m.tally.Coins)
	m.presenter.UpdateCoins(m.tally.Coins)
	m.presenter.UpdateScore(m.tally.Score)
}

// EndRun moves Running to GameOver. Further calls are no-ops.
func (m *StateMachine) EndRun() {
	if m.state != Running {
		return
	}
	m.state = GameOver
	m.ctrl.Pause()
	m.presenter.GameOverEffect()

	if m.tally.Score > m.tally.HighScore {
		m.tally.HighScore = m.tally.Score
		m.settings.SetInt(KeyHighScore, m.tally.HighScore)
	}
	m.settings.SetInt(KeyTotalCoins, m.tally.TotalCoins)
	m.settings.Flush()

	duration := time.Duration(m.elapsed * float64(time.Second))
	m.recorder.RecordRun(m.tally.Score, m.tally.Coins, duration, m.profile.Name)

	m.logger.Info("run over",
		"score", m.tally.Score,
		"coins", m.tally.Coins,
		"high_score", m.tally.HighScore,
		"duration", duration.Round(time.Millisecond),
	)
	m.presenter.ShowGameOver(m.tally.Score, m.tally.Coins, m.tally.HighScore, m.tally.TotalCoins)
}

// Restart clears the world and lays out a fresh one. Only valid after game over.
func (m *StateMachine) Restart() {
	if m.state != GameOver {
		m.logger.Debug("restart ignored", "state", m.state)
		return
	}

	m.ctrl.Detach()
	m.player = nil
	m.world.RemoveKinds(physics.KindPlayer, physics.KindObstacle, physics.KindCoin, physics.KindPlatform)

	profile, err := m.chars.Get(m.characterIndex)
	if err != nil {
		// The roster can shrink on config reload
		m.logger.Error("selected character unavailable, using the first", "index", m.characterIndex, "err", err)
		m.characterIndex = 0
		profile, _ = m.chars.Get(0)
	}
	m.layout(profile)

	m.tally.Score = 0
	m.tally.Coins = 0
	m.elapsed = 0
	m.state = Idle

	m.presenter.UpdateScore(0)
	m.presenter.UpdateCoins(0)
	m.presenter.UpdateHighScoreAndTotalCoins(m.tally.HighScore, m.tally.TotalCoins)
	m.presenter.ShowStart()
	m.logger.Debug("restarted", "character", profile.Name)
}

// SwitchCharacter replaces the player with the profile at index. RunState
// and the tally are untouched.
func (m *StateMachine) SwitchCharacter(index int) error {
	profile, err := m.chars.Get(index)
	if err != nil {
		m.logger.Error("switch character", "index", index, "err", err)
		return fmt.Errorf("game: switch character: %w", err)
	}

	m.characterIndex = index
	m.spawn(profile)
	if m.state == GameOver {
		// The replacement stays frozen behind the game-over screen
		m.ctrl.Pause()
	}
	m.coins.Reset(m.player.Position().Y)
	m.logger.Info("character switched", "index", index, "name", profile.Name)
	return nil
}

// layout spawns the player and the initial path around it.
func (m *StateMachine) layout(profile config.CharacterProfile) {
	m.spawn(profile)
	y := m.player.Position().Y
	m.gen.Reset(y)
	m.coins.Reset(y)
	m.cam.Snap()
}

// spawn destroys the current player and creates a new one at the start position.
func (m *StateMachine) spawn(profile config.CharacterProfile) {
	m.ctrl.Detach()
	m.world.RemovePlayer()

	m.profile = profile
	m.player = m.world.SpawnPlayer(m.start.StartPosition(), profile.Radius, profile.GravityScale)
	m.ctrl.Attach(m.player, profile)
	m.cam.SetTarget(m.player)
}

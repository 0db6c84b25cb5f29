package game

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/locomotion"
	"github.com/vovakirdan/skyhop/internal/physics"
	"github.com/vovakirdan/skyhop/internal/registry"
	"github.com/vovakirdan/skyhop/internal/storage"
)

const frameDT = 1.0 / 60

type fakePresenter struct {
	score, coins       int
	high, total        int
	startShown         int
	startHidden        int
	gameOvers          int
	effects            int
	lastGameOver       [4]int
	scoreUpdates       []int
	highAndTotalPushes int
}

func (p *fakePresenter) UpdateScore(s int) {
	p.score = s
	p.scoreUpdates = append(p.scoreUpdates, s)
}
func (p *fakePresenter) UpdateCoins(c int) { p.coins = c }
func (p *fakePresenter) ShowStart()        { p.startShown++ }
func (p *fakePresenter) HideStartScreen()  { p.startHidden++ }
func (p *fakePresenter) ShowGameOver(score, coins, high, total int) {
	p.gameOvers++
	p.lastGameOver = [4]int{score, coins, high, total}
}
func (p *fakePresenter) UpdateHighScoreAndTotalCoins(high, total int) {
	p.high, p.total = high, total
	p.highAndTotalPushes++
}
func (p *fakePresenter) GameOverEffect() { p.effects++ }

func testConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Path.ObstacleSpawnChance = 0
	cfg.Characters = append(cfg.Characters,
		config.CharacterProfile{
			Name: "Floater", Glyph: "◉", Color: "cyan", Radius: 0.3, MoveSpeed: 4,
			BounceForce: 9, MaxHorizontal: 2.5, GravityScale: 0.85, TouchSensitivity: 2,
			TouchDeadzone: 0.1, MaxTimeWithoutPlatform: 1.2,
		},
	)
	return cfg
}

type harness struct {
	s     *Session
	p     *fakePresenter
	prefs *storage.MemoryPrefs
}

func newHarness(t *testing.T, cfg config.Config, setup func(*storage.MemoryPrefs)) harness {
	t.Helper()
	prefs := storage.NewMemoryPrefs()
	if setup != nil {
		setup(prefs)
	}
	p := &fakePresenter{}
	s, err := NewSession(Options{
		Config:    cfg,
		Settings:  prefs,
		Presenter: p,
		Recorder:  prefs,
		Seed:      1,
	})
	require.NoError(t, err)
	return harness{s: s, p: p, prefs: prefs}
}

func pressLeft() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionLeft)
	return in
}

func (h harness) steps(n int) {
	for i := 0; i < n; i++ {
		h.s.Step(core.NewInputFrame(), frameDT)
	}
}

func TestComputeScore(t *testing.T) {
	tests := []struct {
		elapsed float64
		coins   int
		want    int
	}{
		{0, 0, 0},
		{0.99, 1, 0},
		{10.0, 3, 11},
		{10.5, 4, 12},
		{59.999, 0, 59},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ComputeScore(tc.elapsed, tc.coins), "elapsed=%v coins=%d", tc.elapsed, tc.coins)
	}
}

func TestNewSessionPushesPersistedTotals(t *testing.T) {
	h := newHarness(t, testConfig(), func(m *storage.MemoryPrefs) {
		m.SetInt(KeyHighScore, 50)
		m.SetInt(KeyTotalCoins, 7)
	})

	assert.Equal(t, Idle, h.s.State())
	assert.Equal(t, 50, h.p.high)
	assert.Equal(t, 7, h.p.total)
	assert.Equal(t, 1, h.p.startShown)
	assert.Equal(t, 1, h.s.World().Count(physics.KindPlayer))
	assert.Equal(t, 10, h.s.World().Count(physics.KindPlatform))
}

func TestNewSessionRejectsBadPersistedCharacter(t *testing.T) {
	prefs := storage.NewMemoryPrefs()
	prefs.SetInt(KeySelectedCharacter, 7)

	_, err := NewSession(Options{Config: testConfig(), Settings: prefs})
	require.Error(t, err)
	assert.True(t, errors.Is(err, registry.ErrIndexOutOfRange))
}

func TestNewSessionWithoutCollaborators(t *testing.T) {
	s, err := NewSession(Options{Config: testConfig()})
	require.NoError(t, err)

	s.Step(pressLeft(), frameDT)
	assert.Equal(t, Running, s.State())
}

func TestStartDetection(t *testing.T) {
	h := newHarness(t, testConfig(), nil)

	h.steps(5)
	assert.Equal(t, Idle, h.s.State(), "no input keeps the session idle")

	overUI := core.NewInputFrame()
	overUI.AddPointer(core.PointerEvent{Phase: core.PointerDown, OverUI: true})
	h.s.Step(overUI, frameDT)
	assert.Equal(t, Idle, h.s.State(), "presses on UI elements do not start")

	click := core.NewInputFrame()
	click.ViewportWidth = 80
	click.AddPointer(core.PointerEvent{Phase: core.PointerDown, X: 40, Y: 10})
	h.s.Step(click, frameDT)
	assert.Equal(t, Running, h.s.State())
	assert.Equal(t, 1, h.p.startHidden)

	h.s.Step(pressLeft(), frameDT)
	assert.Equal(t, 1, h.p.startHidden, "start is edge-triggered once")
}

func TestScoreTracksElapsedAndCoins(t *testing.T) {
	h := newHarness(t, testConfig(), nil)
	m := h.s.Machine()
	m.StartRun()

	last := 0
	for i := 0; i < 40; i++ {
		if i%3 == 0 {
			m.AddCoin()
		}
		m.Tick(0.3)
		tally := m.Tally()
		assert.Equal(t, ComputeScore(m.Elapsed(), tally.Coins), tally.Score)
		assert.GreaterOrEqual(t, tally.Score, last)
		last = tally.Score
	}
}

func TestScoreExample(t *testing.T) {
	h := newHarness(t, testConfig(), nil)
	m := h.s.Machine()
	m.StartRun()

	for i := 0; i < 3; i++ {
		m.AddCoin()
	}
	for i := 0; i < 20; i++ {
		m.Tick(0.5)
	}

	assert.Equal(t, 10.0, m.Elapsed())
	assert.Equal(t, 11, m.Tally().Score)
	assert.Equal(t, 11, h.p.score)
	assert.Equal(t, 3, h.p.coins)
	assert.Equal(t, 3, h.prefs.GetInt(KeyTotalCoins, 0), "coins are persisted immediately")
}

func TestTickAndAddCoinOnlyWhileRunning(t *testing.T) {
	h := newHarness(t, testConfig(), nil)
	m := h.s.Machine()

	m.Tick(5)
	m.AddCoin()
	assert.Equal(t, ScoreTally{}, m.Tally())
	assert.Equal(t, 0.0, m.Elapsed())
}

func TestEndRunIsIdempotent(t *testing.T) {
	h := newHarness(t, testConfig(), nil)
	m := h.s.Machine()
	m.StartRun()
	m.Tick(3.2)

	m.EndRun()
	m.EndRun()

	assert.Equal(t, GameOver, m.State())
	assert.Equal(t, 1, h.p.gameOvers)
	assert.Equal(t, 1, h.p.effects)
	assert.Len(t, h.prefs.Runs(), 1)
	assert.Equal(t, locomotion.Paused, h.s.Controller().State())
	assert.True(t, h.s.World().Player().Paused())
}

func TestEndRunOutsideRunningIsIgnored(t *testing.T) {
	h := newHarness(t, testConfig(), nil)
	h.s.Machine().EndRun()
	assert.Equal(t, Idle, h.s.State())
	assert.Equal(t, 0, h.p.gameOvers)
}

func TestHighScorePersistedWhenBeaten(t *testing.T) {
	h := newHarness(t, testConfig(), func(m *storage.MemoryPrefs) {
		m.SetInt(KeyHighScore, 50)
		m.SetInt(KeyTotalCoins, 4)
	})
	m := h.s.Machine()
	m.StartRun()
	for i := 0; i < 150; i++ {
		m.Tick(0.5)
	}
	m.EndRun()

	assert.Equal(t, 75, m.Tally().HighScore)
	assert.Equal(t, 75, h.prefs.GetInt(KeyHighScore, 0))
	assert.Equal(t, [4]int{75, 0, 75, 4}, h.p.lastGameOver)
	assert.Greater(t, h.prefs.Flushes(), 0)

	runs := h.prefs.Runs()
	require.Len(t, runs, 1)
	assert.Equal(t, 75, runs[0].Score)
	assert.Equal(t, "Bouncer", runs[0].Character)

	h.s.Restart()
	assert.Equal(t, 4, h.prefs.GetInt(KeyTotalCoins, 0), "restart does not touch total coins")
	assert.Equal(t, 75, h.s.Tally().HighScore)
}

func TestHighScoreKeptWhenNotBeaten(t *testing.T) {
	h := newHarness(t, testConfig(), func(m *storage.MemoryPrefs) {
		m.SetInt(KeyHighScore, 50)
	})
	m := h.s.Machine()
	m.StartRun()
	m.Tick(30)
	m.EndRun()

	assert.Equal(t, 50, m.Tally().HighScore)
	assert.Equal(t, 50, h.prefs.GetInt(KeyHighScore, 0))
}

func TestRestart(t *testing.T) {
	h := newHarness(t, testConfig(), func(m *storage.MemoryPrefs) {
		m.SetInt(KeyTotalCoins, 10)
	})
	m := h.s.Machine()

	m.Restart()
	assert.Equal(t, Idle, m.State(), "restart is only valid after game over")
	assert.Equal(t, 1, h.p.startShown)

	m.StartRun()
	m.AddCoin()
	m.AddCoin()
	m.Tick(4)
	h.s.World().AddCoin(core.V(0, 30), 0.2)
	h.s.World().AddObstacle(core.V(0, 31), 0.5, 0.5)
	oldPlayer := h.s.World().Player().ID()
	m.EndRun()

	h.s.Restart()

	tally := m.Tally()
	assert.Equal(t, Idle, m.State())
	assert.Equal(t, 0, tally.Score)
	assert.Equal(t, 0, tally.Coins)
	assert.Equal(t, 12, tally.TotalCoins)
	assert.Equal(t, 5, tally.HighScore)
	assert.Equal(t, 0.0, m.Elapsed())
	assert.Equal(t, 2, h.p.startShown)
	assert.Equal(t, 0, h.p.score)
	assert.Equal(t, 0, h.p.coins)

	w := h.s.World()
	assert.Equal(t, 0, w.Count(physics.KindCoin))
	assert.Equal(t, 0, w.Count(physics.KindObstacle))
	assert.Equal(t, 10, w.Count(physics.KindPlatform))
	assert.Equal(t, 1, w.Count(physics.KindPlayer))
	assert.NotEqual(t, oldPlayer, w.Player().ID())
	assert.False(t, w.Player().Paused())
	assert.Equal(t, core.V(0, 1), w.Player().Position())
}

func TestPlatformContactsBounce(t *testing.T) {
	h := newHarness(t, testConfig(), nil)
	player := h.s.World().Player()

	bounces := 0
	sawFalling := false
	for i := 0; i < 240; i++ {
		h.steps(1)
		vy := player.Velocity().Y
		if vy < 0 {
			sawFalling = true
		}
		if sawFalling && vy == 10 {
			bounces++
			sawFalling = false
		}
	}

	assert.GreaterOrEqual(t, bounces, 2)
	assert.Greater(t, player.Position().Y, 3.0, "bouncing climbs the platform rows")
	assert.Equal(t, Idle, h.s.State())
}

func TestFailTimerEndsRunOnce(t *testing.T) {
	cfg := testConfig()
	cfg.Path.InitialPlatformCount = 0
	cfg.Path.LookaheadMargin = -1000
	h := newHarness(t, cfg, nil)

	h.s.Step(pressLeft(), frameDT)
	require.Equal(t, Running, h.s.State())

	h.steps(56)
	assert.Equal(t, Running, h.s.State(), "still inside the one second window")

	h.steps(10)
	assert.Equal(t, GameOver, h.s.State())

	h.steps(120)
	assert.Equal(t, 1, h.p.gameOvers)
}

func TestObstacleContactEndsRun(t *testing.T) {
	h := newHarness(t, testConfig(), nil)
	h.s.Step(pressLeft(), frameDT)

	pos := h.s.World().Player().Position()
	h.s.World().AddObstacle(pos, 0.5, 0.5)
	h.steps(1)

	assert.Equal(t, GameOver, h.s.State())
}

func TestCoinPickup(t *testing.T) {
	h := newHarness(t, testConfig(), func(m *storage.MemoryPrefs) {
		m.SetInt(KeyTotalCoins, 2)
	})
	h.s.Step(pressLeft(), frameDT)

	pos := h.s.World().Player().Position()
	coin := h.s.World().AddCoin(pos, 0.2)
	h.steps(1)

	_, alive := h.s.World().Get(coin)
	assert.False(t, alive, "collected coins are destroyed")
	assert.Equal(t, 1, h.s.Tally().Coins)
	assert.Equal(t, 3, h.s.Tally().TotalCoins)
	assert.Equal(t, 3, h.prefs.GetInt(KeyTotalCoins, 0))
	assert.Equal(t, 1, h.p.coins)
}

func TestCoinsIgnoredWhileIdle(t *testing.T) {
	h := newHarness(t, testConfig(), nil)

	pos := h.s.World().Player().Position()
	coin := h.s.World().AddCoin(pos, 0.2)
	h.steps(1)

	_, alive := h.s.World().Get(coin)
	assert.True(t, alive)
	assert.Equal(t, 0, h.s.Tally().Coins)
}

func TestSelectCharacter(t *testing.T) {
	h := newHarness(t, testConfig(), nil)
	h.s.Step(pressLeft(), frameDT)
	h.s.Machine().Tick(2)
	before := h.s.Tally()
	oldPlayer := h.s.World().Player().ID()

	require.NoError(t, h.s.SelectCharacter(1))

	assert.Equal(t, "Floater", h.s.Profile().Name)
	assert.Equal(t, 1, h.s.CharacterIndex())
	assert.Equal(t, 1, h.prefs.GetInt(KeySelectedCharacter, 0))
	assert.Equal(t, Running, h.s.State(), "run state untouched")
	assert.Equal(t, before, h.s.Tally(), "tally untouched")

	player := h.s.World().Player()
	assert.NotEqual(t, oldPlayer, player.ID())
	assert.Equal(t, 0.3, player.Radius())
	assert.Equal(t, 1, h.s.World().Count(physics.KindPlayer))
	assert.Same(t, player, h.s.Camera().Target())
}

func TestSelectCharacterDuringGameOverStaysFrozen(t *testing.T) {
	h := newHarness(t, testConfig(), nil)
	h.s.Step(pressLeft(), frameDT)
	h.s.Machine().EndRun()
	require.Equal(t, GameOver, h.s.State())

	require.NoError(t, h.s.SelectCharacter(1))

	player := h.s.World().Player()
	assert.True(t, player.Paused())
	assert.Equal(t, locomotion.Paused, h.s.Controller().State())

	y0 := player.Position().Y
	h.steps(30)
	assert.Equal(t, GameOver, h.s.State())
	assert.Equal(t, y0, player.Position().Y, "frozen body must not move")
	assert.Equal(t, core.V(0, 0), player.Velocity())
}

func TestSelectCharacterOutOfRange(t *testing.T) {
	h := newHarness(t, testConfig(), nil)
	player := h.s.World().Player()

	err := h.s.SelectCharacter(5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, registry.ErrIndexOutOfRange))

	assert.Same(t, player, h.s.World().Player(), "nothing changes")
	assert.Equal(t, 0, h.s.CharacterIndex())
	assert.Equal(t, -1, h.prefs.GetInt(KeySelectedCharacter, -1))
}

func TestNextCharacterWraps(t *testing.T) {
	h := newHarness(t, testConfig(), nil)
	require.NoError(t, h.s.NextCharacter())
	assert.Equal(t, 1, h.s.CharacterIndex())
	require.NoError(t, h.s.NextCharacter())
	assert.Equal(t, 0, h.s.CharacterIndex())
}

func TestApplyConfigTakesEffectOnRestart(t *testing.T) {
	h := newHarness(t, testConfig(), nil)

	next := testConfig()
	next.Path.PlatformSpacing = 3
	require.NoError(t, h.s.ApplyConfig(next))
	assert.True(t, h.s.PendingConfig())

	bad := testConfig()
	bad.Path.PlatformSpacing = 0
	assert.Error(t, h.s.ApplyConfig(bad))

	m := h.s.Machine()
	m.StartRun()
	m.EndRun()
	h.s.Restart()
	assert.False(t, h.s.PendingConfig())

	var ys []float64
	h.s.World().Each(func(e *physics.Entity) bool {
		if e.Kind == physics.KindPlatform {
			ys = append(ys, e.Pos.Y)
		}
		return true
	})
	sort.Float64s(ys)
	require.Len(t, ys, 10)
	for i, y := range ys {
		assert.Equal(t, float64(i)*3, y)
	}
}

func TestRunStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "game_over", GameOver.String())
}

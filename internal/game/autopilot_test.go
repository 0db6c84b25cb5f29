package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/physics"
)

func TestAutopilotStartsTheRun(t *testing.T) {
	h := newHarness(t, testConfig(), nil)
	bot := NewAutopilot()

	h.s.Step(bot.Input(h.s), frameDT)
	assert.Equal(t, Running, h.s.State())
}

func TestAutopilotTargetsHighestReachablePlatform(t *testing.T) {
	w := physics.NewWorld(testConfig().Physics, nil)
	w.AddPlatform(core.V(-1, 0), 5, 0.5)
	w.AddPlatform(core.V(2, 2), 5, 0.5)
	w.AddPlatform(core.V(-2, 6), 5, 0.5)

	bot := NewAutopilot()
	target, ok := bot.Target(w, core.V(0, 1))
	require.True(t, ok)
	assert.Equal(t, core.V(2, 2), target)

	_, ok = bot.Target(w, core.V(0, -5))
	assert.False(t, ok)
}

func TestAutopilotKeepsScoreMonotonic(t *testing.T) {
	h := newHarness(t, testConfig(), nil)
	bot := NewAutopilot()

	last := 0
	for i := 0; i < 1200 && h.s.State() != GameOver; i++ {
		h.s.Step(bot.Input(h.s), frameDT)
		score := h.s.Tally().Score
		require.GreaterOrEqual(t, score, last, "frame %d", i)
		last = score
	}
	assert.Equal(t, h.s.Tally().Score, ComputeScore(h.s.Elapsed(), h.s.Tally().Coins))
}

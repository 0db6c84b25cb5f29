package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
)

const dt = 1.0 / 60

func newTestWorld() *World {
	return NewWorld(config.PhysicsConfig{Gravity: -22, Iterations: 10}, nil)
}

// stepUntil steps the world until a matching event arrives or frames run out.
func stepUntil(w *World, frames int, match func(ContactEvent) bool) (ContactEvent, bool) {
	for i := 0; i < frames; i++ {
		w.Step(dt)
		for _, ev := range w.DrainContacts() {
			if match(ev) {
				return ev, true
			}
		}
	}
	return ContactEvent{}, false
}

func TestLandingOnPlatformReportsUpwardNormal(t *testing.T) {
	w := newTestWorld()
	platform := w.AddPlatform(core.V(0, 0), 5, 0.5)
	player := w.SpawnPlayer(core.V(0, 1), 0.25, 1)

	ev, ok := stepUntil(w, 120, func(ev ContactEvent) bool {
		return ev.Kind == KindPlatform && ev.Phase == ContactBegin
	})
	require.True(t, ok, "expected a platform contact")

	assert.Equal(t, platform, ev.Entity)
	assert.Equal(t, player.ID(), ev.Player)
	assert.Greater(t, ev.Normal.Y, 0.5)
	assert.Greater(t, player.Position().Y, 0.25, "player rests on top of the platform")
}

func TestPlatformsAreOneWay(t *testing.T) {
	w := newTestWorld()
	w.AddPlatform(core.V(0, 0), 5, 0.5)
	player := w.SpawnPlayer(core.V(0, -1), 0.25, 0)
	player.SetVelocity(core.V(0, 10))

	_, ok := stepUntil(w, 60, func(ev ContactEvent) bool {
		return ev.Kind == KindPlatform
	})
	assert.False(t, ok, "rising through a platform must not produce contacts")
	assert.Greater(t, player.Position().Y, 1.0)
}

func TestCoinSensorReportsContact(t *testing.T) {
	w := newTestWorld()
	coin := w.AddCoin(core.V(0, 0.3), 0.2)
	w.SpawnPlayer(core.V(0, 1), 0.25, 1)

	ev, ok := stepUntil(w, 60, func(ev ContactEvent) bool { return ev.Kind == KindCoin })
	require.True(t, ok)
	assert.Equal(t, coin, ev.Entity)
	assert.Equal(t, ContactBegin, ev.Phase)
}

func TestObstacleSensorReportsContact(t *testing.T) {
	w := newTestWorld()
	obstacle := w.AddObstacle(core.V(0, 0), 0.5, 0.5)
	w.SpawnPlayer(core.V(0, 1), 0.25, 1)

	ev, ok := stepUntil(w, 60, func(ev ContactEvent) bool { return ev.Kind == KindObstacle })
	require.True(t, ok)
	assert.Equal(t, obstacle, ev.Entity)
}

func TestPausedPlayerIsFrozen(t *testing.T) {
	w := newTestWorld()
	player := w.SpawnPlayer(core.V(0, 5), 0.25, 1)
	player.SetVelocity(core.V(2, 3))
	player.SetPaused(true)

	for i := 0; i < 30; i++ {
		w.Step(dt)
	}
	assert.Equal(t, core.V(0, 5), player.Position())
	assert.Equal(t, core.Vec2{}, player.Velocity())

	player.SetVelocity(core.V(1, 1))
	assert.Equal(t, core.Vec2{}, player.Velocity(), "paused bodies ignore velocity commands")

	player.SetPaused(false)
	w.Step(dt)
	assert.Less(t, player.Velocity().Y, 0.0, "gravity resumes")
}

func TestGravityScale(t *testing.T) {
	w := newTestWorld()
	player := w.SpawnPlayer(core.V(0, 5), 0.25, 0)
	for i := 0; i < 30; i++ {
		w.Step(dt)
	}
	assert.InDelta(t, 5.0, player.Position().Y, 1e-9)
}

func TestSpawnPlayerReplacesExisting(t *testing.T) {
	w := newTestWorld()
	first := w.SpawnPlayer(core.V(0, 1), 0.25, 1)
	second := w.SpawnPlayer(core.V(0, 2), 0.3, 1)

	assert.NotEqual(t, first.ID(), second.ID())
	assert.Equal(t, 1, w.Count(KindPlayer))
	_, ok := w.Get(first.ID())
	assert.False(t, ok)
	assert.Same(t, second, w.Player())
	assert.Equal(t, 0.3, second.Radius())
}

func TestSetXKeepsVelocity(t *testing.T) {
	w := newTestWorld()
	player := w.SpawnPlayer(core.V(0, 1), 0.25, 1)
	player.SetVelocity(core.V(3, 4))
	player.SetX(-2)

	assert.Equal(t, -2.0, player.Position().X)
	assert.Equal(t, core.V(3, 4), player.Velocity())
}

func TestRemoveKindsAndCull(t *testing.T) {
	w := newTestWorld()
	w.AddPlatform(core.V(0, 0), 5, 0.5)
	w.AddPlatform(core.V(0, 20), 5, 0.5)
	w.AddObstacle(core.V(0, 0.5), 0.5, 0.5)
	w.AddCoin(core.V(1, 10), 0.2)
	w.SpawnPlayer(core.V(0, 15), 0.25, 1)

	assert.Equal(t, 5, w.Len())

	// Everything with its top below y=5 goes, the player never does
	removed := w.CullBelow(5)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, w.Count(KindPlatform))
	assert.Equal(t, 0, w.Count(KindObstacle))
	assert.NotNil(t, w.Player())

	removed = w.RemoveKinds(KindPlatform, KindCoin)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, w.Len())

	w.RemoveKinds(KindPlayer)
	assert.Nil(t, w.Player())
	assert.Equal(t, 0, w.Len())
}

func TestRemoveWhileTouchingEmitsSeparate(t *testing.T) {
	w := newTestWorld()
	platform := w.AddPlatform(core.V(0, 0), 5, 0.5)
	player := w.SpawnPlayer(core.V(0, 1), 0.25, 1)

	_, ok := stepUntil(w, 120, func(ev ContactEvent) bool {
		return ev.Kind == KindPlatform && ev.Phase == ContactBegin
	})
	require.True(t, ok)

	assert.True(t, w.Remove(platform))
	assert.False(t, w.Remove(platform))

	events := w.DrainContacts()
	require.Len(t, events, 1)
	assert.Equal(t, KindPlatform, events[0].Kind)
	assert.Equal(t, ContactSeparate, events[0].Phase)
	assert.Equal(t, platform, events[0].Entity)
	assert.Equal(t, player.ID(), events[0].Player)

	w.Step(dt)
	assert.Empty(t, w.DrainContacts(), "no second separate from the space")
}

func TestCullWhileTouchingEmitsSeparate(t *testing.T) {
	w := newTestWorld()
	platform := w.AddPlatform(core.V(0, 0), 5, 0.5)
	w.SpawnPlayer(core.V(0, 1), 0.25, 1)

	_, ok := stepUntil(w, 120, func(ev ContactEvent) bool {
		return ev.Kind == KindPlatform && ev.Phase == ContactBegin
	})
	require.True(t, ok)

	assert.Equal(t, 1, w.CullBelow(10))
	events := w.DrainContacts()
	require.Len(t, events, 1)
	assert.Equal(t, ContactSeparate, events[0].Phase)
	assert.Equal(t, platform, events[0].Entity)
}

func TestRemoveUntouchedEmitsNothing(t *testing.T) {
	w := newTestWorld()
	platform := w.AddPlatform(core.V(0, -5), 5, 0.5)
	w.SpawnPlayer(core.V(0, 1), 0.25, 1)

	assert.True(t, w.Remove(platform))
	assert.Empty(t, w.DrainContacts())
}

func TestEntityBounds(t *testing.T) {
	box := &Entity{Pos: core.V(1, 2), W: 4, H: 1}
	lo, hi := box.Bounds()
	assert.Equal(t, core.V(-1, 1.5), lo)
	assert.Equal(t, core.V(3, 2.5), hi)
	assert.Equal(t, 2.5, box.Top())

	coin := &Entity{Pos: core.V(0, 0), Radius: 0.5}
	assert.Equal(t, 0.5, coin.Top())
}

package game

import (
	"math"

	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/physics"
)

// Autopilot is a simple steering bot for headless runs. It aims for the
// highest platform it can still land on and starts the run on its first frame.
type Autopilot struct {
	// Reach is how far above the player a platform top may be and still count
	// as reachable.
	Reach float64
	// Gain converts horizontal distance to axis; larger values steer harder.
	Gain float64
}

// NewAutopilot returns a bot tuned for the default physics.
func NewAutopilot() *Autopilot {
	return &Autopilot{Reach: 2, Gain: 2}
}

// Input builds the frame input for s.
func (a *Autopilot) Input(s *Session) core.InputFrame {
	in := core.NewInputFrame()
	if s.State() == Idle {
		in.Set(core.ActionRight)
		return in
	}
	player := s.World().Player()
	if player == nil {
		return in
	}

	pos := player.Position()
	if target, ok := a.Target(s.World(), pos); ok {
		in.Axis = core.ClampF((target.X-pos.X)*a.Gain, -1, 1)
	}
	return in
}

// Target returns the center of the platform the bot steers for: the highest
// platform whose top lies within Reach above pos.
func (a *Autopilot) Target(w *physics.World, pos core.Vec2) (core.Vec2, bool) {
	best := math.Inf(-1)
	var target core.Vec2
	w.Each(func(e *physics.Entity) bool {
		if e.Kind != physics.KindPlatform {
			return true
		}
		top := e.Top()
		if top <= pos.Y+a.Reach && top > best {
			best = top
			target = e.Pos
		}
		return true
	})
	return target, !math.IsInf(best, -1)
}

// Package locomotion drives the player body: horizontal steering from
// keyboard or pointer drag, bounce on platform contact, and the fail-safe
// timer that ends a run when no platform is touched for too long.
package locomotion

import (
	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
)

// Body is the physics handle the controller commands.
type Body interface {
	Position() core.Vec2
	Velocity() core.Vec2
	SetVelocity(v core.Vec2)
	SetX(x float64)
	SetPaused(paused bool)
}

// GameOverSink receives run-ending signals. Repeated signals must be harmless.
type GameOverSink interface {
	EndRun()
}

// State is the controller's contact state.
type State int

const (
	Airborne State = iota
	Grounded
	Paused
)

func (s State) String() string {
	switch s {
	case Grounded:
		return "grounded"
	case Paused:
		return "paused"
	default:
		return "airborne"
	}
}

// Controller owns the player's kinematic commands.
type Controller struct {
	BounceNormalThreshold float64

	body    Body
	profile config.CharacterProfile
	input   *InputResolver
	sink    GameOverSink

	grounded          bool
	paused            bool
	command           float64
	timeSinceGrounded float64
}

// NewController creates a detached controller. threshold is the minimum
// contact normal Y that counts as landing on a platform.
func NewController(threshold float64, sink GameOverSink) *Controller {
	return &Controller{
		BounceNormalThreshold: threshold,
		input:                 NewInputResolver(0, 0),
		sink:                  sink,
	}
}

// SetSink replaces the game-over receiver.
func (c *Controller) SetSink(sink GameOverSink) {
	c.sink = sink
}

// Attach binds a freshly spawned body and profile and applies the initial
// bounce impulse.
func (c *Controller) Attach(body Body, profile config.CharacterProfile) {
	c.body = body
	c.profile = profile
	c.input.Sensitivity = profile.TouchSensitivity
	c.input.Deadzone = profile.TouchDeadzone
	c.input.Reset()
	c.grounded = false
	c.paused = false
	c.command = 0
	c.timeSinceGrounded = 0

	if body != nil {
		body.SetPaused(false)
		c.bounce()
	}
}

// Detach drops the body reference.
func (c *Controller) Detach() {
	c.body = nil
	c.input.Reset()
}

// Attached reports whether a body is bound.
func (c *Controller) Attached() bool {
	return c.body != nil
}

func (c *Controller) Profile() config.CharacterProfile { return c.profile }

// State returns the current contact state.
func (c *Controller) State() State {
	switch {
	case c.paused:
		return Paused
	case c.grounded:
		return Grounded
	default:
		return Airborne
	}
}

// Command returns the last resolved horizontal command.
func (c *Controller) Command() float64 { return c.command }

// TimeSinceGrounded returns the fail timer.
func (c *Controller) TimeSinceGrounded() float64 { return c.timeSinceGrounded }

// Update resolves input and sets the horizontal velocity. Vertical velocity
// is left to gravity and bounces.
func (c *Controller) Update(in core.InputFrame) {
	if c.body == nil || c.paused {
		return
	}
	c.command = c.input.Resolve(in)
	v := c.body.Velocity()
	c.body.SetVelocity(core.V(c.command*c.profile.MoveSpeed, v.Y))
}

// ClampPosition keeps the body within the horizontal play band.
func (c *Controller) ClampPosition() {
	if c.body == nil {
		return
	}
	x := c.body.Position().X
	limit := c.profile.MaxHorizontal
	if clamped := core.ClampF(x, -limit, limit); clamped != x {
		c.body.SetX(clamped)
	}
}

// OnPlatformContact handles a platform touch. Contacts from above bounce the
// body and reset the fail timer; it reports whether a bounce happened.
func (c *Controller) OnPlatformContact(normal core.Vec2) bool {
	if c.body == nil || c.paused {
		return false
	}
	if normal.Y <= c.BounceNormalThreshold {
		return false
	}
	c.grounded = true
	c.timeSinceGrounded = 0
	c.bounce()
	return true
}

// OnPlatformSeparate marks the body airborne.
func (c *Controller) OnPlatformSeparate() {
	c.grounded = false
}

// OnObstacleContact signals game over.
func (c *Controller) OnObstacleContact() {
	if c.body == nil {
		return
	}
	c.signal()
}

// UpdateFailTimer advances the time since the last platform and signals game
// over once it reaches the profile's limit.
func (c *Controller) UpdateFailTimer(dt float64) {
	if c.body == nil || c.paused || c.grounded {
		return
	}
	c.timeSinceGrounded += dt
	if c.timeSinceGrounded >= c.profile.MaxTimeWithoutPlatform {
		c.signal()
	}
}

// Pause zeroes velocity and freezes integration.
func (c *Controller) Pause() {
	c.paused = true
	c.command = 0
	if c.body != nil {
		c.body.SetPaused(true)
	}
}

// Resume releases a paused body.
func (c *Controller) Resume() {
	c.paused = false
	if c.body != nil {
		c.body.SetPaused(false)
	}
}

func (c *Controller) bounce() {
	v := c.body.Velocity()
	c.body.SetVelocity(core.V(v.X, c.profile.BounceForce))
}

func (c *Controller) signal() {
	if c.sink != nil {
		c.sink.EndRun()
	}
}

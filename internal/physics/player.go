package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/skyhop/internal/core"
)

// PlayerBody is the handle locomotion drives. Gravity is scaled per body and
// a paused body neither moves nor accelerates.
type PlayerBody struct {
	id           EntityID
	body         *cp.Body
	shape        *cp.Shape
	radius       float64
	gravityScale float64
	paused       bool
}

// ID returns the entity id of the body.
func (p *PlayerBody) ID() EntityID { return p.id }

func (p *PlayerBody) Position() core.Vec2 {
	v := p.body.Position()
	return core.V(v.X, v.Y)
}

func (p *PlayerBody) Velocity() core.Vec2 {
	v := p.body.Velocity()
	return core.V(v.X, v.Y)
}

func (p *PlayerBody) SetVelocity(v core.Vec2) {
	if p.paused {
		return
	}
	p.body.SetVelocityVector(cp.Vector{X: v.X, Y: v.Y})
}

// SetX moves the body horizontally without touching its velocity.
func (p *PlayerBody) SetX(x float64) {
	pos := p.body.Position()
	p.body.SetPosition(cp.Vector{X: x, Y: pos.Y})
}

// SetPaused freezes or releases the body. Pausing zeroes the velocity.
func (p *PlayerBody) SetPaused(paused bool) {
	p.paused = paused
	if paused {
		p.body.SetVelocityVector(cp.Vector{})
	}
}

func (p *PlayerBody) Paused() bool { return p.paused }

// Radius returns the collision radius.
func (p *PlayerBody) Radius() float64 {
	return p.radius
}

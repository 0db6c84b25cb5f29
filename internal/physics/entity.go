// Package physics wraps a Chipmunk2D space for skyhop: one dynamic player
// body, static platforms, obstacle and coin sensors, and the contact events
// the game reacts to after each step.
package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/skyhop/internal/core"
)

// EntityID identifies a live entity. Zero is never assigned.
type EntityID uint32

// EntityKind is the closed set of things that exist in the world.
type EntityKind int

const (
	KindPlayer EntityKind = iota
	KindPlatform
	KindObstacle
	KindCoin
)

func (k EntityKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindPlatform:
		return "platform"
	case KindObstacle:
		return "obstacle"
	case KindCoin:
		return "coin"
	default:
		return "unknown"
	}
}

// Chipmunk collision types, one per kind.
const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypePlatform
	collisionTypeObstacle
	collisionTypeCoin
)

func collisionTypeFor(k EntityKind) cp.CollisionType {
	switch k {
	case KindPlayer:
		return collisionTypePlayer
	case KindPlatform:
		return collisionTypePlatform
	case KindObstacle:
		return collisionTypeObstacle
	default:
		return collisionTypeCoin
	}
}

// Entity is a world object. Boxes use Pos as their center with W x H extent;
// coins use Pos as center with Radius.
type Entity struct {
	ID     EntityID
	Kind   EntityKind
	Pos    core.Vec2
	W, H   float64
	Radius float64

	shape *cp.Shape
}

// Top returns the highest Y covered by the entity.
func (e *Entity) Top() float64 {
	if e.Radius > 0 {
		return e.Pos.Y + e.Radius
	}
	return e.Pos.Y + e.H/2
}

// Bounds returns the axis-aligned extent as min and max corners.
func (e *Entity) Bounds() (lo, hi core.Vec2) {
	if e.Radius > 0 {
		r := core.V(e.Radius, e.Radius)
		return e.Pos.Sub(r), e.Pos.Add(r)
	}
	half := core.V(e.W/2, e.H/2)
	return e.Pos.Sub(half), e.Pos.Add(half)
}

// ContactPhase distinguishes the start and end of a touch.
type ContactPhase int

const (
	ContactBegin ContactPhase = iota
	ContactSeparate
)

func (p ContactPhase) String() string {
	if p == ContactSeparate {
		return "separate"
	}
	return "begin"
}

// ContactEvent reports that the player started or stopped touching an entity.
// Normal points from the other entity toward the player.
type ContactEvent struct {
	Kind   EntityKind
	Phase  ContactPhase
	Entity EntityID
	Player EntityID
	Normal core.Vec2
}

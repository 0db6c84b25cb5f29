package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/skyhop/internal/core"
)

func (w *World) setupHandlers() {
	platformHandler := w.space.NewCollisionHandler(collisionTypePlayer, collisionTypePlatform)
	platformHandler.UserData = w
	platformHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return true
		}
		other, n, ok := world.resolve(arb)
		if !ok {
			return true
		}
		// One-way: rising through a platform from below is not a contact
		if n.Y <= 0 {
			return false
		}
		world.touching[other] = true
		world.emit(KindPlatform, ContactBegin, other, n)
		return true
	}
	platformHandler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return
		}
		other, n, ok := world.resolve(arb)
		if !ok || !world.touching[other] {
			return
		}
		delete(world.touching, other)
		world.emit(KindPlatform, ContactSeparate, other, n)
	}

	w.sensorHandler(collisionTypeObstacle, KindObstacle)
	w.sensorHandler(collisionTypeCoin, KindCoin)
}

// sensorHandler reports the first touch of a sensor kind. Sensors never
// push the player, so only Begin matters.
func (w *World) sensorHandler(ct cp.CollisionType, kind EntityKind) {
	h := w.space.NewCollisionHandler(collisionTypePlayer, ct)
	h.UserData = w
	h.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return true
		}
		other, n, ok := world.resolve(arb)
		if !ok {
			return true
		}
		world.emit(kind, ContactBegin, other, n)
		return true
	}
}

// resolve finds the non-player shape of an arbiter and the contact normal
// pointing toward the player.
func (w *World) resolve(arb *cp.Arbiter) (*cp.Shape, core.Vec2, bool) {
	if w.player == nil {
		return nil, core.Vec2{}, false
	}
	shapeA, shapeB := arb.Shapes()
	n := arb.Normal()

	var other *cp.Shape
	switch w.player.shape {
	case shapeA:
		// Arbiter normals point from A to B
		other = shapeB
		n = n.Neg()
	case shapeB:
		other = shapeA
	default:
		return nil, core.Vec2{}, false
	}
	if _, ok := w.shapes[other]; !ok {
		return nil, core.Vec2{}, false
	}
	return other, core.V(n.X, n.Y), true
}

func (w *World) emit(kind EntityKind, phase ContactPhase, other *cp.Shape, n core.Vec2) {
	w.events = append(w.events, ContactEvent{
		Kind:   kind,
		Phase:  phase,
		Entity: w.shapes[other],
		Player: w.player.id,
		Normal: n,
	})
}

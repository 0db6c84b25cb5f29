package physics

import (
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
)

// World owns the Chipmunk space and every live entity.
type World struct {
	space    *cp.Space
	entities *intmap.Map[EntityID, *Entity]
	shapes   map[*cp.Shape]EntityID
	touching map[*cp.Shape]bool // accepted contacts with the player, keyed by the other shape
	player   *PlayerBody
	nextID   EntityID
	events   []ContactEvent
	logger   *log.Logger
}

// NewWorld creates an empty world. A nil logger discards messages.
func NewWorld(cfg config.PhysicsConfig, logger *log.Logger) *World {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	space := cp.NewSpace()
	space.Iterations = uint(max(cfg.Iterations, 1))
	space.SetGravity(cp.Vector{X: 0, Y: cfg.Gravity})

	w := &World{
		space:    space,
		entities: intmap.New[EntityID, *Entity](64),
		shapes:   make(map[*cp.Shape]EntityID),
		touching: make(map[*cp.Shape]bool),
		logger:   logger,
	}
	w.setupHandlers()
	return w
}

// SetGravity changes the vertical gravity.
func (w *World) SetGravity(g float64) {
	w.space.SetGravity(cp.Vector{X: 0, Y: g})
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	return w.space
}

// Step advances the simulation. Contacts produced during the step are queued
// for DrainContacts.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	w.space.Step(dt)
}

// DrainContacts returns the contact events queued since the last drain.
func (w *World) DrainContacts() []ContactEvent {
	if len(w.events) == 0 {
		return nil
	}
	out := w.events
	w.events = nil
	return out
}

// AddPlatform adds a solid one-way platform centered at pos.
func (w *World) AddPlatform(pos core.Vec2, width, height float64) EntityID {
	return w.addBox(KindPlatform, pos, width, height, false)
}

// AddObstacle adds a hazard centered at pos.
func (w *World) AddObstacle(pos core.Vec2, width, height float64) EntityID {
	return w.addBox(KindObstacle, pos, width, height, true)
}

// AddCoin adds a collectible sensor centered at pos.
func (w *World) AddCoin(pos core.Vec2, radius float64) EntityID {
	shape := cp.NewCircle(w.space.StaticBody, radius, cp.Vector{X: pos.X, Y: pos.Y})
	shape.SetSensor(true)
	e := &Entity{Kind: KindCoin, Pos: pos, Radius: radius}
	return w.register(e, shape)
}

func (w *World) addBox(kind EntityKind, pos core.Vec2, width, height float64, sensor bool) EntityID {
	bb := cp.BB{
		L: pos.X - width/2,
		B: pos.Y - height/2,
		R: pos.X + width/2,
		T: pos.Y + height/2,
	}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetSensor(sensor)
	shape.SetFriction(0)
	e := &Entity{Kind: kind, Pos: pos, W: width, H: height}
	return w.register(e, shape)
}

func (w *World) register(e *Entity, shape *cp.Shape) EntityID {
	w.nextID++
	e.ID = w.nextID
	e.shape = shape
	shape.SetCollisionType(collisionTypeFor(e.Kind))
	w.space.AddShape(shape)
	w.shapes[shape] = e.ID
	w.entities.Put(e.ID, e)
	return e.ID
}

// SpawnPlayer creates the player body at pos. An existing player is removed
// first, so there is never more than one.
func (w *World) SpawnPlayer(pos core.Vec2, radius, gravityScale float64) *PlayerBody {
	w.RemovePlayer()

	const mass = 1.0
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})

	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(0)
	shape.SetElasticity(0)

	pb := &PlayerBody{body: body, shape: shape, radius: radius, gravityScale: gravityScale}
	body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping, dt float64) {
		if pb.paused {
			b.SetVelocityVector(cp.Vector{})
			return
		}
		cp.BodyUpdateVelocity(b, gravity.Mult(pb.gravityScale), damping, dt)
	})

	w.space.AddBody(body)
	pb.id = w.register(&Entity{Kind: KindPlayer, Pos: pos, Radius: radius}, shape)
	w.player = pb

	w.logger.Debug("player spawned", "id", pb.id, "x", pos.X, "y", pos.Y)
	return pb
}

// Player returns the live player body, or nil.
func (w *World) Player() *PlayerBody {
	return w.player
}

// RemovePlayer destroys the player body if one exists.
func (w *World) RemovePlayer() {
	if w.player == nil {
		return
	}
	pb := w.player
	w.player = nil
	clear(w.touching)
	w.unregister(pb.id)
	w.space.RemoveBody(pb.body)
}

// Get returns the entity with the given id.
func (w *World) Get(id EntityID) (*Entity, bool) {
	e, ok := w.entities.Get(id)
	if ok && e.Kind == KindPlayer && w.player != nil {
		e.Pos = w.player.Position()
	}
	return e, ok
}

// Remove destroys a non-player entity. Unknown ids are ignored.
func (w *World) Remove(id EntityID) bool {
	if w.player != nil && id == w.player.id {
		w.RemovePlayer()
		return true
	}
	return w.unregister(id)
}

func (w *World) unregister(id EntityID) bool {
	e, ok := w.entities.Get(id)
	if !ok {
		return false
	}
	// Removing a touched shape ends the contact. Chipmunk's own separate
	// callback finds no touching entry and stays quiet.
	if w.touching[e.shape] && w.player != nil {
		w.emit(e.Kind, ContactSeparate, e.shape, core.Vec2{})
	}
	delete(w.touching, e.shape)
	delete(w.shapes, e.shape)
	w.space.RemoveShape(e.shape)
	w.entities.Del(id)
	return true
}

// RemoveKinds destroys every entity of the given kinds and returns how many
// were removed. The player is only removed when KindPlayer is listed.
func (w *World) RemoveKinds(kinds ...EntityKind) int {
	var ids []EntityID
	w.entities.ForEach(func(id EntityID, e *Entity) bool {
		for _, k := range kinds {
			if e.Kind == k {
				ids = append(ids, id)
				break
			}
		}
		return true
	})
	for _, id := range ids {
		w.Remove(id)
	}
	return len(ids)
}

// CullBelow destroys non-player entities whose top is below y.
func (w *World) CullBelow(y float64) int {
	var ids []EntityID
	w.entities.ForEach(func(id EntityID, e *Entity) bool {
		if e.Kind != KindPlayer && e.Top() < y {
			ids = append(ids, id)
		}
		return true
	})
	for _, id := range ids {
		w.unregister(id)
	}
	return len(ids)
}

// Count returns the number of live entities of kind k.
func (w *World) Count(k EntityKind) int {
	n := 0
	w.entities.ForEach(func(_ EntityID, e *Entity) bool {
		if e.Kind == k {
			n++
		}
		return true
	})
	return n
}

// Len returns the number of live entities, the player included.
func (w *World) Len() int {
	return w.entities.Len()
}

// Each calls fn for every live entity until fn returns false. The player's
// position is refreshed from its body first.
func (w *World) Each(fn func(e *Entity) bool) {
	if w.player != nil {
		if e, ok := w.entities.Get(w.player.id); ok {
			e.Pos = w.player.Position()
		}
	}
	w.entities.ForEach(func(_ EntityID, e *Entity) bool {
		return fn(e)
	})
}

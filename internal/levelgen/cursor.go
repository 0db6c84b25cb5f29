// Package levelgen places platforms, obstacles and coins ahead of the player.
// Both emitters are driven by a Cursor: a watermark that only moves up, by a
// fixed step, and only when the reference height passes it.
package levelgen

import (
	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/physics"
)

// World is where emitted entities go.
type World interface {
	AddPlatform(pos core.Vec2, width, height float64) physics.EntityID
	AddObstacle(pos core.Vec2, width, height float64) physics.EntityID
	AddCoin(pos core.Vec2, radius float64) physics.EntityID
}

// Cursor is the next emission height.
type Cursor struct {
	next float64
	step float64
}

// NewCursor creates a cursor at y advancing by step.
func NewCursor(y, step float64) Cursor {
	return Cursor{next: y, step: step}
}

// Next returns the height of the next emission.
func (c *Cursor) Next() float64 { return c.next }

// Step returns the advance per emission.
func (c *Cursor) Step() float64 { return c.step }

// Reset reseeds the watermark.
func (c *Cursor) Reset(y float64) { c.next = y }

// Due reports whether the lookahead height has passed the watermark.
func (c *Cursor) Due(lookahead float64) bool { return lookahead > c.next }

// Advance returns the current height and moves the watermark up one step.
func (c *Cursor) Advance() float64 {
	y := c.next
	c.next += c.step
	return y
}

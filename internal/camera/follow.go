// Package camera implements an exponential follow camera.
package camera

import (
	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
)

// Target is anything with a position.
type Target interface {
	Position() core.Vec2
}

// Follow moves toward target + offset by clamp(SmoothSpeed*dt, 0, 1) of the
// remaining distance each frame.
type Follow struct {
	Offset      core.Vec2
	SmoothSpeed float64

	target Target
	pos    core.Vec2
}

// NewFollow creates a camera at the origin with no target.
func NewFollow(cfg config.CameraConfig) *Follow {
	return &Follow{
		Offset:      core.V(cfg.OffsetX, cfg.OffsetY),
		SmoothSpeed: cfg.SmoothSpeed,
	}
}

// SetTarget changes what the camera follows. The position is kept, so the
// camera glides to the new target. A nil target freezes the camera.
func (f *Follow) SetTarget(t Target) {
	f.target = t
}

// Target returns the followed target, or nil.
func (f *Follow) Target() Target { return f.target }

// Snap jumps straight to the target.
func (f *Follow) Snap() {
	if f.target == nil {
		return
	}
	f.pos = f.target.Position().Add(f.Offset)
}

// Update moves the camera one frame toward its target.
func (f *Follow) Update(dt float64) {
	if f.target == nil {
		return
	}
	desired := f.target.Position().Add(f.Offset)
	t := core.ClampF(f.SmoothSpeed*dt, 0, 1)
	f.pos = core.Lerp(f.pos, desired, t)
}

// Position returns the camera center.
func (f *Follow) Position() core.Vec2 { return f.pos }

// SetPosition places the camera directly.
func (f *Follow) SetPosition(p core.Vec2) { f.pos = p }

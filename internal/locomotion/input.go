package locomotion

import (
	"math"

	"github.com/vovakirdan/skyhop/internal/core"
)

// InputResolver turns raw frame input into a horizontal command in [-1, 1].
// A drag in progress owns the command; otherwise the keyboard axis does.
type InputResolver struct {
	Sensitivity float64
	Deadzone    float64

	dragging bool
	origin   core.Vec2
	command  float64
}

// NewInputResolver creates a resolver with the given drag tuning.
func NewInputResolver(sensitivity, deadzone float64) *InputResolver {
	return &InputResolver{Sensitivity: sensitivity, Deadzone: deadzone}
}

// Reset forgets any drag in progress.
func (r *InputResolver) Reset() {
	r.dragging = false
	r.origin = core.Vec2{}
	r.command = 0
}

// Dragging reports whether a pointer drag is in progress.
func (r *InputResolver) Dragging() bool {
	return r.dragging
}

// Resolve consumes the frame's pointer events in order and returns the command.
func (r *InputResolver) Resolve(in core.InputFrame) float64 {
	for _, ev := range in.Pointer {
		switch ev.Phase {
		case core.PointerDown:
			if ev.OverUI {
				continue
			}
			r.dragging = true
			r.origin = core.V(ev.X, ev.Y)
			r.command = 0
		case core.PointerMove:
			if r.dragging {
				r.command = r.dragCommand(core.V(ev.X, ev.Y), in.ViewportWidth)
			}
		case core.PointerUp:
			if r.dragging {
				r.dragging = false
				r.command = 0
			}
		}
	}

	if r.dragging {
		return r.command
	}
	return core.ClampF(in.Axis, -1, 1)
}

// dragCommand normalizes the drag by the viewport width.
func (r *InputResolver) dragCommand(at core.Vec2, width float64) float64 {
	if width <= 0 {
		return 0
	}
	delta := at.Sub(r.origin)
	if delta.Len()/width < r.Deadzone {
		return 0
	}
	cmd := core.ClampF(delta.X*r.Sensitivity/width, -1, 1)
	if math.IsNaN(cmd) {
		return 0
	}
	return cmd
}

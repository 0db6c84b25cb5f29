package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone          Action = iota
	ActionLeft                 // Left arrow, A - steer left (press edge)
	ActionRight                // Right arrow, D - steer right (press edge)
	ActionRestart              // R - restart after game over
	ActionNextCharacter        // C - cycle the selected character
	ActionQuit                 // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionRestart:
		return "Restart"
	case ActionNextCharacter:
		return "NextCharacter"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// PointerPhase is the lifecycle stage of a pointer (mouse or touch) event.
type PointerPhase int

const (
	PointerDown PointerPhase = iota
	PointerMove
	PointerUp
)

// PointerEvent is a primary-pointer sample in screen coordinates.
type PointerEvent struct {
	Phase PointerPhase
	X, Y  float64
	// OverUI is set by the platform when the press landed on an interactive
	// element; such presses never start a run.
	OverUI bool
}

// InputFrame is everything the player did during one simulation tick.
type InputFrame struct {
	// Actions holds the press edges seen this frame.
	Actions map[Action]bool

	// Axis is the held keyboard steering axis in [-1, 1].
	Axis float64

	// Pointer lists the pointer events of this frame in arrival order.
	Pointer []PointerEvent

	// ViewportWidth is the screen width the pointer coordinates are measured
	// against; drag distances are normalized by it.
	ViewportWidth float64
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// AddPointer appends a pointer event.
func (f *InputFrame) AddPointer(ev PointerEvent) {
	f.Pointer = append(f.Pointer, ev)
}

// StartTriggered reports whether this frame carries a run-starting input:
// a directional press or a primary pointer press outside the UI.
func (f InputFrame) StartTriggered() bool {
	if f.Has(ActionLeft) || f.Has(ActionRight) {
		return true
	}
	for _, ev := range f.Pointer {
		if ev.Phase == PointerDown && !ev.OverUI {
			return true
		}
	}
	return false
}

// Clear resets the frame for the next tick. Axis and ViewportWidth are
// platform-held state and survive.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointer = f.Pointer[:0]
}

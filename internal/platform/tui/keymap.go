package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/skyhop/internal/core"
)

// DefaultHoldWindow is how long a steering key counts as held after its last
// press, in seconds. Terminals report key repeats, never releases, so the
// window has to bridge the gap before autorepeat kicks in.
const DefaultHoldWindow = 0.3

// KeyMap defines the in-game key bindings.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Restart    key.Binding
	Character  key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Restart, k.Character, k.Quit}
}

// FullHelp returns key bindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right},
		{k.Restart, k.Character},
		{k.Screenshot, k.Quit},
	}
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Character: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "character"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key message to a game action.
func (k KeyMap) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Character):
		return core.ActionNextCharacter
	}
	return core.ActionNone
}

// Steering turns discrete key presses into a held axis. Each press holds its
// direction for Window seconds; the opposite key takes over immediately.
type Steering struct {
	Window    float64
	dir       float64
	remaining float64
}

// NewSteering creates a steering axis with the given hold window.
func NewSteering(window float64) *Steering {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &Steering{Window: window}
}

// Press registers a steering key press.
func (s *Steering) Press(a core.Action) {
	switch a {
	case core.ActionLeft:
		s.dir = -1
	case core.ActionRight:
		s.dir = 1
	default:
		return
	}
	s.remaining = s.Window
}

// Advance ages the hold by dt and returns the axis for this frame.
func (s *Steering) Advance(dt float64) float64 {
	axis := s.dir
	s.remaining -= dt
	if s.remaining <= 0 {
		s.remaining = 0
		s.dir = 0
	}
	return axis
}

// Release drops any held direction.
func (s *Steering) Release() {
	s.dir = 0
	s.remaining = 0
}

package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/game"
)

// statusFrames is how long a transient status message stays visible.
const statusFrames = 180

// ModelOptions configures the terminal side of a session.
type ModelOptions struct {
	Runtime core.RuntimeConfig

	// Reloads and ReloadErrors come from a config watcher and may be nil.
	Reloads      <-chan config.Config
	ReloadErrors <-chan error

	HoldWindow float64 // seconds; DefaultHoldWindow when zero
	Logger     *log.Logger
}

// Model is the Bubble Tea model for one skyhop session.
type Model struct {
	session *game.Session
	hud     *HUD
	screen  *core.Screen
	config  core.RuntimeConfig
	keys    KeyMap
	help    help.Model
	steer   *Steering
	input   core.InputFrame

	reloads      <-chan config.Config
	reloadErrors <-chan error
	logger       *log.Logger

	status    string
	statusTTL int
	quitting  bool
}

// NewGame builds a session that presents into a fresh HUD and wraps it in a Model.
func NewGame(gopts game.Options, mopts ModelOptions) (Model, error) {
	hud := NewHUD()
	gopts.Presenter = hud
	if gopts.Seed == 0 {
		gopts.Seed = mopts.Runtime.ResolveSeed()
	}
	if gopts.Logger == nil {
		gopts.Logger = mopts.Logger
	}

	session, err := game.NewSession(gopts)
	if err != nil {
		return Model{}, err
	}
	return NewModel(session, hud, mopts), nil
}

// NewModel wraps an existing session. hud must be the session's presenter.
func NewModel(session *game.Session, hud *HUD, opts ModelOptions) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rc := opts.Runtime

	h := help.New()
	h.Width = rc.ScreenW

	return Model{
		session:      session,
		hud:          hud,
		screen:       core.NewScreen(rc.ScreenW, playfieldHeight(rc.ScreenH)),
		config:       rc,
		keys:         DefaultKeyMap(),
		help:         h,
		steer:        NewSteering(opts.HoldWindow),
		input:        core.NewInputFrame(),
		reloads:      opts.Reloads,
		reloadErrors: opts.ReloadErrors,
		logger:       logger,
	}
}

// playfieldHeight leaves the bottom row for the help line.
func playfieldHeight(screenH int) int {
	return max(hudRows+1, screenH-1)
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and advances the session on ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey records key presses; they are applied on the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.MapKey(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionLeft, core.ActionRight:
		m.steer.Press(action)
		m.input.Set(action)
	case core.ActionRestart, core.ActionNextCharacter:
		m.input.Set(action)
	case core.ActionNone:
	}
	return m, nil
}

// handleMouse turns left-button activity into pointer events. Presses on the
// HUD row or the help line are flagged as UI presses.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	ev := core.PointerEvent{
		X:      float64(msg.X),
		Y:      float64(msg.Y),
		OverUI: msg.Y < hudRows || msg.Y >= m.screen.Height(),
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		ev.Phase = core.PointerDown
	case tea.MouseActionMotion:
		ev.Phase = core.PointerMove
	case tea.MouseActionRelease:
		ev.Phase = core.PointerUp
	default:
		return m, nil
	}

	m.input.AddPointer(ev)
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playfieldHeight(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick runs one fixed-step frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	dt := m.config.TickDuration()
	m.drainReloads()

	if m.input.Has(core.ActionRestart) && m.session.State() == game.GameOver {
		m.session.Restart()
		m.steer.Release()
	}
	if m.input.Has(core.ActionNextCharacter) {
		m.nextCharacter()
	}

	m.input.Axis = m.steer.Advance(dt)
	m.input.ViewportWidth = float64(m.screen.Width())
	m.session.Step(m.input, dt)

	m.hud.Advance()
	if m.statusTTL > 0 {
		m.statusTTL--
	}
	m.input.Clear()

	return m, tickCmd(m.config.TickRate)
}

// nextCharacter cycles the roster outside of a run.
func (m *Model) nextCharacter() {
	if m.session.State() == game.Running {
		m.setStatus("finish the run to change character")
		return
	}
	if err := m.session.NextCharacter(); err != nil {
		m.logger.Warn("change character", "err", err)
		m.setStatus("could not change character")
		return
	}
	m.setStatus("character: " + m.session.Profile().Name)
}

// drainReloads hands watcher results to the session without blocking.
func (m *Model) drainReloads() {
	for m.reloads != nil || m.reloadErrors != nil {
		select {
		case cfg, ok := <-m.reloads:
			if !ok {
				m.reloads = nil
				continue
			}
			if err := m.session.ApplyConfig(cfg); err != nil {
				m.logger.Warn("reloaded config rejected", "err", err)
				m.setStatus("config rejected, see log")
			}
		case err, ok := <-m.reloadErrors:
			if !ok {
				m.reloadErrors = nil
				continue
			}
			m.logger.Warn("config reload failed", "err", err)
			m.setStatus("config reload failed, see log")
		default:
			return
		}
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusTTL = statusFrames
}

func (m Model) statusLine() string {
	if m.statusTTL > 0 {
		return m.status
	}
	if m.session.PendingConfig() {
		return "config reloaded, applies on restart"
	}
	return ""
}

// saveScreenshot writes the current frame as plain text.
func (m *Model) saveScreenshot() {
	m.draw()

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".skyhop", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}

	name := fmt.Sprintf("skyhop_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}
	m.setStatus("saved " + path)
}

func (m Model) draw() {
	DrawScene(m.screen, m.session.Config().View, Scene{
		World:   m.session.World(),
		Camera:  m.session.Camera().Position(),
		Profile: m.session.Profile(),
		HUD:     m.hud,
		Status:  m.statusLine(),
	})
}

// View renders the playfield and the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.draw()
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Session returns the wrapped game session.
func (m Model) Session() *game.Session {
	return m.session
}

// Run starts the Bubble Tea program with the given model.
func Run(m Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}

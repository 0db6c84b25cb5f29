// Package game runs one skyhop session: the run state machine, score
// keeping, and the fixed per-frame order that ties physics, locomotion,
// level generation and the camera together.
package game

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyhop/internal/camera"
	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/levelgen"
	"github.com/vovakirdan/skyhop/internal/locomotion"
	"github.com/vovakirdan/skyhop/internal/physics"
	"github.com/vovakirdan/skyhop/internal/registry"
)

// Options configures a new session. Only Config is required.
type Options struct {
	Config    config.Config
	Registry  *registry.Registry // built from Config.Characters when nil
	Settings  Settings
	Presenter Presenter
	Recorder  RunRecorder
	Seed      int64
	Logger    *log.Logger
}

// Session owns every component of a game and steps them in a fixed order.
type Session struct {
	cfg     config.Config
	pending *config.Config

	world   *physics.World
	ctrl    *locomotion.Controller
	gen     *levelgen.Generator
	coins   *levelgen.CoinSpawner
	cam     *camera.Follow
	chars   *registry.Registry
	machine *StateMachine

	settings Settings
	logger   *log.Logger
	frame    uint64
}

// NewSession builds the world, spawns the persisted character and lays out
// the initial path. A persisted character index outside the roster is an error.
func NewSession(opts Options) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "err", err)
		return nil, fmt.Errorf("game: %w", err)
	}

	presenter, settings, recorder := orNop(opts.Presenter, opts.Settings, opts.Recorder, logger)

	chars := opts.Registry
	if chars == nil {
		chars = registry.New(cfg.Characters)
	}

	index := settings.GetInt(KeySelectedCharacter, 0)
	profile, err := chars.Get(index)
	if err != nil {
		logger.Error("persisted character is not in the roster", "index", index, "err", err)
		return nil, fmt.Errorf("game: selected character: %w", err)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	world := physics.NewWorld(cfg.Physics, logger.WithPrefix("physics"))
	gen := levelgen.NewGenerator(cfg.Path, world, rng)

	s := &Session{
		cfg:      cfg,
		world:    world,
		ctrl:     locomotion.NewController(cfg.Player.BounceNormalThreshold, nil),
		gen:      gen,
		coins:    levelgen.NewCoinSpawner(cfg.Coins, world, gen, rng),
		cam:      camera.NewFollow(cfg.Camera),
		chars:    chars,
		settings: settings,
		logger:   logger,
	}

	s.machine = &StateMachine{
		state:          Idle,
		characterIndex: index,
		start:          cfg.Player,
		world:          s.world,
		ctrl:           s.ctrl,
		gen:            s.gen,
		coins:          s.coins,
		cam:            s.cam,
		chars:          s.chars,
		presenter:      presenter,
		settings:       settings,
		recorder:       recorder,
		logger:         logger,
		tally: ScoreTally{
			HighScore:  settings.GetInt(KeyHighScore, 0),
			TotalCoins: settings.GetInt(KeyTotalCoins, 0),
		},
	}
	s.ctrl.SetSink(s.machine)
	s.machine.layout(profile)

	presenter.UpdateHighScoreAndTotalCoins(s.machine.tally.HighScore, s.machine.tally.TotalCoins)
	presenter.UpdateScore(0)
	presenter.UpdateCoins(0)
	presenter.ShowStart()

	logger.Debug("session ready", "character", profile.Name, "seed", opts.Seed)
	return s, nil
}

// Step runs one frame: start detection, locomotion, physics, contact
// reactions, fail timer, camera, generation, culling and the score tick.
func (s *Session) Step(in core.InputFrame, dt float64) {
	s.frame++

	if s.machine.state == Idle && in.StartTriggered() {
		s.machine.StartRun()
	}

	s.ctrl.Update(in)
	s.world.Step(dt)
	s.ctrl.ClampPosition()

	for _, ev := range s.world.DrainContacts() {
		s.react(ev)
	}
	s.ctrl.UpdateFailTimer(dt)

	s.cam.Update(dt)

	if player := s.machine.player; player != nil {
		s.gen.Update(s.referenceY())
		s.coins.Update(player.Position().Y, s.machine.state == Running)
	}

	if s.cfg.Camera.CullDistance > 0 {
		s.world.CullBelow(s.cam.Position().Y - s.cfg.Camera.CullDistance)
	}

	s.machine.Tick(dt)
}

func (s *Session) react(ev physics.ContactEvent) {
	player := s.machine.player
	if player == nil || ev.Player != player.ID() {
		return // stale event from a replaced body
	}

	switch ev.Kind {
	case physics.KindPlatform:
		if ev.Phase == physics.ContactBegin {
			s.ctrl.OnPlatformContact(ev.Normal)
		} else {
			s.ctrl.OnPlatformSeparate()
		}
	case physics.KindObstacle:
		s.ctrl.OnObstacleContact()
	case physics.KindCoin:
		s.collectCoin(ev.Entity)
	case physics.KindPlayer:
		// players never touch each other
	}
}

func (s *Session) collectCoin(id physics.EntityID) {
	if s.machine == nil {
		s.logger.Error("coin pickup without a state machine", "coin", id)
		return
	}
	if s.machine.state != Running {
		return
	}
	s.world.Remove(id)
	s.machine.AddCoin()
}

func (s *Session) referenceY() float64 {
	if s.cfg.Path.Reference == config.ReferencePlayer && s.machine.player != nil {
		return s.machine.player.Position().Y
	}
	return s.cam.Position().Y
}

// Restart starts over after a game over. A config queued with ApplyConfig
// takes effect here.
func (s *Session) Restart() {
	if s.machine.state != GameOver {
		s.logger.Debug("restart ignored", "state", s.machine.state)
		return
	}
	if s.pending != nil {
		s.applyPending()
	}
	s.machine.Restart()
}

// SelectCharacter swaps the live player and persists the choice. Invalid
// indices change nothing.
func (s *Session) SelectCharacter(index int) error {
	if err := s.machine.SwitchCharacter(index); err != nil {
		return err
	}
	s.settings.SetInt(KeySelectedCharacter, index)
	s.settings.Flush()
	return nil
}

// NextCharacter selects the character after the current one.
func (s *Session) NextCharacter() error {
	return s.SelectCharacter(s.chars.Next(s.machine.characterIndex))
}

// ApplyConfig queues cfg for the next restart. Invalid configs are rejected.
func (s *Session) ApplyConfig(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("game: apply config: %w", err)
	}
	s.pending = &cfg
	s.logger.Info("config reload queued for next restart")
	return nil
}

func (s *Session) applyPending() {
	cfg := *s.pending
	s.pending = nil

	s.cfg = cfg
	s.world.SetGravity(cfg.Physics.Gravity)
	s.gen.SetConfig(cfg.Path)
	s.coins.SetConfig(cfg.Coins)
	s.chars.Replace(cfg.Characters)
	s.ctrl.BounceNormalThreshold = cfg.Player.BounceNormalThreshold
	s.cam.Offset = core.V(cfg.Camera.OffsetX, cfg.Camera.OffsetY)
	s.cam.SmoothSpeed = cfg.Camera.SmoothSpeed
	s.machine.start = cfg.Player
	s.logger.Info("config applied")
}

// State returns the run state.
func (s *Session) State() RunState { return s.machine.state }

// Tally returns the score state.
func (s *Session) Tally() ScoreTally { return s.machine.tally }

// Elapsed returns the seconds survived in the current run.
func (s *Session) Elapsed() float64 { return s.machine.elapsed }

// Frame returns how many frames were stepped.
func (s *Session) Frame() uint64 { return s.frame }

// Machine exposes the state machine.
func (s *Session) Machine() *StateMachine { return s.machine }

// World exposes the physics world for rendering.
func (s *Session) World() *physics.World { return s.world }

// Camera exposes the follow camera for rendering.
func (s *Session) Camera() *camera.Follow { return s.cam }

// Controller exposes the locomotion controller.
func (s *Session) Controller() *locomotion.Controller { return s.ctrl }

// Characters exposes the roster.
func (s *Session) Characters() *registry.Registry { return s.chars }

// Config returns the active config.
func (s *Session) Config() config.Config { return s.cfg }

// Profile returns the live character profile.
func (s *Session) Profile() config.CharacterProfile { return s.machine.profile }

// CharacterIndex returns the index of the live character.
func (s *Session) CharacterIndex() int { return s.machine.characterIndex }

// PendingConfig reports whether a reloaded config waits for the next restart.
func (s *Session) PendingConfig() bool { return s.pending != nil }

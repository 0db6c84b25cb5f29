package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/game"
	"github.com/vovakirdan/skyhop/internal/platform/tui"
	"github.com/vovakirdan/skyhop/internal/storage"
)

var flagWatch bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in this terminal.

Controls:
  Left/Right, A/D  - Steer (also starts the run)
  Mouse drag       - Steer
  C                - Next character (outside a run)
  R                - Restart (after game over)
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Fewer spikes, more time between platforms
  normal - The config as written
  hard   - More spikes, fewer coins

With --watch the config file is reloaded when it changes; the new values
apply from the next restart.

Examples:
  skyhop play
  skyhop play --difficulty easy
  skyhop play --config ./skyhop.yaml --watch
  skyhop play --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the config file when it changes")
}

func runPlay(_ *cobra.Command, _ []string) {
	// The alt screen owns the terminal, so logs are dropped unless --log-file is set
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fatal("%v", err)
	}
	defer closeLog()

	cfg, preset, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	var settings game.Settings
	var recorder game.RunRecorder
	_, prefs, closeStore, err := openPrefs(logger)
	if err != nil {
		// Continue without storage - the game still works
		logger.Warn("could not open database", "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		mem := storage.NewMemoryPrefs()
		settings, recorder = mem, mem
	} else {
		settings, recorder = prefs, prefs
	}

	mopts := tui.ModelOptions{Runtime: rc, Logger: logger}
	if flagWatch {
		stop := watchConfig(&mopts, preset, logger)
		defer stop()
	}

	model, err := tui.NewGame(game.Options{
		Config:   cfg,
		Settings: settings,
		Recorder: recorder,
		Seed:     rc.ResolveSeed(),
		Logger:   logger,
	}, mopts)
	if err != nil {
		closeStore()
		fatal("%v\nRun 'skyhop characters select 0' if the roster changed.", err)
	}

	runErr := tui.Run(model)
	closeStore()
	if runErr != nil {
		fatal("running game: %v", runErr)
	}
}

// watchConfig starts a config watcher and wires it into opts. The returned
// func stops it.
func watchConfig(opts *tui.ModelOptions, preset config.DifficultyPreset, logger *log.Logger) func() {
	path := flagConfig
	if path == "" {
		path = config.UserConfigPath()
	}
	if path == "" {
		logger.Warn("no config file to watch")
		return func() {}
	}

	w, err := config.NewWatcher(path)
	if err != nil {
		logger.Warn("config watch disabled", "path", path, "err", err)
		return func() {}
	}
	logger.Info("watching config", "path", w.Path())

	// Reloaded files get the same difficulty preset as the initial load
	reloads := make(chan config.Config, 1)
	go func() {
		defer close(reloads)
		for cfg := range w.Updates {
			config.ApplyPreset(&cfg, preset)
			reloads <- cfg
		}
	}()

	opts.Reloads = reloads
	opts.ReloadErrors = w.Errors
	return func() {
		if err := w.Close(); err != nil {
			logger.Warn("close config watcher", "err", err)
		}
	}
}

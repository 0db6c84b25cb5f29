// skyhop is an endless vertical platform jumper for the terminal.
//
// Usage:
//
//	skyhop play                 - Play in this terminal
//	skyhop serve                - Start SSH server for remote play
//	skyhop scores               - Show the best runs and lifetime totals
//	skyhop characters           - List characters, or select one
//	skyhop sim                  - Run a headless session with a steering bot
//	skyhop config               - Print the default configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible levels
//	--db <path>           - Set database path (default: ~/.skyhop/skyhop.db)
//	--config <path>       - Use a custom config YAML
//	--difficulty <name>   - easy, normal or hard
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skyhop",
	Short: "Skyhop - bounce up an endless tower of platforms",
	Long: `Skyhop is an endless vertical jumper. Your character bounces on every
platform it lands on; steer left and right to keep landing, grab coins
and dodge spikes. Stay airborne too long and the run is over.

Available commands:
  play        - Play in this terminal (default)
  serve       - Start SSH server for remote play
  scores      - View the best runs
  characters  - List or select characters
  sim         - Headless run with a steering bot
  config      - Print the default configuration

Examples:
  skyhop
  skyhop play --difficulty hard
  skyhop play --config ./skyhop.yaml --watch
  skyhop characters select dart
  skyhop serve --ssh :2222`,
	Run: runPlay,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.skyhop/skyhop.db", "Path to the database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(charactersCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the process logger. Logs go to --log-file when set,
// otherwise to fallback. The returned func closes the log file.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	w, closeFn := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closeFn = f, func() { _ = f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "skyhop",
		Level:           level,
	})
	return logger, closeFn, nil
}

// loadConfig loads the game config and applies the difficulty preset.
func loadConfig() (config.Config, config.DifficultyPreset, error) {
	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return config.Config{}, "", err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, "", err
	}
	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return cfg, "", err
	}
	return cfg, preset, nil
}

// openPrefs opens the database. The returned close func is never nil.
func openPrefs(logger *log.Logger) (*storage.Store, *storage.Prefs, func(), error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, nil, func() {}, err
	}
	closeFn := func() {
		if err := store.Close(); err != nil {
			logger.Warn("close database", "err", err)
		}
	}
	return store, storage.NewPrefs(store, logger.WithPrefix("storage")), closeFn, nil
}

// fatal prints an error the way every command reports failures and exits.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/game"
	"github.com/vovakirdan/skyhop/internal/physics"
	"github.com/vovakirdan/skyhop/internal/storage"
)

var (
	flagSimFrames  int
	flagSimRuns    int
	flagSimPersist bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless sessions with a steering bot",
	Long: `Run the game without a terminal UI. A simple bot starts each run and
steers for the highest reachable platform. Useful for checking a config or a
seed without playing.

Settings and runs are kept in memory unless --persist is given.

Examples:
  skyhop sim
  skyhop sim --seed 42 --frames 7200
  skyhop sim --runs 5 --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimFrames, "frames", 3600, "Maximum frames per run")
	simCmd.Flags().IntVar(&flagSimRuns, "runs", 1, "Number of runs")
	simCmd.Flags().BoolVar(&flagSimPersist, "persist", false, "Record runs and settings in the database")
}

func runSim(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		fatal("%v", err)
	}
	defer closeLog()

	cfg, _, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}

	mem := storage.NewMemoryPrefs()
	var settings game.Settings = mem
	var recorder game.RunRecorder = mem
	if flagSimPersist {
		_, prefs, closeStore, err := openPrefs(logger)
		if err != nil {
			fatal("opening database: %v", err)
		}
		defer closeStore()
		settings, recorder = prefs, prefs
	}

	rc := core.RuntimeConfig{TickRate: flagFPS, Seed: flagSeed}
	seed := rc.ResolveSeed()
	session, err := game.NewSession(game.Options{
		Config:   cfg,
		Settings: settings,
		Recorder: recorder,
		Seed:     seed,
		Logger:   logger.WithPrefix("sim"),
	})
	if err != nil {
		fatal("%v", err)
	}

	bot := game.NewAutopilot()
	dt := rc.TickDuration()
	started := time.Now()

	fmt.Printf("Simulating %d run(s), seed %d, %d fps\n\n", flagSimRuns, seed, rc.TickRate)
	fmt.Printf("  %-3s  %-7s  %-7s  %-5s  %-8s  %s\n", "Run", "Frames", "Score", "Coins", "Time", "Outcome")
	fmt.Printf("  %-3s  %-7s  %-7s  %-5s  %-8s  %s\n", "---", "------", "-----", "-----", "----", "-------")

	for run := 1; run <= flagSimRuns; run++ {
		if run > 1 {
			session.Restart()
		}

		frames := 0
		for frames < flagSimFrames && session.State() != game.GameOver {
			session.Step(bot.Input(session), dt)
			frames++
		}

		outcome := "alive"
		if session.State() == game.GameOver {
			outcome = "game over"
		} else {
			// Close the run so it is scored and recorded like a real one
			session.Machine().EndRun()
		}

		tally := session.Tally()
		fmt.Printf("  %-3d  %-7d  %-7d  %-5d  %-8s  %s\n",
			run, frames, tally.Score, tally.Coins,
			time.Duration(session.Elapsed()*float64(time.Second)).Round(100*time.Millisecond), outcome)
	}

	tally := session.Tally()
	fmt.Println()
	fmt.Printf("Best: %d   Total coins: %d   Entities: %d platforms, %d coins   Wall time: %s\n",
		tally.HighScore, tally.TotalCoins,
		session.World().Count(physics.KindPlatform), session.World().Count(physics.KindCoin),
		time.Since(started).Round(time.Millisecond))
}

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyhop/internal/game"
	"github.com/vovakirdan/skyhop/internal/registry"
)

var charactersCmd = &cobra.Command{
	Use:     "characters",
	Aliases: []string{"chars"},
	Short:   "List characters",
	Long: `Shows the character roster from the config. The selected character is
marked with '>'.

Examples:
  skyhop characters
  skyhop characters select dart
  skyhop characters select 1`,
	Args: cobra.NoArgs,
	Run:  runCharacters,
}

var selectCharacterCmd = &cobra.Command{
	Use:   "select <name|index>",
	Short: "Select the character used by the next game",
	Args:  cobra.ExactArgs(1),
	Run:   runSelectCharacter,
}

func init() {
	charactersCmd.AddCommand(selectCharacterCmd)
}

func runCharacters(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		fatal("%v", err)
	}
	defer closeLog()

	cfg, _, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}
	chars := registry.New(cfg.Characters)

	selected := 0
	if _, prefs, closeStore, err := openPrefs(logger); err == nil {
		selected = prefs.GetInt(game.KeySelectedCharacter, 0)
		closeStore()
	}

	fmt.Println("Characters:")
	fmt.Println()
	fmt.Printf("    %-3s  %-12s  %-5s  %-6s  %-6s  %s\n", "#", "Name", "Glyph", "Speed", "Bounce", "Airtime")
	fmt.Printf("    %-3s  %-12s  %-5s  %-6s  %-6s  %s\n", "-", "----", "-----", "-----", "------", "-------")
	for _, info := range chars.List() {
		p, _ := chars.Get(info.Index)
		marker := " "
		if info.Index == selected {
			marker = ">"
		}
		fmt.Printf("  %s %-3d  %-12s  %-5c  %-6.1f  %-6.1f  %.1fs\n",
			marker, info.Index, info.Name, info.Glyph, p.MoveSpeed, p.BounceForce, p.MaxTimeWithoutPlatform)
	}

	if !chars.Exists(selected) {
		fmt.Println()
		fmt.Printf("Selected index %d is not in the roster; run 'skyhop characters select 0'.\n", selected)
	}
	fmt.Println()
	fmt.Println("Run 'skyhop characters select <name|index>' to change.")
}

func runSelectCharacter(_ *cobra.Command, args []string) {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		fatal("%v", err)
	}
	defer closeLog()

	cfg, _, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}
	chars := registry.New(cfg.Characters)

	index, err := resolveCharacter(chars, args[0])
	if err != nil {
		fatal("%v", err)
	}

	_, prefs, closeStore, err := openPrefs(logger)
	if err != nil {
		fatal("opening database: %v", err)
	}
	prefs.SetInt(game.KeySelectedCharacter, index)
	prefs.Flush()
	closeStore()

	p, _ := chars.Get(index)
	fmt.Printf("Selected %s.\n", p.Name)
}

// resolveCharacter accepts a roster index or a case-insensitive name.
func resolveCharacter(chars *registry.Registry, arg string) (int, error) {
	if i, ok := chars.Lookup(arg); ok {
		return i, nil
	}
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("unknown character %q (run 'skyhop characters' to list them)", arg)
	}
	if _, err := chars.Get(i); err != nil {
		return 0, err
	}
	return i, nil
}

// swg is the Snake-Water-Gun game: a best-of-N match against a computer
// opponent that can learn the player's habits.
//
// Usage:
//
//	swg play              - Play in the terminal
//	swg play --tui        - Play in a full-screen terminal UI
//	swg stats [player]    - Show a player's record or the leaderboard
//	swg rulesets          - List available rulesets
//	swg sim               - Pit the engine against scripted players
//	swg serve             - Serve the game over SSH and stats over HTTP
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.swg/config.yaml, ./configs/swg.yaml)
//	--log-level <lvl>   - debug, info, warn, error
//	--seed <value>      - Engine RNG seed for reproducible play
//	--backend <name>    - Stats backend: sqlite, json, postgres, memory
//	--db <path>         - SQLite database path
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register built-in rulesets
	_ "github.com/vovakirdan/swg/internal/registry/builtin"
)

var (
	// Global flags
	flagConfig   string
	flagLogLevel string
	flagSeed     int64
	flagBackend  string
	flagDBPath   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "swg",
	Short: "Snake-Water-Gun - beat a computer that learns your habits",
	Long: `Snake-Water-Gun is a terminal hand game played against a computer
opponent. Snake drinks water, water drowns the gun, the gun shoots the snake.

The computer plays either at random or adaptively, countering the move you
have played most often. Your wins, losses and draws are kept between games.

Available commands:
  play      - Play a match
  stats     - Show player records
  rulesets  - Show available rulesets
  sim       - Simulate the engine against scripted players
  serve     - Serve over SSH and HTTP

Examples:
  swg play
  swg play --name alice --mode smart --rounds 7
  swg play --tui
  swg stats
  swg serve --ssh :2222 --http :8080`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Engine RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Stats backend: sqlite, json, postgres, memory")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the SQLite stats database")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(rulesetsCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
}

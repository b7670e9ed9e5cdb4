package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/swg/internal/httpapi"
	"github.com/vovakirdan/swg/internal/match"
	"github.com/vovakirdan/swg/internal/platform/tui"
	"github.com/vovakirdan/swg/internal/stats"
)

var (
	flagStatsLimit int
	flagStatsTUI   bool
)

var statsCmd = &cobra.Command{
	Use:   "stats [player]",
	Short: "Show a player's record or the leaderboard",
	Long: `Without arguments, list all players ranked by wins.
With a player name, show that player's record and recent matches.

Examples:
  swg stats
  swg stats alice
  swg stats --tui
  swg stats --backend json`,
	Args: cobra.MaximumNArgs(1),
	Run:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagStatsLimit, "limit", 10, "Number of rows to show")
	statsCmd.Flags().BoolVar(&flagStatsTUI, "tui", false, "Browse the leaderboard in the terminal UI")
}

func runStats(cmd *cobra.Command, args []string) {
	store := openStore(cmd.Context())
	defer store.Close()

	if len(args) == 1 {
		showPlayer(cmd, store, match.NormalizeName(args[0]))
		return
	}

	lister, ok := store.(stats.Lister)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: backend %q cannot list players\n", cfg.Storage.Backend)
		os.Exit(1)
	}

	if flagStatsTUI {
		width, height := terminalSize()
		if err := tui.RunLeaderboard(lister, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	players, err := lister.Players(cmd.Context())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving players: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Leaderboard")
	fmt.Println()

	if len(players) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Run 'swg play' to get on the board!")
		return
	}

	fmt.Printf("  %-4s  %-16s  %5s  %6s  %5s  %7s\n", "Rank", "Player", "Wins", "Losses", "Draws", "Win %")
	fmt.Printf("  %-4s  %-16s  %5s  %6s  %5s  %7s\n", "----", "------", "----", "------", "-----", "-----")
	for i, p := range players {
		if flagStatsLimit > 0 && i >= flagStatsLimit {
			break
		}
		fmt.Printf("  %-4d  %-16s  %5d  %6d  %5d  %6.2f%%\n",
			i+1, p.Player, p.Stats.Wins, p.Stats.Losses, p.Stats.Draws, p.Stats.WinRate())
	}
}

func showPlayer(cmd *cobra.Command, store stats.Store, name string) {
	st, found, err := store.Load(cmd.Context(), name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", name, err)
		os.Exit(1)
	}
	if !found {
		fmt.Printf("No record for %s yet.\n", name)
		return
	}

	fmt.Println(name)
	fmt.Println(st.Summary())

	h, ok := store.(httpapi.History)
	if !ok {
		return
	}
	sessions, err := h.RecentSessions(cmd.Context(), name, flagStatsLimit)
	if err != nil {
		logger.Warn("could not load recent matches", "player", name, "err", err)
		return
	}
	if len(sessions) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Recent matches:")
	fmt.Printf("  %-16s  %-20s  %-8s  %-7s  %s\n", "Date", "Ruleset", "Mode", "Score", "Result")
	for _, s := range sessions {
		fmt.Printf("  %-16s  %-20s  %-8s  %3d-%-3d  %s\n",
			s.CreatedAt.Format("2006-01-02 15:04"), s.Ruleset, s.Mode, s.HumanWins, s.EngineWins, s.Outcome)
	}
}

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/swg/internal/sim"
)

var (
	flagSimRounds   int
	flagSimSessions int
	flagSimWorkers  int
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Simulate the engine against scripted players",
	Long: `Play many matches between each engine mode and a set of scripted
players, and report how often each side wins.

Scripted players:
  constant  - always the first choice
  biased    - the first choice 70% of the time, random otherwise
  cycle     - every choice in order
  uniform   - random

Examples:
  swg sim
  swg sim --rounds 50 --sessions 200 --seed 42`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimRounds, "rounds", 100, "Rounds per match")
	simCmd.Flags().IntVar(&flagSimSessions, "sessions", 20, "Matches per pairing")
	simCmd.Flags().IntVar(&flagSimWorkers, "workers", 0, "Parallel workers (0 = GOMAXPROCS)")
}

func runSim(cmd *cobra.Command, _ []string) {
	rs, err := cfg.BuildRuleset()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	t := &sim.Tournament{
		Rules:    rs,
		Rounds:   flagSimRounds,
		Sessions: flagSimSessions,
		Workers:  flagSimWorkers,
		Seed:     cfg.Engine.Seed,
		Window:   cfg.Engine.Window,
	}

	logger.Debug("simulation started", "ruleset", rs.Name(), "rounds", flagSimRounds, "sessions", flagSimSessions)
	results, err := t.Run(ctx)
	if err != nil {
		logger.Warn("simulation interrupted", "err", err)
	}

	fmt.Printf("Simulation - %s (%d rounds x %d matches)\n", rs.Name(), flagSimRounds, flagSimSessions)
	fmt.Println()
	fmt.Printf("  %-16s  %-9s  %8s  %8s  %8s\n", "Player", "Engine", "Player %", "Engine %", "Draw %")
	fmt.Printf("  %-16s  %-9s  %8s  %8s  %8s\n", "------", "------", "--------", "--------", "------")
	for _, m := range results {
		draw := 0.0
		if m.Stats.Total > 0 {
			draw = float64(m.Stats.Draws) / float64(m.Stats.Total) * 100
		}
		fmt.Printf("  %-16s  %-9s  %7.2f%%  %7.2f%%  %5.2f%%\n",
			m.Strategy, m.Mode, m.Stats.WinRate(), m.EngineWinRate(), draw)
	}
}

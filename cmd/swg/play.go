package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/swg/internal/engine"
	"github.com/vovakirdan/swg/internal/match"
	"github.com/vovakirdan/swg/internal/platform/console"
	"github.com/vovakirdan/swg/internal/platform/tui"
	"github.com/vovakirdan/swg/internal/stats"
)

var (
	flagName    string
	flagMode    string
	flagRounds  int
	flagRuleset string
	flagMenu    bool
	flagTUI     bool
	flagOnce    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a match",
	Long: `Play a best-of-N match against the computer.

Type your move each round (snake, water or gun). Anything else is rejected
and the round is asked again. Your record is saved when the match ends.

Modes:
  1, random, uniform  - the computer picks at random
  2, smart, adaptive  - the computer counters your most frequent move

Examples:
  swg play
  swg play --name alice --mode smart --rounds 7
  swg play --menu                       # pick mode and rounds from a menu
  swg play --tui                        # full-screen UI
  swg play --ruleset rock-paper-scissors`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagName, "name", "", "Player name (asked when empty)")
	playCmd.Flags().StringVar(&flagMode, "mode", "", "Engine mode: random or smart (asked when empty)")
	playCmd.Flags().IntVar(&flagRounds, "rounds", 0, "Rounds per match (asked when 0)")
	playCmd.Flags().StringVar(&flagRuleset, "ruleset", "", "Ruleset ID (see 'swg rulesets')")
	playCmd.Flags().BoolVar(&flagMenu, "menu", false, "Choose mode and rounds from a menu")
	playCmd.Flags().BoolVar(&flagTUI, "tui", false, "Play in the full-screen terminal UI")
	playCmd.Flags().BoolVar(&flagOnce, "once", false, "Play a single match without asking to play again")
}

func runPlay(cmd *cobra.Command, _ []string) {
	if flagRuleset != "" {
		cfg.Ruleset = flagRuleset
		cfg.Rules = nil
	}
	rs, err := cfg.BuildRuleset()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'swg rulesets' to see available rulesets.")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := openStore(ctx)
	defer store.Close()

	ctrl := match.NewController(store, logger)
	in := console.NewLineReader(os.Stdin, os.Stdout)

	if flagTUI {
		name := flagName
		if name == "" {
			if name, err = in.ReadLine(ctx, match.NamePrompt); err != nil {
				return
			}
		}
		width, height := terminalSize()
		deps := tui.Deps{
			Rules:         rs,
			Store:         store,
			Controller:    ctrl,
			EngineOptions: cfg.EngineOptions(),
			DefaultRounds: cfg.Rounds,
		}
		if err := tui.RunSession(deps, name, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	game := &match.Game{
		Rules:         rs,
		Controller:    ctrl,
		EngineOptions: cfg.EngineOptions(),
		DefaultRounds: cfg.Rounds,
		Player:        flagName,
		Rounds:        flagRounds,
		Once:          flagOnce,
	}

	if flagMode != "" {
		mode, err := engine.ParseMode(flagMode)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		game.Mode = &mode
	}

	if flagMenu {
		width, height := terminalSize()
		sel, err := tui.RunModeSelector(rs.Name(), width, height, cfg.Rounds)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if sel == nil {
			return
		}
		game.Mode = &sel.Mode
		game.Rounds = sel.Rounds
		game.Once = true
	}

	printer := console.NewPrinter(os.Stdout, console.Options{
		Title: rs.Name(),
		Color: cfg.Output.Color && isTerminal(),
		Delay: cfg.TypewriterDelay(),
	})

	err = game.Play(ctx, in, printer)
	switch {
	case err == nil:
	case errors.Is(err, stats.ErrPersistence):
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: your stats were not saved: %v\n", err)
		os.Exit(1)
	case errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
		// Played rounds were already saved.
		fmt.Fprintln(os.Stdout)
	default:
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

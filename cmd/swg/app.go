package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/swg/internal/config"
	"github.com/vovakirdan/swg/internal/storage"
)

var (
	cfg    config.Config
	logger *log.Logger
)

// setup loads .env, the YAML config and SWG_* overrides, applies global
// flags and builds the logger. It runs before every command.
func setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if err := loaded.ApplyEnv(os.Getenv); err != nil {
		return err
	}

	if flagLogLevel != "" {
		loaded.Log.Level = flagLogLevel
	}
	if flagSeed != 0 {
		loaded.Engine.Seed = flagSeed
	}
	if flagBackend != "" {
		loaded.Storage.Backend = flagBackend
	}
	if flagDBPath != "" {
		loaded.Storage.Path = flagDBPath
	}

	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "swg",
	})
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("config: log level: %w", err)
	}
	logger.SetLevel(level)
	logger.Debug("config loaded", "backend", cfg.Storage.Backend, "ruleset", cfg.Ruleset, "mode", cfg.Mode)
	return nil
}

// openStore opens the configured backend. When it cannot be opened the
// game continues with an in-memory store and a warning.
func openStore(ctx context.Context) storage.Backend {
	store, err := storage.OpenBackend(ctx, cfg.StorageOptions())
	if err != nil {
		logger.Warn("could not open stats storage, stats will not be kept", "backend", cfg.Storage.Backend, "err", err)
		return storage.NewMemoryStore()
	}
	return store
}

// terminalSize returns the stdout size, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/swg/internal/httpapi"
	"github.com/vovakirdan/swg/internal/match"
	"github.com/vovakirdan/swg/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the game over SSH and stats over HTTP",
	Long: `Start an SSH server where each connection plays in the terminal UI,
and optionally an HTTP server with read-only JSON stats.

The SSH user name is the player name. All players share one stats store.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.swg/host_key

HTTP endpoints:
  GET /health
  GET /api/rulesets
  GET /api/players
  GET /api/players/{name}

Examples:
  swg serve                              # SSH on :23234
  swg serve --ssh :2222 --http :8080     # SSH and HTTP
  swg serve --ssh "" --http :8080        # HTTP only

Users can connect with:
  ssh alice@localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (empty disables SSH)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP stats API address (empty disables HTTP)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	sshAddr := cfg.Server.SSHAddr
	if cmd.Flags().Changed("ssh") {
		sshAddr = flagSSHAddr
	}
	httpAddr := cfg.Server.HTTPAddr
	if cmd.Flags().Changed("http") {
		httpAddr = flagHTTPAddr
	}
	hostKey := cfg.Server.HostKey
	if flagHostKey != "" {
		hostKey = flagHostKey
	}
	idle := cfg.IdleTimeout()
	if flagIdleTimeout > 0 {
		idle = time.Duration(flagIdleTimeout) * time.Minute
	}

	if sshAddr == "" && httpAddr == "" {
		fmt.Fprintln(os.Stderr, "Error: nothing to serve, set --ssh or --http")
		os.Exit(1)
	}

	rs, err := cfg.BuildRuleset()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := openStore(ctx)
	defer store.Close()

	g, ctx := errgroup.WithContext(ctx)

	if sshAddr != "" {
		deps := tui.Deps{
			Rules:         rs,
			Store:         store,
			Controller:    match.NewController(store, logger.WithPrefix("swg-match")),
			EngineOptions: cfg.EngineOptions(),
			DefaultRounds: cfg.Rounds,
		}
		sshCfg := tui.DefaultSSHServerConfig()
		sshCfg.Address = sshAddr
		sshCfg.HostKeyPath = hostKey
		if idle > 0 {
			sshCfg.IdleTimeout = idle
		}
		server, err := tui.NewSSHServer(sshCfg, deps, logger.WithPrefix("swg-ssh"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Starting SSH server on %s\n", server.Addr())
		g.Go(func() error { return server.ListenAndServe(ctx) })
	}

	if httpAddr != "" {
		api := httpapi.New(store, logger.WithPrefix("swg-http"))
		fmt.Printf("Starting HTTP server on %s\n", httpAddr)
		g.Go(func() error { return api.ListenAndServe(ctx, httpAddr) })
	}

	fmt.Println("Press Ctrl+C to stop")

	if err := g.Wait(); err != nil && err != context.Canceled {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

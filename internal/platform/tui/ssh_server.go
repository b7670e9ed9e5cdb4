// Package tui provides the Bubble Tea screens for playing in a terminal,
// including remote play over SSH via Wish.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/swg/internal/match"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the host key file, generated on first start.
	// Empty means ~/.swg/host_key.
	HostKeyPath string

	// IdleTimeout closes connections without input for this long.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns the address and timeout used by `swg serve`.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer serves one SessionModel per SSH connection. The SSH user name
// is the player name and all sessions share deps.Store. A player can be
// connected only once at a time so concurrent matches cannot overwrite
// each other's stats.
type SSHServer struct {
	addr   string
	deps   Deps
	server *ssh.Server
	logger *log.Logger

	mu     sync.Mutex
	online map[string]time.Time // player -> connected since
}

// NewSSHServer creates the server. A nil logger writes to stderr.
func NewSSHServer(cfg SSHServerConfig, deps Deps, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "swg-ssh",
		})
	}

	keyPath, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	s := &SSHServer{
		addr:   cfg.Address,
		deps:   deps,
		logger: logger,
		online: make(map[string]time.Time),
	}

	// Middlewares run last to first: log, require a PTY, claim the player, play.
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.newProgram),
			s.onePerPlayer,
			activeterm.Middleware(),
			s.logSession,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	s.server = server
	return s, nil
}

func hostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".swg", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

// newProgram builds the Bubble Tea model for a connection.
func (s *SSHServer) newProgram(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	model := NewSessionModel(s.deps, sess.User(), pty.Window.Width, pty.Window.Height)
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// onePerPlayer rejects a connection whose player already has a live session.
func (s *SSHServer) onePerPlayer(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		player := match.NormalizeName(sess.User())
		if !s.claim(player) {
			s.logger.Warn("player already connected", "player", player, "remote", sess.RemoteAddr().String())
			wish.Fatalln(sess, player+" is already playing from another connection.")
			return
		}
		defer s.release(player)
		next(sess)
	}
}

func (s *SSHServer) logSession(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started", "user", sess.User(), "remote", sess.RemoteAddr().String())
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// claim marks player as online. It reports false if they already are.
func (s *SSHServer) claim(player string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.online[player]; ok {
		return false
	}
	s.online[player] = time.Now()
	return true
}

func (s *SSHServer) release(player string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.online, player)
}

// Online returns the number of connected players.
func (s *SSHServer) Online() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.online)
}

// ListenAndServe serves until ctx is cancelled, then shuts down.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			s.logger.Error("server error", "err", err)
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down SSH server", "online", s.Online())
	return s.Shutdown()
}

// Shutdown stops accepting connections and waits up to 10s for open ones.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.addr
}

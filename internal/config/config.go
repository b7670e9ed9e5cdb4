// Package config provides YAML-based configuration loading for the game,
// with environment overrides for deployment.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/swg/internal/engine"
	"github.com/vovakirdan/swg/internal/registry"
	"github.com/vovakirdan/swg/internal/rules"
	"github.com/vovakirdan/swg/internal/storage"
)

// Config contains all game, storage and server settings.
type Config struct {
	Rounds  int           `yaml:"rounds"`
	Mode    string        `yaml:"mode"`    // "uniform" or "adaptive"
	Ruleset string        `yaml:"ruleset"` // registry ID, ignored when Rules is set
	Rules   *RulesConfig  `yaml:"rules"`
	Engine  EngineConfig  `yaml:"engine"`
	Output  OutputConfig  `yaml:"output"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Server  ServerConfig  `yaml:"server"`
}

// RulesConfig defines a custom ruleset inline.
// Choices order is the tie-break order of the adaptive engine.
type RulesConfig struct {
	Name    string            `yaml:"name"`
	Choices []string          `yaml:"choices"`
	Beats   map[string]string `yaml:"beats"`   // choice -> the choice it defeats
	Symbols map[string]string `yaml:"symbols"` // optional decoration
}

// EngineConfig tunes the computer opponent.
type EngineConfig struct {
	Window int   `yaml:"window"` // 0 = analyse the whole session
	Seed   int64 `yaml:"seed"`   // 0 = time-based
}

// OutputConfig controls console rendering.
type OutputConfig struct {
	TypewriterMS int  `yaml:"typewriter_ms"` // per-character delay, 0 disables
	Color        bool `yaml:"color"`
}

// StorageConfig selects the stats backend.
type StorageConfig struct {
	Backend     string `yaml:"backend"` // sqlite, json, postgres, memory
	Path        string `yaml:"path"`
	ProfilesDir string `yaml:"profiles_dir"`
	DSN         string `yaml:"dsn"`
}

// LogConfig sets the logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// ServerConfig holds SSH and HTTP serving settings.
type ServerConfig struct {
	SSHAddr            string `yaml:"ssh_addr"`
	HostKey            string `yaml:"host_key"`
	HTTPAddr           string `yaml:"http_addr"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// Validate checks values that cannot be defaulted silently.
func (c Config) Validate() error {
	if c.Rounds <= 0 {
		return fmt.Errorf("config: rounds must be positive, got %d", c.Rounds)
	}
	if _, err := engine.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Engine.Window < 0 {
		return fmt.Errorf("config: engine.window must not be negative, got %d", c.Engine.Window)
	}
	if c.Output.TypewriterMS < 0 {
		return fmt.Errorf("config: output.typewriter_ms must not be negative, got %d", c.Output.TypewriterMS)
	}
	known := false
	for _, b := range storage.Backends {
		if c.Storage.Backend == b {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("config: unknown storage backend %q", c.Storage.Backend)
	}
	if c.Rules == nil && !registry.Exists(c.Ruleset) {
		return fmt.Errorf("config: unknown ruleset %q", c.Ruleset)
	}
	return nil
}

// BuildRuleset returns the inline ruleset if present, else the registered one.
func (c Config) BuildRuleset() (*rules.Ruleset, error) {
	if c.Rules != nil {
		name := c.Rules.Name
		if name == "" {
			name = "Custom"
		}
		rs, err := rules.New(name, c.Rules.Choices, c.Rules.Beats, c.Rules.Symbols)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		return rs, nil
	}
	return registry.Create(c.Ruleset)
}

// EngineMode returns the configured mode, defaulting to adaptive.
func (c Config) EngineMode() engine.Mode {
	m, err := engine.ParseMode(c.Mode)
	if err != nil {
		return engine.ModeAdaptive
	}
	return m
}

// EngineOptions converts engine settings to engine options.
func (c Config) EngineOptions() []engine.Option {
	return []engine.Option{
		engine.WithWindow(c.Engine.Window),
		engine.WithSeed(c.Engine.Seed),
	}
}

// StorageOptions converts storage settings to backend options.
func (c Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend:     c.Storage.Backend,
		Path:        c.Storage.Path,
		ProfilesDir: c.Storage.ProfilesDir,
		DSN:         c.Storage.DSN,
	}
}

// TypewriterDelay returns the per-character output delay.
func (c Config) TypewriterDelay() time.Duration {
	return time.Duration(c.Output.TypewriterMS) * time.Millisecond
}

// IdleTimeout returns the SSH idle timeout.
func (c Config) IdleTimeout() time.Duration {
	return time.Duration(c.Server.IdleTimeoutMinutes) * time.Minute
}

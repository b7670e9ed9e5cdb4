package config

import (
	_ "embed"

	_ "github.com/vovakirdan/swg/internal/registry/builtin" // built-in rulesets
	"github.com/vovakirdan/swg/internal/rules"
	"github.com/vovakirdan/swg/internal/storage"
)

//go:embed defaults/swg.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Rounds:  5,
		Mode:    "adaptive",
		Ruleset: rules.SnakeWaterGunID,
		Engine: EngineConfig{
			Window: 0,
			Seed:   0,
		},
		Output: OutputConfig{
			TypewriterMS: 0,
			Color:        true,
		},
		Storage: StorageConfig{
			Backend:     storage.BackendSQLite,
			Path:        "~/.swg/stats.db",
			ProfilesDir: "~/.swg/profiles",
		},
		Log: LogConfig{
			Level: "warn",
		},
		Server: ServerConfig{
			SSHAddr:            ":23234",
			HTTPAddr:           "",
			IdleTimeoutMinutes: 30,
		},
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/swg/internal/engine"
	"github.com/vovakirdan/swg/internal/rules"
	"github.com/vovakirdan/swg/internal/storage"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "swg.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if cfg.Rounds != 5 {
		t.Errorf("Expected 5 default rounds, got %d", cfg.Rounds)
	}
	if cfg.EngineMode() != engine.ModeAdaptive {
		t.Errorf("Expected adaptive default mode, got %v", cfg.EngineMode())
	}
}

func TestEmbeddedDefaultsMatchDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	def := DefaultConfig()
	if cfg.Rounds != def.Rounds || cfg.Mode != def.Mode || cfg.Ruleset != def.Ruleset || cfg.Storage != def.Storage {
		t.Errorf("embedded defaults %+v differ from DefaultConfig %+v", cfg, def)
	}
}

func TestLoadCustomPathPartialFile(t *testing.T) {
	path := writeConfig(t, "rounds: 9\nmode: uniform\nengine:\n  window: 4\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Rounds != 9 {
		t.Errorf("Expected rounds 9, got %d", cfg.Rounds)
	}
	if cfg.EngineMode() != engine.ModeUniform {
		t.Errorf("Expected uniform mode, got %v", cfg.EngineMode())
	}
	if cfg.Engine.Window != 4 {
		t.Errorf("Expected window 4, got %d", cfg.Engine.Window)
	}
	// Omitted sections keep their defaults.
	if cfg.Storage.Backend != storage.BackendSQLite {
		t.Errorf("Expected default backend, got %q", cfg.Storage.Backend)
	}
	if cfg.Ruleset != rules.SnakeWaterGunID {
		t.Errorf("Expected default ruleset, got %q", cfg.Ruleset)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
	if _, err := Load(writeConfig(t, "rounds: [1, 2\n")); err == nil {
		t.Error("Expected error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero rounds", func(c *Config) { c.Rounds = 0 }},
		{"bad mode", func(c *Config) { c.Mode = "psychic" }},
		{"negative window", func(c *Config) { c.Engine.Window = -1 }},
		{"negative typewriter", func(c *Config) { c.Output.TypewriterMS = -5 }},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "redis" }},
		{"unknown ruleset", func(c *Config) { c.Ruleset = "chess" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestBuildRulesetInline(t *testing.T) {
	path := writeConfig(t, `
rules:
  name: Lizard
  choices: [rock, paper, scissors]
  beats:
    rock: scissors
    paper: rock
    scissors: paper
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	cfg.Ruleset = "ignored-when-inline"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}

	rs, err := cfg.BuildRuleset()
	if err != nil {
		t.Fatalf("BuildRuleset() failed: %v", err)
	}
	if rs.Name() != "Lizard" || rs.Len() != 3 {
		t.Errorf("Unexpected ruleset %s with %d choices", rs.Name(), rs.Len())
	}
	if rs.CounterOf("rock") != "paper" {
		t.Errorf("CounterOf(rock) = %s, expected paper", rs.CounterOf("rock"))
	}
}

func TestBuildRulesetInlineInvalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rules = &RulesConfig{
		Choices: []string{"a", "b", "c"},
		Beats:   map[string]string{"a": "b"},
	}
	if _, err := cfg.BuildRuleset(); err == nil {
		t.Error("Expected error for incomplete inline ruleset")
	}
}

func TestBuildRulesetRegistered(t *testing.T) {
	cfg := DefaultConfig()
	rs, err := cfg.BuildRuleset()
	if err != nil {
		t.Fatalf("BuildRuleset() failed: %v", err)
	}
	if rs.CounterOf("snake") != "gun" {
		t.Errorf("CounterOf(snake) = %s, expected gun", rs.CounterOf("snake"))
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"SWG_STORAGE_BACKEND": "json",
		"SWG_PROFILES_DIR":    "/tmp/profiles",
		"SWG_LOG_LEVEL":       "debug",
		"SWG_MODE":            "uniform",
		"SWG_RULESET":         rules.RockPaperScissorsID,
		"SWG_ROUNDS":          " 11 ",
	}
	cfg := DefaultConfig()
	cfg.Rules = &RulesConfig{Name: "dropped"}

	if err := cfg.ApplyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatalf("ApplyEnv() failed: %v", err)
	}

	if cfg.Storage.Backend != "json" || cfg.Storage.ProfilesDir != "/tmp/profiles" {
		t.Errorf("Unexpected storage %+v", cfg.Storage)
	}
	if cfg.Log.Level != "debug" || cfg.Mode != "uniform" || cfg.Rounds != 11 {
		t.Errorf("Unexpected config %+v", cfg)
	}
	if cfg.Rules != nil || cfg.Ruleset != rules.RockPaperScissorsID {
		t.Error("SWG_RULESET must replace the inline ruleset")
	}
	// Unset variables leave values alone.
	if cfg.Storage.Path != DefaultConfig().Storage.Path {
		t.Errorf("Storage path changed to %q", cfg.Storage.Path)
	}
}

func TestApplyEnvBadRounds(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(func(k string) string {
		if k == "SWG_ROUNDS" {
			return "many"
		}
		return ""
	})
	if err == nil {
		t.Error("Expected error for non-numeric SWG_ROUNDS")
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("SWG_TEST_DOTENV=from-file\nSWG_TEST_PRESET=from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SWG_TEST_PRESET", "from-env")
	t.Setenv("SWG_TEST_DOTENV", "")
	os.Unsetenv("SWG_TEST_DOTENV")

	if err := LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv() failed: %v", err)
	}
	if got := os.Getenv("SWG_TEST_DOTENV"); got != "from-file" {
		t.Errorf("SWG_TEST_DOTENV = %q, expected from-file", got)
	}
	if got := os.Getenv("SWG_TEST_PRESET"); got != "from-env" {
		t.Errorf("SWG_TEST_PRESET = %q, existing variables must win", got)
	}
}

func TestDurations(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.TypewriterMS = 15
	if cfg.TypewriterDelay() != 15*time.Millisecond {
		t.Errorf("TypewriterDelay() = %v", cfg.TypewriterDelay())
	}
	if cfg.IdleTimeout() != 30*time.Minute {
		t.Errorf("IdleTimeout() = %v", cfg.IdleTimeout())
	}
}

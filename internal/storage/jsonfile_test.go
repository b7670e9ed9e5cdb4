package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/swg/internal/match"
	"github.com/vovakirdan/swg/internal/stats"
)

func TestFileStoreRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "profiles")
	store, err := OpenFileStore(dir)
	if err != nil {
		t.Fatalf("OpenFileStore() failed: %v", err)
	}
	ctx := context.Background()

	if _, found, err := store.Load(ctx, "Alice"); err != nil || found {
		t.Fatalf("Load() on empty dir = (found=%v, err=%v), expected not found", found, err)
	}

	want := stats.Stats{Wins: 4, Losses: 3, Draws: 2, Total: 9}
	if err := store.Save(ctx, "Alice", want); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got, found, err := store.Load(ctx, "Alice")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !found || got != want {
		t.Errorf("Load() = %+v, expected %+v", got, want)
	}

	// The on-disk format is a flat object of counters.
	data, err := os.ReadFile(filepath.Join(dir, "Alice.json"))
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("profile is not a JSON object: %v", err)
	}
	if raw["wins"] != 4 || raw["losses"] != 3 || raw["draws"] != 2 || raw["total"] != 9 {
		t.Errorf("Unexpected profile contents %s", data)
	}

	leftovers, _ := filepath.Glob(filepath.Join(dir, ".profile-*"))
	if len(leftovers) != 0 {
		t.Errorf("Temporary files left behind: %v", leftovers)
	}
}

func TestFileStoreCorruptProfile(t *testing.T) {
	dir := t.TempDir()
	store, err := OpenFileStore(dir)
	if err != nil {
		t.Fatalf("OpenFileStore() failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "Bob.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := store.Load(context.Background(), "Bob"); err == nil {
		t.Error("Expected error for corrupt profile")
	}
}

func TestFileStoreRejectsBadNames(t *testing.T) {
	store, err := OpenFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("OpenFileStore() failed: %v", err)
	}
	ctx := context.Background()

	for _, name := range []string{"", ".", "..", "../escape", `a\b`, "a/b"} {
		if err := store.Save(ctx, name, stats.Stats{}); err == nil {
			t.Errorf("Save(%q) succeeded, expected error", name)
		}
		if _, _, err := store.Load(ctx, name); err == nil {
			t.Errorf("Load(%q) succeeded, expected error", name)
		}
	}
}

func TestFileStoreAcceptsNormalizedNames(t *testing.T) {
	dir := t.TempDir()
	store, err := OpenFileStore(dir)
	if err != nil {
		t.Fatalf("OpenFileStore() failed: %v", err)
	}
	ctx := context.Background()

	for _, raw := range []string{"ac/dc", `back\slash`, "..", "../escape"} {
		name := match.NormalizeName(raw)
		if _, _, err := store.Load(ctx, name); err != nil {
			t.Errorf("Load(%q) failed: %v", name, err)
		}
		if err := store.Save(ctx, name, stats.Stats{Wins: 1, Total: 1}); err != nil {
			t.Errorf("Save(%q) failed: %v", name, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() failed: %v", err)
	}
	if len(entries) != 4 {
		t.Errorf("Expected 4 profile files inside the store dir, got %d", len(entries))
	}
}

func TestFileStorePlayers(t *testing.T) {
	dir := t.TempDir()
	store, err := OpenFileStore(dir)
	if err != nil {
		t.Fatalf("OpenFileStore() failed: %v", err)
	}
	ctx := context.Background()

	store.Save(ctx, "Zed", stats.Stats{Wins: 1, Total: 1})
	store.Save(ctx, "Amy", stats.Stats{Wins: 1, Total: 2})
	store.Save(ctx, "Max", stats.Stats{Wins: 7, Total: 7})
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644)
	os.Mkdir(filepath.Join(dir, "sub.json"), 0o755)

	players, err := store.Players(ctx)
	if err != nil {
		t.Fatalf("Players() failed: %v", err)
	}

	want := []string{"Max", "Amy", "Zed"}
	if len(players) != len(want) {
		t.Fatalf("Expected %d players, got %d", len(want), len(players))
	}
	for i, name := range want {
		if players[i].Player != name {
			t.Errorf("Position %d: expected %s, got %s", i, name, players[i].Player)
		}
	}
}

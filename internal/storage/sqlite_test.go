package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/swg/internal/match"
	"github.com/vovakirdan/swg/internal/stats"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file and its parent were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.Save(ctx, "Alice", stats.Stats{Wins: 2, Total: 2}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	st, found, err := store.Load(ctx, "Alice")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !found || st.Wins != 2 {
		t.Errorf("Expected stored wins 2, got %+v (found=%v)", st, found)
	}
}

func TestStoreLoadMissing(t *testing.T) {
	store := openTestStore(t)

	st, found, err := store.Load(context.Background(), "Nobody")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if found {
		t.Error("Expected unknown player to be not found")
	}
	if st != (stats.Stats{}) {
		t.Errorf("Expected zero stats, got %+v", st)
	}
}

func TestStoreSaveOverwrites(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "Bob", stats.Stats{Wins: 1, Total: 1}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	want := stats.Stats{Wins: 3, Losses: 2, Draws: 1, Total: 6}
	if err := store.Save(ctx, "Bob", want); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got, found, err := store.Load(ctx, "Bob")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !found || got != want {
		t.Errorf("Load() = %+v, expected %+v", got, want)
	}

	players, err := store.Players(ctx)
	if err != nil {
		t.Fatalf("Players() failed: %v", err)
	}
	if len(players) != 1 {
		t.Errorf("Expected 1 player after upsert, got %d", len(players))
	}
}

func TestStorePlayersOrdering(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	seed := map[string]stats.Stats{
		"Carol": {Wins: 5, Losses: 5, Total: 10},
		"Dave":  {Wins: 5, Losses: 0, Total: 5},
		"Erin":  {Wins: 1, Losses: 0, Total: 1},
		"Alan":  {Wins: 1, Losses: 0, Total: 1},
	}
	for name, st := range seed {
		if err := store.Save(ctx, name, st); err != nil {
			t.Fatalf("Save() failed: %v", err)
		}
	}

	players, err := store.Players(ctx)
	if err != nil {
		t.Fatalf("Players() failed: %v", err)
	}

	// Wins first, then win rate, then name.
	want := []string{"Dave", "Carol", "Alan", "Erin"}
	if len(players) != len(want) {
		t.Fatalf("Expected %d players, got %d", len(want), len(players))
	}
	for i, name := range want {
		if players[i].Player != name {
			t.Errorf("Position %d: expected %s, got %s", i, name, players[i].Player)
		}
	}
}

func TestStoreTopPlayersLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i, name := range []string{"A", "B", "C", "D", "E"} {
		if err := store.Save(ctx, name, stats.Stats{Wins: i, Total: 5}); err != nil {
			t.Fatalf("Save() failed: %v", err)
		}
	}

	top, err := store.TopPlayers(ctx, 3)
	if err != nil {
		t.Fatalf("TopPlayers() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 players, got %d", len(top))
	}
	if top[0].Player != "E" {
		t.Errorf("Expected E first, got %s", top[0].Player)
	}
}

func TestStoreSessionHistory(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i, id := range []string{"s1", "s2", "s3"} {
		err := store.SaveSessionResult(ctx, match.ResultData{
			SessionID:    id,
			Player:       "Alice",
			Ruleset:      "swg",
			Mode:         "adaptive",
			RoundsPlayed: i + 1,
			RoundsPlan:   3,
			HumanWins:    i,
			Outcome:      "Win",
			DurationSecs: 10,
		})
		if err != nil {
			t.Fatalf("SaveSessionResult() failed: %v", err)
		}
	}
	if err := store.SaveSessionResult(ctx, match.ResultData{SessionID: "other", Player: "Bob", Ruleset: "swg", Mode: "uniform", Outcome: "Loss"}); err != nil {
		t.Fatalf("SaveSessionResult() failed: %v", err)
	}

	entries, err := store.RecentSessions(ctx, "Alice", 2)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].SessionID != "s3" || entries[1].SessionID != "s2" {
		t.Errorf("Expected newest first, got %s, %s", entries[0].SessionID, entries[1].SessionID)
	}
	e := entries[0]
	if e.Player != "Alice" || e.Mode != "adaptive" || e.RoundsPlayed != 3 || e.HumanWins != 2 || e.Duration != 10 {
		t.Errorf("Unexpected entry %+v", e)
	}
	if e.CreatedAt.IsZero() {
		t.Error("Expected created_at to be set")
	}
}

func TestStoreDuplicateSessionID(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	data := match.ResultData{SessionID: "dup", Player: "Alice", Ruleset: "swg", Mode: "uniform", Outcome: "Draw"}
	if err := store.SaveSessionResult(ctx, data); err != nil {
		t.Fatalf("SaveSessionResult() failed: %v", err)
	}
	if err := store.SaveSessionResult(ctx, data); err == nil {
		t.Error("Expected error for duplicate session id")
	}
}

func TestStoreDeletePlayer(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "Alice", stats.Stats{Wins: 1, Total: 1}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if err := store.SaveSessionResult(ctx, match.ResultData{SessionID: "x", Player: "Alice", Ruleset: "swg", Mode: "uniform", Outcome: "Win"}); err != nil {
		t.Fatalf("SaveSessionResult() failed: %v", err)
	}

	if err := store.DeletePlayer(ctx, "Alice"); err != nil {
		t.Fatalf("DeletePlayer() failed: %v", err)
	}

	if _, found, _ := store.Load(ctx, "Alice"); found {
		t.Error("Expected player stats to be deleted")
	}
	entries, err := store.RecentSessions(ctx, "Alice", 10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no sessions, got %d", len(entries))
	}
}

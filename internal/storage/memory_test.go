package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/vovakirdan/swg/internal/match"
	"github.com/vovakirdan/swg/internal/stats"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, found, _ := store.Load(ctx, "Alice"); found {
		t.Error("Expected empty store")
	}

	store.Save(ctx, "Alice", stats.Stats{Wins: 1, Total: 3})
	store.Save(ctx, "Bob", stats.Stats{Wins: 2, Total: 2})

	st, found, err := store.Load(ctx, "Alice")
	if err != nil || !found || st.Total != 3 {
		t.Errorf("Load() = (%+v, %v, %v)", st, found, err)
	}

	players, _ := store.Players(ctx)
	if len(players) != 2 || players[0].Player != "Bob" {
		t.Errorf("Unexpected players %+v", players)
	}

	store.SaveSessionResult(ctx, match.ResultData{SessionID: "a", Player: "Alice"})
	sessions := store.Sessions()
	if len(sessions) != 1 || sessions[0].SessionID != "a" {
		t.Errorf("Unexpected sessions %+v", sessions)
	}

	// Sessions returns a copy.
	sessions[0].SessionID = "changed"
	if store.Sessions()[0].SessionID != "a" {
		t.Error("Sessions() exposed internal state")
	}
}

func TestOpenBackend(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	tests := []struct {
		opts Options
		want string
	}{
		{Options{Backend: BackendMemory}, "*storage.MemoryStore"},
		{Options{Backend: BackendJSON, ProfilesDir: dir + "/profiles"}, "*storage.FileStore"},
		{Options{Backend: BackendSQLite, Path: dir + "/swg.db"}, "*storage.Store"},
		{Options{Path: dir + "/default.db"}, "*storage.Store"},
	}

	for _, tt := range tests {
		b, err := OpenBackend(ctx, tt.opts)
		if err != nil {
			t.Fatalf("OpenBackend(%q) failed: %v", tt.opts.Backend, err)
		}
		if got := typeName(b); got != tt.want {
			t.Errorf("OpenBackend(%q) = %s, expected %s", tt.opts.Backend, got, tt.want)
		}
		b.Close()
	}
}

func TestOpenBackendUnknown(t *testing.T) {
	_, err := OpenBackend(context.Background(), Options{Backend: "redis"})
	if err == nil || !strings.Contains(err.Error(), "unknown backend") {
		t.Errorf("Expected unknown backend error, got %v", err)
	}
}

func typeName(b Backend) string {
	switch b.(type) {
	case *MemoryStore:
		return "*storage.MemoryStore"
	case *FileStore:
		return "*storage.FileStore"
	case *Store:
		return "*storage.Store"
	default:
		return "unknown"
	}
}

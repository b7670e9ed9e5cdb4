package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/vovakirdan/swg/internal/match"
	"github.com/vovakirdan/swg/internal/stats"
)

// MemoryStore is a map-backed store. State is lost when the process exits.
// It is used in tests and as a fallback when no database can be opened.
type MemoryStore struct {
	mu       sync.RWMutex
	players  map[string]stats.Stats
	sessions []match.ResultData
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{players: make(map[string]stats.Stats)}
}

// Load implements stats.Store.
func (m *MemoryStore) Load(_ context.Context, player string) (stats.Stats, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.players[player]
	return st, ok, nil
}

// Save implements stats.Store.
func (m *MemoryStore) Save(_ context.Context, player string, st stats.Stats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players[player] = st
	return nil
}

// Players implements stats.Lister, sorted by wins descending then name.
func (m *MemoryStore) Players(_ context.Context) ([]stats.PlayerStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	players := make([]stats.PlayerStats, 0, len(m.players))
	for name, st := range m.players {
		players = append(players, stats.PlayerStats{Player: name, Stats: st})
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].Stats.Wins != players[j].Stats.Wins {
			return players[i].Stats.Wins > players[j].Stats.Wins
		}
		return players[i].Player < players[j].Player
	})
	return players, nil
}

// SaveSessionResult implements match.ResultSaver.
func (m *MemoryStore) SaveSessionResult(_ context.Context, data match.ResultData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = append(m.sessions, data)
	return nil
}

// Sessions returns the recorded session summaries in insertion order.
func (m *MemoryStore) Sessions() []match.ResultData {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]match.ResultData, len(m.sessions))
	copy(out, m.sessions)
	return out
}

// Close is a no-op; it lets MemoryStore satisfy io.Closer.
func (m *MemoryStore) Close() error {
	return nil
}

var (
	_ stats.Store       = (*MemoryStore)(nil)
	_ stats.Lister      = (*MemoryStore)(nil)
	_ match.ResultSaver = (*MemoryStore)(nil)
)

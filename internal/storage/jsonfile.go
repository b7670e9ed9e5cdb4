package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/vovakirdan/swg/internal/stats"
)

// FileStore keeps one JSON profile per player in a directory:
// <dir>/<Player>.json holding {"wins":..,"losses":..,"draws":..,"total":..}.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// OpenFileStore creates the profile directory if needed.
func OpenFileStore(dir string) (*FileStore, error) {
	dir, err := expandHome(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the profile directory.
func (f *FileStore) Dir() string {
	return f.dir
}

// Load implements stats.Store.
func (f *FileStore) Load(_ context.Context, player string) (stats.Stats, bool, error) {
	path, err := f.profilePath(player)
	if err != nil {
		return stats.Stats{}, false, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return stats.Stats{}, false, nil
	}
	if err != nil {
		return stats.Stats{}, false, fmt.Errorf("storage: cannot read profile %s: %w", path, err)
	}

	var st stats.Stats
	if err := json.Unmarshal(data, &st); err != nil {
		return stats.Stats{}, false, fmt.Errorf("storage: cannot parse profile %s: %w", path, err)
	}
	return st, true, nil
}

// Save implements stats.Store. The file is replaced atomically.
func (f *FileStore) Save(_ context.Context, player string, st stats.Stats) error {
	path, err := f.profilePath(player)
	if err != nil {
		return err
	}

	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("storage: cannot encode profile: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	tmp, err := os.CreateTemp(f.dir, ".profile-*.tmp")
	if err != nil {
		return fmt.Errorf("storage: cannot write profile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("storage: cannot write profile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: cannot write profile: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: cannot replace profile %s: %w", path, err)
	}
	return nil
}

// Players implements stats.Lister, sorted by wins descending then name.
func (f *FileStore) Players(ctx context.Context) ([]stats.PlayerStats, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list profiles: %w", err)
	}

	var players []stats.PlayerStats
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != ".json" {
			continue
		}
		player := strings.TrimSuffix(name, ".json")
		st, found, err := f.Load(ctx, player)
		if err != nil {
			return nil, err
		}
		if found {
			players = append(players, stats.PlayerStats{Player: player, Stats: st})
		}
	}

	sort.Slice(players, func(i, j int) bool {
		if players[i].Stats.Wins != players[j].Stats.Wins {
			return players[i].Stats.Wins > players[j].Stats.Wins
		}
		return players[i].Player < players[j].Player
	})
	return players, nil
}

// Close is a no-op; it lets FileStore satisfy io.Closer.
func (f *FileStore) Close() error {
	return nil
}

func (f *FileStore) profilePath(player string) (string, error) {
	if player == "" || player == "." || player == ".." ||
		strings.ContainsAny(player, `/\`) || strings.ContainsRune(player, 0) {
		return "", fmt.Errorf("storage: invalid player name %q", player)
	}
	return filepath.Join(f.dir, player+".json"), nil
}

var (
	_ stats.Store  = (*FileStore)(nil)
	_ stats.Lister = (*FileStore)(nil)
)

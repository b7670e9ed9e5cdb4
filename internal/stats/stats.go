// Package stats holds per-player win/loss counters and the storage
// contract used to persist them between sessions.
package stats

import (
	"context"
	"errors"
	"fmt"

	"github.com/vovakirdan/swg/internal/rules"
)

// ErrPersistence marks failures to load or save player stats.
var ErrPersistence = errors.New("stats: persistence failure")

// Stats is the lifetime record of one player.
// The JSON field names match the profile files written by earlier versions.
type Stats struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
	Total  int `json:"total"`
}

// Record counts one completed round.
func (s *Stats) Record(o rules.Outcome) {
	switch o {
	case rules.Win:
		s.Wins++
	case rules.Loss:
		s.Losses++
	case rules.Draw:
		s.Draws++
	default:
		return
	}
	s.Total++
}

// WinRate returns the percentage of rounds won, or 0 with no rounds played.
func (s Stats) WinRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Total) * 100
}

// Summary renders the one-line record shown to the player.
func (s Stats) Summary() string {
	return fmt.Sprintf("Wins: %d | Losses: %d | Draws: %d | Win Rate: %.2f%%",
		s.Wins, s.Losses, s.Draws, s.WinRate())
}

// Store persists stats keyed by player display name.
type Store interface {
	// Load returns the player's stats. found is false for unknown players.
	Load(ctx context.Context, player string) (s Stats, found bool, err error)

	// Save replaces the player's stats.
	Save(ctx context.Context, player string, s Stats) error
}

// PlayerStats pairs a player name with their stats.
type PlayerStats struct {
	Player string
	Stats  Stats
}

// Lister is implemented by stores that can enumerate players.
type Lister interface {
	Players(ctx context.Context) ([]PlayerStats, error)
}

// Package storage provides persistence backends for player stats and
// session history. The default backend is SQLite via the pure-Go
// modernc.org/sqlite driver, avoiding CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/swg/internal/match"
	"github.com/vovakirdan/swg/internal/stats"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// SessionEntry is one recorded session.
type SessionEntry struct {
	ID           int64
	SessionID    string
	Player       string
	Ruleset      string
	Mode         string
	RoundsPlayed int
	RoundsPlan   int
	HumanWins    int
	EngineWins   int
	Draws        int
	Outcome      string
	Duration     int // seconds
	CreatedAt    time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := expandHome(dbPath)
	if err != nil {
		return nil, err
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS player_stats (
			player TEXT PRIMARY KEY,
			wins INTEGER NOT NULL DEFAULT 0,
			losses INTEGER NOT NULL DEFAULT 0,
			draws INTEGER NOT NULL DEFAULT 0,
			total INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL,
			ruleset TEXT NOT NULL,
			mode TEXT NOT NULL,
			rounds_played INTEGER NOT NULL DEFAULT 0,
			rounds_plan INTEGER NOT NULL DEFAULT 0,
			human_wins INTEGER NOT NULL DEFAULT 0,
			engine_wins INTEGER NOT NULL DEFAULT 0,
			draws INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_player ON sessions(player);
		CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load implements stats.Store.
func (s *Store) Load(ctx context.Context, player string) (stats.Stats, bool, error) {
	var st stats.Stats
	err := s.db.QueryRowContext(ctx,
		"SELECT wins, losses, draws, total FROM player_stats WHERE player = ?",
		player,
	).Scan(&st.Wins, &st.Losses, &st.Draws, &st.Total)

	if errors.Is(err, sql.ErrNoRows) {
		return stats.Stats{}, false, nil
	}
	if err != nil {
		return stats.Stats{}, false, fmt.Errorf("storage: cannot load stats: %w", err)
	}
	return st, true, nil
}

// Save implements stats.Store.
func (s *Store) Save(ctx context.Context, player string, st stats.Stats) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO player_stats (player, wins, losses, draws, total, updated_at)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(player) DO UPDATE SET
		   wins = excluded.wins,
		   losses = excluded.losses,
		   draws = excluded.draws,
		   total = excluded.total,
		   updated_at = CURRENT_TIMESTAMP`,
		player, st.Wins, st.Losses, st.Draws, st.Total,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save stats: %w", err)
	}
	return nil
}

// Players implements stats.Lister, ordered by wins descending.
func (s *Store) Players(ctx context.Context) ([]stats.PlayerStats, error) {
	return s.TopPlayers(ctx, -1)
}

// TopPlayers returns up to limit players ordered by wins, then win rate.
// A negative limit returns every player.
func (s *Store) TopPlayers(ctx context.Context, limit int) ([]stats.PlayerStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT player, wins, losses, draws, total
		 FROM player_stats
		 ORDER BY wins DESC, CAST(wins AS REAL) / MAX(total, 1) DESC, player ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query players: %w", err)
	}
	defer rows.Close()

	var players []stats.PlayerStats
	for rows.Next() {
		var p stats.PlayerStats
		if err := rows.Scan(&p.Player, &p.Stats.Wins, &p.Stats.Losses, &p.Stats.Draws, &p.Stats.Total); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		players = append(players, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return players, nil
}

// DeletePlayer removes a player's stats and session history.
func (s *Store) DeletePlayer(ctx context.Context, player string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM player_stats WHERE player = ?", player); err != nil {
		return fmt.Errorf("storage: cannot delete player: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE player = ?", player); err != nil {
		return fmt.Errorf("storage: cannot delete sessions: %w", err)
	}
	return nil
}

// SaveSessionResult implements match.ResultSaver.
func (s *Store) SaveSessionResult(ctx context.Context, data match.ResultData) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions
		 (session_id, player, ruleset, mode, rounds_played, rounds_plan, human_wins, engine_wins, draws, outcome, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		data.SessionID,
		data.Player,
		data.Ruleset,
		data.Mode,
		data.RoundsPlayed,
		data.RoundsPlan,
		data.HumanWins,
		data.EngineWins,
		data.Draws,
		data.Outcome,
		data.DurationSecs,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save session: %w", err)
	}
	return nil
}

// RecentSessions retrieves the most recent sessions for a player.
func (s *Store) RecentSessions(ctx context.Context, player string, limit int) ([]SessionEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, player, ruleset, mode, rounds_played, rounds_plan,
		        human_wins, engine_wins, draws, outcome, duration_secs, created_at
		 FROM sessions
		 WHERE player = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var entries []SessionEntry
	for rows.Next() {
		var e SessionEntry
		var createdAt any
		if err := rows.Scan(
			&e.ID,
			&e.SessionID,
			&e.Player,
			&e.Ruleset,
			&e.Mode,
			&e.RoundsPlayed,
			&e.RoundsPlan,
			&e.HumanWins,
			&e.EngineWins,
			&e.Draws,
			&e.Outcome,
			&e.Duration,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Ensure Store implements the match and stats contracts
var (
	_ stats.Store       = (*Store)(nil)
	_ stats.Lister      = (*Store)(nil)
	_ match.ResultSaver = (*Store)(nil)
)

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// expandHome expands a leading ~ to the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

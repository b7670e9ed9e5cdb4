package storage

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vovakirdan/swg/internal/match"
	"github.com/vovakirdan/swg/internal/stats"
)

//go:embed postgres_schema.sql
var postgresSchema string

// PostgresStore keeps stats and session history in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to dsn and applies the schema.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	if dsn == "" {
		return nil, errors.New("storage: postgres dsn is empty")
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: cannot connect to postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Close releases the connection pool.
func (p *PostgresStore) Close() error {
	p.pool.Close()
	return nil
}

// Load implements stats.Store.
func (p *PostgresStore) Load(ctx context.Context, player string) (stats.Stats, bool, error) {
	var st stats.Stats
	err := p.pool.QueryRow(ctx,
		`SELECT wins, losses, draws, total FROM player_stats WHERE player = $1`,
		player,
	).Scan(&st.Wins, &st.Losses, &st.Draws, &st.Total)
	if errors.Is(err, pgx.ErrNoRows) {
		return stats.Stats{}, false, nil
	}
	if err != nil {
		return stats.Stats{}, false, fmt.Errorf("storage: cannot load stats: %w", err)
	}
	return st, true, nil
}

// Save implements stats.Store.
func (p *PostgresStore) Save(ctx context.Context, player string, st stats.Stats) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO player_stats (player, wins, losses, draws, total)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (player) DO UPDATE
		  SET wins = EXCLUDED.wins,
		      losses = EXCLUDED.losses,
		      draws = EXCLUDED.draws,
		      total = EXCLUDED.total,
		      updated_at = now()
	`, player, st.Wins, st.Losses, st.Draws, st.Total)
	if err != nil {
		return fmt.Errorf("storage: cannot save stats: %w", err)
	}
	return nil
}

// Players implements stats.Lister.
func (p *PostgresStore) Players(ctx context.Context) ([]stats.PlayerStats, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT player, wins, losses, draws, total
		  FROM player_stats
		 ORDER BY wins DESC, player ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query players: %w", err)
	}
	defer rows.Close()

	var players []stats.PlayerStats
	for rows.Next() {
		var ps stats.PlayerStats
		if err := rows.Scan(&ps.Player, &ps.Stats.Wins, &ps.Stats.Losses, &ps.Stats.Draws, &ps.Stats.Total); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		players = append(players, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return players, nil
}

// SaveSessionResult implements match.ResultSaver.
func (p *PostgresStore) SaveSessionResult(ctx context.Context, data match.ResultData) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO sessions
		  (session_id, player, ruleset, mode, rounds_played, rounds_plan,
		   human_wins, engine_wins, draws, outcome, duration_secs)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
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

var (
	_ stats.Store       = (*PostgresStore)(nil)
	_ stats.Lister      = (*PostgresStore)(nil)
	_ match.ResultSaver = (*PostgresStore)(nil)
)

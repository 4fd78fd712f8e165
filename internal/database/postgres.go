package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"connect-four-engine/internal/game"
)

// Store keeps aggregate results of finished human-versus-bot sessions.
// Only outcomes are stored, never board state; a game cannot be resumed
// from here.
type Store struct {
	db *sql.DB
}

// LeaderboardEntry is one row of the humans-versus-the-bot table.
type LeaderboardEntry struct {
	PlayerName string  `json:"player_name"`
	TotalGames int     `json:"total_games"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	Draws      int     `json:"draws"`
	WinRate    float64 `json:"win_rate"`
}

// PlayerStats is the per-player view of the same data.
type PlayerStats struct {
	PlayerName          string  `json:"player_name"`
	TotalGames          int     `json:"total_games"`
	Wins                int     `json:"wins"`
	Losses              int     `json:"losses"`
	Draws               int     `json:"draws"`
	WinRate             float64 `json:"win_rate"`
	AverageGameDuration float64 `json:"average_game_duration"`
}

func NewStore(databaseURL string) (*Store, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS results (
			id UUID PRIMARY KEY,
			player_name VARCHAR(255) NOT NULL,
			human_won BOOLEAN NOT NULL,
			bot_won BOOLEAN NOT NULL,
			is_draw BOOLEAN NOT NULL,
			total_moves INTEGER NOT NULL,
			duration_seconds INTEGER NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			finished_at TIMESTAMP WITH TIME ZONE NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_player ON results(player_name)`,
		`CREATE INDEX IF NOT EXISTS idx_results_finished_at ON results(finished_at)`,
	}
	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("exec %q: %w", query[:30], err)
		}
	}
	return nil
}

// SaveResult records a finished session.
func (s *Store) SaveResult(sess *game.Session) error {
	if sess.Status != game.StatusFinished || sess.FinishedAt == nil {
		return fmt.Errorf("session %s is not finished", sess.ID)
	}

	duration := int(sess.FinishedAt.Sub(sess.CreatedAt).Seconds())
	_, err := s.db.Exec(`
		INSERT INTO results (id, player_name, human_won, bot_won, is_draw, total_moves, duration_seconds, created_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		sess.ID,
		sess.HumanName,
		sess.Winner == sess.Human,
		sess.Winner == sess.Bot,
		sess.IsDraw,
		sess.MoveCount,
		duration,
		sess.CreatedAt,
		*sess.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

// Leaderboard ranks humans by their record against the bot.
func (s *Store) Leaderboard(limit int) ([]LeaderboardEntry, error) {
	rows, err := s.db.Query(`
		SELECT
			player_name,
			COUNT(*) AS total_games,
			SUM(CASE WHEN human_won THEN 1 ELSE 0 END) AS wins,
			SUM(CASE WHEN bot_won THEN 1 ELSE 0 END) AS losses,
			SUM(CASE WHEN is_draw THEN 1 ELSE 0 END) AS draws,
			ROUND(SUM(CASE WHEN human_won THEN 1 ELSE 0 END)::numeric / COUNT(*)::numeric * 100, 2) AS win_rate
		FROM results
		GROUP BY player_name
		ORDER BY win_rate DESC, wins DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.PlayerName, &e.TotalGames, &e.Wins, &e.Losses, &e.Draws, &e.WinRate); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// PlayerStats returns one player's record, or sql.ErrNoRows equivalent
// wrapped when the player has no games.
func (s *Store) PlayerStats(playerName string) (*PlayerStats, error) {
	stats := &PlayerStats{PlayerName: playerName}
	err := s.db.QueryRow(`
		SELECT
			COUNT(*),
			SUM(CASE WHEN human_won THEN 1 ELSE 0 END),
			SUM(CASE WHEN bot_won THEN 1 ELSE 0 END),
			SUM(CASE WHEN is_draw THEN 1 ELSE 0 END),
			ROUND(SUM(CASE WHEN human_won THEN 1 ELSE 0 END)::numeric / COUNT(*)::numeric * 100, 2),
			ROUND(AVG(duration_seconds), 2)
		FROM results
		WHERE player_name = $1
		GROUP BY player_name`, playerName).Scan(
		&stats.TotalGames,
		&stats.Wins,
		&stats.Losses,
		&stats.Draws,
		&stats.WinRate,
		&stats.AverageGameDuration,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no games recorded for %s", playerName)
	}
	if err != nil {
		return nil, fmt.Errorf("query player stats: %w", err)
	}
	return stats, nil
}

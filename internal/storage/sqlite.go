// Package storage keeps the run history of a play session in an in-memory
// SQLite database. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies. Nothing is written to disk.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// sessionDSN opens a private in-memory database.
const sessionDSN = ":memory:"

// Run end reasons.
const (
	EndGameOver = "game_over"
	EndRestart  = "restart"
	EndQuit     = "quit"
)

// Store manages the SQLite connection holding the session's runs.
type Store struct {
	db *sql.DB
}

// Run is one finished (or abandoned) run of a game.
type Run struct {
	ID        int64
	GameID    string
	Score     int
	Lines     int
	Pieces    int
	EndReason string // EndGameOver, EndRestart or EndQuit
	CreatedAt time.Time
}

// Stats summarizes every run recorded for a game.
type Stats struct {
	Runs       int
	Best       int
	TotalLines int
	AvgScore   float64
}

// OpenSession creates an empty in-memory store that lives until Close.
func OpenSession() (*Store, error) {
	db, err := sql.Open("sqlite", sessionDSN)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Every connection to :memory: gets its own database; pin to one.
	db.SetMaxOpenConns(1)

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

// migrate creates the schema.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			lines INTEGER NOT NULL DEFAULT 0,
			pieces INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(game_id, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection, discarding the history.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun stores a run and returns its ID.
func (s *Store) RecordRun(r Run) (int64, error) {
	if r.EndReason == "" {
		r.EndReason = EndGameOver
	}

	result, err := s.db.Exec(
		"INSERT INTO runs (game_id, score, lines, pieces, end_reason) VALUES (?, ?, ?, ?, ?)",
		r.GameID, r.Score, r.Lines, r.Pieces, r.EndReason,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRuns retrieves the best N runs for the given game, highest score first.
// Ties keep recording order.
func (s *Store) TopRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, score, lines, pieces, end_reason, created_at
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.Score, &r.Lines, &r.Pieces, &r.EndReason, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// SessionBest returns the highest recorded score for the game, or 0.
func (s *Store) SessionBest(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE game_id = ?",
		gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query session best: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Stats aggregates all runs of the game.
func (s *Store) Stats(gameID string) (Stats, error) {
	var st Stats
	var best sql.NullInt64
	var avg sql.NullFloat64

	err := s.db.QueryRow(
		`SELECT COUNT(*), MAX(score), COALESCE(SUM(lines), 0), AVG(score)
		 FROM runs
		 WHERE game_id = ?`,
		gameID,
	).Scan(&st.Runs, &best, &st.TotalLines, &avg)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot query stats: %w", err)
	}

	if best.Valid {
		st.Best = int(best.Int64)
	}
	if avg.Valid {
		st.AvgScore = avg.Float64
	}
	return st, nil
}

// parseTime handles both time.Time and the SQLite text format.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.DateTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

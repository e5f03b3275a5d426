// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/valvedrill/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for session data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		closeQuietly(db, "db")
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			key_name TEXT NOT NULL,
			range_name TEXT NOT NULL,
			score INTEGER NOT NULL,
			attempts INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS session_note_stats (
			session_id INTEGER NOT NULL,
			pitch INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL,
			latency_sum_ms INTEGER NOT NULL,
			latency_count INTEGER NOT NULL,
			PRIMARY KEY (session_id, pitch)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_key_range ON sessions(key_name, range_name);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSession stores a completed session and its per-pitch stats.
func (s *Store) InsertSession(ctx context.Context, stats model.SessionStats, notes []model.NoteStats) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				logrus.WithError(rerr).Debug("rollback failed")
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (started_at, ended_at, key_name, range_name, score, attempts, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		stats.StartedAt.Format(time.RFC3339Nano),
		stats.EndedAt.Format(time.RFC3339Nano),
		stats.Key,
		stats.Range,
		stats.Score,
		stats.Attempts,
		stats.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(notes) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO session_note_stats (session_id, pitch, correct, incorrect, latency_sum_ms, latency_count)
			 VALUES (?, ?, ?, ?, ?, ?)`)
		if perr != nil {
			err = perr
			return 0, err
		}
		defer closeQuietly(stmt, "statement")
		for _, ns := range notes {
			if _, err = stmt.ExecContext(ctx, id, ns.Pitch, ns.Correct, ns.Incorrect, ns.LatencySumMs, ns.LatencyCount); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// BestScore returns the highest stored score for a key and range, or 0.
func (s *Store) BestScore(ctx context.Context, key, rng string) (int, error) {
	var best sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(score) FROM sessions WHERE key_name = ? AND range_name = ?`, key, rng).Scan(&best)
	if err != nil {
		return 0, err
	}
	if !best.Valid {
		return 0, nil
	}
	return int(best.Int64), nil
}

// GetWeakNotes aggregates pitch stats over the most recent sessions for a key and range.
func (s *Store) GetWeakNotes(ctx context.Context, window int, key, rng string) ([]model.NoteAggregate, error) {
	if window <= 0 {
		return nil, nil
	}
	query := `WITH recent_sessions AS (
		SELECT id FROM sessions
		WHERE (? = '' OR key_name = ?) AND (? = '' OR range_name = ?)
		ORDER BY ended_at DESC
		LIMIT ?
	)
	SELECT ns.pitch, SUM(ns.correct) AS correct, SUM(ns.incorrect) AS incorrect,
		SUM(ns.latency_sum_ms) AS latency_sum_ms, SUM(ns.latency_count) AS latency_count
	FROM session_note_stats ns
	JOIN recent_sessions r ON r.id = ns.session_id
	GROUP BY ns.pitch`

	rows, err := s.db.QueryContext(ctx, query, key, key, rng, rng, window)
	if err != nil {
		return nil, err
	}
	defer closeQuietly(rows, "rows")
	return scanNoteAggregates(rows)
}

// ListSessions returns session aggregates filtered by stats config.
func (s *Store) ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Key != "" {
		clauses = append(clauses, "key_name = ?")
		args = append(args, cfg.Key)
	}
	if cfg.Range != "" {
		clauses = append(clauses, "range_name = ?")
		args = append(args, cfg.Range)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, ended_at, key_name, range_name, score, attempts, duration_ms
		FROM sessions
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeQuietly(rows, "rows")

	var sessions []model.SessionAggregate
	for rows.Next() {
		var agg model.SessionAggregate
		var endedAt string
		if err := rows.Scan(&agg.SessionID, &endedAt, &agg.Key, &agg.Range, &agg.Score, &agg.Attempts, &agg.DurationMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		sessions = append(sessions, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// ListNoteAggregatesForSessions aggregates per-pitch stats across sessions.
func (s *Store) ListNoteAggregatesForSessions(ctx context.Context, sessionIDs []int64) ([]model.NoteAggregate, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(sessionIDs))
	args := make([]any, len(sessionIDs))
	for i, id := range sessionIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT pitch, SUM(correct) AS correct, SUM(incorrect) AS incorrect,
		SUM(latency_sum_ms) AS latency_sum_ms, SUM(latency_count) AS latency_count
		FROM session_note_stats
		WHERE session_id IN (%s)
		GROUP BY pitch`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeQuietly(rows, "rows")
	return scanNoteAggregates(rows)
}

func scanNoteAggregates(rows *sql.Rows) ([]model.NoteAggregate, error) {
	var result []model.NoteAggregate
	for rows.Next() {
		var agg model.NoteAggregate
		if err := rows.Scan(&agg.Pitch, &agg.Correct, &agg.Incorrect, &agg.LatencySumMs, &agg.LatencyCount); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type closer interface {
	Close() error
}

func closeQuietly(c closer, what string) {
	if err := c.Close(); err != nil {
		logrus.WithError(err).Warnf("failed to close %s", what)
	}
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Tables are created with raw DDL; the ent builder covers queries only.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS flashcards (
		id            TEXT PRIMARY KEY,
		front         TEXT NOT NULL,
		back          TEXT NOT NULL DEFAULT '',
		interval_days INTEGER NOT NULL DEFAULT 0,
		ease_factor   REAL NOT NULL,
		review_count  INTEGER NOT NULL DEFAULT 0,
		next_review   INTEGER,
		last_reviewed INTEGER,
		created_at    INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_flashcards_next_review ON flashcards (next_review)`,
	`CREATE TABLE IF NOT EXISTS review_logs (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		card_id       TEXT NOT NULL REFERENCES flashcards(id) ON DELETE CASCADE,
		quality       INTEGER NOT NULL,
		interval_days INTEGER NOT NULL,
		ease_factor   REAL NOT NULL,
		reviewed_at   INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_review_logs_card ON review_logs (card_id, reviewed_at)`,
	`CREATE TABLE IF NOT EXISTS assignments (
		id              TEXT PRIMARY KEY,
		course          TEXT NOT NULL,
		name            TEXT NOT NULL,
		points_possible REAL NOT NULL,
		points_earned   REAL,
		due_date        INTEGER,
		created_at      INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_course ON assignments (course)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// Times are stored as INTEGER Unix seconds. Every year a time.Time can
// represent round-trips, and integer comparison orders them. Sub-second
// precision is dropped.

func formatTime(t time.Time) int64 {
	return t.Unix()
}

func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseTime(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

func parseNullTime(ns sql.NullInt64) *time.Time {
	if !ns.Valid {
		return nil
	}
	t := parseTime(ns.Int64)
	return &t
}

func floatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	v := nf.Float64
	return &v
}

func floatPtrArg(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

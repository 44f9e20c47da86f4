// Package store persists parsed review tables to a SQLite database.
//
// Every run appends its records to one reviews table, tagged with the run id
// so repeated pastes of the same page can be compared or pruned later.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ccollicutt/revtab/pkg/parser"
)

const schema = `
CREATE TABLE IF NOT EXISTS reviews (
	run_id      TEXT    NOT NULL,
	layout      TEXT    NOT NULL,
	position    INTEGER NOT NULL,
	author      TEXT    NOT NULL,
	review_date TEXT    NOT NULL,
	body        TEXT    NOT NULL,
	PRIMARY KEY (run_id, position)
);
CREATE INDEX IF NOT EXISTS reviews_author_date ON reviews (author, review_date);
`

// Store is a SQLite-backed review table.
type Store struct {
	db *sql.DB
}

// Run is one parse run to persist.
type Run struct {
	ID      string
	Layout  parser.Layout
	Records []parser.Record
}

// Open opens (creating if needed) the SQLite database at dsn and ensures
// the reviews table exists. dsn is passed to database/sql unchanged, so
// both "reviews.db" and "file:reviews.db?cache=shared" work.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("sqlite: DSN must not be empty")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts the run's records in a single transaction and returns the
// number of rows written. Position is the record's zero-based index.
func (s *Store) Save(ctx context.Context, run Run) (int64, error) {
	if run.ID == "" {
		return 0, errors.New("sqlite: save: run id must not be empty")
	}
	if len(run.Records) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: begin tx: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO reviews (run_id, layout, position, author, review_date, body) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for i, rec := range run.Records {
		if _, err := stmt.ExecContext(ctx, run.ID, string(run.Layout), i, rec.Author, rec.Date, rec.Body); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("sqlite: insert record %d: %w", i, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sqlite: commit: %w", err)
	}
	return inserted, nil
}

// Records returns the records saved under runID in their original order.
func (s *Store) Records(ctx context.Context, runID string) ([]parser.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT author, review_date, body FROM reviews WHERE run_id = ? ORDER BY position", runID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query: %w", err)
	}
	defer rows.Close()

	var records []parser.Record
	for rows.Next() {
		var rec parser.Record
		if err := rows.Scan(&rec.Author, &rec.Date, &rec.Body); err != nil {
			return nil, fmt.Errorf("sqlite: scan: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Runs returns the distinct run ids in the database, oldest insert first.
func (s *Store) Runs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT run_id FROM reviews GROUP BY run_id ORDER BY MIN(rowid)")
	if err != nil {
		return nil, fmt.Errorf("sqlite: query: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("sqlite: scan: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

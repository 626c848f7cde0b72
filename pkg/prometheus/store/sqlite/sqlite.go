// Package sqlite implements store.Store on a SQLite database.
package sqlite

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"

	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/knn"
	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite knowledge base with WAL mode enabled, creating the
// schema if needed.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS facts (
	tag TEXT PRIMARY KEY,
	confidence REAL NOT NULL DEFAULT 1.0
);

CREATE TABLE IF NOT EXISTS rules (
	tag TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS nodes (
	input TEXT PRIMARY KEY,
	threshold INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS node_outputs (
	input TEXT NOT NULL,
	tag TEXT NOT NULL,
	weight REAL NOT NULL,
	UNIQUE(input, tag),
	FOREIGN KEY(input) REFERENCES nodes(input) ON DELETE CASCADE
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertFact inserts or updates a fact record.
func (s *sqliteStore) UpsertFact(ctx context.Context, f store.FactRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO facts (tag, confidence) VALUES (?, ?)
		ON CONFLICT(tag) DO UPDATE SET confidence=excluded.confidence`,
		f.Tag, f.Confidence)
	return err
}

// ListFacts returns every stored fact, ordered by tag.
func (s *sqliteStore) ListFacts(ctx context.Context) ([]store.FactRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT tag, confidence FROM facts ORDER BY tag`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.FactRecord
	for rows.Next() {
		var f store.FactRecord
		if err := rows.Scan(&f.Tag, &f.Confidence); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// DeleteFact removes a fact by tag.
func (s *sqliteStore) DeleteFact(ctx context.Context, tag string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM facts WHERE tag = ?`, tag)
	return err
}

// UpsertRule inserts a rule string.
func (s *sqliteStore) UpsertRule(ctx context.Context, tag string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rules (tag) VALUES (?)
		ON CONFLICT(tag) DO NOTHING`, tag)
	return err
}

// ListRules returns every stored rule string, ordered.
func (s *sqliteStore) ListRules(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT tag FROM rules ORDER BY tag`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		out = append(out, tag)
	}
	return out, rows.Err()
}

// UpsertNode replaces a node record and its outputs atomically.
func (s *sqliteStore) UpsertNode(ctx context.Context, rec knn.NodeRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO nodes (input, threshold) VALUES (?, ?)
		ON CONFLICT(input) DO UPDATE SET threshold=excluded.threshold`,
		rec.Input, rec.Threshold); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM node_outputs WHERE input = ?`, rec.Input); err != nil {
		return err
	}
	for _, out := range rec.Outputs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO node_outputs (input, tag, weight) VALUES (?, ?, ?)`,
			rec.Input, out.Tag, out.Weight); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListNodes returns every node record with its outputs, ordered by input tag.
func (s *sqliteStore) ListNodes(ctx context.Context) ([]knn.NodeRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT input, threshold FROM nodes ORDER BY input`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []knn.NodeRecord
	for rows.Next() {
		var rec knn.NodeRecord
		if err := rows.Scan(&rec.Input, &rec.Threshold); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		outputs, err := s.nodeOutputs(ctx, out[i].Input)
		if err != nil {
			return nil, err
		}
		out[i].Outputs = outputs
	}
	return out, nil
}

func (s *sqliteStore) nodeOutputs(ctx context.Context, input string) ([]knn.WeightedTag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT tag, weight FROM node_outputs WHERE input = ? ORDER BY tag`, input)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []knn.WeightedTag
	for rows.Next() {
		var wt knn.WeightedTag
		if err := rows.Scan(&wt.Tag, &wt.Weight); err != nil {
			return nil, err
		}
		out = append(out, wt)
	}
	return out, rows.Err()
}

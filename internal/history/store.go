// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite ledger of generated documents so past runs
// can be listed and exported.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/autoblog/pkg/types"
)

const defaultLimit = 20

// Store manages the history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and creates the schema if it
// does not exist.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS articles (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			path TEXT NOT NULL,
			title TEXT NOT NULL,
			type TEXT NOT NULL,
			topic TEXT,
			category TEXT,
			tags TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_run_id ON articles(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_created_at ON articles(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts one entry. Regenerating a path adds a new row; the ledger
// is append-only.
func (s *Store) Record(ctx context.Context, e types.HistoryEntry) error {
	tagsJSON, err := json.Marshal(e.Tags)
	if err != nil {
		return fmt.Errorf("encoding tags: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO articles (run_id, path, title, type, topic, category, tags, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Path, e.Title, string(e.Type), e.Topic, e.Category,
		string(tagsJSON), e.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting %s: %w", e.Path, err)
	}
	return nil
}

// Recent returns up to limit entries, newest first. A non-positive limit
// uses the default of 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]types.HistoryEntry, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	return s.query(ctx,
		`SELECT run_id, path, title, type, topic, category, tags, created_at
		 FROM articles ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
}

// ByRun returns every entry of one run in insertion order.
func (s *Store) ByRun(ctx context.Context, runID string) ([]types.HistoryEntry, error) {
	return s.query(ctx,
		`SELECT run_id, path, title, type, topic, category, tags, created_at
		 FROM articles WHERE run_id = ? ORDER BY rowid`, runID)
}

// All returns every entry in insertion order.
func (s *Store) All(ctx context.Context) ([]types.HistoryEntry, error) {
	return s.query(ctx,
		`SELECT run_id, path, title, type, topic, category, tags, created_at
		 FROM articles ORDER BY rowid`)
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]types.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []types.HistoryEntry
	for rows.Next() {
		var e types.HistoryEntry
		var typ, created string
		var topic, category, tags sql.NullString
		if err := rows.Scan(&e.RunID, &e.Path, &e.Title, &typ, &topic, &category, &tags, &created); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		e.Type = types.ArticleType(typ)
		e.Topic = topic.String
		e.Category = category.String
		if tags.Valid && tags.String != "" {
			if err := json.Unmarshal([]byte(tags.String), &e.Tags); err != nil {
				return nil, fmt.Errorf("decoding tags for %s: %w", e.Path, err)
			}
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("parsing timestamp for %s: %w", e.Path, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Export writes every entry to path as a YAML list.
func (s *Store) Export(ctx context.Context, path string) (int, error) {
	entries, err := s.All(ctx)
	if err != nil {
		return 0, err
	}
	if entries == nil {
		entries = []types.HistoryEntry{}
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return 0, fmt.Errorf("marshaling YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	return len(entries), nil
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// DefaultMaxEntries bounds the history list.
const DefaultMaxEntries = 50

const schema = `
CREATE TABLE IF NOT EXISTS history (
	id      TEXT PRIMARY KEY,
	command TEXT NOT NULL,
	serial  TEXT NOT NULL DEFAULT '',
	ok      INTEGER NOT NULL DEFAULT 0,
	output  TEXT NOT NULL DEFAULT '',
	sent_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_history_sent_at ON history(sent_at DESC);
`

// Entry is one recorded send attempt.
type Entry struct {
	ID      string
	Command string
	Serial  string
	OK      bool
	Output  string
	SentAt  time.Time
}

// Store is the SQLite-backed history store.
type Store struct {
	db         *sql.DB
	maxEntries int
}

// Open opens (and if needed creates) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	// Single writer; the TUI and CLI never share a live handle
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history schema: %w", err)
	}

	return &Store{db: db, maxEntries: DefaultMaxEntries}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SetMaxEntries overrides the prune limit. Values below 1 keep the default.
func (s *Store) SetMaxEntries(n int) {
	if n >= 1 {
		s.maxEntries = n
	}
}

// Record stores a send attempt. An earlier entry with the same command
// string is replaced, so the list stays deduplicated with the newest attempt
// on top. The store is pruned to the max entry count afterwards.
func (s *Store) Record(e Entry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.SentAt.IsZero() {
		e.SentAt = time.Now()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin history tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM history WHERE command = ?`, e.Command); err != nil {
		return fmt.Errorf("dedupe history: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO history (id, command, serial, ok, output, sent_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Command, e.Serial, boolToInt(e.OK), e.Output, e.SentAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}

	// Prune the oldest rows beyond the cap
	_, err = tx.Exec(
		`DELETE FROM history WHERE id NOT IN (SELECT id FROM history ORDER BY sent_at DESC LIMIT ?)`,
		s.maxEntries,
	)
	if err != nil {
		return fmt.Errorf("prune history: %w", err)
	}

	return tx.Commit()
}

// Recent returns up to limit entries, newest first. limit <= 0 returns
// everything up to the store cap.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 || limit > s.maxEntries {
		limit = s.maxEntries
	}

	rows, err := s.db.Query(
		`SELECT id, command, serial, ok, output, sent_at FROM history ORDER BY sent_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ok int
		var sentAt int64
		if err := rows.Scan(&e.ID, &e.Command, &e.Serial, &ok, &e.Output, &sentAt); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		e.OK = ok != 0
		e.SentAt = time.Unix(0, sentAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Len returns the number of stored entries.
func (s *Store) Len() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM history`).Scan(&n)
	return n, err
}

// Clear deletes all history entries.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM history`)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

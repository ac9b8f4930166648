// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger records completed conversions in SQLite so unchanged
// sources can be skipped on later runs. A source is unchanged when the
// BLAKE3 hash of its content and rendering settings matches the hash
// recorded for the same destination.
package ledger

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/zeebo/blake3"
)

// Entry is one recorded conversion.
type Entry struct {
	Dest        string    `json:"dest" yaml:"dest"`
	Source      string    `json:"source" yaml:"source"`
	SourceHash  string    `json:"source_hash" yaml:"source_hash"`
	Blocks      int       `json:"blocks" yaml:"blocks"`
	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`
}

// Ledger wraps the conversion history database.
type Ledger struct {
	db *sql.DB
}

// Open opens or creates the ledger database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Ledger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}

	l := &Ledger{db: db}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return l, nil
}

// Close releases the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) createSchema() error {
	_, err := l.db.Exec(`CREATE TABLE IF NOT EXISTS conversions (
		dest TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		source_hash TEXT NOT NULL,
		blocks INTEGER NOT NULL,
		converted_at TEXT NOT NULL
	)`)
	return err
}

// HashFile returns the hex BLAKE3-256 digest of the file at path.
func HashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// HashSource returns the hex BLAKE3-256 digest of the file at path followed
// by renderKey, so the same source rendered with different settings hashes
// differently.
func HashSource(path, renderKey string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	h := blake3.New()
	h.Write(data)
	h.Write([]byte{0})
	h.Write([]byte(renderKey))
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Unchanged reports whether dest was last produced from a source with the
// given hash. A destination with no record is not unchanged.
func (l *Ledger) Unchanged(ctx context.Context, dest, hash string) (bool, error) {
	var recorded string
	err := l.db.QueryRowContext(ctx,
		`SELECT source_hash FROM conversions WHERE dest = ?`, dest,
	).Scan(&recorded)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying ledger for %s: %w", dest, err)
	}
	return recorded == hash, nil
}

// Record inserts or replaces the entry for e.Dest. A zero ConvertedAt is
// set to the current time.
func (l *Ledger) Record(ctx context.Context, e Entry) error {
	if e.ConvertedAt.IsZero() {
		e.ConvertedAt = time.Now().UTC()
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO conversions (dest, source, source_hash, blocks, converted_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(dest) DO UPDATE SET
			source = excluded.source,
			source_hash = excluded.source_hash,
			blocks = excluded.blocks,
			converted_at = excluded.converted_at`,
		e.Dest, e.Source, e.SourceHash, e.Blocks, e.ConvertedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording conversion of %s: %w", e.Dest, err)
	}
	return nil
}

// History returns all recorded conversions, most recent first.
func (l *Ledger) History(ctx context.Context) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT dest, source, source_hash, blocks, converted_at
		FROM conversions ORDER BY converted_at DESC, dest`)
	if err != nil {
		return nil, fmt.Errorf("querying ledger history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&e.Dest, &e.Source, &e.SourceHash, &e.Blocks, &ts); err != nil {
			return nil, fmt.Errorf("scanning ledger row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			e.ConvertedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Package modelcache persists trained character models in a SQLite
// database so repeated runs over an unchanged corpus skip training.
// Entries are keyed by model role and corpus content hash; a stale or
// unreadable entry is treated as a cache miss, never an error.
package modelcache

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/lexicraft/namesmith/pkg/namesmith/markov"
)

// Store is a SQLite-backed model cache.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the cache database with WAL mode
// enabled.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS models (
	id TEXT PRIMARY KEY,
	role TEXT NOT NULL,
	corpus_hash TEXT NOT NULL,
	payload BLOB NOT NULL,
	created_at TEXT NOT NULL,
	UNIQUE(role, corpus_hash)
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Get looks up a cached model for the role and corpus hash. A missing,
// truncated, or undecodable entry reports a miss; the caller retrains
// and overwrites it via Put.
func (s *Store) Get(ctx context.Context, role, corpusHash string) (*markov.Model, bool) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM models WHERE role = ? AND corpus_hash = ?",
		role, corpusHash,
	).Scan(&payload)
	if err != nil {
		return nil, false
	}

	model, err := markov.Decode(payload)
	if err != nil {
		return nil, false
	}
	return model, true
}

// Put stores a trained model, replacing any previous entry for the
// same role and corpus hash.
func (s *Store) Put(ctx context.Context, role, corpusHash string, model *markov.Model) error {
	payload, err := model.Encode()
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}

	now := time.Now().UTC()
	entropy := rand.New(rand.NewSource(now.UnixNano()))
	id := ulid.MustNew(ulid.Timestamp(now), entropy).String()

	_, err = s.db.ExecContext(ctx, `
INSERT INTO models (id, role, corpus_hash, payload, created_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(role, corpus_hash) DO UPDATE SET
	payload = excluded.payload,
	created_at = excluded.created_at`,
		id, role, corpusHash, payload, now.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("store model: %w", err)
	}
	return nil
}

// Prune removes entries for a role whose corpus hash differs from the
// current one, keeping the cache from accumulating dead generations.
func (s *Store) Prune(ctx context.Context, role, keepHash string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM models WHERE role = ? AND corpus_hash != ?",
		role, keepHash,
	)
	return err
}

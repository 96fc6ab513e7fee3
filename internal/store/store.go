// Package store wraps the single SQLite database this toolkit reads and
// writes, providing node interning, import diffing and the raw query
// access the SPARQL mapper's generated SQL runs against.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// execer is satisfied by both *sql.DB and *sql.Tx, letting schema seeding
// and node interning share code across the two.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// Store owns the single connection this toolkit keeps open for its
// lifetime. SQLite allows only one writer at a time, so the pool is capped
// at one connection even for read-only commands.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at path, applying the required
// pragmas and the Node/Quad schema. Idempotent: safe to call against an
// existing, already-provisioned database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}

	if err := seedSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("provision schema: %w", err)
	}

	return &Store{db: db}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("apply %q: %w", pragma, err)
		}
	}
	return nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying *sql.DB, for the SPARQL executor which runs
// mapper-generated SQL that Store has no reason to wrap.
func (s *Store) DB() *sql.DB { return s.db }

// BeginTx starts a transaction used to scope one import's node interning
// or its diff-apply step; the caller commits or rolls back explicitly.
func (s *Store) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return s.db.BeginTx(ctx, nil)
}

// QueryContext runs a read-only query against the store, used by export to
// read a model's quads. The SPARQL query executor runs the mapper's
// generated SQL through DB instead.
func (s *Store) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, query, args...)
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/loamworks/realmctl/internal/admin/store"

	_ "modernc.org/sqlite"
)

// querier is the subset of *sql.DB / *sql.Tx the repositories need, so the
// same repo code serves both transactional and non-transactional access.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
}

// Open opens (creating if absent) the database file at path and returns a
// Store handle. The parent directory is created as needed. Callers must run
// ApplyMigrations before using the repositories.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Tenants() store.Tenants   { return &tenantsRepo{q: s.db, withTx: s.withTx} }
func (s *Store) Defaults() store.Defaults { return &defaultsRepo{q: s.db} }
func (s *Store) Tokens() store.Tokens     { return &tokensRepo{q: s.db} }
func (s *Store) Settings() store.Settings { return &settingsRepo{q: s.db} }

// WithTx executes fn within a transaction, automatically handling
// commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return s.withTx(ctx, func(q querier) error {
		return fn(&txStore{q: q})
	})
}

func (s *Store) withTx(ctx context.Context, fn func(q querier) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	// Safe to call even after commit.
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// txStore exposes the repositories over an open transaction. Nested
// transactions collapse into the outer one.
type txStore struct {
	q querier
}

func (t *txStore) Tenants() store.Tenants {
	return &tenantsRepo{q: t.q, withTx: func(_ context.Context, fn func(q querier) error) error {
		return fn(t.q)
	}}
}
func (t *txStore) Defaults() store.Defaults { return &defaultsRepo{q: t.q} }
func (t *txStore) Tokens() store.Tokens     { return &tokensRepo{q: t.q} }
func (t *txStore) Settings() store.Settings { return &settingsRepo{q: t.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

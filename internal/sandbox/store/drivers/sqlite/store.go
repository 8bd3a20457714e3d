package sqlite

import (
	"context"
	"database/sql"

	"github.com/lumenpay/sandbox/internal/sandbox/store"
	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the sqlite database at dsn. Use ":memory:" for
// throwaway test stores.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// A single connection serializes writers (sqlite has one writer anyway)
	// and keeps ":memory:" databases from being silently duplicated by the
	// connection pool.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Sessions() store.Sessions { return &sessionsRepo{q: s.db} }

// WithTx executes fn within a transaction, handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	tx := &storeTx{tx: sqlTx}

	// Rollback is safe to call after a successful commit.
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

type storeTx struct {
	tx *sql.Tx
}

func (t *storeTx) Sessions() store.Sessions { return &sessionsRepo{q: t.tx} }
func (t *storeTx) Commit() error            { return t.tx.Commit() }
func (t *storeTx) Rollback() error          { return t.tx.Rollback() }

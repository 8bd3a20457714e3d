// Package store defines the data access boundary for the sandbox. The only
// durable state in this design is the session (spec'd as a local key-value
// store); everything else is in-memory by construction.
package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("store: not found")

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. Sub-repositories keep concerns tidy and testable.
type Store interface {
	Sessions() Sessions

	ApplyMigrations() error

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Used where the
	// session's token and user record must be written both-or-neither.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped Store.
type Tx interface {
	Sessions() Sessions
	Commit() error
	Rollback() error
}

// Sessions is a small key-value repository holding the persisted session
// (opaque token + serialized user record under fixed keys).
type Sessions interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Put inserts or replaces the value under key.
	Put(ctx context.Context, key, value string) error

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}

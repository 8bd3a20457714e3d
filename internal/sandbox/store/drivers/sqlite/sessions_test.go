package sqlite_test

import (
	"context"
	"testing"

	"github.com/lumenpay/sandbox/internal/sandbox/store"
	"github.com/lumenpay/sandbox/internal/sandbox/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func TestSessionsRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	_, err := st.Sessions().Get(ctx, "auth_token")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, st.Sessions().Put(ctx, "auth_token", "tok-1"))

	got, err := st.Sessions().Get(ctx, "auth_token")
	require.NoError(t, err)
	require.Equal(t, "tok-1", got)

	// Put is an upsert.
	require.NoError(t, st.Sessions().Put(ctx, "auth_token", "tok-2"))
	got, err = st.Sessions().Get(ctx, "auth_token")
	require.NoError(t, err)
	require.Equal(t, "tok-2", got)
}

func TestSessionsDelete(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	require.NoError(t, st.Sessions().Put(ctx, "auth_token", "tok"))
	require.NoError(t, st.Sessions().Put(ctx, "auth_user", `{"id":"u1"}`))

	require.NoError(t, st.Sessions().Delete(ctx, "auth_token", "auth_user"))

	_, err := st.Sessions().Get(ctx, "auth_token")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.Sessions().Get(ctx, "auth_user")
	require.ErrorIs(t, err, store.ErrNotFound)

	// Deleting missing keys is not an error.
	require.NoError(t, st.Sessions().Delete(ctx, "auth_token"))
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	sentinel := store.ErrNotFound
	err := st.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Sessions().Put(ctx, "auth_token", "tok"))
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	_, err = st.Sessions().Get(ctx, "auth_token")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxCommits(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Sessions().Put(ctx, "auth_token", "tok"); err != nil {
			return err
		}
		return tx.Sessions().Put(ctx, "auth_user", `{"id":"u1"}`)
	})
	require.NoError(t, err)

	got, err := st.Sessions().Get(ctx, "auth_token")
	require.NoError(t, err)
	require.Equal(t, "tok", got)
}

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFixedWindowAdmitsUpToLimit(t *testing.T) {
	l := NewFixedWindowLimiter(10, time.Minute)

	for i := range 10 {
		require.True(t, l.Allow(), "call %d should be admitted", i+1)
	}
	require.False(t, l.Allow(), "11th call inside the window must be rejected")
	require.False(t, l.Allow(), "subsequent calls stay rejected")
}

func TestFixedWindowResets(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	l := NewFixedWindowLimiter(10, time.Minute)
	l.now = func() time.Time { return now }

	for range 10 {
		require.True(t, l.Allow())
	}
	require.False(t, l.Allow())

	// First call after the window elapses starts a fresh window.
	now = now.Add(61 * time.Second)
	require.True(t, l.Allow())

	// And the fresh window has a fresh budget.
	for range 9 {
		require.True(t, l.Allow())
	}
	require.False(t, l.Allow())
}

func TestFixedWindowDefaults(t *testing.T) {
	l := NewFixedWindowLimiter(0, 0)
	require.Equal(t, DefaultRateLimit, l.limit)
	require.Equal(t, DefaultRateWindow, l.window)
}

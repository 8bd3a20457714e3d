// Package service implements the sandbox's mock business logic: the
// auth/session state machine, the account ledger and transfer engine, the
// append-only transaction log and the invoice generator. All state is
// in-memory except the session, which is persisted through the store.
package service

import (
	"context"
	"math"
	"time"
)

// round2 rounds a monetary value to 2 decimal places. All balances, transfer
// amounts and invoice lines pass through here.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// simulateLatency blocks for the configured fake backend delay. Cancelling
// the context only shortens the wait; once the operation proper starts it
// runs to completion.
func simulateLatency(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/lumenpay/sandbox/internal/sandbox/domain"
	"github.com/stretchr/testify/require"
)

func openLimiter() *FixedWindowLimiter {
	return NewFixedWindowLimiter(1_000_000, time.Minute)
}

func newTestLedger() (*LedgerService, *TransactionService) {
	log := NewTransactionService(openLimiter(), nil)
	return NewLedgerService(log, openLimiter(), SeedAccounts()), log
}

func totalBalance(t *testing.T, s *LedgerService) float64 {
	t.Helper()
	accounts, err := s.GetBalances(context.Background())
	require.NoError(t, err)
	var sum float64
	for _, a := range accounts {
		sum += a.Balance
	}
	return sum
}

func balanceOf(t *testing.T, s *LedgerService, id string) float64 {
	t.Helper()
	accounts, err := s.GetBalances(context.Background())
	require.NoError(t, err)
	for _, a := range accounts {
		if a.ID == id {
			return a.Balance
		}
	}
	t.Fatalf("account %s not found", id)
	return 0
}

func TestTransferScenario(t *testing.T) {
	ctx := context.Background()
	ledger, log := newTestLedger()

	res, err := ledger.Transfer(ctx, "acc-checking", "acc-savings", 100)
	require.NoError(t, err)
	require.NotEmpty(t, res.Reference)
	require.Contains(t, res.Message, "100.00")

	require.InDelta(t, 5145.75, balanceOf(t, ledger, "acc-checking"), 0.001)
	require.InDelta(t, 12835.40, balanceOf(t, ledger, "acc-savings"), 0.001)
	require.Equal(t, 2, log.Len())
}

func TestTransferAppendsPairedLegs(t *testing.T) {
	ctx := context.Background()
	ledger, log := newTestLedger()

	res, err := ledger.Transfer(ctx, "acc-checking", "acc-savings", 250.50)
	require.NoError(t, err)

	page, err := log.List(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Data, 2)

	debit, credit := page.Data[0], page.Data[1]
	require.Equal(t, domain.TxDebit, debit.Type)
	require.Equal(t, domain.TxCredit, credit.Type)
	require.Equal(t, debit.Amount, credit.Amount)
	require.True(t, debit.Date.Equal(credit.Date))
	require.Equal(t, res.Reference, debit.CorrelationID)
	require.Equal(t, res.Reference, credit.CorrelationID)
	require.Equal(t, "Transfer to Savings", debit.Description)
	require.Equal(t, "Transfer from Checking", credit.Description)
}

func TestTransferInsufficientFunds(t *testing.T) {
	ctx := context.Background()
	ledger, log := newTestLedger()
	before := totalBalance(t, ledger)

	_, err := ledger.Transfer(ctx, "acc-checking", "acc-savings", 10_000)
	require.ErrorIs(t, err, ErrInsufficientFunds)

	// No balance or log mutation on failure.
	require.InDelta(t, 5245.75, balanceOf(t, ledger, "acc-checking"), 0.001)
	require.InDelta(t, before, totalBalance(t, ledger), 0.001)
	require.Equal(t, 0, log.Len())
}

func TestTransferValidation(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger()

	t.Run("unknown accounts", func(t *testing.T) {
		_, err := ledger.Transfer(ctx, "acc-nope", "acc-savings", 10)
		require.ErrorIs(t, err, ErrAccountNotFound)

		_, err = ledger.Transfer(ctx, "acc-checking", "acc-nope", 10)
		require.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("same account", func(t *testing.T) {
		_, err := ledger.Transfer(ctx, "acc-checking", "acc-checking", 10)
		require.ErrorIs(t, err, ErrSameAccount)
	})

	t.Run("non-positive amounts", func(t *testing.T) {
		_, err := ledger.Transfer(ctx, "acc-checking", "acc-savings", 0)
		require.ErrorIs(t, err, ErrInvalidAmount)

		_, err = ledger.Transfer(ctx, "acc-checking", "acc-savings", -5)
		require.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestTransferConservesTotalBalance(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger()
	before := totalBalance(t, ledger)

	ids := []string{"acc-checking", "acc-savings", "acc-investment"}
	for range 200 {
		from := ids[rand.IntN(len(ids))]
		to := ids[rand.IntN(len(ids))]
		amount := round2(rand.Float64() * 500)

		_, err := ledger.Transfer(ctx, from, to, amount)
		if err != nil {
			isExpected := errors.Is(err, ErrSameAccount) ||
				errors.Is(err, ErrInvalidAmount) ||
				errors.Is(err, ErrInsufficientFunds)
			require.True(t, isExpected, "unexpected transfer error: %v", err)
		}
	}

	require.InDelta(t, before, totalBalance(t, ledger), 0.01)

	accounts, err := ledger.GetBalances(ctx)
	require.NoError(t, err)
	for _, a := range accounts {
		require.GreaterOrEqual(t, a.Balance, 0.0, "balance of %s must never go negative", a.ID)
	}
}

func TestConcurrentTransfersConserveTotal(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger()
	before := totalBalance(t, ledger)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				_, _ = ledger.Transfer(ctx, "acc-checking", "acc-savings", 1.25)
				_, _ = ledger.Transfer(ctx, "acc-savings", "acc-checking", 1.25)
			}
		}()
	}
	wg.Wait()

	require.InDelta(t, before, totalBalance(t, ledger), 0.01)
}

func TestGetBalancesReturnsSnapshot(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger()

	accounts, err := ledger.GetBalances(ctx)
	require.NoError(t, err)
	accounts[0].Balance = -999

	fresh, err := ledger.GetBalances(ctx)
	require.NoError(t, err)
	require.InDelta(t, 5245.75, fresh[0].Balance, 0.001)
}

func TestLedgerOperationsAreRateLimited(t *testing.T) {
	ctx := context.Background()
	limiter := NewFixedWindowLimiter(10, time.Minute)
	log := NewTransactionService(limiter, nil)
	ledger := NewLedgerService(log, limiter, SeedAccounts())

	// The limiter is shared across all mock-service operations, so ten reads
	// exhaust the window for the transfer as well.
	var err error
	for range 10 {
		_, err = ledger.GetBalances(ctx)
		require.NoError(t, err)
	}
	_, err = ledger.Transfer(ctx, "acc-checking", "acc-savings", 1)
	require.ErrorIs(t, err, ErrRateLimited)
}

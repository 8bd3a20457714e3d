package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateInvoiceShape(t *testing.T) {
	ctx := context.Background()
	svc := NewInvoiceService(openLimiter())

	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)

	inv, err := svc.Generate(ctx, start, end)
	require.NoError(t, err)
	require.NotEmpty(t, inv.ID)
	require.Equal(t, start, inv.PeriodStart)
	require.Equal(t, end, inv.PeriodEnd)
	require.Equal(t, "pending", inv.Status)
	require.Len(t, inv.Items, 4)

	// Line amounts are quantity × unit price rounded to cents, and the total
	// is their sum.
	var sum float64
	for _, it := range inv.Items {
		require.InDelta(t, round2(float64(it.Quantity)*it.UnitPrice), it.Amount, 0.001)
		sum += it.Amount
	}
	require.InDelta(t, round2(sum), inv.Total, 0.001)
}

func TestGenerateInvoiceQuantityBounds(t *testing.T) {
	ctx := context.Background()
	svc := NewInvoiceService(openLimiter())
	start := time.Now().AddDate(0, -1, 0)
	end := time.Now()

	for range 50 {
		inv, err := svc.Generate(ctx, start, end)
		require.NoError(t, err)

		api, storage, support, premium := inv.Items[0], inv.Items[1], inv.Items[2], inv.Items[3]

		require.GreaterOrEqual(t, api.Quantity, 100)
		require.LessOrEqual(t, api.Quantity, 599)
		require.InDelta(t, 0.01, api.UnitPrice, 0.0001)

		require.GreaterOrEqual(t, storage.Quantity, 5)
		require.LessOrEqual(t, storage.Quantity, 24)
		require.InDelta(t, 0.50, storage.UnitPrice, 0.0001)

		require.GreaterOrEqual(t, support.Quantity, 0)
		require.LessOrEqual(t, support.Quantity, 4)
		require.InDelta(t, 15.00, support.UnitPrice, 0.0001)

		require.Equal(t, 1, premium.Quantity)
		require.InDelta(t, 29.99, premium.UnitPrice, 0.0001)
	}
}

func TestGenerateInvoiceDueDateIgnoresPeriod(t *testing.T) {
	ctx := context.Background()
	svc := NewInvoiceService(openLimiter())

	generatedAt := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return generatedAt }

	// Period from last year; due date still hangs off generation time.
	inv, err := svc.Generate(ctx,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	require.Equal(t, generatedAt, inv.Date)
	require.Equal(t, generatedAt.AddDate(0, 0, 15), inv.DueDate)
}

func TestGenerateInvoiceInvalidRange(t *testing.T) {
	ctx := context.Background()
	svc := NewInvoiceService(openLimiter())

	end := time.Now()
	start := end.Add(24 * time.Hour)

	_, err := svc.Generate(ctx, start, end)
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestGenerateInvoiceRateLimited(t *testing.T) {
	ctx := context.Background()
	svc := NewInvoiceService(NewFixedWindowLimiter(1, time.Minute))

	_, err := svc.Generate(ctx, time.Now().Add(-time.Hour), time.Now())
	require.NoError(t, err)

	_, err = svc.Generate(ctx, time.Now().Add(-time.Hour), time.Now())
	require.ErrorIs(t, err, ErrRateLimited)
}

package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/lumenpay/sandbox/internal/sandbox/domain"
	"github.com/lumenpay/sandbox/pkg/idx"
)

var ErrInvalidRange = errors.New("invalid_range")

// Invoices are due 15 days after generation, independent of the billing
// period requested. The period only seeds the displayed date range.
const invoiceDueAfter = 15 * 24 * time.Hour

// InvoiceService generates a deterministic-shape, randomized-content invoice
// per request. Nothing is persisted.
type InvoiceService struct {
	Limiter *FixedWindowLimiter
	Latency time.Duration

	now func() time.Time // overridable in tests
}

func NewInvoiceService(limiter *FixedWindowLimiter) *InvoiceService {
	return &InvoiceService{Limiter: limiter, now: time.Now}
}

// Generate builds an invoice for the given period. start must not be after
// end, otherwise ErrInvalidRange.
func (s *InvoiceService) Generate(ctx context.Context, start, end time.Time) (domain.Invoice, error) {
	if !s.Limiter.Allow() {
		return domain.Invoice{}, ErrRateLimited
	}
	simulateLatency(ctx, s.Latency)

	if start.After(end) {
		return domain.Invoice{}, ErrInvalidRange
	}

	items := []domain.InvoiceLine{
		line("API calls", 100+rand.IntN(500), 0.01),
		line("Storage (GB)", 5+rand.IntN(20), 0.50),
		line("Support requests", rand.IntN(5), 15.00),
		line("Premium access", 1, 29.99),
	}

	var total float64
	for _, it := range items {
		total += it.Amount
	}

	now := s.now().UTC()
	return domain.Invoice{
		ID:          idx.New().String(),
		Date:        now,
		DueDate:     now.Add(invoiceDueAfter),
		PeriodStart: start,
		PeriodEnd:   end,
		Items:       items,
		Total:       round2(total),
		Status:      domain.TxPending,
	}, nil
}

func line(desc string, qty int, unitPrice float64) domain.InvoiceLine {
	return domain.InvoiceLine{
		Description: desc,
		Quantity:    qty,
		UnitPrice:   unitPrice,
		Amount:      round2(float64(qty) * unitPrice),
	}
}

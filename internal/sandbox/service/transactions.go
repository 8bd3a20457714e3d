package service

import (
	"context"
	"sync"
	"time"

	"github.com/lumenpay/sandbox/internal/sandbox/domain"
)

// TransactionPage is one page of the transaction log plus the total count,
// so the UI can render pagination controls.
type TransactionPage struct {
	Data  []domain.Transaction `json:"data"`
	Total int                  `json:"total"`
}

// TransactionService owns the append-only transaction log. Ordering is fixed
// newest-first by date, ties broken by insertion order (newest insertion
// first). Filtering and search are presentation concerns applied by the UI to
// an already-fetched page; the log itself only paginates.
type TransactionService struct {
	Limiter *FixedWindowLimiter
	Latency time.Duration

	mu      sync.Mutex
	entries []domain.Transaction // newest-first
}

func NewTransactionService(limiter *FixedWindowLimiter, seed []domain.Transaction) *TransactionService {
	s := &TransactionService{Limiter: limiter}
	s.entries = append(s.entries, seed...)
	return s
}

// Append prepends entries to the log. Entries passed in one call (the two
// legs of a transfer) keep their given relative order.
func (s *TransactionService) Append(entries ...domain.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(append([]domain.Transaction{}, entries...), s.entries...)
}

// Len returns the current size of the log.
func (s *TransactionService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// List returns an offset/limit slice over the ordered log. Pages out of
// range yield an empty Data with the correct Total. Page and pageSize are
// clamped to sane minimums so a sloppy caller still gets the first page.
func (s *TransactionService) List(ctx context.Context, page, pageSize int) (TransactionPage, error) {
	if !s.Limiter.Allow() {
		return TransactionPage{}, ErrRateLimited
	}
	simulateLatency(ctx, s.Latency)

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	total := len(s.entries)
	start := (page - 1) * pageSize
	if start >= total {
		return TransactionPage{Data: []domain.Transaction{}, Total: total}, nil
	}
	end := min(start+pageSize, total)

	data := make([]domain.Transaction, end-start)
	copy(data, s.entries[start:end])
	return TransactionPage{Data: data, Total: total}, nil
}

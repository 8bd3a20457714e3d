package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lumenpay/sandbox/internal/sandbox/domain"
	"github.com/lumenpay/sandbox/pkg/idx"
	"github.com/lumenpay/sandbox/pkg/slogx"
)

var (
	ErrAccountNotFound   = errors.New("account_not_found")
	ErrSameAccount       = errors.New("same_account")
	ErrInsufficientFunds = errors.New("insufficient_funds")
	ErrInvalidAmount     = errors.New("invalid_amount")
)

// TransferResult describes a completed transfer.
type TransferResult struct {
	Reference string `json:"reference"` // correlation id shared by both log legs
	Message   string `json:"message"`
}

// LedgerService owns the fixed set of mock accounts and the transfer engine.
// A mutex serializes mutations so the conservation invariant (total balance
// across accounts never changes) holds under concurrent callers.
type LedgerService struct {
	Log     *TransactionService
	Limiter *FixedWindowLimiter
	Latency time.Duration

	mu       sync.Mutex
	accounts []domain.Account // seed order
	byID     map[string]int
}

func NewLedgerService(log *TransactionService, limiter *FixedWindowLimiter, accounts []domain.Account) *LedgerService {
	s := &LedgerService{
		Log:      log,
		Limiter:  limiter,
		accounts: append([]domain.Account{}, accounts...),
		byID:     make(map[string]int, len(accounts)),
	}
	for i, a := range s.accounts {
		s.byID[a.ID] = i
	}
	return s
}

// GetBalances returns a snapshot copy of all accounts. Callers never see
// internal references, so they cannot mutate ledger state directly.
func (s *LedgerService) GetBalances(ctx context.Context) ([]domain.Account, error) {
	if !s.Limiter.Allow() {
		return nil, ErrRateLimited
	}
	simulateLatency(ctx, s.Latency)

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Account, len(s.accounts))
	copy(out, s.accounts)
	return out, nil
}

// Transfer validates and executes a balance move between two accounts,
// appending the paired debit/credit legs to the transaction log. Both balance
// updates happen under one critical section, so a failed validation mutates
// nothing.
func (s *LedgerService) Transfer(ctx context.Context, fromID, toID string, amount float64) (TransferResult, error) {
	if !s.Limiter.Allow() {
		return TransferResult{}, ErrRateLimited
	}
	simulateLatency(ctx, s.Latency)

	if amount <= 0 {
		return TransferResult{}, ErrInvalidAmount
	}
	if fromID == toID {
		return TransferResult{}, ErrSameAccount
	}
	amount = round2(amount)

	s.mu.Lock()
	defer s.mu.Unlock()

	fromIdx, ok := s.byID[fromID]
	if !ok {
		return TransferResult{}, ErrAccountNotFound
	}
	toIdx, ok := s.byID[toID]
	if !ok {
		return TransferResult{}, ErrAccountNotFound
	}

	from := &s.accounts[fromIdx]
	to := &s.accounts[toIdx]

	if amount > from.Balance {
		return TransferResult{}, ErrInsufficientFunds
	}

	from.Balance = round2(from.Balance - amount)
	to.Balance = round2(to.Balance + amount)

	now := time.Now().UTC()
	ref := uuid.NewString()
	s.Log.Append(
		domain.Transaction{
			ID:            idx.New().String(),
			CorrelationID: ref,
			Date:          now,
			Type:          domain.TxDebit,
			Amount:        amount,
			Description:   "Transfer to " + to.Name,
			Status:        domain.TxCompleted,
			Category:      "transfer",
		},
		domain.Transaction{
			ID:            idx.New().String(),
			CorrelationID: ref,
			Date:          now,
			Type:          domain.TxCredit,
			Amount:        amount,
			Description:   "Transfer from " + from.Name,
			Status:        domain.TxCompleted,
			Category:      "transfer",
		},
	)

	slogx.FromContext(ctx).Info("transfer executed",
		"from", from.ID, "to", to.ID, "amount", amount, "ref", ref)

	return TransferResult{
		Reference: ref,
		Message:   fmt.Sprintf("Successfully transferred $%.2f from %s to %s", amount, from.Name, to.Name),
	}, nil
}

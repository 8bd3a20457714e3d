package domain

import "time"

// Transaction types and statuses.
const (
	TxDebit  = "debit"
	TxCredit = "credit"

	TxPending   = "pending"
	TxCompleted = "completed"
	TxFailed    = "failed"
)

// Transaction is an immutable entry in the append-only log. A transfer
// appends exactly two legs (one debit, one credit) sharing a CorrelationID
// and timestamp.
type Transaction struct {
	ID            string    `json:"id"`
	CorrelationID string    `json:"correlationId,omitempty"`
	Date          time.Time `json:"date"`
	Type          string    `json:"type"`
	Amount        float64   `json:"amount"`
	Description   string    `json:"description"`
	Status        string    `json:"status"`
	Category      string    `json:"category"`
}

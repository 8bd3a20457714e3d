package domain

// Account is one entry in the mock ledger. The set of accounts is fixed at
// seed time; only the Transfer engine mutates balances, and a balance never
// goes negative.
type Account struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Balance       float64 `json:"balance"`
	Currency      string  `json:"currency"`
	AccountNumber string  `json:"accountNumber"`
	RoutingNumber string  `json:"routingNumber"`
}

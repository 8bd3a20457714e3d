package domain

import "time"

// InvoiceLine is one line item on a generated invoice.
// Amount is always Quantity × UnitPrice rounded to cents.
type InvoiceLine struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Amount      float64 `json:"amount"`
}

// Invoice is a generated-per-request document; it is never persisted.
// DueDate is always 15 days after the generation date, regardless of the
// requested period.
type Invoice struct {
	ID          string        `json:"id"`
	Date        time.Time     `json:"date"`
	DueDate     time.Time     `json:"dueDate"`
	PeriodStart time.Time     `json:"periodStart"`
	PeriodEnd   time.Time     `json:"periodEnd"`
	Items       []InvoiceLine `json:"items"`
	Total       float64       `json:"total"`
	Status      string        `json:"status"`
}

package service

import (
	"time"

	"github.com/lumenpay/sandbox/internal/sandbox/domain"
	"github.com/lumenpay/sandbox/pkg/cryptox"
	"github.com/lumenpay/sandbox/pkg/idx"
)

// Demo logins for the sandbox. These are published in the dashboard's login
// screen; there is nothing to protect, the hashing just keeps the auth path
// honest.
const (
	DemoUserEmail    = "demo@lumenpay.dev"
	DemoUserPassword = "sandbox-demo"

	DemoAdminEmail    = "admin@lumenpay.dev"
	DemoAdminPassword = "sandbox-admin"
)

// SeedCredentials returns the fixed credential set, hashing the demo
// passwords at startup.
func SeedCredentials() ([]Credential, error) {
	userHash, err := cryptox.HashPassword(DemoUserPassword)
	if err != nil {
		return nil, err
	}
	adminHash, err := cryptox.HashPassword(DemoAdminPassword)
	if err != nil {
		return nil, err
	}

	return []Credential{
		{
			ID:           idx.New().String(),
			Email:        DemoUserEmail,
			Name:         "Demo User",
			Role:         domain.RoleUser,
			PasswordHash: userHash,
		},
		{
			ID:           idx.New().String(),
			Email:        DemoAdminEmail,
			Name:         "Demo Admin",
			Role:         domain.RoleAdmin,
			PasswordHash: adminHash,
		},
	}, nil
}

// SeedAccounts returns the fixed mock ledger.
func SeedAccounts() []domain.Account {
	return []domain.Account{
		{
			ID:            "acc-checking",
			Name:          "Checking",
			Balance:       5245.75,
			Currency:      "USD",
			AccountNumber: "4532781234567890",
			RoutingNumber: "021000021",
		},
		{
			ID:            "acc-savings",
			Name:          "Savings",
			Balance:       12735.40,
			Currency:      "USD",
			AccountNumber: "4532787654321098",
			RoutingNumber: "021000021",
		},
		{
			ID:            "acc-investment",
			Name:          "Investment",
			Balance:       42618.90,
			Currency:      "USD",
			AccountNumber: "4532789988776655",
			RoutingNumber: "021000021",
		},
	}
}

type seedTxSpec struct {
	daysAgo     int
	txType      string
	amount      float64
	description string
	status      string
	category    string
}

// SeedTransactions returns a page of plausible synthetic history, newest
// first, so pagination is demonstrable before any transfer happens.
func SeedTransactions() []domain.Transaction {
	specs := []seedTxSpec{
		{1, domain.TxDebit, 42.18, "Cloud hosting invoice", domain.TxCompleted, "infrastructure"},
		{2, domain.TxCredit, 2450.00, "Client payment - Acme Corp", domain.TxCompleted, "income"},
		{3, domain.TxDebit, 129.99, "SaaS subscription renewal", domain.TxCompleted, "software"},
		{5, domain.TxDebit, 18.50, "Payment gateway fees", domain.TxCompleted, "fees"},
		{6, domain.TxCredit, 1200.00, "Client payment - Globex", domain.TxPending, "income"},
		{8, domain.TxDebit, 310.75, "Office supplies", domain.TxCompleted, "operations"},
		{9, domain.TxDebit, 55.00, "Domain renewals", domain.TxFailed, "infrastructure"},
		{11, domain.TxCredit, 780.25, "Referral commission", domain.TxCompleted, "income"},
		{12, domain.TxDebit, 220.00, "Contractor payout", domain.TxCompleted, "payroll"},
		{14, domain.TxDebit, 64.30, "Analytics platform", domain.TxCompleted, "software"},
		{16, domain.TxCredit, 3100.00, "Client payment - Initech", domain.TxCompleted, "income"},
		{18, domain.TxDebit, 12.99, "Monitoring addon", domain.TxCompleted, "infrastructure"},
	}

	now := time.Now().UTC()
	out := make([]domain.Transaction, 0, len(specs))
	for _, sp := range specs {
		date := now.AddDate(0, 0, -sp.daysAgo)
		out = append(out, domain.Transaction{
			ID:          idx.NewAt(date).String(),
			Date:        date,
			Type:        sp.txType,
			Amount:      sp.amount,
			Description: sp.description,
			Status:      sp.status,
			Category:    sp.category,
		})
	}
	return out
}

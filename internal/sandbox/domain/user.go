// Package domain holds the sandbox's data model: users and sessions, ledger
// accounts, the transaction log and invoices. These are plain structs shared
// by the service and store layers.
package domain

import "time"

// Roles a sandbox user can hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// SubscriptionTier is the closed set of plans a user can subscribe to.
type SubscriptionTier string

const (
	TierBasic      SubscriptionTier = "basic"
	TierPro        SubscriptionTier = "pro"
	TierEnterprise SubscriptionTier = "enterprise"
)

// ParseTier validates a raw tier string against the known set.
func ParseTier(s string) (SubscriptionTier, bool) {
	switch SubscriptionTier(s) {
	case TierBasic, TierPro, TierEnterprise:
		return SubscriptionTier(s), true
	}
	return "", false
}

// User is the identity record for the currently authenticated session.
// Exactly one user is "current" at a time; the record is materialized at
// login, mutated by subscription updates and cleared on logout.
type User struct {
	ID           string            `json:"id"`
	Email        string            `json:"email"`
	Name         string            `json:"name"`
	Role         string            `json:"role"`
	IsSubscribed bool              `json:"isSubscribed"`
	Tier         *SubscriptionTier `json:"subscriptionTier,omitempty"`
	SubscribedTo *time.Time        `json:"subscriptionExpiresAt,omitempty"`
}

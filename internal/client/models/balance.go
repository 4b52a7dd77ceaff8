// Package models defines the client-side view of the research service's
// domain: credit balances, reports, history records, and payment sessions.
package models

import "fmt"

// Tier is the subscription level reported by the service. It influences
// presentation only; gating is driven by the credit amount.
type Tier string

const (
	TierFree Tier = "Free"
	TierPro  Tier = "Pro"
)

// ParseTier normalises a server-supplied tier string. Unknown values fall
// back to Free so the client can always render something sensible.
func ParseTier(s string) Tier {
	switch Tier(s) {
	case TierPro:
		return TierPro
	default:
		return TierFree
	}
}

// Balance is the locally cached credit balance. A nil Amount means the
// balance has not been loaded yet, which is distinct from zero (exhausted).
type Balance struct {
	Amount *int
	Tier   Tier
}

// Known reports whether the balance has been loaded.
func (b Balance) Known() bool {
	return b.Amount != nil
}

// Exhausted reports whether the balance is known to be used up. An unknown
// balance is never treated as exhausted; the server remains the authority.
func (b Balance) Exhausted() bool {
	return b.Amount != nil && *b.Amount <= 0
}

// String renders the balance for the prompt, e.g. "(3 credits, Free)".
func (b Balance) String() string {
	if !b.Known() {
		return "(balance unknown)"
	}
	return fmt.Sprintf("(%d credits, %s)", *b.Amount, b.Tier)
}

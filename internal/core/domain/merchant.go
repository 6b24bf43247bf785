package domain

import "time"

// Merchant is a registered principal entitled to receive and withdraw
// ledger balances. Registration is one-shot per identity: once an
// identity has a payout wallet on record it can never register again,
// even after suspension.
type Merchant struct {
	Address      Address   `json:"address"`
	PayoutWallet Address   `json:"payout_wallet"` // never zero once set
	Active       bool      `json:"active"`
	RegisteredAt time.Time `json:"registered_at"`
	// TotalRevenue is the sum of all payment amounts ever credited,
	// in token base units, independent of withdrawals. Monotonically
	// non-decreasing.
	TotalRevenue uint64 `json:"total_revenue"`
}

// IsRegistered reports whether the merchant record exists on the ledger.
func (m *Merchant) IsRegistered() bool {
	return m != nil && !m.PayoutWallet.IsZero()
}

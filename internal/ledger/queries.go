package ledger

import (
	"stablecoin-payment-ledger/internal/core/domain"
	"stablecoin-payment-ledger/internal/core/ports"
)

// Read-only surface. Queries never take the per-call lock and never
// touch the transfer interface; they observe committed state only.

// GetMerchant returns a copy of the merchant record, if registered.
func (e *Engine) GetMerchant(merchant domain.Address) (*domain.Merchant, bool) {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()

	m := e.merchants[merchant]
	if !m.IsRegistered() {
		return nil, false
	}
	out := *m
	return &out, true
}

// GetMerchantBalance returns the withdrawable balance for a
// (merchant, token) pair, zero when none exists.
func (e *Engine) GetMerchantBalance(merchant, token domain.Address) uint64 {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()
	return e.balances[merchant][token]
}

// GetUserTransactions returns the payer's full transaction sequence in
// insertion order.
func (e *Engine) GetUserTransactions(payer domain.Address) []domain.Transaction {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()
	return copyTransactions(e.byPayer[payer])
}

// GetMerchantTransactions returns the merchant's full transaction
// sequence in insertion order.
func (e *Engine) GetMerchantTransactions(merchant domain.Address) []domain.Transaction {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()
	return copyTransactions(e.byMerchant[merchant])
}

// GetAllTransactions returns the half-open slice [start, end) of the
// global sequence. end clamps to the sequence length; start at or past end
// yields an empty sequence.
func (e *Engine) GetAllTransactions(start, end int) []domain.Transaction {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()

	if end > len(e.global) {
		end = len(e.global)
	}
	if start < 0 {
		start = 0
	}
	if start >= end {
		return []domain.Transaction{}
	}
	return copyTransactions(e.global[start:end])
}

// GetAllMerchants returns every registered merchant identity in
// registration order.
func (e *Engine) GetAllMerchants() []domain.Address {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()
	return append([]domain.Address(nil), e.merchantList...)
}

// IsTokenAllowed reports whether a token is currently allow-listed.
func (e *Engine) IsTokenAllowed(token domain.Address) bool {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()
	return e.allowed[token]
}

// Stats returns the derived counters: they always equal the lengths of
// the registrant list and the global transaction sequence.
func (e *Engine) Stats() ports.LedgerStats {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()
	return ports.LedgerStats{
		TotalMerchants:    len(e.merchantList),
		TotalTransactions: len(e.global),
	}
}

// Owner returns the current owning principal.
func (e *Engine) Owner() domain.Address {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()
	return e.owner
}

// IsPaused reports the pause flag.
func (e *Engine) IsPaused() bool {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()
	return e.paused
}

func copyTransactions(txns []*domain.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, len(txns))
	for i, txn := range txns {
		out[i] = *txn
	}
	return out
}

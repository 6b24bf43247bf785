package domain

import (
	"time"

	"github.com/google/uuid"
)

// MinPaymentAmount is the smallest accepted payment, in token base
// units. Calibrated for 6-decimal stablecoins: 1_000_000 base units is
// one whole unit. Allow-listing a token with a different decimal
// precision changes the effective minimum in real-world terms.
const MinPaymentAmount uint64 = 1_000_000

// Transaction is an immutable record of one completed payment. It is
// created once and inserted simultaneously into the payer's, the
// merchant's and the global sequence; it is never mutated or deleted.
type Transaction struct {
	ID        uuid.UUID `json:"id"`
	Payer     Address   `json:"payer"`
	Merchant  Address   `json:"merchant"`
	Token     Address   `json:"token"`
	Amount    uint64    `json:"amount"` // token base units
	Metadata  string    `json:"metadata,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

package ports

import (
	"context"
	"time"

	"stablecoin-payment-ledger/internal/core/domain"
)

// --- Service Ports (the ledger state machine's entry points) ---

// AdminService groups the owner-gated operations. None of them are
// blocked by the pause flag.
type AdminService interface {
	AddAllowedToken(ctx context.Context, caller, token domain.Address) error
	RemoveAllowedToken(ctx context.Context, caller, token domain.Address) error
	Pause(ctx context.Context, caller domain.Address) error
	Unpause(ctx context.Context, caller domain.Address) error
	ActivateMerchant(ctx context.Context, caller, merchant domain.Address) error
	SuspendMerchant(ctx context.Context, caller, merchant domain.Address) error
	EmergencyWithdraw(ctx context.Context, caller, token domain.Address, amount uint64) error
	TransferOwnership(ctx context.Context, caller, newOwner domain.Address) error
}

// MerchantService covers merchant self-service lifecycle operations.
type MerchantService interface {
	Register(ctx context.Context, caller, payoutWallet domain.Address) (*domain.Merchant, error)
	UpdatePayoutWallet(ctx context.Context, caller, newWallet domain.Address) error
}

// PaymentRequest holds validated input for payment processing.
type PaymentRequest struct {
	Payer    domain.Address
	Merchant domain.Address
	Token    domain.Address
	Amount   uint64
	Metadata string
}

// PaymentService accepts payments on behalf of registered merchants.
type PaymentService interface {
	ProcessPayment(ctx context.Context, req PaymentRequest) (*domain.Transaction, error)
}

// WithdrawalService lets active merchants move accrued balances to
// their payout wallet.
type WithdrawalService interface {
	Withdraw(ctx context.Context, caller, token domain.Address, amount uint64) error
	// WithdrawAll withdraws the full balance and returns the amount moved.
	WithdrawAll(ctx context.Context, caller, token domain.Address) (uint64, error)
	// BatchWithdraw processes several tokens as one atomic unit and
	// returns the amounts actually withdrawn per index (zero = skipped).
	BatchWithdraw(ctx context.Context, caller domain.Address, tokens []domain.Address, amounts []uint64) ([]uint64, error)
}

// LedgerStats holds the derived counters.
type LedgerStats struct {
	TotalMerchants    int `json:"total_merchants"`
	TotalTransactions int `json:"total_transactions"`
}

// QueryService is the read-only surface. Reads never acquire the
// reentrancy lock, never touch the transfer interface, and always
// observe the latest committed state.
type QueryService interface {
	GetMerchant(merchant domain.Address) (*domain.Merchant, bool)
	GetMerchantBalance(merchant, token domain.Address) uint64
	GetUserTransactions(payer domain.Address) []domain.Transaction
	GetMerchantTransactions(merchant domain.Address) []domain.Transaction
	GetAllTransactions(start, end int) []domain.Transaction
	GetAllMerchants() []domain.Address
	IsTokenAllowed(token domain.Address) bool
	Stats() LedgerStats
	Owner() domain.Address
	IsPaused() bool
}

// TokenService handles caller-identity JWT operations.
type TokenService interface {
	Generate(caller domain.Address) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Caller domain.Address
}

// HashService handles API-key hashing (Argon2id).
type HashService interface {
	Hash(secret string) (string, error)
	Verify(secret string, hash string) (bool, error)
}

package dto

// RegisterMerchantRequest is the request body for merchant registration.
type RegisterMerchantRequest struct {
	PayoutWallet string `json:"payout_wallet" binding:"required,ledger_address"`
}

// UpdateWalletRequest is the request body for payout wallet updates.
type UpdateWalletRequest struct {
	PayoutWallet string `json:"payout_wallet" binding:"required,ledger_address"`
}

// PaymentRequest is the request body for payment processing. The payer
// is the authenticated caller, never a body field.
type PaymentRequest struct {
	Merchant string `json:"merchant" binding:"required,ledger_address"`
	Token    string `json:"token" binding:"required,ledger_address"`
	Amount   uint64 `json:"amount" binding:"required,gt=0"`
	Metadata string `json:"metadata" binding:"max=256"`
}

// WithdrawRequest is the request body for a single-token withdrawal.
// A zero or omitted amount means "withdraw the full balance".
type WithdrawRequest struct {
	Token  string `json:"token" binding:"required,ledger_address"`
	Amount uint64 `json:"amount"`
}

// BatchWithdrawRequest is the request body for a multi-token
// withdrawal. Amounts align with tokens by index; zero entries mean
// "full balance".
type BatchWithdrawRequest struct {
	Tokens  []string `json:"tokens" binding:"required,min=1,max=50,dive,ledger_address"`
	Amounts []uint64 `json:"amounts" binding:"required"`
}

// TokenRequest is the request body for allowlist changes.
type TokenRequest struct {
	Token string `json:"token" binding:"required,ledger_address"`
}

// EmergencyWithdrawRequest is the request body for the owner escape
// hatch.
type EmergencyWithdrawRequest struct {
	Token  string `json:"token" binding:"required,ledger_address"`
	Amount uint64 `json:"amount" binding:"required,gt=0"`
}

// TransferOwnershipRequest is the request body for handing over the
// owner capability.
type TransferOwnershipRequest struct {
	NewOwner string `json:"new_owner" binding:"required,ledger_address"`
}

// IssueTokenRequest is the request body for minting a caller JWT.
type IssueTokenRequest struct {
	Caller string `json:"caller" binding:"required,ledger_address"`
}

// IssueTokenResponse carries a freshly minted caller JWT.
type IssueTokenResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// MerchantResponse is the response body for merchant records.
type MerchantResponse struct {
	Address      string `json:"address"`
	PayoutWallet string `json:"payout_wallet"`
	Active       bool   `json:"active"`
	RegisteredAt string `json:"registered_at"`
	TotalRevenue uint64 `json:"total_revenue"`
}

// TransactionResponse is the response body for transaction records.
type TransactionResponse struct {
	ID        string `json:"id"`
	Payer     string `json:"payer"`
	Merchant  string `json:"merchant"`
	Token     string `json:"token"`
	Amount    uint64 `json:"amount"`
	Metadata  string `json:"metadata,omitempty"`
	Timestamp string `json:"timestamp"`
}

// TransactionListResponse wraps a transaction window.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Start int                   `json:"start"`
	End   int                   `json:"end"`
}

// WithdrawalResponse reports the amount moved by a withdrawal.
type WithdrawalResponse struct {
	Token  string `json:"token"`
	Amount uint64 `json:"amount"`
}

// BatchWithdrawalResponse reports the per-token amounts moved.
type BatchWithdrawalResponse struct {
	Tokens  []string `json:"tokens"`
	Amounts []uint64 `json:"amounts"`
}

// BalanceResponse is the response for a balance query.
type BalanceResponse struct {
	Merchant string `json:"merchant"`
	Token    string `json:"token"`
	Balance  uint64 `json:"balance"`
}

// StatsResponse exposes the derived counters.
type StatsResponse struct {
	TotalMerchants    int  `json:"total_merchants"`
	TotalTransactions int  `json:"total_transactions"`
	Paused            bool `json:"paused"`
}

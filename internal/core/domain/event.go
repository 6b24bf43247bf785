package domain

import "time"

// EventKind identifies a ledger notification.
type EventKind string

const (
	EventPaymentProcessed      EventKind = "PAYMENT_PROCESSED"
	EventMerchantRegistered    EventKind = "MERCHANT_REGISTERED"
	EventMerchantActivated     EventKind = "MERCHANT_ACTIVATED"
	EventMerchantSuspended     EventKind = "MERCHANT_SUSPENDED"
	EventMerchantWalletUpdated EventKind = "MERCHANT_WALLET_UPDATED"
	EventWithdrawal            EventKind = "WITHDRAWAL"
	EventBatchWithdrawal       EventKind = "BATCH_WITHDRAWAL"
	EventTokenAdded            EventKind = "TOKEN_ADDED"
	EventTokenRemoved          EventKind = "TOKEN_REMOVED"
	EventEmergencyWithdraw     EventKind = "EMERGENCY_WITHDRAW"
	EventOwnershipTransferred  EventKind = "OWNERSHIP_TRANSFERRED"
)

// Event is a notification emitted synchronously after a successful
// state transition. Delivery is best-effort observability: sink
// failures never roll back the ledger mutation.
type Event interface {
	Kind() EventKind
}

type PaymentProcessed struct {
	Payer     Address   `json:"payer"`
	Merchant  Address   `json:"merchant"`
	Token     Address   `json:"token"`
	Amount    uint64    `json:"amount"`
	Metadata  string    `json:"metadata,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (PaymentProcessed) Kind() EventKind { return EventPaymentProcessed }

type MerchantRegistered struct {
	Merchant     Address   `json:"merchant"`
	PayoutWallet Address   `json:"payout_wallet"`
	Timestamp    time.Time `json:"timestamp"`
}

func (MerchantRegistered) Kind() EventKind { return EventMerchantRegistered }

type MerchantActivated struct {
	Merchant  Address   `json:"merchant"`
	Timestamp time.Time `json:"timestamp"`
}

func (MerchantActivated) Kind() EventKind { return EventMerchantActivated }

type MerchantSuspended struct {
	Merchant  Address   `json:"merchant"`
	Timestamp time.Time `json:"timestamp"`
}

func (MerchantSuspended) Kind() EventKind { return EventMerchantSuspended }

type MerchantWalletUpdated struct {
	Merchant  Address   `json:"merchant"`
	OldWallet Address   `json:"old_wallet"`
	NewWallet Address   `json:"new_wallet"`
	Timestamp time.Time `json:"timestamp"`
}

func (MerchantWalletUpdated) Kind() EventKind { return EventMerchantWalletUpdated }

type Withdrawal struct {
	Merchant  Address   `json:"merchant"`
	Token     Address   `json:"token"`
	Amount    uint64    `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

func (Withdrawal) Kind() EventKind { return EventWithdrawal }

// BatchWithdrawal carries the requested token list and the amounts
// actually withdrawn per token, zero for skipped entries.
type BatchWithdrawal struct {
	Merchant  Address   `json:"merchant"`
	Tokens    []Address `json:"tokens"`
	Amounts   []uint64  `json:"amounts"`
	Timestamp time.Time `json:"timestamp"`
}

func (BatchWithdrawal) Kind() EventKind { return EventBatchWithdrawal }

type TokenAdded struct {
	Token     Address   `json:"token"`
	Timestamp time.Time `json:"timestamp"`
}

func (TokenAdded) Kind() EventKind { return EventTokenAdded }

type TokenRemoved struct {
	Token     Address   `json:"token"`
	Timestamp time.Time `json:"timestamp"`
}

func (TokenRemoved) Kind() EventKind { return EventTokenRemoved }

type EmergencyWithdraw struct {
	Token     Address   `json:"token"`
	Amount    uint64    `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

func (EmergencyWithdraw) Kind() EventKind { return EventEmergencyWithdraw }

type OwnershipTransferred struct {
	PreviousOwner Address   `json:"previous_owner"`
	NewOwner      Address   `json:"new_owner"`
	Timestamp     time.Time `json:"timestamp"`
}

func (OwnershipTransferred) Kind() EventKind { return EventOwnershipTransferred }

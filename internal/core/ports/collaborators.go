package ports

//go:generate mockgen -source=collaborators.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"stablecoin-payment-ledger/internal/core/domain"
)

// TokenTransferor is the external value-transfer interface. Both calls
// are untrusted: they may call back into the ledger within the same
// logical operation, and any returned error aborts the invoking
// operation with no ledger state change.
type TokenTransferor interface {
	// TransferFrom pulls amount of token from the payer into the
	// ledger's custody account, observing the payer's prior approval.
	TransferFrom(ctx context.Context, token, from, to domain.Address, amount uint64) error
	// Transfer pushes amount of token from custody to the recipient.
	Transfer(ctx context.Context, token, to domain.Address, amount uint64) error
}

// EventSink receives ledger notifications synchronously after a
// successful commit. Delivery failure must not roll back the mutation.
type EventSink interface {
	Publish(ctx context.Context, event domain.Event) error
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) Publish(ctx context.Context, event domain.Event) error { return nil }

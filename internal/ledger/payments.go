package ledger

import (
	"context"
	"math"

	"stablecoin-payment-ledger/internal/core/domain"
	"stablecoin-payment-ledger/internal/core/ports"
	"stablecoin-payment-ledger/pkg/apperror"

	"github.com/google/uuid"
)

// ProcessPayment pulls funds from the payer into custody and credits
// the merchant's ledger balance. The external pull happens before any
// bookkeeping; a transfer abort leaves the ledger untouched. The credit,
// the revenue accumulation and the three transaction-log inserts commit
// as one indivisible step.
func (e *Engine) ProcessPayment(ctx context.Context, req ports.PaymentRequest) (*domain.Transaction, error) {
	ctx, err := e.enter(ctx)
	if err != nil {
		return nil, err
	}
	defer e.exit()

	// Validation order: allowlist, amount floor, merchant state, pause.
	e.stateMu.RLock()
	allowed := e.allowed[req.Token]
	m := e.merchants[req.Merchant]
	registered := m.IsRegistered()
	active := registered && m.Active
	balance := e.balances[req.Merchant][req.Token]
	revenue := uint64(0)
	if registered {
		revenue = m.TotalRevenue
	}
	paused := e.paused
	e.stateMu.RUnlock()

	if !allowed {
		return nil, apperror.ErrInvalidTokenAddress("token is not allowed for payments")
	}
	if req.Amount < domain.MinPaymentAmount {
		return nil, apperror.ErrInvalidAmount("amount is below the minimum payment")
	}
	if !active {
		return nil, apperror.ErrMerchantNotActive()
	}
	if paused {
		return nil, apperror.ErrPaused("ledger is paused")
	}
	if req.Amount > math.MaxUint64-balance || req.Amount > math.MaxUint64-revenue {
		return nil, apperror.ErrInvalidAmount("amount overflows merchant accounting")
	}

	// The one external call of this operation. The transferor gets the
	// marked context: a callback into any entry point fails Reentrancy.
	if err := e.transferor.TransferFrom(ctx, req.Token, req.Payer, e.custody, req.Amount); err != nil {
		return nil, apperror.ErrPaymentFailed(err)
	}

	ts := now()
	txn := &domain.Transaction{
		ID:        uuid.New(),
		Payer:     req.Payer,
		Merchant:  req.Merchant,
		Token:     req.Token,
		Amount:    req.Amount,
		Metadata:  req.Metadata,
		Timestamp: ts,
	}

	e.stateMu.Lock()
	if e.balances[req.Merchant] == nil {
		e.balances[req.Merchant] = make(map[domain.Address]uint64)
	}
	e.balances[req.Merchant][req.Token] += req.Amount
	m.TotalRevenue += req.Amount
	e.global = append(e.global, txn)
	e.byPayer[req.Payer] = append(e.byPayer[req.Payer], txn)
	e.byMerchant[req.Merchant] = append(e.byMerchant[req.Merchant], txn)
	e.stateMu.Unlock()

	e.emit(ctx, domain.PaymentProcessed{
		Payer:     req.Payer,
		Merchant:  req.Merchant,
		Token:     req.Token,
		Amount:    req.Amount,
		Metadata:  req.Metadata,
		Timestamp: ts,
	})
	e.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("payer", req.Payer.String()).
		Str("merchant", req.Merchant.String()).
		Str("token", req.Token.String()).
		Uint64("amount", req.Amount).
		Msg("payment processed")

	out := *txn
	return &out, nil
}

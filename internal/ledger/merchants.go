package ledger

import (
	"context"

	"stablecoin-payment-ledger/internal/core/domain"
	"stablecoin-payment-ledger/pkg/apperror"
)

// Register creates a merchant record for the caller. Registration is
// permanently one-shot per identity: an identity that ever registered,
// active or suspended, can never register again. Pausable.
func (e *Engine) Register(ctx context.Context, caller, payoutWallet domain.Address) (*domain.Merchant, error) {
	ctx, err := e.enter(ctx)
	if err != nil {
		return nil, err
	}
	defer e.exit()

	if err := e.requireNotPaused(); err != nil {
		return nil, err
	}
	if payoutWallet.IsZero() {
		return nil, apperror.ErrInvalidPayoutWallet()
	}

	ts := now()
	m := &domain.Merchant{
		Address:      caller,
		PayoutWallet: payoutWallet,
		Active:       true,
		RegisteredAt: ts,
		TotalRevenue: 0,
	}

	e.stateMu.Lock()
	if e.merchants[caller].IsRegistered() {
		e.stateMu.Unlock()
		return nil, apperror.ErrInvalidMerchant("identity is already registered")
	}
	e.merchants[caller] = m
	e.merchantList = append(e.merchantList, caller)
	e.stateMu.Unlock()

	e.emit(ctx, domain.MerchantRegistered{Merchant: caller, PayoutWallet: payoutWallet, Timestamp: ts})
	e.emit(ctx, domain.MerchantActivated{Merchant: caller, Timestamp: ts})
	e.log.Info().
		Str("merchant", caller.String()).
		Str("payout_wallet", payoutWallet.String()).
		Msg("merchant registered")

	out := *m
	return &out, nil
}

// UpdatePayoutWallet replaces the caller's payout wallet. Only active
// merchants may update; suspended ones may not. Pausable.
func (e *Engine) UpdatePayoutWallet(ctx context.Context, caller, newWallet domain.Address) error {
	ctx, err := e.enter(ctx)
	if err != nil {
		return err
	}
	defer e.exit()

	if err := e.requireNotPaused(); err != nil {
		return err
	}

	e.stateMu.Lock()
	m := e.merchants[caller]
	if !m.IsRegistered() || !m.Active {
		e.stateMu.Unlock()
		return apperror.ErrMerchantNotActive()
	}
	if newWallet.IsZero() {
		e.stateMu.Unlock()
		return apperror.ErrInvalidPayoutWallet()
	}
	oldWallet := m.PayoutWallet
	m.PayoutWallet = newWallet
	e.stateMu.Unlock()

	ts := now()
	e.emit(ctx, domain.MerchantWalletUpdated{
		Merchant:  caller,
		OldWallet: oldWallet,
		NewWallet: newWallet,
		Timestamp: ts,
	})
	e.log.Info().
		Str("merchant", caller.String()).
		Str("old_wallet", oldWallet.String()).
		Str("new_wallet", newWallet.String()).
		Msg("merchant payout wallet updated")
	return nil
}

// ActivateMerchant re-enables a suspended merchant. Owner-only, not
// blocked by pause. Rejects no-op transitions.
func (e *Engine) ActivateMerchant(ctx context.Context, caller, merchant domain.Address) error {
	return e.setMerchantActive(ctx, caller, merchant, true)
}

// SuspendMerchant disables an active merchant. Owner-only, not blocked
// by pause. Rejects no-op transitions.
func (e *Engine) SuspendMerchant(ctx context.Context, caller, merchant domain.Address) error {
	return e.setMerchantActive(ctx, caller, merchant, false)
}

func (e *Engine) setMerchantActive(ctx context.Context, caller, merchant domain.Address, active bool) error {
	ctx, err := e.enter(ctx)
	if err != nil {
		return err
	}
	defer e.exit()

	if err := e.requireOwner(caller); err != nil {
		return err
	}

	e.stateMu.Lock()
	m := e.merchants[merchant]
	if !m.IsRegistered() {
		e.stateMu.Unlock()
		return apperror.ErrInvalidMerchant("merchant is not registered")
	}
	if m.Active == active {
		e.stateMu.Unlock()
		if active {
			return apperror.ErrInvalidMerchant("merchant is already active")
		}
		return apperror.ErrInvalidMerchant("merchant is already suspended")
	}
	m.Active = active
	e.stateMu.Unlock()

	ts := now()
	if active {
		e.emit(ctx, domain.MerchantActivated{Merchant: merchant, Timestamp: ts})
		e.log.Info().Str("merchant", merchant.String()).Msg("merchant activated")
	} else {
		e.emit(ctx, domain.MerchantSuspended{Merchant: merchant, Timestamp: ts})
		e.log.Info().Str("merchant", merchant.String()).Msg("merchant suspended")
	}
	return nil
}

package ledger

import (
	"context"

	"stablecoin-payment-ledger/internal/core/domain"
	"stablecoin-payment-ledger/pkg/apperror"
)

// Withdraw moves amount of token from the caller's ledger balance to
// the caller's current payout wallet. No minimum-amount floor, unlike
// payments. Pausable.
func (e *Engine) Withdraw(ctx context.Context, caller, token domain.Address, amount uint64) error {
	ctx, err := e.enter(ctx)
	if err != nil {
		return err
	}
	defer e.exit()

	if amount == 0 {
		return apperror.ErrInvalidAmount("withdrawal amount must be positive")
	}
	return e.withdrawLocked(ctx, caller, token, amount)
}

// WithdrawAll withdraws the caller's entire balance of token and
// returns the amount moved. A zero balance fails InsufficientBalance.
func (e *Engine) WithdrawAll(ctx context.Context, caller, token domain.Address) (uint64, error) {
	ctx, err := e.enter(ctx)
	if err != nil {
		return 0, err
	}
	defer e.exit()

	e.stateMu.RLock()
	amount := e.balances[caller][token]
	e.stateMu.RUnlock()

	if amount == 0 {
		return 0, apperror.ErrInsufficientBalance()
	}
	if err := e.withdrawLocked(ctx, caller, token, amount); err != nil {
		return 0, err
	}
	return amount, nil
}

// withdrawLocked runs the single-token withdrawal while the caller
// already holds the per-call lock: validate, push via the external
// transfer interface, then commit the debit.
func (e *Engine) withdrawLocked(ctx context.Context, caller, token domain.Address, amount uint64) error {
	if err := e.requireNotPaused(); err != nil {
		return err
	}

	e.stateMu.RLock()
	m := e.merchants[caller]
	active := m.IsRegistered() && m.Active
	balance := e.balances[caller][token]
	var payout domain.Address
	if active {
		payout = m.PayoutWallet
	}
	e.stateMu.RUnlock()

	if !active {
		return apperror.ErrMerchantNotActive()
	}
	if balance < amount {
		return apperror.ErrInsufficientBalance()
	}

	if err := e.transferor.Transfer(ctx, token, payout, amount); err != nil {
		return apperror.ErrWithdrawalFailed(err)
	}

	e.stateMu.Lock()
	e.balances[caller][token] -= amount
	e.stateMu.Unlock()

	ts := now()
	e.emit(ctx, domain.Withdrawal{Merchant: caller, Token: token, Amount: amount, Timestamp: ts})
	e.log.Info().
		Str("merchant", caller.String()).
		Str("token", token.String()).
		Uint64("amount", amount).
		Msg("withdrawal processed")
	return nil
}

// BatchWithdraw processes several tokens as one atomic unit. A zero
// requested amount means "withdraw the full balance"; a token with no
// balance is skipped; a balance lower than the requested amount aborts
// the whole batch. Nothing commits unless every transfer succeeds. The
// returned slice holds the amount actually withdrawn per index, zero
// for skipped entries.
func (e *Engine) BatchWithdraw(ctx context.Context, caller domain.Address, tokens []domain.Address, amounts []uint64) ([]uint64, error) {
	ctx, err := e.enter(ctx)
	if err != nil {
		return nil, err
	}
	defer e.exit()

	if err := e.requireNotPaused(); err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, apperror.ErrEmptyBatch()
	}
	if len(tokens) != len(amounts) {
		return nil, apperror.ErrInvalidAmount("tokens and amounts must have the same length")
	}

	e.stateMu.RLock()
	m := e.merchants[caller]
	active := m.IsRegistered() && m.Active
	var payout domain.Address
	if active {
		payout = m.PayoutWallet
	}
	// Working balances so repeated tokens in one batch deduct
	// sequentially, as if each entry committed before the next.
	working := make(map[domain.Address]uint64, len(tokens))
	for _, token := range tokens {
		working[token] = e.balances[caller][token]
	}
	e.stateMu.RUnlock()

	if !active {
		return nil, apperror.ErrMerchantNotActive()
	}

	withdrawn := make([]uint64, len(tokens))
	for i, token := range tokens {
		amount := amounts[i]
		if amount == 0 {
			amount = working[token] // zero is the full-balance sentinel
		}
		if working[token] == 0 {
			continue // no balance: skip, no failure
		}
		if working[token] < amount {
			return nil, apperror.ErrInsufficientBalance()
		}
		working[token] -= amount
		withdrawn[i] = amount
	}

	for i, token := range tokens {
		if withdrawn[i] == 0 {
			continue
		}
		if err := e.transferor.Transfer(ctx, token, payout, withdrawn[i]); err != nil {
			return nil, apperror.ErrWithdrawalFailed(err)
		}
	}

	e.stateMu.Lock()
	for i, token := range tokens {
		if withdrawn[i] > 0 {
			e.balances[caller][token] -= withdrawn[i]
		}
	}
	e.stateMu.Unlock()

	ts := now()
	e.emit(ctx, domain.BatchWithdrawal{
		Merchant:  caller,
		Tokens:    append([]domain.Address(nil), tokens...),
		Amounts:   append([]uint64(nil), withdrawn...),
		Timestamp: ts,
	})
	e.log.Info().
		Str("merchant", caller.String()).
		Int("tokens", len(tokens)).
		Msg("batch withdrawal processed")
	return withdrawn, nil
}

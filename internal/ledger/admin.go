package ledger

import (
	"context"

	"stablecoin-payment-ledger/internal/core/domain"
	"stablecoin-payment-ledger/pkg/apperror"
)

// Pause blocks the non-admin mutating entry points. Owner-only.
// Pausing an already-paused ledger is rejected.
func (e *Engine) Pause(ctx context.Context, caller domain.Address) error {
	_, err := e.enter(ctx)
	if err != nil {
		return err
	}
	defer e.exit()

	if err := e.requireOwner(caller); err != nil {
		return err
	}

	e.stateMu.Lock()
	if e.paused {
		e.stateMu.Unlock()
		return apperror.ErrPaused("ledger is already paused")
	}
	e.paused = true
	e.stateMu.Unlock()

	e.log.Warn().Msg("ledger paused")
	return nil
}

// Unpause restores normal operation. Owner-only. Unpausing a ledger
// that is not paused is rejected.
func (e *Engine) Unpause(ctx context.Context, caller domain.Address) error {
	_, err := e.enter(ctx)
	if err != nil {
		return err
	}
	defer e.exit()

	if err := e.requireOwner(caller); err != nil {
		return err
	}

	e.stateMu.Lock()
	if !e.paused {
		e.stateMu.Unlock()
		return apperror.ErrPaused("ledger is not paused")
	}
	e.paused = false
	e.stateMu.Unlock()

	e.log.Warn().Msg("ledger unpaused")
	return nil
}

// EmergencyWithdraw pushes an arbitrary amount of token from custody to
// the owner, bypassing per-merchant bookkeeping entirely. No ledger
// balance is debited: misuse leaves recorded balances exceeding the
// custody's actual holdings. Owner-only, not blocked by pause.
func (e *Engine) EmergencyWithdraw(ctx context.Context, caller, token domain.Address, amount uint64) error {
	ctx, err := e.enter(ctx)
	if err != nil {
		return err
	}
	defer e.exit()

	if err := e.requireOwner(caller); err != nil {
		return err
	}

	e.stateMu.RLock()
	owner := e.owner
	e.stateMu.RUnlock()

	if err := e.transferor.Transfer(ctx, token, owner, amount); err != nil {
		return apperror.ErrWithdrawalFailed(err)
	}

	ts := now()
	e.emit(ctx, domain.EmergencyWithdraw{Token: token, Amount: amount, Timestamp: ts})
	e.log.Warn().
		Str("token", token.String()).
		Uint64("amount", amount).
		Msg("emergency withdrawal executed")
	return nil
}

// TransferOwnership hands the owner capability to a new principal.
// Exactly one principal holds it at a time.
func (e *Engine) TransferOwnership(ctx context.Context, caller, newOwner domain.Address) error {
	ctx, err := e.enter(ctx)
	if err != nil {
		return err
	}
	defer e.exit()

	if err := e.requireOwner(caller); err != nil {
		return err
	}
	if newOwner.IsZero() {
		return apperror.Validation("new owner must not be the zero address")
	}

	e.stateMu.Lock()
	previous := e.owner
	e.owner = newOwner
	e.stateMu.Unlock()

	ts := now()
	e.emit(ctx, domain.OwnershipTransferred{PreviousOwner: previous, NewOwner: newOwner, Timestamp: ts})
	e.log.Warn().
		Str("previous_owner", previous.String()).
		Str("new_owner", newOwner.String()).
		Msg("ownership transferred")
	return nil
}

package ledger

import (
	"context"

	"stablecoin-payment-ledger/internal/core/domain"
	"stablecoin-payment-ledger/pkg/apperror"
)

// AddAllowedToken approves a token for payments. Owner-only, not
// blocked by pause.
func (e *Engine) AddAllowedToken(ctx context.Context, caller, token domain.Address) error {
	ctx, err := e.enter(ctx)
	if err != nil {
		return err
	}
	defer e.exit()

	if err := e.requireOwner(caller); err != nil {
		return err
	}
	if token.IsZero() {
		return apperror.ErrInvalidTokenAddress("token must not be the zero address")
	}

	e.stateMu.Lock()
	if e.allowed[token] {
		e.stateMu.Unlock()
		return apperror.ErrInvalidTokenAddress("token is already allowed")
	}
	e.allowed[token] = true
	e.stateMu.Unlock()

	ts := now()
	e.emit(ctx, domain.TokenAdded{Token: token, Timestamp: ts})
	e.log.Info().Str("token", token.String()).Msg("token added to allowlist")
	return nil
}

// RemoveAllowedToken revokes a token's approval. Owner-only, not
// blocked by pause. Accrued balances in the token stay withdrawable.
func (e *Engine) RemoveAllowedToken(ctx context.Context, caller, token domain.Address) error {
	ctx, err := e.enter(ctx)
	if err != nil {
		return err
	}
	defer e.exit()

	if err := e.requireOwner(caller); err != nil {
		return err
	}

	e.stateMu.Lock()
	if !e.allowed[token] {
		e.stateMu.Unlock()
		return apperror.ErrInvalidTokenAddress("token is not allowed")
	}
	delete(e.allowed, token)
	e.stateMu.Unlock()

	ts := now()
	e.emit(ctx, domain.TokenRemoved{Token: token, Timestamp: ts})
	e.log.Info().Str("token", token.String()).Msg("token removed from allowlist")
	return nil
}

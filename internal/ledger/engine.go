// Package ledger implements the state machine at the core of the
// payment platform: token allow-listing, merchant lifecycle, payment
// accounting and withdrawals over a single authoritative in-memory
// store. Every mutating entry point makes exactly one call into the
// untrusted value-transfer interface and commits its bookkeeping
// atomically: the operation either fully commits or fully reverts.
package ledger

import (
	"context"
	"sync"
	"time"

	"stablecoin-payment-ledger/internal/core/domain"
	"stablecoin-payment-ledger/internal/core/ports"
	"stablecoin-payment-ledger/pkg/apperror"

	"github.com/rs/zerolog"
)

// Config holds the identities fixed at construction.
type Config struct {
	// Owner is the single principal allowed to perform admin operations.
	Owner domain.Address
	// Custody is the account that receives pulled payment funds and
	// from which withdrawals are pushed.
	Custody domain.Address
}

// Engine is the ledger state machine. All shared state lives here,
// initialized empty at construction and torn down with the service.
//
// Concurrency model: callMu serializes mutating entry points, held for
// the whole operation including the external transfer call. Reentrancy
// from within that call is detected via a context marker stamped in
// enter: the transferor receives the stamped context, so a nested call
// into any guarded entry point fails with a Reentrancy kind instead of
// blocking. stateMu guards the maps; writers take it only for the
// commit step, so reads observe committed state only.
type Engine struct {
	callMu  sync.Mutex
	stateMu sync.RWMutex

	owner   domain.Address
	custody domain.Address
	paused  bool

	allowed      map[domain.Address]bool
	merchants    map[domain.Address]*domain.Merchant
	merchantList []domain.Address

	// balances[merchant][token] -> withdrawable base units
	balances map[domain.Address]map[domain.Address]uint64

	global     []*domain.Transaction
	byPayer    map[domain.Address][]*domain.Transaction
	byMerchant map[domain.Address][]*domain.Transaction

	transferor ports.TokenTransferor
	sink       ports.EventSink
	log        zerolog.Logger
}

// New creates an empty ledger engine.
func New(cfg Config, transferor ports.TokenTransferor, sink ports.EventSink, log zerolog.Logger) (*Engine, error) {
	if cfg.Owner.IsZero() {
		return nil, apperror.Validation("ledger owner must not be the zero address")
	}
	if cfg.Custody.IsZero() {
		return nil, apperror.Validation("ledger custody account must not be the zero address")
	}
	if transferor == nil {
		return nil, apperror.Validation("ledger requires a token transferor")
	}
	if sink == nil {
		sink = ports.NopSink{}
	}

	return &Engine{
		owner:      cfg.Owner,
		custody:    cfg.Custody,
		allowed:    make(map[domain.Address]bool),
		merchants:  make(map[domain.Address]*domain.Merchant),
		balances:   make(map[domain.Address]map[domain.Address]uint64),
		byPayer:    make(map[domain.Address][]*domain.Transaction),
		byMerchant: make(map[domain.Address][]*domain.Transaction),
		transferor: transferor,
		sink:       sink,
		log:        log,
	}, nil
}

// callMarker marks a context as belonging to an in-progress guarded
// operation. The transferor receives the marked context, so any nested
// call back into a guarded entry point is rejected.
type callMarker struct{}

// enter acquires the exclusive per-call lock. The returned context must
// be the one passed to the external transferor; exit must be deferred
// on every path once enter succeeds.
func (e *Engine) enter(ctx context.Context) (context.Context, error) {
	if ctx.Value(callMarker{}) != nil {
		return nil, apperror.ErrReentrancy()
	}
	e.callMu.Lock()
	return context.WithValue(ctx, callMarker{}, struct{}{}), nil
}

func (e *Engine) exit() {
	e.callMu.Unlock()
}

// requireOwner gates admin operations on the owner capability.
func (e *Engine) requireOwner(caller domain.Address) error {
	e.stateMu.RLock()
	owner := e.owner
	e.stateMu.RUnlock()
	if caller != owner {
		return apperror.ErrUnauthorized()
	}
	return nil
}

// requireNotPaused gates the non-admin mutating entry points.
func (e *Engine) requireNotPaused() error {
	e.stateMu.RLock()
	paused := e.paused
	e.stateMu.RUnlock()
	if paused {
		return apperror.ErrPaused("ledger is paused")
	}
	return nil
}

// emit publishes a notification after a successful commit. Sink errors
// are logged and swallowed: notifications are best-effort observability.
func (e *Engine) emit(ctx context.Context, event domain.Event) {
	if err := e.sink.Publish(ctx, event); err != nil {
		e.log.Warn().
			Err(err).
			Str("event", string(event.Kind())).
			Msg("event sink publish failed")
	}
}

func now() time.Time {
	return time.Now().UTC()
}

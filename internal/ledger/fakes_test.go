package ledger

import (
	"context"
	"sync"
	"testing"

	"stablecoin-payment-ledger/internal/core/domain"
	"stablecoin-payment-ledger/internal/core/ports"
	"stablecoin-payment-ledger/pkg/logger"

	"github.com/stretchr/testify/require"
)

const (
	testOwner    = domain.Address("0x00000000000000000000000000000000000000ff")
	testCustody  = domain.Address("0x00000000000000000000000000000000000000ee")
	testMerchant = domain.Address("0x00000000000000000000000000000000000000a1")
	testPayer    = domain.Address("0x00000000000000000000000000000000000000b1")
	testWallet   = domain.Address("0x00000000000000000000000000000000000000c1")
	testToken    = domain.Address("0x00000000000000000000000000000000000000d1")
	testToken2   = domain.Address("0x00000000000000000000000000000000000000d2")
)

type transferCall struct {
	token  domain.Address
	from   domain.Address
	to     domain.Address
	amount uint64
}

// fakeTransferor is an in-memory stand-in for the external
// value-transfer interface. Hooks let tests drive callbacks from
// inside the external call, which is how reentrancy is exercised.
type fakeTransferor struct {
	mu sync.Mutex

	transferFromErr error
	transferErr     error

	transferFromCalls []transferCall
	transferCalls     []transferCall

	onTransferFrom func(ctx context.Context) error
	onTransfer     func(ctx context.Context) error
}

func (f *fakeTransferor) TransferFrom(ctx context.Context, token, from, to domain.Address, amount uint64) error {
	f.mu.Lock()
	f.transferFromCalls = append(f.transferFromCalls, transferCall{token, from, to, amount})
	hook := f.onTransferFrom
	err := f.transferFromErr
	f.mu.Unlock()

	if hook != nil {
		if hookErr := hook(ctx); hookErr != nil {
			return hookErr
		}
	}
	return err
}

func (f *fakeTransferor) Transfer(ctx context.Context, token, to domain.Address, amount uint64) error {
	f.mu.Lock()
	f.transferCalls = append(f.transferCalls, transferCall{token: token, to: to, amount: amount})
	hook := f.onTransfer
	err := f.transferErr
	f.mu.Unlock()

	if hook != nil {
		if hookErr := hook(ctx); hookErr != nil {
			return hookErr
		}
	}
	return err
}

// recordingSink captures published events in order.
type recordingSink struct {
	mu     sync.Mutex
	events []domain.Event
	err    error
}

func (s *recordingSink) Publish(ctx context.Context, event domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return s.err
}

func (s *recordingSink) kinds() []domain.EventKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.EventKind, len(s.events))
	for i, e := range s.events {
		out[i] = e.Kind()
	}
	return out
}

func (s *recordingSink) last() domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) == 0 {
		return nil
	}
	return s.events[len(s.events)-1]
}

func newTestEngine(t *testing.T) (*Engine, *fakeTransferor, *recordingSink) {
	t.Helper()
	transferor := &fakeTransferor{}
	sink := &recordingSink{}
	eng, err := New(Config{Owner: testOwner, Custody: testCustody}, transferor, sink, logger.NewWithWriter("error", testWriter{t}))
	require.NoError(t, err)
	return eng, transferor, sink
}

// registerActiveMerchant registers testMerchant with testWallet.
func registerActiveMerchant(t *testing.T, eng *Engine) {
	t.Helper()
	_, err := eng.Register(context.Background(), testMerchant, testWallet)
	require.NoError(t, err)
}

// allowToken allow-lists the given token as owner.
func allowToken(t *testing.T, eng *Engine, token domain.Address) {
	t.Helper()
	require.NoError(t, eng.AddAllowedToken(context.Background(), testOwner, token))
}

// payMerchant credits the merchant via a successful payment.
func payMerchant(t *testing.T, eng *Engine, token domain.Address, amount uint64) {
	t.Helper()
	_, err := eng.ProcessPayment(context.Background(), paymentReq(token, amount))
	require.NoError(t, err)
}

func paymentReq(token domain.Address, amount uint64) ports.PaymentRequest {
	return ports.PaymentRequest{
		Payer:    testPayer,
		Merchant: testMerchant,
		Token:    token,
		Amount:   amount,
		Metadata: "order-42",
	}
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

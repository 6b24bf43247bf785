package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"stablecoin-payment-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRepo_Publish(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewEventRepo(mock)
	event := domain.TokenAdded{
		Token:     "0x00000000000000000000000000000000000000d1",
		Timestamp: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO ledger_events").
		WithArgs(pgxmock.AnyArg(), string(domain.EventTokenAdded), payload, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Publish(context.Background(), event)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_Publish_DatabaseError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewEventRepo(mock)

	mock.ExpectExec("INSERT INTO ledger_events").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("connection refused"))

	err = repo.Publish(context.Background(), domain.TokenRemoved{Token: "0xabc", Timestamp: time.Now()})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_ListRecent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewEventRepo(mock)
	id1, id2 := uuid.New(), uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)

	mock.ExpectQuery("SELECT .+ FROM ledger_events").
		WithArgs(2).
		WillReturnRows(pgxmock.NewRows([]string{"id", "kind", "payload", "created_at"}).
			AddRow(id2, "WITHDRAWAL", []byte(`{"amount":5}`), now).
			AddRow(id1, "PAYMENT_PROCESSED", []byte(`{"amount":9}`), now.Add(-time.Minute)))

	events, err := repo.ListRecent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, id2, events[0].ID)
	assert.Equal(t, "WITHDRAWAL", events[0].Kind)
	assert.JSONEq(t, `{"amount":9}`, string(events[1].Payload))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthCheck_Ping(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("SELECT 1").WillReturnResult(pgxmock.NewResult("SELECT", 1))

	hc := NewHealthCheck(mock)
	assert.NoError(t, hc.Ping(context.Background()))
	assert.Equal(t, "postgresql", hc.Name())
	assert.NoError(t, mock.ExpectationsWereMet())
}

package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"stablecoin-payment-ledger/internal/core/domain"

	"github.com/google/uuid"
)

// EventRepo persists ledger notifications as an append-only audit
// trail. It implements ports.EventSink; the ledger treats publish
// failures as best-effort, so a database outage never blocks payments.
type EventRepo struct {
	pool Pool
}

// NewEventRepo creates a PostgreSQL-backed event sink.
func NewEventRepo(pool Pool) *EventRepo {
	return &EventRepo{pool: pool}
}

// Publish appends one event row with its JSON payload.
func (r *EventRepo) Publish(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event payload: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO ledger_events (id, kind, payload, created_at)
		 VALUES ($1, $2, $3, $4)`,
		uuid.New(), string(event.Kind()), payload, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert ledger event: %w", err)
	}
	return nil
}

// StoredEvent is one row of the audit trail.
type StoredEvent struct {
	ID        uuid.UUID       `json:"id"`
	Kind      string          `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// ListRecent returns the newest events, newest first.
func (r *EventRepo) ListRecent(ctx context.Context, limit int) ([]StoredEvent, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, kind, payload, created_at FROM ledger_events
		 ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query ledger events: %w", err)
	}
	defer rows.Close()

	var out []StoredEvent
	for rows.Next() {
		var e StoredEvent
		if err := rows.Scan(&e.ID, &e.Kind, &e.Payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger event: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger events: %w", err)
	}
	return out, nil
}

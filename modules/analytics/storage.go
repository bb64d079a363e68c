package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gastropartner/gastropartner/pkg/analytics"
)

// PgStore persists analytics events in Postgres. It implements
// analytics.Store for the async tracker and serves the read side of
// the events endpoint.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore returns a Postgres-backed event store.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

// SaveBatch inserts a flushed batch of events in a single round trip.
func (s *PgStore) SaveBatch(ctx context.Context, events []analytics.Event) error {
	if len(events) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, ev := range events {
		props, err := json.Marshal(ev.Properties)
		if err != nil {
			return errors.Join(ErrFailedToSave, err)
		}
		batch.Queue(`
			INSERT INTO analytics_events (id, organization_id, user_id, event_type, event_name, properties, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.New(), ev.OrganizationID, ev.UserID, string(ev.EventType), ev.EventName, props, ev.CreatedAt,
		)
	}

	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return errors.Join(ErrFailedToSave, err)
	}
	return nil
}

// StoredEvent is a persisted analytics event.
type StoredEvent struct {
	ID             uuid.UUID      `json:"id"`
	OrganizationID uuid.UUID      `json:"organization_id"`
	UserID         *uuid.UUID     `json:"user_id,omitempty"`
	EventType      string         `json:"event_type"`
	EventName      string         `json:"event_name"`
	Properties     map[string]any `json:"properties,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Recent returns the latest events for an organization, newest first.
// An empty eventType returns all types.
func (s *PgStore) Recent(ctx context.Context, orgID uuid.UUID, eventType string, limit int) ([]StoredEvent, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, organization_id, user_id, event_type, event_name, properties, created_at
		FROM analytics_events
		WHERE organization_id = $1 AND ($2 = '' OR event_type = $2)
		ORDER BY created_at DESC
		LIMIT $3`,
		orgID, eventType, limit,
	)
	if err != nil {
		return nil, errors.Join(ErrFailedToFetch, err)
	}
	defer rows.Close()

	var result []StoredEvent
	for rows.Next() {
		var ev StoredEvent
		var props []byte
		if err := rows.Scan(&ev.ID, &ev.OrganizationID, &ev.UserID, &ev.EventType, &ev.EventName, &props, &ev.CreatedAt); err != nil {
			return nil, errors.Join(ErrFailedToFetch, err)
		}
		if len(props) > 0 {
			if err := json.Unmarshal(props, &ev.Properties); err != nil {
				return nil, errors.Join(ErrFailedToFetch, err)
			}
		}
		result = append(result, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrFailedToFetch, err)
	}
	return result, nil
}

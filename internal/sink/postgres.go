package sink

import (
	"context"
	"encoding/json"
	"fmt"

	"credo/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres is an audit sink backed by an append-only table. Each sink
// instance owns one trail, keyed by a generated trail id, so concurrent
// sessions writing through separate instances never interleave reads.
type Postgres struct {
	db      *pgxpool.Pool
	trailID uuid.UUID
}

func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db, trailID: uuid.New()}
}

// EnsureSchema creates the audit table if it does not exist.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS audit_events (
			id BIGSERIAL PRIMARY KEY,
			trail_id UUID NOT NULL,
			event_type TEXT NOT NULL,
			payload JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("create audit_events table: %w", err)
	}
	_, err = db.Exec(ctx,
		`CREATE INDEX IF NOT EXISTS audit_events_trail_idx ON audit_events (trail_id, id)`)
	if err != nil {
		return fmt.Errorf("create audit_events index: %w", err)
	}
	return nil
}

func (s *Postgres) Append(ctx context.Context, event domain.AuditEvent) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}
	_, err = s.db.Exec(ctx,
		`INSERT INTO audit_events (trail_id, event_type, payload) VALUES ($1, $2, $3)`,
		s.trailID, event.Type, payload)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

func (s *Postgres) Events(ctx context.Context) ([]domain.AuditEvent, error) {
	rows, err := s.db.Query(ctx,
		`SELECT event_type, payload FROM audit_events WHERE trail_id = $1 ORDER BY id`,
		s.trailID)
	if err != nil {
		return nil, fmt.Errorf("read audit trail: %w", err)
	}
	defer rows.Close()

	var events []domain.AuditEvent
	for rows.Next() {
		var e domain.AuditEvent
		var payload []byte
		if err := rows.Scan(&e.Type, &payload); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(payload, &e.Payload); err != nil {
			return nil, fmt.Errorf("unmarshal audit payload: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

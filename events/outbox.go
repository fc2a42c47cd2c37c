package events

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	j "github.com/goccy/go-json"

	"github.com/reoring/catalogpatch/catalog"
	"github.com/reoring/catalogpatch/codec"
)

const outboxSchema = `
CREATE TABLE IF NOT EXISTS product_events (
	id TEXT PRIMARY KEY,
	type TEXT NOT NULL,
	sku TEXT NOT NULL,
	field TEXT NOT NULL,
	payload TEXT NOT NULL,
	occurred_at TEXT NOT NULL,
	published_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_product_events_sku ON product_events(sku);
`

var timestamps = codec.TimeRFC3339()

// OutboxSink appends events to the product_events table so a relay can
// forward them later.
type OutboxSink struct {
	db *sql.DB
}

// NewOutboxSink creates the outbox table when missing.
func NewOutboxSink(ctx context.Context, db *sql.DB) (*OutboxSink, error) {
	if _, err := db.ExecContext(ctx, outboxSchema); err != nil {
		return nil, fmt.Errorf("create outbox schema: %w", err)
	}
	return &OutboxSink{db: db}, nil
}

// Publish stores all events in one transaction.
func (s *OutboxSink) Publish(ctx context.Context, events []catalog.Event) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin outbox tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO product_events (id, type, sku, field, payload, occurred_at) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare outbox insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range events {
		env := Seal(e)
		payload, err := j.Marshal(env)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", env.Type, err)
		}
		at, err := timestamps.Encode(env.OccurredAt)
		if err != nil {
			return fmt.Errorf("event %s: %w", env.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, env.ID.String(), env.Type, env.SKU, env.Field,
			string(payload), at); err != nil {
			return fmt.Errorf("insert event %s: %w", env.ID, err)
		}
	}
	return tx.Commit()
}

// Pending returns unpublished envelopes in insertion order.
func (s *OutboxSink) Pending(ctx context.Context, limit int) ([]Envelope, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM product_events WHERE published_at IS NULL ORDER BY rowid LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query outbox: %w", err)
	}
	defer rows.Close()

	var out []Envelope
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan outbox row: %w", err)
		}
		var env Envelope
		if err := j.Unmarshal([]byte(payload), &env); err != nil {
			return nil, fmt.Errorf("decode outbox payload: %w", err)
		}
		out = append(out, env)
	}
	return out, rows.Err()
}

// MarkPublished stamps the given envelopes as delivered.
func (s *OutboxSink) MarkPublished(ctx context.Context, ids ...string) error {
	now, err := timestamps.Encode(time.Now())
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := s.db.ExecContext(ctx, `UPDATE product_events SET published_at = ? WHERE id = ?`, now, id); err != nil {
			return fmt.Errorf("mark event %s published: %w", id, err)
		}
	}
	return nil
}

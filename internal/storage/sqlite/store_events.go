package sqlite

import (
	"context"
	"fmt"

	"github.com/louisbranch/demesne/internal/kingdom/event"
	"github.com/louisbranch/demesne/internal/storage"
)

// AppendEvent assigns the next sequence number for the kingdom and
// persists the event inside one transaction.
func (s *Store) AppendEvent(ctx context.Context, evt event.Event) (event.Event, error) {
	if err := ctx.Err(); err != nil {
		return event.Event{}, err
	}
	if s == nil || s.sqlDB == nil {
		return event.Event{}, fmt.Errorf("storage is not configured")
	}
	if evt.KingdomID == "" {
		return event.Event{}, fmt.Errorf("kingdom id is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return event.Event{}, fmt.Errorf("begin append event: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var seq uint64
	row := tx.QueryRowContext(
		ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM events WHERE kingdom_id = ?`,
		evt.KingdomID,
	)
	if err := row.Scan(&seq); err != nil {
		return event.Event{}, fmt.Errorf("next event seq: %w", err)
	}
	evt.Seq = seq

	payload := evt.PayloadJSON
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO events (
		   kingdom_id, seq, timestamp, type, actor_type, actor_id,
		   entity_type, entity_id, payload
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		evt.KingdomID,
		evt.Seq,
		toMillis(evt.Timestamp),
		string(evt.Type),
		string(evt.ActorType),
		evt.ActorID,
		evt.EntityType,
		evt.EntityID,
		string(payload),
	)
	if err != nil {
		return event.Event{}, fmt.Errorf("append event: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return event.Event{}, fmt.Errorf("commit append event: %w", err)
	}
	return evt, nil
}

// ListEvents returns events for a kingdom in ascending sequence order.
// A limit > 0 returns only the most recent events.
func (s *Store) ListEvents(ctx context.Context, kingdomID string, limit int) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	query := `SELECT kingdom_id, seq, timestamp, type, actor_type, actor_id,
	                 entity_type, entity_id, payload
	            FROM events
	           WHERE kingdom_id = ?
	           ORDER BY seq ASC`
	args := []any{kingdomID}
	if limit > 0 {
		query = `SELECT kingdom_id, seq, timestamp, type, actor_type, actor_id,
		                entity_type, entity_id, payload
		           FROM (SELECT * FROM events WHERE kingdom_id = ? ORDER BY seq DESC LIMIT ?)
		          ORDER BY seq ASC`
		args = append(args, limit)
	}

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var out []event.Event
	for rows.Next() {
		var evt event.Event
		var eventType, actorType, payload string
		var timestamp int64
		if err := rows.Scan(
			&evt.KingdomID,
			&evt.Seq,
			&timestamp,
			&eventType,
			&actorType,
			&evt.ActorID,
			&evt.EntityType,
			&evt.EntityID,
			&payload,
		); err != nil {
			return nil, fmt.Errorf("list events: %w", err)
		}
		evt.Type = event.Type(eventType)
		evt.ActorType = event.ActorType(actorType)
		evt.Timestamp = fromMillis(timestamp)
		evt.PayloadJSON = []byte(payload)
		out = append(out, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return out, nil
}

var _ storage.EventStore = (*Store)(nil)

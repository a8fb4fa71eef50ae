package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	kingdomdomain "github.com/louisbranch/demesne/internal/kingdom/domain"
	"github.com/louisbranch/demesne/internal/storage"
	turndomain "github.com/louisbranch/demesne/internal/turn/domain"
)

// PutKingdom inserts or replaces one kingdom record.
func (s *Store) PutKingdom(ctx context.Context, kingdom kingdomdomain.Kingdom) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if kingdom.ID == "" {
		return fmt.Errorf("kingdom id is required")
	}

	resources, err := json.Marshal(kingdom.Resources)
	if err != nil {
		return fmt.Errorf("marshal resources: %w", err)
	}
	flags, err := json.Marshal(kingdom.Flags)
	if err != nil {
		return fmt.Errorf("marshal flags: %w", err)
	}
	tags, err := json.Marshal(kingdom.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}
	notes, err := json.Marshal(kingdom.Notes)
	if err != nil {
		return fmt.Errorf("marshal notes: %w", err)
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO kingdoms (
		   id, name, level, fame, unrest, resources, flags, tags, notes,
		   turn, phase, created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   name = excluded.name,
		   level = excluded.level,
		   fame = excluded.fame,
		   unrest = excluded.unrest,
		   resources = excluded.resources,
		   flags = excluded.flags,
		   tags = excluded.tags,
		   notes = excluded.notes,
		   turn = excluded.turn,
		   phase = excluded.phase,
		   updated_at = excluded.updated_at`,
		kingdom.ID,
		kingdom.Name,
		kingdom.Level,
		kingdom.Fame,
		kingdom.Unrest,
		string(resources),
		string(flags),
		string(tags),
		string(notes),
		kingdom.Turn,
		kingdom.Phase.String(),
		toMillis(kingdom.CreatedAt),
		toMillis(kingdom.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put kingdom: %w", err)
	}
	return nil
}

// GetKingdom returns one kingdom by ID.
func (s *Store) GetKingdom(ctx context.Context, kingdomID string) (kingdomdomain.Kingdom, error) {
	if err := ctx.Err(); err != nil {
		return kingdomdomain.Kingdom{}, err
	}
	if s == nil || s.sqlDB == nil {
		return kingdomdomain.Kingdom{}, fmt.Errorf("storage is not configured")
	}
	if kingdomID == "" {
		return kingdomdomain.Kingdom{}, fmt.Errorf("kingdom id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, name, level, fame, unrest, resources, flags, tags, notes,
		        turn, phase, created_at, updated_at
		   FROM kingdoms
		  WHERE id = ?`,
		kingdomID,
	)

	var kingdom kingdomdomain.Kingdom
	var resources, flags, tags, notes, phase string
	var createdAt, updatedAt int64
	err := row.Scan(
		&kingdom.ID,
		&kingdom.Name,
		&kingdom.Level,
		&kingdom.Fame,
		&kingdom.Unrest,
		&resources,
		&flags,
		&tags,
		&notes,
		&kingdom.Turn,
		&phase,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return kingdomdomain.Kingdom{}, storage.ErrNotFound
		}
		return kingdomdomain.Kingdom{}, fmt.Errorf("get kingdom: %w", err)
	}

	if err := json.Unmarshal([]byte(resources), &kingdom.Resources); err != nil {
		return kingdomdomain.Kingdom{}, fmt.Errorf("unmarshal resources: %w", err)
	}
	if err := json.Unmarshal([]byte(flags), &kingdom.Flags); err != nil {
		return kingdomdomain.Kingdom{}, fmt.Errorf("unmarshal flags: %w", err)
	}
	if err := json.Unmarshal([]byte(tags), &kingdom.Tags); err != nil {
		return kingdomdomain.Kingdom{}, fmt.Errorf("unmarshal tags: %w", err)
	}
	if err := json.Unmarshal([]byte(notes), &kingdom.Notes); err != nil {
		return kingdomdomain.Kingdom{}, fmt.Errorf("unmarshal notes: %w", err)
	}
	parsed, err := turndomain.ParsePhase(phase)
	if err != nil {
		return kingdomdomain.Kingdom{}, fmt.Errorf("parse phase: %w", err)
	}
	kingdom.Phase = parsed
	kingdom.CreatedAt = fromMillis(createdAt)
	kingdom.UpdatedAt = fromMillis(updatedAt)
	return kingdom, nil
}

var _ storage.KingdomStore = (*Store)(nil)

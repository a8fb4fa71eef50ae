package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/louisbranch/demesne/internal/core/check"
	resolutiondomain "github.com/louisbranch/demesne/internal/resolution/domain"
	"github.com/louisbranch/demesne/internal/storage"
)

// PutResolution inserts or replaces one resolution record.
func (s *Store) PutResolution(ctx context.Context, resolution resolutiondomain.Resolution) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if resolution.ID == "" {
		return fmt.Errorf("resolution id is required")
	}

	modifiers, err := json.Marshal(resolution.Modifiers)
	if err != nil {
		return fmt.Errorf("marshal modifiers: %w", err)
	}
	rerollUsed := 0
	if resolution.RerollUsed {
		rerollUsed = 1
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO resolutions (
		   id, kingdom_id, check_id, actor_name, skill, die, modifiers,
		   total, dc, outcome, state, reroll_used, created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   die = excluded.die,
		   modifiers = excluded.modifiers,
		   total = excluded.total,
		   outcome = excluded.outcome,
		   state = excluded.state,
		   reroll_used = excluded.reroll_used,
		   updated_at = excluded.updated_at`,
		resolution.ID,
		resolution.KingdomID,
		resolution.CheckID,
		resolution.ActorName,
		resolution.Skill,
		resolution.Die,
		string(modifiers),
		resolution.Total,
		resolution.DC,
		resolution.Outcome.String(),
		resolution.State.String(),
		rerollUsed,
		toMillis(resolution.CreatedAt),
		toMillis(resolution.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put resolution: %w", err)
	}
	return nil
}

// GetResolution returns one resolution by ID.
func (s *Store) GetResolution(ctx context.Context, resolutionID string) (resolutiondomain.Resolution, error) {
	if err := ctx.Err(); err != nil {
		return resolutiondomain.Resolution{}, err
	}
	if s == nil || s.sqlDB == nil {
		return resolutiondomain.Resolution{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, kingdom_id, check_id, actor_name, skill, die, modifiers,
		        total, dc, outcome, state, reroll_used, created_at, updated_at
		   FROM resolutions
		  WHERE id = ?`,
		resolutionID,
	)
	resolution, err := scanResolution(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return resolutiondomain.Resolution{}, storage.ErrNotFound
		}
		return resolutiondomain.Resolution{}, fmt.Errorf("get resolution: %w", err)
	}
	return resolution, nil
}

// ListPendingResolutions returns pending resolutions for one kingdom in
// creation order.
func (s *Store) ListPendingResolutions(ctx context.Context, kingdomID string) ([]resolutiondomain.Resolution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, kingdom_id, check_id, actor_name, skill, die, modifiers,
		        total, dc, outcome, state, reroll_used, created_at, updated_at
		   FROM resolutions
		  WHERE kingdom_id = ? AND state = ?
		  ORDER BY created_at ASC, id ASC`,
		kingdomID,
		resolutiondomain.StatePending.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list pending resolutions: %w", err)
	}
	defer rows.Close()

	var out []resolutiondomain.Resolution
	for rows.Next() {
		resolution, err := scanResolution(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list pending resolutions: %w", err)
		}
		out = append(out, resolution)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pending resolutions: %w", err)
	}
	return out, nil
}

func scanResolution(scan func(dest ...any) error) (resolutiondomain.Resolution, error) {
	var resolution resolutiondomain.Resolution
	var modifiers, outcome, state string
	var rerollUsed int
	var createdAt, updatedAt int64
	if err := scan(
		&resolution.ID,
		&resolution.KingdomID,
		&resolution.CheckID,
		&resolution.ActorName,
		&resolution.Skill,
		&resolution.Die,
		&modifiers,
		&resolution.Total,
		&resolution.DC,
		&outcome,
		&state,
		&rerollUsed,
		&createdAt,
		&updatedAt,
	); err != nil {
		return resolutiondomain.Resolution{}, err
	}
	if err := json.Unmarshal([]byte(modifiers), &resolution.Modifiers); err != nil {
		return resolutiondomain.Resolution{}, fmt.Errorf("unmarshal modifiers: %w", err)
	}
	resolution.Outcome = check.ParseOutcome(outcome)
	resolution.State = resolutiondomain.ParseState(state)
	resolution.RerollUsed = rerollUsed != 0
	resolution.CreatedAt = fromMillis(createdAt)
	resolution.UpdatedAt = fromMillis(updatedAt)
	return resolution, nil
}

var _ storage.ResolutionStore = (*Store)(nil)

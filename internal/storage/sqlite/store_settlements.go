package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	settlementdomain "github.com/louisbranch/demesne/internal/settlement/domain"
	"github.com/louisbranch/demesne/internal/storage"
)

// PutSettlement inserts or replaces one settlement record.
func (s *Store) PutSettlement(ctx context.Context, settlement settlementdomain.Settlement) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if settlement.ID == "" {
		return fmt.Errorf("settlement id is required")
	}

	built, err := json.Marshal(settlement.Built)
	if err != nil {
		return fmt.Errorf("marshal built structures: %w", err)
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO settlements (id, kingdom_id, name, tier, built, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   name = excluded.name,
		   tier = excluded.tier,
		   built = excluded.built,
		   updated_at = excluded.updated_at`,
		settlement.ID,
		settlement.KingdomID,
		settlement.Name,
		settlement.Tier,
		string(built),
		toMillis(settlement.CreatedAt),
		toMillis(settlement.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put settlement: %w", err)
	}
	return nil
}

// GetSettlement returns one settlement by ID.
func (s *Store) GetSettlement(ctx context.Context, settlementID string) (settlementdomain.Settlement, error) {
	if err := ctx.Err(); err != nil {
		return settlementdomain.Settlement{}, err
	}
	if s == nil || s.sqlDB == nil {
		return settlementdomain.Settlement{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, kingdom_id, name, tier, built, created_at, updated_at
		   FROM settlements
		  WHERE id = ?`,
		settlementID,
	)
	settlement, err := scanSettlement(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return settlementdomain.Settlement{}, storage.ErrNotFound
		}
		return settlementdomain.Settlement{}, fmt.Errorf("get settlement: %w", err)
	}
	return settlement, nil
}

// ListSettlements returns the settlements of one kingdom ordered by ID.
func (s *Store) ListSettlements(ctx context.Context, kingdomID string) ([]settlementdomain.Settlement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, kingdom_id, name, tier, built, created_at, updated_at
		   FROM settlements
		  WHERE kingdom_id = ?
		  ORDER BY id ASC`,
		kingdomID,
	)
	if err != nil {
		return nil, fmt.Errorf("list settlements: %w", err)
	}
	defer rows.Close()

	var out []settlementdomain.Settlement
	for rows.Next() {
		settlement, err := scanSettlement(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list settlements: %w", err)
		}
		out = append(out, settlement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list settlements: %w", err)
	}
	return out, nil
}

func scanSettlement(scan func(dest ...any) error) (settlementdomain.Settlement, error) {
	var settlement settlementdomain.Settlement
	var built string
	var createdAt, updatedAt int64
	if err := scan(
		&settlement.ID,
		&settlement.KingdomID,
		&settlement.Name,
		&settlement.Tier,
		&built,
		&createdAt,
		&updatedAt,
	); err != nil {
		return settlementdomain.Settlement{}, err
	}
	if err := json.Unmarshal([]byte(built), &settlement.Built); err != nil {
		return settlementdomain.Settlement{}, fmt.Errorf("unmarshal built structures: %w", err)
	}
	settlement.CreatedAt = fromMillis(createdAt)
	settlement.UpdatedAt = fromMillis(updatedAt)
	return settlement, nil
}

var _ storage.SettlementStore = (*Store)(nil)

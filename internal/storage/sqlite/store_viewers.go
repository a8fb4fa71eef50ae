package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/louisbranch/demesne/internal/storage"
	turndomain "github.com/louisbranch/demesne/internal/turn/domain"
)

// PutViewer inserts or replaces one viewer record.
func (s *Store) PutViewer(ctx context.Context, viewer turndomain.Viewer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if viewer.KingdomID == "" || viewer.ViewerID == "" {
		return fmt.Errorf("kingdom id and viewer id are required")
	}

	locked := 0
	if viewer.Locked {
		locked = 1
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO viewers (kingdom_id, viewer_id, viewing, locked, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (kingdom_id, viewer_id) DO UPDATE SET
		   viewing = excluded.viewing,
		   locked = excluded.locked,
		   updated_at = excluded.updated_at`,
		viewer.KingdomID,
		viewer.ViewerID,
		viewer.Viewing.String(),
		locked,
		toMillis(viewer.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put viewer: %w", err)
	}
	return nil
}

// GetViewer returns one viewer record.
func (s *Store) GetViewer(ctx context.Context, kingdomID, viewerID string) (turndomain.Viewer, error) {
	if err := ctx.Err(); err != nil {
		return turndomain.Viewer{}, err
	}
	if s == nil || s.sqlDB == nil {
		return turndomain.Viewer{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT kingdom_id, viewer_id, viewing, locked, updated_at
		   FROM viewers
		  WHERE kingdom_id = ? AND viewer_id = ?`,
		kingdomID,
		viewerID,
	)

	var viewer turndomain.Viewer
	var viewing string
	var locked int
	var updatedAt int64
	if err := row.Scan(&viewer.KingdomID, &viewer.ViewerID, &viewing, &locked, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return turndomain.Viewer{}, storage.ErrNotFound
		}
		return turndomain.Viewer{}, fmt.Errorf("get viewer: %w", err)
	}

	parsed, err := turndomain.ParsePhase(viewing)
	if err != nil {
		return turndomain.Viewer{}, fmt.Errorf("parse viewing phase: %w", err)
	}
	viewer.Viewing = parsed
	viewer.Locked = locked != 0
	viewer.UpdatedAt = fromMillis(updatedAt)
	return viewer, nil
}

var _ storage.ViewerStore = (*Store)(nil)

// Package service exposes phase navigation operations: the authoritative
// phase pointer, per-viewer viewing pointers, and the viewing lock.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/louisbranch/demesne/internal/kingdom/event"
	"github.com/louisbranch/demesne/internal/platform/errors"
	"github.com/louisbranch/demesne/internal/storage"
	turndomain "github.com/louisbranch/demesne/internal/turn/domain"

	stderrors "errors"
)

// Service handles turn phase navigation for kingdoms and viewers.
type Service struct {
	store storage.Store
	now   func() time.Time
}

// New returns a turn service backed by the given store.
func New(store storage.Store) *Service {
	return &Service{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// AdvanceResult reports the outcome of advancing the authoritative phase.
type AdvanceResult struct {
	FromPhase turndomain.Phase
	ToPhase   turndomain.Phase
	Turn      int
	// TurnRolled reports whether advancing wrapped into a new turn.
	TurnRolled bool
}

// AdvancePhase moves the authoritative phase pointer forward. Wrapping
// past the last phase starts the next turn. GM only; the caller enforces
// authorization.
func (s *Service) AdvancePhase(ctx context.Context, kingdomID, gmID string) (AdvanceResult, error) {
	kingdom, err := s.store.GetKingdom(ctx, kingdomID)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return AdvanceResult{}, errors.WithMetadata(errors.CodeNotFound, "kingdom not found", map[string]string{"kingdom_id": kingdomID})
		}
		return AdvanceResult{}, fmt.Errorf("load kingdom: %w", err)
	}

	from := kingdom.Phase
	next, rolled := turndomain.Advance(kingdom.Phase)
	kingdom.Phase = next
	if rolled {
		kingdom.Turn++
	}
	kingdom.UpdatedAt = s.now()
	if err := s.store.PutKingdom(ctx, kingdom); err != nil {
		return AdvanceResult{}, fmt.Errorf("persist kingdom: %w", err)
	}

	payload, err := json.Marshal(event.PhaseAdvancedPayload{
		FromPhase:  from.String(),
		ToPhase:    next.String(),
		Turn:       kingdom.Turn,
		TurnRolled: rolled,
	})
	if err != nil {
		return AdvanceResult{}, fmt.Errorf("marshal advance payload: %w", err)
	}
	_, err = s.store.AppendEvent(ctx, event.Event{
		KingdomID:   kingdomID,
		Timestamp:   kingdom.UpdatedAt,
		Type:        event.TypePhaseAdvanced,
		ActorType:   event.ActorTypeGM,
		ActorID:     gmID,
		EntityType:  "turn",
		EntityID:    kingdomID,
		PayloadJSON: payload,
	})
	if err != nil {
		return AdvanceResult{}, fmt.Errorf("record advance event: %w", err)
	}

	return AdvanceResult{FromPhase: from, ToPhase: next, Turn: kingdom.Turn, TurnRolled: rolled}, nil
}

// GetViewer returns the viewer's phase view state. Unknown viewers start
// locked to the authoritative phase. Locked viewers always report the
// authoritative phase as their viewing pointer.
func (s *Service) GetViewer(ctx context.Context, kingdomID, viewerID string) (turndomain.Viewer, error) {
	if kingdomID == "" {
		return turndomain.Viewer{}, errors.New(errors.CodeTurnEmptyKingdomID, "kingdom id is required")
	}
	if viewerID == "" {
		return turndomain.Viewer{}, errors.New(errors.CodeTurnEmptyViewerID, "viewer id is required")
	}

	kingdom, err := s.store.GetKingdom(ctx, kingdomID)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return turndomain.Viewer{}, errors.WithMetadata(errors.CodeNotFound, "kingdom not found", map[string]string{"kingdom_id": kingdomID})
		}
		return turndomain.Viewer{}, fmt.Errorf("load kingdom: %w", err)
	}

	viewer, err := s.store.GetViewer(ctx, kingdomID, viewerID)
	if stderrors.Is(err, storage.ErrNotFound) {
		viewer = turndomain.Viewer{
			KingdomID: kingdomID,
			ViewerID:  viewerID,
			Viewing:   kingdom.Phase,
			Locked:    true,
			UpdatedAt: s.now(),
		}
		err = nil
	}
	if err != nil {
		return turndomain.Viewer{}, fmt.Errorf("load viewer: %w", err)
	}
	if viewer.Locked {
		viewer.Viewing = kingdom.Phase
	}
	return viewer, nil
}

// SetViewing moves a viewer's viewing pointer. Locked viewers need a
// press-and-hold of at least turndomain.UnlockHold, which also clears the
// lock.
func (s *Service) SetViewing(ctx context.Context, kingdomID, viewerID string, target turndomain.Phase, hold time.Duration) (turndomain.Viewer, error) {
	viewer, err := s.GetViewer(ctx, kingdomID, viewerID)
	if err != nil {
		return turndomain.Viewer{}, err
	}

	wasLocked := viewer.Locked
	moved, err := viewer.SetViewing(target, hold)
	if err != nil {
		switch {
		case stderrors.Is(err, turndomain.ErrInvalidPhase):
			return turndomain.Viewer{}, errors.New(errors.CodeTurnInvalidPhase, "invalid turn phase")
		case stderrors.Is(err, turndomain.ErrViewingLocked):
			return turndomain.Viewer{}, errors.New(errors.CodeTurnViewingLocked, "phase view is locked to the current phase")
		}
		return turndomain.Viewer{}, fmt.Errorf("set viewing: %w", err)
	}

	moved.UpdatedAt = s.now()
	if err := s.store.PutViewer(ctx, moved); err != nil {
		return turndomain.Viewer{}, fmt.Errorf("persist viewer: %w", err)
	}

	payload, err := json.Marshal(event.PhaseViewedPayload{
		ViewerID: viewerID,
		Phase:    moved.Viewing.String(),
		Unlocked: wasLocked && !moved.Locked,
	})
	if err != nil {
		return turndomain.Viewer{}, fmt.Errorf("marshal viewed payload: %w", err)
	}
	_, err = s.store.AppendEvent(ctx, event.Event{
		KingdomID:   kingdomID,
		Timestamp:   moved.UpdatedAt,
		Type:        event.TypePhaseViewed,
		ActorType:   event.ActorTypePlayer,
		ActorID:     viewerID,
		EntityType:  "turn",
		EntityID:    kingdomID,
		PayloadJSON: payload,
	})
	if err != nil {
		return turndomain.Viewer{}, fmt.Errorf("record viewed event: %w", err)
	}
	return moved, nil
}

// SetLock toggles a viewer's lock. Locking snaps the viewing pointer back
// to the authoritative phase.
func (s *Service) SetLock(ctx context.Context, kingdomID, viewerID string, locked bool) (turndomain.Viewer, error) {
	viewer, err := s.GetViewer(ctx, kingdomID, viewerID)
	if err != nil {
		return turndomain.Viewer{}, err
	}

	kingdom, err := s.store.GetKingdom(ctx, kingdomID)
	if err != nil {
		return turndomain.Viewer{}, fmt.Errorf("load kingdom: %w", err)
	}

	updated := viewer.SetLocked(locked, kingdom.Phase)
	updated.UpdatedAt = s.now()
	if err := s.store.PutViewer(ctx, updated); err != nil {
		return turndomain.Viewer{}, fmt.Errorf("persist viewer: %w", err)
	}
	return updated, nil
}

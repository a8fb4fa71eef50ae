// Package service exposes kingdom lifecycle operations backed by storage.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kingdomdomain "github.com/louisbranch/demesne/internal/kingdom/domain"
	"github.com/louisbranch/demesne/internal/kingdom/event"
	"github.com/louisbranch/demesne/internal/platform/errors"
	"github.com/louisbranch/demesne/internal/platform/id"
	"github.com/louisbranch/demesne/internal/storage"

	stderrors "errors"
)

// Service handles kingdom creation and reads.
type Service struct {
	store storage.Store
	now   func() time.Time
	newID func() (string, error)
}

// New returns a kingdom service backed by the given store.
func New(store storage.Store) *Service {
	return &Service{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		newID: id.NewID,
	}
}

// CreateKingdom creates a kingdom and records its creation event.
func (s *Service) CreateKingdom(ctx context.Context, input kingdomdomain.CreateKingdomInput) (kingdomdomain.Kingdom, error) {
	kingdom, err := kingdomdomain.CreateKingdom(input, s.now, s.newID)
	if err != nil {
		if stderrors.Is(err, kingdomdomain.ErrEmptyName) {
			return kingdomdomain.Kingdom{}, errors.New(errors.CodeKingdomNameEmpty, "kingdom name is required")
		}
		return kingdomdomain.Kingdom{}, fmt.Errorf("create kingdom: %w", err)
	}

	if err := s.store.PutKingdom(ctx, kingdom); err != nil {
		return kingdomdomain.Kingdom{}, fmt.Errorf("persist kingdom: %w", err)
	}

	payload, err := json.Marshal(event.KingdomCreatedPayload{Name: kingdom.Name, Fame: kingdom.Fame})
	if err != nil {
		return kingdomdomain.Kingdom{}, fmt.Errorf("marshal created payload: %w", err)
	}
	_, err = s.store.AppendEvent(ctx, event.Event{
		KingdomID:   kingdom.ID,
		Timestamp:   kingdom.CreatedAt,
		Type:        event.TypeKingdomCreated,
		ActorType:   event.ActorTypeSystem,
		EntityType:  "kingdom",
		EntityID:    kingdom.ID,
		PayloadJSON: payload,
	})
	if err != nil {
		return kingdomdomain.Kingdom{}, fmt.Errorf("record created event: %w", err)
	}
	return kingdom, nil
}

// GetKingdom returns one kingdom by ID.
func (s *Service) GetKingdom(ctx context.Context, kingdomID string) (kingdomdomain.Kingdom, error) {
	kingdom, err := s.store.GetKingdom(ctx, kingdomID)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return kingdomdomain.Kingdom{}, errors.WithMetadata(errors.CodeNotFound, "kingdom not found", map[string]string{"kingdom_id": kingdomID})
		}
		return kingdomdomain.Kingdom{}, fmt.Errorf("get kingdom: %w", err)
	}
	return kingdom, nil
}

// ListEvents returns the kingdom's event journal, most recent last. A
// limit > 0 returns only the tail.
func (s *Service) ListEvents(ctx context.Context, kingdomID string, limit int) ([]event.Event, error) {
	events, err := s.store.ListEvents(ctx, kingdomID, limit)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

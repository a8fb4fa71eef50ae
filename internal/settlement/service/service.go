// Package service exposes settlement management: creation, structure
// selection previews with the tier cascade, and commits against capacity.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/louisbranch/demesne/internal/content"
	"github.com/louisbranch/demesne/internal/kingdom/event"
	"github.com/louisbranch/demesne/internal/platform/errors"
	"github.com/louisbranch/demesne/internal/platform/id"
	settlementdomain "github.com/louisbranch/demesne/internal/settlement/domain"
	"github.com/louisbranch/demesne/internal/storage"

	stderrors "errors"
)

// Service handles settlements and their structures.
type Service struct {
	store   storage.Store
	now     func() time.Time
	newID   func() (string, error)
	catalog func() ([]settlementdomain.Structure, error)
}

// New returns a settlement service backed by the given store and the
// embedded structure catalog.
func New(store storage.Store) *Service {
	return &Service{
		store:   store,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   id.NewID,
		catalog: content.Structures,
	}
}

// CreateSettlement creates a settlement and records its creation event.
func (s *Service) CreateSettlement(ctx context.Context, input settlementdomain.CreateSettlementInput) (settlementdomain.Settlement, error) {
	if _, err := s.store.GetKingdom(ctx, input.KingdomID); err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return settlementdomain.Settlement{}, errors.WithMetadata(errors.CodeNotFound, "kingdom not found", map[string]string{"kingdom_id": input.KingdomID})
		}
		return settlementdomain.Settlement{}, fmt.Errorf("load kingdom: %w", err)
	}

	settlement, err := settlementdomain.CreateSettlement(input, s.now, s.newID)
	if err != nil {
		switch {
		case stderrors.Is(err, settlementdomain.ErrEmptyKingdomID):
			return settlementdomain.Settlement{}, errors.New(errors.CodeSettlementEmptyKingdomID, "kingdom id is required")
		case stderrors.Is(err, settlementdomain.ErrEmptyName):
			return settlementdomain.Settlement{}, errors.New(errors.CodeSettlementNameEmpty, "settlement name is required")
		case stderrors.Is(err, settlementdomain.ErrInvalidTier):
			return settlementdomain.Settlement{}, errors.New(errors.CodeSettlementInvalidTier, "settlement tier must be at least 1")
		}
		return settlementdomain.Settlement{}, fmt.Errorf("create settlement: %w", err)
	}

	if err := s.store.PutSettlement(ctx, settlement); err != nil {
		return settlementdomain.Settlement{}, fmt.Errorf("persist settlement: %w", err)
	}

	payload, err := json.Marshal(event.SettlementCreatedPayload{
		SettlementID: settlement.ID,
		Name:         settlement.Name,
		Tier:         settlement.Tier,
	})
	if err != nil {
		return settlementdomain.Settlement{}, fmt.Errorf("marshal created payload: %w", err)
	}
	_, err = s.store.AppendEvent(ctx, event.Event{
		KingdomID:   settlement.KingdomID,
		Timestamp:   settlement.CreatedAt,
		Type:        event.TypeSettlementCreated,
		ActorType:   event.ActorTypeGM,
		EntityType:  "settlement",
		EntityID:    settlement.ID,
		PayloadJSON: payload,
	})
	if err != nil {
		return settlementdomain.Settlement{}, fmt.Errorf("record created event: %w", err)
	}
	return settlement, nil
}

// GetSettlement returns one settlement by ID.
func (s *Service) GetSettlement(ctx context.Context, settlementID string) (settlementdomain.Settlement, error) {
	settlement, err := s.store.GetSettlement(ctx, settlementID)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return settlementdomain.Settlement{}, errors.WithMetadata(errors.CodeNotFound, "settlement not found", map[string]string{"settlement_id": settlementID})
		}
		return settlementdomain.Settlement{}, fmt.Errorf("get settlement: %w", err)
	}
	return settlement, nil
}

// ListSettlements returns a kingdom's settlements.
func (s *Service) ListSettlements(ctx context.Context, kingdomID string) ([]settlementdomain.Settlement, error) {
	settlements, err := s.store.ListSettlements(ctx, kingdomID)
	if err != nil {
		return nil, fmt.Errorf("list settlements: %w", err)
	}
	return settlements, nil
}

// SelectionPreview is the result of applying selects and deselects in
// order against a settlement's current structures.
type SelectionPreview struct {
	// Pending lists the structure ids that would be built, ordered by
	// category then tier.
	Pending []string `json:"pending"`
	// Warnings lists pending structures gated behind a higher
	// settlement tier. Warnings do not block a commit.
	Warnings []string `json:"warnings,omitempty"`
	// Remaining is how much structure capacity the settlement has left
	// after the pending set.
	Remaining int `json:"remaining"`
}

// PreviewSelection applies an ordered mix of selects and deselects to the
// settlement and reports the resulting pending set. Selecting a tier
// cascades to its unmet lower tiers; over-limit selections are dropped
// silently.
func (s *Service) PreviewSelection(ctx context.Context, settlementID string, selects, deselects []string) (SelectionPreview, error) {
	settlement, err := s.GetSettlement(ctx, settlementID)
	if err != nil {
		return SelectionPreview{}, err
	}
	selection, err := s.newSelection(settlement)
	if err != nil {
		return SelectionPreview{}, err
	}

	for _, structureID := range selects {
		selection.Select(structureID)
	}
	for _, structureID := range deselects {
		selection.Deselect(structureID)
	}

	remaining := settlement.Capacity() - len(settlement.Built) - selection.Count()
	if remaining < 0 {
		remaining = 0
	}
	return SelectionPreview{
		Pending:   selection.Pending(),
		Warnings:  selection.Warnings(settlement.Tier),
		Remaining: remaining,
	}, nil
}

// CommitStructures builds the selected structures in the settlement. The
// selection passes through the same cascade as PreviewSelection, then the
// commit is checked against the settlement's capacity.
func (s *Service) CommitStructures(ctx context.Context, settlementID string, selects []string, gmID string) (settlementdomain.Settlement, error) {
	settlement, err := s.GetSettlement(ctx, settlementID)
	if err != nil {
		return settlementdomain.Settlement{}, err
	}
	selection, err := s.newSelection(settlement)
	if err != nil {
		return settlementdomain.Settlement{}, err
	}

	for _, structureID := range selects {
		if settlement.HasBuilt(structureID) {
			return settlementdomain.Settlement{}, errors.WithMetadata(errors.CodeStructureAlreadyBuilt, "structure already built", map[string]string{"structure_id": structureID})
		}
		selection.Select(structureID)
	}
	pending := selection.Pending()
	if len(pending) == 0 {
		return settlement, nil
	}

	if len(settlement.Built)+len(pending) > settlement.Capacity() {
		return settlementdomain.Settlement{}, errors.WithMetadata(errors.CodeSettlementCapacityExceeded, "settlement structure capacity exceeded", map[string]string{
			"settlement_id": settlement.ID,
			"capacity":      fmt.Sprint(settlement.Capacity()),
		})
	}

	warnings := selection.Warnings(settlement.Tier)
	settlement.Built = append(settlement.Built, pending...)
	settlement.UpdatedAt = s.now()
	if err := s.store.PutSettlement(ctx, settlement); err != nil {
		return settlementdomain.Settlement{}, fmt.Errorf("persist settlement: %w", err)
	}

	payload, err := json.Marshal(event.StructureAddedPayload{
		SettlementID: settlement.ID,
		StructureIDs: pending,
		Warnings:     warnings,
	})
	if err != nil {
		return settlementdomain.Settlement{}, fmt.Errorf("marshal added payload: %w", err)
	}
	_, err = s.store.AppendEvent(ctx, event.Event{
		KingdomID:   settlement.KingdomID,
		Timestamp:   settlement.UpdatedAt,
		Type:        event.TypeStructureAdded,
		ActorType:   event.ActorTypeGM,
		ActorID:     gmID,
		EntityType:  "settlement",
		EntityID:    settlement.ID,
		PayloadJSON: payload,
	})
	if err != nil {
		return settlementdomain.Settlement{}, fmt.Errorf("record added event: %w", err)
	}
	return settlement, nil
}

// RemoveStructures tears down built structures. Removing a tier cascades
// to the settlement's built same-category structures of equal or higher
// tier, so the category's tier ladder stays intact.
func (s *Service) RemoveStructures(ctx context.Context, settlementID string, structureIDs []string, gmID string) (settlementdomain.Settlement, error) {
	settlement, err := s.GetSettlement(ctx, settlementID)
	if err != nil {
		return settlementdomain.Settlement{}, err
	}
	catalog, err := s.catalog()
	if err != nil {
		return settlementdomain.Settlement{}, fmt.Errorf("load structure catalog: %w", err)
	}
	byID := make(map[string]settlementdomain.Structure, len(catalog))
	for _, structure := range catalog {
		byID[structure.ID] = structure
	}

	removedSet := make(map[string]struct{}, len(structureIDs))
	for _, structureID := range structureIDs {
		if !settlement.HasBuilt(structureID) {
			return settlementdomain.Settlement{}, errors.WithMetadata(errors.CodeStructureUnknown, "structure is not built in this settlement", map[string]string{"structure_id": structureID})
		}
		removedSet[structureID] = struct{}{}
		target, ok := byID[structureID]
		if !ok {
			continue
		}
		for _, builtID := range settlement.Built {
			built, ok := byID[builtID]
			if ok && built.Category == target.Category && built.Tier >= target.Tier {
				removedSet[builtID] = struct{}{}
			}
		}
	}
	if len(removedSet) == 0 {
		return settlement, nil
	}

	removed := make([]string, 0, len(removedSet))
	kept := make([]string, 0, len(settlement.Built))
	for _, builtID := range settlement.Built {
		if _, drop := removedSet[builtID]; drop {
			removed = append(removed, builtID)
		} else {
			kept = append(kept, builtID)
		}
	}
	settlement.Built = kept
	settlement.UpdatedAt = s.now()
	if err := s.store.PutSettlement(ctx, settlement); err != nil {
		return settlementdomain.Settlement{}, fmt.Errorf("persist settlement: %w", err)
	}

	payload, err := json.Marshal(event.StructureRemovedPayload{
		SettlementID: settlement.ID,
		StructureIDs: removed,
	})
	if err != nil {
		return settlementdomain.Settlement{}, fmt.Errorf("marshal removed payload: %w", err)
	}
	_, err = s.store.AppendEvent(ctx, event.Event{
		KingdomID:   settlement.KingdomID,
		Timestamp:   settlement.UpdatedAt,
		Type:        event.TypeStructureRemoved,
		ActorType:   event.ActorTypeGM,
		ActorID:     gmID,
		EntityType:  "settlement",
		EntityID:    settlement.ID,
		PayloadJSON: payload,
	})
	if err != nil {
		return settlementdomain.Settlement{}, fmt.Errorf("record removed event: %w", err)
	}
	return settlement, nil
}

func (s *Service) newSelection(settlement settlementdomain.Settlement) (*settlementdomain.Selection, error) {
	catalog, err := s.catalog()
	if err != nil {
		return nil, fmt.Errorf("load structure catalog: %w", err)
	}
	// Commits may carry multiple structures at once, so the selection
	// limit is the settlement's remaining capacity rather than the
	// single-pick default.
	limit := settlement.Capacity() - len(settlement.Built)
	return settlementdomain.NewSelection(catalog, settlement.Built, limit), nil
}

// Package service exposes check execution and outcome application. A
// check resolution stays pending until a GM confirms or rejects it, and
// may be rerolled once by spending fame.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/louisbranch/demesne/internal/content"
	kingdomdomain "github.com/louisbranch/demesne/internal/kingdom/domain"
	"github.com/louisbranch/demesne/internal/kingdom/event"
	"github.com/louisbranch/demesne/internal/platform/errors"
	"github.com/louisbranch/demesne/internal/platform/id"
	resolutiondomain "github.com/louisbranch/demesne/internal/resolution/domain"
	"github.com/louisbranch/demesne/internal/storage"

	stderrors "errors"
)

// rerollFameCost is how much fame one reroll spends.
const rerollFameCost = 1

// Service handles check rolls and their outcome lifecycle.
type Service struct {
	store       storage.Store
	now         func() time.Time
	newID       func() (string, error)
	lookupCheck func(checkID string) (resolutiondomain.CheckDefinition, bool)
	display     *displayCache
}

// New returns a resolution service backed by the given store and the
// embedded check catalog.
func New(store storage.Store) *Service {
	return &Service{
		store:       store,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       id.NewID,
		lookupCheck: content.CheckByID,
		display:     newDisplayCache(),
	}
}

// ExecuteInput describes one check roll request.
type ExecuteInput struct {
	KingdomID string
	CheckID   string
	ActorName string
	Skill     string
	Modifiers []resolutiondomain.Modifier
	// Seed drives the d20; zero seeds from the clock.
	Seed int64
}

// ExecuteCheck rolls a d20 against the named check and stores a pending
// resolution.
func (s *Service) ExecuteCheck(ctx context.Context, input ExecuteInput, actorType event.ActorType, actorID string) (resolutiondomain.Resolution, error) {
	def, ok := s.lookupCheck(input.CheckID)
	if !ok {
		return resolutiondomain.Resolution{}, errors.WithMetadata(errors.CodeResolutionUnknownCheck, "unknown check", map[string]string{"check_id": input.CheckID})
	}
	if _, err := s.store.GetKingdom(ctx, input.KingdomID); err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return resolutiondomain.Resolution{}, errors.WithMetadata(errors.CodeNotFound, "kingdom not found", map[string]string{"kingdom_id": input.KingdomID})
		}
		return resolutiondomain.Resolution{}, fmt.Errorf("load kingdom: %w", err)
	}

	seed := input.Seed
	if seed == 0 {
		seed = s.now().UnixNano()
	}
	resolution, err := resolutiondomain.Roll(def, resolutiondomain.RollInput{
		KingdomID: input.KingdomID,
		ActorName: input.ActorName,
		Skill:     input.Skill,
		Modifiers: input.Modifiers,
		Seed:      seed,
	}, s.now, s.newID)
	if err != nil {
		switch {
		case stderrors.Is(err, resolutiondomain.ErrEmptyActor):
			return resolutiondomain.Resolution{}, errors.New(errors.CodeResolutionEmptyActor, "actor name is required")
		case stderrors.Is(err, resolutiondomain.ErrInvalidSkill):
			return resolutiondomain.Resolution{}, errors.WithMetadata(errors.CodeResolutionInvalidSkill, "skill cannot be used for this check", map[string]string{"skill": input.Skill, "check_id": def.ID})
		}
		return resolutiondomain.Resolution{}, fmt.Errorf("roll check: %w", err)
	}

	if err := s.store.PutResolution(ctx, resolution); err != nil {
		return resolutiondomain.Resolution{}, fmt.Errorf("persist resolution: %w", err)
	}

	payload, err := json.Marshal(event.CheckResolvedPayload{
		CheckID:   resolution.CheckID,
		ActorName: resolution.ActorName,
		Skill:     resolution.Skill,
		Die:       resolution.Die,
		Modifier:  resolutiondomain.Sum(resolution.Modifiers),
		Total:     resolution.Total,
		DC:        resolution.DC,
		Outcome:   resolution.Outcome.String(),
	})
	if err != nil {
		return resolutiondomain.Resolution{}, fmt.Errorf("marshal resolved payload: %w", err)
	}
	_, err = s.store.AppendEvent(ctx, event.Event{
		KingdomID:   resolution.KingdomID,
		Timestamp:   resolution.CreatedAt,
		Type:        event.TypeCheckResolved,
		ActorType:   actorType,
		ActorID:     actorID,
		EntityType:  "resolution",
		EntityID:    resolution.ID,
		PayloadJSON: payload,
	})
	if err != nil {
		return resolutiondomain.Resolution{}, fmt.Errorf("record resolved event: %w", err)
	}
	return resolution, nil
}

// Reroll spends one fame to reroll a pending resolution. Each resolution
// may be rerolled once.
func (s *Service) Reroll(ctx context.Context, resolutionID string, seed int64, actorID string) (resolutiondomain.Resolution, error) {
	resolution, err := s.getResolution(ctx, resolutionID)
	if err != nil {
		return resolutiondomain.Resolution{}, err
	}
	if resolution.State != resolutiondomain.StatePending {
		return resolutiondomain.Resolution{}, errors.New(errors.CodeResolutionNotPending, "resolution is not pending")
	}
	if resolution.RerollUsed {
		return resolutiondomain.Resolution{}, errors.New(errors.CodeResolutionRerollUsed, "reroll already used for this check")
	}

	kingdom, err := s.store.GetKingdom(ctx, resolution.KingdomID)
	if err != nil {
		return resolutiondomain.Resolution{}, fmt.Errorf("load kingdom: %w", err)
	}
	if kingdom.Fame < rerollFameCost {
		return resolutiondomain.Resolution{}, errors.New(errors.CodeResolutionInsufficientFame, "not enough fame to reroll")
	}

	previous := resolution.Outcome
	if seed == 0 {
		seed = s.now().UnixNano()
	}
	rerolled := resolution.Reroll(seed, s.now)

	kingdom.Fame -= rerollFameCost
	kingdom.UpdatedAt = rerolled.UpdatedAt
	if err := s.store.PutKingdom(ctx, kingdom); err != nil {
		return resolutiondomain.Resolution{}, fmt.Errorf("persist fame spend: %w", err)
	}
	if err := s.store.PutResolution(ctx, rerolled); err != nil {
		return resolutiondomain.Resolution{}, fmt.Errorf("persist resolution: %w", err)
	}

	payload, err := json.Marshal(event.CheckRerolledPayload{
		CheckID:         rerolled.CheckID,
		FameSpent:       rerollFameCost,
		PreviousOutcome: previous.String(),
		Outcome:         rerolled.Outcome.String(),
	})
	if err != nil {
		return resolutiondomain.Resolution{}, fmt.Errorf("marshal reroll payload: %w", err)
	}
	_, err = s.store.AppendEvent(ctx, event.Event{
		KingdomID:   rerolled.KingdomID,
		Timestamp:   rerolled.UpdatedAt,
		Type:        event.TypeCheckRerolled,
		ActorType:   event.ActorTypePlayer,
		ActorID:     actorID,
		EntityType:  "resolution",
		EntityID:    rerolled.ID,
		PayloadJSON: payload,
	})
	if err != nil {
		return resolutiondomain.Resolution{}, fmt.Errorf("record reroll event: %w", err)
	}
	return rerolled, nil
}

// ApplyOutcome confirms a pending resolution and applies its outcome's
// state changes to the kingdom. GM only; the caller enforces
// authorization.
func (s *Service) ApplyOutcome(ctx context.Context, resolutionID, gmID string) (kingdomdomain.Kingdom, error) {
	resolution, err := s.getResolution(ctx, resolutionID)
	if err != nil {
		return kingdomdomain.Kingdom{}, err
	}
	switch resolution.State {
	case resolutiondomain.StateApplied:
		return kingdomdomain.Kingdom{}, errors.New(errors.CodeResolutionAlreadyApplied, "outcome already applied")
	case resolutiondomain.StatePending:
	default:
		return kingdomdomain.Kingdom{}, errors.New(errors.CodeResolutionNotPending, "resolution is not pending")
	}

	def, ok := s.lookupCheck(resolution.CheckID)
	if !ok {
		return kingdomdomain.Kingdom{}, errors.WithMetadata(errors.CodeResolutionUnknownCheck, "unknown check", map[string]string{"check_id": resolution.CheckID})
	}
	effect := def.Table.For(resolution.Outcome)

	kingdom, err := s.store.GetKingdom(ctx, resolution.KingdomID)
	if err != nil {
		return kingdomdomain.Kingdom{}, fmt.Errorf("load kingdom: %w", err)
	}
	kingdom.Apply(effect.Changes)
	kingdom.UpdatedAt = s.now()
	if err := s.store.PutKingdom(ctx, kingdom); err != nil {
		return kingdomdomain.Kingdom{}, fmt.Errorf("persist kingdom: %w", err)
	}

	resolution.State = resolutiondomain.StateApplied
	resolution.UpdatedAt = kingdom.UpdatedAt
	if err := s.store.PutResolution(ctx, resolution); err != nil {
		return kingdomdomain.Kingdom{}, fmt.Errorf("persist resolution: %w", err)
	}

	changes, err := json.Marshal(effect.Changes)
	if err != nil {
		return kingdomdomain.Kingdom{}, fmt.Errorf("marshal changes: %w", err)
	}
	payload, err := json.Marshal(event.OutcomeAppliedPayload{
		CheckID: resolution.CheckID,
		Outcome: resolution.Outcome.String(),
		Changes: changes,
	})
	if err != nil {
		return kingdomdomain.Kingdom{}, fmt.Errorf("marshal applied payload: %w", err)
	}
	_, err = s.store.AppendEvent(ctx, event.Event{
		KingdomID:   resolution.KingdomID,
		Timestamp:   resolution.UpdatedAt,
		Type:        event.TypeOutcomeApplied,
		ActorType:   event.ActorTypeGM,
		ActorID:     gmID,
		EntityType:  "resolution",
		EntityID:    resolution.ID,
		PayloadJSON: payload,
	})
	if err != nil {
		return kingdomdomain.Kingdom{}, fmt.Errorf("record applied event: %w", err)
	}
	return kingdom, nil
}

// CancelOutcome rejects a pending resolution without touching kingdom
// state. GM only; the caller enforces authorization.
func (s *Service) CancelOutcome(ctx context.Context, resolutionID, gmID, reason string) error {
	resolution, err := s.getResolution(ctx, resolutionID)
	if err != nil {
		return err
	}
	if resolution.State != resolutiondomain.StatePending {
		return errors.New(errors.CodeResolutionNotPending, "resolution is not pending")
	}

	resolution.State = resolutiondomain.StateCancelled
	resolution.UpdatedAt = s.now()
	if err := s.store.PutResolution(ctx, resolution); err != nil {
		return fmt.Errorf("persist resolution: %w", err)
	}

	payload, err := json.Marshal(event.OutcomeRejectedPayload{
		CheckID: resolution.CheckID,
		Reason:  reason,
	})
	if err != nil {
		return fmt.Errorf("marshal rejected payload: %w", err)
	}
	_, err = s.store.AppendEvent(ctx, event.Event{
		KingdomID:   resolution.KingdomID,
		Timestamp:   resolution.UpdatedAt,
		Type:        event.TypeOutcomeRejected,
		ActorType:   event.ActorTypeGM,
		ActorID:     gmID,
		EntityType:  "resolution",
		EntityID:    resolution.ID,
		PayloadJSON: payload,
	})
	if err != nil {
		return fmt.Errorf("record rejected event: %w", err)
	}
	return nil
}

// ListPending returns the kingdom's pending resolutions in creation order.
func (s *Service) ListPending(ctx context.Context, kingdomID string) ([]resolutiondomain.Resolution, error) {
	pending, err := s.store.ListPendingResolutions(ctx, kingdomID)
	if err != nil {
		return nil, fmt.Errorf("list pending resolutions: %w", err)
	}
	return pending, nil
}

// GetResolution returns one resolution by ID.
func (s *Service) GetResolution(ctx context.Context, resolutionID string) (resolutiondomain.Resolution, error) {
	return s.getResolution(ctx, resolutionID)
}

func (s *Service) getResolution(ctx context.Context, resolutionID string) (resolutiondomain.Resolution, error) {
	resolution, err := s.store.GetResolution(ctx, resolutionID)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return resolutiondomain.Resolution{}, errors.WithMetadata(errors.CodeNotFound, "resolution not found", map[string]string{"resolution_id": resolutionID})
		}
		return resolutiondomain.Resolution{}, fmt.Errorf("get resolution: %w", err)
	}
	return resolution, nil
}

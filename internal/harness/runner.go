package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kingdomdomain "github.com/louisbranch/demesne/internal/kingdom/domain"
	"github.com/louisbranch/demesne/internal/kingdom/event"
	"github.com/louisbranch/demesne/internal/platform/errors"
	resolutiondomain "github.com/louisbranch/demesne/internal/resolution/domain"
	resolutionservice "github.com/louisbranch/demesne/internal/resolution/service"
	"github.com/louisbranch/demesne/internal/storage"
	turnservice "github.com/louisbranch/demesne/internal/turn/service"
)

// gmActorID marks harness steps in the event journal.
const gmActorID = "harness"

type checkRunner interface {
	ExecuteCheck(ctx context.Context, input resolutionservice.ExecuteInput, actorType event.ActorType, actorID string) (resolutiondomain.Resolution, error)
	Reroll(ctx context.Context, resolutionID string, seed int64, actorID string) (resolutiondomain.Resolution, error)
	ApplyOutcome(ctx context.Context, resolutionID, gmID string) (kingdomdomain.Kingdom, error)
	CancelOutcome(ctx context.Context, resolutionID, gmID, reason string) error
}

type phaseRunner interface {
	AdvancePhase(ctx context.Context, kingdomID, gmID string) (turnservice.AdvanceResult, error)
}

// Runner executes incidents against a kingdom.
type Runner struct {
	checks checkRunner
	phases phaseRunner
	events storage.EventStore
	now    func() time.Time
}

// NewRunner returns an incident runner over the given services.
func NewRunner(checks *resolutionservice.Service, phases *turnservice.Service, events storage.EventStore) *Runner {
	return &Runner{
		checks: checks,
		phases: phases,
		events: events,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Run executes the incident's steps in order against the kingdom. The
// last rolled resolution is the target of apply, cancel, and reroll
// steps.
func (r *Runner) Run(ctx context.Context, kingdomID string, incident *Incident) error {
	if incident == nil || len(incident.Steps) == 0 {
		return errors.New(errors.CodeIncidentInvalidScript, "incident has no steps")
	}

	var lastResolution string
	for i, step := range incident.Steps {
		switch step.Kind {
		case "check":
			checkID, _ := step.Args["id"].(string)
			resolution, err := r.checks.ExecuteCheck(ctx, resolutionservice.ExecuteInput{
				KingdomID: kingdomID,
				CheckID:   checkID,
				ActorName: stringArg(step.Args, "actor", "Harness"),
				Skill:     stringArg(step.Args, "skill", ""),
				Modifiers: modifierArgs(step.Args["mods"]),
				Seed:      int64(intArg(step.Args, "seed", 0)),
			}, event.ActorTypeSystem, gmActorID)
			if err != nil {
				return fmt.Errorf("step %d (check %s): %w", i+1, checkID, err)
			}
			lastResolution = resolution.ID

			if err := r.recordInjection(ctx, kingdomID, incident.Name, checkID); err != nil {
				return err
			}
		case "reroll":
			if lastResolution == "" {
				return errors.New(errors.CodeIncidentInvalidScript, "reroll before any check")
			}
			if _, err := r.checks.Reroll(ctx, lastResolution, int64(intArg(step.Args, "seed", 0)), gmActorID); err != nil {
				return fmt.Errorf("step %d (reroll): %w", i+1, err)
			}
		case "apply_outcome":
			if lastResolution == "" {
				return errors.New(errors.CodeIncidentInvalidScript, "apply_outcome before any check")
			}
			if _, err := r.checks.ApplyOutcome(ctx, lastResolution, gmActorID); err != nil {
				return fmt.Errorf("step %d (apply_outcome): %w", i+1, err)
			}
		case "cancel_outcome":
			if lastResolution == "" {
				return errors.New(errors.CodeIncidentInvalidScript, "cancel_outcome before any check")
			}
			if err := r.checks.CancelOutcome(ctx, lastResolution, gmActorID, stringArg(step.Args, "reason", "")); err != nil {
				return fmt.Errorf("step %d (cancel_outcome): %w", i+1, err)
			}
		case "advance_phase":
			if _, err := r.phases.AdvancePhase(ctx, kingdomID, gmActorID); err != nil {
				return fmt.Errorf("step %d (advance_phase): %w", i+1, err)
			}
		default:
			return errors.WithMetadata(errors.CodeIncidentInvalidScript, "unknown incident step", map[string]string{"kind": step.Kind})
		}
	}
	return nil
}

func (r *Runner) recordInjection(ctx context.Context, kingdomID, source, checkID string) error {
	payload, err := json.Marshal(event.IncidentInjectedPayload{CheckID: checkID, Source: source})
	if err != nil {
		return fmt.Errorf("marshal injection payload: %w", err)
	}
	_, err = r.events.AppendEvent(ctx, event.Event{
		KingdomID:   kingdomID,
		Timestamp:   r.now(),
		Type:        event.TypeIncidentInjected,
		ActorType:   event.ActorTypeSystem,
		ActorID:     gmActorID,
		EntityType:  "incident",
		EntityID:    checkID,
		PayloadJSON: payload,
	})
	if err != nil {
		return fmt.Errorf("record injection event: %w", err)
	}
	return nil
}

func stringArg(args map[string]any, key, fallback string) string {
	if value, ok := args[key].(string); ok && value != "" {
		return value
	}
	return fallback
}

func intArg(args map[string]any, key string, fallback int) int {
	if value, ok := args[key].(int); ok {
		return value
	}
	return fallback
}

func modifierArgs(raw any) []resolutiondomain.Modifier {
	entries, ok := raw.([]any)
	if !ok {
		return nil
	}
	var modifiers []resolutiondomain.Modifier
	for _, entry := range entries {
		table, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		source, _ := table["source"].(string)
		value, _ := table["value"].(int)
		modifiers = append(modifiers, resolutiondomain.Modifier{Source: source, Value: value})
	}
	return modifiers
}

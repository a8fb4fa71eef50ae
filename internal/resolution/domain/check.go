// Package domain defines skill checks and their resolutions.
//
// A check is a named d20 skill challenge with four possible outcomes. A
// resolution is one roll against a check: it starts pending, may be
// rerolled once by spending fame, and finishes applied or cancelled.
package domain

import (
	"errors"
	"strings"

	"github.com/louisbranch/demesne/internal/core/check"
	kingdomdomain "github.com/louisbranch/demesne/internal/kingdom/domain"
)

// CheckKind identifies where a check comes from.
type CheckKind string

const (
	// CheckKindAction is a player-initiated kingdom action.
	CheckKindAction CheckKind = "action"
	// CheckKindEvent is a turn event.
	CheckKindEvent CheckKind = "event"
	// CheckKindIncident is an unrest-driven incident.
	CheckKindIncident CheckKind = "incident"
)

var (
	// ErrInvalidSkill indicates a skill the check does not allow.
	ErrInvalidSkill = errors.New("skill cannot be used for this check")
	// ErrEmptyActor indicates a missing actor name.
	ErrEmptyActor = errors.New("actor name is required")
)

// OutcomeEffect describes what one of the four outcomes does.
type OutcomeEffect struct {
	// Description is the human-readable effect line.
	Description string `json:"description"`
	// Changes are the state deltas applied when the outcome is confirmed.
	Changes kingdomdomain.ChangeSet `json:"changes,omitempty"`
	// ManualEffects are effects the table applies by hand.
	ManualEffects []string `json:"manual_effects,omitempty"`
}

// OutcomeTable holds the four outcome effects of a check.
type OutcomeTable struct {
	CriticalSuccess OutcomeEffect `json:"critical_success"`
	Success         OutcomeEffect `json:"success"`
	Failure         OutcomeEffect `json:"failure"`
	CriticalFailure OutcomeEffect `json:"critical_failure"`
}

// For returns the effect for the given outcome. Unspecified or
// unrecognized outcomes return a placeholder effect.
func (t OutcomeTable) For(outcome check.Outcome) OutcomeEffect {
	switch outcome {
	case check.OutcomeCriticalSuccess:
		return t.CriticalSuccess
	case check.OutcomeSuccess:
		return t.Success
	case check.OutcomeFailure:
		return t.Failure
	case check.OutcomeCriticalFailure:
		return t.CriticalFailure
	default:
		return OutcomeEffect{Description: "-"}
	}
}

// CheckDefinition describes a rollable check.
type CheckDefinition struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Kind   CheckKind    `json:"kind"`
	Level  int          `json:"level,omitempty"`
	Skills []string     `json:"skills"`
	DC     int          `json:"dc"`
	Table  OutcomeTable `json:"outcomes"`
}

// AllowsSkill reports whether the skill may be used for this check.
// Matching is case-insensitive.
func (d CheckDefinition) AllowsSkill(skill string) bool {
	for _, allowed := range d.Skills {
		if strings.EqualFold(allowed, skill) {
			return true
		}
	}
	return false
}

package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/demesne/internal/core/check"
	"github.com/louisbranch/demesne/internal/core/dice"
	"github.com/louisbranch/demesne/internal/platform/id"
)

// State describes the lifecycle of a resolution.
type State int

const (
	// StateUnspecified represents an invalid state value.
	StateUnspecified State = iota
	// StatePending indicates the roll happened but the outcome was not applied.
	StatePending
	// StateApplied indicates the outcome's changes were applied.
	StateApplied
	// StateCancelled indicates the outcome was discarded.
	StateCancelled
)

// String returns the wire form of the state.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateApplied:
		return "applied"
	case StateCancelled:
		return "cancelled"
	default:
		return "unspecified"
	}
}

// ParseState maps a wire form back to a State. Unknown values map to
// StateUnspecified.
func ParseState(value string) State {
	switch value {
	case "pending":
		return StatePending
	case "applied":
		return StateApplied
	case "cancelled":
		return StateCancelled
	default:
		return StateUnspecified
	}
}

// Modifier is one named contribution to a check total.
type Modifier struct {
	Source string `json:"source"`
	Value  int    `json:"value"`
}

// Sum totals the modifier values.
func Sum(modifiers []Modifier) int {
	total := 0
	for _, modifier := range modifiers {
		total += modifier.Value
	}
	return total
}

// Resolution is one roll against a check.
type Resolution struct {
	ID        string
	KingdomID string
	CheckID   string
	ActorName string
	Skill     string
	Die       int
	Modifiers []Modifier
	Total     int
	DC        int
	Outcome   check.Outcome
	State     State
	// RerollUsed persists the once-per-check fame reroll flag.
	RerollUsed bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RollInput describes a roll request against a check.
type RollInput struct {
	KingdomID string
	ActorName string
	Skill     string
	Modifiers []Modifier
	Seed      int64
}

// Roll resolves a d20 roll against the check definition and returns a
// pending resolution.
func Roll(def CheckDefinition, input RollInput, now func() time.Time, idGenerator func() (string, error)) (Resolution, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	input.ActorName = strings.TrimSpace(input.ActorName)
	if input.ActorName == "" {
		return Resolution{}, ErrEmptyActor
	}
	input.Skill = strings.TrimSpace(input.Skill)
	if !def.AllowsSkill(input.Skill) {
		return Resolution{}, ErrInvalidSkill
	}

	resolutionID, err := idGenerator()
	if err != nil {
		return Resolution{}, fmt.Errorf("generate resolution id: %w", err)
	}

	die := dice.D20(input.Seed)
	result := check.Evaluate(die, Sum(input.Modifiers), def.DC)

	createdAt := now().UTC()
	return Resolution{
		ID:         resolutionID,
		KingdomID:  input.KingdomID,
		CheckID:    def.ID,
		ActorName:  input.ActorName,
		Skill:      input.Skill,
		Die:        die,
		Modifiers:  input.Modifiers,
		Total:      result.Total,
		DC:         result.DC,
		Outcome:    result.Outcome,
		State:      StatePending,
		RerollUsed: false,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}, nil
}

// Reroll replaces the resolution's roll with a fresh one and marks the
// fame reroll as used. The caller is responsible for the fame spend and
// for checking RerollUsed beforehand.
func (r Resolution) Reroll(seed int64, now func() time.Time) Resolution {
	if now == nil {
		now = time.Now
	}

	die := dice.D20(seed)
	result := check.Evaluate(die, Sum(r.Modifiers), r.DC)

	r.Die = die
	r.Total = result.Total
	r.Outcome = result.Outcome
	r.RerollUsed = true
	r.UpdatedAt = now().UTC()
	return r
}

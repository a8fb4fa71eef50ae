// Package event defines the kingdom event journal types.
//
// Events are immutable facts appended as the kingdom document changes.
// They back the action log the table reviews and the live feed pushed to
// connected clients.
package event

import (
	"strings"
	"time"
)

// Type identifies the type of a kingdom event.
type Type string

// Kingdom lifecycle events.
const (
	// TypeKingdomCreated records the creation of a kingdom.
	TypeKingdomCreated Type = "kingdom.created"
)

// Turn events.
const (
	// TypePhaseAdvanced records the authoritative phase moving forward.
	TypePhaseAdvanced Type = "turn.phase_advanced"
	// TypePhaseViewed records a viewer moving their viewing pointer.
	TypePhaseViewed Type = "turn.phase_viewed"
)

// Check events. Events represent facts that have occurred, not
// commands/requests.
const (
	// TypeCheckResolved records a skill check roll resolution.
	TypeCheckResolved Type = "check.resolved"
	// TypeCheckRerolled records a fame reroll of a pending check.
	TypeCheckRerolled Type = "check.rerolled"
	// TypeOutcomeApplied records a confirmed outcome application.
	TypeOutcomeApplied Type = "check.outcome_applied"
	// TypeOutcomeRejected records a cancelled or rejected outcome.
	TypeOutcomeRejected Type = "check.outcome_rejected"
)

// Settlement events.
const (
	// TypeSettlementCreated records the creation of a settlement.
	TypeSettlementCreated Type = "settlement.created"
	// TypeStructureAdded records structures committed to a settlement.
	TypeStructureAdded Type = "settlement.structure_added"
	// TypeStructureRemoved records structures removed from a settlement.
	TypeStructureRemoved Type = "settlement.structure_removed"
)

// Harness events.
const (
	// TypeIncidentInjected records a synthetic incident injection.
	TypeIncidentInjected Type = "harness.incident_injected"
)

// ActorType identifies who or what triggered an event.
type ActorType string

const (
	// ActorTypeSystem indicates the event was triggered by the system.
	ActorTypeSystem ActorType = "system"
	// ActorTypePlayer indicates the event was triggered by a player.
	ActorTypePlayer ActorType = "player"
	// ActorTypeGM indicates the event was triggered by the GM.
	ActorTypeGM ActorType = "gm"
)

// Event represents an immutable event in the kingdom journal.
type Event struct {
	// KingdomID is the kingdom this event belongs to.
	KingdomID string
	// Seq is the event sequence number within the kingdom (starts at 1).
	// Assigned by storage on append.
	Seq uint64
	// Timestamp is when the event occurred.
	Timestamp time.Time
	// Type identifies the kind of event.
	Type Type
	// ActorType identifies who triggered the event.
	ActorType ActorType
	// ActorID is the viewer or participant ID when known.
	ActorID string
	// EntityType is the type of entity affected (settlement, check, etc.).
	EntityType string
	// EntityID is the ID of the entity affected.
	EntityID string
	// PayloadJSON holds event-specific data as JSON.
	PayloadJSON []byte
}

// IsValid reports whether the event type is usable.
func (t Type) IsValid() bool {
	return strings.TrimSpace(string(t)) != ""
}

// Domain returns the domain prefix of the event type (e.g., "turn", "check").
func (t Type) Domain() string {
	for i, c := range t {
		if c == '.' {
			return string(t[:i])
		}
	}
	return string(t)
}

package event

import "encoding/json"

// KingdomCreatedPayload captures the payload for kingdom.created events.
type KingdomCreatedPayload struct {
	Name string `json:"name"`
	Fame int    `json:"fame"`
}

// PhaseAdvancedPayload captures the payload for turn.phase_advanced events.
type PhaseAdvancedPayload struct {
	FromPhase string `json:"from_phase"`
	ToPhase   string `json:"to_phase"`
	Turn      int    `json:"turn"`
	// TurnRolled reports whether advancing wrapped into a new turn.
	TurnRolled bool `json:"turn_rolled,omitempty"`
}

// PhaseViewedPayload captures the payload for turn.phase_viewed events.
type PhaseViewedPayload struct {
	ViewerID string `json:"viewer_id"`
	Phase    string `json:"phase"`
	Unlocked bool   `json:"unlocked,omitempty"`
}

// CheckResolvedPayload captures the payload for check.resolved events.
type CheckResolvedPayload struct {
	CheckID   string `json:"check_id"`
	ActorName string `json:"actor_name"`
	Skill     string `json:"skill"`
	Die       int    `json:"die"`
	Modifier  int    `json:"modifier"`
	Total     int    `json:"total"`
	DC        int    `json:"dc"`
	Outcome   string `json:"outcome"`
}

// CheckRerolledPayload captures the payload for check.rerolled events.
type CheckRerolledPayload struct {
	CheckID         string `json:"check_id"`
	FameSpent       int    `json:"fame_spent"`
	PreviousOutcome string `json:"previous_outcome"`
	Outcome         string `json:"outcome"`
}

// OutcomeAppliedPayload captures the payload for check.outcome_applied events.
type OutcomeAppliedPayload struct {
	CheckID string `json:"check_id"`
	Outcome string `json:"outcome"`
	// Changes is the applied change set in wire form.
	Changes json.RawMessage `json:"changes,omitempty"`
}

// OutcomeRejectedPayload captures the payload for check.outcome_rejected events.
type OutcomeRejectedPayload struct {
	CheckID string `json:"check_id"`
	Reason  string `json:"reason,omitempty"`
}

// SettlementCreatedPayload captures the payload for settlement.created events.
type SettlementCreatedPayload struct {
	SettlementID string `json:"settlement_id"`
	Name         string `json:"name"`
	Tier         int    `json:"tier"`
}

// StructureAddedPayload captures the payload for settlement.structure_added events.
type StructureAddedPayload struct {
	SettlementID string   `json:"settlement_id"`
	StructureIDs []string `json:"structure_ids"`
	// Warnings lists structures gated by the settlement tier.
	Warnings []string `json:"warnings,omitempty"`
}

// StructureRemovedPayload captures the payload for settlement.structure_removed events.
type StructureRemovedPayload struct {
	SettlementID string   `json:"settlement_id"`
	StructureIDs []string `json:"structure_ids"`
}

// IncidentInjectedPayload captures the payload for harness.incident_injected events.
type IncidentInjectedPayload struct {
	CheckID string `json:"check_id"`
	Source  string `json:"source"`
}

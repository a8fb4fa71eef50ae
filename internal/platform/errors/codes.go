package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Kingdom errors
	CodeKingdomNameEmpty Code = "KINGDOM_NAME_EMPTY"

	// Turn errors
	CodeTurnInvalidPhase   Code = "TURN_INVALID_PHASE"
	CodeTurnViewingLocked  Code = "TURN_VIEWING_LOCKED"
	CodeTurnEmptyViewerID  Code = "TURN_EMPTY_VIEWER_ID"
	CodeTurnEmptyKingdomID Code = "TURN_EMPTY_KINGDOM_ID"

	// Settlement errors
	CodeSettlementNameEmpty        Code = "SETTLEMENT_NAME_EMPTY"
	CodeSettlementEmptyKingdomID   Code = "SETTLEMENT_EMPTY_KINGDOM_ID"
	CodeSettlementInvalidTier      Code = "SETTLEMENT_INVALID_TIER"
	CodeSettlementCapacityExceeded Code = "SETTLEMENT_CAPACITY_EXCEEDED"

	// Structure errors
	CodeStructureUnknown      Code = "STRUCTURE_UNKNOWN"
	CodeStructureAlreadyBuilt Code = "STRUCTURE_ALREADY_BUILT"

	// Check resolution errors
	CodeResolutionUnknownCheck     Code = "RESOLUTION_UNKNOWN_CHECK"
	CodeResolutionInvalidSkill     Code = "RESOLUTION_INVALID_SKILL"
	CodeResolutionEmptyActor       Code = "RESOLUTION_EMPTY_ACTOR"
	CodeResolutionNotPending       Code = "RESOLUTION_NOT_PENDING"
	CodeResolutionAlreadyApplied   Code = "RESOLUTION_ALREADY_APPLIED"
	CodeResolutionRerollUsed       Code = "RESOLUTION_REROLL_USED"
	CodeResolutionInsufficientFame Code = "RESOLUTION_INSUFFICIENT_FAME"

	// Harness errors
	CodeIncidentInvalidScript Code = "INCIDENT_INVALID_SCRIPT"

	// Auth errors
	CodeAuthTokenInvalid Code = "AUTH_TOKEN_INVALID"
	CodeAuthGMRequired   Code = "AUTH_GM_REQUIRED"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	// Bad request - validation failures, bad input
	case CodeKingdomNameEmpty,
		CodeTurnInvalidPhase,
		CodeTurnEmptyViewerID,
		CodeTurnEmptyKingdomID,
		CodeSettlementNameEmpty,
		CodeSettlementEmptyKingdomID,
		CodeSettlementInvalidTier,
		CodeStructureUnknown,
		CodeResolutionInvalidSkill,
		CodeResolutionEmptyActor,
		CodeIncidentInvalidScript:
		return http.StatusBadRequest

	// Conflict - state doesn't allow operation
	case CodeTurnViewingLocked,
		CodeSettlementCapacityExceeded,
		CodeStructureAlreadyBuilt,
		CodeResolutionNotPending,
		CodeResolutionAlreadyApplied,
		CodeResolutionRerollUsed,
		CodeResolutionInsufficientFame:
		return http.StatusConflict

	case CodeAuthTokenInvalid:
		return http.StatusUnauthorized

	case CodeAuthGMRequired:
		return http.StatusForbidden

	case CodeResolutionUnknownCheck,
		CodeNotFound:
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}

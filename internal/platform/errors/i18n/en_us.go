package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeUnknown = "UNKNOWN"

	CodeKingdomNameEmpty = "KINGDOM_NAME_EMPTY"

	CodeTurnInvalidPhase   = "TURN_INVALID_PHASE"
	CodeTurnViewingLocked  = "TURN_VIEWING_LOCKED"
	CodeTurnEmptyViewerID  = "TURN_EMPTY_VIEWER_ID"
	CodeTurnEmptyKingdomID = "TURN_EMPTY_KINGDOM_ID"

	CodeSettlementNameEmpty        = "SETTLEMENT_NAME_EMPTY"
	CodeSettlementEmptyKingdomID   = "SETTLEMENT_EMPTY_KINGDOM_ID"
	CodeSettlementInvalidTier      = "SETTLEMENT_INVALID_TIER"
	CodeSettlementCapacityExceeded = "SETTLEMENT_CAPACITY_EXCEEDED"

	CodeStructureUnknown      = "STRUCTURE_UNKNOWN"
	CodeStructureAlreadyBuilt = "STRUCTURE_ALREADY_BUILT"

	CodeResolutionUnknownCheck     = "RESOLUTION_UNKNOWN_CHECK"
	CodeResolutionInvalidSkill     = "RESOLUTION_INVALID_SKILL"
	CodeResolutionEmptyActor       = "RESOLUTION_EMPTY_ACTOR"
	CodeResolutionNotPending       = "RESOLUTION_NOT_PENDING"
	CodeResolutionAlreadyApplied   = "RESOLUTION_ALREADY_APPLIED"
	CodeResolutionRerollUsed       = "RESOLUTION_REROLL_USED"
	CodeResolutionInsufficientFame = "RESOLUTION_INSUFFICIENT_FAME"

	CodeIncidentInvalidScript = "INCIDENT_INVALID_SCRIPT"

	CodeAuthTokenInvalid = "AUTH_TOKEN_INVALID"
	CodeAuthGMRequired   = "AUTH_GM_REQUIRED"

	CodeNotFound = "NOT_FOUND"
)

// enUS holds the base locale message templates.
var enUS = map[Code]string{
	CodeUnknown: "Something went wrong. Please try again.",

	CodeKingdomNameEmpty: "Kingdom name is required.",

	CodeTurnInvalidPhase:   "Unknown turn phase{{if .phase}} {{.phase}}{{end}}.",
	CodeTurnViewingLocked:  "Phase view is locked to the current phase. Hold to unlock.",
	CodeTurnEmptyViewerID:  "Viewer identifier is required.",
	CodeTurnEmptyKingdomID: "Kingdom identifier is required.",

	CodeSettlementNameEmpty:        "Settlement name is required.",
	CodeSettlementEmptyKingdomID:   "Kingdom identifier is required.",
	CodeSettlementInvalidTier:      "Settlement tier must be at least 1.",
	CodeSettlementCapacityExceeded: "{{if .settlement}}{{.settlement}}{{else}}The settlement{{end}} has no room for more structures.",

	CodeStructureUnknown:      "Unknown structure{{if .structure}} {{.structure}}{{end}}.",
	CodeStructureAlreadyBuilt: "{{if .structure}}{{.structure}}{{else}}That structure{{end}} is already built.",

	CodeResolutionUnknownCheck:     "Unknown check{{if .check}} {{.check}}{{end}}.",
	CodeResolutionInvalidSkill:     "{{if .skill}}{{.skill}}{{else}}That skill{{end}} cannot be used for this check.",
	CodeResolutionEmptyActor:       "An actor name is required to roll.",
	CodeResolutionNotPending:       "This check has no pending result.",
	CodeResolutionAlreadyApplied:   "This outcome has already been applied.",
	CodeResolutionRerollUsed:       "The fame reroll has already been used for this check.",
	CodeResolutionInsufficientFame: "Not enough fame to reroll.",

	CodeIncidentInvalidScript: "The incident script is invalid.",

	CodeAuthTokenInvalid: "Sign-in token is missing or invalid.",
	CodeAuthGMRequired:   "Only the GM can do that.",

	CodeNotFound: "The requested record was not found.",
}

func init() {
	RegisterCatalog(BaseLocale, NewCatalog(BaseLocale, enUS))
}

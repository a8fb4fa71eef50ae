package service

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/demesne/internal/harness"
	kingdomdomain "github.com/louisbranch/demesne/internal/kingdom/domain"
	"github.com/louisbranch/demesne/internal/kingdom/event"
	kingdomservice "github.com/louisbranch/demesne/internal/kingdom/service"
	resolutiondomain "github.com/louisbranch/demesne/internal/resolution/domain"
	resolutionservice "github.com/louisbranch/demesne/internal/resolution/service"
	turnservice "github.com/louisbranch/demesne/internal/turn/service"
)

// mcpActorID attributes journal events produced through MCP tools.
const mcpActorID = "mcp"

// KingdomStateInput requests a kingdom snapshot.
type KingdomStateInput struct {
	KingdomID string `json:"kingdom_id" jsonschema:"kingdom identifier"`
}

// KingdomStateResult is a kingdom snapshot.
type KingdomStateResult struct {
	ID        string         `json:"id" jsonschema:"kingdom identifier"`
	Name      string         `json:"name" jsonschema:"kingdom name"`
	Level     int            `json:"level" jsonschema:"kingdom level"`
	Fame      int            `json:"fame" jsonschema:"fame points available for rerolls"`
	Unrest    int            `json:"unrest" jsonschema:"current unrest"`
	Resources map[string]int `json:"resources,omitempty" jsonschema:"named resource pools"`
	Turn      int            `json:"turn" jsonschema:"current turn number"`
	Phase     string         `json:"phase" jsonschema:"current turn phase"`
}

func toKingdomStateResult(kingdom kingdomdomain.Kingdom) KingdomStateResult {
	return KingdomStateResult{
		ID:        kingdom.ID,
		Name:      kingdom.Name,
		Level:     kingdom.Level,
		Fame:      kingdom.Fame,
		Unrest:    kingdom.Unrest,
		Resources: kingdom.Resources,
		Turn:      kingdom.Turn,
		Phase:     kingdom.Phase.String(),
	}
}

// KingdomStateTool defines the MCP tool schema for reading kingdom state.
func KingdomStateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "kingdom_state",
		Description: "Returns the current state of a kingdom: resources, fame, unrest, turn, and phase.",
	}
}

// KingdomStateHandler executes a kingdom state request.
func KingdomStateHandler(kingdoms *kingdomservice.Service) mcp.ToolHandlerFor[KingdomStateInput, KingdomStateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input KingdomStateInput) (*mcp.CallToolResult, KingdomStateResult, error) {
		kingdom, err := kingdoms.GetKingdom(ctx, input.KingdomID)
		if err != nil {
			return nil, KingdomStateResult{}, fmt.Errorf("kingdom state failed: %w", err)
		}
		return nil, toKingdomStateResult(kingdom), nil
	}
}

// AdvancePhaseInput requests a phase advance.
type AdvancePhaseInput struct {
	KingdomID string `json:"kingdom_id" jsonschema:"kingdom identifier"`
}

// AdvancePhaseResult reports the phase transition.
type AdvancePhaseResult struct {
	FromPhase  string `json:"from_phase" jsonschema:"phase before the advance"`
	ToPhase    string `json:"to_phase" jsonschema:"phase after the advance"`
	Turn       int    `json:"turn" jsonschema:"turn number after the advance"`
	TurnRolled bool   `json:"turn_rolled" jsonschema:"whether the advance wrapped into a new turn"`
}

// AdvancePhaseTool defines the MCP tool schema for advancing the turn phase.
func AdvancePhaseTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "advance_phase",
		Description: "Advances the kingdom to the next turn phase, rolling the turn counter on wrap.",
	}
}

// AdvancePhaseHandler executes a phase advance.
func AdvancePhaseHandler(turns *turnservice.Service) mcp.ToolHandlerFor[AdvancePhaseInput, AdvancePhaseResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AdvancePhaseInput) (*mcp.CallToolResult, AdvancePhaseResult, error) {
		result, err := turns.AdvancePhase(ctx, input.KingdomID, mcpActorID)
		if err != nil {
			return nil, AdvancePhaseResult{}, fmt.Errorf("advance phase failed: %w", err)
		}
		return nil, AdvancePhaseResult{
			FromPhase:  result.FromPhase.String(),
			ToPhase:    result.ToPhase.String(),
			Turn:       result.Turn,
			TurnRolled: result.TurnRolled,
		}, nil
	}
}

// CheckModifier is a named bonus or penalty applied to a check.
type CheckModifier struct {
	Source string `json:"source" jsonschema:"where the modifier comes from"`
	Value  int    `json:"value" jsonschema:"signed modifier value"`
}

// ExecuteCheckInput requests a check resolution.
type ExecuteCheckInput struct {
	KingdomID string          `json:"kingdom_id" jsonschema:"kingdom identifier"`
	CheckID   string          `json:"check_id" jsonschema:"check definition identifier"`
	ActorName string          `json:"actor_name" jsonschema:"name of the character making the check"`
	Skill     string          `json:"skill" jsonschema:"skill used for the check"`
	Modifiers []CheckModifier `json:"modifiers,omitempty" jsonschema:"optional modifiers applied to the roll"`
	Seed      int64           `json:"seed,omitempty" jsonschema:"optional deterministic roll seed; zero seeds from the clock"`
}

// CheckResult reports a check resolution.
type CheckResult struct {
	ResolutionID  string   `json:"resolution_id" jsonschema:"resolution identifier"`
	Die           int      `json:"die" jsonschema:"raw d20 roll"`
	Total         int      `json:"total" jsonschema:"roll plus modifiers"`
	DC            int      `json:"dc" jsonschema:"difficulty class"`
	Outcome       string   `json:"outcome" jsonschema:"one of critical_success, success, failure, critical_failure"`
	State         string   `json:"state" jsonschema:"resolution state (pending, applied, cancelled)"`
	OutcomeLabel  string   `json:"outcome_label" jsonschema:"player-facing outcome label"`
	Description   string   `json:"description" jsonschema:"outcome description"`
	ChangeLines   []string `json:"change_lines,omitempty" jsonschema:"human-readable pending changes"`
	ManualEffects []string `json:"manual_effects,omitempty" jsonschema:"effects the table must apply by hand"`
}

func toCheckResult(resolutions *resolutionservice.Service, resolution resolutiondomain.Resolution) CheckResult {
	display := resolutions.DisplayFor(resolution)
	return CheckResult{
		ResolutionID:  resolution.ID,
		Die:           resolution.Die,
		Total:         resolution.Total,
		DC:            resolution.DC,
		Outcome:       resolution.Outcome.String(),
		State:         resolution.State.String(),
		OutcomeLabel:  display.OutcomeLabel,
		Description:   display.Description,
		ChangeLines:   display.ChangeLines,
		ManualEffects: display.ManualEffects,
	}
}

// ExecuteCheckTool defines the MCP tool schema for rolling a check.
func ExecuteCheckTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "execute_check",
		Description: "Rolls a d20 check against a check definition and stores a pending resolution.",
	}
}

// ExecuteCheckHandler executes a check roll.
func ExecuteCheckHandler(resolutions *resolutionservice.Service) mcp.ToolHandlerFor[ExecuteCheckInput, CheckResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ExecuteCheckInput) (*mcp.CallToolResult, CheckResult, error) {
		modifiers := make([]resolutiondomain.Modifier, 0, len(input.Modifiers))
		for _, modifier := range input.Modifiers {
			modifiers = append(modifiers, resolutiondomain.Modifier{Source: modifier.Source, Value: modifier.Value})
		}

		resolution, err := resolutions.ExecuteCheck(ctx, resolutionservice.ExecuteInput{
			KingdomID: input.KingdomID,
			CheckID:   input.CheckID,
			ActorName: input.ActorName,
			Skill:     input.Skill,
			Modifiers: modifiers,
			Seed:      input.Seed,
		}, event.ActorTypeGM, mcpActorID)
		if err != nil {
			return nil, CheckResult{}, fmt.Errorf("execute check failed: %w", err)
		}
		return nil, toCheckResult(resolutions, resolution), nil
	}
}

// RerollCheckInput requests a fame-funded reroll.
type RerollCheckInput struct {
	ResolutionID string `json:"resolution_id" jsonschema:"pending resolution identifier"`
	Seed         int64  `json:"seed,omitempty" jsonschema:"optional deterministic roll seed; zero seeds from the clock"`
}

// RerollCheckTool defines the MCP tool schema for rerolling a check.
func RerollCheckTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "reroll_check",
		Description: "Spends one fame to reroll a pending resolution. Each resolution can be rerolled once.",
	}
}

// RerollCheckHandler executes a reroll.
func RerollCheckHandler(resolutions *resolutionservice.Service) mcp.ToolHandlerFor[RerollCheckInput, CheckResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RerollCheckInput) (*mcp.CallToolResult, CheckResult, error) {
		resolution, err := resolutions.Reroll(ctx, input.ResolutionID, input.Seed, mcpActorID)
		if err != nil {
			return nil, CheckResult{}, fmt.Errorf("reroll failed: %w", err)
		}
		return nil, toCheckResult(resolutions, resolution), nil
	}
}

// ApplyOutcomeInput requests applying a pending outcome to the kingdom.
type ApplyOutcomeInput struct {
	ResolutionID string `json:"resolution_id" jsonschema:"pending resolution identifier"`
}

// ApplyOutcomeTool defines the MCP tool schema for applying an outcome.
func ApplyOutcomeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "apply_outcome",
		Description: "Applies a pending resolution's outcome changes to the kingdom sheet.",
	}
}

// ApplyOutcomeHandler executes an outcome application.
func ApplyOutcomeHandler(resolutions *resolutionservice.Service) mcp.ToolHandlerFor[ApplyOutcomeInput, KingdomStateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ApplyOutcomeInput) (*mcp.CallToolResult, KingdomStateResult, error) {
		kingdom, err := resolutions.ApplyOutcome(ctx, input.ResolutionID, mcpActorID)
		if err != nil {
			return nil, KingdomStateResult{}, fmt.Errorf("apply outcome failed: %w", err)
		}
		return nil, toKingdomStateResult(kingdom), nil
	}
}

// CancelOutcomeInput requests discarding a pending outcome.
type CancelOutcomeInput struct {
	ResolutionID string `json:"resolution_id" jsonschema:"pending resolution identifier"`
	Reason       string `json:"reason,omitempty" jsonschema:"optional reason recorded in the journal"`
}

// CancelOutcomeResult reports a cancelled resolution.
type CancelOutcomeResult struct {
	ResolutionID string `json:"resolution_id" jsonschema:"resolution identifier"`
	State        string `json:"state" jsonschema:"resolution state after cancelling"`
}

// CancelOutcomeTool defines the MCP tool schema for cancelling an outcome.
func CancelOutcomeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "cancel_outcome",
		Description: "Discards a pending resolution without touching the kingdom sheet.",
	}
}

// CancelOutcomeHandler executes an outcome cancellation.
func CancelOutcomeHandler(resolutions *resolutionservice.Service) mcp.ToolHandlerFor[CancelOutcomeInput, CancelOutcomeResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CancelOutcomeInput) (*mcp.CallToolResult, CancelOutcomeResult, error) {
		if err := resolutions.CancelOutcome(ctx, input.ResolutionID, mcpActorID, input.Reason); err != nil {
			return nil, CancelOutcomeResult{}, fmt.Errorf("cancel outcome failed: %w", err)
		}
		return nil, CancelOutcomeResult{ResolutionID: input.ResolutionID, State: "cancelled"}, nil
	}
}

// ListPendingInput requests the pending resolutions of a kingdom.
type ListPendingInput struct {
	KingdomID string `json:"kingdom_id" jsonschema:"kingdom identifier"`
}

// ListPendingResult lists pending resolutions.
type ListPendingResult struct {
	Resolutions []CheckResult `json:"resolutions" jsonschema:"pending resolutions ordered oldest first"`
}

// ListPendingTool defines the MCP tool schema for listing pending resolutions.
func ListPendingTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_pending",
		Description: "Lists the kingdom's pending resolutions awaiting an apply or cancel decision.",
	}
}

// ListPendingHandler executes a pending resolution listing.
func ListPendingHandler(resolutions *resolutionservice.Service) mcp.ToolHandlerFor[ListPendingInput, ListPendingResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListPendingInput) (*mcp.CallToolResult, ListPendingResult, error) {
		pending, err := resolutions.ListPending(ctx, input.KingdomID)
		if err != nil {
			return nil, ListPendingResult{}, fmt.Errorf("list pending failed: %w", err)
		}
		result := ListPendingResult{Resolutions: make([]CheckResult, 0, len(pending))}
		for _, resolution := range pending {
			result.Resolutions = append(result.Resolutions, toCheckResult(resolutions, resolution))
		}
		return nil, result, nil
	}
}

// InjectIncidentInput requests running a Lua incident script.
type InjectIncidentInput struct {
	KingdomID string `json:"kingdom_id" jsonschema:"kingdom identifier"`
	Script    string `json:"script" jsonschema:"Lua source that returns an Incident"`
	Name      string `json:"name,omitempty" jsonschema:"fallback incident name when the script does not set one"`
}

// InjectIncidentResult reports an injected incident.
type InjectIncidentResult struct {
	Incident string `json:"incident" jsonschema:"incident name"`
	Steps    int    `json:"steps" jsonschema:"number of steps executed"`
}

// InjectIncidentTool defines the MCP tool schema for injecting an incident.
func InjectIncidentTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "inject_incident",
		Description: "Runs a Lua incident script against a kingdom: checks, outcome decisions, and phase advances.",
	}
}

// InjectIncidentHandler executes an incident injection.
func InjectIncidentHandler(runner *harness.Runner) mcp.ToolHandlerFor[InjectIncidentInput, InjectIncidentResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input InjectIncidentInput) (*mcp.CallToolResult, InjectIncidentResult, error) {
		incident, err := harness.LoadIncidentFromString(input.Script, input.Name)
		if err != nil {
			return nil, InjectIncidentResult{}, fmt.Errorf("load incident failed: %w", err)
		}
		if err := runner.Run(ctx, input.KingdomID, incident); err != nil {
			return nil, InjectIncidentResult{}, fmt.Errorf("incident run failed: %w", err)
		}
		return nil, InjectIncidentResult{Incident: incident.Name, Steps: len(incident.Steps)}, nil
	}
}

package service

import (
	"context"
	"testing"

	"github.com/louisbranch/demesne/internal/harness"
	kingdomdomain "github.com/louisbranch/demesne/internal/kingdom/domain"
	kingdomservice "github.com/louisbranch/demesne/internal/kingdom/service"
	resolutionservice "github.com/louisbranch/demesne/internal/resolution/service"
	"github.com/louisbranch/demesne/internal/storage/memory"
	turnservice "github.com/louisbranch/demesne/internal/turn/service"
)

func newTestKingdom(t *testing.T, store *memory.Store, fame int) kingdomdomain.Kingdom {
	t.Helper()
	kingdoms := kingdomservice.New(store)
	kingdom, err := kingdoms.CreateKingdom(context.Background(), kingdomdomain.CreateKingdomInput{
		Name: "Greenmarch",
		Fame: fame,
	})
	if err != nil {
		t.Fatalf("create kingdom: %v", err)
	}
	return kingdom
}

func TestKingdomStateHandler(t *testing.T) {
	store := memory.New()
	kingdom := newTestKingdom(t, store, 2)
	handler := KingdomStateHandler(kingdomservice.New(store))

	_, result, err := handler(context.Background(), nil, KingdomStateInput{KingdomID: kingdom.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Name != "Greenmarch" {
		t.Errorf("name = %q, want Greenmarch", result.Name)
	}
	if result.Fame != 2 {
		t.Errorf("fame = %d, want 2", result.Fame)
	}
	if result.Phase != "status" {
		t.Errorf("phase = %q, want status", result.Phase)
	}

	_, _, err = handler(context.Background(), nil, KingdomStateInput{KingdomID: "missing"})
	if err == nil {
		t.Fatal("expected error for unknown kingdom")
	}
}

func TestExecuteCheckHandler(t *testing.T) {
	store := memory.New()
	kingdom := newTestKingdom(t, store, 0)
	resolutions := resolutionservice.New(store)
	handler := ExecuteCheckHandler(resolutions)

	_, result, err := handler(context.Background(), nil, ExecuteCheckInput{
		KingdomID: kingdom.ID,
		CheckID:   "claim-hex",
		ActorName: "Elissa",
		Skill:     "exploration",
		Modifiers: []CheckModifier{{Source: "scouts", Value: 2}},
		Seed:      42,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ResolutionID == "" {
		t.Fatal("resolution id is empty")
	}
	if result.Die < 1 || result.Die > 20 {
		t.Errorf("die = %d, want 1..20", result.Die)
	}
	if result.Total != result.Die+2 {
		t.Errorf("total = %d, want die %d plus modifier 2", result.Total, result.Die)
	}
	if result.State != "pending" {
		t.Errorf("state = %q, want pending", result.State)
	}
	if result.OutcomeLabel == "" {
		t.Error("outcome label is empty")
	}

	_, _, err = handler(context.Background(), nil, ExecuteCheckInput{
		KingdomID: kingdom.ID,
		CheckID:   "no-such-check",
		ActorName: "Elissa",
		Skill:     "exploration",
	})
	if err == nil {
		t.Fatal("expected error for unknown check")
	}
}

func TestApplyAndCancelOutcomeHandlers(t *testing.T) {
	store := memory.New()
	kingdom := newTestKingdom(t, store, 0)
	resolutions := resolutionservice.New(store)

	execute := ExecuteCheckHandler(resolutions)
	_, first, err := execute(context.Background(), nil, ExecuteCheckInput{
		KingdomID: kingdom.ID, CheckID: "claim-hex", ActorName: "Elissa", Skill: "exploration", Seed: 7,
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	_, second, err := execute(context.Background(), nil, ExecuteCheckInput{
		KingdomID: kingdom.ID, CheckID: "public-scandal", ActorName: "Chancellor", Skill: "politics", Seed: 9,
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	apply := ApplyOutcomeHandler(resolutions)
	_, applied, err := apply(context.Background(), nil, ApplyOutcomeInput{ResolutionID: first.ResolutionID})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if applied.ID != kingdom.ID {
		t.Errorf("applied kingdom = %q, want %q", applied.ID, kingdom.ID)
	}

	cancel := CancelOutcomeHandler(resolutions)
	_, cancelled, err := cancel(context.Background(), nil, CancelOutcomeInput{ResolutionID: second.ResolutionID, Reason: "table veto"})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.State != "cancelled" {
		t.Errorf("state = %q, want cancelled", cancelled.State)
	}

	pending := ListPendingHandler(resolutions)
	_, list, err := pending(context.Background(), nil, ListPendingInput{KingdomID: kingdom.ID})
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(list.Resolutions) != 0 {
		t.Errorf("pending = %d, want 0", len(list.Resolutions))
	}
}

func TestInjectIncidentHandler(t *testing.T) {
	store := memory.New()
	kingdom := newTestKingdom(t, store, 2)

	server := New(store)
	if server.mcpServer == nil {
		t.Fatal("server is missing its MCP core")
	}

	resolutions := resolutionservice.New(store)
	runner := harness.NewRunner(resolutions, turnservice.New(store), store)
	handler := InjectIncidentHandler(runner)

	script := `
local incident = Incident.new("drill")
incident:check({id = "bandit-raid", actor = "Warden", skill = "defense", seed = 42})
incident:cancel_outcome("drill only")
return incident
`
	_, result, err := handler(context.Background(), nil, InjectIncidentInput{KingdomID: kingdom.ID, Script: script})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Incident != "drill" {
		t.Errorf("incident = %q, want drill", result.Incident)
	}
	if result.Steps != 2 {
		t.Errorf("steps = %d, want 2", result.Steps)
	}

	_, list, err := ListPendingHandler(resolutions)(context.Background(), nil, ListPendingInput{KingdomID: kingdom.ID})
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(list.Resolutions) != 0 {
		t.Errorf("pending after cancel = %d, want 0", len(list.Resolutions))
	}

	_, _, err = handler(context.Background(), nil, InjectIncidentInput{KingdomID: kingdom.ID, Script: `return 42`})
	if err == nil {
		t.Fatal("expected error for script that does not return an Incident")
	}
}

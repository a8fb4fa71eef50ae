package harness

import (
	"context"
	"path/filepath"
	"testing"

	kingdomdomain "github.com/louisbranch/demesne/internal/kingdom/domain"
	"github.com/louisbranch/demesne/internal/kingdom/event"
	"github.com/louisbranch/demesne/internal/platform/errors"
	resolutionservice "github.com/louisbranch/demesne/internal/resolution/service"
	"github.com/louisbranch/demesne/internal/storage/memory"
	turnservice "github.com/louisbranch/demesne/internal/turn/service"
)

func newTestRunner(t *testing.T) (*Runner, *memory.Store) {
	t.Helper()

	store := memory.New()
	if err := store.PutKingdom(context.Background(), kingdomdomain.Kingdom{
		ID:        "king-1",
		Name:      "Greenbelt",
		Fame:      2,
		Resources: map[string]int{},
		Flags:     map[string]bool{},
		Tags:      map[string][]string{},
	}); err != nil {
		t.Fatalf("seed kingdom: %v", err)
	}
	return NewRunner(resolutionservice.New(store), turnservice.New(store), store), store
}

func TestRunnerRunsScriptedIncident(t *testing.T) {
	runner, store := newTestRunner(t)

	incident, err := LoadIncidentFromFile(filepath.Join("testdata", "bandit_raid.lua"))
	if err != nil {
		t.Fatalf("LoadIncidentFromFile: %v", err)
	}
	if err := runner.Run(context.Background(), "king-1", incident); err != nil {
		t.Fatalf("Run: %v", err)
	}

	events, err := store.ListEvents(context.Background(), "king-1", 0)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}

	var types []event.Type
	for _, evt := range events {
		types = append(types, evt.Type)
	}
	want := []event.Type{
		event.TypeCheckResolved,
		event.TypeIncidentInjected,
		event.TypeOutcomeApplied,
		event.TypePhaseAdvanced,
	}
	if len(types) != len(want) {
		t.Fatalf("event types = %v, want %v", types, want)
	}
	for i, wantType := range want {
		if types[i] != wantType {
			t.Fatalf("event types = %v, want %v", types, want)
		}
	}
}

func TestRunnerRerollAndCancel(t *testing.T) {
	runner, store := newTestRunner(t)

	incident, err := LoadIncidentFromFile(filepath.Join("testdata", "reroll_then_cancel.lua"))
	if err != nil {
		t.Fatalf("LoadIncidentFromFile: %v", err)
	}
	if err := runner.Run(context.Background(), "king-1", incident); err != nil {
		t.Fatalf("Run: %v", err)
	}

	kingdom, err := store.GetKingdom(context.Background(), "king-1")
	if err != nil {
		t.Fatalf("GetKingdom: %v", err)
	}
	if kingdom.Fame != 1 {
		t.Fatalf("fame = %d, want 1 after reroll spend", kingdom.Fame)
	}

	pending, err := store.ListPendingResolutions(context.Background(), "king-1")
	if err != nil {
		t.Fatalf("ListPendingResolutions: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("pending = %+v, want none after cancel", pending)
	}
}

func TestRunnerRejectsBadIncidents(t *testing.T) {
	runner, _ := newTestRunner(t)

	if err := runner.Run(context.Background(), "king-1", nil); errors.CodeOf(err) != errors.CodeIncidentInvalidScript {
		t.Fatalf("nil incident code = %v, want CodeIncidentInvalidScript", errors.CodeOf(err))
	}

	orphanApply := &Incident{Name: "bad", Steps: []Step{{Kind: "apply_outcome"}}}
	if err := runner.Run(context.Background(), "king-1", orphanApply); errors.CodeOf(err) != errors.CodeIncidentInvalidScript {
		t.Fatalf("orphan apply code = %v, want CodeIncidentInvalidScript", errors.CodeOf(err))
	}

	unknown := &Incident{Name: "bad", Steps: []Step{{Kind: "teleport"}}}
	if err := runner.Run(context.Background(), "king-1", unknown); errors.CodeOf(err) != errors.CodeIncidentInvalidScript {
		t.Fatalf("unknown step code = %v, want CodeIncidentInvalidScript", errors.CodeOf(err))
	}
}

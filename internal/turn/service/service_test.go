package service

import (
	"context"
	"testing"
	"time"

	kingdomdomain "github.com/louisbranch/demesne/internal/kingdom/domain"
	"github.com/louisbranch/demesne/internal/kingdom/event"
	"github.com/louisbranch/demesne/internal/platform/errors"
	"github.com/louisbranch/demesne/internal/storage/memory"
	turndomain "github.com/louisbranch/demesne/internal/turn/domain"
)

func newTestService(t *testing.T) (*Service, *memory.Store, kingdomdomain.Kingdom) {
	t.Helper()

	store := memory.New()
	svc := New(store)
	svc.now = func() time.Time { return time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC) }

	kingdom := kingdomdomain.Kingdom{
		ID:    "king-1",
		Name:  "Greenbelt",
		Turn:  1,
		Phase: turndomain.FirstPhase(),
	}
	if err := store.PutKingdom(context.Background(), kingdom); err != nil {
		t.Fatalf("seed kingdom: %v", err)
	}
	return svc, store, kingdom
}

func TestAdvancePhase(t *testing.T) {
	svc, store, _ := newTestService(t)

	result, err := svc.AdvancePhase(context.Background(), "king-1", "gm-1")
	if err != nil {
		t.Fatalf("AdvancePhase: %v", err)
	}
	if result.FromPhase != turndomain.PhaseStatus || result.ToPhase != turndomain.PhaseResources {
		t.Fatalf("advance = %v -> %v, want status -> resources", result.FromPhase, result.ToPhase)
	}
	if result.TurnRolled || result.Turn != 1 {
		t.Fatalf("turn = %d rolled %v, want stay in turn 1", result.Turn, result.TurnRolled)
	}

	events, err := store.ListEvents(context.Background(), "king-1", 0)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 1 || events[0].Type != event.TypePhaseAdvanced {
		t.Fatalf("events = %+v, want single turn.phase_advanced", events)
	}
	if events[0].ActorID != "gm-1" || events[0].ActorType != event.ActorTypeGM {
		t.Fatalf("actor = %s/%s, want gm/gm-1", events[0].ActorType, events[0].ActorID)
	}
}

func TestAdvancePhaseWrapsIntoNextTurn(t *testing.T) {
	svc, store, kingdom := newTestService(t)

	kingdom.Phase = turndomain.PhaseUpkeep
	if err := store.PutKingdom(context.Background(), kingdom); err != nil {
		t.Fatalf("seed kingdom: %v", err)
	}

	result, err := svc.AdvancePhase(context.Background(), "king-1", "gm-1")
	if err != nil {
		t.Fatalf("AdvancePhase: %v", err)
	}
	if !result.TurnRolled || result.Turn != 2 {
		t.Fatalf("turn = %d rolled %v, want turn 2 rolled", result.Turn, result.TurnRolled)
	}
	if result.ToPhase != turndomain.FirstPhase() {
		t.Fatalf("to phase = %v, want first phase", result.ToPhase)
	}
}

func TestGetViewerDefaultsLockedToCurrent(t *testing.T) {
	svc, store, kingdom := newTestService(t)

	kingdom.Phase = turndomain.PhaseEvents
	if err := store.PutKingdom(context.Background(), kingdom); err != nil {
		t.Fatalf("seed kingdom: %v", err)
	}

	viewer, err := svc.GetViewer(context.Background(), "king-1", "alice")
	if err != nil {
		t.Fatalf("GetViewer: %v", err)
	}
	if !viewer.Locked || viewer.Viewing != turndomain.PhaseEvents {
		t.Fatalf("viewer = %+v, want locked to events", viewer)
	}
}

func TestSetViewingLockedRequiresHold(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.SetViewing(context.Background(), "king-1", "alice", turndomain.PhaseCommerce, 200*time.Millisecond)
	if errors.CodeOf(err) != errors.CodeTurnViewingLocked {
		t.Fatalf("error code = %v, want CodeTurnViewingLocked", errors.CodeOf(err))
	}

	viewer, err := svc.SetViewing(context.Background(), "king-1", "alice", turndomain.PhaseCommerce, turndomain.UnlockHold)
	if err != nil {
		t.Fatalf("SetViewing with full hold: %v", err)
	}
	if viewer.Locked || viewer.Viewing != turndomain.PhaseCommerce {
		t.Fatalf("viewer = %+v, want unlocked viewing commerce", viewer)
	}
}

func TestSetViewingUnlockedMovesFreely(t *testing.T) {
	svc, store, _ := newTestService(t)

	if err := store.PutViewer(context.Background(), turndomain.Viewer{
		KingdomID: "king-1",
		ViewerID:  "alice",
		Viewing:   turndomain.PhaseStatus,
		Locked:    false,
	}); err != nil {
		t.Fatalf("seed viewer: %v", err)
	}

	viewer, err := svc.SetViewing(context.Background(), "king-1", "alice", turndomain.PhaseUnrest, 0)
	if err != nil {
		t.Fatalf("SetViewing: %v", err)
	}
	if viewer.Viewing != turndomain.PhaseUnrest {
		t.Fatalf("viewing = %v, want unrest", viewer.Viewing)
	}

	events, err := store.ListEvents(context.Background(), "king-1", 0)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 1 || events[0].Type != event.TypePhaseViewed {
		t.Fatalf("events = %+v, want single turn.phase_viewed", events)
	}
}

func TestSetLockSnapsToCurrent(t *testing.T) {
	svc, store, kingdom := newTestService(t)

	kingdom.Phase = turndomain.PhaseUnrest
	if err := store.PutKingdom(context.Background(), kingdom); err != nil {
		t.Fatalf("seed kingdom: %v", err)
	}
	if err := store.PutViewer(context.Background(), turndomain.Viewer{
		KingdomID: "king-1",
		ViewerID:  "alice",
		Viewing:   turndomain.PhaseStatus,
		Locked:    false,
	}); err != nil {
		t.Fatalf("seed viewer: %v", err)
	}

	viewer, err := svc.SetLock(context.Background(), "king-1", "alice", true)
	if err != nil {
		t.Fatalf("SetLock: %v", err)
	}
	if !viewer.Locked || viewer.Viewing != turndomain.PhaseUnrest {
		t.Fatalf("viewer = %+v, want locked viewing unrest", viewer)
	}
}

func TestViewerValidation(t *testing.T) {
	svc, _, _ := newTestService(t)

	if _, err := svc.GetViewer(context.Background(), "", "alice"); errors.CodeOf(err) != errors.CodeTurnEmptyKingdomID {
		t.Fatalf("empty kingdom error code = %v", errors.CodeOf(err))
	}
	if _, err := svc.GetViewer(context.Background(), "king-1", ""); errors.CodeOf(err) != errors.CodeTurnEmptyViewerID {
		t.Fatalf("empty viewer error code = %v", errors.CodeOf(err))
	}
	if _, err := svc.AdvancePhase(context.Background(), "missing", "gm-1"); errors.CodeOf(err) != errors.CodeNotFound {
		t.Fatalf("missing kingdom error code = %v", errors.CodeOf(err))
	}
}

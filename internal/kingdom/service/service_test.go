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

func newTestService() (*Service, *memory.Store) {
	store := memory.New()
	svc := New(store)
	svc.now = func() time.Time { return time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC) }
	svc.newID = func() (string, error) { return "king-test", nil }
	return svc, store
}

func TestCreateKingdom(t *testing.T) {
	svc, store := newTestService()

	kingdom, err := svc.CreateKingdom(context.Background(), kingdomdomain.CreateKingdomInput{Name: "  Greenbelt  ", Fame: 2})
	if err != nil {
		t.Fatalf("CreateKingdom: %v", err)
	}
	if kingdom.ID != "king-test" {
		t.Fatalf("id = %q, want king-test", kingdom.ID)
	}
	if kingdom.Name != "Greenbelt" {
		t.Fatalf("name = %q, want trimmed Greenbelt", kingdom.Name)
	}
	if kingdom.Turn != 1 || kingdom.Phase != turndomain.FirstPhase() {
		t.Fatalf("kingdom starts at turn %d phase %v, want turn 1 first phase", kingdom.Turn, kingdom.Phase)
	}

	events, err := store.ListEvents(context.Background(), "king-test", 0)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 1 || events[0].Type != event.TypeKingdomCreated {
		t.Fatalf("events = %+v, want single kingdom.created", events)
	}
	if events[0].ActorType != event.ActorTypeSystem {
		t.Fatalf("actor type = %q, want system", events[0].ActorType)
	}
}

func TestCreateKingdomRequiresName(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateKingdom(context.Background(), kingdomdomain.CreateKingdomInput{Name: "   "})
	if errors.CodeOf(err) != errors.CodeKingdomNameEmpty {
		t.Fatalf("error code = %v, want CodeKingdomNameEmpty", errors.CodeOf(err))
	}
}

func TestGetKingdomNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetKingdom(context.Background(), "missing")
	if errors.CodeOf(err) != errors.CodeNotFound {
		t.Fatalf("error code = %v, want CodeNotFound", errors.CodeOf(err))
	}
}

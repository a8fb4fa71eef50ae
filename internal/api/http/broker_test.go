package http

import (
	"encoding/json"
	"testing"

	"github.com/louisbranch/demesne/internal/kingdom/event"
)

func TestBrokerFanout(t *testing.T) {
	broker := NewBroker()

	chA := broker.Subscribe("kingdom-a")
	chB := broker.Subscribe("kingdom-b")
	defer broker.Unsubscribe("kingdom-a", chA)
	defer broker.Unsubscribe("kingdom-b", chB)

	broker.Publish(event.Event{
		KingdomID:   "kingdom-a",
		Seq:         3,
		Type:        event.TypeKingdomCreated,
		ActorType:   event.ActorTypeSystem,
		PayloadJSON: []byte(`{"name":"Greenmarch"}`),
	})

	select {
	case data := <-chA:
		var evt StreamEvent
		if err := json.Unmarshal(data, &evt); err != nil {
			t.Fatalf("unmarshal stream event: %v", err)
		}
		if evt.Seq != 3 {
			t.Errorf("seq = %d, want 3", evt.Seq)
		}
		if evt.Type != string(event.TypeKingdomCreated) {
			t.Errorf("type = %q, want %q", evt.Type, event.TypeKingdomCreated)
		}
	default:
		t.Fatal("subscriber did not receive published event")
	}

	select {
	case <-chB:
		t.Fatal("event leaked to another kingdom's subscriber")
	default:
	}
}

func TestBrokerDropsSlowSubscriber(t *testing.T) {
	broker := NewBroker()

	ch := broker.Subscribe("kingdom-a")
	defer broker.Unsubscribe("kingdom-a", ch)

	// Publish past the channel buffer. The overflow must be dropped
	// rather than blocking the publisher.
	for i := 0; i < cap(ch)+5; i++ {
		broker.Publish(event.Event{KingdomID: "kingdom-a", Seq: uint64(i) + 1, Type: event.TypeKingdomCreated})
	}

	if got := len(ch); got != cap(ch) {
		t.Errorf("buffered events = %d, want %d", got, cap(ch))
	}
}

func TestUnsubscribeRemovesChannel(t *testing.T) {
	broker := NewBroker()

	ch := broker.Subscribe("kingdom-a")
	broker.Unsubscribe("kingdom-a", ch)

	broker.Publish(event.Event{KingdomID: "kingdom-a", Seq: 1, Type: event.TypeKingdomCreated})

	select {
	case <-ch:
		t.Fatal("unsubscribed channel received an event")
	default:
	}
}

package http

import (
	"encoding/json"
	"sync"

	"github.com/louisbranch/demesne/internal/kingdom/event"
)

// StreamEvent is the payload published to kingdom subscribers.
type StreamEvent struct {
	Seq       uint64          `json:"seq"`
	Type      string          `json:"type"`
	ActorType string          `json:"actorType,omitempty"`
	ActorID   string          `json:"actorId,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// Broker is an in-process pub/sub for kingdom event streams, keyed by
// kingdom ID.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded events for the
// given kingdom.
func (b *Broker) Subscribe(kingdomID string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[kingdomID] == nil {
		b.subs[kingdomID] = make(map[chan []byte]struct{})
	}
	b.subs[kingdomID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the kingdom's subscribers.
func (b *Broker) Unsubscribe(kingdomID string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[kingdomID], ch)
	if len(b.subs[kingdomID]) == 0 {
		delete(b.subs, kingdomID)
	}
	b.mu.Unlock()
}

// Publish sends a journal event to all subscribers of the kingdom.
func (b *Broker) Publish(evt event.Event) {
	data, _ := json.Marshal(StreamEvent{
		Seq:       evt.Seq,
		Type:      string(evt.Type),
		ActorType: string(evt.ActorType),
		ActorID:   evt.ActorID,
		Payload:   evt.PayloadJSON,
	})
	b.mu.RLock()
	for ch := range b.subs[evt.KingdomID] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}

package http

import (
	"context"

	"github.com/louisbranch/demesne/internal/kingdom/event"
	"github.com/louisbranch/demesne/internal/storage"
)

// publishingStore decorates a store so every appended journal event also
// reaches stream subscribers.
type publishingStore struct {
	storage.Store
	broker *Broker
}

func newPublishingStore(store storage.Store, broker *Broker) *publishingStore {
	return &publishingStore{Store: store, broker: broker}
}

func (s *publishingStore) AppendEvent(ctx context.Context, evt event.Event) (event.Event, error) {
	appended, err := s.Store.AppendEvent(ctx, evt)
	if err != nil {
		return event.Event{}, err
	}
	s.broker.Publish(appended)
	return appended, nil
}

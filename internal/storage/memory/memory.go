// Package memory implements the storage interfaces with in-process maps.
// Intended for tests and the debug harness.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/louisbranch/demesne/internal/storage"

	kingdomdomain "github.com/louisbranch/demesne/internal/kingdom/domain"
	"github.com/louisbranch/demesne/internal/kingdom/event"
	resolutiondomain "github.com/louisbranch/demesne/internal/resolution/domain"
	settlementdomain "github.com/louisbranch/demesne/internal/settlement/domain"
	turndomain "github.com/louisbranch/demesne/internal/turn/domain"
)

type viewerKey struct {
	kingdomID string
	viewerID  string
}

// Store is an in-memory implementation of storage.Store. Safe for
// concurrent use.
type Store struct {
	mu          sync.RWMutex
	kingdoms    map[string]kingdomdomain.Kingdom
	viewers     map[viewerKey]turndomain.Viewer
	settlements map[string]settlementdomain.Settlement
	resolutions map[string]resolutiondomain.Resolution
	events      map[string][]event.Event
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{
		kingdoms:    make(map[string]kingdomdomain.Kingdom),
		viewers:     make(map[viewerKey]turndomain.Viewer),
		settlements: make(map[string]settlementdomain.Settlement),
		resolutions: make(map[string]resolutiondomain.Resolution),
		events:      make(map[string][]event.Event),
	}
}

func (s *Store) PutKingdom(_ context.Context, kingdom kingdomdomain.Kingdom) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kingdoms[kingdom.ID] = kingdom
	return nil
}

func (s *Store) GetKingdom(_ context.Context, id string) (kingdomdomain.Kingdom, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	kingdom, ok := s.kingdoms[id]
	if !ok {
		return kingdomdomain.Kingdom{}, storage.ErrNotFound
	}
	return kingdom, nil
}

func (s *Store) PutViewer(_ context.Context, viewer turndomain.Viewer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewers[viewerKey{viewer.KingdomID, viewer.ViewerID}] = viewer
	return nil
}

func (s *Store) GetViewer(_ context.Context, kingdomID, viewerID string) (turndomain.Viewer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	viewer, ok := s.viewers[viewerKey{kingdomID, viewerID}]
	if !ok {
		return turndomain.Viewer{}, storage.ErrNotFound
	}
	return viewer, nil
}

func (s *Store) PutSettlement(_ context.Context, settlement settlementdomain.Settlement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settlements[settlement.ID] = settlement
	return nil
}

func (s *Store) GetSettlement(_ context.Context, id string) (settlementdomain.Settlement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	settlement, ok := s.settlements[id]
	if !ok {
		return settlementdomain.Settlement{}, storage.ErrNotFound
	}
	return settlement, nil
}

func (s *Store) ListSettlements(_ context.Context, kingdomID string) ([]settlementdomain.Settlement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []settlementdomain.Settlement
	for _, settlement := range s.settlements {
		if settlement.KingdomID == kingdomID {
			out = append(out, settlement)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) PutResolution(_ context.Context, resolution resolutiondomain.Resolution) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolutions[resolution.ID] = resolution
	return nil
}

func (s *Store) GetResolution(_ context.Context, id string) (resolutiondomain.Resolution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resolution, ok := s.resolutions[id]
	if !ok {
		return resolutiondomain.Resolution{}, storage.ErrNotFound
	}
	return resolution, nil
}

func (s *Store) ListPendingResolutions(_ context.Context, kingdomID string) ([]resolutiondomain.Resolution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []resolutiondomain.Resolution
	for _, resolution := range s.resolutions {
		if resolution.KingdomID == kingdomID && resolution.State == resolutiondomain.StatePending {
			out = append(out, resolution)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) AppendEvent(_ context.Context, evt event.Event) (event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	evt.Seq = uint64(len(s.events[evt.KingdomID])) + 1
	s.events[evt.KingdomID] = append(s.events[evt.KingdomID], evt)
	return evt, nil
}

func (s *Store) ListEvents(_ context.Context, kingdomID string, limit int) ([]event.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	journal := s.events[kingdomID]
	if limit > 0 && limit < len(journal) {
		journal = journal[len(journal)-limit:]
	}
	out := make([]event.Event, len(journal))
	copy(out, journal)
	return out, nil
}

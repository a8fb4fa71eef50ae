// Package storage defines the persistence interfaces for the kingdom
// document, its satellites, and the event journal.
package storage

import (
	"context"
	"errors"

	kingdomdomain "github.com/louisbranch/demesne/internal/kingdom/domain"
	"github.com/louisbranch/demesne/internal/kingdom/event"
	resolutiondomain "github.com/louisbranch/demesne/internal/resolution/domain"
	settlementdomain "github.com/louisbranch/demesne/internal/settlement/domain"
	turndomain "github.com/louisbranch/demesne/internal/turn/domain"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// KingdomStore persists kingdom documents.
type KingdomStore interface {
	PutKingdom(ctx context.Context, kingdom kingdomdomain.Kingdom) error
	GetKingdom(ctx context.Context, id string) (kingdomdomain.Kingdom, error)
}

// ViewerStore persists per-viewer phase view state.
type ViewerStore interface {
	PutViewer(ctx context.Context, viewer turndomain.Viewer) error
	GetViewer(ctx context.Context, kingdomID, viewerID string) (turndomain.Viewer, error)
}

// SettlementStore persists settlements.
type SettlementStore interface {
	PutSettlement(ctx context.Context, settlement settlementdomain.Settlement) error
	GetSettlement(ctx context.Context, id string) (settlementdomain.Settlement, error)
	ListSettlements(ctx context.Context, kingdomID string) ([]settlementdomain.Settlement, error)
}

// ResolutionStore persists check resolutions.
type ResolutionStore interface {
	PutResolution(ctx context.Context, resolution resolutiondomain.Resolution) error
	GetResolution(ctx context.Context, id string) (resolutiondomain.Resolution, error)
	ListPendingResolutions(ctx context.Context, kingdomID string) ([]resolutiondomain.Resolution, error)
}

// EventStore appends to and reads the kingdom event journal.
type EventStore interface {
	// AppendEvent assigns the next sequence number and persists the event.
	AppendEvent(ctx context.Context, evt event.Event) (event.Event, error)
	// ListEvents returns events for a kingdom in ascending sequence order.
	// A limit <= 0 returns all events.
	ListEvents(ctx context.Context, kingdomID string, limit int) ([]event.Event, error)
}

// Store bundles every persistence interface the services need.
type Store interface {
	KingdomStore
	ViewerStore
	SettlementStore
	ResolutionStore
	EventStore
}

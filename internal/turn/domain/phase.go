// Package domain defines the fixed per-turn phase sequence.
//
// Each kingdom turn walks a fixed, ordered sequence of six phases. The
// authoritative "current" phase belongs to the kingdom document and only
// moves through Advance. Each viewer additionally keeps an independent
// "viewing" pointer for reviewing any phase, optionally locked to the
// current phase behind a press-and-hold unlock.
package domain

import "errors"

// Phase is one step of the fixed per-turn sequence.
type Phase int

const (
	// PhaseUnspecified represents an invalid phase value.
	PhaseUnspecified Phase = iota
	// PhaseStatus applies start-of-turn bookkeeping.
	PhaseStatus
	// PhaseResources collects resource income.
	PhaseResources
	// PhaseUnrest resolves unrest and its consequences.
	PhaseUnrest
	// PhaseEvents resolves kingdom events and incidents.
	PhaseEvents
	// PhaseCommerce handles trade and spending.
	PhaseCommerce
	// PhaseUpkeep applies end-of-turn upkeep.
	PhaseUpkeep
)

var phaseOrder = [...]Phase{
	PhaseStatus,
	PhaseResources,
	PhaseUnrest,
	PhaseEvents,
	PhaseCommerce,
	PhaseUpkeep,
}

var (
	// ErrInvalidPhase indicates a phase outside the fixed sequence.
	ErrInvalidPhase = errors.New("invalid turn phase")
)

// Phases returns the fixed phase sequence in order.
func Phases() []Phase {
	out := make([]Phase, len(phaseOrder))
	copy(out, phaseOrder[:])
	return out
}

// FirstPhase returns the first phase of a turn.
func FirstPhase() Phase {
	return phaseOrder[0]
}

// String returns the wire form of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseStatus:
		return "status"
	case PhaseResources:
		return "resources"
	case PhaseUnrest:
		return "unrest"
	case PhaseEvents:
		return "events"
	case PhaseCommerce:
		return "commerce"
	case PhaseUpkeep:
		return "upkeep"
	default:
		return "unspecified"
	}
}

// ParsePhase parses a wire-form phase string.
func ParsePhase(value string) (Phase, error) {
	switch value {
	case "status":
		return PhaseStatus, nil
	case "resources":
		return PhaseResources, nil
	case "unrest":
		return PhaseUnrest, nil
	case "events":
		return PhaseEvents, nil
	case "commerce":
		return PhaseCommerce, nil
	case "upkeep":
		return PhaseUpkeep, nil
	default:
		return PhaseUnspecified, ErrInvalidPhase
	}
}

// IsValid reports whether the phase is part of the fixed sequence.
func (p Phase) IsValid() bool {
	return p >= PhaseStatus && p <= PhaseUpkeep
}

// Advance returns the phase after p, wrapping to the first phase of the
// next turn. The second return reports whether the turn rolled over.
func Advance(p Phase) (Phase, bool) {
	for i, candidate := range phaseOrder {
		if candidate != p {
			continue
		}
		if i == len(phaseOrder)-1 {
			return phaseOrder[0], true
		}
		return phaseOrder[i+1], false
	}
	return phaseOrder[0], false
}

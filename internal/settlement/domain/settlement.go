// Package domain defines settlements and the structure selection rules.
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/demesne/internal/platform/id"
)

var (
	// ErrEmptyKingdomID indicates a missing kingdom ID.
	ErrEmptyKingdomID = errors.New("kingdom id is required")
	// ErrEmptyName indicates a missing settlement name.
	ErrEmptyName = errors.New("settlement name is required")
	// ErrInvalidTier indicates a settlement tier below 1.
	ErrInvalidTier = errors.New("settlement tier must be at least 1")
)

// structuresPerTier is how many structure slots each settlement tier grants.
const structuresPerTier = 4

// Settlement represents a settlement attached to a kingdom.
type Settlement struct {
	ID        string
	KingdomID string
	Name      string
	Tier      int
	// Built holds the ids of structures built in this settlement.
	Built     []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Capacity returns how many structures the settlement can hold, derived
// from its tier.
func (s Settlement) Capacity() int {
	if s.Tier < 1 {
		return 0
	}
	return s.Tier * structuresPerTier
}

// HasBuilt reports whether the settlement has built the given structure.
func (s Settlement) HasBuilt(structureID string) bool {
	for _, built := range s.Built {
		if built == structureID {
			return true
		}
	}
	return false
}

// CreateSettlementInput describes the metadata needed to create a settlement.
type CreateSettlementInput struct {
	KingdomID string
	Name      string
	Tier      int
}

// CreateSettlement creates a new settlement with a generated ID and timestamps.
func CreateSettlement(input CreateSettlementInput, now func() time.Time, idGenerator func() (string, error)) (Settlement, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreateSettlementInput(input)
	if err != nil {
		return Settlement{}, err
	}

	settlementID, err := idGenerator()
	if err != nil {
		return Settlement{}, fmt.Errorf("generate settlement id: %w", err)
	}

	createdAt := now().UTC()
	return Settlement{
		ID:        settlementID,
		KingdomID: normalized.KingdomID,
		Name:      normalized.Name,
		Tier:      normalized.Tier,
		Built:     nil,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}

// NormalizeCreateSettlementInput trims and validates settlement input metadata.
func NormalizeCreateSettlementInput(input CreateSettlementInput) (CreateSettlementInput, error) {
	input.KingdomID = strings.TrimSpace(input.KingdomID)
	if input.KingdomID == "" {
		return CreateSettlementInput{}, ErrEmptyKingdomID
	}
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return CreateSettlementInput{}, ErrEmptyName
	}
	if input.Tier < 1 {
		return CreateSettlementInput{}, ErrInvalidTier
	}
	return input, nil
}

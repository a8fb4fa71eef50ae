package domain

import "sort"

// DefaultSelectionLimit bounds pending selections when no limit is given.
const DefaultSelectionLimit = 1

// Selection tracks a pending set of structure choices for a settlement,
// enforcing the tier prerequisite cascade and a selection limit.
//
// Selecting tier N auto-selects every unselected, unbuilt lower tier in
// the same category. Deselecting tier N removes every pending tier >= N in
// the same category. A selection that would push the pending set past the
// limit is rejected silently.
type Selection struct {
	byID     map[string]Structure
	built    map[string]struct{}
	pending  map[string]struct{}
	limit    int
}

// NewSelection creates a selection over the given structure catalog. built
// lists structure ids already present in the settlement; limit bounds the
// pending set (values < 1 fall back to DefaultSelectionLimit).
func NewSelection(catalog []Structure, built []string, limit int) *Selection {
	if limit < 1 {
		limit = DefaultSelectionLimit
	}

	byID := make(map[string]Structure, len(catalog))
	for _, structure := range catalog {
		byID[structure.ID] = structure
	}
	builtSet := make(map[string]struct{}, len(built))
	for _, structureID := range built {
		builtSet[structureID] = struct{}{}
	}

	return &Selection{
		byID:    byID,
		built:   builtSet,
		pending: map[string]struct{}{},
		limit:   limit,
	}
}

// Select adds the structure and its unmet lower-tier prerequisites to the
// pending set. Unknown structures, already-built structures, and
// selections that would exceed the limit are ignored.
func (s *Selection) Select(structureID string) {
	target, ok := s.byID[structureID]
	if !ok {
		return
	}
	if s.isBuilt(structureID) || s.isPending(structureID) {
		return
	}

	toAdd := []string{structureID}
	for _, structure := range s.byID {
		if structure.Category != target.Category || structure.Tier >= target.Tier {
			continue
		}
		if s.isBuilt(structure.ID) || s.isPending(structure.ID) {
			continue
		}
		toAdd = append(toAdd, structure.ID)
	}

	if len(s.pending)+len(toAdd) > s.limit {
		return
	}
	for _, addID := range toAdd {
		s.pending[addID] = struct{}{}
	}
}

// Deselect removes the structure and every pending same-category structure
// of equal or higher tier from the pending set.
func (s *Selection) Deselect(structureID string) {
	target, ok := s.byID[structureID]
	if !ok {
		return
	}

	for pendingID := range s.pending {
		structure := s.byID[pendingID]
		if structure.Category == target.Category && structure.Tier >= target.Tier {
			delete(s.pending, pendingID)
		}
	}
}

// Pending returns the pending structure ids ordered by category then tier.
func (s *Selection) Pending() []string {
	out := make([]string, 0, len(s.pending))
	for structureID := range s.pending {
		out = append(out, structureID)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := s.byID[out[i]], s.byID[out[j]]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.Tier != b.Tier {
			return a.Tier < b.Tier
		}
		return a.ID < b.ID
	})
	return out
}

// Count returns how many structures are pending.
func (s *Selection) Count() int {
	return len(s.pending)
}

// Warnings lists pending structures gated behind a higher settlement tier.
// The gate warns rather than blocks.
func (s *Selection) Warnings(settlementTier int) []string {
	var warnings []string
	for _, structureID := range s.Pending() {
		structure := s.byID[structureID]
		if structure.MinSettlementTier > settlementTier {
			warnings = append(warnings, structure.ID)
		}
	}
	return warnings
}

func (s *Selection) isBuilt(structureID string) bool {
	_, ok := s.built[structureID]
	return ok
}

func (s *Selection) isPending(structureID string) bool {
	_, ok := s.pending[structureID]
	return ok
}

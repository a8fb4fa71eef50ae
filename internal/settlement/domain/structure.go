package domain

// Structure is a buildable upgrade attached to a settlement. Structures in
// the same category form a tier ladder: building tier N requires every
// lower tier in the category.
type Structure struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Tier     int    `json:"tier"`
	// MinSettlementTier gates the structure behind settlement growth.
	// The gate surfaces as a warning, not a hard block.
	MinSettlementTier int `json:"min_settlement_tier,omitempty"`
}

// Package dice provides deterministic dice rolling for kingdom checks.
package dice

import "errors"

var (
	// ErrMissingDice indicates a request with no dice specs.
	ErrMissingDice = errors.New("at least one dice spec is required")
	// ErrInvalidDiceSpec indicates a spec with non-positive sides or count.
	ErrInvalidDiceSpec = errors.New("dice spec must have positive sides and count")
)

// Spec describes a group of identical dice to roll.
type Spec struct {
	Sides int
	Count int
}

// Request describes a deterministic dice roll.
type Request struct {
	Dice []Spec
	// Seed drives the random source; identical requests produce identical results.
	Seed int64
}

// Roll holds the results for a single dice spec.
type Roll struct {
	Sides   int
	Results []int
	Total   int
}

// Result holds the results for an entire request.
type Result struct {
	Rolls []Roll
	Total int
}

package dice

import "math/rand"

// RollDice rolls dice based on the provided request.
//
// # Determinism
//
// RollDice is deterministic with respect to the Seed field on Request.
// Given the same Seed and the same Dice slice (including order and values),
// RollDice will always produce the same Result.
//
// # Ordering
//
// Dice specs in Request.Dice are processed in slice order. The resulting
// Roll entries in Result.Rolls appear in the same order as the
// corresponding Spec entries in Request.Dice.
//
// # Totals
//
// For each Roll in Result.Rolls, the Total field is the sum of all values
// in Results for that dice specification. The Result.Total field is the
// sum of Total for all Roll entries.
//
// # Errors
//
//   - At least one Spec must be provided in Request.Dice, otherwise
//     ErrMissingDice is returned.
//   - Each Spec must have Sides > 0 and Count > 0, otherwise
//     ErrInvalidDiceSpec is returned.
func RollDice(request Request) (Result, error) {
	rng := rand.New(rand.NewSource(request.Seed))
	return RollWithRng(rng, request.Dice)
}

// RollWithRng rolls dice using a provided random source.
// This is useful when the caller controls the RNG directly.
func RollWithRng(rng *rand.Rand, specs []Spec) (Result, error) {
	if len(specs) == 0 {
		return Result{}, ErrMissingDice
	}

	rolls := make([]Roll, 0, len(specs))
	total := 0

	for _, spec := range specs {
		if spec.Sides <= 0 || spec.Count <= 0 {
			return Result{}, ErrInvalidDiceSpec
		}

		results := make([]int, spec.Count)
		rollTotal := 0
		for i := 0; i < spec.Count; i++ {
			value := rollDie(rng, spec.Sides)
			results[i] = value
			rollTotal += value
		}

		rolls = append(rolls, Roll{
			Sides:   spec.Sides,
			Results: results,
			Total:   rollTotal,
		})
		total += rollTotal
	}

	return Result{
		Rolls: rolls,
		Total: total,
	}, nil
}

// D20 rolls a single twenty-sided die with the given seed and returns its value.
// Kingdom checks are resolved on a d20.
func D20(seed int64) int {
	result, err := RollDice(Request{
		Dice: []Spec{{Sides: 20, Count: 1}},
		Seed: seed,
	})
	if err != nil {
		// Unreachable: the spec is hardcoded and always valid.
		panic(err)
	}
	return result.Total
}

// rollDie rolls a single die with the provided number of sides.
func rollDie(rng *rand.Rand, sides int) int {
	return rng.Intn(sides) + 1
}

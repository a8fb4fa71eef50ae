package dice

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

func TestRollDiceDeterministic(t *testing.T) {
	request := Request{
		Dice: []Spec{{Sides: 6, Count: 2}, {Sides: 20, Count: 1}},
		Seed: 42,
	}

	first, err := RollDice(request)
	if err != nil {
		t.Fatalf("first roll: %v", err)
	}
	second, err := RollDice(request)
	if err != nil {
		t.Fatalf("second roll: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical results for identical seeds: %v vs %v", first, second)
	}
}

func TestRollDiceOrderingAndTotals(t *testing.T) {
	request := Request{
		Dice: []Spec{{Sides: 6, Count: 3}, {Sides: 8, Count: 2}},
		Seed: 7,
	}

	result, err := RollDice(request)
	if err != nil {
		t.Fatalf("roll: %v", err)
	}

	if len(result.Rolls) != 2 {
		t.Fatalf("expected 2 roll groups, got %d", len(result.Rolls))
	}
	if result.Rolls[0].Sides != 6 || result.Rolls[1].Sides != 8 {
		t.Errorf("expected rolls in request order, got %v", result.Rolls)
	}

	sum := 0
	for _, roll := range result.Rolls {
		groupSum := 0
		for _, value := range roll.Results {
			if value < 1 || value > roll.Sides {
				t.Errorf("die value %d out of range for d%d", value, roll.Sides)
			}
			groupSum += value
		}
		if groupSum != roll.Total {
			t.Errorf("group total %d does not match sum %d", roll.Total, groupSum)
		}
		sum += groupSum
	}
	if sum != result.Total {
		t.Errorf("request total %d does not match sum %d", result.Total, sum)
	}
}

func TestRollDiceErrors(t *testing.T) {
	tests := []struct {
		name    string
		request Request
		want    error
	}{
		{"no dice", Request{}, ErrMissingDice},
		{"zero sides", Request{Dice: []Spec{{Sides: 0, Count: 1}}}, ErrInvalidDiceSpec},
		{"zero count", Request{Dice: []Spec{{Sides: 6, Count: 0}}}, ErrInvalidDiceSpec},
		{"negative sides", Request{Dice: []Spec{{Sides: -6, Count: 1}}}, ErrInvalidDiceSpec},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RollDice(tt.request)
			if !errors.Is(err, tt.want) {
				t.Errorf("RollDice() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRollWithRng(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	result, err := RollWithRng(rng, []Spec{{Sides: 4, Count: 5}})
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if len(result.Rolls) != 1 || len(result.Rolls[0].Results) != 5 {
		t.Fatalf("unexpected result shape: %v", result)
	}
}

func TestD20Range(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		value := D20(seed)
		if value < 1 || value > 20 {
			t.Fatalf("d20 value %d out of range for seed %d", value, seed)
		}
	}
}

func TestD20Deterministic(t *testing.T) {
	if D20(99) != D20(99) {
		t.Error("expected identical d20 values for the same seed")
	}
}

package domain

import (
	"reflect"
	"testing"
)

func testCatalog() []Structure {
	return []Structure{
		{ID: "shrine", Name: "Shrine", Category: "faith", Tier: 1},
		{ID: "temple", Name: "Temple", Category: "faith", Tier: 2},
		{ID: "cathedral", Name: "Cathedral", Category: "faith", Tier: 3, MinSettlementTier: 3},
		{ID: "stall", Name: "Market Stall", Category: "trade", Tier: 1},
		{ID: "bazaar", Name: "Bazaar", Category: "trade", Tier: 2},
	}
}

func TestSelectCascadesPrerequisites(t *testing.T) {
	selection := NewSelection(testCatalog(), nil, 5)
	selection.Select("cathedral")

	want := []string{"shrine", "temple", "cathedral"}
	got := selection.Pending()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Pending() = %v, want %v", got, want)
	}
}

func TestSelectSkipsBuiltPrerequisites(t *testing.T) {
	selection := NewSelection(testCatalog(), []string{"shrine"}, 5)
	selection.Select("cathedral")

	want := []string{"temple", "cathedral"}
	got := selection.Pending()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Pending() = %v, want %v", got, want)
	}
}

func TestDeselectCascadesDependents(t *testing.T) {
	selection := NewSelection(testCatalog(), nil, 5)
	selection.Select("cathedral")

	selection.Deselect("shrine")
	if selection.Count() != 0 {
		t.Errorf("expected empty pending set, got %v", selection.Pending())
	}
}

func TestDeselectLeavesOtherCategories(t *testing.T) {
	selection := NewSelection(testCatalog(), nil, 5)
	selection.Select("temple")
	selection.Select("bazaar")

	selection.Deselect("shrine")

	want := []string{"stall", "bazaar"}
	got := selection.Pending()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Pending() = %v, want %v", got, want)
	}
}

func TestSelectRespectsLimitSilently(t *testing.T) {
	selection := NewSelection(testCatalog(), nil, 2)
	// Cathedral needs three slots; with a limit of two the whole
	// selection is rejected without error.
	selection.Select("cathedral")
	if selection.Count() != 0 {
		t.Errorf("expected rejection, got %v", selection.Pending())
	}

	selection.Select("temple")
	if selection.Count() != 2 {
		t.Errorf("expected shrine+temple, got %v", selection.Pending())
	}

	// One more would exceed the limit.
	selection.Select("stall")
	if selection.Count() != 2 {
		t.Errorf("expected limit to hold, got %v", selection.Pending())
	}
}

func TestSelectDefaultLimitIsOne(t *testing.T) {
	selection := NewSelection(testCatalog(), nil, 0)
	selection.Select("shrine")
	if selection.Count() != 1 {
		t.Fatalf("expected one pending, got %d", selection.Count())
	}
	selection.Select("stall")
	if selection.Count() != 1 {
		t.Errorf("expected limit 1 to hold, got %v", selection.Pending())
	}
}

func TestSelectIgnoresUnknownAndBuilt(t *testing.T) {
	selection := NewSelection(testCatalog(), []string{"shrine"}, 5)
	selection.Select("monolith")
	selection.Select("shrine")
	if selection.Count() != 0 {
		t.Errorf("expected no pending structures, got %v", selection.Pending())
	}
}

func TestSelectIsIdempotent(t *testing.T) {
	selection := NewSelection(testCatalog(), nil, 5)
	selection.Select("temple")
	selection.Select("temple")

	want := []string{"shrine", "temple"}
	got := selection.Pending()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Pending() = %v, want %v", got, want)
	}
}

func TestWarningsForSettlementTierGate(t *testing.T) {
	selection := NewSelection(testCatalog(), nil, 5)
	selection.Select("cathedral")

	warnings := selection.Warnings(1)
	if !reflect.DeepEqual(warnings, []string{"cathedral"}) {
		t.Errorf("Warnings(1) = %v, want [cathedral]", warnings)
	}

	if warnings := selection.Warnings(3); warnings != nil {
		t.Errorf("Warnings(3) = %v, want nil", warnings)
	}
}

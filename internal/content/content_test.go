package content

import (
	"testing"

	resolutiondomain "github.com/louisbranch/demesne/internal/resolution/domain"
)

func TestValidateEmbeddedCatalogs(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestChecksCatalog(t *testing.T) {
	checks, err := Checks()
	if err != nil {
		t.Fatalf("Checks: %v", err)
	}
	if len(checks) == 0 {
		t.Fatal("check catalog is empty")
	}

	def, ok := CheckByID("claim-hex")
	if !ok {
		t.Fatal("claim-hex missing from catalog")
	}
	if def.Kind != resolutiondomain.CheckKindAction {
		t.Fatalf("claim-hex kind = %q, want action", def.Kind)
	}
	if !def.AllowsSkill("Exploration") {
		t.Fatal("claim-hex should allow exploration case-insensitively")
	}
	if def.Table.CriticalFailure.Description == "" {
		t.Fatal("claim-hex critical failure has no description")
	}
	if len(def.Table.CriticalSuccess.Changes) == 0 {
		t.Fatal("claim-hex critical success has no state changes")
	}

	if _, ok := CheckByID("no-such-check"); ok {
		t.Fatal("unknown check id should not resolve")
	}
}

func TestStructuresCatalogLadders(t *testing.T) {
	structures, err := Structures()
	if err != nil {
		t.Fatalf("Structures: %v", err)
	}
	if len(structures) == 0 {
		t.Fatal("structure catalog is empty")
	}

	// Tier ladders must be contiguous per category so selection
	// cascades can always find the lower tiers.
	tiers := make(map[string][]int)
	for _, structure := range structures {
		tiers[structure.Category] = append(tiers[structure.Category], structure.Tier)
	}
	for category, ladder := range tiers {
		seen := make(map[int]bool, len(ladder))
		for _, tier := range ladder {
			seen[tier] = true
		}
		for tier := 1; tier <= len(ladder); tier++ {
			if !seen[tier] {
				t.Fatalf("category %q is missing tier %d", category, tier)
			}
		}
	}
}

// Package content holds the embedded check and structure catalogs.
package content

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	resolutiondomain "github.com/louisbranch/demesne/internal/resolution/domain"
	settlementdomain "github.com/louisbranch/demesne/internal/settlement/domain"
)

//go:embed data/checks.json
var checksJSON []byte

//go:embed data/structures.json
var structuresJSON []byte

var (
	loadOnce           sync.Once
	embeddedChecks     []resolutiondomain.CheckDefinition
	embeddedStructures []settlementdomain.Structure
	loadError          error
)

type checksDocument struct {
	Checks []resolutiondomain.CheckDefinition `json:"checks"`
}

type structuresDocument struct {
	Structures []settlementdomain.Structure `json:"structures"`
}

func load() {
	var checks checksDocument
	if err := json.Unmarshal(checksJSON, &checks); err != nil {
		loadError = fmt.Errorf("parse checks catalog: %w", err)
		return
	}
	var structures structuresDocument
	if err := json.Unmarshal(structuresJSON, &structures); err != nil {
		loadError = fmt.Errorf("parse structures catalog: %w", err)
		return
	}
	if err := validateChecks(checks.Checks); err != nil {
		loadError = err
		return
	}
	if err := validateStructures(structures.Structures); err != nil {
		loadError = err
		return
	}
	embeddedChecks = checks.Checks
	embeddedStructures = structures.Structures
}

func validateChecks(checks []resolutiondomain.CheckDefinition) error {
	seen := make(map[string]bool, len(checks))
	for _, def := range checks {
		if def.ID == "" {
			return fmt.Errorf("check catalog: check with empty id")
		}
		if seen[def.ID] {
			return fmt.Errorf("check catalog: duplicate check id %q", def.ID)
		}
		seen[def.ID] = true
		if def.Name == "" {
			return fmt.Errorf("check catalog: check %q has no name", def.ID)
		}
		switch def.Kind {
		case resolutiondomain.CheckKindAction, resolutiondomain.CheckKindEvent, resolutiondomain.CheckKindIncident:
		default:
			return fmt.Errorf("check catalog: check %q has unknown kind %q", def.ID, def.Kind)
		}
		if len(def.Skills) == 0 {
			return fmt.Errorf("check catalog: check %q allows no skills", def.ID)
		}
		if def.DC <= 0 {
			return fmt.Errorf("check catalog: check %q has non-positive dc", def.ID)
		}
	}
	return nil
}

func validateStructures(structures []settlementdomain.Structure) error {
	seen := make(map[string]bool, len(structures))
	ladders := make(map[string]map[int]bool)
	for _, structure := range structures {
		if structure.ID == "" {
			return fmt.Errorf("structure catalog: structure with empty id")
		}
		if seen[structure.ID] {
			return fmt.Errorf("structure catalog: duplicate structure id %q", structure.ID)
		}
		seen[structure.ID] = true
		if structure.Category == "" {
			return fmt.Errorf("structure catalog: structure %q has no category", structure.ID)
		}
		if structure.Tier < 1 {
			return fmt.Errorf("structure catalog: structure %q has tier below 1", structure.ID)
		}
		if ladders[structure.Category] == nil {
			ladders[structure.Category] = make(map[int]bool)
		}
		if ladders[structure.Category][structure.Tier] {
			return fmt.Errorf("structure catalog: category %q has two tier %d structures", structure.Category, structure.Tier)
		}
		ladders[structure.Category][structure.Tier] = true
	}
	// Every tier ladder must be contiguous from 1 or the cascade cannot
	// resolve dependencies.
	for category, tiers := range ladders {
		for tier := 1; tier <= len(tiers); tier++ {
			if !tiers[tier] {
				return fmt.Errorf("structure catalog: category %q is missing tier %d", category, tier)
			}
		}
	}
	return nil
}

// Checks returns the embedded check catalog.
func Checks() ([]resolutiondomain.CheckDefinition, error) {
	loadOnce.Do(load)
	if loadError != nil {
		return nil, loadError
	}
	return embeddedChecks, nil
}

// CheckByID returns one check definition from the embedded catalog.
func CheckByID(checkID string) (resolutiondomain.CheckDefinition, bool) {
	loadOnce.Do(load)
	if loadError != nil {
		return resolutiondomain.CheckDefinition{}, false
	}
	for _, def := range embeddedChecks {
		if def.ID == checkID {
			return def, true
		}
	}
	return resolutiondomain.CheckDefinition{}, false
}

// Structures returns the embedded structure catalog.
func Structures() ([]settlementdomain.Structure, error) {
	loadOnce.Do(load)
	if loadError != nil {
		return nil, loadError
	}
	return embeddedStructures, nil
}

// Validate parses the embedded catalogs and returns any error. Intended
// for startup checks.
func Validate() error {
	loadOnce.Do(load)
	return loadError
}

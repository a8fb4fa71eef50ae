package harness

import (
	"path/filepath"
	"testing"
)

func TestLoadIncidentFromFile(t *testing.T) {
	incident, err := LoadIncidentFromFile(filepath.Join("testdata", "bandit_raid.lua"))
	if err != nil {
		t.Fatalf("LoadIncidentFromFile: %v", err)
	}
	if incident.Name != "bandit-raid-drill" {
		t.Fatalf("name = %q, want bandit-raid-drill", incident.Name)
	}
	if len(incident.Steps) != 3 {
		t.Fatalf("steps = %d, want 3", len(incident.Steps))
	}

	check := incident.Steps[0]
	if check.Kind != "check" {
		t.Fatalf("step 1 kind = %q, want check", check.Kind)
	}
	if check.Args["id"] != "bandit-raid" || check.Args["skill"] != "defense" {
		t.Fatalf("check args = %v", check.Args)
	}
	if check.Args["seed"] != 42 {
		t.Fatalf("seed = %v, want 42", check.Args["seed"])
	}
	mods, ok := check.Args["mods"].([]any)
	if !ok || len(mods) != 1 {
		t.Fatalf("mods = %v, want one modifier", check.Args["mods"])
	}
	mod, ok := mods[0].(map[string]any)
	if !ok || mod["source"] != "garrison" || mod["value"] != 3 {
		t.Fatalf("mod = %v, want garrison +3", mods[0])
	}

	if incident.Steps[1].Kind != "apply_outcome" {
		t.Fatalf("step 2 kind = %q, want apply_outcome", incident.Steps[1].Kind)
	}
	if incident.Steps[2].Kind != "advance_phase" {
		t.Fatalf("step 3 kind = %q, want advance_phase", incident.Steps[2].Kind)
	}
}

func TestLoadIncidentDefaultsNameFromFile(t *testing.T) {
	incident, err := LoadIncidentFromFile(filepath.Join("testdata", "reroll_then_cancel.lua"))
	if err != nil {
		t.Fatalf("LoadIncidentFromFile: %v", err)
	}
	if incident.Name != "reroll_then_cancel" {
		t.Fatalf("name = %q, want file stem fallback", incident.Name)
	}
	if len(incident.Steps) != 3 {
		t.Fatalf("steps = %d, want 3", len(incident.Steps))
	}
	if incident.Steps[1].Kind != "reroll" || incident.Steps[1].Args["seed"] != 11 {
		t.Fatalf("reroll step = %+v", incident.Steps[1])
	}
	if incident.Steps[2].Args["reason"] != "drill only" {
		t.Fatalf("cancel reason = %v", incident.Steps[2].Args["reason"])
	}
}

func TestLoadIncidentRejectsNonIncidentReturn(t *testing.T) {
	if _, err := LoadIncidentFromFile(filepath.Join("testdata", "missing.lua")); err == nil {
		t.Fatal("expected error for missing script")
	}
}

func TestLoadIncidentFromString(t *testing.T) {
	source := `
local incident = Incident.new("surprise raid")
incident:check({id = "bandit-raid", actor = "Kesten", skill = "defense", seed = 7})
incident:apply_outcome()
return incident
`
	incident, err := LoadIncidentFromString(source, "fallback")
	if err != nil {
		t.Fatalf("LoadIncidentFromString: %v", err)
	}
	if incident.Name != "surprise raid" {
		t.Fatalf("name = %q, want surprise raid", incident.Name)
	}
	if len(incident.Steps) != 2 || incident.Steps[0].Kind != "check" {
		t.Fatalf("steps = %+v, want check then apply_outcome", incident.Steps)
	}
}

func TestLoadIncidentFromStringFallbackName(t *testing.T) {
	incident, err := LoadIncidentFromString(`return Incident.new()`, "drill")
	if err != nil {
		t.Fatalf("LoadIncidentFromString: %v", err)
	}
	if incident.Name != "drill" {
		t.Fatalf("name = %q, want fallback drill", incident.Name)
	}
}

func TestLoadIncidentFromStringRejectsBadScript(t *testing.T) {
	if _, err := LoadIncidentFromString(`return "not an incident"`, "bad"); err == nil {
		t.Fatal("expected error for non-incident return")
	}
	if _, err := LoadIncidentFromString(`this is not lua`, "bad"); err == nil {
		t.Fatal("expected error for unparsable script")
	}
}

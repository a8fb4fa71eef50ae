// Package harness loads and runs synthetic incident scripts for debug
// sessions. Scripts are Lua files that build an Incident: a named
// sequence of check rolls, outcome decisions, and phase advances injected
// into a kingdom as if they happened at the table.
package harness

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"
)

const incidentTypeName = "incident"

// Incident is a scripted sequence of kingdom actions.
type Incident struct {
	Name  string
	Steps []Step
}

// Step is one scripted action.
type Step struct {
	Kind string
	Args map[string]any
}

// LoadIncidentFromFile runs a Lua script and returns the Incident it
// builds. The script must return an Incident value.
func LoadIncidentFromFile(path string) (*Incident, error) {
	state := newScriptState()
	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	fallback := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return runIncidentChunk(state, fallback)
}

// LoadIncidentFromString is LoadIncidentFromFile for scripts that arrive
// over the wire instead of from disk. The fallback name is used when the
// script does not name its incident.
func LoadIncidentFromString(source, fallback string) (*Incident, error) {
	state := newScriptState()
	if err := lua.LoadBuffer(state, source, "incident", ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	return runIncidentChunk(state, fallback)
}

func newScriptState() *lua.State {
	state := lua.NewState()
	lua.OpenLibraries(state)
	registerLuaTypes(state)
	return state
}

func runIncidentChunk(state *lua.State, fallbackName string) (*Incident, error) {
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}

	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, fmt.Errorf("incident script must return Incident")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	incident, ok := ud.(*Incident)
	if !ok || incident == nil {
		return nil, fmt.Errorf("incident script returned invalid Incident")
	}
	if strings.TrimSpace(incident.Name) == "" {
		incident.Name = strings.TrimSpace(fallbackName)
	}
	return incident, nil
}

func registerLuaTypes(state *lua.State) {
	registerIncidentType(state)
	registerIncidentConstructor(state)
	registerModifierHelpers(state)
}

func registerIncidentType(state *lua.State) {
	lua.NewMetaTable(state, incidentTypeName)
	state.NewTable()
	lua.SetFunctions(state, incidentMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

func registerIncidentConstructor(state *lua.State) {
	state.NewTable()
	lua.SetFunctions(state, incidentConstructor, 0)
	state.SetGlobal("Incident")
}

func registerModifierHelpers(state *lua.State) {
	state.NewTable()
	lua.SetFunctions(state, modifierHelpers, 0)
	state.SetGlobal("Modifiers")
}

var incidentConstructor = []lua.RegistryFunction{
	{Name: "new", Function: incidentNew},
}

var modifierHelpers = []lua.RegistryFunction{
	{Name: "mod", Function: modifierHelper},
}

func modifierHelper(state *lua.State) int {
	source := lua.CheckString(state, 1)
	value := lua.CheckInteger(state, 2)
	state.NewTable()
	state.PushString(source)
	state.SetField(-2, "source")
	state.PushInteger(value)
	state.SetField(-2, "value")
	return 1
}

func incidentNew(state *lua.State) int {
	name := lua.OptString(state, 1, "")
	incident := &Incident{Name: name}
	state.PushUserData(incident)
	lua.SetMetaTableNamed(state, incidentTypeName)
	return 1
}

var incidentMethods = []lua.RegistryFunction{
	{Name: "check", Function: incidentCheck},
	{Name: "reroll", Function: incidentReroll},
	{Name: "apply_outcome", Function: incidentApplyOutcome},
	{Name: "cancel_outcome", Function: incidentCancelOutcome},
	{Name: "advance_phase", Function: incidentAdvancePhase},
}

func incidentCheck(state *lua.State) int {
	incident := checkIncident(state)
	lua.CheckType(state, 2, lua.TypeTable)
	data := tableToMap(state, 2)
	appendStep(incident, "check", data)
	return 0
}

func incidentReroll(state *lua.State) int {
	incident := checkIncident(state)
	seed := lua.OptInteger(state, 2, 0)
	appendStep(incident, "reroll", map[string]any{"seed": seed})
	return 0
}

func incidentApplyOutcome(state *lua.State) int {
	incident := checkIncident(state)
	appendStep(incident, "apply_outcome", nil)
	return 0
}

func incidentCancelOutcome(state *lua.State) int {
	incident := checkIncident(state)
	reason := lua.OptString(state, 2, "")
	appendStep(incident, "cancel_outcome", map[string]any{"reason": reason})
	return 0
}

func incidentAdvancePhase(state *lua.State) int {
	incident := checkIncident(state)
	appendStep(incident, "advance_phase", nil)
	return 0
}

func checkIncident(state *lua.State) *Incident {
	ud := lua.CheckUserData(state, 1, incidentTypeName)
	if incident, ok := ud.(*Incident); ok && incident != nil {
		return incident
	}
	lua.ArgumentError(state, 1, "incident expected")
	return nil
}

func appendStep(incident *Incident, kind string, data map[string]any) int {
	if incident == nil {
		return -1
	}
	if data == nil {
		data = map[string]any{}
	}
	incident.Steps = append(incident.Steps, Step{Kind: kind, Args: data})
	return len(incident.Steps) - 1
}

func tableToMap(state *lua.State, index int) map[string]any {
	output := map[string]any{}
	if state.TypeOf(index) != lua.TypeTable {
		return output
	}

	index = state.AbsIndex(index)
	state.PushNil()
	for state.Next(index) {
		if state.TypeOf(-2) == lua.TypeString {
			key, _ := state.ToString(-2)
			output[key] = luaToGo(state, -1)
		}
		state.Pop(1)
	}
	return output
}

func tableToGo(state *lua.State, index int) any {
	if state.TypeOf(index) != lua.TypeTable {
		return nil
	}

	index = state.AbsIndex(index)
	isArray := true
	maxIndex := 0
	count := 0
	state.PushNil()
	for state.Next(index) {
		if isArray {
			if state.TypeOf(-2) != lua.TypeNumber {
				isArray = false
			} else if idx, ok := state.ToInteger(-2); ok && idx > 0 {
				count++
				if idx > maxIndex {
					maxIndex = idx
				}
			} else {
				isArray = false
			}
		}
		state.Pop(1)
	}

	if isArray && count > 0 && maxIndex == count {
		result := make([]any, 0, maxIndex)
		for i := 1; i <= maxIndex; i++ {
			state.RawGetInt(index, i)
			result = append(result, luaToGo(state, -1))
			state.Pop(1)
		}
		return result
	}

	return tableToMap(state, index)
}

func luaToGo(state *lua.State, index int) any {
	switch state.TypeOf(index) {
	case lua.TypeString:
		value, _ := state.ToString(index)
		return value
	case lua.TypeNumber:
		value, _ := state.ToNumber(index)
		return normalizeNumber(value)
	case lua.TypeBoolean:
		return state.ToBoolean(index)
	case lua.TypeTable:
		return tableToGo(state, index)
	case lua.TypeUserData:
		return state.ToUserData(index)
	default:
		return nil
	}
}

func normalizeNumber(value float64) any {
	if value == math.Trunc(value) {
		return int(value)
	}
	return value
}

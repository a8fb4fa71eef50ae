package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// DeltaKind discriminates state-change variants on the wire.
type DeltaKind string

const (
	// DeltaKindNumeric marks a relative numeric change.
	DeltaKindNumeric DeltaKind = "numeric"
	// DeltaKindRange marks an absolute from/to transition.
	DeltaKindRange DeltaKind = "range"
	// DeltaKindAddRemove marks list membership changes.
	DeltaKindAddRemove DeltaKind = "addRemove"
	// DeltaKindFlag marks a boolean flag change.
	DeltaKindFlag DeltaKind = "flag"
	// DeltaKindText marks a free-form text change.
	DeltaKindText DeltaKind = "text"
)

// StateChange is one named delta in a check outcome. The five variants are
// NumericDelta, RangeDelta, AddRemoveDelta, FlagDelta, and TextDelta;
// Format is exhaustive over them.
type StateChange interface {
	Kind() DeltaKind
	// Format renders the delta's value for display, without its name.
	Format() string
}

// NumericDelta is a relative numeric change, e.g. gold +2.
type NumericDelta struct {
	Value int
}

// Kind identifies the variant.
func (NumericDelta) Kind() DeltaKind { return DeltaKindNumeric }

// Format renders the delta with an explicit sign.
func (d NumericDelta) Format() string {
	return fmt.Sprintf("%+d", d.Value)
}

// RangeDelta is an absolute transition, e.g. unrest 5 -> 8.
type RangeDelta struct {
	From int
	To   int
}

// Kind identifies the variant.
func (RangeDelta) Kind() DeltaKind { return DeltaKindRange }

// Format renders the transition.
func (d RangeDelta) Format() string {
	return fmt.Sprintf("%d -> %d", d.From, d.To)
}

// AddRemoveDelta records list membership changes.
type AddRemoveDelta struct {
	Added   []string
	Removed []string
}

// Kind identifies the variant.
func (AddRemoveDelta) Kind() DeltaKind { return DeltaKindAddRemove }

// Format renders added then removed entries.
func (d AddRemoveDelta) Format() string {
	var parts []string
	if len(d.Added) > 0 {
		parts = append(parts, "added "+strings.Join(d.Added, ", "))
	}
	if len(d.Removed) > 0 {
		parts = append(parts, "removed "+strings.Join(d.Removed, ", "))
	}
	if len(parts) == 0 {
		return "no change"
	}
	return strings.Join(parts, "; ")
}

// FlagDelta is a boolean flag change.
type FlagDelta struct {
	Value bool
}

// Kind identifies the variant.
func (FlagDelta) Kind() DeltaKind { return DeltaKindFlag }

// Format renders the flag state.
func (d FlagDelta) Format() string {
	if d.Value {
		return "set"
	}
	return "cleared"
}

// TextDelta is a free-form text change, e.g. a new kingdom motto.
type TextDelta struct {
	Value string
}

// Kind identifies the variant.
func (TextDelta) Kind() DeltaKind { return DeltaKindText }

// Format renders the new text.
func (d TextDelta) Format() string {
	return fmt.Sprintf("%q", d.Value)
}

// ChangeSet maps change names to their deltas.
type ChangeSet map[string]StateChange

// Describe renders the change set as stable, human-readable lines ordered
// by name, e.g. "unrest: +1".
func (c ChangeSet) Describe() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("%s: %s", name, c[name].Format()))
	}
	return lines
}

// changeEnvelope is the wire form of a StateChange.
type changeEnvelope struct {
	Kind    DeltaKind `json:"kind"`
	Value   *int      `json:"value,omitempty"`
	From    *int      `json:"from,omitempty"`
	To      *int      `json:"to,omitempty"`
	Added   []string  `json:"added,omitempty"`
	Removed []string  `json:"removed,omitempty"`
	Flag    *bool     `json:"flag,omitempty"`
	Text    *string   `json:"text,omitempty"`
}

// MarshalJSON encodes the change set with a kind discriminator per entry.
func (c ChangeSet) MarshalJSON() ([]byte, error) {
	envelopes := make(map[string]changeEnvelope, len(c))
	for name, change := range c {
		var env changeEnvelope
		switch delta := change.(type) {
		case NumericDelta:
			value := delta.Value
			env = changeEnvelope{Kind: DeltaKindNumeric, Value: &value}
		case RangeDelta:
			from, to := delta.From, delta.To
			env = changeEnvelope{Kind: DeltaKindRange, From: &from, To: &to}
		case AddRemoveDelta:
			env = changeEnvelope{Kind: DeltaKindAddRemove, Added: delta.Added, Removed: delta.Removed}
		case FlagDelta:
			flag := delta.Value
			env = changeEnvelope{Kind: DeltaKindFlag, Flag: &flag}
		case TextDelta:
			text := delta.Value
			env = changeEnvelope{Kind: DeltaKindText, Text: &text}
		default:
			return nil, fmt.Errorf("unknown state change kind for %q", name)
		}
		envelopes[name] = env
	}
	return json.Marshal(envelopes)
}

// UnmarshalJSON decodes a change set from its wire form.
func (c *ChangeSet) UnmarshalJSON(data []byte) error {
	var envelopes map[string]changeEnvelope
	if err := json.Unmarshal(data, &envelopes); err != nil {
		return err
	}

	out := make(ChangeSet, len(envelopes))
	for name, env := range envelopes {
		switch env.Kind {
		case DeltaKindNumeric:
			if env.Value == nil {
				return fmt.Errorf("numeric change %q is missing value", name)
			}
			out[name] = NumericDelta{Value: *env.Value}
		case DeltaKindRange:
			if env.From == nil || env.To == nil {
				return fmt.Errorf("range change %q is missing from/to", name)
			}
			out[name] = RangeDelta{From: *env.From, To: *env.To}
		case DeltaKindAddRemove:
			out[name] = AddRemoveDelta{Added: env.Added, Removed: env.Removed}
		case DeltaKindFlag:
			if env.Flag == nil {
				return fmt.Errorf("flag change %q is missing flag", name)
			}
			out[name] = FlagDelta{Value: *env.Flag}
		case DeltaKindText:
			if env.Text == nil {
				return fmt.Errorf("text change %q is missing text", name)
			}
			out[name] = TextDelta{Value: *env.Text}
		default:
			return fmt.Errorf("unknown state change kind %q for %q", env.Kind, name)
		}
	}
	*c = out
	return nil
}

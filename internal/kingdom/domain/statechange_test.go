package domain

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestStateChangeFormat(t *testing.T) {
	tests := []struct {
		name   string
		change StateChange
		want   string
	}{
		{"positive numeric", NumericDelta{Value: 2}, "+2"},
		{"negative numeric", NumericDelta{Value: -3}, "-3"},
		{"zero numeric", NumericDelta{Value: 0}, "+0"},
		{"range", RangeDelta{From: 5, To: 8}, "5 -> 8"},
		{"add only", AddRemoveDelta{Added: []string{"Granary"}}, "added Granary"},
		{"remove only", AddRemoveDelta{Removed: []string{"Shrine"}}, "removed Shrine"},
		{"add and remove", AddRemoveDelta{Added: []string{"Granary"}, Removed: []string{"Shrine"}}, "added Granary; removed Shrine"},
		{"empty add remove", AddRemoveDelta{}, "no change"},
		{"flag set", FlagDelta{Value: true}, "set"},
		{"flag cleared", FlagDelta{Value: false}, "cleared"},
		{"text", TextDelta{Value: "For the realm"}, `"For the realm"`},
		{"empty text", TextDelta{}, `""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.change.Format()
			if got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChangeSetDescribeStableOrder(t *testing.T) {
	changes := ChangeSet{
		"unrest": NumericDelta{Value: 1},
		"gold":   NumericDelta{Value: -4},
		"fame":   RangeDelta{From: 1, To: 2},
	}

	want := []string{"fame: 1 -> 2", "gold: -4", "unrest: +1"}
	got := changes.Describe()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Describe() = %v, want %v", got, want)
	}
}

func TestChangeSetJSONRoundTrip(t *testing.T) {
	original := ChangeSet{
		"gold":   NumericDelta{Value: -4},
		"unrest": RangeDelta{From: 2, To: 5},
		"titles": AddRemoveDelta{Added: []string{"Liberator"}, Removed: []string{"Defender"}},
		"at_war": FlagDelta{Value: true},
		"motto":  TextDelta{Value: "Strength through unity"},
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded ChangeSet
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !reflect.DeepEqual(original, decoded) {
		t.Errorf("round trip mismatch: %v vs %v", original, decoded)
	}
}

func TestChangeSetUnmarshalRejectsUnknownKind(t *testing.T) {
	var decoded ChangeSet
	err := json.Unmarshal([]byte(`{"gold":{"kind":"mystery"}}`), &decoded)
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestChangeSetUnmarshalRejectsMissingFields(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"numeric without value", `{"gold":{"kind":"numeric"}}`},
		{"range without to", `{"gold":{"kind":"range","from":1}}`},
		{"flag without flag", `{"gold":{"kind":"flag"}}`},
		{"text without text", `{"motto":{"kind":"text"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var decoded ChangeSet
			if err := json.Unmarshal([]byte(tt.data), &decoded); err == nil {
				t.Error("expected error for incomplete envelope")
			}
		})
	}
}

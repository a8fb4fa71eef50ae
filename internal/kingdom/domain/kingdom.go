package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/demesne/internal/platform/id"
	turndomain "github.com/louisbranch/demesne/internal/turn/domain"
)

var (
	// ErrEmptyName indicates a missing kingdom name.
	ErrEmptyName = errors.New("kingdom name is required")
)

// Kingdom represents the shared kingdom document.
type Kingdom struct {
	ID        string
	Name      string
	Level     int
	Fame      int
	Unrest    int
	Resources map[string]int
	Flags     map[string]bool
	Tags      map[string][]string
	Notes     map[string]string
	Turn      int
	Phase     turndomain.Phase
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateKingdomInput describes the metadata needed to create a kingdom.
type CreateKingdomInput struct {
	Name string
	// Fame is the starting fame pool; zero is valid.
	Fame int
}

// CreateKingdom creates a new kingdom with a generated ID and timestamps.
// The kingdom starts at turn 1 in the first phase.
func CreateKingdom(input CreateKingdomInput, now func() time.Time, idGenerator func() (string, error)) (Kingdom, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreateKingdomInput(input)
	if err != nil {
		return Kingdom{}, err
	}

	kingdomID, err := idGenerator()
	if err != nil {
		return Kingdom{}, fmt.Errorf("generate kingdom id: %w", err)
	}

	createdAt := now().UTC()
	return Kingdom{
		ID:        kingdomID,
		Name:      normalized.Name,
		Level:     1,
		Fame:      normalized.Fame,
		Unrest:    0,
		Resources: map[string]int{},
		Flags:     map[string]bool{},
		Tags:      map[string][]string{},
		Notes:     map[string]string{},
		Turn:      1,
		Phase:     turndomain.FirstPhase(),
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}

// NormalizeCreateKingdomInput trims and validates kingdom input metadata.
func NormalizeCreateKingdomInput(input CreateKingdomInput) (CreateKingdomInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return CreateKingdomInput{}, ErrEmptyName
	}
	if input.Fame < 0 {
		input.Fame = 0
	}
	return input, nil
}

// Apply mutates the kingdom by the given change set. The reserved names
// "fame" and "unrest" address their dedicated fields; every other numeric
// or range change addresses the resource pool of the same name. Flag
// changes address Flags, add/remove changes address Tags, and text
// changes address Notes.
func (k *Kingdom) Apply(changes ChangeSet) {
	for name, change := range changes {
		switch delta := change.(type) {
		case NumericDelta:
			switch name {
			case "fame":
				k.Fame += delta.Value
			case "unrest":
				k.Unrest += delta.Value
				if k.Unrest < 0 {
					k.Unrest = 0
				}
			default:
				if k.Resources == nil {
					k.Resources = map[string]int{}
				}
				k.Resources[name] += delta.Value
			}
		case RangeDelta:
			switch name {
			case "fame":
				k.Fame = delta.To
			case "unrest":
				k.Unrest = delta.To
			default:
				if k.Resources == nil {
					k.Resources = map[string]int{}
				}
				k.Resources[name] = delta.To
			}
		case FlagDelta:
			if k.Flags == nil {
				k.Flags = map[string]bool{}
			}
			k.Flags[name] = delta.Value
		case AddRemoveDelta:
			if k.Tags == nil {
				k.Tags = map[string][]string{}
			}
			k.Tags[name] = applyAddRemove(k.Tags[name], delta)
		case TextDelta:
			if k.Notes == nil {
				k.Notes = map[string]string{}
			}
			k.Notes[name] = delta.Value
		}
	}
}

func applyAddRemove(values []string, delta AddRemoveDelta) []string {
	removed := make(map[string]struct{}, len(delta.Removed))
	for _, value := range delta.Removed {
		removed[value] = struct{}{}
	}

	out := make([]string, 0, len(values)+len(delta.Added))
	present := make(map[string]struct{}, len(values))
	for _, value := range values {
		if _, drop := removed[value]; drop {
			continue
		}
		out = append(out, value)
		present[value] = struct{}{}
	}
	for _, value := range delta.Added {
		if _, drop := removed[value]; drop {
			continue
		}
		if _, ok := present[value]; ok {
			continue
		}
		out = append(out, value)
		present[value] = struct{}{}
	}
	return out
}

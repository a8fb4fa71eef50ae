package service

import (
	"fmt"
	"time"

	"github.com/jellydator/ttlcache/v3"

	resolutiondomain "github.com/louisbranch/demesne/internal/resolution/domain"
)

// displayTTL bounds how long rendered outcome displays are cached. The
// catalog is embedded, so entries only need to survive a burst of reads.
const displayTTL = 5 * time.Minute

// Display is the render-ready view of one resolution outcome.
type Display struct {
	CheckName    string `json:"check_name"`
	OutcomeLabel string `json:"outcome_label"`
	// Success drives the outcome banner styling: true for success and
	// critical success.
	Success       bool     `json:"success"`
	Description   string   `json:"description"`
	ChangeLines   []string `json:"change_lines,omitempty"`
	ManualEffects []string `json:"manual_effects,omitempty"`
}

type displayCache struct {
	cache *ttlcache.Cache[string, Display]
}

func newDisplayCache() *displayCache {
	displayTTLCache := ttlcache.New[string, Display](
		ttlcache.WithTTL[string, Display](displayTTL),
		ttlcache.WithDisableTouchOnHit[string, Display](),
	)
	go displayTTLCache.Start()
	return &displayCache{cache: displayTTLCache}
}

func (d *displayCache) get(key string) (Display, bool) {
	item := d.cache.Get(key)
	if item == nil {
		return Display{}, false
	}
	return item.Value(), true
}

func (d *displayCache) set(key string, display Display) {
	d.cache.Set(key, display, ttlcache.DefaultTTL)
}

// DisplayFor renders the display data for a resolution's current outcome.
// Renders are cached per check and outcome.
func (s *Service) DisplayFor(resolution resolutiondomain.Resolution) Display {
	key := fmt.Sprintf("%s/%s", resolution.CheckID, resolution.Outcome)
	if display, ok := s.display.get(key); ok {
		return display
	}

	def, ok := s.lookupCheck(resolution.CheckID)
	if !ok {
		// Unknown checks still render: neutral label and placeholder
		// effect.
		return Display{
			CheckName:    resolution.CheckID,
			OutcomeLabel: resolution.Outcome.Label(),
			Success:      resolution.Outcome.IsSuccess(),
			Description:  "-",
		}
	}
	effect := def.Table.For(resolution.Outcome)

	display := Display{
		CheckName:     def.Name,
		OutcomeLabel:  resolution.Outcome.Label(),
		Success:       resolution.Outcome.IsSuccess(),
		Description:   effect.Description,
		ChangeLines:   effect.Changes.Describe(),
		ManualEffects: effect.ManualEffects,
	}
	s.display.set(key, display)
	return display
}

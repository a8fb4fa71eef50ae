package domain

import (
	"errors"
	"time"
)

// UnlockHold is how long a viewer must press and hold to unlock a locked
// phase view.
const UnlockHold = 1500 * time.Millisecond

var (
	// ErrViewingLocked indicates a locked viewer tried to move without a
	// sufficient unlock hold.
	ErrViewingLocked = errors.New("phase view is locked to the current phase")
)

// Viewer is one participant's independent phase view state.
type Viewer struct {
	KingdomID string
	ViewerID  string
	Viewing   Phase
	// Locked pins the viewing pointer to the authoritative current phase.
	Locked    bool
	UpdatedAt time.Time
}

// SetViewing moves the viewing pointer to target. When the viewer is
// locked, the move requires a press-and-hold of at least UnlockHold, which
// also clears the lock; a shorter hold leaves the viewer unchanged and
// returns ErrViewingLocked.
func (v Viewer) SetViewing(target Phase, hold time.Duration) (Viewer, error) {
	if !target.IsValid() {
		return v, ErrInvalidPhase
	}
	if v.Locked {
		if hold < UnlockHold {
			return v, ErrViewingLocked
		}
		v.Locked = false
	}
	v.Viewing = target
	return v, nil
}

// SetLocked toggles the lock. Locking snaps the viewing pointer back to
// the supplied current phase.
func (v Viewer) SetLocked(locked bool, current Phase) Viewer {
	v.Locked = locked
	if locked && current.IsValid() {
		v.Viewing = current
	}
	return v
}

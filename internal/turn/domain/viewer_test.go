package domain

import (
	"errors"
	"testing"
	"time"
)

func TestSetViewingUnlocked(t *testing.T) {
	viewer := Viewer{Viewing: PhaseStatus}
	got, err := viewer.SetViewing(PhaseCommerce, 0)
	if err != nil {
		t.Fatalf("set viewing: %v", err)
	}
	if got.Viewing != PhaseCommerce {
		t.Errorf("viewing = %v, want %v", got.Viewing, PhaseCommerce)
	}
}

func TestSetViewingLockedShortHold(t *testing.T) {
	viewer := Viewer{Viewing: PhaseStatus, Locked: true}
	got, err := viewer.SetViewing(PhaseEvents, time.Second)
	if !errors.Is(err, ErrViewingLocked) {
		t.Fatalf("expected ErrViewingLocked, got %v", err)
	}
	if got.Viewing != PhaseStatus {
		t.Errorf("viewing moved despite lock: %v", got.Viewing)
	}
	if !got.Locked {
		t.Error("lock cleared despite short hold")
	}
}

func TestSetViewingLockedFullHold(t *testing.T) {
	viewer := Viewer{Viewing: PhaseStatus, Locked: true}
	got, err := viewer.SetViewing(PhaseEvents, UnlockHold)
	if err != nil {
		t.Fatalf("set viewing: %v", err)
	}
	if got.Viewing != PhaseEvents {
		t.Errorf("viewing = %v, want %v", got.Viewing, PhaseEvents)
	}
	if got.Locked {
		t.Error("expected lock cleared after full hold")
	}
}

func TestSetViewingInvalidPhase(t *testing.T) {
	viewer := Viewer{Viewing: PhaseStatus}
	if _, err := viewer.SetViewing(PhaseUnspecified, 0); !errors.Is(err, ErrInvalidPhase) {
		t.Fatalf("expected ErrInvalidPhase, got %v", err)
	}
}

func TestSetLockedSnapsToCurrent(t *testing.T) {
	viewer := Viewer{Viewing: PhaseCommerce}
	got := viewer.SetLocked(true, PhaseUnrest)
	if !got.Locked {
		t.Error("expected viewer locked")
	}
	if got.Viewing != PhaseUnrest {
		t.Errorf("viewing = %v, want %v", got.Viewing, PhaseUnrest)
	}

	got = got.SetLocked(false, PhaseUnrest)
	if got.Locked {
		t.Error("expected viewer unlocked")
	}
}

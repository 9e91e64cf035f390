package animation

import (
	"testing"

	"github.com/Xevion/Pac-Man-sub000/pacman/ghost"
)

func TestGhostAnimationForMapsEachState(t *testing.T) {
	if got := GhostAnimationFor(ghost.Normal()); got != KindDirectional {
		t.Fatalf("Normal should map to KindDirectional, got %v", got)
	}
	if got := GhostAnimationFor(ghost.Frightened(10, 5)); got != KindFrightenedLinear {
		t.Fatalf("non-flashing Frightened should map to KindFrightenedLinear, got %v", got)
	}
	flashing := ghost.Frightened(2, 1)
	flashing.Tick()
	if got := GhostAnimationFor(flashing); got != KindFlashingLinear {
		t.Fatalf("flashing Frightened should map to KindFlashingLinear, got %v", got)
	}
	if got := GhostAnimationFor(ghost.Eyes()); got != KindEyesDirectional {
		t.Fatalf("Eyes should map to KindEyesDirectional, got %v", got)
	}
}

func TestLastAnimationStateDetectsTransitionOnly(t *testing.T) {
	var l LastAnimationState
	if !l.Changed(KindDirectional) {
		t.Fatalf("first observation must always report changed")
	}
	if l.Changed(KindDirectional) {
		t.Fatalf("repeating the same kind must not report changed")
	}
	if !l.Changed(KindEyesDirectional) {
		t.Fatalf("a genuine transition must report changed")
	}
}

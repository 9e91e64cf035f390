package collision

import (
	"testing"

	"github.com/Xevion/Pac-Man-sub000/pacman/ghost"
)

func TestResolveGhostFrightenedIsEaten(t *testing.T) {
	s := ghost.Frightened(10, 5)
	if got := ResolveGhost(s); got != GhostActionEaten {
		t.Fatalf("expected GhostActionEaten, got %v", got)
	}
}

func TestResolveGhostNormalKillsPlayer(t *testing.T) {
	if got := ResolveGhost(ghost.Normal()); got != GhostActionKillsPlayer {
		t.Fatalf("expected GhostActionKillsPlayer, got %v", got)
	}
}

func TestResolveGhostEyesIsIgnored(t *testing.T) {
	if got := ResolveGhost(ghost.Eyes()); got != GhostActionNone {
		t.Fatalf("expected GhostActionNone for Eyes, got %v", got)
	}
}

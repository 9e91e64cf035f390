package stage

import (
	"testing"

	"github.com/Xevion/Pac-Man-sub000/pacman/entity"
	"github.com/Xevion/Pac-Man-sub000/pacman/ghost"
)

func TestStartingTextOnlyPlaysIntroOnceThenTransitions(t *testing.T) {
	s := Starting(TextOnly(1))
	introPlayed := false

	tr := AdvanceTick(&s, &introPlayed)
	if !tr.PlayIntro || !introPlayed {
		t.Fatalf("expected the first tick to fire PlayIntro")
	}
	if !s.IsStarting() || !s.Startup().IsCharactersVisible() {
		t.Fatalf("expected transition to CharactersVisible once TextOnly reaches 0, got %+v", s)
	}

	introPlayed = true
	tr2 := AdvanceTick(&s, &introPlayed)
	if tr2.PlayIntro {
		t.Fatalf("PlayIntro must only fire once, guarded by introPlayed")
	}
}

func TestStartingCharactersVisibleEntersPlaying(t *testing.T) {
	s := Starting(CharactersVisible(1))
	introPlayed := true

	tr := AdvanceTick(&s, &introPlayed)
	if !tr.EnteredPlaying {
		t.Fatalf("expected EnteredPlaying once CharactersVisible reaches 0")
	}
	if !s.IsPlaying() {
		t.Fatalf("expected stage to be Playing, got %+v", s)
	}
	if introPlayed {
		t.Fatalf("expected introPlayed to reset to false on entering Playing")
	}
}

func TestGhostEatenPauseExitsWithPayload(t *testing.T) {
	h := entity.Handle{Index: 7, Generation: 1}
	s := GhostEatenPause(1, h, ghost.Pinky, 0)
	var introPlayed bool

	tr := AdvanceTick(&s, &introPlayed)
	if !tr.GhostEatenExit {
		t.Fatalf("expected GhostEatenExit once the pause timer reaches 0")
	}
	if tr.GhostEatenExitHandle != h || tr.GhostEatenExitType != ghost.Pinky {
		t.Fatalf("expected the exit payload to name the eaten ghost, got %+v", tr)
	}
	if !s.IsPlaying() {
		t.Fatalf("expected stage to return to Playing")
	}
}

func TestDyingSequenceFullLifecycle(t *testing.T) {
	s := PlayerDying(DyingFrozen(1))
	var introPlayed bool

	tr := AdvanceTick(&s, &introPlayed)
	if !tr.DyingFrozenExit {
		t.Fatalf("expected DyingFrozenExit once Frozen reaches 0")
	}
	EnterDeathAnimating(&s, 2)
	if !s.Dying().IsAnimating() {
		t.Fatalf("expected Animating phase after EnterDeathAnimating")
	}

	tr = AdvanceTick(&s, &introPlayed)
	if tr.DyingAnimatingExit {
		t.Fatalf("should not exit animating with 1 tick remaining of 2")
	}
	tr = AdvanceTick(&s, &introPlayed)
	if !tr.DyingAnimatingExit {
		t.Fatalf("expected DyingAnimatingExit once Animating reaches 0")
	}
	EnterDeathHidden(&s)
	if !s.Dying().IsHidden() {
		t.Fatalf("expected Hidden phase after EnterDeathHidden")
	}

	// Advance Hidden{60} all the way down.
	for i := 0; i < 59; i++ {
		tr = AdvanceTick(&s, &introPlayed)
		if tr.DyingHiddenExit {
			t.Fatalf("DyingHiddenExit fired too early at iteration %d", i)
		}
	}
	tr = AdvanceTick(&s, &introPlayed)
	if !tr.DyingHiddenExit {
		t.Fatalf("expected DyingHiddenExit once Hidden reaches 0")
	}
}

func TestResolveDeathWithLivesRemaining(t *testing.T) {
	s := PlayerDying(DyingHidden(0))
	if reset := ResolveDeath(&s, 2); !reset {
		t.Fatalf("expected resetBoard=true when lives remain")
	}
	if !s.IsStarting() || !s.Startup().IsCharactersVisible() {
		t.Fatalf("expected stage to return to Starting(CharactersVisible), got %+v", s)
	}
}

func TestResolveDeathWithNoLivesLeft(t *testing.T) {
	s := PlayerDying(DyingHidden(0))
	if reset := ResolveDeath(&s, 0); reset {
		t.Fatalf("expected resetBoard=false when no lives remain")
	}
	if !s.IsGameOver() {
		t.Fatalf("expected GameOver, got %+v", s)
	}
}

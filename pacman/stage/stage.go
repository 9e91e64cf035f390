// Package stage implements GameStage, StartupSequence, and DyingSequence,
// the per-tick stage machine driven only while the game is unpaused, per
// spec.md §3 "Stage and Pause" and §4.4 "Stage machine". Grounded on the
// teacher's small enum-plus-countdown node-state shape
// (server/world/redstone/processor_graph.go), generalized to the richer
// payloads GameStage's variants carry.
//
// The machine is event-observed rather than callback-driven, per spec.md's
// design note: AdvanceTick mutates the stage for every transition it can
// decide on its own, and reports the handful of transitions whose side
// effects live outside this package (entity freeze/hide, audio, lives)
// through a Transition value. The caller performs those effects and, where
// the next stage depends on information this package does not own (lives
// remaining), calls back into ResolveDeath or one of the EnterDeath*
// helpers to push the stage forward.
package stage

import (
	"github.com/Xevion/Pac-Man-sub000/pacman/entity"
	"github.com/Xevion/Pac-Man-sub000/pacman/ghost"
	"github.com/Xevion/Pac-Man-sub000/pacman/graph"
)

type startupKind uint8

const (
	startupTextOnly startupKind = iota
	startupCharactersVisible
)

// StartupSequence is the tagged sum TextOnly{ticks} | CharactersVisible{ticks}.
type StartupSequence struct {
	k     startupKind
	ticks uint32
}

// TextOnly returns the intro-text phase of the startup sequence.
func TextOnly(ticks uint32) StartupSequence { return StartupSequence{k: startupTextOnly, ticks: ticks} }

// CharactersVisible returns the phase where entities are visible but frozen.
func CharactersVisible(ticks uint32) StartupSequence {
	return StartupSequence{k: startupCharactersVisible, ticks: ticks}
}

// IsTextOnly reports whether the sequence is in its text-only phase.
func (s StartupSequence) IsTextOnly() bool { return s.k == startupTextOnly }

// IsCharactersVisible reports whether entities are visible in this phase.
func (s StartupSequence) IsCharactersVisible() bool { return s.k == startupCharactersVisible }

// Ticks returns the remaining ticks in the current phase.
func (s StartupSequence) Ticks() uint32 { return s.ticks }

type dyingKind uint8

const (
	dyingFrozen dyingKind = iota
	dyingAnimating
	dyingHidden
)

// DyingSequence is the tagged sum Frozen{ticks} | Animating{ticks} | Hidden{ticks}.
type DyingSequence struct {
	k     dyingKind
	ticks uint32
}

// DyingFrozen returns the initial freeze-frame phase of a death.
func DyingFrozen(ticks uint32) DyingSequence { return DyingSequence{k: dyingFrozen, ticks: ticks} }

// DyingAnimating returns the death-animation playback phase.
func DyingAnimating(ticks uint32) DyingSequence {
	return DyingSequence{k: dyingAnimating, ticks: ticks}
}

// DyingHidden returns the phase after the death animation finishes, before
// the life is decremented.
func DyingHidden(ticks uint32) DyingSequence { return DyingSequence{k: dyingHidden, ticks: ticks} }

// IsFrozen reports whether the sequence is in its frozen phase.
func (s DyingSequence) IsFrozen() bool { return s.k == dyingFrozen }

// IsAnimating reports whether the death animation is playing.
func (s DyingSequence) IsAnimating() bool { return s.k == dyingAnimating }

// IsHidden reports whether the entity is hidden awaiting the life decrement.
func (s DyingSequence) IsHidden() bool { return s.k == dyingHidden }

// Ticks returns the remaining ticks in the current phase.
func (s DyingSequence) Ticks() uint32 { return s.ticks }

type stageKind uint8

const (
	stageWaitingForInteraction stageKind = iota
	stageStarting
	stagePlaying
	stageGhostEatenPause
	stagePlayerDying
	stageGameOver
)

// Stage is the tagged sum GameStage from spec.md §3.
type Stage struct {
	k       stageKind
	startup StartupSequence
	dying   DyingSequence

	geTicks     uint32
	geGhost     entity.Handle
	geGhostType ghost.Type
	geNode      graph.NodeId
}

// WaitingForInteraction is the initial stage before the player's first input.
func WaitingForInteraction() Stage { return Stage{k: stageWaitingForInteraction} }

// Starting wraps a StartupSequence.
func Starting(s StartupSequence) Stage { return Stage{k: stageStarting, startup: s} }

// Playing is the normal gameplay stage.
func Playing() Stage { return Stage{k: stagePlaying} }

// GhostEatenPause freezes the world briefly after Pac-Man eats a frightened
// ghost, per spec.md §4.6 Scenario D.
func GhostEatenPause(ticks uint32, ghostEntity entity.Handle, ghostType ghost.Type, node graph.NodeId) Stage {
	return Stage{k: stageGhostEatenPause, geTicks: ticks, geGhost: ghostEntity, geGhostType: ghostType, geNode: node}
}

// PlayerDying wraps a DyingSequence.
func PlayerDying(d DyingSequence) Stage { return Stage{k: stagePlayerDying, dying: d} }

// GameOver is the terminal stage.
func GameOver() Stage { return Stage{k: stageGameOver} }

func (s Stage) IsWaitingForInteraction() bool { return s.k == stageWaitingForInteraction }
func (s Stage) IsStarting() bool              { return s.k == stageStarting }
func (s Stage) Startup() StartupSequence      { return s.startup }
func (s Stage) IsPlaying() bool               { return s.k == stagePlaying }
func (s Stage) IsGhostEatenPause() bool       { return s.k == stageGhostEatenPause }

// GhostEatenPauseData returns the payload of a GhostEatenPause stage. Only
// meaningful when IsGhostEatenPause is true.
func (s Stage) GhostEatenPauseData() (ticks uint32, ghostEntity entity.Handle, ghostType ghost.Type, node graph.NodeId) {
	return s.geTicks, s.geGhost, s.geGhostType, s.geNode
}
func (s Stage) IsPlayerDying() bool  { return s.k == stagePlayerDying }
func (s Stage) Dying() DyingSequence { return s.dying }
func (s Stage) IsGameOver() bool     { return s.k == stageGameOver }

// Transition reports the side effects AdvanceTick could not resolve on its
// own, because they reach outside the stage machine (entity freeze/hide,
// audio, lives). The caller performs the corresponding effect and, for the
// two entries whose next stage depends on external state, calls back into
// EnterDeathAnimating/EnterDeathHidden/ResolveDeath.
type Transition struct {
	// PlayIntro fires once, on first entry to Starting(TextOnly).
	PlayIntro bool
	// EnteredPlaying fires when Starting finishes: unfreeze player, ghosts,
	// and Blinking.
	EnteredPlaying bool
	// GhostEatenExit fires when GhostEatenPause's timer reaches zero: set
	// GhostEntity to Eyes, unhide/unfreeze everyone else.
	GhostEatenExit       bool
	GhostEatenExitHandle entity.Handle
	GhostEatenExitType   ghost.Type
	// DyingFrozenExit fires when PlayerDying(Frozen) finishes: hide ghosts,
	// swap the player's directional animation for the death animation, play
	// the death sound. The caller must then call EnterDeathAnimating with
	// the death animation's total duration in ticks.
	DyingFrozenExit bool
	// DyingAnimatingExit fires when the death animation finishes; the
	// caller must then call EnterDeathHidden.
	DyingAnimatingExit bool
	// DyingHiddenExit fires when PlayerDying(Hidden) finishes: the caller
	// must decrement PlayerLives and call ResolveDeath with the result.
	DyingHiddenExit bool
}

// AdvanceTick runs the per-tick stage update described in spec.md §4.4. It
// is only ever called while PauseState.Active() is false.
func AdvanceTick(s *Stage, introPlayed *bool) Transition {
	var t Transition
	switch s.k {
	case stageStarting:
		advanceStarting(s, introPlayed, &t)
	case stageGhostEatenPause:
		advanceGhostEatenPause(s, &t)
	case stagePlayerDying:
		advanceDying(s, &t)
	}
	return t
}

func advanceStarting(s *Stage, introPlayed *bool, t *Transition) {
	su := s.startup
	if su.IsTextOnly() {
		if !*introPlayed {
			t.PlayIntro = true
			*introPlayed = true
		}
		if su.ticks > 0 {
			su.ticks--
		}
		if su.ticks == 0 {
			*s = Starting(CharactersVisible(60))
		} else {
			*s = Starting(su)
		}
		return
	}
	// CharactersVisible
	if su.ticks > 0 {
		su.ticks--
	}
	if su.ticks == 0 {
		*s = Playing()
		*introPlayed = false
		t.EnteredPlaying = true
	} else {
		*s = Starting(su)
	}
}

func advanceGhostEatenPause(s *Stage, t *Transition) {
	if s.geTicks > 0 {
		s.geTicks--
	}
	if s.geTicks == 0 {
		t.GhostEatenExit = true
		t.GhostEatenExitHandle = s.geGhost
		t.GhostEatenExitType = s.geGhostType
		*s = Playing()
	}
}

func advanceDying(s *Stage, t *Transition) {
	d := s.dying
	if d.ticks > 0 {
		d.ticks--
	}
	*s = PlayerDying(d)
	if d.ticks != 0 {
		return
	}
	switch d.k {
	case dyingFrozen:
		t.DyingFrozenExit = true
		// The caller computes the death animation's duration and calls
		// EnterDeathAnimating; until then the stage is left at Frozen{0}
		// rather than guessing a duration here.
	case dyingAnimating:
		t.DyingAnimatingExit = true
	case dyingHidden:
		t.DyingHiddenExit = true
	}
}

// EnterDeathAnimating pushes the stage into PlayerDying(Animating{ticks}),
// called once the caller has computed the death animation's total duration
// in response to a DyingFrozenExit transition.
func EnterDeathAnimating(s *Stage, ticks uint32) {
	*s = PlayerDying(DyingAnimating(ticks))
}

// EnterDeathHidden pushes the stage into PlayerDying(Hidden{60}), called in
// response to a DyingAnimatingExit transition.
func EnterDeathHidden(s *Stage) {
	*s = PlayerDying(DyingHidden(60))
}

// ResolveDeath is called in response to a DyingHiddenExit transition, once
// the caller has decremented PlayerLives. If livesRemaining > 0 the stage
// returns to Starting(CharactersVisible{60}) and resetBoard reports that
// the caller must run the respawn reset (spec.md §4.4); otherwise the stage
// becomes GameOver.
func ResolveDeath(s *Stage, livesRemaining int) (resetBoard bool) {
	if livesRemaining > 0 {
		*s = Starting(CharactersVisible(60))
		return true
	}
	*s = GameOver()
	return false
}

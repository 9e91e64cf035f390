// Package pause implements PauseState and the manage_pause_state_system,
// per spec.md §4.5. Gameplay Update, Respond, and Animation system-sets are
// gated off while PauseState.Active returns true; Input, Draw, and Present
// always run so overlays render and the cursor/touch keep updating.
package pause

import "github.com/Xevion/Pac-Man-sub000/pacman/ports"

var (
	// PauseSound is emitted when the game transitions into a paused state.
	PauseSound = ports.AudioEvent{Name: "pause"}
	// ResumeSound is emitted when the game transitions out of a paused state.
	ResumeSound = ports.AudioEvent{Name: "resume"}
)

// State is the tagged sum Inactive | Active{remaining: Option<uint32>}
// from spec.md §3 "Stage and Pause". hasRemaining distinguishes Active{None}
// (permanent pause) from Active{Some(n)} (unpause after n ticks).
type State struct {
	active       bool
	hasRemaining bool
	remaining    uint32
}

// Inactive returns the unpaused state.
func Inactive() State { return State{} }

// ActiveIndefinite returns a permanent pause (Active{None}).
func ActiveIndefinite() State { return State{active: true} }

// ActiveFor returns a pause that lifts after n ticks (Active{Some(n)}).
func ActiveFor(n uint32) State { return State{active: true, hasRemaining: true, remaining: n} }

// Active reports whether gameplay systems are currently gated off.
func (s State) Active() bool { return s.active }

// TogglePause flips Inactive <-> Active{None}, per spec.md §4.5, emitting
// the matching audio event.
func TogglePause(s *State, sink ports.AudioSink) {
	if s.active {
		*s = Inactive()
		sink.Play(ResumeSound)
		return
	}
	*s = ActiveIndefinite()
	sink.Play(PauseSound)
}

// SingleTick handles the SingleTick command: ignored while Active{None}
// (the game is actively paused indefinitely); otherwise it sets
// Active{Some(1)} and emits Resume so exactly one gameplay tick runs before
// re-pausing.
func SingleTick(s *State, sink ports.AudioSink) {
	if s.active && !s.hasRemaining {
		return
	}
	*s = ActiveFor(1)
	sink.Play(ResumeSound)
}

// ManageState runs once per tick, after gameplay: if Active{Some(1)}, it
// transitions to Inactive and emits Pause on that natural boundary; if
// Active{Some(n>1)}, it decrements. Inactive and Active{None} are
// fixpoints, per spec.md §4.5.
func ManageState(s *State, sink ports.AudioSink) {
	if !s.active || !s.hasRemaining {
		return
	}
	if s.remaining > 1 {
		s.remaining--
		return
	}
	*s = Inactive()
	sink.Play(PauseSound)
}

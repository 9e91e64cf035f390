package pause

import (
	"testing"

	"github.com/Xevion/Pac-Man-sub000/pacman/ports"
)

type fakeSink struct{ events []ports.AudioEvent }

func (f *fakeSink) Play(e ports.AudioEvent) { f.events = append(f.events, e) }

func TestTogglePauseFlipsAndEmits(t *testing.T) {
	s := Inactive()
	sink := &fakeSink{}
	TogglePause(&s, sink)
	if !s.Active() {
		t.Fatalf("expected Active after toggling from Inactive")
	}
	if len(sink.events) != 1 || sink.events[0] != PauseSound {
		t.Fatalf("expected a Pause event, got %+v", sink.events)
	}
	TogglePause(&s, sink)
	if s.Active() {
		t.Fatalf("expected Inactive after toggling back")
	}
	if len(sink.events) != 2 || sink.events[1] != ResumeSound {
		t.Fatalf("expected a Resume event, got %+v", sink.events)
	}
}

func TestSingleTickIgnoredWhilePermanentlyPaused(t *testing.T) {
	s := ActiveIndefinite()
	sink := &fakeSink{}
	SingleTick(&s, sink)
	if len(sink.events) != 0 {
		t.Fatalf("expected SingleTick to be ignored under Active{None}")
	}
	if !s.Active() || s.hasRemaining {
		t.Fatalf("state must remain Active{None}")
	}
}

func TestSingleTickFromInactiveArmsOneTick(t *testing.T) {
	s := Inactive()
	sink := &fakeSink{}
	SingleTick(&s, sink)
	if !s.Active() || !s.hasRemaining || s.remaining != 1 {
		t.Fatalf("expected Active{Some(1)}, got %+v", s)
	}
	if len(sink.events) != 1 || sink.events[0] != ResumeSound {
		t.Fatalf("expected a Resume event, got %+v", sink.events)
	}
}

func TestManageStateDecrementsThenLifts(t *testing.T) {
	s := ActiveFor(3)
	sink := &fakeSink{}
	ManageState(&s, sink)
	if s.remaining != 2 || !s.Active() {
		t.Fatalf("expected remaining=2 still active, got %+v", s)
	}
	ManageState(&s, sink)
	if s.remaining != 1 || !s.Active() {
		t.Fatalf("expected remaining=1 still active, got %+v", s)
	}
	ManageState(&s, sink)
	if s.Active() {
		t.Fatalf("expected pause to lift once remaining reaches 1->Inactive")
	}
	if len(sink.events) != 1 || sink.events[0] != PauseSound {
		t.Fatalf("expected exactly one Pause event on the natural boundary, got %+v", sink.events)
	}
}

func TestManageStateFixpoints(t *testing.T) {
	sink := &fakeSink{}
	inactive := Inactive()
	ManageState(&inactive, sink)
	if inactive.Active() {
		t.Fatalf("Inactive must be a fixpoint")
	}
	permanent := ActiveIndefinite()
	ManageState(&permanent, sink)
	if !permanent.Active() || permanent.hasRemaining {
		t.Fatalf("Active{None} must be a fixpoint")
	}
	if len(sink.events) != 0 {
		t.Fatalf("fixpoints must not emit audio")
	}
}

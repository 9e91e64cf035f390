package spatial

import (
	"testing"

	"github.com/Xevion/Pac-Man-sub000/pacman/graph"
)

func TestVelocityDistanceScalesWithDelta(t *testing.T) {
	v := Velocity{Speed: 2, Direction: graph.Right}
	got := v.Distance(1.0 / 60.0)
	want := float32(2)
	if got != want {
		t.Fatalf("expected distance %v at 60Hz, got %v", want, got)
	}
}

func TestDefaultMovementModifiersIsIdentity(t *testing.T) {
	m := DefaultMovementModifiers()
	if m.SpeedMultiplier != 1 {
		t.Fatalf("expected default speed multiplier 1, got %v", m.SpeedMultiplier)
	}
	if m.TunnelSlowdown != 0 {
		t.Fatalf("expected default tunnel slowdown 0, got %v", m.TunnelSlowdown)
	}
}

func TestBufferedDirectionExpiresAfterWindow(t *testing.T) {
	b := Buffer(graph.Up)
	if !b.IsSet() {
		t.Fatalf("expected freshly buffered direction to be set")
	}
	b.Tick(bufferWindowSeconds - 0.01)
	if !b.IsSet() {
		t.Fatalf("expected buffer to still be set just before the window closes")
	}
	b.Tick(0.02)
	if b.IsSet() {
		t.Fatalf("expected buffer to expire to None once the window elapses")
	}
}

func TestBufferedDirectionNoneIsNoop(t *testing.T) {
	b := None()
	b.Tick(10)
	if b.IsSet() {
		t.Fatalf("ticking an empty buffer must never become set")
	}
}

package spatial

import (
	"testing"

	"github.com/Xevion/Pac-Man-sub000/pacman/graph"
	"github.com/go-gl/mathgl/mgl64"
)

func TestTickSubtractsWithoutOverflow(t *testing.T) {
	p := Moving(0, 1, 24)
	overflow, ok := p.Tick(10)
	if ok {
		t.Fatalf("expected no transition yet")
	}
	if overflow != 0 {
		t.Fatalf("expected zero overflow when not transitioning, got %v", overflow)
	}
	if p.IsStopped() {
		t.Fatalf("position should still be moving")
	}
	if p.RemainingDistance() != 14 {
		t.Fatalf("expected remaining distance 14, got %v", p.RemainingDistance())
	}
}

func TestTickOverflowChains(t *testing.T) {
	p := Moving(0, 1, 10)
	overflow, ok := p.Tick(24)
	if !ok {
		t.Fatalf("expected a transition to Stopped")
	}
	if overflow != 14 {
		t.Fatalf("expected overflow 14 (24-10), got %v", overflow)
	}
	if !p.IsStopped() || p.Node() != 1 {
		t.Fatalf("expected Stopped at node 1, got %+v", p)
	}
}

func TestTickExactDistanceNoOverflow(t *testing.T) {
	p := Moving(0, 1, 24)
	overflow, ok := p.Tick(24)
	if !ok {
		t.Fatalf("expected a transition to Stopped")
	}
	if overflow != 0 {
		t.Fatalf("expected zero overflow on exact match, got %v", overflow)
	}
}

func TestTickNoopWhenStoppedOrNonPositive(t *testing.T) {
	stopped := Stopped(5)
	if _, ok := stopped.Tick(10); ok {
		t.Fatalf("ticking a Stopped position must never transition")
	}

	moving := Moving(0, 1, 24)
	if _, ok := moving.Tick(0); ok {
		t.Fatalf("ticking with distance<=0 must never transition")
	}
	if _, ok := moving.Tick(-5); ok {
		t.Fatalf("ticking with negative distance must never transition")
	}
}

func TestZeroDistanceEdgeProgressIsOne(t *testing.T) {
	g := graph.New()
	a := g.AddNode(mgl64.Vec2{-24, 100})
	b := g.AddNode(mgl64.Vec2{700, 100})
	g.Connect(a, b, graph.Right, 0, graph.All, true)

	p := Moving(a, b, 0)
	got := p.Pixel(g)
	want := g.Node(b).Position
	if got != want {
		t.Fatalf("expected zero-distance edge to report progress 1 (at 'to'), got %v want %v", got, want)
	}
}

func TestOverflowInvariant(t *testing.T) {
	// post.remaining + (overflow or 0) = pre.remaining - d (modulo Stopped transition)
	pre := Moving(0, 1, 20)
	preRemaining := pre.RemainingDistance()
	d := float32(7)
	overflow, ok := pre.Tick(d)
	if ok {
		t.Fatalf("did not expect a transition for this distance budget")
	}
	if pre.RemainingDistance()+overflow != preRemaining-d {
		t.Fatalf("overflow invariant violated: post=%v overflow=%v pre=%v d=%v", pre.RemainingDistance(), overflow, preRemaining, d)
	}
}

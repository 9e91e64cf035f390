package ecsworld

import (
	"testing"

	"github.com/Xevion/Pac-Man-sub000/pacman/ghost"
	"github.com/Xevion/Pac-Man-sub000/pacman/input"
	"github.com/Xevion/Pac-Man-sub000/pacman/spatial"
	"github.com/Xevion/Pac-Man-sub000/pacman/worldmap"
)

func newTestWorld(t *testing.T) *World {
	t.Helper()
	m, err := worldmap.Build(worldmap.DefaultBoard)
	if err != nil {
		t.Fatalf("worldmap.Build: %v", err)
	}
	return New(m, input.DefaultBindings())
}

func TestSpawnProducesDistinctAliveHandles(t *testing.T) {
	w := newTestWorld(t)
	a := w.Spawn()
	b := w.Spawn()
	if a == b {
		t.Fatalf("expected distinct handles, got %+v twice", a)
	}
	if !w.Alive(a) || !w.Alive(b) {
		t.Fatalf("expected both freshly spawned entities to be alive")
	}
}

func TestDespawnInvalidatesHandleAndFreesComponents(t *testing.T) {
	w := newTestWorld(t)
	h := w.Spawn()
	w.SetPosition(h, spatial.Stopped(0))

	w.Despawn(h)
	if w.Alive(h) {
		t.Fatalf("expected handle to be dead after Despawn")
	}
	if _, ok := w.Position(h); ok {
		t.Fatalf("expected Position component to be gone after Despawn")
	}
}

func TestDespawnBumpsGenerationSoStaleHandlesAreDetected(t *testing.T) {
	w := newTestWorld(t)
	h := w.Spawn()
	w.Despawn(h)

	// A stale handle copy must never read as alive, even though its Index
	// slot may be reused by a later Spawn.
	if w.Alive(h) {
		t.Fatalf("expected stale handle to read as not alive")
	}
}

func TestComponentAccessorsRoundTrip(t *testing.T) {
	w := newTestWorld(t)
	h := w.Spawn()

	pos := spatial.Stopped(w.Map.Start.Pacman)
	w.SetPosition(h, pos)
	got, ok := w.Position(h)
	if !ok || got.Node() != pos.Node() {
		t.Fatalf("Position round-trip failed: got %+v ok=%v", got, ok)
	}

	vel := spatial.Velocity{Speed: 1, Direction: 0}
	w.SetVelocity(h, vel)
	if gotVel, ok := w.Velocity(h); !ok || gotVel != vel {
		t.Fatalf("Velocity round-trip failed: got %+v ok=%v", gotVel, ok)
	}

	w.SetGhostState(h, ghost.Normal())
	if gs, ok := w.GhostState(h); !ok || !gs.IsNormal() {
		t.Fatalf("GhostState round-trip failed: got %+v ok=%v", gs, ok)
	}

	w.SetGhostTag(h, GhostTag{Type: ghost.Blinky})
	if tag, ok := w.GhostTag(h); !ok || tag.Type != ghost.Blinky {
		t.Fatalf("GhostTag round-trip failed: got %+v ok=%v", tag, ok)
	}

	w.SetCollider(h, Collider{Size: 14, Tag: ColliderGhost})
	if c, ok := w.Collider(h); !ok || c.Tag != ColliderGhost {
		t.Fatalf("Collider round-trip failed: got %+v ok=%v", c, ok)
	}
}

func TestComponentAccessorsNoopOnDeadHandle(t *testing.T) {
	w := newTestWorld(t)
	h := w.Spawn()
	w.Despawn(h)

	w.SetPosition(h, spatial.Stopped(0))
	if _, ok := w.Position(h); ok {
		t.Fatalf("expected setting a component on a dead handle to be a no-op")
	}
}

func TestFrozenAndHiddenFlagsDefaultFalse(t *testing.T) {
	w := newTestWorld(t)
	h := w.Spawn()
	if w.Frozen(h) || w.Hidden(h) {
		t.Fatalf("expected fresh entity to be neither frozen nor hidden")
	}
	w.SetFrozen(h, true)
	w.SetHidden(h, true)
	if !w.Frozen(h) || !w.Hidden(h) {
		t.Fatalf("expected flags to be set")
	}
	w.SetFrozen(h, false)
	if w.Frozen(h) {
		t.Fatalf("expected Frozen to clear")
	}
}

func TestEntitiesListsOnlyAlive(t *testing.T) {
	w := newTestWorld(t)
	a := w.Spawn()
	b := w.Spawn()
	w.Despawn(a)

	list := w.Entities()
	if len(list) != 1 || list[0] != b {
		t.Fatalf("expected only %+v alive, got %+v", b, list)
	}
}

func TestPixelDelegatesToPositionComponent(t *testing.T) {
	w := newTestWorld(t)
	h := w.Spawn()
	w.SetPosition(h, spatial.Stopped(w.Map.Start.Pacman))

	got, ok := w.Pixel(h)
	if !ok {
		t.Fatalf("expected Pixel to succeed for a positioned entity")
	}
	want := w.Map.Graph.Node(w.Map.Start.Pacman).Position
	if got != want {
		t.Fatalf("Pixel = %v, want %v", got, want)
	}
}

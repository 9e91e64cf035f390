package schedule

import (
	"log/slog"
	"testing"

	"github.com/Xevion/Pac-Man-sub000/pacman/animation"
	"github.com/Xevion/Pac-Man-sub000/pacman/ecsworld"
	"github.com/Xevion/Pac-Man-sub000/pacman/ghost"
	"github.com/Xevion/Pac-Man-sub000/pacman/graph"
	"github.com/Xevion/Pac-Man-sub000/pacman/input"
	"github.com/Xevion/Pac-Man-sub000/pacman/pause"
	"github.com/Xevion/Pac-Man-sub000/pacman/ports"
	"github.com/Xevion/Pac-Man-sub000/pacman/rng"
	"github.com/Xevion/Pac-Man-sub000/pacman/spatial"
	"github.com/Xevion/Pac-Man-sub000/pacman/stage"
	"github.com/Xevion/Pac-Man-sub000/pacman/timing"
	"github.com/Xevion/Pac-Man-sub000/pacman/worldmap"
)

type fakeSink struct{ events []ports.AudioEvent }

func (f *fakeSink) Play(e ports.AudioEvent) { f.events = append(f.events, e) }

func newTestSchedulerWorld(t *testing.T) (*Scheduler, *ecsworld.World, *fakeSink) {
	t.Helper()
	m, err := worldmap.Build(worldmap.DefaultBoard)
	if err != nil {
		t.Fatalf("worldmap.Build: %v", err)
	}
	w := ecsworld.New(m, input.DefaultBindings())
	w.Stage = stage.Playing()

	sink := &fakeSink{}
	cfg := DefaultConfig(rng.New(1), sink, slog.Default())
	s := New(cfg)
	return s, w, sink
}

func dt() timing.DeltaTime { return timing.DeltaTime{Seconds: 1.0 / 60, Ticks: 1} }

func TestTickRunsGatedSystemsWhenNotPaused(t *testing.T) {
	s, w, _ := newTestSchedulerWorld(t)
	h := w.Spawn()
	w.SetPlayerControlled(h, true)
	w.SetPosition(h, spatial.Stopped(w.Map.Start.Pacman))
	w.SetVelocity(h, spatial.Velocity{Speed: 1, Direction: graph.Left})

	s.Tick(w, nil, dt())

	if mean, _, ok := w.SystemTimings.Stats(timing.NewSystemID("player_movement")); !ok || mean < 0 {
		t.Fatalf("expected player_movement to be recorded when not paused")
	}
}

func TestTickSkipsGatedSystemsWhilePaused(t *testing.T) {
	s, w, _ := newTestSchedulerWorld(t)
	w.Pause = pause.ActiveIndefinite()

	s.Tick(w, nil, dt())

	mean, _, ok := w.SystemTimings.Stats(timing.NewSystemID("collision"))
	if !ok {
		t.Fatalf("expected a skipped sample to still be recorded")
	}
	if mean != 0 {
		t.Fatalf("expected collision to record a zero skipped sample while paused, got %v", mean)
	}
}

func TestTickAlwaysRunsInputRegardlessOfPause(t *testing.T) {
	s, w, sink := newTestSchedulerWorld(t)
	w.Pause = pause.ActiveIndefinite()

	s.Tick(w, []input.Command{input.TogglePause()}, dt())

	if w.Pause.Active() {
		t.Fatalf("expected TogglePause command to be honored even while paused")
	}
	if len(sink.events) == 0 {
		t.Fatalf("expected a resume audio event to have been flushed")
	}
}

func TestTickManagePauseRunsBetweenUpdateAndAnimationSets(t *testing.T) {
	s, w, _ := newTestSchedulerWorld(t)
	w.Pause = pause.ActiveFor(1)

	s.Tick(w, nil, dt())

	if w.Pause.Active() {
		t.Fatalf("expected a single-tick pause to lift by the end of the tick it runs in")
	}
	if mean, _, ok := w.SystemTimings.Stats(timing.NewSystemID("stage")); !ok || mean < 0 {
		t.Fatalf("expected stage (Respond set) to still run the tick a pause lifts, got ok=%v mean=%v", ok, mean)
	}
}

func TestResolveItemCollisionPelletAwardsScoreAndDespawns(t *testing.T) {
	s, w, _ := newTestSchedulerWorld(t)
	item := w.Spawn()
	w.SetEntityType(item, ecsworld.EntityPellet)

	s.resolveItemCollision(w, item)

	if w.Score.Value != 10 {
		t.Fatalf("expected +10 score for a pellet, got %d", w.Score.Value)
	}
	if w.Alive(item) {
		t.Fatalf("expected the pellet entity to be despawned")
	}
	if len(s.audioQueue) != 1 {
		t.Fatalf("expected exactly one queued audio event, got %+v", s.audioQueue)
	}
}

func TestResolveItemCollisionPowerPelletFrightensNormalGhosts(t *testing.T) {
	s, w, _ := newTestSchedulerWorld(t)
	item := w.Spawn()
	w.SetEntityType(item, ecsworld.EntityPowerPellet)

	gh := w.Spawn()
	w.SetGhostTag(gh, ecsworld.GhostTag{Type: ghost.Blinky})
	w.SetGhostState(gh, ghost.Normal())

	s.resolveItemCollision(w, item)

	state, ok := w.GhostState(gh)
	if !ok || !state.IsFrightened() {
		t.Fatalf("expected ghost to become Frightened after a power pellet, got %+v ok=%v", state, ok)
	}
}

func TestResolveGhostCollisionEatenAwardsChainedBonusAndPauses(t *testing.T) {
	s, w, _ := newTestSchedulerWorld(t)
	player := w.Spawn()
	gh := w.Spawn()
	w.SetGhostTag(gh, ecsworld.GhostTag{Type: ghost.Pinky})
	w.SetGhostState(gh, ghost.Frightened(100, 50))
	w.SetPosition(gh, spatial.Stopped(w.Map.Start.Pacman))

	s.resolveGhostCollision(w, player, gh)
	if w.Score.Value != 100 {
		t.Fatalf("expected first chain bonus of 100, got %d", w.Score.Value)
	}
	if !w.Stage.IsGhostEatenPause() {
		t.Fatalf("expected stage to enter GhostEatenPause")
	}
	if !w.Hidden(gh) {
		t.Fatalf("expected the eaten ghost to be hidden")
	}

	s.eatenChain = 1
	gh2 := w.Spawn()
	w.SetGhostState(gh2, ghost.Frightened(100, 50))
	w.SetPosition(gh2, spatial.Stopped(w.Map.Start.Pacman))
	s.resolveGhostCollision(w, player, gh2)
	if w.Score.Value != 100+200 {
		t.Fatalf("expected second chain bonus of 200 stacked on the first, got %d", w.Score.Value)
	}
}

func TestResolveGhostCollisionNormalKillsPlayerStopsAudio(t *testing.T) {
	s, w, _ := newTestSchedulerWorld(t)
	player := w.Spawn()
	gh := w.Spawn()
	w.SetGhostState(gh, ghost.Normal())

	s.gateSink.Play(ports.AudioEvent{Name: "waka"})
	s.resolveGhostCollision(w, player, gh)

	if !w.Stage.IsPlayerDying() {
		t.Fatalf("expected stage to become PlayerDying")
	}
	if !w.Frozen(player) {
		t.Fatalf("expected player to freeze on death")
	}
	if len(s.audioQueue) != 0 {
		t.Fatalf("expected the audio queue to be cleared on death, got %+v", s.audioQueue)
	}
	s.gateSink.Play(ports.AudioEvent{Name: "should_not_queue"})
	if len(s.audioQueue) != 0 {
		t.Fatalf("expected all further audio this tick to be suppressed after death")
	}
}

func TestTimeToLivePopupExpiresWhilePaused(t *testing.T) {
	s, w, _ := newTestSchedulerWorld(t)
	w.Pause = pause.ActiveIndefinite()

	popup := w.Spawn()
	w.SetTimeToLive(popup, &animation.TimeToLive{RemainingTicks: 1})

	s.Tick(w, nil, dt())

	if w.Alive(popup) {
		t.Fatalf("expected a TimeToLive entity to expire even while paused")
	}
}

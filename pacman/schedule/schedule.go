// Package schedule implements the fixed, ordered per-frame system pipeline
// from spec.md §4.5: Input, then the gated Update/Respond/Animation system
// sets, then DirtyCheck (drawing and presenting are left to the host after
// Tick returns), with pause management sitting right
// after Update so a pause commanded this tick never skips this tick's
// render. Grounded on the teacher's Scheduler (server/world/redstone/scheduler.go):
// a single struct driving a fixed ordered pass over registered work once
// per tick, single-threaded, with a profiling wrapper around each step —
// generalized here from per-chunk workers to per-frame ECS systems.
package schedule

import (
	"log/slog"
	"time"

	"github.com/Xevion/Pac-Man-sub000/pacman/animation"
	"github.com/Xevion/Pac-Man-sub000/pacman/collision"
	"github.com/Xevion/Pac-Man-sub000/pacman/ecsworld"
	"github.com/Xevion/Pac-Man-sub000/pacman/entity"
	"github.com/Xevion/Pac-Man-sub000/pacman/ghost"
	"github.com/Xevion/Pac-Man-sub000/pacman/graph"
	"github.com/Xevion/Pac-Man-sub000/pacman/input"
	"github.com/Xevion/Pac-Man-sub000/pacman/pause"
	"github.com/Xevion/Pac-Man-sub000/pacman/ports"
	"github.com/Xevion/Pac-Man-sub000/pacman/score"
	"github.com/Xevion/Pac-Man-sub000/pacman/spatial"
	"github.com/Xevion/Pac-Man-sub000/pacman/stage"
	"github.com/Xevion/Pac-Man-sub000/pacman/timing"
	"github.com/Xevion/Pac-Man-sub000/pacman/worldmap"
)

// Config holds the constants spec.md leaves to "configured constants"
// rather than pinning exact values, plus the collaborators every system
// needs (RNG, audio, logging). Defaults are chosen to match the arcade
// original's pacing at 60 ticks/sec; nothing in spec.md pins these numbers,
// so they are deliberately tunable rather than baked into the systems.
type Config struct {
	Logger *slog.Logger
	RNG    ports.RNG
	Audio  ports.AudioSink

	PacmanBaseSpeed float32
	GhostBaseSpeed  float32

	// FrightenedTotalTicks and FrightenedFlashTicks are T and F from
	// spec.md §8 Scenario C: a power pellet sets every Normal ghost to
	// Frightened{remaining_ticks: T, remaining_flash_ticks: T - F}, so the
	// flash warning covers the final F ticks.
	FrightenedTotalTicks uint32
	FrightenedFlashTicks uint32

	// GhostEatenPauseTicks is how long the world freezes after Pac-Man
	// eats a frightened ghost, per spec.md §4.4/§8 Scenario D.
	GhostEatenPauseTicks uint32
	// ScorePopupTicks is the TimeToLive of the transient score-popup
	// entity spawned at Pac-Man's node in that same scenario.
	ScorePopupTicks uint32

	// DeathFrozenTicks is the PlayerDying(Frozen{…}) duration, pinned to
	// 60 by spec.md §8 Scenario E.
	DeathFrozenTicks uint32
	// DeathAnimationFrameCount and DeathAnimationFrameDuration are N and d
	// from Scenario E's Animating{N·d}.
	DeathAnimationFrameCount    uint32
	DeathAnimationFrameDuration uint32

	// FruitScore looks up the score awarded for a fruit kind. The kind
	// string matches the asset schema's fruit/{kind}.png name.
	FruitScore func(kind string) int

	// FruitSpawnThresholds are pellets-eaten counts at which a fruit spawns
	// at the ghost house, cycling through FruitKinds, matching the arcade
	// original's two-fruit-per-level schedule (the original's own fruit
	// reconstruction left this unimplemented; see edible.rs's "Fruits can
	// be added here if you have fruit positions").
	FruitSpawnThresholds []int
	// FruitKinds is the fixed fruit-kind vocabulary FruitSpawnThresholds
	// cycles through.
	FruitKinds []string
	// FruitColliderSize sizes a spawned fruit's circular collider.
	FruitColliderSize float32
	// FruitLifetimeTicks is how long a spawned fruit waits uneaten before
	// despawning.
	FruitLifetimeTicks uint32

	// ExpectedFrameBudget is the per-tick time budget SystemTimings
	// compares the measured total against, per spec.md §4.9.
	ExpectedFrameBudget time.Duration
	// SystemNames supplies display names for CheckSlowFrame's warning.
	SystemNames map[timing.SystemID]string
}

// systemNameList is every profiled system id, used to build DefaultConfig's
// SystemNames and to drive CheckSlowFrame's warning with readable names.
var systemNameList = []string{
	"total", "time_to_live", "cursor_touch", "player_movement", "player_tunnel_slowdown",
	"ghost_movement", "collision", "ghost_state", "manage_pause_state",
	"stage", "blinking", "directional_render", "linear_render", "dirty_check",
}

// DefaultConfig returns a Config with the arcade-paced defaults described
// on each field.
func DefaultConfig(rng ports.RNG, audio ports.AudioSink, logger *slog.Logger) Config {
	names := make(map[timing.SystemID]string, len(systemNameList))
	for _, n := range systemNameList {
		names[timing.NewSystemID(n)] = n
	}
	return Config{
		Logger:                      logger,
		RNG:                         rng,
		Audio:                       audio,
		PacmanBaseSpeed:             1.27,
		GhostBaseSpeed:              1.15,
		FrightenedTotalTicks:        360,
		FrightenedFlashTicks:        120,
		GhostEatenPauseTicks:        60,
		ScorePopupTicks:             30,
		DeathFrozenTicks:            60,
		DeathAnimationFrameCount:    11,
		DeathAnimationFrameDuration: 8,
		FruitScore:                  defaultFruitScore,
		FruitSpawnThresholds:        []int{70, 170},
		FruitKinds:                  defaultFruitKinds,
		FruitColliderSize:           10,
		FruitLifetimeTicks:          600,
		ExpectedFrameBudget:         time.Second / 60,
		SystemNames:                 names,
	}
}

// defaultFruitKinds is the fixed fruit vocabulary spec.md §6's asset schema
// names, in the arcade original's level-to-fruit order.
var defaultFruitKinds = []string{
	"cherry", "strawberry", "orange", "apple", "melon", "galaxian", "bell", "key",
}

func defaultFruitScore(kind string) int {
	switch kind {
	case "cherry":
		return 100
	case "strawberry":
		return 300
	case "orange":
		return 500
	case "apple":
		return 700
	case "melon":
		return 1000
	case "galaxian":
		return 2000
	case "bell":
		return 3000
	case "key":
		return 5000
	default:
		return 100
	}
}

// Scheduler drives the fixed per-frame pipeline over one World.
type Scheduler struct {
	cfg Config

	audioQueue   []ports.AudioEvent
	audioStopped bool
	gateSink     gatedAudioSink

	eatenChain   int
	fruitSpawned int
}

// New returns a Scheduler bound to cfg.
func New(cfg Config) *Scheduler {
	s := &Scheduler{cfg: cfg}
	s.gateSink = gatedAudioSink{s: s}
	return s
}

// ResetLevelState clears the scheduler's own per-level counters (the
// ghost-eaten score-popup chain and the fruit-spawn threshold cursor).
// The caller still owns rebuilding the World itself (spec.md's "resetting
// owns map/pellet/score state schedule does not"); without this, a
// ResetLevel command would leave fruitSpawned past the new level's
// thresholds and no fruit would ever spawn again.
func (s *Scheduler) ResetLevelState() {
	s.eatenChain = 0
	s.fruitSpawned = 0
}

// gatedAudioSink implements ports.AudioSink by queueing events instead of
// playing them immediately, so "Input → … → Present, then AudioEvents
// flushed" (spec.md §4.5) holds even for collaborators like package pause
// that call sink.Play synchronously.
type gatedAudioSink struct{ s *Scheduler }

func (g gatedAudioSink) Play(e ports.AudioEvent) {
	if g.s.audioStopped {
		return
	}
	g.s.audioQueue = append(g.s.audioQueue, e)
}

// Tick runs one frame: Input, TimeToLive, the gated Update set, pause
// management, the gated Respond and Animation sets, DirtyCheck, then the
// flushed audio queue; it runs no draw step itself. dt must already
// reflect this frame's elapsed time; ResetRequested reports whether a
// ResetLevel command was seen, for the caller (package game) to act on
// since resetting owns map/pellet/score state schedule does not.
func (s *Scheduler) Tick(w *ecsworld.World, commands []input.Command, dt timing.DeltaTime) (resetRequested, exitRequested bool) {
	w.DeltaTime = dt
	w.Timing.Advance()
	tick := w.Timing.CurrentTick()
	s.audioStopped = false

	var total time.Duration
	start := time.Now()
	func() {
		resetRequested, exitRequested = s.systemInput(w, commands)

		s.profileNamed(w, "time_to_live", func() { s.systemTimeToLive(w) })
		s.profileNamed(w, "cursor_touch", func() { s.systemCursorTouch(w) })

		if !w.Pause.Active() {
			s.profileNamed(w, "player_movement", func() { s.systemPlayerMovement(w) })
			s.profileNamed(w, "player_tunnel_slowdown", func() { s.systemPlayerTunnelSlowdown(w) })
			s.profileNamed(w, "ghost_movement", func() { s.systemGhostMovement(w) })
			s.profileNamed(w, "collision", func() { s.systemCollision(w) })
			s.profileNamed(w, "ghost_state", func() { s.systemGhostState(w) })
		} else {
			s.skipNamed(w, "player_movement", "player_tunnel_slowdown", "ghost_movement", "collision", "ghost_state")
		}

		s.profileNamed(w, "manage_pause_state", func() { pause.ManageState(&w.Pause, s.gateSink) })

		if !w.Pause.Active() {
			s.profileNamed(w, "stage", func() { s.systemStage(w) })
			s.profileNamed(w, "blinking", func() { s.systemBlinking(w) })
			s.profileNamed(w, "directional_render", func() { s.systemDirectionalAnimation(w) })
			s.profileNamed(w, "linear_render", func() { s.systemLinearAnimation(w) })
		} else {
			s.skipNamed(w, "stage", "blinking", "directional_render", "linear_render")
		}

		s.profileNamed(w, "dirty_check", func() { s.systemDirtyCheck(w) })
	}()
	total = time.Since(start)
	w.SystemTimings.Record(timing.TotalSystemID, total)

	w.SystemTimings.CheckSlowFrame(s.cfg.Logger, tick, total, s.cfg.ExpectedFrameBudget, s.cfg.SystemNames)
	s.flushAudio()
	return resetRequested, exitRequested
}

func (s *Scheduler) profileNamed(w *ecsworld.World, name string, fn func()) {
	w.SystemTimings.Profile(timing.NewSystemID(name), fn)
}

func (s *Scheduler) skipNamed(w *ecsworld.World, names ...string) {
	for _, n := range names {
		w.SystemTimings.RecordSkipped(timing.NewSystemID(n))
	}
}

func (s *Scheduler) flushAudio() {
	for _, e := range s.audioQueue {
		s.cfg.Audio.Play(e)
	}
	s.audioQueue = s.audioQueue[:0]
}

// systemInput runs first, always, regardless of pause: it resolves
// movement commands into the player's BufferedDirection and handles the
// non-gameplay commands (pause toggle, single tick, debug, mute, reset,
// exit) directly, per spec.md §4.3/§4.5.
func (s *Scheduler) systemInput(w *ecsworld.World, commands []input.Command) (resetRequested, exitRequested bool) {
	h, hasPlayer := w.PlayerEntity()
	for _, c := range commands {
		switch {
		case c.IsMovePlayer():
			if hasPlayer {
				w.SetBufferedDirection(h, spatial.Buffer(c.Direction()))
			}
		case c.IsTogglePause():
			pause.TogglePause(&w.Pause, s.gateSink)
		case c.IsSingleTick():
			pause.SingleTick(&w.Pause, s.gateSink)
		case c.IsToggleDebug():
			w.DebugEnabled = !w.DebugEnabled
		case c.IsMuteAudio():
			w.AudioMuted = !w.AudioMuted
		case c.IsResetLevel():
			resetRequested = true
		case c.IsExit():
			exitRequested = true
		case c.IsSetCursor():
			w.Cursor.Set(c.CursorPos())
		case c.IsTouchBegin():
			w.Touch.Begin(c.FingerID(), c.CursorPos())
		case c.IsTouchMove():
			w.Touch.Move(c.FingerID(), c.CursorPos())
		case c.IsTouchEnd():
			w.Touch.End(c.FingerID())
		}
	}
	if hasPlayer {
		if b, ok := w.BufferedDirection(h); ok {
			b.Tick(w.DeltaTime.Seconds)
			w.SetBufferedDirection(h, b)
		}
	}
	return resetRequested, exitRequested
}

// systemTimeToLive runs unconditionally (it is not part of the gated
// Update set): transient entities like score popups keep counting down and
// are despawned even while paused, so this sits before the pause gate per
// spec.md §4.5's ordering, matching the literal pipeline
// text ("Input → TimeToLive → (gated Update set) → …").
func (s *Scheduler) systemTimeToLive(w *ecsworld.World) {
	var expired []entity.Handle
	w.ForEachTimeToLive(func(h entity.Handle, t *animation.TimeToLive) {
		if t.Tick(w.DeltaTime.Ticks) {
			expired = append(expired, h)
		}
	})
	for _, h := range expired {
		w.Despawn(h)
	}
}

// systemCursorTouch runs unconditionally, alongside systemTimeToLive: the
// pointer cursor's fade timer and an active touch drag's easing both keep
// advancing even while paused, per spec.md §5. A touch drag that clears its
// direction threshold this frame buffers a move the same way a key press
// would, so releasing Pac-Man's direction to a finger drag needs no
// separate movement path.
func (s *Scheduler) systemCursorTouch(w *ecsworld.World) {
	w.Cursor.Tick(w.DeltaTime.Seconds)
	if dir, ok := w.Touch.Ease(w.DeltaTime.Seconds); ok {
		if h, hasPlayer := w.PlayerEntity(); hasPlayer {
			w.SetBufferedDirection(h, spatial.Buffer(dir))
		}
	}
}

// systemPlayerMovement applies the buffered direction at a Stopped node
// (restricted to Pacman-traversable edges) and advances Position by this
// frame's travel budget, per spec.md §4.2/§4.3.
func (s *Scheduler) systemPlayerMovement(w *ecsworld.World) {
	h, ok := w.PlayerEntity()
	if !ok || w.Frozen(h) {
		return
	}
	pos, ok := w.Position(h)
	if !ok {
		return
	}
	vel, _ := w.Velocity(h)
	buffered, _ := w.BufferedDirection(h)

	if pos.IsStopped() && buffered.IsSet() {
		if edge, ok := w.Map.Graph.Edge(pos.Node(), buffered.Direction()); ok && edge.Flags.Contains(graph.Pacman) {
			vel.Direction = buffered.Direction()
			pos = spatial.Moving(pos.Node(), edge.Target, edge.Distance)
			w.SetBufferedDirection(h, spatial.None())
		}
	}

	mods := w.Modifiers(h)
	multiplier := mods.SpeedMultiplier
	if mods.TunnelSlowdown > 0 {
		multiplier *= mods.TunnelSlowdown
	}
	distance := vel.Distance(w.DeltaTime.Seconds) * multiplier

	for distance > 0 {
		if pos.IsStopped() {
			edge, ok := w.Map.Graph.Edge(pos.Node(), vel.Direction)
			if !ok || !edge.Flags.Contains(graph.Pacman) {
				break
			}
			pos = spatial.Moving(pos.Node(), edge.Target, edge.Distance)
			continue
		}
		overflow, moved := pos.Tick(distance)
		if !moved {
			break
		}
		distance = overflow
	}

	w.SetPosition(h, pos)
	w.SetVelocity(h, vel)
}

// systemPlayerTunnelSlowdown sets MovementModifiers.TunnelSlowdown to a
// reduced factor while Pac-Man occupies a tunnel tile, and back to the
// unslowed factor otherwise, per spec.md §4.2 step 2. It always writes one
// of the two values so the modifier never goes stale from a prior tick.
const tunnelSlowdownFactor = 0.5

func (s *Scheduler) systemPlayerTunnelSlowdown(w *ecsworld.World) {
	h, ok := w.PlayerEntity()
	if !ok {
		return
	}
	pos, ok := w.Position(h)
	if !ok {
		return
	}
	inTunnel := false
	if pos.IsStopped() {
		inTunnel = w.Map.NodeTile(pos.Node()) == worldmap.TileTunnel
	} else {
		from, to := pos.Edge()
		inTunnel = w.Map.NodeTile(from) == worldmap.TileTunnel || w.Map.NodeTile(to) == worldmap.TileTunnel
	}

	mods := w.Modifiers(h)
	if inTunnel {
		mods.TunnelSlowdown = tunnelSlowdownFactor
	} else {
		mods.TunnelSlowdown = 1
	}
	w.SetModifiers(h, mods)
}

// systemGhostMovement advances every ghost's Position/Velocity/GhostState
// by one frame, per spec.md §4.2. The eaten-ghost override (doubled speed,
// greedy approach to the house center, reverting Eyes to Normal on
// arrival) happens inside ghost.Update itself; there is no separate
// "EatenGhost" system function, since spec.md's own description folds that
// behavior into the movement update rather than a distinct pass.
func (s *Scheduler) systemGhostMovement(w *ecsworld.World) {
	w.ForEachGhost(func(h entity.Handle, _ ecsworld.GhostTag) {
		if w.Frozen(h) {
			return
		}
		pos, ok := w.Position(h)
		if !ok {
			return
		}
		vel, _ := w.Velocity(h)
		state, _ := w.GhostState(h)
		mods := w.Modifiers(h)

		distance := vel.Distance(w.DeltaTime.Seconds) * mods.SpeedMultiplier
		ghost.Update(&pos, &vel, &state, w.Map.Graph, distance, w.Map.Start.Clyde, s.cfg.RNG)

		w.SetPosition(h, pos)
		w.SetVelocity(h, vel)
		w.SetGhostState(h, state)
	})
}

// systemCollision scans Pac-Man against every collidable entity and
// dispatches item/ghost observers, per spec.md §4.6.
func (s *Scheduler) systemCollision(w *ecsworld.World) {
	h, ok := w.PlayerEntity()
	if !ok {
		return
	}
	pacmanPos, ok := w.Pixel(h)
	if !ok {
		return
	}
	pacmanCollider, ok := w.Collider(h)
	if !ok {
		return
	}

	var candidates []collision.Candidate
	w.ForEachCollider(func(other entity.Handle, c ecsworld.Collider) {
		if other == h {
			return
		}
		pos, ok := w.Pixel(other)
		if !ok {
			return
		}
		candidates = append(candidates, collision.Candidate{
			Entity:   other,
			Position: pos,
			Size:     c.Size,
			Tag:      collision.Tag(c.Tag),
		})
	})

	for _, col := range collision.Scan(pacmanPos, pacmanCollider.Size, candidates) {
		switch col.Tag {
		case collision.TagItem:
			s.resolveItemCollision(w, col.Other)
		case collision.TagGhost:
			s.resolveGhostCollision(w, h, col.Other)
		}
	}
}

func (s *Scheduler) resolveItemCollision(w *ecsworld.World, item entity.Handle) {
	et, ok := w.EntityType(item)
	if !ok {
		return
	}
	var kind collision.ItemKind
	fruitScore := 0
	fruitKind := ""
	switch et {
	case ecsworld.EntityPellet:
		kind = collision.ItemPellet
	case ecsworld.EntityPowerPellet:
		kind = collision.ItemPowerPellet
	case ecsworld.EntityFruit:
		kind = collision.ItemFruit
		if tag, ok := w.FruitTag(item); ok {
			fruitKind = tag.Kind
		}
		fruitScore = s.cfg.FruitScore(fruitKind)
	default:
		return
	}

	outcome := collision.ResolveItem(kind, fruitScore)
	w.Score.Add(outcome.ScoreDelta)
	s.gateSink.Play(outcome.AudioEvent)
	w.RenderDirty.Mark()

	if outcome.Despawn {
		w.Despawn(item)
	}
	if kind == collision.ItemPellet || kind == collision.ItemPowerPellet {
		// Level-advance on a cleared board is out of scope (spec.md §1
		// Non-goals exclude level progression); PelletCount is still
		// bookkept so a future caller can act on it.
		w.Pellets.Eat()
		s.maybeSpawnFruit(w)
	}
	if outcome.FrightenAll {
		s.eatenChain = 0
		w.ForEachGhost(func(h entity.Handle, _ ecsworld.GhostTag) {
			if state, ok := w.GhostState(h); ok && state.IsNormal() {
				w.SetGhostState(h, ghost.Frightened(s.cfg.FrightenedTotalTicks, s.cfg.FrightenedTotalTicks-s.cfg.FrightenedFlashTicks))
			}
		})
	}
	if outcome.RecordFruit {
		w.FruitHistory = append(w.FruitHistory, fruitKind)
	}
}

// maybeSpawnFruit spawns one fruit entity at the ghost house once the
// pellets-eaten count crosses the next configured threshold, cycling
// through FruitKinds, per spec.md §4.6's Fruit(kind) vocabulary and the
// arcade original's two-fruit-per-level schedule.
func (s *Scheduler) maybeSpawnFruit(w *ecsworld.World) {
	if s.fruitSpawned >= len(s.cfg.FruitSpawnThresholds) || len(s.cfg.FruitKinds) == 0 {
		return
	}
	if w.Pellets.Eaten() < s.cfg.FruitSpawnThresholds[s.fruitSpawned] {
		return
	}
	kind := s.cfg.FruitKinds[s.fruitSpawned%len(s.cfg.FruitKinds)]
	s.fruitSpawned++

	h := w.Spawn()
	w.SetEntityType(h, ecsworld.EntityFruit)
	w.SetFruitTag(h, ecsworld.FruitTag{Kind: kind})
	w.SetPosition(h, spatial.Stopped(w.Map.Start.Clyde))
	w.SetCollider(h, ecsworld.Collider{Size: s.cfg.FruitColliderSize, Tag: ecsworld.ColliderItem})
	w.SetTimeToLive(h, &animation.TimeToLive{RemainingTicks: s.cfg.FruitLifetimeTicks})
	w.RenderDirty.Mark()
}

func (s *Scheduler) resolveGhostCollision(w *ecsworld.World, player, other entity.Handle) {
	state, ok := w.GhostState(other)
	if !ok {
		return
	}
	switch collision.ResolveGhost(state) {
	case collision.GhostActionEaten:
		bonus := score.PopupValue(s.eatenChain)
		s.eatenChain++
		w.Score.Add(bonus)

		tag, _ := w.GhostTag(other)
		node, ok := w.Position(other)
		var at graph.NodeId
		if ok {
			at = node.Node()
		}

		w.SetFrozen(player, true)
		w.SetHidden(other, true)
		w.ForEachGhost(func(gh entity.Handle, _ ecsworld.GhostTag) {
			w.SetFrozen(gh, true)
		})

		w.Stage = stage.GhostEatenPause(s.cfg.GhostEatenPauseTicks, other, tag.Type, at)
		w.RenderDirty.Mark()

		popup := w.Spawn()
		w.SetTimeToLive(popup, &animation.TimeToLive{RemainingTicks: s.cfg.ScorePopupTicks})
		if pp, ok := w.Position(player); ok {
			w.SetPosition(popup, pp)
		}
	case collision.GhostActionKillsPlayer:
		w.Stage = stage.PlayerDying(stage.DyingFrozen(s.cfg.DeathFrozenTicks))
		w.SetFrozen(player, true)
		w.SetFrozen(other, true)
		s.audioQueue = s.audioQueue[:0]
		s.audioStopped = true
		w.RenderDirty.Mark()
	}
}

// systemGhostState advances each non-frozen ghost's Frightened countdown,
// per spec.md §4.4. It does not touch animation banks; see
// systemDirectionalAnimation.
func (s *Scheduler) systemGhostState(w *ecsworld.World) {
	w.ForEachGhost(func(h entity.Handle, _ ecsworld.GhostTag) {
		if w.Frozen(h) {
			return
		}
		state, ok := w.GhostState(h)
		if !ok {
			return
		}
		state.Tick()
		w.SetGhostState(h, state)
	})
}

// systemStage runs the stage machine and performs the handful of side
// effects its Transition reports, per spec.md's "event-observed
// transitions" design note and stage.AdvanceTick's doc comment.
func (s *Scheduler) systemStage(w *ecsworld.World) {
	t := stage.AdvanceTick(&w.Stage, &w.IntroPlayed)
	w.RenderDirty.Mark()

	if t.PlayIntro {
		s.gateSink.Play(ports.AudioEvent{Name: "intro"})
	}
	if t.EnteredPlaying {
		w.ForEachGhost(func(h entity.Handle, _ ecsworld.GhostTag) { w.SetFrozen(h, false) })
		if player, ok := w.PlayerEntity(); ok {
			w.SetFrozen(player, false)
		}
	}
	if t.GhostEatenExit {
		w.SetGhostState(t.GhostEatenExitHandle, ghost.Eyes())
		w.SetHidden(t.GhostEatenExitHandle, false)
		w.ForEachGhost(func(h entity.Handle, _ ecsworld.GhostTag) { w.SetFrozen(h, false) })
		if player, ok := w.PlayerEntity(); ok {
			w.SetFrozen(player, false)
		}
	}
	if t.DyingFrozenExit {
		w.ForEachGhost(func(h entity.Handle, _ ecsworld.GhostTag) { w.SetHidden(h, true) })
		s.gateSink.Play(ports.AudioEvent{Name: "death"})
		stage.EnterDeathAnimating(&w.Stage, s.cfg.DeathAnimationFrameCount*s.cfg.DeathAnimationFrameDuration)
	}
	if t.DyingAnimatingExit {
		stage.EnterDeathHidden(&w.Stage)
	}
	if t.DyingHiddenExit {
		w.PlayerLives--
		resetBoard := stage.ResolveDeath(&w.Stage, w.PlayerLives)
		if resetBoard {
			s.respawnPlayer(w)
		}
	}
}

// respawnPlayer puts Pac-Man back at the map's spawn node moving Left at
// base speed, per spec.md §8 Scenario E, and lifts every ghost's hidden
// flag so the next Starting(CharactersVisible) phase can show them frozen.
// It also despawns any outstanding fruit entity, per spec.md §4.4's
// reset-the-board step.
func (s *Scheduler) respawnPlayer(w *ecsworld.World) {
	var fruit []entity.Handle
	w.ForEachFruit(func(h entity.Handle, _ ecsworld.FruitTag) { fruit = append(fruit, h) })
	for _, h := range fruit {
		w.Despawn(h)
	}

	h, ok := w.PlayerEntity()
	if !ok {
		return
	}
	w.SetPosition(h, spatial.Stopped(w.Map.Start.Pacman))
	w.SetVelocity(h, spatial.Velocity{Speed: s.cfg.PacmanBaseSpeed, Direction: graph.Left})
	w.SetFrozen(h, true)
	w.ForEachGhost(func(gh entity.Handle, _ ecsworld.GhostTag) {
		w.SetHidden(gh, false)
		w.SetFrozen(gh, true)
		w.SetGhostState(gh, ghost.Normal())
	})
}

// systemBlinking ticks every Blinking toggle, forcing visible while frozen,
// per spec.md §4.7.
func (s *Scheduler) systemBlinking(w *ecsworld.World) {
	w.ForEachBlinking(func(h entity.Handle, b *animation.Blinking) {
		b.Tick(w.DeltaTime.Ticks, w.Frozen(h))
	})
}

// systemDirectionalAnimation advances DirectionalAnimation banks, syncing
// their facing/stopped flags from the entity's current Velocity/Position.
// When a ghost's state→animation kind changes (tracked by
// LastAnimationState), it removes the bank that no longer applies: the
// linear bank for the directional kinds, the directional bank otherwise.
// It does not attach a bank for the new kind.
func (s *Scheduler) systemDirectionalAnimation(w *ecsworld.World) {
	w.ForEachDirectional(func(h entity.Handle, a *animation.DirectionalAnimation) {
		if vel, ok := w.Velocity(h); ok {
			a.SetDirection(vel.Direction)
		}
		if pos, ok := w.Position(h); ok {
			a.SetStopped(pos.IsStopped())
		}
		a.Tick(w.DeltaTime.Ticks)
	})

	w.ForEachGhost(func(h entity.Handle, _ ecsworld.GhostTag) {
		state, ok := w.GhostState(h)
		if !ok {
			return
		}
		last := w.LastAnimationState(h)
		if kind := animation.GhostAnimationFor(state); last.Changed(kind) {
			switch kind {
			case animation.KindDirectional, animation.KindEyesDirectional:
				w.SetLinear(h, nil)
			default:
				w.SetDirectional(h, nil)
			}
		}
	})
}

// systemLinearAnimation advances every LinearAnimation attached to an
// entity.
func (s *Scheduler) systemLinearAnimation(w *ecsworld.World) {
	w.ForEachLinear(func(h entity.Handle, a *animation.LinearAnimation) {
		a.Tick(w.DeltaTime.Ticks)
	})
}

// systemDirtyCheck is a no-op that holds DirtyCheck's place in the
// pipeline's documented order (spec.md §4.8). w.RenderDirty is marked where
// changes happen: item and ghost collisions, fruit spawning, and
// systemStage, which marks it on every tick it runs, so every unpaused tick
// is dirty. Cursor and touch updates and TimeToLive despawns do not mark
// it, so a paused tick that changes only those leaves the flag clear. A
// caller's render hook clears the flag once it has drawn a dirty frame.
func (s *Scheduler) systemDirtyCheck(w *ecsworld.World) {}

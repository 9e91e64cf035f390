// Package game wires the core packages into one runnable instance: a
// Config of collaborators and tunables builds a Game, whose Tick method
// drives one frame. Grounded on the teacher's Config/New shape
// (server/conf.go's Config.New), generalized from "build a Minecraft
// server" to "build one Pac-Man simulation instance".
package game

import (
	"fmt"
	"log/slog"

	"github.com/Xevion/Pac-Man-sub000/pacman/ecsworld"
	"github.com/Xevion/Pac-Man-sub000/pacman/gameerr"
	"github.com/Xevion/Pac-Man-sub000/pacman/ghost"
	"github.com/Xevion/Pac-Man-sub000/pacman/graph"
	"github.com/Xevion/Pac-Man-sub000/pacman/input"
	"github.com/Xevion/Pac-Man-sub000/pacman/ports"
	"github.com/Xevion/Pac-Man-sub000/pacman/replay"
	"github.com/Xevion/Pac-Man-sub000/pacman/rng"
	"github.com/Xevion/Pac-Man-sub000/pacman/schedule"
	"github.com/Xevion/Pac-Man-sub000/pacman/score"
	"github.com/Xevion/Pac-Man-sub000/pacman/spatial"
	"github.com/Xevion/Pac-Man-sub000/pacman/stage"
	"github.com/Xevion/Pac-Man-sub000/pacman/timing"
	"github.com/Xevion/Pac-Man-sub000/pacman/worldmap"
)

// Config contains options for building a Game.
type Config struct {
	// Log is the Logger used for the slow-frame warning and per-frame
	// collaborator-glitch reports. If nil, Log is set to slog.Default().
	Log *slog.Logger
	// RNG is the PRNG ghost movement draws through. If nil, a
	// deterministically-seeded rng.Source is used.
	RNG ports.RNG
	// Audio receives queued AudioEvents at the end of every tick. If nil,
	// audio events are silently dropped.
	Audio ports.AudioSink
	// Assets resolves sprite names for the asset-presence check performed
	// once at startup (spec.md §7: asset loading errors are fatal). If
	// nil, the check is skipped entirely — useful for headless tests that
	// never touch rendering.
	Assets ports.AssetLookup
	// Input supplies this tick's already-resolved input commands. If nil,
	// Tick only ever sees the commands passed to it directly.
	Input ports.InputSource
	// KeyEvents supplies this tick's raw key events, batched through
	// World.Batcher against conf.Bindings for the held-key re-emission
	// policy. If nil, Batcher.Process is never invoked.
	KeyEvents ports.KeyEventSource
	// Clock reports the wall-clock delta since the previous tick. If nil,
	// a fixed 1/60 second step is used, matching spec.md's "dt_ticks is 1
	// per frame in steady state".
	Clock ports.Clock
	// Bindings is the key→Command map KeyEvents' raw events are resolved
	// against. If nil, input.DefaultBindings() is used.
	Bindings *input.Bindings
	// Board is the ASCII layout to build the map from. If nil,
	// worldmap.DefaultBoard is used.
	Board []string
	// Recorder, if set, appends every tick's input batch and delta to a
	// replay log.
	Recorder *replay.Recorder
	// Schedule carries the scheduler's tunables (speeds, frightened/death
	// durations, frame budget). Zero value is replaced field-by-field with
	// schedule.DefaultConfig's values by New.
	Schedule schedule.Config
	// StartingLives is how many lives Pac-Man begins with. If zero, 3 is
	// used, matching the arcade original.
	StartingLives int

	// PacmanColliderSize, GhostColliderSize, PelletColliderSize,
	// PowerPelletColliderSize, and FruitColliderSize size the circular
	// colliders spawned entities receive. spec.md does not pin exact pixel
	// sizes, so these are configured constants; zero values fall back to
	// the defaults below.
	PacmanColliderSize      float32
	GhostColliderSize       float32
	PelletColliderSize      float32
	PowerPelletColliderSize float32
	FruitColliderSize       float32
}

const (
	defaultPacmanColliderSize      = 12
	defaultGhostColliderSize       = 14
	defaultPelletColliderSize      = 4
	defaultPowerPelletColliderSize = 8
	defaultFruitColliderSize       = 10
	defaultStartingLives           = 3
	defaultRNGSeed                 = 1
)

// Game is one runnable Pac-Man simulation instance.
type Game struct {
	conf        Config
	world       *ecsworld.World
	scheduler   *schedule.Scheduler
	schedConfig schedule.Config
	errors      []gameerr.GameError
}

// requiredAssetNames enumerates every sprite name the fixed asset schema
// from spec.md §6 names, so New can fail fast at startup rather than
// discover a missing sprite mid-game (spec.md §7: asset errors are fatal
// during initialization).
func requiredAssetNames() []string {
	var names []string
	for _, dir := range []string{"up", "down", "left", "right"} {
		names = append(names, fmt.Sprintf("pacman/%s_a.png", dir), fmt.Sprintf("pacman/%s_b.png", dir))
	}
	names = append(names, "pacman/full.png")
	for i := 0; i <= 10; i++ {
		names = append(names, fmt.Sprintf("pacman/die_%d.png", i))
	}
	for _, gh := range []string{"blinky", "pinky", "inky", "clyde"} {
		for _, dir := range []string{"up", "down", "left", "right"} {
			names = append(names, fmt.Sprintf("ghost/%s/%s_a.png", gh, dir), fmt.Sprintf("ghost/%s/%s_b.png", gh, dir))
		}
	}
	for _, dir := range []string{"up", "down", "left", "right"} {
		names = append(names, fmt.Sprintf("ghost/eyes/%s.png", dir))
	}
	for _, shade := range []string{"blue", "white"} {
		names = append(names, fmt.Sprintf("ghost/frightened/%s_a.png", shade), fmt.Sprintf("ghost/frightened/%s_b.png", shade))
	}
	for i := 0; i <= 34; i++ {
		names = append(names, fmt.Sprintf("maze/tiles/%d.png", i))
	}
	names = append(names, "maze/pellet.png", "maze/energizer.png")
	for _, v := range []int{100, 200, 300, 400, 700, 800, 1000, 1600, 2000, 3000, 5000} {
		names = append(names, fmt.Sprintf("effects/%d.png", v))
	}
	for _, kind := range []string{"cherry", "strawberry", "orange", "apple", "melon", "galaxian", "bell", "key"} {
		names = append(names, fmt.Sprintf("fruit/%s.png", kind))
	}
	return names
}

// New builds a Game from conf: it constructs the navigation graph and tile
// map, validates every required sprite name against conf.Assets (fatal if
// any is missing), then spawns Pac-Man, the four ghosts, and every pellet
// named by the tile layout.
func (conf Config) New() (*Game, error) {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.Bindings == nil {
		conf.Bindings = input.DefaultBindings()
	}
	if conf.RNG == nil {
		conf.RNG = rng.New(defaultRNGSeed)
	}
	board := conf.Board
	if board == nil {
		board = worldmap.DefaultBoard
	}
	if conf.StartingLives == 0 {
		conf.StartingLives = defaultStartingLives
	}
	if conf.PacmanColliderSize == 0 {
		conf.PacmanColliderSize = defaultPacmanColliderSize
	}
	if conf.GhostColliderSize == 0 {
		conf.GhostColliderSize = defaultGhostColliderSize
	}
	if conf.PelletColliderSize == 0 {
		conf.PelletColliderSize = defaultPelletColliderSize
	}
	if conf.PowerPelletColliderSize == 0 {
		conf.PowerPelletColliderSize = defaultPowerPelletColliderSize
	}
	if conf.FruitColliderSize == 0 {
		conf.FruitColliderSize = defaultFruitColliderSize
	}

	m, err := worldmap.Build(board)
	if err != nil {
		return nil, fmt.Errorf("game: building map: %w", err)
	}

	if conf.Assets != nil {
		for _, name := range requiredAssetNames() {
			if ok := conf.Assets.Sprite(name); !ok {
				return nil, fmt.Errorf("%w: missing required sprite %q", gameerr.ErrAsset, name)
			}
		}
	}

	// Every zero-valued field of conf.Schedule is filled from
	// schedule.DefaultConfig field-by-field, so a caller can override just
	// the one tunable it cares about (say, PacmanBaseSpeed) and inherit
	// sensible arcade-paced defaults for everything else.
	sched := conf.Schedule
	def := schedule.DefaultConfig(conf.RNG, conf.Audio, conf.Log)
	if sched.Logger == nil {
		sched.Logger = def.Logger
	}
	if sched.RNG == nil {
		sched.RNG = def.RNG
	}
	if sched.Audio == nil {
		sched.Audio = def.Audio
	}
	if sched.FruitScore == nil {
		sched.FruitScore = def.FruitScore
	}
	if sched.ExpectedFrameBudget == 0 {
		sched.ExpectedFrameBudget = def.ExpectedFrameBudget
	}
	if sched.SystemNames == nil {
		sched.SystemNames = def.SystemNames
	}
	if sched.PacmanBaseSpeed == 0 {
		sched.PacmanBaseSpeed = def.PacmanBaseSpeed
	}
	if sched.GhostBaseSpeed == 0 {
		sched.GhostBaseSpeed = def.GhostBaseSpeed
	}
	if sched.FrightenedTotalTicks == 0 {
		sched.FrightenedTotalTicks = def.FrightenedTotalTicks
	}
	if sched.FrightenedFlashTicks == 0 {
		sched.FrightenedFlashTicks = def.FrightenedFlashTicks
	}
	if sched.GhostEatenPauseTicks == 0 {
		sched.GhostEatenPauseTicks = def.GhostEatenPauseTicks
	}
	if sched.ScorePopupTicks == 0 {
		sched.ScorePopupTicks = def.ScorePopupTicks
	}
	if sched.DeathFrozenTicks == 0 {
		sched.DeathFrozenTicks = def.DeathFrozenTicks
	}
	if sched.DeathAnimationFrameCount == 0 {
		sched.DeathAnimationFrameCount = def.DeathAnimationFrameCount
	}
	if sched.DeathAnimationFrameDuration == 0 {
		sched.DeathAnimationFrameDuration = def.DeathAnimationFrameDuration
	}
	if sched.FruitSpawnThresholds == nil {
		sched.FruitSpawnThresholds = def.FruitSpawnThresholds
	}
	if sched.FruitKinds == nil {
		sched.FruitKinds = def.FruitKinds
	}
	if sched.FruitColliderSize == 0 {
		sched.FruitColliderSize = conf.FruitColliderSize
	}
	if sched.FruitLifetimeTicks == 0 {
		sched.FruitLifetimeTicks = def.FruitLifetimeTicks
	}

	g := &Game{conf: conf, scheduler: schedule.New(sched), schedConfig: sched}
	g.world = ecsworld.New(m, conf.Bindings)
	g.world.PlayerLives = conf.StartingLives
	g.spawnLevel(sched)
	return g, nil
}

// spawnLevel populates a freshly built World with Pac-Man, the four
// ghosts, and one entity per pellet/power-pellet tile in the layout.
func (g *Game) spawnLevel(sched schedule.Config) {
	m := g.world.Map

	player := g.world.Spawn()
	g.world.SetPlayerControlled(player, true)
	g.world.SetEntityType(player, ecsworld.EntityPlayer)
	g.world.SetPosition(player, spatial.Stopped(m.Start.Pacman))
	g.world.SetVelocity(player, spatial.Velocity{Speed: sched.PacmanBaseSpeed, Direction: graph.Left})
	g.world.SetModifiers(player, spatial.DefaultMovementModifiers())
	g.world.SetCollider(player, ecsworld.Collider{Size: g.conf.PacmanColliderSize, Tag: ecsworld.ColliderPacman})
	g.world.SetFrozen(player, true)

	ghostStarts := []struct {
		typ   ghost.Type
		start graph.NodeId
	}{
		{ghost.Blinky, m.Start.Blinky},
		{ghost.Pinky, m.Start.Pinky},
		{ghost.Inky, m.Start.Inky},
		{ghost.Clyde, m.Start.Clyde},
	}
	for _, gs := range ghostStarts {
		h := g.world.Spawn()
		g.world.SetEntityType(h, ecsworld.EntityGhost)
		g.world.SetGhostTag(h, ecsworld.GhostTag{Type: gs.typ})
		g.world.SetGhostState(h, ghost.Normal())
		g.world.SetPosition(h, spatial.Stopped(gs.start))
		g.world.SetVelocity(h, spatial.Velocity{Speed: sched.GhostBaseSpeed, Direction: graph.Left})
		g.world.SetModifiers(h, spatial.DefaultMovementModifiers())
		g.world.SetCollider(h, ecsworld.Collider{Size: g.conf.GhostColliderSize, Tag: ecsworld.ColliderGhost})
		g.world.SetFrozen(h, true)
	}

	pellets := 0
	for coord, node := range m.GridToNode {
		tile := m.TileAt(coord[0], coord[1])
		switch tile {
		case worldmap.TilePellet, worldmap.TilePowerPellet:
			h := g.world.Spawn()
			g.world.SetPosition(h, spatial.Stopped(node))
			size := g.conf.PelletColliderSize
			entityType := ecsworld.EntityPellet
			if tile == worldmap.TilePowerPellet {
				size = g.conf.PowerPelletColliderSize
				entityType = ecsworld.EntityPowerPellet
			}
			g.world.SetEntityType(h, entityType)
			g.world.SetCollider(h, ecsworld.Collider{Size: size, Tag: ecsworld.ColliderItem})
			pellets++
		}
	}
	g.world.Pellets = score.PelletCount{Remaining: pellets, Total: pellets}
	g.world.Stage = stage.WaitingForInteraction()
}

// World exposes the underlying ecsworld.World for callers that need direct
// read access (a renderer, a debug console, a test assertion).
func (g *Game) World() *ecsworld.World { return g.world }

// Errors drains and returns every GameError queued since the last call,
// per spec.md §7's non-fatal per-frame error bus.
func (g *Game) Errors() []gameerr.GameError {
	errs := g.errors
	g.errors = nil
	return errs
}

// translateInputCommands converts the flat ports.InputCommand shape
// InputSource produces into the richer input.Command tagged sum
// systemInput consumes. ports.InputCommand intentionally has no Exit or
// ToggleFullscreen field: those are host window-manager concerns supplied
// directly as input.Command values (e.g. from a debug console), never
// through the polled InputSource boundary.
func translateInputCommands(cmds []ports.InputCommand) []input.Command {
	if len(cmds) == 0 {
		return nil
	}
	out := make([]input.Command, 0, len(cmds))
	for _, c := range cmds {
		switch {
		case c.HasDir:
			out = append(out, input.MovePlayer(c.Direction))
		case c.Pause:
			out = append(out, input.TogglePause())
		case c.SingleTick:
			out = append(out, input.SingleTick())
		case c.ToggleDebug:
			out = append(out, input.ToggleDebug())
		case c.MuteAudio:
			out = append(out, input.MuteAudio())
		case c.ResetLevel:
			out = append(out, input.ResetLevel())
		}
	}
	return out
}

// Tick drives one frame. extra carries commands not sourced from
// conf.Input — a debug console's TogglePause/SingleTick/ResetLevel/
// ToggleDebug/MuteAudio (SPEC_FULL §10), or a host window manager's
// Exit/ToggleFullscreen. It reports whether an Exit command was seen this
// tick; the caller decides what to do with that (stop its run loop).
func (g *Game) Tick(extra []input.Command) (exitRequested bool, err error) {
	var commands []input.Command
	if g.conf.Input != nil {
		commands = translateInputCommands(g.conf.Input.Poll())
	}
	if g.conf.KeyEvents != nil {
		commands = append(commands, g.world.Batcher.Process(g.conf.KeyEvents.PollKeys(), g.world.Bindings)...)
	}
	commands = append(commands, extra...)

	if g.world.Stage.IsWaitingForInteraction() && len(commands) > 0 {
		g.world.Stage = stage.Starting(stage.TextOnly(120))
	}

	dtSeconds := 1.0 / 60
	if g.conf.Clock != nil {
		dtSeconds = g.conf.Clock.DeltaSeconds()
	}
	dt := timing.DeltaTime{Seconds: dtSeconds, Ticks: 1}

	resetRequested, exitRequested := g.scheduler.Tick(g.world, commands, dt)

	if g.conf.Recorder != nil {
		if recErr := g.conf.Recorder.Record(replay.Frame{
			Tick:      g.world.Timing.CurrentTick(),
			Commands:  commands,
			DeltaTime: dt,
		}); recErr != nil {
			g.errors = append(g.errors, gameerr.GameError{
				Tick: g.world.Timing.CurrentTick(),
				Err:  fmt.Errorf("%w: %v", gameerr.ErrPlatform, recErr),
			})
		}
	}

	if resetRequested {
		g.reset()
	}
	return exitRequested, nil
}

// reset rebuilds the level from scratch: a fresh World over the same Map,
// every pellet restored, lives and score reset. ResetLevel is a debug/test
// convenience (spec.md's Non-goals exclude level progression, but the
// command itself is part of the GameCommand vocabulary), not a "next
// level" operation.
func (g *Game) reset() {
	m := g.world.Map
	bindings := g.world.Bindings
	g.world = ecsworld.New(m, bindings)
	g.world.PlayerLives = g.conf.StartingLives
	g.scheduler.ResetLevelState()
	g.spawnLevel(g.schedConfig)
}

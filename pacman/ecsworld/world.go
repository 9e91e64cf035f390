// Package ecsworld implements the ECS kernel: entities addressed by stable
// generation-checked handles, components stored in per-type maps owned by
// World, and resources held as plain fields, per SPEC_FULL §8. Grounded on
// the teacher's World/Tx split (server/world/world.go, server/world/tick.go):
// entities are handles, never pointers or interfaces, and component access
// is always a typed method, never a reflection-based query engine.
package ecsworld

import (
	"github.com/Xevion/Pac-Man-sub000/pacman/animation"
	"github.com/Xevion/Pac-Man-sub000/pacman/entity"
	"github.com/Xevion/Pac-Man-sub000/pacman/ghost"
	"github.com/Xevion/Pac-Man-sub000/pacman/input"
	"github.com/Xevion/Pac-Man-sub000/pacman/pause"
	"github.com/Xevion/Pac-Man-sub000/pacman/renderdirty"
	"github.com/Xevion/Pac-Man-sub000/pacman/score"
	"github.com/Xevion/Pac-Man-sub000/pacman/spatial"
	"github.com/Xevion/Pac-Man-sub000/pacman/stage"
	"github.com/Xevion/Pac-Man-sub000/pacman/timing"
	"github.com/Xevion/Pac-Man-sub000/pacman/worldmap"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// World owns every entity and resource for one game instance.
type World struct {
	nextIndex   uint32
	generations map[uint32]uint32
	alive       map[uint32]bool

	positions    map[entity.Handle]spatial.Position
	velocities   map[entity.Handle]spatial.Velocity
	buffered     map[entity.Handle]spatial.BufferedDirection
	modifiers    map[entity.Handle]spatial.MovementModifiers
	ghostStates  map[entity.Handle]ghost.State
	ghostTags    map[entity.Handle]GhostTag
	fruitTags    map[entity.Handle]FruitTag
	entityTypes  map[entity.Handle]EntityType
	colliders    map[entity.Handle]Collider
	lives        map[entity.Handle]PlayerLife
	playerEntity map[entity.Handle]bool
	frozen       map[entity.Handle]bool
	hidden       map[entity.Handle]bool

	directional         map[entity.Handle]*animation.DirectionalAnimation
	linear              map[entity.Handle]*animation.LinearAnimation
	blinking            map[entity.Handle]*animation.Blinking
	timeToLive          map[entity.Handle]*animation.TimeToLive
	lastAnimationStates map[entity.Handle]*animation.LastAnimationState

	// Resources, held directly as fields rather than through a generic
	// resource map, exactly as the teacher's World holds set *Settings.
	Map           *worldmap.Map
	Stage         stage.Stage
	Pause         pause.State
	Score         score.Resource
	Pellets       score.PelletCount
	PlayerLives   int
	DeltaTime     timing.DeltaTime
	Timing        timing.Timing
	SystemTimings *timing.SystemTimings
	RenderDirty   renderdirty.RenderDirty
	IntroPlayed   bool
	Bindings      *input.Bindings
	Cursor        input.CursorPosition
	Touch         input.TouchState
	Batcher       input.Batcher
	DebugEnabled  bool
	AudioMuted    bool
	FruitHistory  []string
}

// New constructs an empty World over the given built Map and Bindings.
func New(m *worldmap.Map, bindings *input.Bindings) *World {
	return &World{
		generations: make(map[uint32]uint32),
		alive:       make(map[uint32]bool),

		positions:    make(map[entity.Handle]spatial.Position),
		velocities:   make(map[entity.Handle]spatial.Velocity),
		buffered:     make(map[entity.Handle]spatial.BufferedDirection),
		modifiers:    make(map[entity.Handle]spatial.MovementModifiers),
		ghostStates:  make(map[entity.Handle]ghost.State),
		ghostTags:    make(map[entity.Handle]GhostTag),
		fruitTags:    make(map[entity.Handle]FruitTag),
		entityTypes:  make(map[entity.Handle]EntityType),
		colliders:    make(map[entity.Handle]Collider),
		lives:        make(map[entity.Handle]PlayerLife),
		playerEntity: make(map[entity.Handle]bool),
		frozen:       make(map[entity.Handle]bool),
		hidden:       make(map[entity.Handle]bool),

		directional:         make(map[entity.Handle]*animation.DirectionalAnimation),
		linear:              make(map[entity.Handle]*animation.LinearAnimation),
		blinking:            make(map[entity.Handle]*animation.Blinking),
		timeToLive:          make(map[entity.Handle]*animation.TimeToLive),
		lastAnimationStates: make(map[entity.Handle]*animation.LastAnimationState),

		Map:           m,
		SystemTimings: timing.NewSystemTimings(),
		Bindings:      bindings,
	}
}

// Spawn allocates a new entity handle.
func (w *World) Spawn() entity.Handle {
	idx := w.nextIndex
	w.nextIndex++
	h := entity.Handle{Index: idx, Generation: w.generations[idx], ID: uuid.New()}
	w.alive[idx] = true
	return h
}

// Alive reports whether h still names a live entity: the slot is marked
// alive and its generation matches h's. A mismatch means h is stale (the
// slot was despawned and possibly reused), spec.md §7's EntityError
// condition.
func (w *World) Alive(h entity.Handle) bool {
	return w.alive[h.Index] && w.generations[h.Index] == h.Generation
}

// Despawn removes every component for h and bumps the slot's generation so
// any handle still referencing it becomes detectably stale.
func (w *World) Despawn(h entity.Handle) {
	if !w.Alive(h) {
		return
	}
	delete(w.positions, h)
	delete(w.velocities, h)
	delete(w.buffered, h)
	delete(w.modifiers, h)
	delete(w.ghostStates, h)
	delete(w.ghostTags, h)
	delete(w.fruitTags, h)
	delete(w.entityTypes, h)
	delete(w.colliders, h)
	delete(w.lives, h)
	delete(w.playerEntity, h)
	delete(w.frozen, h)
	delete(w.hidden, h)
	delete(w.directional, h)
	delete(w.linear, h)
	delete(w.blinking, h)
	delete(w.timeToLive, h)
	delete(w.lastAnimationStates, h)

	w.alive[h.Index] = false
	w.generations[h.Index] = h.Generation + 1
}

// Position returns h's Position component.
func (w *World) Position(h entity.Handle) (spatial.Position, bool) {
	if !w.Alive(h) {
		return spatial.Position{}, false
	}
	p, ok := w.positions[h]
	return p, ok
}

// SetPosition sets h's Position component.
func (w *World) SetPosition(h entity.Handle, p spatial.Position) {
	if w.Alive(h) {
		w.positions[h] = p
	}
}

// Velocity returns h's Velocity component.
func (w *World) Velocity(h entity.Handle) (spatial.Velocity, bool) {
	if !w.Alive(h) {
		return spatial.Velocity{}, false
	}
	v, ok := w.velocities[h]
	return v, ok
}

// SetVelocity sets h's Velocity component.
func (w *World) SetVelocity(h entity.Handle, v spatial.Velocity) {
	if w.Alive(h) {
		w.velocities[h] = v
	}
}

// BufferedDirection returns h's BufferedDirection component.
func (w *World) BufferedDirection(h entity.Handle) (spatial.BufferedDirection, bool) {
	if !w.Alive(h) {
		return spatial.BufferedDirection{}, false
	}
	b, ok := w.buffered[h]
	return b, ok
}

// SetBufferedDirection sets h's BufferedDirection component.
func (w *World) SetBufferedDirection(h entity.Handle, b spatial.BufferedDirection) {
	if w.Alive(h) {
		w.buffered[h] = b
	}
}

// Modifiers returns h's MovementModifiers, defaulting to the identity
// modifiers if unset.
func (w *World) Modifiers(h entity.Handle) spatial.MovementModifiers {
	if m, ok := w.modifiers[h]; ok {
		return m
	}
	return spatial.DefaultMovementModifiers()
}

// SetModifiers sets h's MovementModifiers.
func (w *World) SetModifiers(h entity.Handle, m spatial.MovementModifiers) {
	if w.Alive(h) {
		w.modifiers[h] = m
	}
}

// GhostState returns h's GhostState component.
func (w *World) GhostState(h entity.Handle) (ghost.State, bool) {
	if !w.Alive(h) {
		return ghost.State{}, false
	}
	s, ok := w.ghostStates[h]
	return s, ok
}

// SetGhostState sets h's GhostState component.
func (w *World) SetGhostState(h entity.Handle, s ghost.State) {
	if w.Alive(h) {
		w.ghostStates[h] = s
	}
}

// GhostTag returns which of the four ghosts h is.
func (w *World) GhostTag(h entity.Handle) (GhostTag, bool) {
	if !w.Alive(h) {
		return GhostTag{}, false
	}
	t, ok := w.ghostTags[h]
	return t, ok
}

// SetGhostTag sets h's GhostTag.
func (w *World) SetGhostTag(h entity.Handle, t GhostTag) {
	if w.Alive(h) {
		w.ghostTags[h] = t
	}
}

// FruitTag returns which fruit kind h represents.
func (w *World) FruitTag(h entity.Handle) (FruitTag, bool) {
	if !w.Alive(h) {
		return FruitTag{}, false
	}
	t, ok := w.fruitTags[h]
	return t, ok
}

// SetFruitTag sets h's FruitTag.
func (w *World) SetFruitTag(h entity.Handle, t FruitTag) {
	if w.Alive(h) {
		w.fruitTags[h] = t
	}
}

// EntityType returns h's EntityType tag.
func (w *World) EntityType(h entity.Handle) (EntityType, bool) {
	if !w.Alive(h) {
		return 0, false
	}
	t, ok := w.entityTypes[h]
	return t, ok
}

// SetEntityType sets h's EntityType tag.
func (w *World) SetEntityType(h entity.Handle, t EntityType) {
	if w.Alive(h) {
		w.entityTypes[h] = t
	}
}

// Collider returns h's Collider component.
func (w *World) Collider(h entity.Handle) (Collider, bool) {
	if !w.Alive(h) {
		return Collider{}, false
	}
	c, ok := w.colliders[h]
	return c, ok
}

// SetCollider sets h's Collider component.
func (w *World) SetCollider(h entity.Handle, c Collider) {
	if w.Alive(h) {
		w.colliders[h] = c
	}
}

// SetPlayerControlled marks h as the player-controlled entity.
func (w *World) SetPlayerControlled(h entity.Handle, controlled bool) {
	if !w.Alive(h) {
		return
	}
	if controlled {
		w.playerEntity[h] = true
	} else {
		delete(w.playerEntity, h)
	}
}

// PlayerControlled reports whether h is the player-controlled entity.
func (w *World) PlayerControlled(h entity.Handle) bool {
	return w.playerEntity[h]
}

// SetFrozen sets h's Frozen flag; frozen entities skip movement and ghost
// state updates, per spec.md §4.4/§4.5.
func (w *World) SetFrozen(h entity.Handle, frozen bool) {
	if !w.Alive(h) {
		return
	}
	if frozen {
		w.frozen[h] = true
	} else {
		delete(w.frozen, h)
	}
}

// Frozen reports h's Frozen flag.
func (w *World) Frozen(h entity.Handle) bool {
	return w.frozen[h]
}

// SetHidden sets h's Visibility::hidden flag.
func (w *World) SetHidden(h entity.Handle, hidden bool) {
	if !w.Alive(h) {
		return
	}
	if hidden {
		w.hidden[h] = true
	} else {
		delete(w.hidden, h)
	}
}

// Hidden reports h's Visibility::hidden flag.
func (w *World) Hidden(h entity.Handle) bool {
	return w.hidden[h]
}

// PlayerLife returns h's PlayerLife component.
func (w *World) PlayerLife(h entity.Handle) (PlayerLife, bool) {
	if !w.Alive(h) {
		return PlayerLife{}, false
	}
	l, ok := w.lives[h]
	return l, ok
}

// SetPlayerLife sets h's PlayerLife component.
func (w *World) SetPlayerLife(h entity.Handle, l PlayerLife) {
	if w.Alive(h) {
		w.lives[h] = l
	}
}

// Directional returns h's DirectionalAnimation, if attached.
func (w *World) Directional(h entity.Handle) (*animation.DirectionalAnimation, bool) {
	a, ok := w.directional[h]
	return a, ok
}

// SetDirectional attaches a DirectionalAnimation to h, or removes it if a is nil.
func (w *World) SetDirectional(h entity.Handle, a *animation.DirectionalAnimation) {
	if a == nil {
		delete(w.directional, h)
		return
	}
	w.directional[h] = a
}

// Linear returns h's LinearAnimation, if attached.
func (w *World) Linear(h entity.Handle) (*animation.LinearAnimation, bool) {
	a, ok := w.linear[h]
	return a, ok
}

// SetLinear attaches a LinearAnimation to h, or removes it if a is nil.
func (w *World) SetLinear(h entity.Handle, a *animation.LinearAnimation) {
	if a == nil {
		delete(w.linear, h)
		return
	}
	w.linear[h] = a
}

// Blinking returns h's Blinking toggle, if attached.
func (w *World) Blinking(h entity.Handle) (*animation.Blinking, bool) {
	b, ok := w.blinking[h]
	return b, ok
}

// SetBlinking attaches a Blinking toggle to h.
func (w *World) SetBlinking(h entity.Handle, b *animation.Blinking) {
	w.blinking[h] = b
}

// TimeToLive returns h's TimeToLive countdown, if attached.
func (w *World) TimeToLive(h entity.Handle) (*animation.TimeToLive, bool) {
	t, ok := w.timeToLive[h]
	return t, ok
}

// SetTimeToLive attaches a TimeToLive countdown to h.
func (w *World) SetTimeToLive(h entity.Handle, t *animation.TimeToLive) {
	w.timeToLive[h] = t
}

// LastAnimationState returns h's change-detection cell for the ghost
// state→animation mapping, creating one on first access.
func (w *World) LastAnimationState(h entity.Handle) *animation.LastAnimationState {
	l, ok := w.lastAnimationStates[h]
	if !ok {
		l = &animation.LastAnimationState{}
		w.lastAnimationStates[h] = l
	}
	return l
}

// Entities returns every currently-alive entity handle. Order is
// unspecified; callers that need determinism should sort by Index.
func (w *World) Entities() []entity.Handle {
	out := make([]entity.Handle, 0, len(w.alive))
	for idx, alive := range w.alive {
		if !alive {
			continue
		}
		out = append(out, entity.Handle{Index: idx, Generation: w.generations[idx]})
	}
	return out
}

// Pixel returns h's world-pixel position via its Position component.
func (w *World) Pixel(h entity.Handle) (mgl64.Vec2, bool) {
	p, ok := w.Position(h)
	if !ok {
		return mgl64.Vec2{}, false
	}
	return p.Pixel(w.Map.Graph), true
}

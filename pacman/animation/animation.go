// Package animation implements the tile-sequence animation banks described
// in spec.md §4.7: directional and linear frame banks driven by a
// tick-counted time bank, a blinking visibility toggle, and a
// time-to-live countdown used by transient entities like score popups.
// Every type here is plain integer/slice arithmetic; no corpus library
// models tile-sequence animation banks, so this stays on the standard
// library throughout.
package animation

import "github.com/Xevion/Pac-Man-sub000/pacman/graph"

// TileSequence is an ordered list of sprite names, resolved later through
// ports.AssetLookup.
type TileSequence []string

// DirectionalAnimation holds one TileSequence per direction for movement
// plus a stopped sequence, advancing a shared frame-duration time bank.
type DirectionalAnimation struct {
	moving        [4]TileSequence
	stopped       TileSequence
	frameDuration uint32
	timeBank      uint32
	currentFrame  int
	direction     graph.Direction
	isStopped     bool
}

// NewDirectional constructs a DirectionalAnimation. moving must be indexed
// by graph.Direction (Up, Down, Left, Right).
func NewDirectional(moving [4]TileSequence, stopped TileSequence, frameDuration uint32) *DirectionalAnimation {
	return &DirectionalAnimation{moving: moving, stopped: stopped, frameDuration: frameDuration}
}

// SetDirection updates the facing direction used while moving.
func (a *DirectionalAnimation) SetDirection(d graph.Direction) {
	if a.direction != d {
		a.direction = d
		a.currentFrame = 0
	}
}

// SetStopped switches between the moving and stopped sequences.
func (a *DirectionalAnimation) SetStopped(stopped bool) {
	if a.isStopped != stopped {
		a.isStopped = stopped
		a.currentFrame = 0
	}
}

func (a *DirectionalAnimation) activeSequence() TileSequence {
	if a.isStopped {
		return a.stopped
	}
	return a.moving[a.direction]
}

// Tick increments the time bank by dtTicks and advances current_frame,
// wrapping modulo the active sequence's length, per spec.md §4.7.
func (a *DirectionalAnimation) Tick(dtTicks uint32) {
	seq := a.activeSequence()
	if len(seq) == 0 {
		return
	}
	if a.frameDuration == 0 {
		if dtTicks > 0 {
			a.currentFrame = (a.currentFrame + 1) % len(seq)
		}
		return
	}
	a.timeBank += dtTicks
	for a.timeBank >= a.frameDuration {
		a.timeBank -= a.frameDuration
		a.currentFrame = (a.currentFrame + 1) % len(seq)
	}
}

// CurrentSprite returns the sprite name for the active frame, or "" if the
// active sequence is empty.
func (a *DirectionalAnimation) CurrentSprite() string {
	seq := a.activeSequence()
	if len(seq) == 0 {
		return ""
	}
	return seq[a.currentFrame]
}

// LinearAnimation plays a single TileSequence once, unless Looping, per
// spec.md §4.7.
type LinearAnimation struct {
	sequence      TileSequence
	frameDuration uint32
	timeBank      uint32
	currentFrame  int
	looping       bool
	finished      bool
}

// NewLinear constructs a LinearAnimation.
func NewLinear(seq TileSequence, frameDuration uint32, looping bool) *LinearAnimation {
	return &LinearAnimation{sequence: seq, frameDuration: frameDuration, looping: looping}
}

// Finished reports whether a non-looping animation has advanced past its
// last frame; it then stays on the last frame and stops advancing.
func (a *LinearAnimation) Finished() bool {
	return a.finished
}

// CurrentSprite returns the sprite name for the active frame, or "" if the
// sequence is empty.
func (a *LinearAnimation) CurrentSprite() string {
	if len(a.sequence) == 0 {
		return ""
	}
	return a.sequence[a.currentFrame]
}

// Tick advances the animation by dtTicks. Advancing past the last frame of
// a non-looping sequence sets Finished true without wrapping.
func (a *LinearAnimation) Tick(dtTicks uint32) {
	if a.finished && !a.looping {
		return
	}
	if len(a.sequence) == 0 || a.frameDuration == 0 {
		return
	}
	a.timeBank += dtTicks
	for a.timeBank >= a.frameDuration {
		a.timeBank -= a.frameDuration
		a.currentFrame++
		if a.currentFrame >= len(a.sequence) {
			if a.looping {
				a.currentFrame = 0
				continue
			}
			a.currentFrame = len(a.sequence) - 1
			a.finished = true
			return
		}
	}
}

// Blinking toggles Visibility every IntervalTicks, forced visible while the
// entity is Frozen (the timer does not advance during that window), per
// spec.md §4.7. With IntervalTicks == 0, any positive dt.ticks toggles
// every tick.
type Blinking struct {
	intervalTicks uint32
	timeBank      uint32
	visible       bool
}

// NewBlinking constructs a Blinking toggle, starting visible.
func NewBlinking(intervalTicks uint32) *Blinking {
	return &Blinking{intervalTicks: intervalTicks, visible: true}
}

// Visible reports the current visibility.
func (b *Blinking) Visible() bool {
	return b.visible
}

// Tick advances the toggle by dtTicks. When frozen is true, visibility is
// forced on and the timer does not advance.
func (b *Blinking) Tick(dtTicks uint32, frozen bool) {
	if frozen {
		b.visible = true
		return
	}
	if b.intervalTicks == 0 {
		if dtTicks > 0 {
			b.visible = !b.visible
		}
		return
	}
	b.timeBank += dtTicks
	for b.timeBank >= b.intervalTicks {
		b.timeBank -= b.intervalTicks
		b.visible = !b.visible
	}
}

// TimeToLive despawns an entity once its remaining ticks reach zero,
// saturating rather than going negative, per spec.md §4.7.
type TimeToLive struct {
	RemainingTicks uint32
}

// Tick subtracts dtTicks, saturating at zero, and reports whether the
// entity has expired and should be despawned.
func (t *TimeToLive) Tick(dtTicks uint32) (expired bool) {
	if dtTicks >= t.RemainingTicks {
		t.RemainingTicks = 0
		return true
	}
	t.RemainingTicks -= dtTicks
	return false
}

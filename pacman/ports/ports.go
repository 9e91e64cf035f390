// Package ports defines the collaborator interfaces the core consumes but
// never implements itself, per spec.md §6. A Game is constructed with
// concrete implementations of these; the core packages only ever see the
// interface, so a headless test can supply deterministic doubles for all
// six without touching rendering, audio, or real input hardware.
package ports

import (
	"github.com/Xevion/Pac-Man-sub000/pacman/graph"
	"github.com/Xevion/Pac-Man-sub000/pacman/input"
)

// InputCommand is a single logical input event delivered for a tick. The
// concrete command vocabulary lives in package input; ports only needs the
// shape InputSource produces.
type InputCommand struct {
	Direction graph.Direction
	HasDir    bool
	Pause     bool
	SingleTick bool
	ToggleDebug bool
	MuteAudio bool
	ResetLevel bool
}

// InputSource supplies the batch of input events that occurred since the
// last tick. Implementations are free to coalesce, e.g. collapsing held
// keys into repeated directional commands, per spec.md §4.3.
type InputSource interface {
	Poll() []InputCommand
}

// KeyEventSource supplies the raw keyboard events that occurred since the
// last tick, for package input's Batcher to apply the held-key
// re-emission policy against a Bindings set, per spec.md §4.3. Distinct
// from InputSource: a host that already resolves its own bindings never
// needs this; one that wants held-key re-emission for free polls raw keys
// here instead.
type KeyEventSource interface {
	PollKeys() []input.KeyEvent
}

// RNG is the seam ghost movement and any other randomized system draw
// through, instead of calling math/rand/v2 directly, so that spec.md §9's
// "randomness is a service, not a global" requirement is satisfiable with a
// deterministic test double.
type RNG interface {
	// Uint32 returns a uniformly distributed pseudo-random uint32.
	Uint32() uint32
	// IntN returns a pseudo-random int in [0,n). It panics if n<=0.
	IntN(n int) int
}

// AudioEvent names a sound effect to play. The concrete set of names is an
// AssetLookup concern, not fixed here.
type AudioEvent struct {
	Name string
}

// AudioSink plays sound effects. Dropping a Play call is always safe and
// must never be treated as an error, per spec.md §6.
type AudioSink interface {
	Play(AudioEvent)
}

// AssetLookup resolves a sprite name to a renderable asset. It reports
// success only; the core never inspects the asset itself, since rendering
// is out of scope.
type AssetLookup interface {
	Sprite(name string) (ok bool)
}

// Clock reports the wall-clock delta since the previous tick, in seconds.
// A fixed-step test double can return a constant value to make a recorded
// replay reproduce frame-for-frame.
type Clock interface {
	DeltaSeconds() float64
}

package input

import (
	"math"

	"github.com/Xevion/Pac-Man-sub000/pacman/graph"
	"github.com/go-gl/mathgl/mgl64"
)

// KeyAction distinguishes a key press from a release.
type KeyAction uint8

const (
	KeyDown KeyAction = iota
	KeyUp
)

// KeyEvent is one raw keyboard event delivered by a ports.KeyEventSource.
type KeyEvent struct {
	Key    string
	Action KeyAction
}

// cursorExpirySeconds is how long CursorPosition stays Active after the
// last pointer event, so a debug overlay can fade, per spec.md §4.3.
const cursorExpirySeconds = 0.2

// CursorPosition tracks the most recent pointer position, auto-expiring
// after cursorExpirySeconds of inactivity.
type CursorPosition struct {
	Position      mgl64.Vec2
	RemainingTime float64
}

// Set records a new pointer position and resets the expiry timer.
func (c *CursorPosition) Set(pos mgl64.Vec2) {
	c.Position = pos
	c.RemainingTime = cursorExpirySeconds
}

// Tick counts the expiry timer down, saturating at zero.
func (c *CursorPosition) Tick(dtSeconds float64) {
	if c.RemainingTime <= 0 {
		return
	}
	c.RemainingTime -= dtSeconds
	if c.RemainingTime < 0 {
		c.RemainingTime = 0
	}
}

// Active reports whether the cursor position is still within its fade window.
func (c *CursorPosition) Active() bool {
	return c.RemainingTime > 0
}

const (
	touchEasingDistanceThreshold = 4.0  // pixels; below this, touch drag is ignored (deadzone)
	touchDirectionThreshold      = 12.0 // pixels; displacement needed to emit MovePlayer
	touchEasingRatePerSecond     = 6.0  // fraction of the remaining gap closed per second
)

// TouchState tracks one active finger's drag, per spec.md §4.3.
type TouchState struct {
	active     bool
	fingerID   int
	startPos   mgl64.Vec2
	currentPos mgl64.Vec2
}

// Begin starts tracking a new touch.
func (t *TouchState) Begin(fingerID int, pos mgl64.Vec2) {
	t.active = true
	t.fingerID = fingerID
	t.startPos = pos
	t.currentPos = pos
}

// Move updates the current position of an active touch with a matching
// finger id; touches from other fingers are ignored.
func (t *TouchState) Move(fingerID int, pos mgl64.Vec2) {
	if t.active && t.fingerID == fingerID {
		t.currentPos = pos
	}
}

// End stops tracking the touch with a matching finger id.
func (t *TouchState) End(fingerID int) {
	if t.active && t.fingerID == fingerID {
		t.active = false
	}
}

// Ease pulls startPos toward currentPos by a frame-time-scaled fraction,
// clamped to never overshoot, and reports the directional MovePlayer this
// frame's easing produced, if the post-ease displacement still clears
// touchDirectionThreshold. Displacement below touchEasingDistanceThreshold
// is a deadzone: no easing happens and no command is emitted.
func (t *TouchState) Ease(dtSeconds float64) (graph.Direction, bool) {
	if !t.active {
		return 0, false
	}
	dx := t.currentPos[0] - t.startPos[0]
	dy := t.currentPos[1] - t.startPos[1]
	dist := math.Hypot(dx, dy)
	if dist < touchEasingDistanceThreshold {
		return 0, false
	}

	frac := dtSeconds * touchEasingRatePerSecond
	if frac > 1 {
		frac = 1
	}
	t.startPos = mgl64.Vec2{
		t.startPos[0] + dx*frac,
		t.startPos[1] + dy*frac,
	}

	ddx := t.currentPos[0] - t.startPos[0]
	ddy := t.currentPos[1] - t.startPos[1]
	adx, ady := math.Abs(ddx), math.Abs(ddy)
	if adx < touchDirectionThreshold && ady < touchDirectionThreshold {
		return 0, false
	}
	// Dominant axis wins; ties prefer vertical.
	if ady >= adx {
		if ddy > 0 {
			return graph.Down, true
		}
		return graph.Up, true
	}
	if ddx > 0 {
		return graph.Right, true
	}
	return graph.Left, true
}

// Batcher implements the held-key re-emission policy from spec.md §4.3:
// MovePlayer on KeyDown records the key as the last movement key; if no
// movement key is pressed this frame but the last one is still held, its
// command is re-emitted once; KeyUp of that key clears it.
type Batcher struct {
	lastMovementKey string
	held            bool
}

// Process converts this frame's raw key events into GameCommands.
func (b *Batcher) Process(events []KeyEvent, bindings *Bindings) []Command {
	var commands []Command
	emittedMovement := false

	for _, e := range events {
		cmd, ok := bindings.Resolve(e.Key)
		if !ok {
			continue
		}
		switch e.Action {
		case KeyDown:
			commands = append(commands, cmd)
			if cmd.IsMovePlayer() {
				b.lastMovementKey = e.Key
				b.held = true
				emittedMovement = true
			}
		case KeyUp:
			if e.Key == b.lastMovementKey {
				b.held = false
				b.lastMovementKey = ""
			}
		}
	}

	if !emittedMovement && b.held && b.lastMovementKey != "" {
		if cmd, ok := bindings.Resolve(b.lastMovementKey); ok {
			commands = append(commands, cmd)
		}
	}
	return commands
}

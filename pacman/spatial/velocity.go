package spatial

import "github.com/Xevion/Pac-Man-sub000/pacman/graph"

// Velocity is speed in pixels-per-tick-at-60Hz plus a facing direction.
// Actual pixels travelled in a frame is Speed * 60 * dtSeconds, per spec §3.
type Velocity struct {
	Speed     float32
	Direction graph.Direction
}

// Distance returns the pixel distance this velocity covers for a frame of
// dtSeconds, before any speed multiplier is applied.
func (v Velocity) Distance(dtSeconds float64) float32 {
	return v.Speed * 60 * float32(dtSeconds)
}

// MovementModifiers scales an entity's effective travel distance. SpeedMultiplier
// defaults to 1; TunnelSlowdown is written by the tunnel-slowdown system
// while Pac-Man occupies tunnel cells.
type MovementModifiers struct {
	SpeedMultiplier float32
	TunnelSlowdown  float32
}

// DefaultMovementModifiers returns the modifiers an entity starts with.
func DefaultMovementModifiers() MovementModifiers {
	return MovementModifiers{SpeedMultiplier: 1}
}

// bufferWindowSeconds is how long a buffered direction stays valid, per
// spec §3/§4.3 and Testable Property 6.
const bufferWindowSeconds = 0.25

// BufferedDirection is a short-lived hint from input that a direction
// change should be applied at the next reachable node.
type BufferedDirection struct {
	set           bool
	direction     graph.Direction
	remainingTime float64
}

// None returns the empty BufferedDirection.
func None() BufferedDirection {
	return BufferedDirection{}
}

// Buffer returns a BufferedDirection valid for the standard 0.25s window.
func Buffer(d graph.Direction) BufferedDirection {
	return BufferedDirection{set: true, direction: d, remainingTime: bufferWindowSeconds}
}

// IsSet reports whether a direction is currently buffered.
func (b BufferedDirection) IsSet() bool {
	return b.set
}

// Direction returns the buffered direction. Only meaningful when IsSet is true.
func (b BufferedDirection) Direction() graph.Direction {
	return b.direction
}

// Tick decrements the buffer's timer by dtSeconds, expiring it to None once
// the timer reaches zero.
func (b *BufferedDirection) Tick(dtSeconds float64) {
	if !b.set {
		return
	}
	b.remainingTime -= dtSeconds
	if b.remainingTime <= 0 {
		*b = None()
	}
}

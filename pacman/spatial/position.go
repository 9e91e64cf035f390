// Package spatial implements the Position tagged sum and the overflow
// chaining primitive that movement systems use, per spec §3 and §4.2.
package spatial

import (
	"github.com/Xevion/Pac-Man-sub000/pacman/graph"
	"github.com/go-gl/mathgl/mgl64"
)

// Position is the spatial state of a moving entity: either Stopped exactly
// at a node, or Moving along the edge from Node to To with RemainingDistance
// pixels left to travel. The zero value is Moving along a zero-length edge
// from node 0 to node 0, which is never meaningful on its own — callers always construct a Position explicitly.
type Position struct {
	stopped bool
	node    graph.NodeId

	from, to          graph.NodeId
	remainingDistance float32
	edgeDistance      float32
}

// Stopped returns a Position at rest on node n.
func Stopped(n graph.NodeId) Position {
	return Position{stopped: true, node: n}
}

// Moving returns a Position travelling the edge from "from" toward "to",
// with the full edge distance remaining.
func Moving(from, to graph.NodeId, distance float32) Position {
	return Position{from: from, to: to, remainingDistance: distance, edgeDistance: distance}
}

// IsStopped reports whether the position is at rest on a node.
func (p Position) IsStopped() bool {
	return p.stopped
}

// Node returns the node the position is stopped at. It is only meaningful
// when IsStopped is true.
func (p Position) Node() graph.NodeId {
	return p.node
}

// Edge returns the from/to nodes of a Moving position. Only meaningful when
// IsStopped is false.
func (p Position) Edge() (from, to graph.NodeId) {
	return p.from, p.to
}

// RemainingDistance returns the pixels left to travel on the current edge.
// Only meaningful when IsStopped is false.
func (p Position) RemainingDistance() float32 {
	return p.remainingDistance
}

// Pixel returns the world-pixel position, linearly interpolating between
// the edge's endpoints when Moving. A zero-distance edge is defined to have
// progress 1 (the entity is considered to already be at "to").
func (p Position) Pixel(g *graph.Graph) mgl64.Vec2 {
	if p.stopped {
		return g.Node(p.node).Position
	}
	fromPos := g.Node(p.from).Position
	toPos := g.Node(p.to).Position
	if p.edgeDistance == 0 {
		return toPos
	}
	progress := 1 - float64(p.remainingDistance)/float64(p.edgeDistance)
	return mgl64.Vec2{
		fromPos[0] + (toPos[0]-fromPos[0])*progress,
		fromPos[1] + (toPos[1]-fromPos[1])*progress,
	}
}

// Tick advances a Moving position by distance pixels, per spec §4.2.
//
// If distance <= 0 or the position is already Stopped, it returns
// (0, false): nothing happened.
//
// If there is more remaining distance than the requested travel, the
// position stays Moving with the distance subtracted, and Tick returns
// (0, false): no overflow.
//
// Otherwise the position becomes Stopped at "to", and Tick returns the
// overflow (distance - remainingDistance, which may be exactly 0) and true.
// The overflow is the key primitive that lets a single frame chain across
// more than one short edge: the caller re-invokes movement from Stopped
// with the overflow as the new travel budget.
func (p *Position) Tick(distance float32) (overflow float32, ok bool) {
	if distance <= 0 || p.stopped {
		return 0, false
	}
	if p.remainingDistance > distance {
		p.remainingDistance -= distance
		return 0, false
	}
	overflow = distance - p.remainingDistance
	*p = Stopped(p.to)
	return overflow, true
}

package ghost

import (
	"math"

	"github.com/Xevion/Pac-Man-sub000/pacman/graph"
	"github.com/Xevion/Pac-Man-sub000/pacman/ports"
	"github.com/Xevion/Pac-Man-sub000/pacman/spatial"
)

// Update advances a ghost's Position and Velocity by one frame's travel
// budget, per spec.md §4.2 "Ghost movement" and "Eaten-ghost override". The
// state is mutated in place: an Eyes ghost that reaches houseCenter reverts
// to Normal here, exactly as spec.md §3 "GhostState" describes.
func Update(pos *spatial.Position, vel *spatial.Velocity, state *State, g *graph.Graph, baseDistance float32, houseCenter graph.NodeId, r ports.RNG) {
	if state.IsEyes() {
		tickEyes(pos, vel, g, baseDistance*2, houseCenter)
		if pos.IsStopped() && pos.Node() == houseCenter {
			*state = Normal()
		}
		return
	}
	tickWander(pos, vel, g, baseDistance, r)
}

// tickWander implements the "no reversing at intersections" policy: at a
// Stopped node, gather outgoing GHOST edges, prefer any whose direction is
// not the opposite of the current heading, and pick uniformly at random
// among them. Only if every outgoing edge is the reverse direction is it
// taken. Overflow chains exactly like player movement.
func tickWander(pos *spatial.Position, vel *spatial.Velocity, g *graph.Graph, baseDistance float32, r ports.RNG) {
	distance := baseDistance
	for {
		if pos.IsStopped() {
			node := pos.Node()
			edges := ghostEdges(g, node)
			if len(edges) == 0 {
				return
			}
			opposite := vel.Direction.Opposite()
			nonReverse := make([]graph.Edge, 0, len(edges))
			for _, e := range edges {
				if e.Direction != opposite {
					nonReverse = append(nonReverse, e)
				}
			}
			var chosen graph.Edge
			if len(nonReverse) > 0 {
				chosen = nonReverse[r.IntN(len(nonReverse))]
			} else {
				chosen = edges[0]
			}
			*pos = spatial.Moving(node, chosen.Target, chosen.Distance)
			vel.Direction = chosen.Direction
			continue
		}

		overflow, ok := pos.Tick(distance)
		if !ok {
			return
		}
		if overflow <= 0 {
			return
		}
		distance = overflow
	}
}

// tickEyes implements the eaten-ghost override: a greedy heuristic that
// prefers the axis (x or y) with the larger remaining pixel delta toward
// houseCenter, falling back to the other axis, and finally to any
// available GHOST edge so the ghost never gets stuck short of arrival.
func tickEyes(pos *spatial.Position, vel *spatial.Velocity, g *graph.Graph, distance float32, houseCenter graph.NodeId) {
	for {
		if pos.IsStopped() {
			node := pos.Node()
			if node == houseCenter {
				return
			}
			edges := ghostEdges(g, node)
			if len(edges) == 0 {
				return
			}
			chosen, ok := greedyChoice(g, node, houseCenter, edges)
			if !ok {
				chosen = edges[0]
			}
			*pos = spatial.Moving(node, chosen.Target, chosen.Distance)
			vel.Direction = chosen.Direction
			continue
		}

		overflow, ok := pos.Tick(distance)
		if !ok {
			return
		}
		if overflow <= 0 {
			return
		}
		distance = overflow
	}
}

// greedyChoice picks the GHOST edge out of node whose direction best closes
// the remaining pixel delta to target, preferring the dominant axis and
// falling back to the other.
func greedyChoice(g *graph.Graph, node, target graph.NodeId, edges []graph.Edge) (graph.Edge, bool) {
	cur := g.Node(node).Position
	dst := g.Node(target).Position
	dx := dst[0] - cur[0]
	dy := dst[1] - cur[1]

	primary := axisDirection(dx, dy, math.Abs(dx) >= math.Abs(dy))
	secondary := axisDirection(dx, dy, math.Abs(dx) < math.Abs(dy))

	if e, ok := findDirection(edges, primary); ok {
		return e, true
	}
	if e, ok := findDirection(edges, secondary); ok {
		return e, true
	}
	return graph.Edge{}, false
}

// axisDirection returns the direction that reduces the x delta when
// preferX is true, otherwise the direction that reduces the y delta.
func axisDirection(dx, dy float64, preferX bool) graph.Direction {
	if preferX {
		if dx >= 0 {
			return graph.Right
		}
		return graph.Left
	}
	if dy >= 0 {
		return graph.Down
	}
	return graph.Up
}

func findDirection(edges []graph.Edge, d graph.Direction) (graph.Edge, bool) {
	for _, e := range edges {
		if e.Direction == d {
			return e, true
		}
	}
	return graph.Edge{}, false
}

// ghostEdges returns node's outgoing edges restricted to ones traversable
// by ghosts, in the graph's fixed direction order (Up, Down, Left, Right)
// so the non-reverse candidate set is built deterministically before the
// random pick is applied.
func ghostEdges(g *graph.Graph, node graph.NodeId) []graph.Edge {
	all := g.Edges(node)
	out := make([]graph.Edge, 0, len(all))
	for _, e := range all {
		if e.Flags.Contains(graph.Ghost) {
			out = append(out, e)
		}
	}
	return out
}

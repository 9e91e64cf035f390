// Package graph implements the direction-indexed navigation graph that the
// map builder produces and that movement walks every tick.
package graph

import (
	"encoding/binary"
	"math"

	"github.com/brentp/intintmap"
	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl64"
)

// NodeId is a dense index into a Graph's node array. The zero value is a
// valid node id (the first node added), so callers that need an "absent"
// sentinel should use a separate bool, not NodeId(0).
type NodeId uint32

// Direction is one of the four cardinal directions a node can have an
// outgoing edge in.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Opposite returns the reverse of d.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Delta returns the (dx, dy) grid offset of a single step in direction d,
// with +y pointing down (row-major grid convention used by worldmap).
func (d Direction) Delta() (int, int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	default:
		return 1, 0
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	default:
		return "Right"
	}
}

// TraversalFlags is a bitset over the kinds of entities that may cross an
// edge. The zero value (Empty) marks a static entity that never moves; by
// set containment, Empty is a subset of every other flag combination.
type TraversalFlags uint8

const (
	Empty  TraversalFlags = 0
	Pacman TraversalFlags = 1 << 0
	Ghost  TraversalFlags = 1 << 1

	All = Pacman | Ghost
)

// Contains reports whether f is a superset of other (f ⊇ other).
func (f TraversalFlags) Contains(other TraversalFlags) bool {
	return f&other == other
}

// Node is a vertex of the navigation graph, positioned at a cell center in
// world-pixel space.
type Node struct {
	Position mgl64.Vec2
}

// Edge is a directed connection from the node it is stored under to
// Target, tagged with the direction the edge is travelled in and the kinds
// of entity allowed to use it.
type Edge struct {
	Target    NodeId
	Distance  float32
	Direction Direction
	Flags     TraversalFlags
}

// Graph is an arena of Nodes plus a direction-indexed adjacency table.
// Entities hold NodeIds, never references into the arena, which keeps the
// graph free of the cyclic-ownership problem a "node knows its neighbours"
// design would otherwise have.
type Graph struct {
	nodes []Node
	// adjacency[n][d] is the outgoing edge of node n in direction d, if any.
	adjacency [][4]*Edge

	// coordIndex accelerates (x,y) grid coordinate lookups during the build
	// passes; it stays populated after building, so NodeAt keeps working.
	coordIndex *intintmap.Map
}

// New returns an empty Graph ready for node/edge construction.
func New() *Graph {
	return &Graph{
		coordIndex: intintmap.New(1024, 0.6),
	}
}

// packCoord folds a grid coordinate into the int64 key space used by the
// build-time coordinate index. Coordinates are expected to fit in an int32
// on either axis, including the small negative range used by tunnel hidden
// nodes two cells outside the playfield.
func packCoord(x, y int) int64 {
	return int64(int32(y))<<32 | int64(uint32(int32(x)))
}

// AddNode appends a new node at pos and returns its id.
func (g *Graph) AddNode(pos mgl64.Vec2) NodeId {
	id := NodeId(len(g.nodes))
	g.nodes = append(g.nodes, Node{Position: pos})
	g.adjacency = append(g.adjacency, [4]*Edge{})
	return id
}

// IndexCoord records that the grid coordinate (x,y) maps to id, so that
// NodeAt (used by the map builder's flood fill) can find it again. Nodes
// created outside the regular grid (the ghost house lines, tunnel hidden
// nodes, the house entrance) do not need to call this.
func (g *Graph) IndexCoord(x, y int, id NodeId) {
	g.coordIndex.Put(packCoord(x, y), int64(id))
}

// NodeAt returns the node id previously indexed at grid coordinate (x,y).
func (g *Graph) NodeAt(x, y int) (NodeId, bool) {
	v, ok := g.coordIndex.Get(packCoord(x, y))
	if !ok {
		return 0, false
	}
	return NodeId(v), true
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// Node returns the node stored at id. It panics if id is out of range,
// since a valid NodeId is only ever handed out by AddNode.
func (g *Graph) Node(id NodeId) Node {
	return g.nodes[id]
}

// Connect installs a directed edge from `from` to `to` in direction dir
// with the given distance and flags. If reverse is true, the mirrored edge
// (to -> from, opposite direction, same distance and flags) is installed
// as well — this is how most maze corridors are wired, while the
// ghost-house door edge is installed with reverse set per side so that both
// directions carry the GHOST-only flag explicitly.
func (g *Graph) Connect(from, to NodeId, dir Direction, distance float32, flags TraversalFlags, reverse bool) {
	g.adjacency[from][dir] = &Edge{Target: to, Distance: distance, Direction: dir, Flags: flags}
	if reverse {
		g.adjacency[to][dir.Opposite()] = &Edge{Target: from, Distance: distance, Direction: dir.Opposite(), Flags: flags}
	}
}

// Edge returns the outgoing edge of node n in direction d, if one exists.
func (g *Graph) Edge(n NodeId, d Direction) (Edge, bool) {
	e := g.adjacency[n][d]
	if e == nil {
		return Edge{}, false
	}
	return *e, true
}

// Edges returns all outgoing edges of node n, in Up/Down/Left/Right order,
// skipping absent directions.
func (g *Graph) Edges(n NodeId) []Edge {
	out := make([]Edge, 0, 4)
	for _, e := range g.adjacency[n] {
		if e != nil {
			out = append(out, *e)
		}
	}
	return out
}

// HasEdge reports whether node n has any outgoing edge in direction d.
func (g *Graph) HasEdge(n NodeId, d Direction) bool {
	return g.adjacency[n][d] != nil
}

// Checksum folds the node table and adjacency into a single fingerprint,
// used to assert the graph-determinism testable property (byte-identical
// node count and coordinate index across runs) without comparing the whole
// structure field by field.
func (g *Graph) Checksum() uint64 {
	h := xxhash.New()
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[:4], uint32(len(g.nodes)))
	h.Write(buf[:4])
	for id, n := range g.nodes {
		binary.LittleEndian.PutUint64(buf[:], uint64(id))
		h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(n.Position[0]))
		h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(n.Position[1]))
		h.Write(buf[:])
		for d := Direction(0); d < 4; d++ {
			e := g.adjacency[id][d]
			if e == nil {
				continue
			}
			binary.LittleEndian.PutUint32(buf[:4], uint32(e.Target))
			h.Write(buf[:4])
			buf[0] = byte(e.Direction)
			buf[1] = byte(e.Flags)
			h.Write(buf[:2])
		}
	}
	return h.Sum64()
}

package worldmap

import (
	"errors"
	"testing"

	"github.com/Xevion/Pac-Man-sub000/pacman/gameerr"
	"github.com/Xevion/Pac-Man-sub000/pacman/graph"
)

func TestBuildDefaultBoard(t *testing.T) {
	m, err := Build(DefaultBoard)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// Testable property 1: every walkable cell has exactly one node.
	walkableCount := 0
	for x := 0; x < m.Width; x++ {
		for y := 0; y < m.Height; y++ {
			switch m.Tiles[x][y] {
			case TileEmpty, TilePellet, TilePowerPellet, TileTunnel:
				walkableCount++
			}
		}
	}
	if len(m.GridToNode) != walkableCount {
		t.Fatalf("grid_to_node has %d entries, want %d walkable cells", len(m.GridToNode), walkableCount)
	}

	// Testable property 2: no node has two outgoing edges in the same
	// direction. Graph.Connect overwrites rather than duplicating, so this
	// is really asserting the builder never silently clobbers an edge it
	// shouldn't.
	for _, id := range m.GridToNode {
		seen := map[graph.Direction]bool{}
		for _, e := range m.Graph.Edges(id) {
			if seen[e.Direction] {
				t.Fatalf("node %d has duplicate edge in direction %v", id, e.Direction)
			}
			seen[e.Direction] = true
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	m1, err := Build(DefaultBoard)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	m2, err := Build(DefaultBoard)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if m1.Graph.NodeCount() != m2.Graph.NodeCount() {
		t.Fatalf("node counts differ across builds: %d vs %d", m1.Graph.NodeCount(), m2.Graph.NodeCount())
	}
	if m1.Graph.Checksum() != m2.Graph.Checksum() {
		t.Fatalf("checksums differ across builds")
	}
}

func TestHouseDoorIsGhostOnly(t *testing.T) {
	m, err := Build(DefaultBoard)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	e, ok := m.Graph.Edge(m.Start.Blinky, graph.Down)
	if !ok {
		t.Fatalf("expected entrance to have a downward edge into the house")
	}
	if e.Flags != graph.Ghost {
		t.Fatalf("expected house-door edge to be GHOST-only, got flags=%v", e.Flags)
	}
	if e.Flags.Contains(graph.Pacman) {
		t.Fatalf("Pac-Man must never be able to traverse the house-door edge")
	}
}

func TestTunnelWraparoundIsZeroDistance(t *testing.T) {
	m, err := Build(DefaultBoard)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// Hidden tunnel nodes are not part of GridToNode, so check the two
	// visible tunnel mouths directly.
	left, ok := m.GridToNode[[2]int{0, 10}]
	if !ok {
		t.Fatalf("expected a node at the left tunnel mouth (0,10)")
	}
	right, ok := m.GridToNode[[2]int{20, 10}]
	if !ok {
		t.Fatalf("expected a node at the right tunnel mouth (20,10)")
	}

	leftEdge, ok := m.Graph.Edge(left, graph.Left)
	if !ok {
		t.Fatalf("expected left tunnel mouth to have an outgoing Left edge")
	}
	hiddenLeft := leftEdge.Target
	hiddenEdge, ok := m.Graph.Edge(hiddenLeft, graph.Left)
	if !ok {
		t.Fatalf("expected the hidden node to connect across to the other hidden node")
	}
	if hiddenEdge.Distance != 0 {
		t.Fatalf("expected the hidden-to-hidden edge to have distance 0, got %v", hiddenEdge.Distance)
	}

	rightEdge, ok := m.Graph.Edge(right, graph.Right)
	if !ok {
		t.Fatalf("expected right tunnel mouth to have an outgoing Right edge")
	}
	if hiddenEdge.Target != rightEdge.Target {
		t.Fatalf("expected both tunnel mouths to share the same hidden wraparound node")
	}
}

func TestBuildRejectsUnknownCharacter(t *testing.T) {
	bad := append([]string{}, DefaultBoard...)
	bad[1] = "!" + bad[1][1:]
	_, err := Build(bad)
	if !errors.Is(err, gameerr.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestBuildRejectsWrongRowLength(t *testing.T) {
	bad := append([]string{}, DefaultBoard...)
	bad[1] = bad[1][:len(bad[1])-1]
	_, err := Build(bad)
	if !errors.Is(err, gameerr.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestBuildRejectsMissingSpawn(t *testing.T) {
	bad := append([]string{}, DefaultBoard...)
	for i, row := range bad {
		if idx := indexOfByte(row, 'X'); idx >= 0 {
			bad[i] = row[:idx] + "." + row[idx+1:]
		}
	}
	_, err := Build(bad)
	if !errors.Is(err, gameerr.ErrMap) {
		t.Fatalf("expected ErrMap, got %v", err)
	}
}

func TestBuildRejectsWrongDoorCount(t *testing.T) {
	bad := append([]string{}, DefaultBoard...)
	for i, row := range bad {
		if idx := indexOfByte(row, '='); idx >= 0 {
			bad[i] = row[:idx] + "." + row[idx+1:]
			break
		}
	}
	_, err := Build(bad)
	if !errors.Is(err, gameerr.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func indexOfByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

// Package worldmap builds the navigation graph and tile layer from the
// fixed ASCII board layout, per spec §4.1.
package worldmap

import "github.com/Xevion/Pac-Man-sub000/pacman/graph"

// MapTile classifies a single grid cell for rendering and pellet bookkeeping.
// The house-door character ('=') is folded into Wall here: the door only
// matters to the navigation graph (as a GHOST-only edge), never to the tile
// layer a renderer or pellet-count pass would look at.
type MapTile uint8

const (
	TileEmpty MapTile = iota
	TileWall
	TilePellet
	TilePowerPellet
	TileTunnel
)

// StartPositions holds the spawn node for Pac-Man and each ghost, computed
// by the map builder from the synthesized ghost-house structure (never from
// ad-hoc markers in the ASCII layout).
type StartPositions struct {
	Pacman graph.NodeId
	Blinky graph.NodeId
	Pinky  graph.NodeId
	Inky   graph.NodeId
	Clyde  graph.NodeId
}

// Map is the navigation/tile resource built once at startup. Graph, Tiles,
// GridToNode and Start are never mutated after Build returns; nodeTile is a
// lazily-built derived cache, not part of the map's logical state.
type Map struct {
	// Graph is the direction-indexed navigation graph walked by movement.
	Graph *graph.Graph
	// GridToNode maps a walkable grid coordinate to its NodeId. Every
	// walkable cell in the source layout has exactly one entry.
	GridToNode map[[2]int]graph.NodeId
	// Start holds the spawn node for Pac-Man and each ghost.
	Start StartPositions
	// Tiles is tiles[x][y], indexed by grid coordinate.
	Tiles [][]MapTile
	// Width and Height are the grid's cell dimensions.
	Width, Height int

	nodeTile map[graph.NodeId]MapTile
}

// TileAt returns the tile at grid coordinate (x, y). Out-of-range
// coordinates (including the hidden tunnel nodes two cells outside the
// playfield) return TileWall, since nothing outside the grid is walkable
// from a tile-layer perspective.
func (m *Map) TileAt(x, y int) MapTile {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return TileWall
	}
	return m.Tiles[x][y]
}

// NodeTile returns the tile a navigation node sits on, for systems (like
// tunnel slowdown) that need to classify an entity's current node rather
// than a raw grid coordinate. The reverse grid lookup is built once here and
// cached for the Map's lifetime. Nodes synthesized outside the grid (the
// ghost house, its entrance, the hidden tunnel nodes) have no entry and
// return TileEmpty, the zero MapTile.
func (m *Map) NodeTile(n graph.NodeId) MapTile {
	if m.nodeTile == nil {
		m.nodeTile = make(map[graph.NodeId]MapTile, len(m.GridToNode))
		for coord, id := range m.GridToNode {
			m.nodeTile[id] = m.TileAt(coord[0], coord[1])
		}
	}
	return m.nodeTile[n]
}

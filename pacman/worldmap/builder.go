package worldmap

import (
	"fmt"

	"github.com/Xevion/Pac-Man-sub000/pacman/gameerr"
	"github.com/Xevion/Pac-Man-sub000/pacman/graph"
	"github.com/go-gl/mathgl/mgl64"
)

// CellSize is the width/height, in world pixels, of a single grid cell.
const CellSize = 24

// houseLineSpacing is the vertical spacing (half a cell, in pixels) between
// nodes in the ghost house's three vertical lines, per spec §4.1 step 4.
const houseLineSpacing = CellSize / 2

type cell struct {
	x, y int
	tile MapTile
}

// Build parses layout into a navigation Graph plus a tile layer, following
// spec §4.1 steps 1–5 exactly: parse, BFS flood fill, neighbour-closure
// pass, ghost-house synthesis, tunnel synthesis.
func Build(layout []string) (*Map, error) {
	if len(layout) == 0 {
		return nil, fmt.Errorf("%w: empty board layout", gameerr.ErrParse)
	}
	height := len(layout)
	width := len(layout[0])
	for y, row := range layout {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has length %d, want %d", gameerr.ErrParse, y, len(row), width)
		}
	}

	tiles := make([][]MapTile, width)
	for x := range tiles {
		tiles[x] = make([]MapTile, height)
	}

	var (
		spawn      cell
		haveSpawn  bool
		doorCells  []cell
		tunnelCells []cell
	)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			ch := layout[y][x]
			var tile MapTile
			switch ch {
			case '#':
				tile = TileWall
			case '.':
				tile = TilePellet
			case 'o':
				tile = TilePowerPellet
			case ' ':
				tile = TileEmpty
			case 'T':
				tile = TileTunnel
				tunnelCells = append(tunnelCells, cell{x, y, tile})
			case 'X':
				tile = TileEmpty
				if haveSpawn {
					return nil, fmt.Errorf("%w: more than one Pac-Man spawn marker", gameerr.ErrParse)
				}
				spawn, haveSpawn = cell{x, y, tile}, true
			case '=':
				tile = TileWall
				doorCells = append(doorCells, cell{x, y, tile})
			default:
				return nil, fmt.Errorf("%w: unknown character %q at (%d,%d)", gameerr.ErrParse, ch, x, y)
			}
			tiles[x][y] = tile
		}
	}

	if !haveSpawn {
		return nil, fmt.Errorf("%w: no Pac-Man spawn marker in layout", gameerr.ErrMap)
	}
	if len(tunnelCells) != 2 {
		return nil, fmt.Errorf("%w: expected exactly 2 tunnel endpoints, got %d", gameerr.ErrParse, len(tunnelCells))
	}
	if len(doorCells) != 2 {
		return nil, fmt.Errorf("%w: expected exactly 2 house-door cells, got %d", gameerr.ErrParse, len(doorCells))
	}
	if !(doorCells[0].y == doorCells[1].y && abs(doorCells[0].x-doorCells[1].x) == 1) {
		return nil, fmt.Errorf("%w: house-door cells must be horizontally consecutive", gameerr.ErrParse)
	}

	g := graph.New()
	gridToNode := make(map[[2]int]graph.NodeId)

	walkable := func(t MapTile) bool {
		return t == TileEmpty || t == TilePellet || t == TilePowerPellet || t == TileTunnel
	}
	cellPos := func(x, y int) mgl64.Vec2 {
		return mgl64.Vec2{float64(x)*CellSize + CellSize/2, float64(y)*CellSize + CellSize/2}
	}

	// Step 2: BFS flood fill from Pac-Man's spawn.
	type queued struct{ x, y int }
	visited := make(map[[2]int]bool)
	queue := []queued{{spawn.x, spawn.y}}
	visited[[2]int{spawn.x, spawn.y}] = true
	id := g.AddNode(cellPos(spawn.x, spawn.y))
	g.IndexCoord(spawn.x, spawn.y, id)
	gridToNode[[2]int{spawn.x, spawn.y}] = id

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curId, _ := g.NodeAt(cur.x, cur.y)

		for d := graph.Direction(0); d < 4; d++ {
			dx, dy := d.Delta()
			nx, ny := cur.x+dx, cur.y+dy
			if nx < 0 || ny < 0 || nx >= width || ny >= height {
				continue
			}
			if !walkable(tiles[nx][ny]) {
				continue
			}
			key := [2]int{nx, ny}
			var nId graph.NodeId
			if !visited[key] {
				visited[key] = true
				nId = g.AddNode(cellPos(nx, ny))
				g.IndexCoord(nx, ny, nId)
				gridToNode[key] = nId
				queue = append(queue, queued{nx, ny})
			} else {
				nId, _ = g.NodeAt(nx, ny)
			}
			if !g.HasEdge(curId, d) {
				g.Connect(curId, nId, d, CellSize, graph.All, false)
			}
			if !g.HasEdge(nId, d.Opposite()) {
				g.Connect(nId, curId, d.Opposite(), CellSize, graph.All, false)
			}
		}
	}

	// Step 3: closure pass — catch edges the BFS ordering missed.
	for key, n := range gridToNode {
		x, y := key[0], key[1]
		for d := graph.Direction(0); d < 4; d++ {
			if g.HasEdge(n, d) {
				continue
			}
			dx, dy := d.Delta()
			nx, ny := x+dx, y+dy
			other, ok := gridToNode[[2]int{nx, ny}]
			if !ok {
				continue
			}
			g.Connect(n, other, d, CellSize, graph.All, false)
		}
	}

	start := StartPositions{Pacman: gridToNode[[2]int{spawn.x, spawn.y}]}

	if err := buildHouse(g, gridToNode, doorCells, &start); err != nil {
		return nil, err
	}
	buildTunnels(g, gridToNode, tunnelCells, width, height)

	return &Map{
		Graph:      g,
		GridToNode: gridToNode,
		Start:      start,
		Tiles:      tiles,
		Width:      width,
		Height:     height,
	}, nil
}

// buildHouse synthesizes the ghost-house entrance node and its three
// vertical lines, per spec §4.1 step 4.
func buildHouse(g *graph.Graph, gridToNode map[[2]int]graph.NodeId, doorCells []cell, start *StartPositions) error {
	left, right := doorCells[0], doorCells[1]
	if left.x > right.x {
		left, right = right, left
	}
	leftFlank, leftOk := gridToNode[[2]int{left.x - 1, left.y}]
	rightFlank, rightOk := gridToNode[[2]int{right.x + 1, right.y}]
	if !leftOk || !rightOk {
		return fmt.Errorf("%w: house door is not flanked by walkable cells on both sides", gameerr.ErrMap)
	}

	doorY := float64(left.y)*CellSize + CellSize/2
	doorMidX := (float64(left.x)*CellSize + CellSize/2 + float64(right.x)*CellSize + CellSize/2) / 2

	entrance := g.AddNode(mgl64.Vec2{doorMidX, doorY})
	g.Connect(entrance, leftFlank, graph.Left, CellSize, graph.All, true)
	g.Connect(entrance, rightFlank, graph.Right, CellSize, graph.All, true)

	// Three vertical lines of three nodes each: left (-2 cells), center (3
	// cells below the door), right (+2 cells).
	centerBelowY := doorY + 3*CellSize
	makeLine := func(x float64) (top, center, bottom graph.NodeId) {
		top = g.AddNode(mgl64.Vec2{x, centerBelowY - houseLineSpacing})
		center = g.AddNode(mgl64.Vec2{x, centerBelowY})
		bottom = g.AddNode(mgl64.Vec2{x, centerBelowY + houseLineSpacing})
		g.Connect(top, center, graph.Down, houseLineSpacing, graph.Ghost, true)
		g.Connect(center, bottom, graph.Down, houseLineSpacing, graph.Ghost, true)
		return
	}

	leftX := doorMidX - 2*CellSize
	rightX := doorMidX + 2*CellSize

	_, leftCenter, _ := makeLine(leftX)
	centerTop, centerCenter, _ := makeLine(doorMidX)
	_, rightCenter, _ := makeLine(rightX)

	g.Connect(leftCenter, centerCenter, graph.Right, 2*CellSize, graph.Ghost, true)
	g.Connect(centerCenter, rightCenter, graph.Right, 2*CellSize, graph.Ghost, true)

	// The entrance's downward edge into the house is GHOST-only; Pac-Man
	// never has an edge through the door.
	g.Connect(entrance, centerTop, graph.Down, CellSize, graph.Ghost, true)

	start.Pinky = leftCenter
	start.Inky = rightCenter
	start.Clyde = centerCenter
	start.Blinky = entrance
	return nil
}

// buildTunnels synthesizes the hidden off-grid nodes and the zero-distance
// wraparound edge between them, per spec §4.1 step 5.
func buildTunnels(g *graph.Graph, gridToNode map[[2]int]graph.NodeId, tunnelCells []cell, width, height int) {
	type hidden struct {
		id  graph.NodeId
		dir graph.Direction
	}
	var hiddens [2]hidden

	for i, tc := range tunnelCells {
		var dir graph.Direction
		switch {
		case tc.x == 0:
			dir = graph.Left
		case tc.x == width-1:
			dir = graph.Right
		case tc.y == 0:
			dir = graph.Up
		default:
			dir = graph.Down
		}
		dx, dy := dir.Delta()
		hiddenPos := mgl64.Vec2{
			float64(tc.x)*CellSize + CellSize/2 + float64(dx*2*CellSize),
			float64(tc.y)*CellSize + CellSize/2 + float64(dy*2*CellSize),
		}
		hid := g.AddNode(hiddenPos)
		mouth := gridToNode[[2]int{tc.x, tc.y}]
		g.Connect(mouth, hid, dir, CellSize, graph.All, true)
		hiddens[i] = hidden{hid, dir}
	}

	g.Connect(hiddens[0].id, hiddens[1].id, hiddens[0].dir, 0, graph.All, true)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

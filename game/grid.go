package game

import (
	"fmt"
	"math"

	"github.com/dominikbraun/graph"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/outpost/engine/path"
	"github.com/memmaker/outpost/engine/util"
	"github.com/pkg/errors"
)

type Terrain uint8

const (
	TerrainGround Terrain = iota
	TerrainRock
	TerrainWater
)

func (t Terrain) IsPassable() bool {
	return t == TerrainGround
}

const (
	straightCost = 10
	diagonalCost = 14
)

var neighborOffsets = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// Grid is the terrain of a level. Tile (x, y) covers [x, x+1) × [y, y+1) in world units.
// Walkable tiles are the vertices of a weighted graph; blocking a tile drops its edges.
type Grid struct {
	width, height int
	terrain       []Terrain
	occupiedBy    map[[2]int]int
	walk          graph.Graph[[2]int, [2]int]
}

func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("game: invalid grid size %dx%d", width, height))
	}
	g := &Grid{
		width:      width,
		height:     height,
		terrain:    make([]Terrain, width*height),
		occupiedBy: make(map[[2]int]int),
		walk:       graph.New(func(t [2]int) [2]int { return t }, graph.Weighted()),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			_ = g.walk.AddVertex([2]int{x, y})
		}
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for _, offset := range neighborOffsets {
				g.syncEdge([2]int{x, y}, [2]int{x + offset[0], y + offset[1]})
			}
		}
	}
	return g
}

func (g *Grid) Width() int {
	return g.width
}

func (g *Grid) Height() int {
	return g.height
}

func (g *Grid) Contains(tile [2]int) bool {
	return tile[0] >= 0 && tile[1] >= 0 && tile[0] < g.width && tile[1] < g.height
}

func (g *Grid) Terrain(tile [2]int) Terrain {
	if !g.Contains(tile) {
		return TerrainRock
	}
	return g.terrain[tile[1]*g.width+tile[0]]
}

func (g *Grid) SetTerrain(tile [2]int, terrain Terrain) {
	if !g.Contains(tile) {
		return
	}
	g.terrain[tile[1]*g.width+tile[0]] = terrain
	g.refreshAround(tile)
}

// SetBlocked marks a tile as taken by a structure. Calls nest: a tile blocked twice needs two
// releases.
func (g *Grid) SetBlocked(tile [2]int, blocked bool) {
	if !g.Contains(tile) {
		return
	}
	if blocked {
		g.occupiedBy[tile]++
	} else if g.occupiedBy[tile] > 1 {
		g.occupiedBy[tile]--
	} else {
		delete(g.occupiedBy, tile)
	}
	g.refreshAround(tile)
}

// IsWalkable is true for tiles inside the grid with passable terrain and no structure.
func (g *Grid) IsWalkable(tile [2]int) bool {
	return g.Contains(tile) && g.Terrain(tile).IsPassable() && g.occupiedBy[tile] == 0
}

func (g *Grid) IsTraversable(pos mgl32.Vec3) bool {
	return g.IsWalkable(TileAt(pos))
}

func (g *Grid) refreshAround(tile [2]int) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			a := [2]int{tile[0] + dx, tile[1] + dy}
			if !g.Contains(a) {
				continue
			}
			for _, offset := range neighborOffsets {
				g.syncEdge(a, [2]int{a[0] + offset[0], a[1] + offset[1]})
			}
		}
	}
}

// canStep is true when a unit may walk directly from a to the adjacent tile b.
// Diagonal steps must not cut the corner of an unwalkable tile.
func (g *Grid) canStep(a, b [2]int) bool {
	if !g.IsWalkable(a) || !g.IsWalkable(b) {
		return false
	}
	if a[0] != b[0] && a[1] != b[1] {
		return g.IsWalkable([2]int{a[0], b[1]}) && g.IsWalkable([2]int{b[0], a[1]})
	}
	return true
}

func stepCost(a, b [2]int) int {
	if a[0] != b[0] && a[1] != b[1] {
		return diagonalCost
	}
	return straightCost
}

func (g *Grid) syncEdge(a, b [2]int) {
	if !g.Contains(a) || !g.Contains(b) {
		return
	}
	if g.canStep(a, b) {
		err := g.walk.AddEdge(a, b, graph.EdgeWeight(stepCost(a, b)))
		if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
			util.LogGameError(fmt.Sprintf("[Grid] adding edge %v-%v: %v", a, b, err))
		}
		return
	}
	err := g.walk.RemoveEdge(a, b)
	if err != nil && !errors.Is(err, graph.ErrEdgeNotFound) {
		util.LogGameError(fmt.Sprintf("[Grid] removing edge %v-%v: %v", a, b, err))
	}
}

// Neighbors returns the tiles a unit can step to from tile. The source itself may be blocked,
// which lets searches start on a structure's footprint.
func (g *Grid) Neighbors(tile [2]int) [][2]int {
	result := make([][2]int, 0, len(neighborOffsets))
	for _, offset := range neighborOffsets {
		n := [2]int{tile[0] + offset[0], tile[1] + offset[1]}
		if !g.IsWalkable(n) {
			continue
		}
		if n[0] != tile[0] && n[1] != tile[1] &&
			(!g.IsWalkable([2]int{tile[0], n[1]}) || !g.IsWalkable([2]int{n[0], tile[1]})) {
			continue
		}
		result = append(result, n)
	}
	return result
}

// TilePath returns the cheapest tile route from start to goal, both included.
func (g *Grid) TilePath(start, goal [2]int) ([][2]int, error) {
	if !g.IsWalkable(start) || !g.IsWalkable(goal) {
		return nil, errors.Errorf("no walkable route from %v to %v", start, goal)
	}
	if start == goal {
		return [][2]int{start}, nil
	}
	route, err := graph.ShortestPath(g.walk, start, goal)
	if err != nil {
		return nil, errors.Wrapf(err, "route from %v to %v", start, goal)
	}
	return route, nil
}

// NextWaypoint returns the point to walk to on the way from from to to. The goal itself is
// returned when the straight line is clear. A blocked goal tile is approached through its
// walkable neighbor closest to from.
func (g *Grid) NextWaypoint(from, to mgl32.Vec3) (mgl32.Vec3, bool) {
	goalTile := TileAt(to)
	if !g.Contains(goalTile) {
		return mgl32.Vec3{}, false
	}
	goal := to
	if !g.IsWalkable(goalTile) {
		neighbor, ok := g.closestWalkableNeighbor(goalTile, from)
		if !ok {
			return mgl32.Vec3{}, false
		}
		goalTile = neighbor
		goal = TileCenter(neighbor)
	}
	startTile := TileAt(from)
	if startTile == goalTile || g.SegmentClear(from, goal) {
		return goal, true
	}
	if !g.IsWalkable(startTile) {
		// standing on a blocked tile, step off it first
		return g.closestWalkableNeighborCenter(startTile, from)
	}
	route, err := g.TilePath(startTile, goalTile)
	if err != nil {
		return mgl32.Vec3{}, false
	}
	for i := len(route) - 1; i > 0; i-- {
		center := TileCenter(route[i])
		if g.SegmentClear(from, center) {
			return center, true
		}
	}
	return TileCenter(route[1]), true
}

func (g *Grid) closestWalkableNeighbor(tile [2]int, near mgl32.Vec3) ([2]int, bool) {
	best := [2]int{}
	bestDist := float32(math.MaxFloat32)
	found := false
	for _, offset := range neighborOffsets {
		n := [2]int{tile[0] + offset[0], tile[1] + offset[1]}
		if !g.IsWalkable(n) {
			continue
		}
		d := TileCenter(n).Sub(near).Len()
		if d < bestDist {
			best, bestDist, found = n, d, true
		}
	}
	return best, found
}

func (g *Grid) closestWalkableNeighborCenter(tile [2]int, near mgl32.Vec3) (mgl32.Vec3, bool) {
	n, ok := g.closestWalkableNeighbor(tile, near)
	if !ok {
		return mgl32.Vec3{}, false
	}
	return TileCenter(n), true
}

// SegmentClear walks the tiles the straight line from a to b crosses and reports whether all
// of them are walkable. Passing exactly through a corner needs both tiles beside it free.
func (g *Grid) SegmentClear(a, b mgl32.Vec3) bool {
	tile := TileAt(a)
	end := TileAt(b)
	if !g.IsWalkable(tile) {
		return false
	}
	x0, y0 := float64(a.X()), float64(a.Y())
	dx, dy := float64(b.X())-x0, float64(b.Y())-y0
	stepX, tMaxX, tDeltaX := traversalAxis(tile[0], x0, dx)
	stepY, tMaxY, tDeltaY := traversalAxis(tile[1], y0, dy)
	maxSteps := absInt(end[0]-tile[0]) + absInt(end[1]-tile[1])
	for i := 0; i < maxSteps && tile != end; i++ {
		switch {
		case tMaxX < tMaxY-cornerEpsilon:
			tile[0] += stepX
			tMaxX += tDeltaX
		case tMaxY < tMaxX-cornerEpsilon:
			tile[1] += stepY
			tMaxY += tDeltaY
		default:
			if !g.IsWalkable([2]int{tile[0] + stepX, tile[1]}) || !g.IsWalkable([2]int{tile[0], tile[1] + stepY}) {
				return false
			}
			tile[0] += stepX
			tile[1] += stepY
			tMaxX += tDeltaX
			tMaxY += tDeltaY
		}
		if !g.IsWalkable(tile) {
			return false
		}
	}
	return tile == end
}

const cornerEpsilon = 1e-9

// traversalAxis returns the step direction along one axis, the segment parameter of the first
// tile border crossing and the parameter distance between two crossings.
func traversalAxis(tile int, origin, delta float64) (step int, tMax, tDelta float64) {
	switch {
	case delta > 0:
		return 1, (float64(tile+1) - origin) / delta, 1 / delta
	case delta < 0:
		return -1, (float64(tile) - origin) / delta, -1 / delta
	}
	return 0, math.Inf(1), math.Inf(1)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// NearestFreeTile returns the cheapest walkable tile around from that occupied rejects,
// searching no further than maxCost. Equal costs are broken by row, then column.
func (g *Grid) NearestFreeTile(from [2]int, maxCost float64, occupied func([2]int) bool) ([2]int, bool) {
	dist, _ := path.Dijkstra[[2]int](path.NewNode(from), maxCost, gridPather{g})
	best := [2]int{}
	bestCost := math.MaxFloat64
	found := false
	for tile, cost := range dist {
		if !g.IsWalkable(tile) || (occupied != nil && occupied(tile)) {
			continue
		}
		if !found || cost < bestCost || (cost == bestCost && tileLess(tile, best)) {
			best, bestCost, found = tile, cost, true
		}
	}
	return best, found
}

func tileLess(a, b [2]int) bool {
	if a[1] != b[1] {
		return a[1] < b[1]
	}
	return a[0] < b[0]
}

// gridPather adapts the grid to path.Dijkstra.
type gridPather struct {
	grid *Grid
}

func (p gridPather) GetNeighbors(tile [2]int) [][2]int {
	return p.grid.Neighbors(tile)
}

func (p gridPather) GetCost(current, neighbor [2]int) float64 {
	return float64(stepCost(current, neighbor))
}

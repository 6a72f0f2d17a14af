package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// wallGrid has a rock wall at x = 5 from y = 0 to y = 8, leaving a gap at the top row.
func wallGrid() *Grid {
	grid := NewGrid(10, 10)
	for y := 0; y < 9; y++ {
		grid.SetTerrain([2]int{5, y}, TerrainRock)
	}
	return grid
}

func TestTileMapping(t *testing.T) {
	if got := TileAt(mgl32.Vec3{2.99, 0.01, 0}); got != [2]int{2, 0} {
		t.Errorf("expected tile 2,0, got %v", got)
	}
	if got := TileAt(mgl32.Vec3{-0.5, 1, 0}); got != [2]int{-1, 1} {
		t.Errorf("expected tile -1,1, got %v", got)
	}
	if got := TileCenter([2]int{3, 4}); got != (mgl32.Vec3{3.5, 4.5, 0}) {
		t.Errorf("unexpected center %v", got)
	}
}

func TestSegmentClear(t *testing.T) {
	grid := wallGrid()
	tests := []struct {
		name string
		a, b mgl32.Vec3
		want bool
	}{
		{"open row", mgl32.Vec3{0.5, 9.5, 0}, mgl32.Vec3{9.5, 9.5, 0}, true},
		{"through the wall", mgl32.Vec3{2.5, 2.5, 0}, mgl32.Vec3{8.5, 2.5, 0}, false},
		{"along the wall", mgl32.Vec3{4.5, 0.5, 0}, mgl32.Vec3{4.5, 8.5, 0}, true},
		{"into the wall", mgl32.Vec3{4.5, 4.5, 0}, mgl32.Vec3{5.5, 4.5, 0}, false},
		{"diagonal past the wall end", mgl32.Vec3{4.5, 8.5, 0}, mgl32.Vec3{5.5, 9.5, 0}, false},
		{"same tile", mgl32.Vec3{1.2, 1.2, 0}, mgl32.Vec3{1.8, 1.8, 0}, true},
	}
	for _, tt := range tests {
		if got := grid.SegmentClear(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestTilePathAvoidsWall(t *testing.T) {
	grid := wallGrid()
	route, err := grid.TilePath([2]int{2, 2}, [2]int{8, 2})
	if err != nil {
		t.Fatal(err)
	}
	if route[0] != [2]int{2, 2} || route[len(route)-1] != [2]int{8, 2} {
		t.Errorf("route does not connect start and goal: %v", route)
	}
	crossedGap := false
	for i, tile := range route {
		if !grid.IsWalkable(tile) {
			t.Fatalf("route steps on blocked tile %v", tile)
		}
		if tile == [2]int{5, 9} {
			crossedGap = true
		}
		if i > 0 {
			dx, dy := absInt(tile[0]-route[i-1][0]), absInt(tile[1]-route[i-1][1])
			if dx > 1 || dy > 1 {
				t.Fatalf("route jumps from %v to %v", route[i-1], tile)
			}
		}
	}
	if !crossedGap {
		t.Errorf("route did not pass the gap: %v", route)
	}
}

func TestBlockingRemovesEdges(t *testing.T) {
	grid := NewGrid(3, 1)
	grid.SetBlocked([2]int{1, 0}, true)
	if _, err := grid.TilePath([2]int{0, 0}, [2]int{2, 0}); err == nil {
		t.Fatal("expected no route through a blocked corridor")
	}
	grid.SetBlocked([2]int{1, 0}, false)
	route, err := grid.TilePath([2]int{0, 0}, [2]int{2, 0})
	if err != nil {
		t.Fatalf("expected a route after unblocking: %v", err)
	}
	if len(route) != 3 {
		t.Errorf("expected a 3 tile route, got %v", route)
	}
}

func TestNoCornerCutting(t *testing.T) {
	grid := NewGrid(2, 2)
	grid.SetTerrain([2]int{1, 0}, TerrainWater)
	if _, err := grid.TilePath([2]int{0, 0}, [2]int{1, 1}); err != nil {
		t.Fatalf("expected the detour over 0,1: %v", err)
	}
	grid.SetTerrain([2]int{0, 1}, TerrainWater)
	if _, err := grid.TilePath([2]int{0, 0}, [2]int{1, 1}); err == nil {
		t.Error("diagonal step squeezed between two blocked tiles")
	}
}

func TestNextWaypoint(t *testing.T) {
	grid := wallGrid()
	from := mgl32.Vec3{2.5, 2.5, 0}

	open := mgl32.Vec3{4.5, 6.5, 0}
	if waypoint, ok := grid.NextWaypoint(from, open); !ok || waypoint != open {
		t.Errorf("clear line: expected the goal, got %v %v", waypoint, ok)
	}

	behind := mgl32.Vec3{8.5, 2.5, 0}
	waypoint, ok := grid.NextWaypoint(from, behind)
	if !ok {
		t.Fatal("expected a waypoint around the wall")
	}
	if waypoint == behind {
		t.Error("waypoint goes through the wall")
	}
	if !grid.SegmentClear(from, waypoint) {
		t.Errorf("waypoint %v is not in sight", waypoint)
	}

	if _, ok := grid.NextWaypoint(from, mgl32.Vec3{20, 2, 0}); ok {
		t.Error("goal outside the grid accepted")
	}

	// a blocked goal is approached through its closest free neighbor
	wall := TileCenter([2]int{5, 2})
	waypoint, ok = grid.NextWaypoint(mgl32.Vec3{4.5, 2.5, 0}, wall)
	if !ok || waypoint != TileCenter([2]int{4, 2}) {
		t.Errorf("expected the neighbor 4,2, got %v %v", waypoint, ok)
	}
}

func TestMoveAroundWall(t *testing.T) {
	w := NewWorld(wallGrid(), DefaultDefinitions())
	unit := spawnAt(t, w, "worker", "blue", [2]int{2, 2})
	destination := mgl32.Vec3{8.5, 2.5, 0}
	w.Command(unit.ID, NewMoveAction(destination))

	for step := 1; step <= 200 && unit.OrderCount() > 0; step++ {
		w.Tick(float64(step) * 0.1)
	}
	if unit.OrderCount() != 0 {
		t.Fatalf("move did not complete, unit at %v", unit.GetPosition())
	}
	if unit.DistanceTo(destination) > 0.05 {
		t.Errorf("stopped at %v", unit.GetPosition())
	}
}

func TestNearestFreeTile(t *testing.T) {
	grid := NewGrid(5, 5)
	taken := map[[2]int]bool{{2, 2}: true, {3, 2}: true}
	occupied := func(tile [2]int) bool { return taken[tile] }

	tile, ok := grid.NearestFreeTile([2]int{2, 2}, 60, occupied)
	if !ok || tile != [2]int{2, 1} {
		t.Errorf("expected 2,1, got %v %v", tile, ok)
	}

	tile, ok = grid.NearestFreeTile([2]int{2, 2}, 60, nil)
	if !ok || tile != [2]int{2, 2} {
		t.Errorf("expected the start tile, got %v %v", tile, ok)
	}
}

func TestNearestFreeTileFromBlockedTile(t *testing.T) {
	grid := NewGrid(3, 3)
	grid.SetBlocked([2]int{1, 1}, true)
	tile, ok := grid.NearestFreeTile([2]int{1, 1}, 60, nil)
	if !ok || tile != [2]int{1, 0} {
		t.Errorf("expected 1,0, got %v %v", tile, ok)
	}
}

func TestNearestFreeTileRespectsMaxCost(t *testing.T) {
	grid := NewGrid(10, 1)
	occupied := func(tile [2]int) bool { return tile[0] < 8 }
	if tile, ok := grid.NearestFreeTile([2]int{0, 0}, 60, occupied); ok {
		t.Errorf("found %v beyond the search cost", tile)
	}
	if tile, ok := grid.NearestFreeTile([2]int{0, 0}, 80, occupied); !ok || tile != [2]int{8, 0} {
		t.Errorf("expected 8,0, got %v %v", tile, ok)
	}
}

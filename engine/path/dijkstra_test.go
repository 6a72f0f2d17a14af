package path

import (
	"slices"
	"testing"
)

// lineGraph is 0 - 1 - 2 - ... - n-1 with unit costs and an expensive shortcut 0 -> n-1.
type lineGraph struct {
	n        int
	shortcut float64
}

func (g lineGraph) GetNeighbors(node int) []int {
	var result []int
	if node > 0 {
		result = append(result, node-1)
	}
	if node < g.n-1 {
		result = append(result, node+1)
	}
	if node == 0 && g.shortcut > 0 {
		result = append(result, g.n-1)
	}
	return result
}

func (g lineGraph) GetCost(current, neighbor int) float64 {
	if current == 0 && neighbor == g.n-1 {
		return g.shortcut
	}
	return 1
}

func TestDijkstraRespectsMaxCost(t *testing.T) {
	dist, _ := Dijkstra[int](NewNode(0), 3, lineGraph{n: 10})
	if len(dist) != 4 {
		t.Fatalf("expected nodes 0..3 to be reached, got %v", dist)
	}
	for node := 0; node <= 3; node++ {
		if dist[node] != float64(node) {
			t.Errorf("dist[%d] = %v, want %d", node, dist[node], node)
		}
	}
}

func TestDijkstraPrefersCheaperRoute(t *testing.T) {
	graph := lineGraph{n: 6, shortcut: 2}
	dist, prev := Dijkstra[int](NewNode(0), 100, graph)
	if dist[5] != 2 {
		t.Fatalf("dist[5] = %v, want 2 via shortcut", dist[5])
	}
	if dist[4] != 3 {
		t.Errorf("dist[4] = %v, want 3 (shortcut then back)", dist[4])
	}
	if got := PathTo(prev, 0, 4); !slices.Equal(got, []int{5, 4}) {
		t.Errorf("PathTo(4) = %v, want [5 4]", got)
	}
}

func TestPathToUnreached(t *testing.T) {
	_, prev := Dijkstra[int](NewNode(0), 1, lineGraph{n: 10})
	if got := PathTo(prev, 0, 7); got != nil {
		t.Errorf("PathTo(7) = %v, want nil", got)
	}
	if got := PathTo(prev, 0, 0); got != nil {
		t.Errorf("PathTo(start) = %v, want nil", got)
	}
}

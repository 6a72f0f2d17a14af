package path

import (
	"math"
)

// DijkstraSource describes the graph Dijkstra walks. Neighbors and costs are generated on demand.
type DijkstraSource[T any] interface {
	GetNeighbors(node T) []T
	GetCost(currentNode T, neighbor T) float64
}

// Dijkstra explores every node reachable from source with a total cost of at most maxCost.
// dist holds the cost of the cheapest known route to each reached node (source included, with 0),
// prev the predecessor on that route.
func Dijkstra[T comparable](source *PqItem[T], maxCost float64, dataSource DijkstraSource[T]) (dist map[T]float64, prev map[T]T) {
	dist = make(map[T]float64)
	prev = make(map[T]T)
	queued := make(map[T]PathNode[T])
	dist[source.GetValue()] = 0
	getDist := func(n T) float64 {
		if d, ok := dist[n]; ok {
			return d
		}
		return math.MaxFloat64
	}
	source.SetPriority(0)
	Q := NewPriorityQueue([]PathNode[T]{source})
	queued[source.GetValue()] = source
	for Q.Len() > 0 {
		currentNode := Q.PopNode()
		current := currentNode.GetValue()
		delete(queued, current)
		for _, neighbor := range dataSource.GetNeighbors(current) {
			neighborDist := getDist(current) + dataSource.GetCost(current, neighbor)
			if neighborDist > maxCost || neighborDist >= getDist(neighbor) {
				continue
			}
			dist[neighbor] = neighborDist
			prev[neighbor] = current
			if existingNode, ok := queued[neighbor]; ok {
				Q.Update(existingNode, neighborDist)
				continue
			}
			neighborNode := NewNode(neighbor)
			neighborNode.SetPriority(neighborDist)
			queued[neighbor] = neighborNode
			Q.PushNode(neighborNode)
		}
	}
	return
}

// PathTo walks prev back from target and returns the route without the start node.
// It returns nil if target was not reached.
func PathTo[T comparable](prev map[T]T, start, target T) []T {
	if start == target {
		return nil
	}
	if _, ok := prev[target]; !ok {
		return nil
	}
	var reversed []T
	for current := target; current != start; current = prev[current] {
		reversed = append(reversed, current)
	}
	route := make([]T, len(reversed))
	for i, node := range reversed {
		route[len(reversed)-1-i] = node
	}
	return route
}

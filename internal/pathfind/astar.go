// Package pathfind implements A* search over any graph with comparable nodes.
package pathfind

import (
	"slices"

	"github.com/zyedidia/generic/heap"
)

// Edge is a step to a neighbouring node and its cost.
type Edge[N comparable] struct {
	To   N
	Cost int
}

type openNode[N comparable] struct {
	node N
	g    int
	f    float64
	seq  int
}

// AStar searches from start until goal accepts a node. neighbors expands a
// node and heuristic estimates the remaining cost. It returns the path
// including start and the goal node, its total cost, and whether a goal was
// reached. Ties on f are broken by insertion order so results are stable.
func AStar[N comparable](
	start N,
	neighbors func(N) []Edge[N],
	heuristic func(N) float64,
	goal func(N) bool,
) ([]N, int, bool) {
	open := heap.New(func(a, b openNode[N]) bool {
		if a.f != b.f {
			return a.f < b.f
		}
		return a.seq < b.seq
	})
	gScore := map[N]int{start: 0}
	cameFrom := make(map[N]N)
	closed := make(map[N]bool)

	seq := 0
	open.Push(openNode[N]{node: start, f: heuristic(start)})

	for open.Size() > 0 {
		cur, _ := open.Pop()
		if closed[cur.node] || cur.g > gScore[cur.node] {
			continue
		}
		if goal(cur.node) {
			return reconstruct(cameFrom, start, cur.node), cur.g, true
		}
		closed[cur.node] = true

		for _, e := range neighbors(cur.node) {
			if closed[e.To] {
				continue
			}
			g := cur.g + e.Cost
			if old, seen := gScore[e.To]; seen && g >= old {
				continue
			}
			gScore[e.To] = g
			cameFrom[e.To] = cur.node
			seq++
			open.Push(openNode[N]{node: e.To, g: g, f: float64(g) + heuristic(e.To), seq: seq})
		}
	}
	return nil, 0, false
}

func reconstruct[N comparable](cameFrom map[N]N, start, end N) []N {
	path := []N{end}
	for cur := end; cur != start; {
		cur = cameFrom[cur]
		path = append(path, cur)
	}
	slices.Reverse(path)
	return path
}

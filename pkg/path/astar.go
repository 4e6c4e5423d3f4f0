package path

import (
	"container/heap"

	"github.com/gravitas-games/hexgeom/pkg/hex"
)

// AStar computes a shortest path using the A* algorithm.
// - start, goal: grid points
// - h: admissible heuristic (e.g., hex.Distance to goal)
// - neighbors: returns adjacent points to explore
// - cost: edge cost between two adjacent points (must be >=1)
// Returns the path including start and goal, or nil if no path exists.
func AStar(start, goal hex.Point,
	h func(a hex.Point) int,
	neighbors func(a hex.Point) []hex.Point,
	cost func(a, b hex.Point) int,
) []hex.Point {
	if start == goal {
		return []hex.Point{start}
	}
	open := &nodePQ{}
	heap.Init(open)
	var seq int
	push := func(a hex.Point, f int) {
		heap.Push(open, &pqNode{a: a, f: f, seq: seq})
		seq++
	}

	g := map[hex.Point]int{start: 0}
	came := map[hex.Point]hex.Point{}
	closed := map[hex.Point]bool{}
	push(start, h(start))

	for open.Len() > 0 {
		cur := heap.Pop(open).(*pqNode).a
		if closed[cur] {
			continue
		}
		closed[cur] = true
		if cur == goal {
			path := []hex.Point{goal}
			for k := goal; k != start; {
				k = came[k]
				path = append(path, k)
			}
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path
		}
		for _, nb := range neighbors(cur) {
			if closed[nb] {
				continue
			}
			step := cost(cur, nb)
			if step <= 0 {
				step = 1
			}
			tentative := g[cur] + step
			old, ok := g[nb]
			if !ok || tentative < old {
				g[nb] = tentative
				came[nb] = cur
				push(nb, tentative+h(nb))
			}
		}
	}
	return nil
}

// pqNode orders by f, then by insertion so equal-cost runs stay deterministic.
type pqNode struct {
	a   hex.Point
	f   int
	seq int
}

type nodePQ []*pqNode

func (p nodePQ) Len() int { return len(p) }
func (p nodePQ) Less(i, j int) bool {
	if p[i].f != p[j].f {
		return p[i].f < p[j].f
	}
	return p[i].seq < p[j].seq
}
func (p nodePQ) Swap(i, j int) { p[i], p[j] = p[j], p[i] }
func (p *nodePQ) Push(x any) { *p = append(*p, x.(*pqNode)) }
func (p *nodePQ) Pop() any {
	old := *p
	n := len(old)
	x := old[n-1]
	*p = old[:n-1]
	return x
}

// HeuristicTo returns the hex distance heuristic towards goal.
func HeuristicTo(goal hex.Point) func(a hex.Point) int {
	return func(a hex.Point) int { return hex.Distance(a, goal) }
}

// UnitCost charges one per step.
func UnitCost(a, b hex.Point) int { return 1 }

// NeighborsWithinDisc limits neighbors to the disc of radius r around center
// and drops any point for which passable returns false. A nil passable allows
// everything.
func NeighborsWithinDisc(center hex.Point, r int, passable func(a hex.Point) bool) func(a hex.Point) []hex.Point {
	return func(a hex.Point) []hex.Point {
		out := make([]hex.Point, 0, 6)
		for _, b := range a.Neighbors() {
			if hex.Distance(center, b) > r {
				continue
			}
			if passable != nil && !passable(b) {
				continue
			}
			out = append(out, b)
		}
		return out
	}
}

// Around finds a shortest path from `from` to `to` that avoids blocked points
// and never leaves the disc of radius r around center. With nothing blocked
// it falls back to Between. Returns nil when the endpoints are blocked, lie
// outside the disc, or are cut off from each other.
func Around(from, to hex.Point, blocked map[hex.Point]bool, center hex.Point, r int) []hex.Point {
	if blocked[from] || blocked[to] {
		return nil
	}
	if hex.Distance(center, from) > r || hex.Distance(center, to) > r {
		return nil
	}
	if len(blocked) == 0 {
		return Between(from, to)
	}
	passable := func(a hex.Point) bool { return !blocked[a] }
	return AStar(from, to, HeuristicTo(to), NeighborsWithinDisc(center, r, passable), UnitCost)
}

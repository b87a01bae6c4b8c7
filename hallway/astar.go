package hallway

import (
	"container/heap"

	"github.com/hollowspire/dungeongen/geom"
)

type pqEntry struct {
	cell geom.Cell
	f, g int
}

// pqueue is a binary heap ordered by f, then g, then lexicographic cell
// order, so equal-cost expansions pop in a fixed order.
type pqueue []pqEntry

func (q pqueue) Len() int { return len(q) }
func (q pqueue) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	if q[i].g != q[j].g {
		return q[i].g < q[j].g
	}
	return q[i].cell.Less(q[j].cell)
}
func (q pqueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *pqueue) Push(x interface{}) {
	*q = append(*q, x.(pqEntry))
}
func (q *pqueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// astar finds a 4-connected shortest path from start to goal, treating
// any cell in occupied as an obstacle except start and goal themselves.
// The search is bounded to a box around start/goal padded by margin
// cells, since the grid has no fixed extent; a path that would require
// leaving that box is reported as unreachable the same as a genuinely
// blocked path.
func astar(start, goal geom.Cell, occupied map[geom.Cell]struct{}) ([]geom.Cell, bool) {
	margin := start.ManhattanDistance(goal) + 8
	minX := min(start.X, goal.X) - margin
	maxX := max(start.X, goal.X) + margin
	minY := min(start.Y, goal.Y) - margin
	maxY := max(start.Y, goal.Y) + margin
	inBounds := func(c geom.Cell) bool {
		return c.X >= minX && c.X <= maxX && c.Y >= minY && c.Y <= maxY
	}

	if start == goal {
		return []geom.Cell{start}, true
	}

	gScore := map[geom.Cell]int{start: 0}
	cameFrom := map[geom.Cell]geom.Cell{}
	closed := map[geom.Cell]bool{}

	pq := &pqueue{{cell: start, f: start.ManhattanDistance(goal), g: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(pqEntry)
		if closed[cur.cell] {
			continue
		}
		if cur.g != gScore[cur.cell] {
			continue
		}
		if cur.cell == goal {
			return reconstructPath(cameFrom, start, goal), true
		}
		closed[cur.cell] = true

		for _, e := range geom.AllEdges {
			next := cur.cell.Neighbor(e)
			if !inBounds(next) {
				continue
			}
			if next != goal {
				if _, blocked := occupied[next]; blocked {
					continue
				}
			}
			tentativeG := cur.g + 1
			if best, ok := gScore[next]; ok && tentativeG >= best {
				continue
			}
			gScore[next] = tentativeG
			cameFrom[next] = cur.cell
			heap.Push(pq, pqEntry{cell: next, g: tentativeG, f: tentativeG + next.ManhattanDistance(goal)})
		}
	}
	return nil, false
}

func reconstructPath(cameFrom map[geom.Cell]geom.Cell, start, goal geom.Cell) []geom.Cell {
	path := []geom.Cell{goal}
	for cur := goal; cur != start; {
		prev := cameFrom[cur]
		path = append(path, prev)
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

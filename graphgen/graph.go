package graphgen

import (
	"fmt"
	"sort"
)

// RoomNode is a node in a FloorGraph. Ids are dense 0..n-1; node 0 is
// always the spawn. DistanceFromStart and ConnectionCount are derived
// fields computed once after all edges are known; OnCriticalPath is set
// later by the assign package once the boss node is chosen.
type RoomNode struct {
	ID                int
	DistanceFromStart int
	OnCriticalPath    bool
	ConnectionCount   int
}

// Connection is an undirected edge between two nodes, always stored with
// A < B so (a,b) pairs are unique and comparable.
type Connection struct {
	A, B            int
	RequiresHallway bool
}

// FloorGraph is the topology produced by a graph generation algorithm: a
// connected, undirected graph over room nodes 0..n-1. Connections is
// insertion ordered (as produced by the algorithm) but Nodes is always
// ordered by ascending id.
type FloorGraph struct {
	Nodes        []RoomNode
	Connections  []Connection
	StartNodeID  int
	BossNodeID   int
	CriticalPath []int
}

// New builds a FloorGraph from a node count and a set of undirected edges,
// computing BFS distances from node 0 and connection counts. edges is a
// list of (a,b) pairs in any order; duplicates and self-loops are rejected.
// This is the only place distances and connection counts are computed:
// derived fields are built once into an immutable node table rather than
// mutated in place.
func New(n int, edges [][2]int) (*FloorGraph, error) {
	if n < 2 {
		return nil, fmt.Errorf("graphgen: room count must be >= 2, got %d", n)
	}

	seen := make(map[[2]int]bool, len(edges))
	conns := make([]Connection, 0, len(edges))
	adjacency := make([][]int, n)

	for _, e := range edges {
		a, b := e[0], e[1]
		if a == b {
			return nil, fmt.Errorf("graphgen: self-loop on node %d", a)
		}
		if a < 0 || a >= n || b < 0 || b >= n {
			return nil, fmt.Errorf("graphgen: edge (%d,%d) out of range for %d nodes", a, b, n)
		}
		if a > b {
			a, b = b, a
		}
		key := [2]int{a, b}
		if seen[key] {
			continue
		}
		seen[key] = true
		conns = append(conns, Connection{A: a, B: b})
		adjacency[a] = append(adjacency[a], b)
		adjacency[b] = append(adjacency[b], a)
	}

	for i := range adjacency {
		sort.Ints(adjacency[i])
	}

	distances := bfsDistances(n, adjacency, 0)

	nodes := make([]RoomNode, n)
	for id := 0; id < n; id++ {
		nodes[id] = RoomNode{
			ID:                id,
			DistanceFromStart: distances[id],
			ConnectionCount:   len(adjacency[id]),
		}
	}

	fg := &FloorGraph{
		Nodes:       nodes,
		Connections: conns,
		StartNodeID: 0,
		BossNodeID:  -1,
	}
	if err := fg.checkConnected(distances); err != nil {
		return nil, err
	}
	return fg, nil
}

func (fg *FloorGraph) checkConnected(distances []int) error {
	for id, d := range distances {
		if d < 0 {
			return fmt.Errorf("graphgen: internal invariant violated, node %d unreachable from start", id)
		}
	}
	return nil
}

// bfsDistances computes the shortest-path distance in hops from start to
// every node, using ascending-id adjacency order so ties in BFS frontier
// expansion are resolved deterministically. Unreachable nodes get -1,
// which checkConnected treats as a programming error (graphs must always
// come out connected).
func bfsDistances(n int, adjacency [][]int, start int) []int {
	dist := make([]int, n)
	for i := range dist {
		dist[i] = -1
	}
	dist[start] = 0
	queue := []int{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adjacency[cur] {
			if dist[next] == -1 {
				dist[next] = dist[cur] + 1
				queue = append(queue, next)
			}
		}
	}
	return dist
}

// Adjacency rebuilds an ascending-ordered adjacency list from Connections.
// Downstream stages that need repeated neighbor lookups (assignment,
// spatial BFS, clustering) call this once rather than storing mutable
// back-pointers on nodes.
func (fg *FloorGraph) Adjacency() [][]int {
	n := len(fg.Nodes)
	adjacency := make([][]int, n)
	for _, c := range fg.Connections {
		adjacency[c.A] = append(adjacency[c.A], c.B)
		adjacency[c.B] = append(adjacency[c.B], c.A)
	}
	for i := range adjacency {
		sort.Ints(adjacency[i])
	}
	return adjacency
}

// ConnectionIndex returns a lookup from an unordered (a,b) pair to the
// index of its Connection, for stages that need to mark
// RequiresHallway on a specific edge.
func (fg *FloorGraph) ConnectionIndex() map[[2]int]int {
	idx := make(map[[2]int]int, len(fg.Connections))
	for i, c := range fg.Connections {
		idx[[2]int{c.A, c.B}] = i
	}
	return idx
}

// AreConnected reports whether a and b share a graph edge.
func (fg *FloorGraph) AreConnected(a, b int) bool {
	if a > b {
		a, b = b, a
	}
	_, ok := fg.ConnectionIndex()[[2]int{a, b}]
	return ok
}

// ShortestPath returns the BFS shortest path from a to b (inclusive of
// both endpoints), using ascending-id adjacency order for deterministic
// tie-breaking among equal-length paths. Returns nil if unreachable
// (never happens on a connected FloorGraph).
func (fg *FloorGraph) ShortestPath(a, b int) []int {
	adjacency := fg.Adjacency()
	n := len(fg.Nodes)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = -2 // unvisited sentinel, -1 means "is the root"
	}
	parent[a] = -1
	queue := []int{a}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == b {
			break
		}
		for _, next := range adjacency[cur] {
			if parent[next] == -2 {
				parent[next] = cur
				queue = append(queue, next)
			}
		}
	}
	if parent[b] == -2 {
		return nil
	}
	path := []int{b}
	for cur := b; parent[cur] != -1; {
		cur = parent[cur]
		path = append(path, cur)
	}
	// reverse
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

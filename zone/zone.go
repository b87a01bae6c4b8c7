package zone

import "github.com/hollowspire/dungeongen/graphgen"

// Kind selects how a Zone's boundary is tested against a node.
type Kind int

const (
	// Distance matches nodes whose distance_from_start falls in
	// [MinDistance, MaxDistance], inclusive.
	Distance Kind = iota
	// CriticalPathPct matches nodes whose fractional position along the
	// critical path falls in [StartPct, EndPct], inclusive.
	CriticalPathPct
)

// Zone is one zone definition. Zones are tested in input order by
// Assign; the first match wins.
type Zone struct {
	ID          string
	Kind        Kind
	MinDistance int
	MaxDistance int
	StartPct    float64
	EndPct      float64
}

// Assign computes a zone id for every node in g, testing zones in input
// order and taking the first match. A node matching no zone is absent
// from the returned map. criticalPath is the graph's critical path, in
// spawn-first order; it may be nil if the critical path hasn't been
// determined yet (room-type assignment, which selects the boss node,
// normally runs after zones do), in which case every CriticalPathPct
// zone simply never matches, consistent with how every other
// not-yet-available stage input is treated elsewhere in this project.
func Assign(g *graphgen.FloorGraph, zones []Zone, criticalPath []int) map[int]string {
	result := make(map[int]string)
	if len(zones) == 0 {
		return result
	}

	pct := pathPercentiles(g, criticalPath)

	for _, node := range g.Nodes {
		for _, z := range zones {
			if matches(z, node, pct) {
				result[node.ID] = z.ID
				break
			}
		}
	}
	return result
}

// TransitionRooms returns, in ascending id order, every node whose zone
// differs from at least one graph-adjacent neighbor's zone (or whose zone
// is absent while a neighbor's is present, or vice versa). These are the
// rooms a player crosses through when moving between named regions of the
// floor.
func TransitionRooms(g *graphgen.FloorGraph, zoneOf map[int]string) []int {
	if len(zoneOf) == 0 {
		return nil
	}
	adjacency := g.Adjacency()
	var out []int
	for _, node := range g.Nodes {
		own, ownHas := zoneOf[node.ID]
		isTransition := false
		for _, nb := range adjacency[node.ID] {
			other, otherHas := zoneOf[nb]
			if ownHas != otherHas || own != other {
				isTransition = true
				break
			}
		}
		if isTransition {
			out = append(out, node.ID)
		}
	}
	return out
}

func matches(z Zone, node graphgen.RoomNode, pct map[int]float64) bool {
	switch z.Kind {
	case Distance:
		return node.DistanceFromStart >= z.MinDistance && node.DistanceFromStart <= z.MaxDistance
	case CriticalPathPct:
		p, ok := pct[node.ID]
		if !ok {
			return false
		}
		return p >= z.StartPct && p <= z.EndPct
	default:
		return false
	}
}

// pathPercentiles returns, for every node reachable from the critical
// path, its fractional position along it: nodes on the path get
// index/(len-1); off-path nodes inherit the position of their nearest
// critical-path node, found via multi-source BFS over the graph's
// adjacency, tie-broken by ascending critical-path index.
func pathPercentiles(g *graphgen.FloorGraph, criticalPath []int) map[int]float64 {
	result := make(map[int]float64)
	if len(criticalPath) == 0 {
		return result
	}
	if len(criticalPath) == 1 {
		result[criticalPath[0]] = 0
		return result
	}

	denom := float64(len(criticalPath) - 1)
	pathIndex := make(map[int]int, len(criticalPath))
	for i, id := range criticalPath {
		pathIndex[id] = i
		result[id] = float64(i) / denom
	}

	adjacency := g.Adjacency()
	nearestIndex := make(map[int]int, len(g.Nodes))
	visited := make([]bool, len(g.Nodes))
	frontier := make(map[int]int, len(criticalPath))
	for _, id := range criticalPath {
		visited[id] = true
		frontier[id] = pathIndex[id]
	}

	for len(frontier) > 0 {
		next := make(map[int]int)
		for n, idx := range frontier {
			for _, nb := range adjacency[n] {
				if visited[nb] {
					continue
				}
				if cur, seen := next[nb]; !seen || idx < cur {
					next[nb] = idx
				}
			}
		}
		for n := range next {
			visited[n] = true
			nearestIndex[n] = next[n]
		}
		frontier = next
	}

	for _, node := range g.Nodes {
		if _, already := result[node.ID]; already {
			continue
		}
		idx, ok := nearestIndex[node.ID]
		if !ok {
			continue
		}
		result[node.ID] = float64(idx) / denom
	}
	return result
}

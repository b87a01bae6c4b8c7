package constraint

import "github.com/hollowspire/dungeongen/graphgen"

// EvalContext carries everything a constraint predicate may need to
// inspect: the graph, the partial type assignment built so far, and the
// floor/zone/difficulty/cluster data that floor- and zone-aware
// constraints are gated by.
//
// Floor index and zone/difficulty/cluster data are fields of this
// per-evaluation context rather than mutable setters on the constraints
// themselves, which keeps Constraint values immutable and safe to share
// across concurrent Generate calls.
type EvalContext[T comparable] struct {
	Graph      *graphgen.FloorGraph
	Assignment map[int]T

	HasFloor   bool
	Floor      int
	HasZones   bool
	ZoneOf     map[int]string
	HasDiff    bool
	Difficulty map[int]float64

	// ClusterSizeOf, when non-nil, reports the size of the cluster the
	// node currently belongs to for its room type; Must/Min/MaxClusterSize
	// constraints are permissive (return true) during assignment when this
	// is nil, since clustering happens after placement.
	ClusterSizeOf map[int]int
}

// Neighbors returns the ids of nodes adjacent to nodeID in the graph.
func (ctx EvalContext[T]) Neighbors(nodeID int) []int {
	return ctx.Graph.Adjacency()[nodeID]
}

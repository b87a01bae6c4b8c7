package graphgen

import "github.com/hollowspire/dungeongen/seeding"

// Generator is the shared contract for all five topology algorithms:
// deterministic given the same room count, branching factor and RNG
// stream, and guaranteed to return a connected graph of exactly
// roomCount nodes.
type Generator interface {
	// Generate builds a connected FloorGraph of roomCount nodes.
	// branchingFactor is in [0,1] and controls how many edges beyond a
	// spanning tree are added.
	Generate(roomCount int, branchingFactor float64, rng *seeding.RNG) (*FloorGraph, error)

	// Name identifies the algorithm, e.g. for error messages and config
	// round-tripping.
	Name() string
}

// Algorithm names a graph generation strategy, used to select a
// Generator via Build.
type Algorithm string

const (
	SpanningTreeAlgorithm     Algorithm = "spanning_tree"
	GridBasedAlgorithm        Algorithm = "grid_based"
	CellularAutomataAlgorithm Algorithm = "cellular_automata"
	MazeBasedAlgorithm        Algorithm = "maze_based"
	HubAndSpokeAlgorithm      Algorithm = "hub_and_spoke"
)

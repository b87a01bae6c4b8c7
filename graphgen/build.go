package graphgen

import "fmt"

// AlgorithmConfig carries the algorithm-specific config record for
// whichever Algorithm the caller selects. Exactly one of the pointer
// fields matching the selected Algorithm must be set; Build validates
// this.
type AlgorithmConfig struct {
	Grid     *GridConfig
	Cellular *CellularConfig
	Maze     *MazeConfig
	HubSpoke *HubConfig
}

// Build constructs a Generator for the named algorithm, validating that
// the matching algorithm-specific config record is present. SpanningTree
// needs no extra config.
func Build(algo Algorithm, cfg AlgorithmConfig) (Generator, error) {
	switch algo {
	case "", SpanningTreeAlgorithm:
		return NewSpanningTree(), nil
	case GridBasedAlgorithm:
		if cfg.Grid == nil {
			return nil, fmt.Errorf("graphgen: grid_based algorithm requires a GridConfig")
		}
		return NewGridBased(*cfg.Grid), nil
	case CellularAutomataAlgorithm:
		if cfg.Cellular == nil {
			return nil, fmt.Errorf("graphgen: cellular_automata algorithm requires a CellularConfig")
		}
		return NewCellularAutomata(*cfg.Cellular), nil
	case MazeBasedAlgorithm:
		if cfg.Maze == nil {
			return nil, fmt.Errorf("graphgen: maze_based algorithm requires a MazeConfig")
		}
		return NewMazeBased(*cfg.Maze), nil
	case HubAndSpokeAlgorithm:
		if cfg.HubSpoke == nil {
			return nil, fmt.Errorf("graphgen: hub_and_spoke algorithm requires a HubConfig")
		}
		return NewHubAndSpoke(*cfg.HubSpoke), nil
	default:
		return nil, fmt.Errorf("graphgen: unknown algorithm %q", algo)
	}
}

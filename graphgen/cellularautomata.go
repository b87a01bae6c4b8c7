package graphgen

import (
	"fmt"
	"sort"

	"github.com/hollowspire/dungeongen/seeding"
)

// CellularConfig is the algorithm-specific config for
// CellularAutomataGenerator.
type CellularConfig struct {
	GridWidth, GridHeight int
	InitialLiveChance     float64 // probability a cell starts alive
	Iterations            int
	BirthThreshold        int // B: a dead cell with >= this many live neighbors is born
	SurvivalThreshold     int // S: a live cell with >= this many live neighbors survives
}

// Validate checks basic range constraints.
func (c CellularConfig) Validate() error {
	if c.GridWidth <= 0 || c.GridHeight <= 0 {
		return fmt.Errorf("graphgen: grid dimensions must be positive, got %dx%d", c.GridWidth, c.GridHeight)
	}
	if c.Iterations < 0 {
		return fmt.Errorf("graphgen: iterations must be >= 0, got %d", c.Iterations)
	}
	if c.InitialLiveChance < 0 || c.InitialLiveChance > 1 {
		return fmt.Errorf("graphgen: initial live chance must be in [0,1], got %f", c.InitialLiveChance)
	}
	return nil
}

// CellularAutomataGenerator seeds a grid with random live cells, applies
// birth/survival rules for a fixed number of iterations, treats surviving
// cells as nodes, keeps a spanning subset of the orthogonal-neighbor edges
// plus branching-factor extras, and attaches any node still disconnected
// directly to node 0.
type CellularAutomataGenerator struct {
	cfg CellularConfig
}

// NewCellularAutomata constructs the cellular-automata graph algorithm.
func NewCellularAutomata(cfg CellularConfig) *CellularAutomataGenerator {
	return &CellularAutomataGenerator{cfg: cfg}
}

// Name implements Generator.
func (g *CellularAutomataGenerator) Name() string { return string(CellularAutomataAlgorithm) }

// Generate implements Generator.
func (g *CellularAutomataGenerator) Generate(roomCount int, branchingFactor float64, rng *seeding.RNG) (*FloorGraph, error) {
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}
	w, h := g.cfg.GridWidth, g.cfg.GridHeight

	live := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			live[y*w+x] = rng.Float64() < g.cfg.InitialLiveChance
		}
	}

	neighborCount := func(grid []bool, x, y int) int {
		count := 0
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := x+dx, y+dy
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				if grid[ny*w+nx] {
					count++
				}
			}
		}
		return count
	}

	for iter := 0; iter < g.cfg.Iterations; iter++ {
		next := make([]bool, w*h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				n := neighborCount(live, x, y)
				if live[y*w+x] {
					next[y*w+x] = n >= g.cfg.SurvivalThreshold
				} else {
					next[y*w+x] = n >= g.cfg.BirthThreshold
				}
			}
		}
		live = next
	}

	type liveCell struct{ x, y int }
	var liveCells []liveCell
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if live[y*w+x] {
				liveCells = append(liveCells, liveCell{x, y})
			}
		}
	}

	// Truncate or extend to hit the requested room count. Extension walks
	// every grid cell in row-major order and adds dead cells as extra
	// nodes; truncation simply keeps the first roomCount live cells in
	// row-major order, both fully deterministic.
	if len(liveCells) > roomCount {
		liveCells = liveCells[:roomCount]
	} else if len(liveCells) < roomCount {
		present := make(map[[2]int]bool, len(liveCells))
		for _, c := range liveCells {
			present[[2]int{c.x, c.y}] = true
		}
		for y := 0; y < h && len(liveCells) < roomCount; y++ {
			for x := 0; x < w && len(liveCells) < roomCount; x++ {
				if !present[[2]int{x, y}] {
					liveCells = append(liveCells, liveCell{x, y})
					present[[2]int{x, y}] = true
				}
			}
		}
	}
	if len(liveCells) < roomCount {
		return nil, fmt.Errorf("graphgen: cellular automata grid %dx%d too small for %d rooms", w, h, roomCount)
	}

	idOf := make(map[[2]int]int, len(liveCells))
	for i, c := range liveCells {
		idOf[[2]int{c.x, c.y}] = i
	}

	var candidates [][2]int
	seen := make(map[[2]int]bool)
	for i, c := range liveCells {
		for _, d := range [][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}} {
			nx, ny := c.x+d[0], c.y+d[1]
			if j, ok := idOf[[2]int{nx, ny}]; ok {
				key := normalize([2]int{i, j})
				if !seen[key] {
					seen[key] = true
					candidates = append(candidates, key)
				}
			}
		}
	}
	sort.Slice(candidates, func(a, b int) bool {
		if candidates[a][0] != candidates[b][0] {
			return candidates[a][0] < candidates[b][0]
		}
		return candidates[a][1] < candidates[b][1]
	})

	spanning, rest := minimumSpanningSubset(roomCount, candidates)
	edges := append([][2]int{}, spanning...)

	// Spanning-tree overlay: any nodes still disconnected after the
	// orthogonal-adjacency candidates (isolated live cells, or cells added
	// during extension) are attached to node 0's component directly.
	parent := make([]int, roomCount)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	union := func(a, b int) { parent[find(a)] = find(b) }
	for _, e := range spanning {
		union(e[0], e[1])
	}
	for i := 1; i < roomCount; i++ {
		if find(i) != find(0) {
			edges = append(edges, [2]int{0, i})
			union(i, 0)
		}
	}

	extra := rng.IntRange(0, int(float64(roomCount)*branchingFactor))
	rng.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })
	if extra > len(rest) {
		extra = len(rest)
	}
	edges = append(edges, rest[:extra]...)

	return New(roomCount, edges)
}

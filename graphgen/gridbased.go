package graphgen

import (
	"fmt"
	"sort"

	"github.com/hollowspire/dungeongen/seeding"
)

// ConnectivityPattern controls which grid neighbors GridBasedGenerator
// connects.
type ConnectivityPattern int

const (
	FourConnected ConnectivityPattern = iota
	EightConnected
)

// GridConfig is the algorithm-specific config for GridBasedGenerator.
type GridConfig struct {
	GridWidth, GridHeight int
	Pattern               ConnectivityPattern
}

// Validate checks that the grid is large enough for the room count it
// will be asked to generate.
func (c GridConfig) Validate(roomCount int) error {
	if c.GridWidth <= 0 || c.GridHeight <= 0 {
		return fmt.Errorf("graphgen: grid dimensions must be positive, got %dx%d", c.GridWidth, c.GridHeight)
	}
	if c.GridWidth*c.GridHeight < roomCount {
		return fmt.Errorf("graphgen: grid %dx%d cannot hold %d rooms", c.GridWidth, c.GridHeight, roomCount)
	}
	return nil
}

// GridBasedGenerator assigns rooms to grid cells row-major and connects
// 4- or 8-neighbors, then trims to a minimum spanning subset before adding
// branching-factor extras.
type GridBasedGenerator struct {
	cfg GridConfig
}

// NewGridBased constructs a grid-based graph algorithm.
func NewGridBased(cfg GridConfig) *GridBasedGenerator {
	return &GridBasedGenerator{cfg: cfg}
}

// Name implements Generator.
func (g *GridBasedGenerator) Name() string { return string(GridBasedAlgorithm) }

// Generate implements Generator.
func (g *GridBasedGenerator) Generate(roomCount int, branchingFactor float64, rng *seeding.RNG) (*FloorGraph, error) {
	if err := g.cfg.Validate(roomCount); err != nil {
		return nil, err
	}

	pos := func(i int) (int, int) { return i % g.cfg.GridWidth, i / g.cfg.GridWidth }
	cellOf := make(map[[2]int]int, roomCount)
	for i := 0; i < roomCount; i++ {
		x, y := pos(i)
		cellOf[[2]int{x, y}] = i
	}

	deltas := [][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	if g.cfg.Pattern == EightConnected {
		deltas = append(deltas, [2]int{1, 1}, [2]int{1, -1}, [2]int{-1, 1}, [2]int{-1, -1})
	}

	candidates := make([][2]int, 0)
	seen := make(map[[2]int]bool)
	for i := 0; i < roomCount; i++ {
		x, y := pos(i)
		for _, d := range deltas {
			nx, ny := x+d[0], y+d[1]
			if j, ok := cellOf[[2]int{nx, ny}]; ok {
				key := normalize([2]int{i, j})
				if !seen[key] && key[0] != key[1] {
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

	mstEdges, extraPool := minimumSpanningSubset(roomCount, candidates)

	extra := rng.IntRange(0, int(float64(roomCount)*branchingFactor))
	rng.Shuffle(len(extraPool), func(i, j int) { extraPool[i], extraPool[j] = extraPool[j], extraPool[i] })
	if extra > len(extraPool) {
		extra = len(extraPool)
	}
	edges := append(mstEdges, extraPool[:extra]...)

	return New(roomCount, edges)
}

// minimumSpanningSubset picks a deterministic spanning subset of
// candidates (via union-find, processing candidates in their sorted
// order) and returns it along with the remaining candidate edges that
// were not needed for connectivity.
func minimumSpanningSubset(n int, candidates [][2]int) (spanning [][2]int, rest [][2]int) {
	parent := make([]int, n)
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

	for _, e := range candidates {
		ra, rb := find(e[0]), find(e[1])
		if ra != rb {
			parent[ra] = rb
			spanning = append(spanning, e)
		} else {
			rest = append(rest, e)
		}
	}
	return spanning, rest
}

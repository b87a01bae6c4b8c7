package graphgen

import (
	"fmt"
	"sort"

	"github.com/hollowspire/dungeongen/seeding"
)

// MazeConfig is the algorithm-specific config for MazeBasedGenerator.
type MazeConfig struct {
	GridWidth, GridHeight int
	// Imperfect, if true, re-adds a branching-factor fraction of carved
	// walls as extra edges, turning the perfect maze into a braided one.
	Imperfect bool
}

// Validate checks the grid is large enough to hold the requested rooms.
func (c MazeConfig) Validate(roomCount int) error {
	if c.GridWidth <= 0 || c.GridHeight <= 0 {
		return fmt.Errorf("graphgen: grid dimensions must be positive, got %dx%d", c.GridWidth, c.GridHeight)
	}
	if c.GridWidth*c.GridHeight < roomCount {
		return fmt.Errorf("graphgen: grid %dx%d cannot hold %d rooms", c.GridWidth, c.GridHeight, roomCount)
	}
	return nil
}

// MazeBasedGenerator carves a perfect maze over the first roomCount cells
// (row-major) using randomized Prim's algorithm, then optionally braids it
// by re-adding a branching-factor fraction of the walls it carved through.
type MazeBasedGenerator struct {
	cfg MazeConfig
}

// NewMazeBased constructs the maze-based graph algorithm.
func NewMazeBased(cfg MazeConfig) *MazeBasedGenerator {
	return &MazeBasedGenerator{cfg: cfg}
}

// Name implements Generator.
func (g *MazeBasedGenerator) Name() string { return string(MazeBasedAlgorithm) }

// Generate implements Generator.
func (g *MazeBasedGenerator) Generate(roomCount int, branchingFactor float64, rng *seeding.RNG) (*FloorGraph, error) {
	if err := g.cfg.Validate(roomCount); err != nil {
		return nil, err
	}
	w := g.cfg.GridWidth

	pos := func(i int) (int, int) { return i % w, i / w }
	idOf := make(map[[2]int]int, roomCount)
	for i := 0; i < roomCount; i++ {
		x, y := pos(i)
		idOf[[2]int{x, y}] = i
	}

	neighborsOf := func(i int) [][2]int {
		x, y := pos(i)
		var out [][2]int
		for _, d := range [][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}} {
			if j, ok := idOf[[2]int{x + d[0], y + d[1]}]; ok {
				out = append(out, [2]int{i, j})
			}
		}
		return out
	}

	inMaze := make([]bool, roomCount)
	inMaze[0] = true
	frontier := neighborsOf(0)
	carved := make(map[[2]int]bool)
	var edges [][2]int
	allWalls := make(map[[2]int]bool)
	for i := 0; i < roomCount; i++ {
		for _, e := range neighborsOf(i) {
			allWalls[normalize(e)] = true
		}
	}

	for len(frontier) > 0 {
		idx := rng.Intn(len(frontier))
		pick := frontier[idx]
		frontier = append(frontier[:idx], frontier[idx+1:]...)

		a, b := pick[0], pick[1]
		outside := a
		inside := b
		if inMaze[a] {
			outside, inside = b, a
		}
		if inMaze[outside] {
			continue // both sides already connected through another path
		}
		edges = append(edges, [2]int{inside, outside})
		carved[normalize(pick)] = true
		inMaze[outside] = true
		frontier = append(frontier, neighborsOf(outside)...)
	}

	if g.cfg.Imperfect {
		var walls [][2]int
		for wall := range allWalls {
			if !carved[wall] {
				walls = append(walls, wall)
			}
		}
		sort.Slice(walls, func(i, j int) bool {
			if walls[i][0] != walls[j][0] {
				return walls[i][0] < walls[j][0]
			}
			return walls[i][1] < walls[j][1]
		})
		rng.Shuffle(len(walls), func(i, j int) { walls[i], walls[j] = walls[j], walls[i] })
		extra := rng.IntRange(0, int(float64(len(walls))*branchingFactor))
		if extra > len(walls) {
			extra = len(walls)
		}
		edges = append(edges, walls[:extra]...)
	}

	return New(roomCount, edges)
}

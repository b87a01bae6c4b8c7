package graphgen

import "github.com/hollowspire/dungeongen/seeding"

// SpanningTreeGenerator is the default algorithm: a random spanning tree
// (each node 1..n-1 attaches to a uniformly random already-connected
// parent) plus a branching-factor-controlled number of extra edges.
type SpanningTreeGenerator struct{}

// NewSpanningTree constructs the default graph algorithm.
func NewSpanningTree() *SpanningTreeGenerator { return &SpanningTreeGenerator{} }

// Name implements Generator.
func (g *SpanningTreeGenerator) Name() string { return string(SpanningTreeAlgorithm) }

// Generate implements Generator.
func (g *SpanningTreeGenerator) Generate(roomCount int, branchingFactor float64, rng *seeding.RNG) (*FloorGraph, error) {
	edges := make([][2]int, 0, roomCount)

	for i := 1; i < roomCount; i++ {
		parent := rng.Intn(i)
		edges = append(edges, [2]int{parent, i})
	}

	extra := rng.IntRange(0, int(float64(roomCount)*branchingFactor))
	existing := make(map[[2]int]bool, len(edges))
	for _, e := range edges {
		existing[normalize(e)] = true
	}

	attempts := 0
	maxAttempts := extra * 20
	added := 0
	for added < extra && attempts < maxAttempts {
		attempts++
		a := rng.Intn(roomCount)
		b := rng.Intn(roomCount)
		if a == b {
			continue
		}
		key := normalize([2]int{a, b})
		if existing[key] {
			continue
		}
		existing[key] = true
		edges = append(edges, [2]int{a, b})
		added++
	}

	return New(roomCount, edges)
}

func normalize(e [2]int) [2]int {
	if e[0] > e[1] {
		e[0], e[1] = e[1], e[0]
	}
	return e
}

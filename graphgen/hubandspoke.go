package graphgen

import (
	"fmt"

	"github.com/hollowspire/dungeongen/seeding"
)

// HubConfig is the algorithm-specific config for HubAndSpokeGenerator.
type HubConfig struct {
	HubCount       int
	MaxSpokeLength int
}

// Validate checks basic range constraints.
func (c HubConfig) Validate(roomCount int) error {
	if c.HubCount < 1 {
		return fmt.Errorf("graphgen: hub count must be >= 1, got %d", c.HubCount)
	}
	if c.HubCount > roomCount {
		return fmt.Errorf("graphgen: hub count %d exceeds room count %d", c.HubCount, roomCount)
	}
	if c.MaxSpokeLength < 1 {
		return fmt.Errorf("graphgen: max spoke length must be >= 1, got %d", c.MaxSpokeLength)
	}
	return nil
}

// HubAndSpokeGenerator builds hubCount hub nodes, pairwise-connects them,
// then grows spokes of random length off each hub until roomCount nodes
// exist.
type HubAndSpokeGenerator struct {
	cfg HubConfig
}

// NewHubAndSpoke constructs the hub-and-spoke graph algorithm.
func NewHubAndSpoke(cfg HubConfig) *HubAndSpokeGenerator {
	return &HubAndSpokeGenerator{cfg: cfg}
}

// Name implements Generator.
func (g *HubAndSpokeGenerator) Name() string { return string(HubAndSpokeAlgorithm) }

// Generate implements Generator.
func (g *HubAndSpokeGenerator) Generate(roomCount int, branchingFactor float64, rng *seeding.RNG) (*FloorGraph, error) {
	if err := g.cfg.Validate(roomCount); err != nil {
		return nil, err
	}

	hubs := make([]int, g.cfg.HubCount)
	for i := range hubs {
		hubs[i] = i
	}

	var edges [][2]int
	for i := 0; i < len(hubs); i++ {
		for j := i + 1; j < len(hubs); j++ {
			edges = append(edges, [2]int{hubs[i], hubs[j]})
		}
	}

	nextID := len(hubs)
	hubIdx := 0
	for nextID < roomCount {
		hub := hubs[hubIdx%len(hubs)]
		hubIdx++

		length := rng.IntRange(1, g.cfg.MaxSpokeLength)
		prev := hub
		for s := 0; s < length && nextID < roomCount; s++ {
			edges = append(edges, [2]int{prev, nextID})
			prev = nextID
			nextID++
		}
	}

	extra := rng.IntRange(0, int(float64(roomCount)*branchingFactor))
	existing := make(map[[2]int]bool, len(edges))
	for _, e := range edges {
		existing[normalize(e)] = true
	}
	attempts := 0
	added := 0
	maxAttempts := extra * 20
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

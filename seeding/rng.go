package seeding

import "math/rand"

// RNG wraps a single deterministic pseudo-random source. Each pipeline
// stage receives its own RNG instance (see Streams) so that upstream
// stages can never influence downstream random sequences.
type RNG struct {
	seed   uint32
	source *rand.Rand
}

// newRNG constructs an RNG from an already-derived 32-bit sub-seed.
func newRNG(seed uint32) *RNG {
	return &RNG{seed: seed, source: rand.New(rand.NewSource(int64(seed)))}
}

// Seed returns the derived seed this RNG was constructed from, useful for
// debugging and logging.
func (r *RNG) Seed() uint32 { return r.seed }

// Intn returns a pseudo-random integer in [0, n). Panics if n <= 0.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		panic("seeding: Intn argument must be positive")
	}
	return r.source.Intn(n)
}

// IntRange returns a pseudo-random integer in [min, max]. Panics if
// min > max.
func (r *RNG) IntRange(min, max int) int {
	if min > max {
		panic("seeding: IntRange min must be <= max")
	}
	if min == max {
		return min
	}
	return min + r.source.Intn(max-min+1)
}

// Float64 returns a pseudo-random float64 in [0.0, 1.0).
func (r *RNG) Float64() float64 {
	return r.source.Float64()
}

// Bool returns a pseudo-random boolean.
func (r *RNG) Bool() bool {
	return r.source.Intn(2) == 1
}

// Shuffle pseudo-randomizes the order of n elements via swap.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	r.source.Shuffle(n, swap)
}

// Uint32 returns a pseudo-random 32-bit unsigned integer.
func (r *RNG) Uint32() uint32 {
	return r.source.Uint32()
}

// WeightedChoice selects an index from weights by cumulative distribution:
// draw u in [0, sum(weights)) and return the first index whose cumulative
// weight exceeds u. Returns -1 if weights is empty or all weights are
// zero (or negative).
func (r *RNG) WeightedChoice(weights []float64) int {
	if len(weights) == 0 {
		return -1
	}
	var total float64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}
	u := r.source.Float64() * total
	var cumulative float64
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cumulative += w
		if u < cumulative {
			return i
		}
	}
	return len(weights) - 1
}

package difficulty

import (
	"fmt"
	"math"

	"github.com/hollowspire/dungeongen/graphgen"
)

// Kind selects which scaling function Compute applies.
type Kind int

const (
	// Linear computes base + distance*factor.
	Linear Kind = iota
	// Exponential computes base + factor^distance.
	Exponential
	// Custom defers entirely to a caller-supplied pure function.
	Custom
)

// Config parameterizes the difficulty scaling pass. MaxDifficulty clamps
// every computed value into [0, MaxDifficulty]; CustomFn is only
// consulted when Kind is Custom, and must be a pure function of distance.
type Config struct {
	Kind          Kind
	Base          float64
	Factor        float64
	MaxDifficulty float64
	CustomFn      func(distance int) float64
}

// Validate reports a configuration error: a non-positive MaxDifficulty,
// or a Custom kind with no function supplied.
func (c Config) Validate() error {
	if c.MaxDifficulty <= 0 {
		return fmt.Errorf("difficulty: max_difficulty must be > 0, got %f", c.MaxDifficulty)
	}
	if c.Kind == Custom && c.CustomFn == nil {
		return fmt.Errorf("difficulty: custom kind requires a CustomFn")
	}
	return nil
}

// Compute applies cfg's scaling function to every node's
// DistanceFromStart and returns the per-node difficulty table, each value
// clamped to [0, cfg.MaxDifficulty].
func Compute(g *graphgen.FloorGraph, cfg Config) map[int]float64 {
	out := make(map[int]float64, len(g.Nodes))
	for _, n := range g.Nodes {
		out[n.ID] = clamp(evaluate(cfg, n.DistanceFromStart), cfg.MaxDifficulty)
	}
	return out
}

func evaluate(cfg Config, distance int) float64 {
	switch cfg.Kind {
	case Linear:
		return cfg.Base + float64(distance)*cfg.Factor
	case Exponential:
		return cfg.Base + math.Pow(cfg.Factor, float64(distance))
	case Custom:
		return cfg.CustomFn(distance)
	default:
		return cfg.Base
	}
}

func clamp(v, max float64) float64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

package floor

import (
	"github.com/hollowspire/dungeongen/assign"
	"github.com/hollowspire/dungeongen/cluster"
	"github.com/hollowspire/dungeongen/constraint"
	"github.com/hollowspire/dungeongen/difficulty"
	"github.com/hollowspire/dungeongen/dungeonerr"
	"github.com/hollowspire/dungeongen/graphgen"
	"github.com/hollowspire/dungeongen/secret"
	"github.com/hollowspire/dungeongen/spatial"
	"github.com/hollowspire/dungeongen/template"
	"github.com/hollowspire/dungeongen/zone"
)

// defaultMaxHallwayRadius bounds the spatial solver's concentric-ring
// search for a non-adjacent placement when no MaxHallwayRadius is given.
const defaultMaxHallwayRadius = 12

// FloorConfig describes one floor to Generate: callers build this
// directly, or via config/yamlcfg for a T=string YAML instantiation.
// Apart from Difficulty and MaxHallwayRadius, whose zero values select
// DefaultDifficultyConfig and defaultMaxHallwayRadius, this struct applies
// no hidden defaults. BranchingFactor's zero value (0.0) is itself a valid input (a pure
// spanning tree), so there is no way to distinguish "caller wants the
// default 0.3" from "caller wants a tree" at this layer; config/yamlcfg,
// which unmarshals from optional YAML keys, is where the documented
// defaults (branching_factor=0.3, hallway_mode=AsNeeded) actually get
// applied.
type FloorConfig[T comparable] struct {
	Seed             int64
	RoomCount        int
	SpawnRoomType    T
	BossRoomType     T
	DefaultRoomType  T
	Templates        []*template.RoomTemplate[T]
	RoomRequirements []assign.Requirement[T]
	Constraints      []constraint.Constraint[T]
	BranchingFactor  float64
	HallwayMode      spatial.HallwayMode
	MaxHallwayRadius int

	GraphAlgorithm  graphgen.Algorithm
	AlgorithmConfig graphgen.AlgorithmConfig

	Zones         []zone.Zone
	ZoneTemplates map[string][]*template.RoomTemplate[T]

	SecretPassages *secret.Config[T]

	// Difficulty's zero value (MaxDifficulty == 0 and no CustomFn) is
	// treated as "not configured" and replaced by DefaultDifficultyConfig
	// at Generate time. Unlike BranchingFactor's zero value, this one is
	// not a valid input: MaxDifficulty <= 0 is otherwise always invalid, so
	// reusing the zero value as a sentinel doesn't collide with any
	// meaningful configuration.
	Difficulty difficulty.Config

	Clusters *cluster.Config[T]
}

// DefaultDifficultyConfig returns the difficulty scaling applied when a
// caller doesn't configure one explicitly.
func DefaultDifficultyConfig() difficulty.Config {
	return difficulty.Config{Kind: difficulty.Linear, Base: 1.0, Factor: 0.5, MaxDifficulty: 10.0}
}

func (c FloorConfig[T]) difficultyOrDefault() difficulty.Config {
	if c.Difficulty.MaxDifficulty == 0 && c.Difficulty.CustomFn == nil {
		return DefaultDifficultyConfig()
	}
	return c.Difficulty
}

// Validate checks every configuration error knowable before generation
// runs: room count, requirement-count arithmetic, template availability
// per reserved/required room type, branching factor range, and
// template-level invariants.
func (c FloorConfig[T]) Validate() error {
	if c.RoomCount < 2 {
		return dungeonerr.InvalidConfiguration("room_count must be >= 2, got %d", c.RoomCount)
	}

	reqSum := 0
	for _, r := range c.RoomRequirements {
		if r.Count < 0 {
			return dungeonerr.InvalidConfiguration("room_requirements: count for %v must be >= 0, got %d", r.Type, r.Count)
		}
		reqSum += r.Count
	}
	if c.RoomCount < 2+reqSum {
		return dungeonerr.InvalidConfiguration("room_count %d is too small for 2 reserved slots plus %d required rooms", c.RoomCount, reqSum)
	}

	if len(c.Templates) == 0 {
		return dungeonerr.InvalidConfiguration("templates must not be empty")
	}

	seenIDs := make(map[string]bool, len(c.Templates))
	for _, tpl := range c.Templates {
		if err := tpl.Validate(); err != nil {
			return dungeonerr.InvalidConfiguration("%v", err)
		}
		if seenIDs[tpl.ID] {
			return dungeonerr.InvalidConfiguration("duplicate template id %q", tpl.ID)
		}
		seenIDs[tpl.ID] = true
	}

	for _, t := range []T{c.SpawnRoomType, c.BossRoomType, c.DefaultRoomType} {
		if !anyTemplateValidFor(c.Templates, t) {
			return dungeonerr.InvalidConfiguration("no template is valid for room type %v", t)
		}
	}
	for _, r := range c.RoomRequirements {
		if !anyTemplateValidFor(c.Templates, r.Type) {
			return dungeonerr.InvalidConfiguration("no template is valid for required room type %v", r.Type)
		}
	}

	if c.BranchingFactor < 0 || c.BranchingFactor > 1 {
		return dungeonerr.InvalidConfiguration("branching_factor must be in [0,1], got %f", c.BranchingFactor)
	}

	if c.SecretPassages != nil && c.SecretPassages.Count < 0 {
		return dungeonerr.InvalidConfiguration("secret_passage_config.count must be >= 0, got %d", c.SecretPassages.Count)
	}

	if err := c.difficultyOrDefault().Validate(); err != nil {
		return dungeonerr.InvalidConfiguration("%v", err)
	}

	return nil
}

func anyTemplateValidFor[T comparable](templates []*template.RoomTemplate[T], t T) bool {
	for _, tpl := range templates {
		if tpl.ValidFor(t) {
			return true
		}
	}
	return false
}

func (c FloorConfig[T]) maxHallwayRadius() int {
	if c.MaxHallwayRadius > 0 {
		return c.MaxHallwayRadius
	}
	return defaultMaxHallwayRadius
}

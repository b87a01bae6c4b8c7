package assign

import (
	"fmt"

	"github.com/hollowspire/dungeongen/constraint"
	"github.com/hollowspire/dungeongen/dungeonerr"
	"github.com/hollowspire/dungeongen/graphgen"
	"github.com/hollowspire/dungeongen/seeding"
)

// Requirement pairs a room type with the exact count of rooms of that
// type that must be assigned, beyond the reserved spawn and boss slots.
// Requirements are processed in the order supplied: constraints may
// inspect the partial assignment built by earlier requirements, so this
// order is part of the contract, not an implementation detail.
type Requirement[T comparable] struct {
	Type  T
	Count int
}

// Input bundles everything Assign needs: the graph to assign over, the
// three reserved types, the ordered requirement list, the full
// constraint catalogue (each tagged with the room type it gates), the
// type-stream RNG, and the floor index this assignment runs for (only
// meaningful to floor-gated constraints in multi-floor generation).
type Input[T comparable] struct {
	Graph        *graphgen.FloorGraph
	SpawnType    T
	BossType     T
	DefaultType  T
	Requirements []Requirement[T]
	Constraints  []constraint.Constraint[T]
	RNG          *seeding.RNG
	HasFloor     bool
	Floor        int

	// HasZones and ZoneOf carry the zone assignment computed before the
	// type-assignment pass runs; zone-gated constraints (OnlyInZone) read
	// these. Difficulty and cluster data are
	// never available at this point in the pipeline (they're computed
	// after type assignment), so EvalContext leaves those fields unset and
	// the corresponding constraints stay permissive by design.
	HasZones bool
	ZoneOf   map[int]string
}

// Assign runs the fixed-priority assignment pipeline: spawn, boss,
// critical path, required types (in input order), then default fill for
// every remaining node. It mutates in.Graph's nodes to set OnCriticalPath,
// BossNodeID, and CriticalPath, and returns the complete node-id to
// room-type map.
func Assign[T comparable](in Input[T]) (map[int]T, error) {
	g := in.Graph
	n := len(g.Nodes)

	assignment := make(map[int]T, n)
	assignment[0] = in.SpawnType

	bossConstraints := constraintsFor(in.Constraints, in.BossType)
	bossID := -1
	bossDist := -1
	for id := 1; id < n; id++ {
		ctx := constraint.EvalContext[T]{Graph: g, Assignment: assignment, HasFloor: in.HasFloor, Floor: in.Floor, HasZones: in.HasZones, ZoneOf: in.ZoneOf}
		if !allValid(bossConstraints, id, ctx) {
			continue
		}
		dist := g.Nodes[id].DistanceFromStart
		if dist > bossDist {
			bossDist = dist
			bossID = id
		}
	}
	if bossID < 0 {
		return nil, dungeonerr.NewConstraintViolation(typeName(in.BossType), 1, 0)
	}
	assignment[bossID] = in.BossType
	g.BossNodeID = bossID

	path := g.ShortestPath(0, bossID)
	g.CriticalPath = path
	onPath := make(map[int]bool, len(path))
	for _, id := range path {
		onPath[id] = true
	}
	for i := range g.Nodes {
		g.Nodes[i].OnCriticalPath = onPath[g.Nodes[i].ID]
	}

	for _, req := range in.Requirements {
		reqConstraints := constraintsFor(in.Constraints, req.Type)
		var candidates []int
		for id := 0; id < n; id++ {
			if _, taken := assignment[id]; taken {
				continue
			}
			ctx := constraint.EvalContext[T]{Graph: g, Assignment: assignment, HasFloor: in.HasFloor, Floor: in.Floor, HasZones: in.HasZones, ZoneOf: in.ZoneOf}
			if allValid(reqConstraints, id, ctx) {
				candidates = append(candidates, id)
			}
		}
		if len(candidates) < req.Count {
			return nil, dungeonerr.NewConstraintViolation(typeName(req.Type), req.Count, len(candidates))
		}
		shuffle(candidates, in.RNG)
		for _, id := range candidates[:req.Count] {
			assignment[id] = req.Type
		}
	}

	for id := 0; id < n; id++ {
		if _, taken := assignment[id]; !taken {
			assignment[id] = in.DefaultType
		}
	}

	return assignment, nil
}

func constraintsFor[T comparable](all []constraint.Constraint[T], target T) []constraint.Constraint[T] {
	var out []constraint.Constraint[T]
	for _, c := range all {
		if asAny(c.TargetRoomType()) == asAny(target) {
			out = append(out, c)
		}
	}
	return out
}

func allValid[T comparable](cs []constraint.Constraint[T], nodeID int, ctx constraint.EvalContext[T]) bool {
	for _, c := range cs {
		if !c.IsValid(nodeID, ctx) {
			return false
		}
	}
	return true
}

// shuffle performs a Fisher-Yates shuffle driven by the type-stream RNG.
func shuffle(ids []int, rng *seeding.RNG) {
	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
}

func typeName[T comparable](t T) string {
	return fmt.Sprintf("%v", t)
}

func asAny[T comparable](v T) interface{} { return v }

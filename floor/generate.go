package floor

import (
	"github.com/hollowspire/dungeongen/assign"
	"github.com/hollowspire/dungeongen/cluster"
	"github.com/hollowspire/dungeongen/difficulty"
	"github.com/hollowspire/dungeongen/graphgen"
	"github.com/hollowspire/dungeongen/hallway"
	"github.com/hollowspire/dungeongen/secret"
	"github.com/hollowspire/dungeongen/seeding"
	"github.com/hollowspire/dungeongen/spatial"
	"github.com/hollowspire/dungeongen/template"
	"github.com/hollowspire/dungeongen/weighting"
	"github.com/hollowspire/dungeongen/zone"
)

// Generate runs the complete single-floor pipeline: validate, expand the
// seed into five streams, generate the topology, assign zones, assign
// room types, compute difficulty, select templates, place rooms, route
// hallways, generate secret passages, and detect clusters. It is
// synchronous, single-threaded, and side-effect free on failure: any
// error aborts with no partial FloorLayout.
func Generate[T comparable](cfg FloorConfig[T]) (*FloorLayout[T], error) {
	return generate(cfg, false, 0)
}

// generate is Generate's implementation, parameterized by an optional
// floor index. hasFloor/floorIdx are threaded into assign.Input so
// floor-gated constraints (OnlyOnFloor and friends) see them, the same
// way zone data reaches zone-gated constraints: through EvalContext
// fields rather than mutable setters on the constraints themselves.
func generate[T comparable](cfg FloorConfig[T], hasFloor bool, floorIdx int) (*FloorLayout[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	streams := seeding.Expand(cfg.Seed)

	algo, err := graphgen.Build(cfg.GraphAlgorithm, cfg.AlgorithmConfig)
	if err != nil {
		return nil, err
	}
	g, err := algo.Generate(cfg.RoomCount, cfg.BranchingFactor, streams.Graph)
	if err != nil {
		return nil, err
	}

	hasZones := len(cfg.Zones) > 0
	zoneOf := zone.Assign(g, cfg.Zones, nil)

	assignment, err := assign.Assign(assign.Input[T]{
		Graph:        g,
		SpawnType:    cfg.SpawnRoomType,
		BossType:     cfg.BossRoomType,
		DefaultType:  cfg.DefaultRoomType,
		Requirements: cfg.RoomRequirements,
		Constraints:  cfg.Constraints,
		RNG:          streams.Type,
		HasZones:     hasZones,
		ZoneOf:       zoneOf,
		HasFloor:     hasFloor,
		Floor:        floorIdx,
	})
	if err != nil {
		return nil, err
	}

	// Critical-path zones can only resolve once the boss is chosen, so
	// zones are re-tested now that the path exists. Assignment-time
	// constraints saw the distance-based view; template selection and the
	// final layout see the full one.
	if hasZones {
		zoneOf = zone.Assign(g, cfg.Zones, g.CriticalPath)
	}

	diffTable := difficulty.Compute(g, cfg.difficultyOrDefault())

	pools := buildPools(cfg.Templates, cfg.ZoneTemplates)
	templates, err := selectTemplates(g, assignment, zoneOf, hasZones, pools, streams.Template)
	if err != nil {
		return nil, err
	}

	placeResult, err := spatial.Place(g, assignment, templates, diffTable, cfg.HallwayMode, cfg.maxHallwayRadius(), streams.Spatial)
	if err != nil {
		return nil, err
	}

	hallways, hallwayDoors, err := hallway.RouteAll(g, placeResult.Placements, placeResult.Occupied)
	if err != nil {
		return nil, err
	}
	doors := make([]Door, 0, len(placeResult.Doors)+len(hallwayDoors))
	doors = append(doors, placeResult.Doors...)
	doors = append(doors, hallwayDoors...)

	var passages []secret.Passage
	if cfg.SecretPassages != nil && cfg.SecretPassages.Count > 0 {
		generated, secretDoors, err := secret.Generate(*cfg.SecretPassages, g, assignment, placeResult.Placements, placeResult.Occupied, streams.Hallway)
		if err != nil {
			return nil, err
		}
		passages = generated
		doors = append(doors, secretDoors...)
	}

	var clusters []cluster.Cluster[T]
	if cfg.Clusters != nil {
		clusters = cluster.Detect(placeResult.Placements, *cfg.Clusters)
	}

	var transitionRooms []int
	var layoutZoneOf map[int]string
	if hasZones {
		layoutZoneOf = zoneOf
		transitionRooms = zone.TransitionRooms(g, zoneOf)
	}

	return &FloorLayout[T]{
		Seed:            cfg.Seed,
		Graph:           g,
		Rooms:           placeResult.Placements,
		RoomOrder:       ascendingRoomIDs(placeResult.Placements),
		Doors:           doors,
		Hallways:        hallways,
		SecretPassages:  passages,
		CriticalPath:    g.CriticalPath,
		SpawnRoomID:     g.StartNodeID,
		BossRoomID:      g.BossNodeID,
		ZoneOf:          layoutZoneOf,
		TransitionRooms: transitionRooms,
		Clusters:        clusters,
		Difficulty:      diffTable,
	}, nil
}

func buildPools[T comparable](global []*template.RoomTemplate[T], zoned map[string][]*template.RoomTemplate[T]) weighting.Pools[T] {
	return weighting.Pools[T]{Zone: zoned, Global: global}
}

func selectTemplates[T comparable](
	g *graphgen.FloorGraph,
	assignment map[int]T,
	zoneOf map[int]string,
	hasZones bool,
	pools weighting.Pools[T],
	rng *seeding.RNG,
) (map[int]*template.RoomTemplate[T], error) {
	out := make(map[int]*template.RoomTemplate[T], len(g.Nodes))
	for id := 0; id < len(g.Nodes); id++ {
		t := assignment[id]
		z, zoned := zoneOf[id]
		tpl, err := weighting.Select(t, z, hasZones && zoned, pools, rng)
		if err != nil {
			return nil, err
		}
		out[id] = tpl
	}
	return out, nil
}

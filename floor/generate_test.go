package floor

import (
	"testing"

	"github.com/hollowspire/dungeongen/assign"
	"github.com/hollowspire/dungeongen/constraint"
	"github.com/hollowspire/dungeongen/dungeonerr"
	"github.com/hollowspire/dungeongen/geom"
	"github.com/hollowspire/dungeongen/secret"
	"github.com/hollowspire/dungeongen/spatial"
	"github.com/hollowspire/dungeongen/template"
)

// fourDoorSquare is a 1x1 template with doors on every edge, so placement
// can extend freely in any direction regardless of graph shape.
func fourDoorSquare(t *testing.T, id string, types []string) *template.RoomTemplate[string] {
	t.Helper()
	cells := []geom.Cell{{X: 0, Y: 0}}
	doors := map[geom.Cell]geom.Edge{
		{X: 0, Y: 0}: geom.North | geom.South | geom.East | geom.West,
	}
	tpl, err := template.New[string](id, types, cells, doors, 1, nil)
	if err != nil {
		t.Fatalf("building template: %v", err)
	}
	return tpl
}

func baseConfig(t *testing.T, seed int64, roomCount int) FloorConfig[string] {
	t.Helper()
	return FloorConfig[string]{
		Seed:            seed,
		RoomCount:       roomCount,
		SpawnRoomType:   "spawn",
		BossRoomType:    "boss",
		DefaultRoomType: "default",
		Templates: []*template.RoomTemplate[string]{
			fourDoorSquare(t, "spawn-tpl", []string{"spawn"}),
			fourDoorSquare(t, "boss-tpl", []string{"boss"}),
			fourDoorSquare(t, "default-tpl", []string{"default"}),
		},
		HallwayMode: spatial.HallwayAsNeeded,
	}
}

func TestGenerateTwoRoomFloor(t *testing.T) {
	cfg := baseConfig(t, 12345, 2)
	fl, err := Generate[string](cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fl.Rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(fl.Rooms))
	}
	if fl.Rooms[fl.SpawnRoomID].RoomType != "spawn" {
		t.Fatalf("expected spawn room to have type spawn, got %v", fl.Rooms[fl.SpawnRoomID].RoomType)
	}
	if fl.Rooms[fl.BossRoomID].RoomType != "boss" {
		t.Fatalf("expected boss room to have type boss, got %v", fl.Rooms[fl.BossRoomID].RoomType)
	}
	if fl.SpawnRoomID == fl.BossRoomID {
		t.Fatalf("spawn and boss rooms must differ")
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	cfg := baseConfig(t, 98765, 8)
	first, err := Generate[string](cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Generate[string](cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.SpawnRoomID != second.SpawnRoomID || first.BossRoomID != second.BossRoomID {
		t.Fatalf("expected identical spawn/boss rooms across runs with the same seed")
	}
	for id, room := range first.Rooms {
		other, ok := second.Rooms[id]
		if !ok {
			t.Fatalf("room %d missing from second run", id)
		}
		if room.Position != other.Position || room.RoomType != other.RoomType {
			t.Fatalf("room %d differs across runs: %+v vs %+v", id, room, other)
		}
	}
}

func TestGenerateBossMustBeDeadEnd(t *testing.T) {
	cfg := baseConfig(t, 555, 10)
	cfg.Constraints = []constraint.Constraint[string]{
		constraint.MustBeDeadEnd[string]("boss"),
	}
	fl, err := Generate[string](cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fl.Graph.Adjacency()[fl.BossRoomID]) != 1 {
		t.Fatalf("expected boss room to be a dead end, has %d connections", len(fl.Graph.Adjacency()[fl.BossRoomID]))
	}
}

func TestGenerateRejectsTooFewRoomsForRequirements(t *testing.T) {
	cfg := baseConfig(t, 1, 3)
	cfg.Templates = append(cfg.Templates, fourDoorSquare(t, "treasure-tpl", []string{"treasure"}))
	cfg.RoomRequirements = []assign.Requirement[string]{{Type: "treasure", Count: 5}}

	_, err := Generate[string](cfg)
	if err == nil {
		t.Fatalf("expected an error for an unsatisfiable room count")
	}
	var cfgErr *dungeonerr.InvalidConfigurationError
	if !asInvalidConfig(err, &cfgErr) {
		t.Fatalf("expected InvalidConfigurationError, got %T: %v", err, err)
	}
}

func TestGenerateHallwayAlwaysForcesHallwaysEverywhere(t *testing.T) {
	cfg := baseConfig(t, 42, 6)
	cfg.HallwayMode = spatial.HallwayAlways
	fl, err := Generate[string](cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range fl.Graph.Connections {
		if !c.RequiresHallway {
			t.Fatalf("expected every connection to require a hallway under HallwayAlways, got %+v", c)
		}
	}
	if len(fl.Hallways) == 0 {
		t.Fatalf("expected at least one routed hallway")
	}
}

func TestGenerateSecretPassages(t *testing.T) {
	cfg := baseConfig(t, 777, 12)
	cfg.SecretPassages = &secret.Config[string]{
		Count:                        2,
		MaxSpatialDistance:           20,
		AllowGraphConnectedRooms:     false,
		AllowCriticalPathConnections: true,
	}
	fl, err := Generate[string](cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fl.SecretPassages) > 2 {
		t.Fatalf("expected at most 2 secret passages, got %d", len(fl.SecretPassages))
	}
}

func TestGenerateRejectsEmptyTemplates(t *testing.T) {
	cfg := baseConfig(t, 1, 2)
	cfg.Templates = nil
	if _, err := Generate[string](cfg); err == nil {
		t.Fatalf("expected an error when no templates are configured")
	}
}

func TestGenerateRejectsRoomCountBelowTwo(t *testing.T) {
	cfg := baseConfig(t, 1, 1)
	if _, err := Generate[string](cfg); err == nil {
		t.Fatalf("expected an error for room_count < 2")
	}
}

func TestGenerateNoneModeCanFailPlacement(t *testing.T) {
	// A north-only door template can never pair with itself, so
	// HallwayNone must surface a placement error rather than silently
	// dropping a connection.
	cells := []geom.Cell{{X: 0, Y: 0}}
	doors := map[geom.Cell]geom.Edge{{X: 0, Y: 0}: geom.North}
	northOnly, err := template.New[string]("north-only", []string{"spawn", "boss", "default"}, cells, doors, 1, nil)
	if err != nil {
		t.Fatalf("building template: %v", err)
	}
	cfg := baseConfig(t, 3, 2)
	cfg.Templates = []*template.RoomTemplate[string]{northOnly}
	cfg.HallwayMode = spatial.HallwayNone

	if _, err := Generate[string](cfg); err == nil {
		t.Fatalf("expected a spatial placement error under HallwayNone")
	}
}

func TestGenerateWeightedTemplateDistribution(t *testing.T) {
	heavy := fourDoorSquare(t, "heavy", []string{"default"})
	heavy.Weight = 9
	light := fourDoorSquare(t, "light", []string{"default"})
	light.Weight = 1

	counts := map[string]int{}
	for seed := int64(0); seed < 200; seed++ {
		cfg := baseConfig(t, seed, 3)
		cfg.Templates = []*template.RoomTemplate[string]{
			fourDoorSquare(t, "spawn-tpl", []string{"spawn"}),
			fourDoorSquare(t, "boss-tpl", []string{"boss"}),
			heavy, light,
		}
		fl, err := Generate[string](cfg)
		if err != nil {
			t.Fatalf("unexpected error at seed %d: %v", seed, err)
		}
		for _, room := range fl.Rooms {
			if room.RoomType == "default" {
				counts[room.Template.ID]++
			}
		}
	}
	if counts["heavy"] <= counts["light"] {
		t.Fatalf("expected the weight-9 template to be selected more often than the weight-1 template, got heavy=%d light=%d", counts["heavy"], counts["light"])
	}
}

func asInvalidConfig(err error, target **dungeonerr.InvalidConfigurationError) bool {
	e, ok := err.(*dungeonerr.InvalidConfigurationError)
	if ok {
		*target = e
	}
	return ok
}

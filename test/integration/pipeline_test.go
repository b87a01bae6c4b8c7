package integration

import (
	"bytes"
	"testing"

	"pgregory.net/rapid"

	"github.com/hollowspire/dungeongen/assign"
	"github.com/hollowspire/dungeongen/constraint"
	"github.com/hollowspire/dungeongen/export/jsonexport"
	"github.com/hollowspire/dungeongen/floor"
	"github.com/hollowspire/dungeongen/geom"
	"github.com/hollowspire/dungeongen/secret"
	"github.com/hollowspire/dungeongen/spatial"
	"github.com/hollowspire/dungeongen/template"
)

// threeByThree builds a 3x3 template with a centered door on each side,
// valid for the given room types.
func threeByThree(t *testing.T, id string, types []string) *template.RoomTemplate[string] {
	t.Helper()
	var cells []geom.Cell
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			cells = append(cells, geom.Cell{X: x, Y: y})
		}
	}
	doors := map[geom.Cell]geom.Edge{
		{X: 1, Y: 0}: geom.North,
		{X: 1, Y: 2}: geom.South,
		{X: 2, Y: 1}: geom.East,
		{X: 0, Y: 1}: geom.West,
	}
	tpl, err := template.New[string](id, types, cells, doors, 1, nil)
	if err != nil {
		t.Fatalf("building template %s: %v", id, err)
	}
	return tpl
}

func config(t *testing.T, seed int64, roomCount int) floor.FloorConfig[string] {
	t.Helper()
	allTypes := []string{"spawn", "boss", "combat"}
	return floor.FloorConfig[string]{
		Seed:            seed,
		RoomCount:       roomCount,
		SpawnRoomType:   "spawn",
		BossRoomType:    "boss",
		DefaultRoomType: "combat",
		Templates: []*template.RoomTemplate[string]{
			threeByThree(t, "chamber", allTypes),
		},
		HallwayMode: spatial.HallwayAsNeeded,
	}
}

func worldCellSet(fl *floor.FloorLayout[string], id int) map[geom.Cell]bool {
	set := make(map[geom.Cell]bool)
	for _, c := range fl.WorldCells(id) {
		set[c] = true
	}
	return set
}

func TestTwoRoomFloor(t *testing.T) {
	cfg := config(t, 12345, 2)
	cfg.HallwayMode = spatial.HallwayNone
	fl, err := floor.Generate[string](cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fl.Rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(fl.Rooms))
	}
	if len(fl.Graph.Connections) != 1 {
		t.Fatalf("expected 1 connection, got %d", len(fl.Graph.Connections))
	}
	if fl.Rooms[0].Position != (geom.Cell{}) {
		t.Fatalf("spawn anchor should be the origin, got %v", fl.Rooms[0].Position)
	}
	if len(fl.CriticalPath) != 2 || fl.CriticalPath[0] != 0 || fl.CriticalPath[1] != 1 {
		t.Fatalf("expected critical path [0 1], got %v", fl.CriticalPath)
	}
	if len(fl.Hallways) != 0 {
		t.Fatalf("expected no hallways under HallwayNone, got %d", len(fl.Hallways))
	}
	if len(fl.Doors) < 2 {
		t.Fatalf("expected a door on each side of the shared wall, got %d doors", len(fl.Doors))
	}
}

func TestSameSeedIsByteIdentical(t *testing.T) {
	cfg := config(t, 12345, 10)
	a, err := floor.Generate[string](cfg)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	b, err := floor.Generate[string](cfg)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	jsonA, err := jsonexport.Export[string](a)
	if err != nil {
		t.Fatalf("export a: %v", err)
	}
	jsonB, err := jsonexport.Export[string](b)
	if err != nil {
		t.Fatalf("export b: %v", err)
	}
	if !bytes.Equal(jsonA, jsonB) {
		t.Fatalf("same seed produced different layouts:\n%s\n---\n%s", jsonA, jsonB)
	}
}

func TestBossDeadEndAtDistance(t *testing.T) {
	cfg := config(t, 7, 10)
	cfg.BranchingFactor = 0
	cfg.Constraints = []constraint.Constraint[string]{
		constraint.MustBeDeadEnd[string]("boss"),
		constraint.MinDistanceFromStart[string]("boss", 2),
	}
	fl, err := floor.Generate[string](cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fl.Graph.Connections) != 9 {
		t.Fatalf("branching 0 should yield a pure tree with 9 edges, got %d", len(fl.Graph.Connections))
	}
	boss := fl.Graph.Nodes[fl.BossRoomID]
	if boss.ConnectionCount != 1 {
		t.Fatalf("boss should be a dead end, has %d connections", boss.ConnectionCount)
	}
	if boss.DistanceFromStart < 2 {
		t.Fatalf("boss should be at distance >= 2, got %d", boss.DistanceFromStart)
	}
	// In a tree the farthest node is always a leaf, so the boss must sit
	// at the tree's maximum distance from the spawn.
	for _, n := range fl.Graph.Nodes {
		if n.DistanceFromStart > boss.DistanceFromStart {
			t.Fatalf("node %d is farther (%d) than the boss (%d)", n.ID, n.DistanceFromStart, boss.DistanceFromStart)
		}
	}
}

func TestRequirementsAreSatisfiedExactly(t *testing.T) {
	cfg := config(t, 21, 9)
	cfg.Templates = append(cfg.Templates,
		threeByThree(t, "shop-tpl", []string{"shop"}),
		threeByThree(t, "treasure-tpl", []string{"treasure"}),
	)
	cfg.RoomRequirements = []assign.Requirement[string]{
		{Type: "shop", Count: 2},
		{Type: "treasure", Count: 1},
	}
	fl, err := floor.Generate[string](cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	counts := map[string]int{}
	for _, id := range fl.RoomOrder {
		counts[fl.Rooms[id].RoomType]++
	}
	if counts["shop"] != 2 || counts["treasure"] != 1 {
		t.Fatalf("expected 2 shops and 1 treasure, got %v", counts)
	}
	if counts["spawn"] != 1 || counts["boss"] != 1 {
		t.Fatalf("expected exactly one spawn and one boss, got %v", counts)
	}
}

func TestRoomsNeverOverlap(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 50, 99} {
		fl, err := floor.Generate[string](config(t, seed, 14))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		claimed := map[geom.Cell]int{}
		for _, id := range fl.RoomOrder {
			for _, c := range fl.WorldCells(id) {
				if prev, taken := claimed[c]; taken {
					t.Fatalf("seed %d: cell %v claimed by rooms %d and %d", seed, c, prev, id)
				}
				claimed[c] = id
			}
		}
	}
}

func TestHallwaysStayOutOfRooms(t *testing.T) {
	cfg := config(t, 42, 12)
	cfg.HallwayMode = spatial.HallwayAlways
	fl, err := floor.Generate[string](cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fl.Hallways) != len(fl.Graph.Connections) {
		t.Fatalf("HallwayAlways should route one hallway per connection: %d hallways for %d connections",
			len(fl.Hallways), len(fl.Graph.Connections))
	}

	roomCells := map[geom.Cell]bool{}
	for _, id := range fl.RoomOrder {
		for _, c := range fl.WorldCells(id) {
			roomCells[c] = true
		}
	}
	hallwayCells := map[geom.Cell]string{}
	for _, h := range fl.Hallways {
		if len(h.Cells) == 0 {
			t.Fatalf("hallway %s has no cells", h.ID)
		}
		if len(h.Segments) == 0 {
			t.Fatalf("hallway %s has no segments", h.ID)
		}
		for _, c := range h.Cells {
			if roomCells[c] {
				t.Fatalf("hallway %s passes through a room at %v", h.ID, c)
			}
			if prev, taken := hallwayCells[c]; taken && prev != h.ID {
				t.Fatalf("hallways %s and %s share cell %v", prev, h.ID, c)
			}
			hallwayCells[c] = h.ID
		}
	}
}

func TestDistanceMatchesBFS(t *testing.T) {
	fl, err := floor.Generate[string](config(t, 8, 12))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	adjacency := fl.Graph.Adjacency()
	dist := make([]int, len(fl.Graph.Nodes))
	for i := range dist {
		dist[i] = -1
	}
	dist[0] = 0
	queue := []int{0}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adjacency[cur] {
			if dist[next] == -1 {
				dist[next] = dist[cur] + 1
				queue = append(queue, next)
			}
		}
	}
	for _, n := range fl.Graph.Nodes {
		if n.DistanceFromStart != dist[n.ID] {
			t.Fatalf("node %d: DistanceFromStart=%d, BFS says %d", n.ID, n.DistanceFromStart, dist[n.ID])
		}
	}
}

func TestCriticalPathIsShortest(t *testing.T) {
	fl, err := floor.Generate[string](config(t, 31, 11))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	path := fl.CriticalPath
	if path[0] != fl.SpawnRoomID || path[len(path)-1] != fl.BossRoomID {
		t.Fatalf("critical path endpoints wrong: %v (spawn %d, boss %d)", path, fl.SpawnRoomID, fl.BossRoomID)
	}
	for i := 0; i+1 < len(path); i++ {
		if !fl.Graph.AreConnected(path[i], path[i+1]) {
			t.Fatalf("critical path hop %d-%d is not a graph edge", path[i], path[i+1])
		}
	}
	bossDist := fl.Graph.Nodes[fl.BossRoomID].DistanceFromStart
	if len(path)-1 != bossDist {
		t.Fatalf("critical path length %d exceeds BFS distance %d", len(path)-1, bossDist)
	}
}

func TestDoorsSitOnTemplateDoorEdges(t *testing.T) {
	fl, err := floor.Generate[string](config(t, 5, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, d := range fl.Doors {
		owned := false
		for _, id := range fl.RoomOrder {
			room := fl.Rooms[id]
			local := geom.Cell{X: d.Position.X - room.Position.X, Y: d.Position.Y - room.Position.Y}
			if mask, ok := room.Template.DoorEdges[local]; ok && mask.Has(d.Edge) {
				if worldCellSet(fl, id)[d.Position] {
					owned = true
					break
				}
			}
		}
		if !owned {
			t.Fatalf("door at %v edge %v does not match any room's permitted door edges", d.Position, d.Edge)
		}
	}
}

func TestSecretPassagesSkipGraphEdges(t *testing.T) {
	cfg := config(t, 64, 10)
	cfg.SecretPassages = &secret.Config[string]{
		Count:                        1,
		MaxSpatialDistance:           12,
		AllowGraphConnectedRooms:     false,
		AllowCriticalPathConnections: true,
	}
	fl, err := floor.Generate[string](cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fl.SecretPassages) > 1 {
		t.Fatalf("expected at most 1 secret passage, got %d", len(fl.SecretPassages))
	}
	for _, p := range fl.SecretPassages {
		if fl.Graph.AreConnected(p.RoomA, p.RoomB) {
			t.Fatalf("secret passage %d-%d duplicates a graph edge", p.RoomA, p.RoomB)
		}
	}
}

func TestTemplatesAreSharedNotCopied(t *testing.T) {
	cfg := config(t, 13, 6)
	fl, err := floor.Generate[string](cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, id := range fl.RoomOrder {
		if fl.Rooms[id].Template != cfg.Templates[0] {
			t.Fatalf("room %d carries a template that is not the configured instance", id)
		}
	}
}

func TestGenerationPropertiesHold(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		roomCount := rapid.IntRange(2, 20).Draw(rt, "roomCount")
		branching := rapid.Float64Range(0, 1).Draw(rt, "branching")

		cfg := config(t, seed, roomCount)
		cfg.BranchingFactor = branching
		fl, err := floor.Generate[string](cfg)
		if err != nil {
			rt.Fatalf("seed %d n %d: %v", seed, roomCount, err)
		}

		if len(fl.Rooms) != roomCount {
			rt.Fatalf("expected %d rooms, got %d", roomCount, len(fl.Rooms))
		}
		claimed := map[geom.Cell]bool{}
		for _, id := range fl.RoomOrder {
			for _, c := range fl.WorldCells(id) {
				if claimed[c] {
					rt.Fatalf("overlapping room cell %v", c)
				}
				claimed[c] = true
			}
		}
		for _, h := range fl.Hallways {
			for _, c := range h.Cells {
				if claimed[c] {
					rt.Fatalf("hallway cell %v inside a room or another hallway", c)
				}
				claimed[c] = true
			}
		}
	})
}

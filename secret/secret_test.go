package secret

import (
	"testing"

	"github.com/hollowspire/dungeongen/geom"
	"github.com/hollowspire/dungeongen/graphgen"
	"github.com/hollowspire/dungeongen/seeding"
	"github.com/hollowspire/dungeongen/spatial"
	"github.com/hollowspire/dungeongen/template"
)

func fourDoorSquare(t *testing.T, id string) *template.RoomTemplate[string] {
	t.Helper()
	cells := []geom.Cell{{X: 0, Y: 0}}
	doors := map[geom.Cell]geom.Edge{{X: 0, Y: 0}: geom.North | geom.South | geom.East | geom.West}
	tpl, err := template.New[string](id, []string{"room"}, cells, doors, 1, nil)
	if err != nil {
		t.Fatalf("building template: %v", err)
	}
	return tpl
}

func TestGenerateConnectsEligiblePair(t *testing.T) {
	// Two far-apart nodes in a 4-node chain, not graph-adjacent, not on
	// a forced critical path exclusion.
	g, err := graphgen.New(4, [][2]int{{0, 1}, {1, 2}, {2, 3}})
	if err != nil {
		t.Fatalf("graph: %v", err)
	}
	g.CriticalPath = nil

	tpl := fourDoorSquare(t, "sq")
	placements := map[int]*spatial.PlacedRoom[string]{
		0: {NodeID: 0, RoomType: "room", Template: tpl, Position: geom.Cell{X: 0, Y: 0}},
		1: {NodeID: 1, RoomType: "room", Template: tpl, Position: geom.Cell{X: 1, Y: 0}},
		2: {NodeID: 2, RoomType: "room", Template: tpl, Position: geom.Cell{X: 20, Y: 0}},
		3: {NodeID: 3, RoomType: "room", Template: tpl, Position: geom.Cell{X: 21, Y: 0}},
	}
	assignment := map[int]string{0: "room", 1: "room", 2: "room", 3: "room"}
	occupied := map[geom.Cell]struct{}{
		{X: 0, Y: 0}: {}, {X: 1, Y: 0}: {}, {X: 20, Y: 0}: {}, {X: 21, Y: 0}: {},
	}

	cfg := Config[string]{
		Count:                    1,
		MaxSpatialDistance:       30,
		AllowGraphConnectedRooms: false,
	}
	streams := seeding.Expand(3)
	passages, doors, err := Generate[string](cfg, g, assignment, placements, occupied, streams.Hallway)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(passages) != 1 {
		t.Fatalf("expected 1 secret passage, got %d", len(passages))
	}
	p := passages[0]
	if _, connected := g.ConnectionIndex()[[2]int{p.RoomA, p.RoomB}]; connected {
		t.Fatalf("secret passage should not reuse an existing graph edge")
	}
	if len(doors) != 2 {
		t.Fatalf("expected 2 door records, got %d", len(doors))
	}
}

func TestGenerateSkipsForbiddenTypes(t *testing.T) {
	g, err := graphgen.New(2, [][2]int{{0, 1}})
	if err != nil {
		t.Fatalf("graph: %v", err)
	}
	tpl := fourDoorSquare(t, "sq")
	placements := map[int]*spatial.PlacedRoom[string]{
		0: {NodeID: 0, RoomType: "vault", Template: tpl, Position: geom.Cell{X: 0, Y: 0}},
		1: {NodeID: 1, RoomType: "shop", Template: tpl, Position: geom.Cell{X: 50, Y: 50}},
	}
	assignment := map[int]string{0: "vault", 1: "shop"}
	occupied := map[geom.Cell]struct{}{}

	cfg := Config[string]{
		Count:                    1,
		MaxSpatialDistance:       1000,
		ForbiddenRoomTypes:       []string{"vault"},
		AllowGraphConnectedRooms: true,
	}
	streams := seeding.Expand(3)
	passages, _, err := Generate[string](cfg, g, assignment, placements, occupied, streams.Hallway)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(passages) != 0 {
		t.Fatalf("expected no passages since one room type is forbidden, got %d", len(passages))
	}
}

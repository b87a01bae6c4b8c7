package jsonexport

import (
	"encoding/json"
	"testing"

	"github.com/hollowspire/dungeongen/floor"
	"github.com/hollowspire/dungeongen/geom"
	"github.com/hollowspire/dungeongen/template"
)

func sampleLayout(t *testing.T) *floor.FloorLayout[string] {
	t.Helper()
	cells := []geom.Cell{{X: 0, Y: 0}}
	doors := map[geom.Cell]geom.Edge{{X: 0, Y: 0}: geom.North | geom.South | geom.East | geom.West}
	mk := func(id string, types []string) *template.RoomTemplate[string] {
		tpl, err := template.New[string](id, types, cells, doors, 1, nil)
		if err != nil {
			t.Fatalf("template.New: %v", err)
		}
		return tpl
	}
	cfg := floor.FloorConfig[string]{
		Seed: 42, RoomCount: 6, SpawnRoomType: "spawn", BossRoomType: "boss", DefaultRoomType: "default",
		Templates: []*template.RoomTemplate[string]{
			mk("spawn-tpl", []string{"spawn"}),
			mk("boss-tpl", []string{"boss"}),
			mk("default-tpl", []string{"default"}),
		},
	}
	fl, err := floor.Generate[string](cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return fl
}

func TestExportRoundTrip(t *testing.T) {
	fl := sampleLayout(t)
	data, err := Export[string](fl)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if doc.Seed != fl.Seed {
		t.Errorf("Seed = %d, want %d", doc.Seed, fl.Seed)
	}
	if doc.SpawnRoomID != fl.SpawnRoomID {
		t.Errorf("SpawnRoomID = %d, want %d", doc.SpawnRoomID, fl.SpawnRoomID)
	}
	if doc.BossRoomID != fl.BossRoomID {
		t.Errorf("BossRoomID = %d, want %d", doc.BossRoomID, fl.BossRoomID)
	}
	if len(doc.CriticalPath) != len(fl.CriticalPath) {
		t.Errorf("len(CriticalPath) = %d, want %d", len(doc.CriticalPath), len(fl.CriticalPath))
	}
	if len(doc.Rooms) != len(fl.Rooms) {
		t.Fatalf("len(Rooms) = %d, want %d", len(doc.Rooms), len(fl.Rooms))
	}

	for _, rd := range doc.Rooms {
		room, ok := fl.Rooms[rd.NodeID]
		if !ok {
			t.Fatalf("unmarshaled room id %d not present in original layout", rd.NodeID)
		}
		if rd.RoomType != room.RoomType {
			t.Errorf("room %d: RoomType = %q, want %q", rd.NodeID, rd.RoomType, room.RoomType)
		}
		if rd.TemplateID != room.Template.ID {
			t.Errorf("room %d: TemplateID = %q, want %q", rd.NodeID, rd.TemplateID, room.Template.ID)
		}
		if rd.Anchor.X != room.Position.X || rd.Anchor.Y != room.Position.Y {
			t.Errorf("room %d: Anchor = %+v, want %+v", rd.NodeID, rd.Anchor, room.Position)
		}
		if len(rd.Cells) != len(fl.WorldCells(rd.NodeID)) {
			t.Errorf("room %d: len(Cells) = %d, want %d", rd.NodeID, len(rd.Cells), len(fl.WorldCells(rd.NodeID)))
		}
	}

	if len(doc.Doors) != len(fl.Doors) {
		t.Errorf("len(Doors) = %d, want %d", len(doc.Doors), len(fl.Doors))
	}
	if len(doc.Hallways) != len(fl.Hallways) {
		t.Errorf("len(Hallways) = %d, want %d", len(doc.Hallways), len(fl.Hallways))
	}
}

func TestExportOmitsEmptyOptionalSections(t *testing.T) {
	fl := sampleLayout(t)
	data, err := Export[string](fl)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, present := raw["zones"]; present {
		t.Errorf("expected zones to be omitted when the config supplied none")
	}
}

func TestExportCompactIsValidJSON(t *testing.T) {
	fl := sampleLayout(t)
	data, err := ExportCompact[string](fl)
	if err != nil {
		t.Fatalf("ExportCompact: %v", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(doc.Rooms) != len(fl.Rooms) {
		t.Errorf("len(Rooms) = %d, want %d", len(doc.Rooms), len(fl.Rooms))
	}
}

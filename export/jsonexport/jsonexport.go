// Package jsonexport serializes a floor.FloorLayout to JSON.
// FloorLayout itself can't be marshaled directly: its templates carry
// map[geom.Cell]Edge fields, and encoding/json rejects struct-typed map
// keys, so this package flattens the layout into a JSON-friendly
// document instead of re-exporting template internals.
package jsonexport

import (
	"encoding/json"
	"os"

	"github.com/hollowspire/dungeongen/floor"
	"github.com/hollowspire/dungeongen/geom"
)

// Document is the JSON-serializable projection of a FloorLayout.
type Document struct {
	Seed            int64          `json:"seed"`
	SpawnRoomID     int            `json:"spawn_room_id"`
	BossRoomID      int            `json:"boss_room_id"`
	CriticalPath    []int          `json:"critical_path"`
	Rooms           []RoomDoc      `json:"rooms"`
	Doors           []DoorDoc      `json:"doors"`
	Hallways        []HallwayDoc   `json:"hallways"`
	SecretPassages  []SecretDoc    `json:"secret_passages"`
	Zones           map[int]string `json:"zones,omitempty"`
	TransitionRooms []int          `json:"transition_rooms,omitempty"`
	Clusters        []ClusterDoc   `json:"clusters,omitempty"`
}

// RoomDoc is the JSON form of a placed room.
type RoomDoc struct {
	NodeID     int       `json:"node_id"`
	RoomType   string    `json:"room_type"`
	TemplateID string    `json:"template_id"`
	Anchor     CellDoc   `json:"anchor"`
	Cells      []CellDoc `json:"cells"`
	Difficulty float64   `json:"difficulty"`
}

// CellDoc is a JSON-safe (x,y) pair; geom.Cell can't be a JSON object key
// (encoding/json accepts only string, integer or TextMarshaler keys), so
// every cell reference here is a value, never a map key.
type CellDoc struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// DoorDoc is the JSON form of a spatial.Door.
type DoorDoc struct {
	Position         CellDoc `json:"position"`
	Edge             string  `json:"edge"`
	ConnectsToRoomID int     `json:"connects_to_room_id,omitempty"`
	HasRoom          bool    `json:"has_room"`
	HallwayID        string  `json:"hallway_id,omitempty"`
	HasHallway       bool    `json:"has_hallway"`
}

// HallwayDoc is the JSON form of a hallway.Hallway.
type HallwayDoc struct {
	ID    string    `json:"id"`
	Cells []CellDoc `json:"cells"`
}

// SecretDoc is the JSON form of a secret.Passage.
type SecretDoc struct {
	RoomA           int  `json:"room_a"`
	RoomB           int  `json:"room_b"`
	RequiresHallway bool `json:"requires_hallway"`
}

// ClusterDoc is the JSON form of a cluster.Cluster.
type ClusterDoc struct {
	ClusterID     string  `json:"cluster_id"`
	RoomType      string  `json:"room_type"`
	MemberRoomIDs []int   `json:"member_room_ids"`
	CentroidX     float64 `json:"centroid_x"`
	CentroidY     float64 `json:"centroid_y"`
}

// ToDocument flattens a FloorLayout into its JSON-safe projection.
func ToDocument[T comparable](fl *floor.FloorLayout[T]) Document {
	doc := Document{
		Seed:            fl.Seed,
		SpawnRoomID:     fl.SpawnRoomID,
		BossRoomID:      fl.BossRoomID,
		CriticalPath:    fl.CriticalPath,
		TransitionRooms: fl.TransitionRooms,
	}

	for _, id := range fl.RoomOrder {
		room := fl.Rooms[id]
		cells := make([]CellDoc, 0, len(fl.WorldCells(id)))
		for _, c := range fl.WorldCells(id) {
			cells = append(cells, cellDoc(c))
		}
		doc.Rooms = append(doc.Rooms, RoomDoc{
			NodeID:     id,
			RoomType:   typeName(room.RoomType),
			TemplateID: room.Template.ID,
			Anchor:     cellDoc(room.Position),
			Cells:      cells,
			Difficulty: fl.Difficulty[id],
		})
	}

	for _, d := range fl.Doors {
		doc.Doors = append(doc.Doors, DoorDoc{
			Position:         cellDoc(d.Position),
			Edge:             d.Edge.String(),
			ConnectsToRoomID: d.ConnectsToRoomID,
			HasRoom:          d.HasRoom,
			HallwayID:        d.HallwayID,
			HasHallway:       d.HasHallway,
		})
	}

	for _, h := range fl.Hallways {
		cells := make([]CellDoc, 0, len(h.Cells))
		for _, c := range h.Cells {
			cells = append(cells, cellDoc(c))
		}
		doc.Hallways = append(doc.Hallways, HallwayDoc{ID: h.ID, Cells: cells})
	}

	for _, p := range fl.SecretPassages {
		doc.SecretPassages = append(doc.SecretPassages, SecretDoc{
			RoomA:           p.RoomA,
			RoomB:           p.RoomB,
			RequiresHallway: p.RequiresHallway,
		})
	}

	if fl.ZoneOf != nil {
		doc.Zones = fl.ZoneOf
	}

	for _, c := range fl.Clusters {
		doc.Clusters = append(doc.Clusters, ClusterDoc{
			ClusterID:     c.ClusterID,
			RoomType:      typeName(c.RoomType),
			MemberRoomIDs: c.MemberRoomIDs,
			CentroidX:     c.CentroidX,
			CentroidY:     c.CentroidY,
		})
	}

	return doc
}

func cellDoc(c geom.Cell) CellDoc { return CellDoc{X: c.X, Y: c.Y} }

func typeName[T comparable](t T) string {
	if s, ok := any(t).(string); ok {
		return s
	}
	return jsonStringify(t)
}

func jsonStringify(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

// Export serializes fl to indented JSON.
func Export[T comparable](fl *floor.FloorLayout[T]) ([]byte, error) {
	return json.MarshalIndent(ToDocument(fl), "", "  ")
}

// ExportCompact serializes fl to compact JSON.
func ExportCompact[T comparable](fl *floor.FloorLayout[T]) ([]byte, error) {
	return json.Marshal(ToDocument(fl))
}

// SaveToFile exports fl to an indented JSON file.
func SaveToFile[T comparable](fl *floor.FloorLayout[T], path string) error {
	data, err := Export(fl)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

package floor

import (
	"sort"

	"github.com/hollowspire/dungeongen/cluster"
	"github.com/hollowspire/dungeongen/geom"
	"github.com/hollowspire/dungeongen/graphgen"
	"github.com/hollowspire/dungeongen/hallway"
	"github.com/hollowspire/dungeongen/secret"
	"github.com/hollowspire/dungeongen/spatial"
)

// Door is a door emitted somewhere in the finished layout: on a shared
// wall between two rooms, or at a hallway's end. What the door opens onto
// is carried by spatial.Door's HasRoom/HasHallway flags.
type Door = spatial.Door

// FloorLayout is the complete, immutable output of a single Generate
// call. Every field is populated exactly once during generation and never
// mutated afterward.
type FloorLayout[T comparable] struct {
	Seed  int64
	Graph *graphgen.FloorGraph

	Rooms     map[int]*spatial.PlacedRoom[T]
	RoomOrder []int // ascending node id, for deterministic iteration

	Doors          []Door
	Hallways       []hallway.Hallway
	SecretPassages []secret.Passage

	CriticalPath []int
	SpawnRoomID  int
	BossRoomID   int

	// ZoneOf is nil when the config supplied no zones.
	ZoneOf          map[int]string
	TransitionRooms []int

	Clusters []cluster.Cluster[T]

	Difficulty map[int]float64
}

// WorldCells returns the world cells occupied by the room with the given
// node id, or nil if no such room was placed.
func (fl *FloorLayout[T]) WorldCells(nodeID int) []geom.Cell {
	room, ok := fl.Rooms[nodeID]
	if !ok {
		return nil
	}
	return room.WorldCells()
}

func ascendingRoomIDs[T comparable](rooms map[int]*spatial.PlacedRoom[T]) []int {
	ids := make([]int, 0, len(rooms))
	for id := range rooms {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

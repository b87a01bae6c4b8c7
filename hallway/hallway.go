package hallway

import (
	"fmt"
	"sort"

	"github.com/hollowspire/dungeongen/dungeonerr"
	"github.com/hollowspire/dungeongen/geom"
	"github.com/hollowspire/dungeongen/graphgen"
	"github.com/hollowspire/dungeongen/spatial"
)

// Segment is an axis-aligned run of contiguous cells.
type Segment struct {
	Start, End geom.Cell
}

// Hallway is a routed corridor between two rooms' doors.
type Hallway struct {
	ID       string
	Segments []Segment
	Cells    []geom.Cell
	DoorA    spatial.Door
	DoorB    spatial.Door
}

type doorChoice struct {
	cand spatial.DoorCandidate
	exit geom.Cell
}

// RouteAll routes a hallway for every graph connection marked
// RequiresHallway, in g.Connections order. Each routed hallway's cells
// are appended to occupied so later hallways in the same pass, and the
// secret-passage pass afterward, never overlap an earlier one.
func RouteAll[T comparable](g *graphgen.FloorGraph, placements map[int]*spatial.PlacedRoom[T], occupied map[geom.Cell]struct{}) ([]Hallway, []spatial.Door, error) {
	var hallways []Hallway
	var doors []spatial.Door
	seq := 0

	for _, c := range g.Connections {
		if !c.RequiresHallway {
			continue
		}
		hw, hwDoors, err := RouteBetween(c.A, c.B, placements[c.A], placements[c.B], occupied, fmt.Sprintf("hallway-%d", seq))
		if err != nil {
			return nil, nil, err
		}
		seq++
		hallways = append(hallways, hw)
		doors = append(doors, hwDoors...)
		for _, cell := range hw.Cells {
			occupied[cell] = struct{}{}
		}
	}
	return hallways, doors, nil
}

// RouteBetween routes a single hallway between two already-placed rooms,
// identified by a/b for error reporting. It does not touch occupied;
// callers append the hallway's Cells themselves once they accept the
// route, so the same helper serves both the bulk RouteAll pass and the
// one-off routing a secret passage needs.
func RouteBetween[T comparable](a, b int, roomA, roomB *spatial.PlacedRoom[T], occupied map[geom.Cell]struct{}, id string) (Hallway, []spatial.Door, error) {
	choiceA, choiceB, ok := bestDoorPair(roomA, roomB, occupied)
	if !ok {
		return Hallway{}, nil, dungeonerr.HallwayRoutingFailure(a, b, "no door pair with unblocked exit cells on both rooms")
	}

	path, ok := astar(choiceA.exit, choiceB.exit, occupied)
	if !ok {
		return Hallway{}, nil, dungeonerr.HallwayRoutingFailure(a, b, "A* found no route between the chosen doors")
	}

	hw := Hallway{
		ID:       id,
		Segments: collapseSegments(path),
		Cells:    path,
	}
	doorA := spatial.Door{Position: roomA.Position.Add(choiceA.cand.Cell), Edge: choiceA.cand.Edge, HallwayID: hw.ID, HasHallway: true}
	doorB := spatial.Door{Position: roomB.Position.Add(choiceB.cand.Cell), Edge: choiceB.cand.Edge, HallwayID: hw.ID, HasHallway: true}
	hw.DoorA = doorA
	hw.DoorB = doorB
	return hw, []spatial.Door{doorA, doorB}, nil
}

// bestDoorPair picks the (doorA, doorB) combination with the shortest
// Manhattan distance between the cells immediately outside each door,
// tiebroken by lexicographic order of (cellA, edgeA, cellB, edgeB).
// Combinations whose exit cell is already occupied (by a room or an
// earlier hallway) are excluded: a hallway endpoint must be a free cell,
// so flush-adjacent rooms route from doors facing open space instead.
func bestDoorPair[T comparable](roomA, roomB *spatial.PlacedRoom[T], occupied map[geom.Cell]struct{}) (doorChoice, doorChoice, bool) {
	candsA := spatial.EnumerateDoors(roomA.Template)
	candsB := spatial.EnumerateDoors(roomB.Template)
	if len(candsA) == 0 || len(candsB) == 0 {
		return doorChoice{}, doorChoice{}, false
	}

	type combo struct {
		a, b doorChoice
		dist int
	}
	var combos []combo
	for _, ca := range candsA {
		exitA := roomA.Position.Add(ca.Cell).Neighbor(ca.Edge)
		if _, blocked := occupied[exitA]; blocked {
			continue
		}
		for _, cb := range candsB {
			exitB := roomB.Position.Add(cb.Cell).Neighbor(cb.Edge)
			if _, blocked := occupied[exitB]; blocked {
				continue
			}
			combos = append(combos, combo{
				a:    doorChoice{cand: ca, exit: exitA},
				b:    doorChoice{cand: cb, exit: exitB},
				dist: exitA.ManhattanDistance(exitB),
			})
		}
	}
	if len(combos) == 0 {
		return doorChoice{}, doorChoice{}, false
	}

	sort.Slice(combos, func(i, j int) bool {
		if combos[i].dist != combos[j].dist {
			return combos[i].dist < combos[j].dist
		}
		if combos[i].a.cand.Cell != combos[j].a.cand.Cell {
			return combos[i].a.cand.Cell.Less(combos[j].a.cand.Cell)
		}
		if combos[i].a.cand.Edge != combos[j].a.cand.Edge {
			return combos[i].a.cand.Edge < combos[j].a.cand.Edge
		}
		if combos[i].b.cand.Cell != combos[j].b.cand.Cell {
			return combos[i].b.cand.Cell.Less(combos[j].b.cand.Cell)
		}
		return combos[i].b.cand.Edge < combos[j].b.cand.Edge
	})
	return combos[0].a, combos[0].b, true
}

// collapseSegments groups a cell path into axis-aligned runs, splitting
// at every direction change. Adjacent segments share their joint cell.
func collapseSegments(path []geom.Cell) []Segment {
	if len(path) < 2 {
		if len(path) == 1 {
			return []Segment{{Start: path[0], End: path[0]}}
		}
		return nil
	}
	var segments []Segment
	segStart := path[0]
	dx := sign(path[1].X - path[0].X)
	dy := sign(path[1].Y - path[0].Y)

	for i := 1; i < len(path); i++ {
		ndx := sign(path[i].X - path[i-1].X)
		ndy := sign(path[i].Y - path[i-1].Y)
		if ndx != dx || ndy != dy {
			segments = append(segments, Segment{Start: segStart, End: path[i-1]})
			segStart = path[i-1]
			dx, dy = ndx, ndy
		}
	}
	segments = append(segments, Segment{Start: segStart, End: path[len(path)-1]})
	return segments
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

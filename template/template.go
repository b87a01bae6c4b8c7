package template

import (
	"fmt"
	"sort"

	"github.com/hollowspire/dungeongen/geom"
)

// RoomTemplate is an immutable shape descriptor. T is the caller-supplied
// room-type tag (any finite enumeration); the template declares which room
// types it may be used for via ValidRoomTypes.
//
// A template's cells are in template-local coordinates; the anchor (world
// position a template is placed at) is always the origin of that local
// coordinate system, so WorldCells(anchor) is simply cells + anchor.
type RoomTemplate[T comparable] struct {
	ID              string
	ValidRoomTypes  map[T]struct{}
	Cells           []geom.Cell
	DoorEdges       map[geom.Cell]geom.Edge
	Weight          float64
	InteriorFeature map[geom.Cell]Feature
}

// New constructs a RoomTemplate and validates it. Cells, validRoomTypes
// and doorEdges are copied defensively so the caller's slices/maps can be
// reused or mutated after this call without affecting the template.
func New[T comparable](id string, validRoomTypes []T, cells []geom.Cell, doorEdges map[geom.Cell]geom.Edge, weight float64, interiorFeatures map[geom.Cell]Feature) (*RoomTemplate[T], error) {
	rt := &RoomTemplate[T]{
		ID:              id,
		ValidRoomTypes:  make(map[T]struct{}, len(validRoomTypes)),
		Cells:           append([]geom.Cell(nil), cells...),
		DoorEdges:       make(map[geom.Cell]geom.Edge, len(doorEdges)),
		Weight:          weight,
		InteriorFeature: make(map[geom.Cell]Feature, len(interiorFeatures)),
	}
	for _, t := range validRoomTypes {
		rt.ValidRoomTypes[t] = struct{}{}
	}
	for c, e := range doorEdges {
		rt.DoorEdges[c] = e
	}
	for c, f := range interiorFeatures {
		rt.InteriorFeature[c] = f
	}
	if err := rt.Validate(); err != nil {
		return nil, err
	}
	return rt, nil
}

// cellSet returns the template's cells as a lookup set.
func (rt *RoomTemplate[T]) cellSet() map[geom.Cell]struct{} {
	set := make(map[geom.Cell]struct{}, len(rt.Cells))
	for _, c := range rt.Cells {
		set[c] = struct{}{}
	}
	return set
}

// ExteriorEdges returns, for each cell, the set of edges not shared with
// another cell of this template. A door may only be placed on an exterior
// edge.
func (rt *RoomTemplate[T]) ExteriorEdges() map[geom.Cell]geom.Edge {
	set := rt.cellSet()
	out := make(map[geom.Cell]geom.Edge, len(rt.Cells))
	for _, c := range rt.Cells {
		var ext geom.Edge
		for _, e := range geom.AllEdges {
			if _, occupied := set[c.Neighbor(e)]; !occupied {
				ext = ext.With(e)
			}
		}
		if ext != 0 {
			out[c] = ext
		}
	}
	return out
}

// Bounds returns the template's bounding box in local coordinates.
func (rt *RoomTemplate[T]) Bounds() geom.Rect {
	return geom.BoundsOf(rt.Cells)
}

// ValidFor reports whether this template may be used for room type t.
func (rt *RoomTemplate[T]) ValidFor(t T) bool {
	_, ok := rt.ValidRoomTypes[t]
	return ok
}

// WorldCells translates the template's local cells by anchor, producing
// the set of world cells a placed room occupies.
func (rt *RoomTemplate[T]) WorldCells(anchor geom.Cell) []geom.Cell {
	out := make([]geom.Cell, len(rt.Cells))
	for i, c := range rt.Cells {
		out[i] = c.Add(anchor)
	}
	return out
}

// SortedDoorCells returns the template's door-bearing cells in
// deterministic lexicographic order; their permitted edges are in DoorEdges.
func (rt *RoomTemplate[T]) SortedDoorCells() []geom.Cell {
	cells := make([]geom.Cell, 0, len(rt.DoorEdges))
	for c := range rt.DoorEdges {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool { return cells[i].Less(cells[j]) })
	return cells
}

// Validate checks the template invariants: non-empty id, cells, valid
// room types, and door edges; door edges confined to exterior edges;
// interior features confined to cells and disjoint from door edges; and
// a positive weight.
func (rt *RoomTemplate[T]) Validate() error {
	if rt.ID == "" {
		return fmt.Errorf("template: id must not be empty")
	}
	if len(rt.Cells) == 0 {
		return fmt.Errorf("template %s: cells must not be empty", rt.ID)
	}
	if len(rt.ValidRoomTypes) == 0 {
		return fmt.Errorf("template %s: valid_room_types must not be empty", rt.ID)
	}
	if rt.Weight <= 0 {
		return fmt.Errorf("template %s: weight must be > 0, got %f", rt.ID, rt.Weight)
	}
	if len(rt.DoorEdges) == 0 {
		return fmt.Errorf("template %s: door_edges must not be empty", rt.ID)
	}

	set := rt.cellSet()
	ext := rt.ExteriorEdges()

	for c := range rt.DoorEdges {
		if _, inTemplate := set[c]; !inTemplate {
			return fmt.Errorf("template %s: door edge cell %s is not in cells", rt.ID, c)
		}
		want := rt.DoorEdges[c]
		have := ext[c]
		if want&^have != 0 {
			return fmt.Errorf("template %s: door edge at %s includes a non-exterior edge", rt.ID, c)
		}
	}

	for c, f := range rt.InteriorFeature {
		if _, inTemplate := set[c]; !inTemplate {
			return fmt.Errorf("template %s: interior feature cell %s is not in cells", rt.ID, c)
		}
		if doorEdge, hasDoor := rt.DoorEdges[c]; hasDoor && doorEdge != 0 {
			return fmt.Errorf("template %s: cell %s has both an interior feature %s and a door edge", rt.ID, c, f)
		}
	}

	return nil
}

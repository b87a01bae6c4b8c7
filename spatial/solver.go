package spatial

import (
	"sort"

	"github.com/hollowspire/dungeongen/dungeonerr"
	"github.com/hollowspire/dungeongen/geom"
	"github.com/hollowspire/dungeongen/graphgen"
	"github.com/hollowspire/dungeongen/seeding"
	"github.com/hollowspire/dungeongen/template"
)

// HallwayMode controls whether the solver may fall back to a non-adjacent
// placement when two connected rooms' templates cannot be joined directly.
type HallwayMode int

const (
	// HallwayNone forbids hallways: every connection must resolve to an
	// adjacent door-to-door placement or the solver fails.
	HallwayNone HallwayMode = iota
	// HallwayAsNeeded allows a hallway only when adjacent placement fails.
	HallwayAsNeeded
	// HallwayAlways forces every connection to require a hallway. Rooms
	// connected by a graph edge are placed with a one-cell gap between
	// their facing door cells so the hallway has at least one cell to
	// occupy.
	HallwayAlways
)

// PlacedRoom is a room anchored on the world grid.
type PlacedRoom[T comparable] struct {
	NodeID     int
	RoomType   T
	Template   *template.RoomTemplate[T]
	Position   geom.Cell
	Difficulty float64
}

// WorldCells returns the room's cells translated to world coordinates.
func (p *PlacedRoom[T]) WorldCells() []geom.Cell {
	return p.Template.WorldCells(p.Position)
}

// Door records a door cell and the exterior edge it opens onto, along
// with what lies on the other side: a specific room id, or (once the
// hallway router runs) a hallway id.
type Door struct {
	Position         geom.Cell
	Edge             geom.Edge
	ConnectsToRoomID int
	HasRoom          bool
	HallwayID        string
	HasHallway       bool
}

// Result is the output of a complete placement pass.
type Result[T comparable] struct {
	Placements map[int]*PlacedRoom[T]
	Doors      []Door
	Occupied   map[geom.Cell]struct{}
}

// DoorCandidate names a template-local door cell and one of its permitted
// exterior edges. A template with multiple permitted edges on one cell
// contributes one DoorCandidate per edge.
type DoorCandidate struct {
	Cell geom.Cell
	Edge geom.Edge
}

type doorCandidate = DoorCandidate

// EnumerateDoors lists every (cell, edge) door candidate on a template, in
// deterministic order (by SortedDoorCells, then by geom.AllEdges). Shared
// with the hallway router, which ranks every door combination by exit-cell
// distance instead of the solver's opposite-edge shuffle-and-first-fit.
func EnumerateDoors[T comparable](rt *template.RoomTemplate[T]) []DoorCandidate {
	var out []DoorCandidate
	for _, c := range rt.SortedDoorCells() {
		mask := rt.DoorEdges[c]
		for _, e := range geom.AllEdges {
			if mask.Has(e) {
				out = append(out, DoorCandidate{Cell: c, Edge: e})
			}
		}
	}
	return out
}

func enumerateDoors[T comparable](rt *template.RoomTemplate[T]) []doorCandidate {
	return EnumerateDoors(rt)
}

type pairCandidate struct {
	CellA, CellB geom.Cell
	EdgeA, EdgeB geom.Edge
}

func pairCandidates[T comparable](a, b *template.RoomTemplate[T]) []pairCandidate {
	doorsA := enumerateDoors(a)
	doorsB := enumerateDoors(b)
	var pairs []pairCandidate
	for _, da := range doorsA {
		for _, db := range doorsB {
			if db.Edge == da.Edge.Opposite() {
				pairs = append(pairs, pairCandidate{CellA: da.Cell, CellB: db.Cell, EdgeA: da.Edge, EdgeB: db.Edge})
			}
		}
	}
	return pairs
}

// TryAdjacentDoors checks whether roomA and roomB, at their fixed
// positions, happen to have a compatible door pairing already touching
// (used for cycle edges during placement, and for secret passages that
// turn out to connect already-adjacent rooms). idA and idB are only used
// to populate ConnectsToRoomID on the two returned Door records.
func TryAdjacentDoors[T comparable](roomA, roomB *PlacedRoom[T], idA, idB int) (Door, Door, bool) {
	pairs := pairCandidates(roomA.Template, roomB.Template)
	for _, pair := range pairs {
		worldDoorA := roomA.Position.Add(pair.CellA)
		neighbor := worldDoorA.Neighbor(pair.EdgeA)
		requiredAnchorB := neighbor.Offset(-pair.CellB.X, -pair.CellB.Y)
		if requiredAnchorB != roomB.Position {
			continue
		}
		return Door{Position: worldDoorA, Edge: pair.EdgeA, ConnectsToRoomID: idB, HasRoom: true},
			Door{Position: neighbor, Edge: pair.EdgeB, ConnectsToRoomID: idA, HasRoom: true},
			true
	}
	return Door{}, Door{}, false
}

// Place runs the full incremental solver: BFS placement of every node from
// the spawn, then a second pass resolving any remaining graph connections
// that weren't used as a BFS placement edge (cycle/extra edges from
// branching). It mutates g.Connections in place to set RequiresHallway.
func Place[T comparable](g *graphgen.FloorGraph, assignment map[int]T, templates map[int]*template.RoomTemplate[T], difficulty map[int]float64, mode HallwayMode, maxRadius int, rng *seeding.RNG) (*Result[T], error) {
	n := len(g.Nodes)
	res := &Result[T]{
		Placements: make(map[int]*PlacedRoom[T], n),
		Occupied:   make(map[geom.Cell]struct{}),
	}

	spawnTpl := templates[0]
	res.Placements[0] = &PlacedRoom[T]{
		NodeID:     0,
		RoomType:   assignment[0],
		Template:   spawnTpl,
		Position:   geom.Cell{},
		Difficulty: difficulty[0],
	}
	occupy(res.Occupied, spawnTpl.WorldCells(geom.Cell{}))

	adjacency := g.Adjacency()
	connIdx := g.ConnectionIndex()
	handled := make([]bool, len(g.Connections))

	visited := make([]bool, n)
	visited[0] = true
	current := []int{0}
	for len(current) > 0 {
		sort.Ints(current)
		var next []int
		for _, r := range current {
			for _, nb := range adjacency[r] {
				if visited[nb] {
					continue
				}
				visited[nb] = true
				next = append(next, nb)
				if err := placeAdjacentNode(g, res, connIdx, handled, r, nb, assignment, templates, difficulty, mode, maxRadius, rng); err != nil {
					return nil, err
				}
			}
		}
		current = next
	}

	for _, c := range g.Connections {
		idx := connIdx[[2]int{c.A, c.B}]
		if handled[idx] {
			continue
		}
		if err := resolveFixedConnection(g, res, handled, idx, c.A, c.B, mode); err != nil {
			return nil, err
		}
	}

	if mode == HallwayAlways {
		for i := range g.Connections {
			g.Connections[i].RequiresHallway = true
		}
	}

	return res, nil
}

func placeAdjacentNode[T comparable](
	g *graphgen.FloorGraph,
	res *Result[T],
	connIdx map[[2]int]int,
	handled []bool,
	r, nb int,
	assignment map[int]T,
	templates map[int]*template.RoomTemplate[T],
	difficulty map[int]float64,
	mode HallwayMode,
	maxRadius int,
	rng *seeding.RNG,
) error {
	a, b := r, nb
	if a > b {
		a, b = b, a
	}
	idx := connIdx[[2]int{a, b}]

	rRoom := res.Placements[r]
	nTpl := templates[nb]

	pairs := pairCandidates(rRoom.Template, nTpl)
	rng.Shuffle(len(pairs), func(i, j int) { pairs[i], pairs[j] = pairs[j], pairs[i] })

	// Under HallwayAlways the two rooms are separated by one gap cell so
	// the hallway has somewhere to live; the router emits the doors later.
	// Otherwise the rooms share a wall and the doors go on it directly.
	gap := 0
	if mode == HallwayAlways {
		gap = 1
	}

	for _, pair := range pairs {
		worldDoorR := rRoom.Position.Add(pair.CellA)
		facing := worldDoorR.Neighbor(pair.EdgeA)
		doorCellN := facing
		for step := 0; step < gap; step++ {
			doorCellN = doorCellN.Neighbor(pair.EdgeA)
		}
		anchor := doorCellN.Offset(-pair.CellB.X, -pair.CellB.Y)
		cells := nTpl.WorldCells(anchor)
		if anyOccupied(res.Occupied, cells) {
			continue
		}
		if gap > 0 {
			if _, blocked := res.Occupied[facing]; blocked {
				continue
			}
		}
		res.Placements[nb] = &PlacedRoom[T]{
			NodeID:     nb,
			RoomType:   assignment[nb],
			Template:   nTpl,
			Position:   anchor,
			Difficulty: difficulty[nb],
		}
		occupy(res.Occupied, cells)
		if gap == 0 {
			res.Doors = append(res.Doors,
				Door{Position: worldDoorR, Edge: pair.EdgeA, ConnectsToRoomID: nb, HasRoom: true},
				Door{Position: facing, Edge: pair.EdgeB, ConnectsToRoomID: r, HasRoom: true},
			)
		} else {
			g.Connections[idx].RequiresHallway = true
		}
		handled[idx] = true
		return nil
	}

	if mode == HallwayNone {
		return dungeonerr.RoomPlacementFailure(nb, "no adjacent door pairing fits and hallways are disabled")
	}

	anchor, ok := findNearbyAnchor(res.Occupied, rRoom.Position, nTpl, maxRadius, rng)
	if !ok {
		return dungeonerr.RoomPlacementFailure(nb, "no placement found within max_radius")
	}
	res.Placements[nb] = &PlacedRoom[T]{
		NodeID:     nb,
		RoomType:   assignment[nb],
		Template:   nTpl,
		Position:   anchor,
		Difficulty: difficulty[nb],
	}
	occupy(res.Occupied, nTpl.WorldCells(anchor))
	g.Connections[idx].RequiresHallway = true
	handled[idx] = true
	return nil
}

// resolveFixedConnection handles a graph connection whose endpoints were
// both already placed by the BFS pass (a cycle/branching extra edge). The
// rooms' positions are fixed, so the only question is whether an existing
// door pairing happens to align; no fallback repositioning is possible.
func resolveFixedConnection[T comparable](g *graphgen.FloorGraph, res *Result[T], handled []bool, idx, a, b int, mode HallwayMode) error {
	if mode == HallwayAlways {
		g.Connections[idx].RequiresHallway = true
		handled[idx] = true
		return nil
	}
	roomA := res.Placements[a]
	roomB := res.Placements[b]
	doorA, doorB, ok := TryAdjacentDoors(roomA, roomB, a, b)
	if ok {
		res.Doors = append(res.Doors, doorA, doorB)
		handled[idx] = true
		return nil
	}

	if mode == HallwayNone {
		return dungeonerr.HallwayRoutingFailure(a, b, "rooms are not adjacent and hallways are disabled")
	}
	g.Connections[idx].RequiresHallway = true
	handled[idx] = true
	return nil
}

// findNearbyAnchor searches concentric Chebyshev-distance rings of radius
// 2..maxRadius around center, collecting every anchor at which tpl fits
// without overlapping occupied, and picks one uniformly at random from
// the first radius that yields any candidates.
func findNearbyAnchor[T comparable](occupied map[geom.Cell]struct{}, center geom.Cell, tpl *template.RoomTemplate[T], maxRadius int, rng *seeding.RNG) (geom.Cell, bool) {
	for radius := 2; radius <= maxRadius; radius++ {
		var candidates []geom.Cell
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				if dx != -radius && dx != radius && dy != -radius && dy != radius {
					continue
				}
				anchor := center.Offset(dx, dy)
				cells := tpl.WorldCells(anchor)
				if !anyOccupied(occupied, cells) {
					candidates = append(candidates, anchor)
				}
			}
		}
		if len(candidates) > 0 {
			return candidates[rng.Intn(len(candidates))], true
		}
	}
	return geom.Cell{}, false
}

func occupy(occupied map[geom.Cell]struct{}, cells []geom.Cell) {
	for _, c := range cells {
		occupied[c] = struct{}{}
	}
}

func anyOccupied(occupied map[geom.Cell]struct{}, cells []geom.Cell) bool {
	for _, c := range cells {
		if _, ok := occupied[c]; ok {
			return true
		}
	}
	return false
}

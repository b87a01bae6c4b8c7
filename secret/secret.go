package secret

import (
	"fmt"
	"math"
	"sort"

	"github.com/hollowspire/dungeongen/geom"
	"github.com/hollowspire/dungeongen/graphgen"
	"github.com/hollowspire/dungeongen/hallway"
	"github.com/hollowspire/dungeongen/seeding"
	"github.com/hollowspire/dungeongen/spatial"
)

// Config parameterizes secret-passage generation.
type Config[T comparable] struct {
	Count                        int
	MaxSpatialDistance           float64
	AllowedRoomTypes             []T
	ForbiddenRoomTypes           []T
	AllowCriticalPathConnections bool
	AllowGraphConnectedRooms     bool
}

// Passage is a generated secret connection between two rooms.
type Passage struct {
	RoomA, RoomB    int
	DoorA, DoorB    spatial.Door
	Hallway         *hallway.Hallway
	RequiresHallway bool
}

// Generate produces up to cfg.Count secret passages. It stops early (with
// no error) once no further eligible room pair remains; a shortfall is
// not a failure, since secret passages are enrichment, not a contract
// the caller can size exactly. occupied is mutated only for passages that
// needed a hallway.
func Generate[T comparable](cfg Config[T], g *graphgen.FloorGraph, assignment map[int]T, placements map[int]*spatial.PlacedRoom[T], occupied map[geom.Cell]struct{}, rng *seeding.RNG) ([]Passage, []spatial.Door, error) {
	allowed := toSet(cfg.AllowedRoomTypes)
	forbidden := toSet(cfg.ForbiddenRoomTypes)
	connected := g.ConnectionIndex()
	onCriticalPath := make(map[int]bool, len(g.CriticalPath))
	for _, id := range g.CriticalPath {
		onCriticalPath[id] = true
	}

	centroids := make(map[int]centroid, len(placements))
	for id, p := range placements {
		centroids[id] = centroidOf(p)
	}

	used := make(map[[2]int]bool)
	var passages []Passage
	var doors []spatial.Door
	seq := 0

	for slot := 0; slot < cfg.Count; slot++ {
		var candidates [][2]int
		for a := 0; a < len(g.Nodes); a++ {
			for b := a + 1; b < len(g.Nodes); b++ {
				if used[[2]int{a, b}] {
					continue
				}
				if !eligible(a, b, assignment, allowed, forbidden, onCriticalPath, connected, centroids, cfg) {
					continue
				}
				candidates = append(candidates, [2]int{a, b})
			}
		}
		if len(candidates) == 0 {
			break
		}
		sort.Slice(candidates, func(i, j int) bool {
			if candidates[i][0] != candidates[j][0] {
				return candidates[i][0] < candidates[j][0]
			}
			return candidates[i][1] < candidates[j][1]
		})
		rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })
		pick := candidates[0]
		used[pick] = true

		a, b := pick[0], pick[1]
		roomA, roomB := placements[a], placements[b]

		if doorA, doorB, ok := spatial.TryAdjacentDoors(roomA, roomB, a, b); ok {
			passages = append(passages, Passage{RoomA: a, RoomB: b, DoorA: doorA, DoorB: doorB})
			doors = append(doors, doorA, doorB)
			continue
		}

		hw, hwDoors, err := hallway.RouteBetween(a, b, roomA, roomB, occupied, secretHallwayID(seq))
		if err != nil {
			// This pair can't be bridged; don't block the remaining slots.
			continue
		}
		seq++
		for _, cell := range hw.Cells {
			occupied[cell] = struct{}{}
		}
		passages = append(passages, Passage{RoomA: a, RoomB: b, DoorA: hwDoors[0], DoorB: hwDoors[1], Hallway: &hw, RequiresHallway: true})
		doors = append(doors, hwDoors...)
	}

	return passages, doors, nil
}

func eligible[T comparable](
	a, b int,
	assignment map[int]T,
	allowed, forbidden map[T]struct{},
	onCriticalPath map[int]bool,
	connected map[[2]int]int,
	centroids map[int]centroid,
	cfg Config[T],
) bool {
	ta, tb := assignment[a], assignment[b]
	if len(allowed) > 0 {
		if _, ok := allowed[ta]; !ok {
			return false
		}
		if _, ok := allowed[tb]; !ok {
			return false
		}
	}
	if _, ok := forbidden[ta]; ok {
		return false
	}
	if _, ok := forbidden[tb]; ok {
		return false
	}
	if !cfg.AllowCriticalPathConnections && (onCriticalPath[a] || onCriticalPath[b]) {
		return false
	}
	if !cfg.AllowGraphConnectedRooms {
		if _, ok := connected[[2]int{a, b}]; ok {
			return false
		}
	}
	if centroids[a].distanceTo(centroids[b]) > cfg.MaxSpatialDistance {
		return false
	}
	return true
}

type centroid struct {
	X, Y float64
}

func (c centroid) distanceTo(other centroid) float64 {
	dx := c.X - other.X
	dy := c.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func centroidOf[T comparable](p *spatial.PlacedRoom[T]) centroid {
	cells := p.WorldCells()
	var sumX, sumY float64
	for _, c := range cells {
		sumX += float64(c.X)
		sumY += float64(c.Y)
	}
	n := float64(len(cells))
	return centroid{X: sumX / n, Y: sumY / n}
}

func toSet[T comparable](values []T) map[T]struct{} {
	set := make(map[T]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func secretHallwayID(seq int) string {
	return fmt.Sprintf("secret-hallway-%d", seq)
}

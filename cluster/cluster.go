package cluster

import (
	"fmt"
	"math"
	"sort"

	"github.com/hollowspire/dungeongen/geom"
	"github.com/hollowspire/dungeongen/spatial"
)

// Config parameterizes cluster detection. RoomTypes restricts detection
// to the listed types in the order given; an empty RoomTypes clusters
// every type present, in order of each type's first appearance by
// ascending node id.
type Config[T comparable] struct {
	RoomTypes []T
	Epsilon   float64
	MinSize   int
	MaxSize   int
}

// Cluster is a maximal clique of same-type rooms whose centroids are all
// pairwise within Epsilon of each other.
type Cluster[T comparable] struct {
	ClusterID     string
	RoomType      T
	MemberRoomIDs []int
	CentroidX     float64
	CentroidY     float64
	BoundingBox   geom.Rect
}

type point struct{ x, y float64 }

func (p point) distanceTo(o point) float64 {
	dx, dy := p.x-o.x, p.y-o.y
	return math.Sqrt(dx*dx + dy*dy)
}

// Detect finds spatial clusters among placements. Rooms are grouped by
// type, then each type's rooms are walked in ascending node id: an
// unclustered room seeds a new clique, which greedily admits every other
// unclustered room (in ascending id order) whose centroid lies within
// Epsilon of every room already in the clique. Cliques outside
// [MinSize, MaxSize] are discarded.
func Detect[T comparable](placements map[int]*spatial.PlacedRoom[T], cfg Config[T]) []Cluster[T] {
	ids := make([]int, 0, len(placements))
	for id := range placements {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	centroids := make(map[int]point, len(ids))
	for _, id := range ids {
		centroids[id] = centroidOf(placements[id])
	}

	typeOrder := resolveTypeOrder(ids, placements, cfg.RoomTypes)

	var out []Cluster[T]
	seq := 0
	for _, t := range typeOrder {
		var typeIDs []int
		for _, id := range ids {
			if placements[id].RoomType == t {
				typeIDs = append(typeIDs, id)
			}
		}

		clustered := make(map[int]bool, len(typeIDs))
		for _, seedID := range typeIDs {
			if clustered[seedID] {
				continue
			}
			members := []int{seedID}
			for _, candID := range typeIDs {
				if candID == seedID || clustered[candID] {
					continue
				}
				if compatibleWithAll(candID, members, centroids, cfg.Epsilon) {
					members = append(members, candID)
				}
			}
			for _, m := range members {
				clustered[m] = true
			}

			if len(members) < cfg.MinSize {
				continue
			}
			if cfg.MaxSize > 0 && len(members) > cfg.MaxSize {
				continue
			}

			out = append(out, buildCluster(fmt.Sprintf("cluster-%d", seq), t, members, placements, centroids))
			seq++
		}
	}
	return out
}

// compatibleWithAll reports whether candidate's centroid is within
// epsilon of every room already in members, the clique-admission test.
func compatibleWithAll(candID int, members []int, centroids map[int]point, epsilon float64) bool {
	cand := centroids[candID]
	for _, m := range members {
		if cand.distanceTo(centroids[m]) > epsilon {
			return false
		}
	}
	return true
}

func buildCluster[T comparable](id string, t T, members []int, placements map[int]*spatial.PlacedRoom[T], centroids map[int]point) Cluster[T] {
	sort.Ints(members)
	var allCells []geom.Cell
	var sumX, sumY float64
	for _, m := range members {
		c := centroids[m]
		sumX += c.x
		sumY += c.y
		allCells = append(allCells, placements[m].WorldCells()...)
	}
	n := float64(len(members))
	return Cluster[T]{
		ClusterID:     id,
		RoomType:      t,
		MemberRoomIDs: members,
		CentroidX:     sumX / n,
		CentroidY:     sumY / n,
		BoundingBox:   geom.BoundsOf(allCells),
	}
}

func centroidOf[T comparable](p *spatial.PlacedRoom[T]) point {
	cells := p.WorldCells()
	var sumX, sumY float64
	for _, c := range cells {
		sumX += float64(c.X)
		sumY += float64(c.Y)
	}
	n := float64(len(cells))
	return point{x: sumX / n, y: sumY / n}
}

// resolveTypeOrder returns the types to cluster, in order: explicit
// if given, otherwise every type present among placements in order of
// first appearance by ascending node id.
func resolveTypeOrder[T comparable](ids []int, placements map[int]*spatial.PlacedRoom[T], explicit []T) []T {
	if len(explicit) > 0 {
		return explicit
	}
	seen := make(map[T]bool)
	var out []T
	for _, id := range ids {
		t := placements[id].RoomType
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

package weighting

import (
	"github.com/hollowspire/dungeongen/dungeonerr"
	"github.com/hollowspire/dungeongen/seeding"
	"github.com/hollowspire/dungeongen/template"
)

// Pools groups the template pools a selection draws from: per-zone pools
// (keyed by zone name) and the global fallback pool. Both are kept in
// input order since pool ordering must be stable for the cumulative-weight
// draw to be reproducible.
type Pools[T comparable] struct {
	Zone   map[string][]*template.RoomTemplate[T]
	Global []*template.RoomTemplate[T]
}

// Select picks a template for a node assigned room type t, located in
// zone (only consulted if hasZone is true). The candidate pool is the
// zone's templates valid for t if any exist, otherwise the global
// templates valid for t. An empty pool or a pool whose weights sum to
// zero is an InvalidConfiguration error.
func Select[T comparable](t T, zone string, hasZone bool, pools Pools[T], rng *seeding.RNG) (*template.RoomTemplate[T], error) {
	var candidates []*template.RoomTemplate[T]
	if hasZone {
		candidates = filterValidFor(pools.Zone[zone], t)
	}
	if len(candidates) == 0 {
		candidates = filterValidFor(pools.Global, t)
	}
	if len(candidates) == 0 {
		return nil, dungeonerr.InvalidConfiguration("no template available for room type %v in zone %q", t, zone)
	}

	weights := make([]float64, len(candidates))
	var total float64
	for i, c := range candidates {
		weights[i] = c.Weight
		total += c.Weight
	}
	if total <= 0 {
		return nil, dungeonerr.InvalidConfiguration("templates for room type %v have zero total weight", t)
	}

	idx := rng.WeightedChoice(weights)
	if idx < 0 {
		return nil, dungeonerr.InvalidConfiguration("templates for room type %v have zero total weight", t)
	}
	return candidates[idx], nil
}

func filterValidFor[T comparable](templates []*template.RoomTemplate[T], t T) []*template.RoomTemplate[T] {
	var out []*template.RoomTemplate[T]
	for _, tpl := range templates {
		if tpl.ValidFor(t) {
			out = append(out, tpl)
		}
	}
	return out
}

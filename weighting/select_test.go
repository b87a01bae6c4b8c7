package weighting

import (
	"errors"
	"testing"

	"github.com/hollowspire/dungeongen/dungeonerr"
	"github.com/hollowspire/dungeongen/geom"
	"github.com/hollowspire/dungeongen/seeding"
	"github.com/hollowspire/dungeongen/template"
)

func square(t *testing.T, id string, types []string, weight float64) *template.RoomTemplate[string] {
	t.Helper()
	cells := []geom.Cell{{X: 0, Y: 0}}
	doors := map[geom.Cell]geom.Edge{{X: 0, Y: 0}: geom.North}
	tpl, err := template.New[string](id, types, cells, doors, weight, nil)
	if err != nil {
		t.Fatalf("building template %s: %v", id, err)
	}
	return tpl
}

func TestSelectPrefersZonePool(t *testing.T) {
	zoneTpl := square(t, "zone-shop", []string{"shop"}, 1)
	globalTpl := square(t, "global-shop", []string{"shop"}, 1)
	pools := Pools[string]{
		Zone:   map[string][]*template.RoomTemplate[string]{"market": {zoneTpl}},
		Global: []*template.RoomTemplate[string]{globalTpl},
	}
	streams := seeding.Expand(1)
	got, err := Select[string]("shop", "market", true, pools, streams.Template)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "zone-shop" {
		t.Fatalf("expected the zone-scoped template to win, got %s", got.ID)
	}
}

func TestSelectFallsBackToGlobalWhenZoneEmpty(t *testing.T) {
	globalTpl := square(t, "global-shop", []string{"shop"}, 1)
	pools := Pools[string]{
		Zone:   map[string][]*template.RoomTemplate[string]{},
		Global: []*template.RoomTemplate[string]{globalTpl},
	}
	streams := seeding.Expand(1)
	got, err := Select[string]("shop", "market", true, pools, streams.Template)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "global-shop" {
		t.Fatalf("expected fallback to the global pool, got %s", got.ID)
	}
}

func TestSelectEmptyPoolIsInvalidConfiguration(t *testing.T) {
	pools := Pools[string]{Global: []*template.RoomTemplate[string]{square(t, "vault", []string{"vault"}, 1)}}
	streams := seeding.Expand(1)
	_, err := Select[string]("shop", "", false, pools, streams.Template)
	var target *dungeonerr.InvalidConfigurationError
	if !errors.As(err, &target) {
		t.Fatalf("expected InvalidConfigurationError for an empty candidate pool, got %v", err)
	}
}

func TestSelectDeterministic(t *testing.T) {
	tpls := []*template.RoomTemplate[string]{
		square(t, "a", []string{"shop"}, 1),
		square(t, "b", []string{"shop"}, 2),
		square(t, "c", []string{"shop"}, 3),
	}
	pools := Pools[string]{Global: tpls}

	s1 := seeding.Expand(42)
	s2 := seeding.Expand(42)
	got1, err1 := Select[string]("shop", "", false, pools, s1.Template)
	got2, err2 := Select[string]("shop", "", false, pools, s2.Template)
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if got1.ID != got2.ID {
		t.Fatalf("nondeterministic selection: %s vs %s", got1.ID, got2.ID)
	}
}

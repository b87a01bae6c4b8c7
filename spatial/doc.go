// Package spatial implements the incremental spatial solver: it places a
// chosen RoomTemplate for every graph node on an integer grid, preferring
// adjacent door-to-door placement and falling back to nearby placement
// (reserving the connecting edge for a hallway) when adjacency isn't
// possible. It tracks a single global occupied-cell set shared across the
// whole placement pass.
package spatial

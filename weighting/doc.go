// Package weighting selects a RoomTemplate for a node of a given room
// type, preferring templates scoped to the node's zone and falling back
// to the global template pool, via the same cumulative-weight draw the
// rest of the pipeline uses for weighted random choices.
package weighting

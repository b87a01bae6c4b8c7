// Package geom provides the integer grid primitives shared by every stage
// of the dungeon pipeline: cells, edges, and axis-aligned bounds.
package geom

// Package difficulty computes per-room difficulty from a node's BFS
// distance from the spawn, via a selectable scaling function.
package difficulty

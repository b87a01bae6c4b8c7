// Package graphgen produces the topology of a dungeon floor: a connected
// graph of room nodes and undirected connections, via one of five
// interchangeable algorithms. Every algorithm shares the same contract
// (a connected FloorGraph of exactly roomCount nodes, built from a room
// count, a branching factor, and an RNG stream), so callers can swap
// algorithms without touching any downstream stage.
package graphgen

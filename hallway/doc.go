// Package hallway implements the A* corridor router: for every graph
// connection the spatial solver marked as requiring a hallway, it chooses
// a door cell on each room, runs A* between the cells just outside those
// doors over the 4-connected grid (treating occupied cells as obstacles),
// and collapses the resulting path into axis-aligned segments.
package hallway

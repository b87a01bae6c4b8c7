// Package template defines RoomTemplate, the immutable shape descriptor
// consumed by the spatial solver: a set of grid cells, the edges on which
// doors may be placed, interior obstacle markers, and a selection weight.
package template

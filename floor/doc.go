// Package floor is the top-level orchestrator: it wires seeding, graph
// generation, zone assignment, room-type assignment, difficulty scaling,
// template selection, spatial placement, hallway routing, secret-passage
// generation, and clustering into a single Generate call, and defines the
// FloorConfig/FloorLayout contract surfaced to callers. GenerateMultiFloor
// runs the same pipeline once per floor and validates the typed
// connections linking floors.
package floor

// Package secret generates secret passages: extra room-to-room
// connections chosen after hallway routing completes, which never touch
// distance_from_start, the critical path, or the graph's own connections.
package secret

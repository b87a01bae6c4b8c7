// Package asciirender renders a floor.FloorLayout as a text-mode grid
// map plus a room summary, for quick inspection without an SVG viewer.
package asciirender

import (
	"fmt"
	"strings"

	"github.com/hollowspire/dungeongen/floor"
	"github.com/hollowspire/dungeongen/geom"
)

// Render produces a multi-line string: a stats header, a tile-grid
// preview of the actual floor geometry, and a room list.
func Render[T comparable](fl *floor.FloorLayout[T]) string {
	var sb strings.Builder

	sb.WriteString("=== FLOOR LAYOUT ===\n\n")
	fmt.Fprintf(&sb, "Rooms: %d\n", len(fl.Rooms))
	fmt.Fprintf(&sb, "Hallways: %d\n", len(fl.Hallways))
	fmt.Fprintf(&sb, "Secret passages: %d\n", len(fl.SecretPassages))
	fmt.Fprintf(&sb, "Critical path length: %d rooms\n", len(fl.CriticalPath))
	fmt.Fprintf(&sb, "Seed: %d\n\n", fl.Seed)

	sb.WriteString(renderGrid(fl))
	sb.WriteString("\n")

	sb.WriteString("🏰 ROOMS:\n")
	for _, id := range fl.RoomOrder {
		room := fl.Rooms[id]
		marker := ""
		if id == fl.SpawnRoomID {
			marker = " 🟢 spawn"
		} else if id == fl.BossRoomID {
			marker = " 👑 boss"
		}
		diff := fl.Difficulty[id]
		fmt.Fprintf(&sb, "  [%d] %v (difficulty %.1f)%s\n", id, room.RoomType, diff, marker)
	}

	return sb.String()
}

func renderGrid[T comparable](fl *floor.FloorLayout[T]) string {
	var cells []geom.Cell
	roomOf := make(map[geom.Cell]int)
	for _, id := range fl.RoomOrder {
		for _, c := range fl.WorldCells(id) {
			cells = append(cells, c)
			roomOf[c] = id
		}
	}
	hallwaySet := make(map[geom.Cell]bool)
	for _, h := range fl.Hallways {
		for _, c := range h.Cells {
			cells = append(cells, c)
			hallwaySet[c] = true
		}
	}
	doorSet := make(map[geom.Cell]bool)
	for _, d := range fl.Doors {
		doorSet[d.Position] = true
	}

	if len(cells) == 0 {
		return "(empty floor)\n"
	}
	bounds := geom.BoundsOf(cells)

	var sb strings.Builder
	for y := bounds.MinY; y < bounds.MaxY; y++ {
		for x := bounds.MinX; x < bounds.MaxX; x++ {
			cell := geom.Cell{X: x, Y: y}
			switch {
			case doorSet[cell]:
				sb.WriteRune('+')
			case roomOf[cell] == fl.SpawnRoomID && hasRoom(roomOf, cell):
				sb.WriteRune('S')
			case roomOf[cell] == fl.BossRoomID && hasRoom(roomOf, cell):
				sb.WriteRune('B')
			case hasRoom(roomOf, cell):
				sb.WriteRune('#')
			case hallwaySet[cell]:
				sb.WriteRune('.')
			default:
				sb.WriteRune(' ')
			}
		}
		sb.WriteRune('\n')
	}
	sb.WriteString("\nLegend: S=spawn B=boss #=room .=hallway +=door\n")
	return sb.String()
}

func hasRoom(roomOf map[geom.Cell]int, c geom.Cell) bool {
	_, ok := roomOf[c]
	return ok
}

// RenderPath renders the critical path from spawn to boss as an indented
// list.
func RenderPath[T comparable](fl *floor.FloorLayout[T]) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Path from spawn (%d) to boss (%d):\n", fl.SpawnRoomID, fl.BossRoomID)
	for depth, id := range fl.CriticalPath {
		room := fl.Rooms[id]
		fmt.Fprintf(&sb, "%s[%d] %v\n", strings.Repeat("  ", depth), id, room.RoomType)
	}
	return sb.String()
}

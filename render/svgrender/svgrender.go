// Package svgrender exports a finished floor.FloorLayout to SVG: each
// room's actual template footprint, hallway corridor cells, and doors.
// The renderer draws the solver's real grid coordinates directly, since
// floor.FloorLayout already carries concrete cell positions; there is no
// separate layout step.
package svgrender

import (
	"bytes"
	"fmt"
	"sort"

	svg "github.com/ajstarks/svgo"

	"github.com/hollowspire/dungeongen/floor"
	"github.com/hollowspire/dungeongen/geom"
	"github.com/hollowspire/dungeongen/hallway"
)

// Options configures SVG export.
type Options struct {
	CellSize   int // pixel size of one grid cell, default 24
	Margin     int // pixel margin around the drawn floor, default 40
	ShowLabels bool
	ShowDoors  bool
	Title      string
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{CellSize: 24, Margin: 40, ShowLabels: true, ShowDoors: true, Title: "Floor Layout"}
}

// roomPalette assigns a deterministic color to a room type string via a
// small fixed palette cycled by the type's first-seen index, since T is
// only comparable (not inherently colorable).
var roomPalette = []string{
	"#48bb78", "#f56565", "#4299e1", "#ed8936", "#9f7aea",
	"#ecc94b", "#38b2ac", "#805ad5", "#718096", "#d53f8c",
}

// Render draws fl to an SVG document and returns the encoded bytes.
func Render[T comparable](fl *floor.FloorLayout[T], opts Options) []byte {
	opts = withDefaults(opts)

	bounds := computeBounds(fl)
	width := bounds.Width()*opts.CellSize + 2*opts.Margin
	height := bounds.Height()*opts.CellSize + 2*opts.Margin + headerHeight(opts)

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#1a1a2e")

	if opts.Title != "" {
		canvas.Text(width/2, 24, opts.Title, "text-anchor:middle;font-size:18px;font-weight:bold;fill:#e2e8f0;font-family:sans-serif")
	}

	originX := opts.Margin - bounds.MinX*opts.CellSize
	originY := opts.Margin + headerHeight(opts) - bounds.MinY*opts.CellSize

	drawHallways(canvas, fl.Hallways, opts, originX, originY)
	colorOf := assignColors(fl)
	drawRooms(canvas, fl, opts, originX, originY, colorOf)
	if opts.ShowDoors {
		drawDoors(canvas, fl.Doors, opts, originX, originY)
	}

	canvas.End()
	return buf.Bytes()
}

func withDefaults(opts Options) Options {
	if opts.CellSize <= 0 {
		opts.CellSize = 24
	}
	if opts.Margin <= 0 {
		opts.Margin = 40
	}
	return opts
}

func headerHeight(opts Options) int {
	if opts.Title == "" {
		return 0
	}
	return 40
}

func computeBounds[T comparable](fl *floor.FloorLayout[T]) geom.Rect {
	var cells []geom.Cell
	for _, id := range fl.RoomOrder {
		cells = append(cells, fl.WorldCells(id)...)
	}
	for _, h := range fl.Hallways {
		cells = append(cells, h.Cells...)
	}
	if len(cells) == 0 {
		return geom.Rect{}
	}
	return geom.BoundsOf(cells)
}

func assignColors[T comparable](fl *floor.FloorLayout[T]) map[int]string {
	typeIndex := make(map[string]int)
	colorOf := make(map[int]string, len(fl.RoomOrder))
	for _, id := range fl.RoomOrder {
		key := fmt.Sprintf("%v", fl.Rooms[id].RoomType)
		idx, seen := typeIndex[key]
		if !seen {
			idx = len(typeIndex)
			typeIndex[key] = idx
		}
		colorOf[id] = roomPalette[idx%len(roomPalette)]
	}
	return colorOf
}

func drawRooms[T comparable](canvas *svg.SVG, fl *floor.FloorLayout[T], opts Options, originX, originY int, colorOf map[int]string) {
	for _, id := range fl.RoomOrder {
		color := colorOf[id]
		for _, cell := range fl.WorldCells(id) {
			x := originX + cell.X*opts.CellSize
			y := originY + cell.Y*opts.CellSize
			canvas.Rect(x, y, opts.CellSize, opts.CellSize, fmt.Sprintf("fill:%s;stroke:#1a1a2e;stroke-width:1;opacity:0.85", color))
		}
		if opts.ShowLabels {
			room := fl.Rooms[id]
			x := originX + room.Position.X*opts.CellSize + opts.CellSize/2
			y := originY + room.Position.Y*opts.CellSize + opts.CellSize/2
			canvas.Text(x, y, fmt.Sprintf("%d", id), "text-anchor:middle;font-size:11px;font-family:monospace;fill:#1a1a2e;font-weight:bold")
		}
	}
}

func drawHallways(canvas *svg.SVG, hallways []hallway.Hallway, opts Options, originX, originY int) {
	// Sort by ID for deterministic draw order (z-order doesn't matter
	// visually here, but stable output matters for diffable golden files).
	sorted := append([]hallway.Hallway(nil), hallways...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	for _, h := range sorted {
		for _, cell := range h.Cells {
			x := originX + cell.X*opts.CellSize
			y := originY + cell.Y*opts.CellSize
			canvas.Rect(x, y, opts.CellSize, opts.CellSize, "fill:#4a5568;stroke:#1a1a2e;stroke-width:1")
		}
	}
}

func drawDoors(canvas *svg.SVG, doors []floor.Door, opts Options, originX, originY int) {
	sorted := append([]floor.Door(nil), doors...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Position.X != sorted[j].Position.X {
			return sorted[i].Position.X < sorted[j].Position.X
		}
		return sorted[i].Position.Y < sorted[j].Position.Y
	})
	for _, d := range sorted {
		cx := originX + d.Position.X*opts.CellSize + opts.CellSize/2
		cy := originY + d.Position.Y*opts.CellSize + opts.CellSize/2
		canvas.Circle(cx, cy, opts.CellSize/6, "fill:#ffd700;stroke:#000;stroke-width:1")
	}
}

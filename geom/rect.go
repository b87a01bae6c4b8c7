package geom

// Rect is an axis-aligned integer bounding box, inclusive of MinX/MinY and
// exclusive of MaxX/MaxY (i.e. Width = MaxX-MinX).
type Rect struct {
	MinX, MinY, MaxX, MaxY int
}

// Width returns the rect's extent along X.
func (r Rect) Width() int { return r.MaxX - r.MinX }

// Height returns the rect's extent along Y.
func (r Rect) Height() int { return r.MaxY - r.MinY }

// BoundsOf computes the bounding box of a set of cells. Returns the zero
// Rect if cells is empty.
func BoundsOf(cells []Cell) Rect {
	if len(cells) == 0 {
		return Rect{}
	}
	r := Rect{MinX: cells[0].X, MinY: cells[0].Y, MaxX: cells[0].X + 1, MaxY: cells[0].Y + 1}
	for _, c := range cells[1:] {
		if c.X < r.MinX {
			r.MinX = c.X
		}
		if c.Y < r.MinY {
			r.MinY = c.Y
		}
		if c.X+1 > r.MaxX {
			r.MaxX = c.X + 1
		}
		if c.Y+1 > r.MaxY {
			r.MaxY = c.Y + 1
		}
	}
	return r
}

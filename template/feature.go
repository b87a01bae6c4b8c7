package template

import "fmt"

// Feature tags an interior obstacle cell. Features are opaque markers:
// the generator never interprets what a Pillar or Hazard "does"; that is
// left to the game layer that consumes the finished layout.
type Feature int

const (
	Pillar Feature = iota
	Wall
	Hazard
	Decorative
)

// String implements fmt.Stringer.
func (f Feature) String() string {
	switch f {
	case Pillar:
		return "Pillar"
	case Wall:
		return "Wall"
	case Hazard:
		return "Hazard"
	case Decorative:
		return "Decorative"
	default:
		return fmt.Sprintf("Feature(%d)", int(f))
	}
}

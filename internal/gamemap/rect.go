package gamemap

import "github.com/Philser/roguelike/internal/component"

// Rect is an axis-aligned rectangle with inclusive corners, used for rooms
// and corridor segments.
type Rect struct {
	X1, Y1, X2, Y2 int32
}

// NewRect builds a rect of width×height cells with its top-left at (x, y).
func NewRect(x, y, width, height int32) Rect {
	return Rect{X1: x, Y1: y, X2: x + width - 1, Y2: y + height - 1}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() component.Position {
	return component.Position{X: (r.X1 + r.X2) / 2, Y: (r.Y1 + r.Y2) / 2}
}

// Intersects reports whether r overlaps other (inclusive edges).
func (r Rect) Intersects(other Rect) bool {
	return r.X1 <= other.X2 && r.X2 >= other.X1 &&
		r.Y1 <= other.Y2 && r.Y2 >= other.Y1
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p component.Position) bool {
	return p.X >= r.X1 && p.X <= r.X2 && p.Y >= r.Y1 && p.Y <= r.Y2
}

// Cells lists every position in r, row by row.
func (r Rect) Cells() []component.Position {
	cells := make([]component.Position, 0, (r.X2-r.X1+1)*(r.Y2-r.Y1+1))
	for y := r.Y1; y <= r.Y2; y++ {
		for x := r.X1; x <= r.X2; x++ {
			cells = append(cells, component.Position{X: x, Y: y})
		}
	}
	return cells
}

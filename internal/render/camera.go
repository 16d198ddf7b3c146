package render

import "github.com/Philser/roguelike/internal/component"

// Camera translates between world coordinates and screen coordinates.
// Every tile is one terminal cell.
type Camera struct {
	OffsetX    int
	OffsetY    int
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
}

// NewCamera creates a camera centered on (cx, cy).
func NewCamera(cx, cy, viewW, viewH int) *Camera {
	c := &Camera{ViewWidth: viewW, ViewHeight: viewH}
	c.Center(cx, cy)
	return c
}

// Center repositions the camera so that world position (cx, cy) is in the middle.
func (c *Camera) Center(cx, cy int) {
	c.OffsetX = cx - c.ViewWidth/2
	c.OffsetY = cy - c.ViewHeight/2
}

// WorldToScreen converts p to screen (sx, sy). visible is false when the
// result falls outside the viewport.
func (c *Camera) WorldToScreen(p component.Position) (sx, sy int, visible bool) {
	sx = int(p.X) - c.OffsetX
	sy = int(p.Y) - c.OffsetY
	visible = sx >= 0 && sx < c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// ScreenToWorld converts screen (sx, sy) to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy int) component.Position {
	return component.Position{X: int32(sx + c.OffsetX), Y: int32(sy + c.OffsetY)}
}

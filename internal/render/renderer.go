// Package render draws view.Facts onto a tcell screen.
package render

import (
	"github.com/Philser/roguelike/internal/component"
	"github.com/Philser/roguelike/internal/view"

	"github.com/gdamore/tcell/v2"
)

// Renderer draws game snapshots onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
	theme  Theme
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	r := &Renderer{screen: screen, theme: DefaultTheme}
	r.Resize()
	return r
}

// Resize fits the viewport to the current screen size.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.camera = NewCamera(0, 0, w, max(h-hudRows, 1))
}

// Camera returns the camera used for the last frame.
func (r *Renderer) Camera() *Camera { return r.camera }

// Draw renders one full frame: terrain, actors, overlays and the HUD.
func (r *Renderer) Draw(f view.Facts) {
	r.screen.Clear()
	r.camera.Center(int(f.PlayerPos.X), int(f.PlayerPos.Y))
	r.drawMap(f)
	r.drawActors(f)
	if f.Target != nil {
		r.drawTarget(*f.Target, f.AreaRadius)
	}
	r.DrawHUD(f)
	if f.Cursor >= 0 {
		r.drawInventory(f)
	}
	if f.GameOver {
		r.drawBanner(" You died. Press any key. ")
	}
	r.screen.Show()
}

// drawMap renders every seen tile; remembered tiles are dimmed.
func (r *Renderer) drawMap(f view.Facts) {
	for y := int32(0); y < f.Height; y++ {
		for x := int32(0); x < f.Width; x++ {
			tile, vis := f.At(x, y)
			if vis == view.Hidden {
				continue
			}
			sx, sy, onScreen := r.camera.WorldToScreen(component.Position{X: x, Y: y})
			if !onScreen {
				continue
			}
			glyph, color := r.theme.Glyph(tile, vis == view.Visible)
			r.screen.SetContent(sx, sy, glyph, nil, tcell.StyleDefault.Foreground(color).Background(tcell.ColorBlack))
		}
	}
}

// drawActors renders the actors in view. Facts lists them in render order.
func (r *Renderer) drawActors(f view.Facts) {
	for _, a := range f.Actors {
		if !a.Visible {
			continue
		}
		sx, sy, onScreen := r.camera.WorldToScreen(a.Pos)
		if !onScreen {
			continue
		}
		r.screen.SetContent(sx, sy, a.Glyph, nil, tcell.StyleDefault.Foreground(a.Color).Background(tcell.ColorBlack))
	}
}

// drawTarget tints the blast area and marks the reticle cell.
func (r *Renderer) drawTarget(target component.Position, radius int) {
	rr := int32(radius * radius)
	for dy := int32(-radius); dy <= int32(radius); dy++ {
		for dx := int32(-radius); dx <= int32(radius); dx++ {
			if dx*dx+dy*dy > rr {
				continue
			}
			r.tint(target.Add(dx, dy), styleBlast)
		}
	}
	r.tint(target, styleReticle)
}

// tint keeps the cell's glyph and foreground, replacing its background.
func (r *Renderer) tint(p component.Position, bg tcell.Style) {
	sx, sy, onScreen := r.camera.WorldToScreen(p)
	if !onScreen {
		return
	}
	mainc, combc, style, _ := r.screen.GetContent(sx, sy)
	_, bgColor, _ := bg.Decompose()
	r.screen.SetContent(sx, sy, mainc, combc, style.Background(bgColor))
}

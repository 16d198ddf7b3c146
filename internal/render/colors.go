package render

import (
	"github.com/Philser/roguelike/internal/gamemap"

	"github.com/gdamore/tcell/v2"
)

// Theme holds the glyphs and colors used to draw terrain. Remembered cells
// use the same glyphs in the dim color.
type Theme struct {
	Wall       rune
	Floor      rune
	WallColor  tcell.Color
	FloorColor tcell.Color
	DimColor   tcell.Color
}

// DefaultTheme is the classic look: green walls, grey dotted floor.
var DefaultTheme = Theme{
	Wall:       '#',
	Floor:      '.',
	WallColor:  tcell.ColorGreen,
	FloorColor: tcell.ColorTeal,
	DimColor:   tcell.ColorDimGray,
}

// Glyph returns the rune and color of a tile.
func (t Theme) Glyph(tile gamemap.TileType, lit bool) (rune, tcell.Color) {
	glyph, color := t.Floor, t.FloorColor
	if tile == gamemap.TileWall {
		glyph, color = t.Wall, t.WallColor
	}
	if !lit {
		color = t.DimColor
	}
	return glyph, color
}

var (
	styleLog      = tcell.StyleDefault.Foreground(tcell.ColorLightYellow)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleBarFull  = tcell.StyleDefault.Background(tcell.ColorRed)
	styleBarEmpty = tcell.StyleDefault.Background(tcell.ColorMaroon)
	styleReticle  = tcell.StyleDefault.Background(tcell.ColorDarkCyan)
	styleBlast    = tcell.StyleDefault.Background(tcell.ColorDarkRed)
	styleBox      = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	styleSelected = styleBox.Reverse(true)
)

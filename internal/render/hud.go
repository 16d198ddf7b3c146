package render

import (
	"fmt"

	"github.com/Philser/roguelike/internal/view"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// hudRows is the height of the status area at the bottom of the screen.
const hudRows = 9

const barWidth = 20

// DrawHUD renders the health bar and message log below the map.
func (r *Renderer) DrawHUD(f view.Facts) {
	_, screenH := r.screen.Size()
	hudY := screenH - hudRows

	r.drawHLine(hudY, tcell.ColorGray)

	hpText := fmt.Sprintf(" HP: %d/%d ", f.HP, f.MaxHP)
	col := r.drawText(0, hudY+1, hpText, styleStatus)
	filled := 0
	if f.MaxHP > 0 {
		filled = max(f.HP, 0) * barWidth / f.MaxHP
	}
	for i := range barWidth {
		style := styleBarEmpty
		if i < filled {
			style = styleBarFull
		}
		r.screen.SetContent(col+i, hudY+1, ' ', nil, style)
	}
	r.drawText(col+barWidth+2, hudY+1, f.State, styleStatus.Dim(true))

	screenW, _ := r.screen.Size()
	for i, msg := range f.Log {
		if hudY+2+i >= screenH {
			break
		}
		r.drawText(1, hudY+2+i, runewidth.Truncate(msg, screenW-2, "…"), styleLog)
	}
}

// drawInventory draws the inventory box over the map with the cursor slot
// highlighted.
func (r *Renderer) drawInventory(f view.Facts) {
	const boxW = 34
	screenW, _ := r.screen.Size()
	x0 := max((screenW-boxW)/2, 0)
	y0 := 1

	r.fill(x0, y0, boxW, len(f.Inventory)+4, styleBox)
	r.drawText(x0+2, y0, "Inventory", styleBox.Bold(true))
	for i, name := range f.Inventory {
		label := "-"
		if name != "" {
			label = name
		}
		line := fmt.Sprintf("%c) %s", 'a'+i, label)
		style := styleBox
		if i == f.Cursor {
			style = styleSelected
		}
		r.drawText(x0+2, y0+2+i, runewidth.FillRight(runewidth.Truncate(line, boxW-4, "…"), boxW-4), style)
	}
	r.drawText(x0+2, y0+3+len(f.Inventory), "[u]se [d]rop [t]arget [esc]", styleBox.Dim(true))
}

func (r *Renderer) drawBanner(text string) {
	screenW, screenH := r.screen.Size()
	w := runewidth.StringWidth(text)
	x := max((screenW-w)/2, 0)
	y := (screenH - hudRows) / 2
	r.drawText(x, y, text, styleSelected.Bold(true))
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

func (r *Renderer) fill(x, y, w, h int, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			r.screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

// drawText writes text from column x and returns the column after it.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) int {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += runewidth.RuneWidth(ch)
	}
	return col
}

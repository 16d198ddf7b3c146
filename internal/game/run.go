package game

import (
	"github.com/Philser/roguelike/internal/render"

	"github.com/gdamore/tcell/v2"
)

// Run draws s on screen and feeds it key presses until the player quits or
// the screen stops delivering events. The caller owns the screen.
func Run(screen tcell.Screen, s *Session) {
	r := render.NewRenderer(screen)
	for {
		r.Draw(s.Facts())
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			screen.Sync()
			r.Resize()
		case *tcell.EventKey:
			in, quit := keyToIntent(ev, s)
			if quit {
				return
			}
			if in != nil {
				s.Step(in)
			}
		}
	}
}

package game

import (
	"sort"

	"github.com/Philser/roguelike/internal/component"
	"github.com/Philser/roguelike/internal/gamemap"
	"github.com/Philser/roguelike/internal/view"
)

// Facts builds the presentation snapshot of the current moment.
func (s *Session) Facts() view.Facts {
	w, h := s.gmap.Width, s.gmap.Height
	f := view.Facts{
		Tick:      s.tick,
		State:     s.state.String(),
		Width:     w,
		Height:    h,
		Tiles:     make([]gamemap.TileType, 0, int(w)*int(h)),
		Vis:       make([]view.Visibility, 0, int(w)*int(h)),
		PlayerPos: s.player.pos,
		HP:        s.player.stats.HP,
		MaxHP:     s.player.stats.MaxHP,
		Log:       s.actions.Recent(s.cfg.LogLines),
		Inventory: append([]string(nil), s.player.inventory...),
		Cursor:    s.InventorySelection(),
		GameOver:  s.state == StateGameOver,
	}

	visible := make(map[component.Position]bool, len(s.player.visible))
	for _, p := range s.player.visible {
		visible[p] = true
	}

	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			p := component.Position{X: x, Y: y}
			tile := s.gmap.Tile(p)
			vis := view.Hidden
			switch {
			case visible[p]:
				vis = view.Visible
			case s.gmap.IsVisited(p):
				vis = view.Remembered
			}
			f.Tiles = append(f.Tiles, tile)
			f.Vis = append(f.Vis, vis)
			if tile == gamemap.TileFloor && s.gmap.IsBlocked(p) {
				f.Blocked = append(f.Blocked, p)
			}
		}
	}

	for _, id := range s.world.Query(component.CRenderable, component.CPosition) {
		r := s.world.Get(id, component.CRenderable).(component.Renderable)
		p := s.world.Get(id, component.CPosition).(component.Position)
		f.Actors = append(f.Actors, view.Actor{
			ID:          id,
			Name:        nameOf(s.world, id),
			Glyph:       r.Glyph,
			Color:       r.FGColor,
			RenderOrder: r.RenderOrder,
			Pos:         p,
			Visible:     visible[p],
		})
	}
	// lower orders draw first so the player ends up on top
	sort.SliceStable(f.Actors, func(i, j int) bool {
		return f.Actors[i].RenderOrder < f.Actors[j].RenderOrder
	})

	if t := s.targeting; t != nil {
		cursor := t.Cursor
		f.Target = &cursor
		f.AreaRadius = t.Radius
	}
	return f
}

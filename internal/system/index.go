package system

import (
	"github.com/Philser/roguelike/internal/component"
	"github.com/Philser/roguelike/internal/ecs"
	"github.com/Philser/roguelike/internal/gamemap"
)

// IndexMap rebuilds the map's occupant table and actor blocking from the
// world. Used after spawning a level; movement keeps the index current
// incrementally afterwards.
func IndexMap(w *ecs.World, gmap *gamemap.GameMap) {
	gmap.ClearOccupants()
	for _, id := range w.Query(component.CTagBlocking, component.CPosition) {
		p := w.Get(id, component.CPosition).(component.Position)
		if prev, taken := gmap.ContentAt(p); taken {
			panic("system: " + id.String() + " and " + prev.String() + " share " + p.String())
		}
		gmap.SetBlocked(p)
		gmap.SetTileContent(p, id)
	}
}

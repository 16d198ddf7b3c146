package system

import (
	"testing"

	"github.com/Philser/roguelike/internal/component"
	"github.com/Philser/roguelike/internal/ecs"
	"github.com/Philser/roguelike/internal/gamemap"
	"github.com/Philser/roguelike/internal/logger"

	"github.com/sirupsen/logrus"
)

func pos(x, y int32) component.Position { return component.Position{X: x, Y: y} }

// openMap creates a w×h map that is entirely passable floor.
func openMap(w, h int32) *gamemap.GameMap {
	gmap := gamemap.New(w, h)
	gmap.Carve(gamemap.NewRect(0, 0, w, h))
	return gmap
}

// addActor spawns a blocking combatant at p and indexes it on gmap.
func addActor(w *ecs.World, gmap *gamemap.GameMap, p component.Position, hp, power int) ecs.EntityID {
	id := w.CreateEntity()
	w.Add(id, p)
	w.Add(id, component.CombatStats{HP: hp, MaxHP: hp, Power: power})
	w.Add(id, component.Viewshed{Range: 8, Dirty: true})
	w.Add(id, component.TagBlocking{})
	gmap.SetBlocked(p)
	gmap.SetTileContent(p, id)
	return id
}

func addPlayer(w *ecs.World, gmap *gamemap.GameMap, p component.Position) ecs.EntityID {
	id := addActor(w, gmap, p, 100, 5)
	w.Add(id, component.Name{Name: "Player"})
	w.Add(id, component.TagPlayer{})
	w.Add(id, component.NewInventory(4))
	return id
}

func addMonster(w *ecs.World, gmap *gamemap.GameMap, p component.Position, hp int) ecs.EntityID {
	id := addActor(w, gmap, p, hp, 4)
	w.Add(id, component.Name{Name: "Goblin"})
	w.Add(id, component.Monster{Kind: component.MonsterGoblin})
	return id
}

func statsOf(w *ecs.World, id ecs.EntityID) component.CombatStats {
	return w.Get(id, component.CCombatStats).(component.CombatStats)
}

func posOf(w *ecs.World, id ecs.EntityID) component.Position {
	return w.Get(id, component.CPosition).(component.Position)
}

func mustInvariants(t *testing.T, gmap *gamemap.GameMap) {
	t.Helper()
	if err := gmap.CheckInvariants(); err != nil {
		t.Fatal(err)
	}
}

func discard() logrus.FieldLogger { return logger.Discard() }

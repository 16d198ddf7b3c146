package system

import (
	"github.com/Philser/roguelike/internal/component"
	"github.com/Philser/roguelike/internal/ecs"
	"github.com/Philser/roguelike/internal/gamemap"
	"github.com/Philser/roguelike/internal/pathfind"

	"github.com/sirupsen/logrus"
)

// Attack records a melee hit a monster queued against the player.
type Attack struct {
	Attacker ecs.EntityID
	Victim   ecs.EntityID
	Amount   int
}

// RunMonsterAI gives every monster one action, in ascending entity order.
// A confused monster burns a turn of confusion instead. A monster that sees
// the player paths toward the nearest cell adjacent to them and steps once,
// or queues an attack if already adjacent. Monsters that cannot see or
// reach the player stay put.
func RunMonsterAI(w *ecs.World, gmap *gamemap.GameMap, dmg *DamageTracker, player ecs.EntityID, log logrus.FieldLogger) []Attack {
	playerPos := w.Get(player, component.CPosition).(component.Position)
	edges := mapEdges(gmap)
	heuristic := func(p component.Position) float64 { return p.AirlineDistance(playerPos) }
	goal := func(p component.Position) bool { return p.IsAdjacentTo(playerPos) }

	var attacks []Attack
	for _, id := range w.Query(component.CMonster, component.CPosition, component.CViewshed) {
		if tickConfusion(w, id) {
			log.WithField("entity", id).Debug("monster is confused")
			continue
		}
		if !w.Get(id, component.CViewshed).(component.Viewshed).Sees(playerPos) {
			continue
		}

		pos := w.Get(id, component.CPosition).(component.Position)
		path, _, ok := pathfind.AStar(pos, edges, heuristic, goal)
		if !ok {
			log.WithFields(logrus.Fields{"entity": id, "pos": pos}).Debug("no path to player")
			continue
		}
		if len(path) > 1 {
			moveActor(w, gmap, id, pos, path[1])
			continue
		}

		power := mustStats(w, id).Power
		dmg.Add(player, power)
		attacks = append(attacks, Attack{Attacker: id, Victim: player, Amount: power})
	}
	return attacks
}

// tickConfusion reports whether id is confused this turn, counting the
// confusion down and removing it once spent.
func tickConfusion(w *ecs.World, id ecs.EntityID) bool {
	c := w.Get(id, component.CConfusion)
	if c == nil {
		return false
	}
	conf := c.(component.Confusion)
	if conf.Turns <= 0 {
		w.Remove(id, component.CConfusion)
		return false
	}
	conf.Turns--
	if conf.Turns == 0 {
		w.Remove(id, component.CConfusion)
	} else {
		w.Add(id, conf)
	}
	return true
}

func mapEdges(gmap *gamemap.GameMap) func(component.Position) []pathfind.Edge[component.Position] {
	return func(p component.Position) []pathfind.Edge[component.Position] {
		steps := gmap.TraversableNeighbors(p)
		edges := make([]pathfind.Edge[component.Position], len(steps))
		for i, s := range steps {
			edges[i] = pathfind.Edge[component.Position]{To: s.Pos, Cost: s.Cost}
		}
		return edges
	}
}

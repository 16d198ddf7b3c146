package system

import (
	"fmt"

	"github.com/Philser/roguelike/internal/component"
	"github.com/Philser/roguelike/internal/ecs"
	"github.com/Philser/roguelike/internal/gamemap"
)

// MoveResult describes the outcome of ResolvePlayerMove.
type MoveResult uint8

const (
	MoveOK      MoveResult = iota // position updated
	MoveBlocked                   // wall or out-of-bounds, nothing happened
	MoveAttack                    // bumped an occupant, damage queued
)

// ResolvePlayerMove applies one movement intent for id. Moving into an
// occupied cell queues a melee hit of the mover's power against the occupant
// instead. The returned entity is the occupant for MoveAttack.
func ResolvePlayerMove(w *ecs.World, gmap *gamemap.GameMap, dmg *DamageTracker, id ecs.EntityID, dx, dy int32) (MoveResult, ecs.EntityID) {
	pos := w.Get(id, component.CPosition).(component.Position)
	dest := pos.Add(dx, dy)

	if !gmap.IsBlocked(dest) {
		moveActor(w, gmap, id, pos, dest)
		return MoveOK, ecs.NilEntity
	}

	target, ok := gmap.ContentAt(dest)
	if !ok {
		return MoveBlocked, ecs.NilEntity
	}
	mustStats(w, target)
	dmg.Add(target, mustStats(w, id).Power)
	return MoveAttack, target
}

// moveActor relocates id from one cell to another, keeping the blocked set
// and the occupant table in step, and marks its viewshed dirty.
func moveActor(w *ecs.World, gmap *gamemap.GameMap, id ecs.EntityID, from, to component.Position) {
	gmap.RemoveBlocked(from)
	gmap.RemoveTileContent(from)
	w.Add(id, to)
	gmap.SetBlocked(to)
	gmap.SetTileContent(to, id)

	if c := w.Get(id, component.CViewshed); c != nil {
		vs := c.(component.Viewshed)
		vs.Dirty = true
		w.Add(id, vs)
	}
}

// mustStats returns the combat stats of id. An actor without them where
// combat needs them is a construction bug.
func mustStats(w *ecs.World, id ecs.EntityID) component.CombatStats {
	c := w.Get(id, component.CCombatStats)
	if c == nil {
		panic(fmt.Sprintf("system: entity %v has no combat stats", id))
	}
	return c.(component.CombatStats)
}

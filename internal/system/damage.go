package system

import (
	"slices"

	"github.com/Philser/roguelike/internal/component"
	"github.com/Philser/roguelike/internal/ecs"
	"github.com/Philser/roguelike/internal/gamemap"
)

// DamageTracker collects the damage queued against each victim during one
// phase. Apply empties every list; entries may linger empty between turns.
type DamageTracker struct {
	pending map[ecs.EntityID][]int
}

// NewDamageTracker returns an empty tracker.
func NewDamageTracker() *DamageTracker {
	return &DamageTracker{pending: make(map[ecs.EntityID][]int)}
}

// Add queues amount against victim.
func (d *DamageTracker) Add(victim ecs.EntityID, amount int) {
	d.pending[victim] = append(d.pending[victim], amount)
}

// Pending returns the amounts queued against victim.
func (d *DamageTracker) Pending(victim ecs.EntityID) []int {
	return d.pending[victim]
}

// Hit is the total damage one victim took in an Apply pass.
type Hit struct {
	Victim ecs.EntityID
	Amount int
}

// Apply sums each victim's queued damage, subtracts it from their HP
// (clamped at zero) and clears the list. Victims are processed in ID order.
// Damage queued against entities that are gone or have no stats is dropped.
func (d *DamageTracker) Apply(w *ecs.World) []Hit {
	victims := make([]ecs.EntityID, 0, len(d.pending))
	for id, amounts := range d.pending {
		if len(amounts) > 0 {
			victims = append(victims, id)
		}
	}
	slices.Sort(victims)

	var hits []Hit
	for _, id := range victims {
		total := 0
		for _, a := range d.pending[id] {
			total += a
		}
		d.pending[id] = d.pending[id][:0]

		c := w.Get(id, component.CCombatStats)
		if c == nil {
			continue
		}
		stats := c.(component.CombatStats)
		stats.Hurt(total)
		w.Add(id, stats)
		hits = append(hits, Hit{Victim: id, Amount: total})
	}
	return hits
}

// Death reports an entity removed by CollectDead.
type Death struct {
	ID        ecs.EntityID
	Name      string
	Pos       component.Position
	WasPlayer bool
}

// CollectDead removes every combatant whose HP has reached zero: its cell is
// unblocked, its occupant entry cleared and the entity destroyed.
func CollectDead(w *ecs.World, gmap *gamemap.GameMap) []Death {
	var deaths []Death
	for _, id := range w.Query(component.CCombatStats) {
		if !w.Get(id, component.CCombatStats).(component.CombatStats).Dead() {
			continue
		}
		d := Death{ID: id, WasPlayer: w.Has(id, component.CTagPlayer)}
		if c := w.Get(id, component.CName); c != nil {
			d.Name = c.(component.Name).Name
		}
		if c := w.Get(id, component.CPosition); c != nil {
			d.Pos = c.(component.Position)
			if occ, ok := gmap.ContentAt(d.Pos); ok && occ == id {
				gmap.RemoveTileContent(d.Pos)
				gmap.RemoveBlocked(d.Pos)
			}
		}
		w.DestroyEntity(id)
		deaths = append(deaths, d)
	}
	return deaths
}

package system

import (
	"errors"

	"github.com/Philser/roguelike/internal/component"
	"github.com/Philser/roguelike/internal/ecs"
	"github.com/Philser/roguelike/internal/factory"
	"github.com/Philser/roguelike/internal/gamemap"

	"github.com/sirupsen/logrus"
)

var (
	ErrNothingToPickUp = errors.New("there is nothing here to pick up")
	ErrNoSuchItem      = errors.New("no item in that slot")
	ErrNotTargetable   = errors.New("that target is out of reach")
	ErrItemUnderfoot   = errors.New("there is already an item here")
)

// ItemAt returns the item lying on p, if any.
func ItemAt(w *ecs.World, p component.Position) (ecs.EntityID, bool) {
	for _, id := range w.Query(component.CTagItem, component.CPosition) {
		if w.Get(id, component.CPosition).(component.Position) == p {
			return id, true
		}
	}
	return ecs.NilEntity, false
}

// RequestPickup files a pickup request for the item under collector.
func RequestPickup(w *ecs.World, collector ecs.EntityID) error {
	pos := w.Get(collector, component.CPosition).(component.Position)
	item, ok := ItemAt(w, pos)
	if !ok {
		return ErrNothingToPickUp
	}
	marker := w.CreateEntity()
	w.Add(marker, component.WantsToPickup{Collector: collector, Item: item})
	return nil
}

// PickupResult is the outcome of one pickup request.
type PickupResult struct {
	Collector ecs.EntityID
	Item      ecs.EntityID
	Name      string
	Slot      int
	Err       error
}

// Pickup resolves every pending pickup request. A picked-up item loses its
// position and renderable and goes into the collector's inventory; if the
// inventory is full the item stays on the ground. Request markers are always
// destroyed.
func Pickup(w *ecs.World, log logrus.FieldLogger) []PickupResult {
	var results []PickupResult
	for _, marker := range w.Query(component.CWantsToPickup) {
		req := w.Get(marker, component.CWantsToPickup).(component.WantsToPickup)
		w.DestroyEntity(marker)

		res := PickupResult{Collector: req.Collector, Item: req.Item, Name: nameOf(w, req.Item), Slot: -1}
		c := w.Get(req.Collector, component.CInventory)
		if c == nil || !w.Alive(req.Item) {
			res.Err = ErrNothingToPickUp
			results = append(results, res)
			continue
		}
		inv := c.(component.Inventory)
		slot, err := inv.Add(req.Item)
		if err != nil {
			log.WithFields(logrus.Fields{"entity": req.Collector, "item": req.Item}).Debug("pickup failed: inventory full")
			res.Err = err
			results = append(results, res)
			continue
		}
		w.Add(req.Collector, inv)
		w.Remove(req.Item, component.CPosition)
		w.Remove(req.Item, component.CRenderable)
		res.Slot = slot
		results = append(results, res)
	}
	return results
}

// UseOutcome describes what UseItem did.
type UseOutcome struct {
	Item   ecs.EntityID
	Name   string
	Healed int
	// NeedsTarget is set for ranged items; nothing has been consumed yet.
	NeedsTarget bool
	Range       int
}

// UseItem uses the item in slot of user's inventory. Healing items take
// effect at once and are consumed. Ranged items are left in place and
// report NeedsTarget so the caller can choose a target first.
func UseItem(w *ecs.World, user ecs.EntityID, slot int) (UseOutcome, error) {
	inv := w.Get(user, component.CInventory).(component.Inventory)
	item := inv.At(slot)
	if item == ecs.NilEntity {
		return UseOutcome{}, ErrNoSuchItem
	}
	out := UseOutcome{Item: item, Name: nameOf(w, item)}

	if c := w.Get(item, component.CRanged); c != nil {
		out.NeedsTarget = true
		out.Range = c.(component.Ranged).Range
		return out, nil
	}
	if c := w.Get(item, component.CHealing); c != nil {
		stats := mustStats(w, user)
		before := stats.HP
		stats.Heal(c.(component.ProvidesHealing).Amount)
		w.Add(user, stats)
		out.Healed = stats.HP - before
	}
	consume(w, user, slot)
	return out, nil
}

// CheckTarget reports whether target can be aimed at by user with item:
// it must be visible to user and within the item's range.
func CheckTarget(w *ecs.World, user, item ecs.EntityID, target component.Position) error {
	vs := w.Get(user, component.CViewshed).(component.Viewshed)
	if !vs.Sees(target) {
		return ErrNotTargetable
	}
	if c := w.Get(item, component.CRanged); c != nil {
		pos := w.Get(user, component.CPosition).(component.Position)
		if pos.AirlineDistance(target) > float64(c.(component.Ranged).Range) {
			return ErrNotTargetable
		}
	}
	return nil
}

// AffectedCells returns the cells an item aimed at target touches: the
// target alone when radius is zero, otherwise every cell in visible within
// radius of the target.
func AffectedCells(target component.Position, radius int, visible []component.Position) []component.Position {
	if radius <= 0 {
		return []component.Position{target}
	}
	r2 := int32(radius * radius)
	var cells []component.Position
	for _, p := range visible {
		dx, dy := p.X-target.X, p.Y-target.Y
		if dx*dx+dy*dy <= r2 {
			cells = append(cells, p)
		}
	}
	return cells
}

// UseItemEvent asks for a targeted item to be applied to a set of cells.
type UseItemEvent struct {
	User    ecs.EntityID
	Slot    int
	Item    ecs.EntityID
	Targets []component.Position
}

// EffectHit is one actor caught by an item effect.
type EffectHit struct {
	Target   ecs.EntityID
	Name     string
	Damage   int
	Confused int
}

// TargetEvent builds the event for using the item in slot against target.
func TargetEvent(w *ecs.World, user ecs.EntityID, slot int, target component.Position) (UseItemEvent, error) {
	inv := w.Get(user, component.CInventory).(component.Inventory)
	item := inv.At(slot)
	if item == ecs.NilEntity {
		return UseItemEvent{}, ErrNoSuchItem
	}
	if err := CheckTarget(w, user, item, target); err != nil {
		return UseItemEvent{}, err
	}
	radius := 0
	if c := w.Get(item, component.CAreaOfEffect); c != nil {
		radius = c.(component.AreaOfEffect).Radius
	}
	visible := w.Get(user, component.CViewshed).(component.Viewshed).VisibleTiles
	return UseItemEvent{
		User:    user,
		Slot:    slot,
		Item:    item,
		Targets: AffectedCells(target, radius, visible),
	}, nil
}

// ApplyItemEffect applies ev's item to every actor on its target cells.
// Damage is queued on dmg rather than applied. The item is consumed.
func ApplyItemEffect(w *ecs.World, gmap *gamemap.GameMap, dmg *DamageTracker, ev UseItemEvent) []EffectHit {
	var damage, confuse int
	if c := w.Get(ev.Item, component.CInflictsDamage); c != nil {
		damage = c.(component.InflictsDamage).Damage
	}
	if c := w.Get(ev.Item, component.CConfuses); c != nil {
		confuse = c.(component.Confuses).Turns
	}

	var hits []EffectHit
	for _, cell := range ev.Targets {
		target, ok := gmap.ContentAt(cell)
		if !ok || !w.Has(target, component.CCombatStats) {
			continue
		}
		hit := EffectHit{Target: target, Name: nameOf(w, target)}
		if damage > 0 {
			dmg.Add(target, damage)
			hit.Damage = damage
		}
		if confuse > 0 && w.Has(target, component.CMonster) {
			w.Add(target, component.Confusion{Turns: confuse})
			hit.Confused = confuse
		}
		hits = append(hits, hit)
	}
	consume(w, ev.User, ev.Slot)
	return hits
}

// DropItem puts the item in slot back on the ground under user.
func DropItem(w *ecs.World, user ecs.EntityID, slot int) (ecs.EntityID, error) {
	inv := w.Get(user, component.CInventory).(component.Inventory)
	item := inv.At(slot)
	if item == ecs.NilEntity {
		return ecs.NilEntity, ErrNoSuchItem
	}
	pos := w.Get(user, component.CPosition).(component.Position)
	if _, ok := ItemAt(w, pos); ok {
		return ecs.NilEntity, ErrItemUnderfoot
	}
	inv.Remove(slot)
	w.Add(user, inv)
	w.Add(item, pos)
	w.Add(item, factory.ItemRenderable(w.Get(item, component.CItem).(component.Item).Kind))
	return item, nil
}

// consume removes the item in slot from user's inventory and destroys it.
func consume(w *ecs.World, user ecs.EntityID, slot int) {
	inv := w.Get(user, component.CInventory).(component.Inventory)
	item := inv.Remove(slot)
	w.Add(user, inv)
	w.DestroyEntity(item)
}

func nameOf(w *ecs.World, id ecs.EntityID) string {
	if c := w.Get(id, component.CName); c != nil {
		return c.(component.Name).Name
	}
	return id.String()
}

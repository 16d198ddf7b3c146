package component

import "github.com/Philser/roguelike/internal/ecs"

// ItemKind identifies what an item does when used.
type ItemKind uint8

const (
	ItemHealthPotion ItemKind = iota + 1
	ItemMagicMissile
	ItemFireball
	ItemConfusionScroll
)

func (k ItemKind) String() string {
	switch k {
	case ItemHealthPotion:
		return "Health Potion"
	case ItemMagicMissile:
		return "Magic Missile Scroll"
	case ItemFireball:
		return "Fireball Scroll"
	case ItemConfusionScroll:
		return "Confusion Scroll"
	}
	return "Nothing"
}

const (
	CItem           ecs.ComponentType = 11
	CHealing        ecs.ComponentType = 12
	CInflictsDamage ecs.ComponentType = 13
	CRanged         ecs.ComponentType = 14
	CAreaOfEffect   ecs.ComponentType = 15
	CConfuses       ecs.ComponentType = 16
	CWantsToPickup  ecs.ComponentType = 17
)

// Item is attached to every item entity, on the ground or in an inventory.
type Item struct {
	Kind ItemKind
}

func (Item) Type() ecs.ComponentType { return CItem }

// ProvidesHealing restores HP to the user.
type ProvidesHealing struct {
	Amount int
}

func (ProvidesHealing) Type() ecs.ComponentType { return CHealing }

// InflictsDamage queues damage against every actor on the targeted cells.
type InflictsDamage struct {
	Damage int
}

func (InflictsDamage) Type() ecs.ComponentType { return CInflictsDamage }

// Ranged items need a target cell chosen within Range of the user.
type Ranged struct {
	Range int
}

func (Ranged) Type() ecs.ComponentType { return CRanged }

// AreaOfEffect widens the target to every visible cell within Radius.
type AreaOfEffect struct {
	Radius int
}

func (AreaOfEffect) Type() ecs.ComponentType { return CAreaOfEffect }

// Confuses applies Confusion for Turns to the actors hit.
type Confuses struct {
	Turns int
}

func (Confuses) Type() ecs.ComponentType { return CConfuses }

// WantsToPickup is a one-shot request entity consumed by the pickup system.
type WantsToPickup struct {
	Collector ecs.EntityID
	Item      ecs.EntityID
}

func (WantsToPickup) Type() ecs.ComponentType { return CWantsToPickup }

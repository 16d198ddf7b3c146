package component

import (
	"errors"

	"github.com/Philser/roguelike/internal/ecs"
)

const CInventory ecs.ComponentType = 18

// ErrInventoryFull is returned when every slot is taken.
var ErrInventoryFull = errors.New("inventory full")

// Inventory is a fixed-capacity slot array of item handles. Empty slots hold
// ecs.NilEntity.
type Inventory struct {
	Slots []ecs.EntityID
}

// NewInventory returns an empty inventory with capacity slots.
func NewInventory(capacity int) Inventory {
	return Inventory{Slots: make([]ecs.EntityID, capacity)}
}

func (Inventory) Type() ecs.ComponentType { return CInventory }

// Capacity returns the number of slots.
func (inv Inventory) Capacity() int { return len(inv.Slots) }

// Add stores item in the first free slot and returns that slot.
func (inv Inventory) Add(item ecs.EntityID) (int, error) {
	for i, s := range inv.Slots {
		if s == ecs.NilEntity {
			inv.Slots[i] = item
			return i, nil
		}
	}
	return -1, ErrInventoryFull
}

// At returns the item in slot, or NilEntity for empty or invalid slots.
func (inv Inventory) At(slot int) ecs.EntityID {
	if slot < 0 || slot >= len(inv.Slots) {
		return ecs.NilEntity
	}
	return inv.Slots[slot]
}

// Remove empties slot and returns what was there. Invalid or empty slots are a no-op.
func (inv Inventory) Remove(slot int) ecs.EntityID {
	id := inv.At(slot)
	if id != ecs.NilEntity {
		inv.Slots[slot] = ecs.NilEntity
	}
	return id
}

// Count returns the number of occupied slots.
func (inv Inventory) Count() int {
	n := 0
	for _, s := range inv.Slots {
		if s != ecs.NilEntity {
			n++
		}
	}
	return n
}

package ecs

import "fmt"

// EntityID is a generation-checked handle into the World's entity arena.
// The low 32 bits hold the slot index, the high 32 bits the slot generation.
// A handle kept after its entity was destroyed no longer matches the slot
// generation, so stale references are detected instead of aliasing a new entity.
type EntityID uint64

// NilEntity is the zero value — no valid entity has this ID.
const NilEntity EntityID = 0

func makeID(index, gen uint32) EntityID {
	return EntityID(uint64(gen)<<32 | uint64(index))
}

// Index returns the arena slot of the handle.
func (id EntityID) Index() uint32 { return uint32(id) }

// Generation returns the slot generation the handle was minted for.
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }

func (id EntityID) String() string {
	if id == NilEntity {
		return "entity(nil)"
	}
	return fmt.Sprintf("entity(%d#%d)", id.Index(), id.Generation())
}

// ComponentType is a small integer key used to store/retrieve components.
type ComponentType uint8

// Component is implemented by every data struct stored in the world.
type Component interface {
	Type() ComponentType
}

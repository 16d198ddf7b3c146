package ecs

import "slices"

type slot struct {
	gen   uint32
	alive bool
}

// World is the central entity registry and component store.
type World struct {
	slots      []slot
	free       []uint32
	components map[ComponentType]map[EntityID]Component
}

// NewWorld creates an empty World.
func NewWorld() *World {
	return &World{
		components: make(map[ComponentType]map[EntityID]Component),
	}
}

// CreateEntity mints a new entity handle, reusing a freed slot when one exists.
func (w *World) CreateEntity() EntityID {
	if n := len(w.free); n > 0 {
		idx := w.free[n-1]
		w.free = w.free[:n-1]
		s := &w.slots[idx]
		s.alive = true
		return makeID(idx, s.gen)
	}
	idx := uint32(len(w.slots))
	w.slots = append(w.slots, slot{gen: 1, alive: true})
	return makeID(idx, 1)
}

// DestroyEntity marks the entity dead, removes all its components and bumps
// the slot generation so outstanding handles go stale.
func (w *World) DestroyEntity(id EntityID) {
	if !w.Alive(id) {
		return
	}
	for _, store := range w.components {
		delete(store, id)
	}
	s := &w.slots[id.Index()]
	s.alive = false
	s.gen++
	w.free = append(w.free, id.Index())
}

// Alive reports whether the handle refers to a living entity.
func (w *World) Alive(id EntityID) bool {
	idx := id.Index()
	if id == NilEntity || int(idx) >= len(w.slots) {
		return false
	}
	s := w.slots[idx]
	return s.alive && s.gen == id.Generation()
}

// Count returns the number of living entities.
func (w *World) Count() int {
	return len(w.slots) - len(w.free)
}

// Add attaches a component to an entity, replacing any previous value of the
// same type. Adding to a stale handle is ignored.
func (w *World) Add(id EntityID, c Component) {
	if !w.Alive(id) {
		return
	}
	t := c.Type()
	if w.components[t] == nil {
		w.components[t] = make(map[EntityID]Component)
	}
	w.components[t][id] = c
}

// Get returns the component of the given type for entity id, or nil.
func (w *World) Get(id EntityID, t ComponentType) Component {
	store := w.components[t]
	if store == nil {
		return nil
	}
	return store[id]
}

// Remove detaches a component from an entity.
func (w *World) Remove(id EntityID, t ComponentType) {
	if store := w.components[t]; store != nil {
		delete(store, id)
	}
}

// Has reports whether entity id has a component of the given type.
func (w *World) Has(id EntityID, t ComponentType) bool {
	return w.Get(id, t) != nil
}

// Query returns all alive entities that have every listed component type,
// in ascending handle order so that iteration is stable between runs.
func (w *World) Query(types ...ComponentType) []EntityID {
	if len(types) == 0 {
		return nil
	}
	// Use the smallest store as the candidate set.
	smallest := types[0]
	for _, t := range types[1:] {
		if len(w.components[t]) < len(w.components[smallest]) {
			smallest = t
		}
	}
	store := w.components[smallest]
	if store == nil {
		return nil
	}
	var result []EntityID
	for id := range store {
		if !w.Alive(id) {
			continue
		}
		match := true
		for _, t := range types {
			if t == smallest {
				continue
			}
			if !w.Has(id, t) {
				match = false
				break
			}
		}
		if match {
			result = append(result, id)
		}
	}
	slices.Sort(result)
	return result
}

package component

import (
	"slices"

	"github.com/Philser/roguelike/internal/ecs"
)

const CViewshed ecs.ComponentType = 3

// Viewshed caches what an actor can currently see. Dirty is set whenever the
// actor moves and cleared once the field of view has been recomputed.
type Viewshed struct {
	VisibleTiles []Position
	Range        int
	Dirty        bool
}

func (Viewshed) Type() ecs.ComponentType { return CViewshed }

// Sees reports whether p is in the visible set.
func (v Viewshed) Sees(p Position) bool {
	return slices.Contains(v.VisibleTiles, p)
}

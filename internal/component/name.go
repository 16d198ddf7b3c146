package component

import "github.com/Philser/roguelike/internal/ecs"

const CName ecs.ComponentType = 4

// Name is the label used for an entity in the action log.
type Name struct {
	Name string
}

func (Name) Type() ecs.ComponentType { return CName }

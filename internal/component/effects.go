package component

import "github.com/Philser/roguelike/internal/ecs"

const CConfusion ecs.ComponentType = 7

// Confusion makes a monster skip its turns until Turns runs down to zero.
type Confusion struct {
	Turns int
}

func (Confusion) Type() ecs.ComponentType { return CConfusion }

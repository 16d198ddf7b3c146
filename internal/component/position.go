package component

import (
	"fmt"
	"math"

	"github.com/Philser/roguelike/internal/ecs"
)

const CPosition ecs.ComponentType = 1

// Position is a cell on the map grid. It is the single source of truth for
// where an actor or floor item sits.
type Position struct {
	X, Y int32
}

func (Position) Type() ecs.ComponentType { return CPosition }

func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Add returns p shifted by (dx, dy).
func (p Position) Add(dx, dy int32) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// AirlineDistance is the straight-line distance to other.
func (p Position) AirlineDistance(other Position) float64 {
	dx := float64(p.X - other.X)
	dy := float64(p.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// IsAdjacentTo reports whether other is one of the eight cells surrounding p.
// A position is never adjacent to itself.
func (p Position) IsAdjacentTo(other Position) bool {
	dx := abs32(p.X - other.X)
	dy := abs32(p.Y - other.Y)
	return dx < 2 && dy < 2 && p != other
}

// Neighbors returns the four orthogonal neighbours: west, east, south, north.
func (p Position) Neighbors() [4]Position {
	return [4]Position{
		{p.X - 1, p.Y},
		{p.X + 1, p.Y},
		{p.X, p.Y + 1},
		{p.X, p.Y - 1},
	}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

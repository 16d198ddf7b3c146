package gamemap

import (
	"fmt"

	"github.com/Philser/roguelike/internal/component"
	"github.com/Philser/roguelike/internal/ecs"

	"github.com/zyedidia/generic/mapset"
)

// Step is one traversable neighbour and the cost of entering it.
type Step struct {
	Pos  component.Position
	Cost int
}

// GameMap holds the tile grid and the spatial index for one dungeon level.
//
// Every wall cell is in the blocked set. A floor cell is blocked exactly when
// a collidable actor stands on it, and that actor is then the cell's content.
// The visited set only ever grows.
type GameMap struct {
	Width, Height int32
	Rooms         []Rect

	tiles   []TileType
	blocked mapset.Set[component.Position]
	content map[component.Position]ecs.EntityID
	visited mapset.Set[component.Position]
}

// New creates a GameMap filled with walls, all of them blocked.
func New(width, height int32) *GameMap {
	m := &GameMap{
		Width:   width,
		Height:  height,
		tiles:   make([]TileType, int(width)*int(height)),
		blocked: mapset.New[component.Position](),
		content: make(map[component.Position]ecs.EntityID),
		visited: mapset.New[component.Position](),
	}
	for y := range height {
		for x := range width {
			m.blocked.Put(component.Position{X: x, Y: y})
		}
	}
	return m
}

// InBounds reports whether p is within the map boundaries.
func (m *GameMap) InBounds(p component.Position) bool {
	return p.X >= 0 && p.X < m.Width && p.Y >= 0 && p.Y < m.Height
}

func (m *GameMap) index(p component.Position) int {
	return int(p.Y)*int(m.Width) + int(p.X)
}

// Tile returns the tile at p. Cells outside the map read as walls.
func (m *GameMap) Tile(p component.Position) TileType {
	if !m.InBounds(p) {
		return TileWall
	}
	return m.tiles[m.index(p)]
}

// SetTile overwrites the tile at p. Walls are blocked; a floor cell is
// unblocked unless something already occupies it.
func (m *GameMap) SetTile(p component.Position, t TileType) {
	if !m.InBounds(p) {
		return
	}
	m.tiles[m.index(p)] = t
	switch {
	case t == TileWall:
		m.blocked.Put(p)
	case !m.occupied(p):
		m.blocked.Remove(p)
	}
}

// Carve turns every cell of r into floor.
func (m *GameMap) Carve(r Rect) {
	for _, p := range r.Cells() {
		m.SetTile(p, TileFloor)
	}
}

// IsTransparent reports whether light passes through p.
func (m *GameMap) IsTransparent(p component.Position) bool {
	return m.Tile(p).Transparent()
}

// IsBlocked reports whether p cannot be entered. Out-of-bounds cells are
// always blocked.
func (m *GameMap) IsBlocked(p component.Position) bool {
	if !m.InBounds(p) {
		return true
	}
	return m.blocked.Has(p)
}

// SetBlocked marks p impassable.
func (m *GameMap) SetBlocked(p component.Position) { m.blocked.Put(p) }

// RemoveBlocked marks p passable again.
func (m *GameMap) RemoveBlocked(p component.Position) { m.blocked.Remove(p) }

// SetTileContent records id as the occupant of p.
func (m *GameMap) SetTileContent(p component.Position, id ecs.EntityID) { m.content[p] = id }

// RemoveTileContent clears the occupant of p.
func (m *GameMap) RemoveTileContent(p component.Position) { delete(m.content, p) }

// ContentAt returns the occupant of p, if any.
func (m *GameMap) ContentAt(p component.Position) (ecs.EntityID, bool) {
	id, ok := m.content[p]
	return id, ok
}

func (m *GameMap) occupied(p component.Position) bool {
	_, ok := m.content[p]
	return ok
}

// ClearOccupants empties the content table and unblocks every floor cell an
// occupant held.
func (m *GameMap) ClearOccupants() {
	for p := range m.content {
		if m.Tile(p) == TileFloor {
			m.blocked.Remove(p)
		}
	}
	clear(m.content)
}

// Occupants returns the number of indexed occupants.
func (m *GameMap) Occupants() int { return len(m.content) }

// TraversableNeighbors returns the unblocked orthogonal neighbours of p, each
// at a uniform cost of one.
func (m *GameMap) TraversableNeighbors(p component.Position) []Step {
	steps := make([]Step, 0, 4)
	for _, n := range p.Neighbors() {
		if !m.IsBlocked(n) {
			steps = append(steps, Step{Pos: n, Cost: 1})
		}
	}
	return steps
}

// Visit records that p has been seen at least once.
func (m *GameMap) Visit(p component.Position) {
	if m.InBounds(p) {
		m.visited.Put(p)
	}
}

// IsVisited reports whether p has ever been seen.
func (m *GameMap) IsVisited(p component.Position) bool { return m.visited.Has(p) }

// VisitedCount returns the number of cells ever seen.
func (m *GameMap) VisitedCount() int { return m.visited.Size() }

// FloorCells lists every floor cell in row-major order.
func (m *GameMap) FloorCells() []component.Position {
	var cells []component.Position
	for y := range m.Height {
		for x := range m.Width {
			p := component.Position{X: x, Y: y}
			if m.Tile(p) == TileFloor {
				cells = append(cells, p)
			}
		}
	}
	return cells
}

// CheckInvariants verifies that the blocked set and the content table agree
// with the tiles. It is meant for tests and debug assertions.
func (m *GameMap) CheckInvariants() error {
	for y := range m.Height {
		for x := range m.Width {
			p := component.Position{X: x, Y: y}
			blocked := m.blocked.Has(p)
			occupied := m.occupied(p)
			switch m.Tile(p) {
			case TileWall:
				if !blocked {
					return fmt.Errorf("wall %v is not blocked", p)
				}
				if occupied {
					return fmt.Errorf("wall %v has an occupant", p)
				}
			case TileFloor:
				if blocked != occupied {
					return fmt.Errorf("floor %v blocked=%v occupied=%v", p, blocked, occupied)
				}
			}
		}
	}
	stray := 0
	m.blocked.Each(func(p component.Position) {
		if !m.InBounds(p) {
			stray++
		}
	})
	if stray > 0 {
		return fmt.Errorf("blocked set holds %d out-of-bounds cells", stray)
	}
	return nil
}

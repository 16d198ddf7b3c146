package system

import (
	"slices"

	"github.com/Philser/roguelike/internal/component"
	"github.com/Philser/roguelike/internal/ecs"
	"github.com/Philser/roguelike/internal/gamemap"

	"github.com/zyedidia/generic/mapset"
)

// Transparency is the map data field-of-view needs.
type Transparency interface {
	InBounds(p component.Position) bool
	IsTransparent(p component.Position) bool
}

// octant transform matrices.
// For each octant, a (dx, dy) sweep pair maps to a world offset via:
//
//	worldX = cx + dx*xx + dy*xy
//	worldY = cy + dx*yx + dy*yy
//
// where dx sweeps horizontally within the row and dy is the fixed row index.
var octants = [8][4]int32{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// ComputeFOV returns every cell visible from origin within radius, using
// recursive shadowcasting. The origin is always visible. Cells outside the
// map are treated as opaque and never returned.
func ComputeFOV(origin component.Position, m Transparency, radius int) mapset.Set[component.Position] {
	visible := mapset.New[component.Position]()
	if m.InBounds(origin) {
		visible.Put(origin)
	}
	for _, o := range octants {
		s := shadowcast{m: m, origin: origin, radius: int32(radius), visible: visible,
			xx: o[0], xy: o[1], yx: o[2], yy: o[3]}
		s.cast(1, 1.0, 0.0)
	}
	return visible
}

type shadowcast struct {
	m              Transparency
	origin         component.Position
	radius         int32
	visible        mapset.Set[component.Position]
	xx, xy, yx, yy int32
}

// cast lights one octant from row onward between the start and end slopes.
//
//   - j is the current row (distance from origin along the main axis)
//   - dy = -j is fixed for the entire inner sweep
//   - dx sweeps from -j to 0
//   - lSlope = (dx - 0.5) / (dy + 0.5), rSlope = (dx + 0.5) / (dy - 0.5)
func (s *shadowcast) cast(row int32, start, end float64) {
	if start < end {
		return
	}
	radiusSq := s.radius * s.radius
	newStart := start

	for j := row; j <= s.radius; j++ {
		dy := -j
		blocked := false

		for dx := -j; dx <= 0; dx++ {
			p := component.Position{
				X: s.origin.X + dx*s.xx + dy*s.xy,
				Y: s.origin.Y + dx*s.yx + dy*s.yy,
			}
			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			inBounds := s.m.InBounds(p)
			if dx*dx+dy*dy < radiusSq && inBounds {
				s.visible.Put(p)
			}

			opaque := !inBounds || !s.m.IsTransparent(p)
			if blocked {
				if opaque {
					newStart = rSlope
				} else {
					blocked = false
					start = newStart
				}
			} else if opaque && j < s.radius {
				blocked = true
				s.cast(j+1, start, lSlope)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}

// UpdateViewsheds recomputes every dirty viewshed. Cells the player sees are
// recorded as visited on the map; monster sight never reveals the map.
func UpdateViewsheds(w *ecs.World, gmap *gamemap.GameMap) {
	for _, id := range w.Query(component.CViewshed, component.CPosition) {
		vs := w.Get(id, component.CViewshed).(component.Viewshed)
		if !vs.Dirty {
			continue
		}
		pos := w.Get(id, component.CPosition).(component.Position)

		visible := ComputeFOV(pos, gmap, vs.Range)
		tiles := make([]component.Position, 0, visible.Size())
		visible.Each(func(p component.Position) {
			tiles = append(tiles, p)
		})
		slices.SortFunc(tiles, comparePos)

		vs.VisibleTiles = tiles
		vs.Dirty = false
		w.Add(id, vs)

		if w.Has(id, component.CTagPlayer) {
			for _, p := range tiles {
				gmap.Visit(p)
			}
		}
	}
}

// comparePos orders positions row by row.
func comparePos(a, b component.Position) int {
	if a.Y != b.Y {
		return int(a.Y - b.Y)
	}
	return int(a.X - b.X)
}

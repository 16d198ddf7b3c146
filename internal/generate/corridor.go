package generate

import (
	"math/rand"

	"github.com/Philser/roguelike/internal/component"
	"github.com/Philser/roguelike/internal/gamemap"
)

// carveCorridor digs an L-shaped tunnel between a and b, choosing the bend
// at random.
func carveCorridor(gmap *gamemap.GameMap, a, b component.Position, rng *rand.Rand) {
	if rng.Intn(2) == 0 {
		carveH(gmap, a.X, b.X, a.Y)
		carveV(gmap, a.Y, b.Y, b.X)
	} else {
		carveV(gmap, a.Y, b.Y, a.X)
		carveH(gmap, a.X, b.X, b.Y)
	}
}

func carveH(gmap *gamemap.GameMap, x1, x2, y int32) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		gmap.SetTile(component.Position{X: x, Y: y}, gamemap.TileFloor)
	}
}

func carveV(gmap *gamemap.GameMap, y1, y2, x int32) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		gmap.SetTile(component.Position{X: x, Y: y}, gamemap.TileFloor)
	}
}

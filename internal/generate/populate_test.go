package generate

import (
	"math/rand"
	"testing"

	"github.com/Philser/roguelike/internal/component"
	"github.com/Philser/roguelike/internal/ecs"
	"github.com/Philser/roguelike/internal/gamemap"
)

// makeRoomedMap builds a GameMap with the given number of disjoint 5x5 rooms.
func makeRoomedMap(rooms int) *gamemap.GameMap {
	gmap := gamemap.New(80, 12)
	for i := range rooms {
		r := gamemap.NewRect(int32(2+i*8), 2, 5, 5)
		gmap.Carve(r)
		gmap.Rooms = append(gmap.Rooms, r)
	}
	return gmap
}

func TestPopulateSkipsFirstRoom(t *testing.T) {
	gmap := makeRoomedMap(4)
	cfg := baseConfig(1)
	cfg.MaxMonstersPerRoom = 3
	cfg.MaxItemsPerRoom = 2
	for range 20 {
		result := Populate(gmap, cfg)
		for _, m := range result.Monsters {
			if gmap.Rooms[0].Contains(m.Pos) {
				t.Fatalf("monster spawned in the player's room at %v", m.Pos)
			}
		}
		for _, it := range result.Items {
			if gmap.Rooms[0].Contains(it.Pos) {
				t.Fatalf("item spawned in the player's room at %v", it.Pos)
			}
		}
	}
}

func TestPopulateSingleRoomIsEmpty(t *testing.T) {
	result := Populate(makeRoomedMap(1), baseConfig(1))
	if len(result.Monsters)+len(result.Items) != 0 {
		t.Errorf("expected no spawns, got %+v", result)
	}
}

func TestPopulateUsesDistinctFreeFloor(t *testing.T) {
	gmap := makeRoomedMap(5)
	occupied := component.Position{X: 12, Y: 4}
	gmap.SetBlocked(occupied)
	gmap.SetTileContent(occupied, ecs.EntityID(1<<32))

	cfg := baseConfig(9)
	cfg.MaxMonstersPerRoom = 10
	cfg.MaxItemsPerRoom = 10
	for range 10 {
		result := Populate(gmap, cfg)
		seen := make(map[component.Position]bool)
		var cells []component.Position
		for _, m := range result.Monsters {
			cells = append(cells, m.Pos)
		}
		for _, it := range result.Items {
			cells = append(cells, it.Pos)
		}
		for _, p := range cells {
			if gmap.Tile(p) != gamemap.TileFloor {
				t.Fatalf("spawn on non-floor %v", p)
			}
			if p == occupied {
				t.Fatalf("spawn on occupied cell %v", p)
			}
			if seen[p] {
				t.Fatalf("two spawns share %v", p)
			}
			seen[p] = true
		}
	}
}

func TestPopulateOvercrowdedRoomPanics(t *testing.T) {
	gmap := gamemap.New(10, 10)
	for _, r := range []gamemap.Rect{gamemap.NewRect(1, 1, 2, 2), gamemap.NewRect(5, 5, 1, 1)} {
		gmap.Carve(r)
		gmap.Rooms = append(gmap.Rooms, r)
	}
	cfg := &Config{
		MaxMonstersPerRoom: 5,
		MaxItemsPerRoom:    5,
		Rand:               rand.New(rand.NewSource(1)),
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a room too small for its spawns")
		}
	}()
	// A 1x1 room cannot hold more than one spawn; some roll will exceed it.
	for range 50 {
		Populate(gmap, cfg)
	}
}

func TestRollItemCoversTable(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	counts := make(map[component.ItemKind]int)
	for range 2000 {
		counts[rollItem(rng)]++
	}
	for _, e := range itemWeights {
		if counts[e.kind] == 0 {
			t.Errorf("%v never rolled", e.kind)
		}
	}
	if counts[component.ItemHealthPotion] < counts[component.ItemConfusionScroll] {
		t.Errorf("potions (%d) should outnumber confusion scrolls (%d)",
			counts[component.ItemHealthPotion], counts[component.ItemConfusionScroll])
	}
}

package generate

import (
	"fmt"
	"math/rand"

	"github.com/Philser/roguelike/internal/component"
	"github.com/Philser/roguelike/internal/gamemap"
)

// MonsterSpawn describes one monster to create.
type MonsterSpawn struct {
	Kind component.MonsterKind
	Pos  component.Position
}

// ItemSpawn describes one item to create.
type ItemSpawn struct {
	Kind component.ItemKind
	Pos  component.Position
}

// PopulateResult is returned by Populate with entity spawn data.
type PopulateResult struct {
	Monsters []MonsterSpawn
	Items    []ItemSpawn
}

// Populate picks spawn cells for monsters and items in every room except the
// first, which belongs to the player. Spawn cells are unblocked floor that no
// other spawn has claimed. A room with fewer free cells than requested spawns
// is a configuration error and panics.
func Populate(gmap *gamemap.GameMap, cfg *Config) PopulateResult {
	var result PopulateResult
	if len(gmap.Rooms) < 2 {
		return result
	}

	claimed := make(map[component.Position]bool)
	for _, room := range gmap.Rooms[1:] {
		monsters := cfg.Rand.Intn(cfg.MaxMonstersPerRoom + 1)
		items := cfg.Rand.Intn(cfg.MaxItemsPerRoom + 1)

		free := freeCells(gmap, room, claimed)
		if len(free) < monsters+items {
			panic(fmt.Sprintf("generate: room %v has %d free cells for %d spawns",
				room, len(free), monsters+items))
		}
		cfg.Rand.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })

		for _, p := range free[:monsters] {
			claimed[p] = true
			result.Monsters = append(result.Monsters, MonsterSpawn{Kind: rollMonster(cfg.Rand), Pos: p})
		}
		for _, p := range free[monsters : monsters+items] {
			claimed[p] = true
			result.Items = append(result.Items, ItemSpawn{Kind: rollItem(cfg.Rand), Pos: p})
		}
	}
	return result
}

func freeCells(gmap *gamemap.GameMap, room gamemap.Rect, claimed map[component.Position]bool) []component.Position {
	var free []component.Position
	for _, p := range room.Cells() {
		if gmap.Tile(p) == gamemap.TileFloor && !gmap.IsBlocked(p) && !claimed[p] {
			free = append(free, p)
		}
	}
	return free
}

func rollMonster(rng *rand.Rand) component.MonsterKind {
	if rng.Intn(10) < 8 {
		return component.MonsterGoblin
	}
	return component.MonsterOrc
}

// itemWeights is the spawn table, out of 100.
var itemWeights = []struct {
	kind   component.ItemKind
	weight int
}{
	{component.ItemHealthPotion, 40},
	{component.ItemMagicMissile, 25},
	{component.ItemFireball, 20},
	{component.ItemConfusionScroll, 15},
}

func rollItem(rng *rand.Rand) component.ItemKind {
	roll := rng.Intn(100)
	for _, e := range itemWeights {
		if roll < e.weight {
			return e.kind
		}
		roll -= e.weight
	}
	return component.ItemHealthPotion
}
